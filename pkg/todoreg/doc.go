/*
Package todoreg implements a small todo registry service: a collection of
text items keyed by 16-bit ids, exposed through five operations (add,
delete, read, read_all, update).

# Overview

The package has two moving parts:

  - Registry owns the item collection, allocates ids, and implements the
    five operations. Mutating operations are serialized behind a write
    lock; read operations run concurrently.
  - Dispatcher maps an operation name plus raw JSON arguments onto a
    Registry method and folds the outcome into a Result envelope, so a
    transport can forward calls without knowing their shapes.

Every operation reports failure through the two-variant Result envelope
({"Ok": ...} or {"Err": "..."}) rather than transport-level errors; in-process
callers branch on the sentinel errors with errors.Is.

# Basic Usage

	reg, err := todoreg.New()
	if err != nil {
	    log.Fatal(err)
	}
	defer reg.Close()

	ctx := context.Background()
	id, _ := reg.Add(ctx, "buy milk")
	text, _ := reg.Read(ctx, id)
	fmt.Println(text) // "buy milk"

# Dispatching

A Dispatcher fronts the registry for wire callers:

	d := todoreg.NewDispatcher(reg)
	res, err := d.Dispatch(ctx, "add", json.RawMessage(`{"text":"buy milk"}`))
	// res marshals to {"Ok":0}; err is non-nil only for an unknown method

# Storage

The registry keeps items in a store.Store. The default is an in-memory
store; use store.NewSQLiteStore with todoreg.WithStore for persistence
across restarts.
*/
package todoreg
