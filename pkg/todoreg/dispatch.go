package todoreg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Kind classifies a call for the host transport: queries are read-only
// and side-effect-free, updates mutate registry state and require
// serialized execution against the authoritative copy.
type Kind int

const (
	// KindQuery marks a read-only call.
	KindQuery Kind = iota

	// KindUpdate marks a mutating call.
	KindUpdate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// Handler executes one operation from raw JSON arguments. Operation
// failures travel inside the Result; a handler never returns a Go error.
type Handler func(ctx context.Context, args json.RawMessage) Result

// registeredCall pairs a handler with its classification.
type registeredCall struct {
	kind Kind
	fn   Handler
}

// Dispatcher maps operation names onto registry methods. It is the thin
// routing layer between a transport and the Registry: callers hand it a
// method name plus raw JSON arguments and get back a Result envelope.
type Dispatcher struct {
	mu    sync.RWMutex
	calls map[string]registeredCall
}

// NewDispatcher creates a Dispatcher with the five registry operations
// pre-registered against reg.
func NewDispatcher(reg *Registry) *Dispatcher {
	d := &Dispatcher{
		calls: make(map[string]registeredCall),
	}
	d.MustRegister("add", KindUpdate, addHandler(reg))
	d.MustRegister("delete", KindUpdate, deleteHandler(reg))
	d.MustRegister("read", KindQuery, readHandler(reg))
	d.MustRegister("read_all", KindQuery, readAllHandler(reg))
	d.MustRegister("update", KindUpdate, updateHandler(reg))
	return d
}

// Register adds a handler for an operation name.
func (d *Dispatcher) Register(name string, kind Kind, fn Handler) error {
	if name == "" {
		return errors.New("method name is required")
	}
	if fn == nil {
		return errors.New("handler is required")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.calls[name]; exists {
		return fmt.Errorf("handler for method %q already registered", name)
	}

	d.calls[name] = registeredCall{kind: kind, fn: fn}
	return nil
}

// MustRegister registers a handler, panicking on error.
func (d *Dispatcher) MustRegister(name string, kind Kind, fn Handler) {
	if err := d.Register(name, kind, fn); err != nil {
		panic(err)
	}
}

// Dispatch routes a call to its handler. The returned error is non-nil
// only for an unknown method (ErrMethodNotFound); operation failures are
// reported inside the Result.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, args json.RawMessage) (Result, error) {
	d.mu.RLock()
	c, exists := d.calls[name]
	d.mu.RUnlock()

	if !exists {
		return Result{}, fmt.Errorf("method %q: %w", name, ErrMethodNotFound)
	}
	return c.fn(ctx, args), nil
}

// KindOf returns the classification of a registered method.
func (d *Dispatcher) KindOf(name string) (Kind, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, exists := d.calls[name]
	return c.kind, exists
}

// Methods returns all registered method names, sorted.
func (d *Dispatcher) Methods() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.calls))
	for name := range d.calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Argument shapes for the built-in operations. Missing fields take their
// zero values; an empty body is a valid zero-argument call.

type addArgs struct {
	Text string `json:"text"`
}

type idArgs struct {
	ID ID `json:"id"`
}

type updateArgs struct {
	ID   ID     `json:"id"`
	Text string `json:"text"`
}

type pageArgs struct {
	Page ID `json:"page"`
}

// decodeArgs unmarshals raw call arguments into v.
func decodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		return nil
	}
	return json.Unmarshal(args, v)
}

func addHandler(reg *Registry) Handler {
	return func(ctx context.Context, args json.RawMessage) Result {
		var a addArgs
		if err := decodeArgs(args, &a); err != nil {
			return Errf("invalid arguments: %v", err)
		}
		id, err := reg.Add(ctx, a.Text)
		if err != nil {
			return Err(err)
		}
		return OK(id)
	}
}

func deleteHandler(reg *Registry) Handler {
	return func(ctx context.Context, args json.RawMessage) Result {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return Errf("invalid arguments: %v", err)
		}
		if err := reg.Delete(ctx, a.ID); err != nil {
			return Err(err)
		}
		return OK(nil)
	}
}

func readHandler(reg *Registry) Handler {
	return func(ctx context.Context, args json.RawMessage) Result {
		var a idArgs
		if err := decodeArgs(args, &a); err != nil {
			return Errf("invalid arguments: %v", err)
		}
		text, err := reg.Read(ctx, a.ID)
		if err != nil {
			return Err(err)
		}
		return OK(text)
	}
}

func readAllHandler(reg *Registry) Handler {
	return func(ctx context.Context, args json.RawMessage) Result {
		var a pageArgs
		if err := decodeArgs(args, &a); err != nil {
			return Errf("invalid arguments: %v", err)
		}
		page, err := reg.ReadAll(ctx, a.Page)
		if err != nil {
			return Err(err)
		}
		return OK(page)
	}
}

func updateHandler(reg *Registry) Handler {
	return func(ctx context.Context, args json.RawMessage) Result {
		var a updateArgs
		if err := decodeArgs(args, &a); err != nil {
			return Errf("invalid arguments: %v", err)
		}
		if err := reg.Update(ctx, a.ID, a.Text); err != nil {
			return Err(err)
		}
		return OK(nil)
	}
}
