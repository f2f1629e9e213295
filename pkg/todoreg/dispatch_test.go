package todoreg_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mparente/todoreg/pkg/todoreg"
)

func newDispatcher(t *testing.T) (*todoreg.Dispatcher, *todoreg.Registry) {
	t.Helper()
	reg := newRegistry(t)
	return todoreg.NewDispatcher(reg), reg
}

func dispatch(t *testing.T, d *todoreg.Dispatcher, method, args string) todoreg.Result {
	t.Helper()
	res, err := d.Dispatch(context.Background(), method, json.RawMessage(args))
	require.NoError(t, err)
	return res
}

func TestDispatcher_Methods(t *testing.T) {
	d, _ := newDispatcher(t)
	assert.Equal(t, []string{"add", "delete", "read", "read_all", "update"}, d.Methods())
}

func TestDispatcher_Kinds(t *testing.T) {
	d, _ := newDispatcher(t)

	queries := []string{"read", "read_all"}
	for _, name := range queries {
		kind, ok := d.KindOf(name)
		require.True(t, ok)
		assert.Equal(t, todoreg.KindQuery, kind, name)
	}

	updates := []string{"add", "delete", "update"}
	for _, name := range updates {
		kind, ok := d.KindOf(name)
		require.True(t, ok)
		assert.Equal(t, todoreg.KindUpdate, kind, name)
	}
}

func TestDispatcher_RoundTrip(t *testing.T) {
	d, _ := newDispatcher(t)

	res := dispatch(t, d, "add", `{"text":"buy milk"}`)
	require.True(t, res.IsOK())
	assert.Equal(t, todoreg.ID(0), res.Value())

	res = dispatch(t, d, "read", `{"id":0}`)
	require.True(t, res.IsOK())
	assert.Equal(t, "buy milk", res.Value())

	res = dispatch(t, d, "update", `{"id":0,"text":"walk cat"}`)
	require.True(t, res.IsOK())
	assert.Nil(t, res.Value())

	res = dispatch(t, d, "read_all", `{"page":1}`)
	require.True(t, res.IsOK())
	page, ok := res.Value().(todoreg.Page)
	require.True(t, ok)
	assert.Equal(t, []string{"walk cat"}, page.Items)
	assert.Nil(t, page.Next)

	res = dispatch(t, d, "delete", `{"id":0}`)
	require.True(t, res.IsOK())

	res = dispatch(t, d, "read", `{"id":0}`)
	require.False(t, res.IsOK())
	assert.Contains(t, res.ErrMsg(), "not found")
}

func TestDispatcher_UnknownMethod(t *testing.T) {
	d, _ := newDispatcher(t)

	_, err := d.Dispatch(context.Background(), "drop_all", nil)
	assert.ErrorIs(t, err, todoreg.ErrMethodNotFound)
}

func TestDispatcher_MalformedArgs(t *testing.T) {
	d, _ := newDispatcher(t)

	res := dispatch(t, d, "read", `{"id":"not a number"`)
	require.False(t, res.IsOK())
	assert.Contains(t, res.ErrMsg(), "invalid arguments")
}

func TestDispatcher_EmptyArgs(t *testing.T) {
	d, _ := newDispatcher(t)

	// Zero-valued arguments: read_all defaults to page 1.
	res := dispatch(t, d, "read_all", "")
	require.True(t, res.IsOK())
}

func TestDispatcher_QueryDoesNotMutate(t *testing.T) {
	d, reg := newDispatcher(t)

	dispatch(t, d, "add", `{"text":"stable"}`)

	before, err := reg.Len()
	require.NoError(t, err)

	dispatch(t, d, "read", `{"id":0}`)
	dispatch(t, d, "read_all", `{"page":1}`)

	after, err := reg.Len()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	res := dispatch(t, d, "read", `{"id":0}`)
	require.True(t, res.IsOK())
	assert.Equal(t, "stable", res.Value())
}

func TestDispatcher_RegisterValidation(t *testing.T) {
	d, _ := newDispatcher(t)

	assert.Error(t, d.Register("", todoreg.KindQuery, func(context.Context, json.RawMessage) todoreg.Result {
		return todoreg.OK(nil)
	}))
	assert.Error(t, d.Register("probe", todoreg.KindQuery, nil))
	assert.Error(t, d.Register("add", todoreg.KindUpdate, func(context.Context, json.RawMessage) todoreg.Result {
		return todoreg.OK(nil)
	}))
}
