package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendLog(log *[]string, entry string) Handler {
	return HandlerFunc(func(key, value []byte) {
		*log = append(*log, entry)
	})
}

func TestRegisterValidation(t *testing.T) {
	r := &Registry{}

	err := r.Register(nil)
	assert.ErrorIs(t, err, ErrNilPlugin)

	err = r.Register(&Plugin{Name: "p", Hook: Type(9), Handler: HandlerFunc(func(k, v []byte) {})})
	assert.ErrorIs(t, err, ErrInvalidHook)

	err = r.Register(&Plugin{Name: "p", Hook: BeforeGet})
	assert.ErrorIs(t, err, ErrNilHandler)

	assert.Equal(t, 0, r.Len())
}

func TestDispatchOrder(t *testing.T) {
	var log []string
	r := &Registry{}

	require.NoError(t, r.Register(&Plugin{Name: "P1", Hook: BeforeSave, Handler: appendLog(&log, "P1")}))
	require.NoError(t, r.Register(&Plugin{Name: "P2", Hook: BeforeSave, Handler: appendLog(&log, "P2")}))

	r.Dispatch(BeforeSave, []byte("k"), []byte("v"))
	assert.Equal(t, []string{"P1", "P2"}, log)

	// A second dispatch runs the same plugins again, in the same order.
	r.Dispatch(BeforeSave, []byte("k"), []byte("v"))
	assert.Equal(t, []string{"P1", "P2", "P1", "P2"}, log)
}

func TestDispatchOnlyMatchingHook(t *testing.T) {
	var log []string
	r := &Registry{}

	require.NoError(t, r.Register(&Plugin{Name: "after", Hook: AfterGet, Handler: appendLog(&log, "after")}))

	r.Dispatch(BeforeGet, []byte("k"), nil)
	assert.Empty(t, log)

	r.Dispatch(AfterGet, []byte("k"), []byte("v"))
	assert.Equal(t, []string{"after"}, log)
}

func TestDispatchEmptyBucket(t *testing.T) {
	r := &Registry{}
	// No plugins registered anywhere; must be a no-op for every hook.
	for typ := BeforeGet; typ < numTypes; typ++ {
		r.Dispatch(typ, []byte("k"), []byte("v"))
	}
}

func TestDispatchInvalidHook(t *testing.T) {
	r := &Registry{}
	r.Dispatch(Type(99), []byte("k"), []byte("v"))
}

func TestDispatchMutationVisibility(t *testing.T) {
	r := &Registry{}

	// The first handler increments the leading byte of the value in place;
	// the second observes the mutated buffer.
	var seen byte
	require.NoError(t, r.Register(&Plugin{
		Name: "incr",
		Hook: BeforeSave,
		Handler: HandlerFunc(func(key, value []byte) {
			value[0]++
		}),
	}))
	require.NoError(t, r.Register(&Plugin{
		Name: "observe",
		Hook: BeforeSave,
		Handler: HandlerFunc(func(key, value []byte) {
			seen = value[0]
		}),
	}))

	value := []byte{7, 'x'}
	r.Dispatch(BeforeSave, []byte("k"), value)

	assert.Equal(t, byte(8), seen, "second handler should see the first handler's mutation")
	assert.Equal(t, byte(8), value[0], "mutation should be visible to the caller after dispatch")
}

func TestDuplicateNamesAllowed(t *testing.T) {
	var log []string
	r := &Registry{}

	require.NoError(t, r.Register(&Plugin{Name: "dup", Hook: AfterSave, Handler: appendLog(&log, "first")}))
	require.NoError(t, r.Register(&Plugin{Name: "dup", Hook: AfterSave, Handler: appendLog(&log, "second")}))

	r.Dispatch(AfterSave, []byte("k"), []byte("v"))
	assert.Equal(t, []string{"first", "second"}, log)
}

func TestIDsDistinguishDuplicateNames(t *testing.T) {
	r := &Registry{}
	noop := HandlerFunc(func(k, v []byte) {})
	require.NoError(t, r.Register(&Plugin{Name: "dup", Hook: BeforeGet, Handler: noop}))
	require.NoError(t, r.Register(&Plugin{Name: "dup", Hook: BeforeGet, Handler: noop}))

	ids := r.IDs(BeforeGet)
	require.Len(t, ids, 2)
	assert.NotEqual(t, ids[0], ids[1])
	assert.Nil(t, r.IDs(Type(77)))
}

func TestRegistered(t *testing.T) {
	r := &Registry{}
	p1 := &Plugin{Name: "a", Hook: BeforeDelete, Handler: HandlerFunc(func(k, v []byte) {})}
	p2 := &Plugin{Name: "b", Hook: BeforeDelete, Handler: HandlerFunc(func(k, v []byte) {})}
	require.NoError(t, r.Register(p1))
	require.NoError(t, r.Register(p2))

	got := r.Registered(BeforeDelete)
	require.Len(t, got, 2)
	assert.Same(t, p1, got[0])
	assert.Same(t, p2, got[1])

	assert.Empty(t, r.Registered(AfterDelete))
	assert.Nil(t, r.Registered(Type(50)))
	assert.Equal(t, 2, r.Len())
}
