package mvc_test

import (
	"testing"

	"github.com/sghaida/mvc/mvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type change struct {
	who      string
	old, new string
}

// TestTrackable_NotifiesInOrderWithOldAndNew verifies ordered delivery of (old, new).
func TestTrackable_NotifiesInOrderWithOldAndNew(t *testing.T) {
	t.Parallel()

	tr := mvc.NewTrackable("idle")
	var got []change
	tr.Subscribe(func(o, n string) { got = append(got, change{"first", o, n}) })
	tr.Subscribe(func(o, n string) { got = append(got, change{"second", o, n}) })

	require.True(t, tr.Set("running"))
	assert.Equal(t, "running", tr.Value())
	assert.Equal(t, []change{
		{"first", "idle", "running"},
		{"second", "idle", "running"},
	}, got)
}

// TestTrackable_EqualValueIsNoOp verifies setting the current value notifies nobody.
func TestTrackable_EqualValueIsNoOp(t *testing.T) {
	t.Parallel()

	tr := mvc.NewTrackable(3)
	calls := 0
	tr.Subscribe(func(int, int) { calls++ })

	assert.False(t, tr.Set(3))
	assert.Equal(t, 0, calls)

	assert.True(t, tr.Set(4))
	assert.False(t, tr.Set(4))
	assert.Equal(t, 1, calls)
}

// TestTrackable_Unsubscribe verifies removed listeners stop receiving changes.
func TestTrackable_Unsubscribe(t *testing.T) {
	t.Parallel()

	tr := mvc.NewTrackable("a")
	var first, second int
	s1 := tr.Subscribe(func(string, string) { first++ })
	tr.Subscribe(func(string, string) { second++ })
	require.Equal(t, 2, tr.Len())

	assert.True(t, tr.Unsubscribe(s1))
	assert.False(t, tr.Unsubscribe(s1), "second unsubscribe is a no-op")
	assert.False(t, tr.Unsubscribe(0))
	assert.False(t, tr.Unsubscribe(9999))
	assert.Equal(t, 1, tr.Len())

	tr.Set("b")
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

// TestTrackable_NilListener verifies nil callbacks are not registered.
func TestTrackable_NilListener(t *testing.T) {
	t.Parallel()

	tr := mvc.NewTrackable(0)
	assert.Equal(t, mvc.Subscription(0), tr.Subscribe(nil))
	assert.Equal(t, 0, tr.Len())
	tr.Set(1)
}

// TestTrackable_MutationDuringNotification verifies listener changes mid-round.
func TestTrackable_MutationDuringNotification(t *testing.T) {
	t.Parallel()

	tr := mvc.NewTrackable(0)
	var order []string
	var s2 mvc.Subscription

	tr.Subscribe(func(int, int) {
		order = append(order, "one")
		tr.Unsubscribe(s2)
		tr.Subscribe(func(int, int) { order = append(order, "late") })
	})
	s2 = tr.Subscribe(func(int, int) { order = append(order, "two") })

	tr.Set(1)
	assert.Equal(t, []string{"one"}, order, "removed listener skipped, new one waits")

	order = nil
	tr.Set(2)
	assert.Equal(t, []string{"one", "late"}, order)
}

// TestTrackable_YAML verifies the bare value is rendered and decoding notifies.
func TestTrackable_YAML(t *testing.T) {
	t.Parallel()

	type holder struct {
		Status *mvc.Trackable[string] `yaml:"status"`
	}

	h := holder{Status: mvc.NewTrackable("idle")}
	out, err := yaml.Marshal(h)
	require.NoError(t, err)
	assert.Equal(t, "status: idle\n", string(out))

	orig := h.Status
	var seen []string
	h.Status.Subscribe(func(_, n string) { seen = append(seen, n) })

	require.NoError(t, yaml.Unmarshal([]byte("status: done\n"), &h))
	assert.Same(t, orig, h.Status, "existing trackable is updated in place")
	assert.Equal(t, "done", h.Status.Value())
	assert.Equal(t, []string{"done"}, seen)

	err = yaml.Unmarshal([]byte("status: [1, 2]\n"), &h)
	assert.Error(t, err)
	assert.Equal(t, "done", h.Status.Value())
}
