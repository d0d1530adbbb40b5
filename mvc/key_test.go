package mvc_test

import (
	"testing"

	"github.com/sghaida/mvc/mvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mvc.TypeFor[alpha](), mvc.TypeFor[*alpha]())
	assert.NotEqual(t, mvc.TypeFor[alpha](), mvc.TypeFor[beta]())
	assert.Equal(t, "mvc_test.alpha", mvc.TypeFor[alpha]().Name())
	assert.Equal(t, "<nil>", mvc.Type{}.Name())
	assert.True(t, mvc.Type{}.IsZero())
}

func TestNewKey(t *testing.T) {
	t.Parallel()

	k1, err := mvc.NewKey(mvc.TypeFor[alpha](), "p1")
	require.NoError(t, err)
	k2, err := mvc.KeyFor[alpha]("p1")
	require.NoError(t, err)

	assert.Equal(t, k1, k2, "equality is structural")
	assert.Equal(t, "p1", k1.Discriminator())
	assert.Equal(t, mvc.TypeFor[alpha](), k1.Type())
	assert.Equal(t, `mvc_test.alpha["p1"]`, k1.String())
	assert.False(t, k1.IsZero())

	k3, err := mvc.KeyFor[alpha](3)
	require.NoError(t, err)
	assert.Equal(t, "mvc_test.alpha[3]", k3.String())

	m := map[mvc.Key]int{k1: 1}
	assert.Equal(t, 1, m[k2])
}

func TestNewKey_Invalid(t *testing.T) {
	t.Parallel()

	_, err := mvc.NewKey(mvc.Type{}, "x")
	assert.ErrorIs(t, err, mvc.ErrInvalidArgument)

	_, err = mvc.NewKey(mvc.TypeFor[alpha](), nil)
	assert.ErrorIs(t, err, mvc.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "discriminator is nil")

	_, err = mvc.NewKey(mvc.TypeFor[alpha](), map[string]int{})
	assert.ErrorIs(t, err, mvc.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "not comparable")
}

// boxed has a comparable type whose value may still be unhashable.
type boxed struct{ X any }

func TestNewKey_UnhashableValue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		disc any
		ok   bool
	}{
		{name: "slice in interface field", disc: boxed{X: []int{1}}},
		{name: "map in nested interface", disc: boxed{X: boxed{X: map[int]int{}}}},
		{name: "func in array", disc: [2]any{1, func() {}}},
		{name: "nil interface field", disc: boxed{}, ok: true},
		{name: "scalar in interface field", disc: boxed{X: "p1"}, ok: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := mvc.KeyFor[alpha](tc.disc)
			if tc.ok {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, mvc.ErrInvalidArgument)
		})
	}

	r := mvc.NewRegistry()
	assert.NotPanics(t, func() {
		_, err := mvc.Create[alpha](r, boxed{X: []int{1}})
		assert.ErrorIs(t, err, mvc.ErrInvalidArgument)
	})
	assert.Equal(t, 0, r.Count())
}
