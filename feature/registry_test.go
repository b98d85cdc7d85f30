package feature_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iw2rmb/lineguard/feature"
)

func TestRegistry_AddTwiceFails(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))

	f := &probe{}
	got, err := r.Add("x", f)
	require.NoError(t, err)
	assert.Same(t, f, got)

	_, err = r.Add("x", &probe{})
	var cfgErr *feature.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "x", cfgErr.Name)
	assert.ErrorIs(t, err, feature.ErrNameInUse)
	assert.Equal(t, []string{"x"}, r.List())
}

func TestRegistry_RemoveThenAdd(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))

	f1 := &probe{}
	_, err := r.Add("x", f1)
	require.NoError(t, err)
	require.NoError(t, r.Remove("x"))
	assert.Equal(t, 1, f1.deactivated)
	assert.Empty(t, r.List())

	f2 := &probe{}
	_, err = r.Add("x", f2)
	require.NoError(t, err)
	got, ok := r.Get("x")
	require.True(t, ok)
	assert.Same(t, f2, got)
}

func TestRegistry_RemoveUnknownIsNoOp(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))
	require.NoError(t, r.Remove("missing"))
	assert.Empty(t, r.List())
}

func TestRegistry_RejectsBadNames(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))

	cases := []struct {
		name string
		f    feature.Feature
		want error
	}{
		{"add", &probe{}, feature.ErrNameReserved},
		{"remove", &probe{}, feature.ErrNameReserved},
		{"list", &probe{}, feature.ErrNameReserved},
		{"", &probe{}, feature.ErrNameEmpty},
		{"nil", nil, feature.ErrNilFeature},
	}
	for _, tc := range cases {
		_, err := r.Add(tc.name, tc.f)
		assert.ErrorIs(t, err, tc.want, "name %q", tc.name)
	}
	assert.Empty(t, r.List())
}

func TestRegistry_AddIsAtomic(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))
	boom := errors.New("boom")

	_, err := r.Add("x", &probe{failWith: boom})
	require.ErrorIs(t, err, boom)
	assert.Empty(t, r.List())

	_, err = r.Add("x", &probe{})
	require.NoError(t, err)
}

type failingDeactivate struct {
	probe
	err error
}

func (f *failingDeactivate) Deactivate() error {
	return f.End(func() error { return f.err })
}

func TestRegistry_RemoveDropsEntryOnDeactivateError(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))
	boom := errors.New("boom")

	_, err := r.Add("x", &failingDeactivate{err: boom})
	require.NoError(t, err)

	require.ErrorIs(t, r.Remove("x"), boom)
	assert.Empty(t, r.List())
}

func TestRegistry_ListOrderAndRemoveAll(t *testing.T) {
	r := feature.NewRegistry(newEnv(newFakeSurface(3, 0)))

	var order []string
	for _, name := range []string{"c", "a", "b"} {
		_, err := r.Add(name, &recorder{name: name, order: &order})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"c", "a", "b"}, r.List())

	require.NoError(t, r.Remove("a"))
	assert.Equal(t, []string{"c", "b"}, r.List())

	require.NoError(t, r.RemoveAll())
	assert.Empty(t, r.List())
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

type recorder struct {
	feature.Base
	name  string
	order *[]string
}

func (f *recorder) Deactivate() error {
	return f.End(func() error {
		*f.order = append(*f.order, f.name)
		return nil
	})
}
