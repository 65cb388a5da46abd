package memstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingKey(t *testing.T) {
	store := New()

	var v bool
	ok, err := store.Get("isCookieAllowed", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSetGetRoundTrip(t *testing.T) {
	store := New()

	require.NoError(t, store.Set("isCookieAllowed", true))

	var v bool
	ok, err := store.Get("isCookieAllowed", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)
}

func TestRemove(t *testing.T) {
	store := New()
	require.NoError(t, store.Set("flag", true))

	store.Remove("flag")

	var v bool
	ok, err := store.Get("flag", &v)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNamespacedKeysDoNotCollide(t *testing.T) {
	backing := New()
	a := Namespaced(backing, "checkout.embed")
	b := Namespaced(backing, "other")

	require.NoError(t, a.Set("flag", true))

	var v bool
	ok, err := b.Get("flag", &v)
	require.NoError(t, err)
	assert.False(t, ok, "namespaces must isolate keys")

	// The backing store sees the prefixed key
	ok, err = backing.Get("checkout.embed.flag", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, v)
}
