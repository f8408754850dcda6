package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"gastos/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})
	return c, server
}

type userDirectory struct {
	mu    sync.Mutex
	users map[string]shared.User
	calls map[string]int
	fail  bool
}

func (d *userDirectory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := r.URL.Path[len("/users/"):]
	d.calls[id]++

	if d.fail {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(shared.ApiError{Type: shared.ApiErrorTypeOther, Status: 500, Msg: "boom"})
		return
	}

	user, ok := d.users[id]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(shared.ApiError{Type: shared.ApiErrorTypeNotFound, Status: 404, Msg: "user not found"})
		return
	}

	json.NewEncoder(w).Encode(user)
}

func TestAuthorCacheResolves(t *testing.T) {
	dir := &userDirectory{
		users: map[string]shared.User{
			"u1": {Id: "u1", Name: "Maria"},
			"u2": {Id: "u2", Name: "João"},
		},
		calls: map[string]int{},
	}
	c, _ := newTestClient(t, dir)

	cache := NewAuthorCache(c)

	resolved := cache.Resolve([]string{"u1", "u2", "u1"})
	require.Len(t, resolved, 2)
	assert.Equal(t, "Maria", resolved["u1"].Name)
	assert.Equal(t, "João", resolved["u2"].Name)

	// second batch hits the cache, not the server
	resolved = cache.Resolve([]string{"u1", "u2"})
	assert.Equal(t, "Maria", resolved["u1"].Name)

	assert.Equal(t, 1, dir.calls["u1"])
	assert.Equal(t, 1, dir.calls["u2"])
}

func TestAuthorCacheNotFoundIsCached(t *testing.T) {
	dir := &userDirectory{users: map[string]shared.User{}, calls: map[string]int{}}
	c, _ := newTestClient(t, dir)

	cache := NewAuthorCache(c)

	resolved := cache.Resolve([]string{"ghost"})
	assert.Equal(t, UnknownAuthorName, resolved["ghost"].Name)

	// a deleted account isn't re-fetched on every snapshot
	cache.Resolve([]string{"ghost"})
	assert.Equal(t, 1, dir.calls["ghost"])
	assert.True(t, cache.Cached("ghost"))
}

func TestAuthorCacheErrorIsNotCached(t *testing.T) {
	dir := &userDirectory{
		users: map[string]shared.User{"u1": {Id: "u1", Name: "Maria"}},
		calls: map[string]int{},
		fail:  true,
	}
	c, _ := newTestClient(t, dir)

	cache := NewAuthorCache(c)

	resolved := cache.Resolve([]string{"u1"})
	assert.Equal(t, UnknownAuthorName, resolved["u1"].Name)
	assert.False(t, cache.Cached("u1"))

	// once the server recovers, the next batch resolves and caches
	dir.mu.Lock()
	dir.fail = false
	dir.mu.Unlock()

	resolved = cache.Resolve([]string{"u1"})
	assert.Equal(t, "Maria", resolved["u1"].Name)
	assert.True(t, cache.Cached("u1"))
	assert.Equal(t, 2, dir.calls["u1"])
}
