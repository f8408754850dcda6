package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"gastos/shared"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend implements the collection endpoints in memory, speaking the
// same stream protocol as the real server.
type fakeBackend struct {
	mu          sync.Mutex
	seq         int
	expenses    []*shared.Expense
	posts       []*shared.Post
	users       map[string]*shared.User
	userLookups map[string]int
	likes       map[string]map[string]bool
	watchers    []chan struct{}
	streamErr   *shared.ApiError
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		users:       map[string]*shared.User{},
		userLookups: map[string]int{},
		likes:       map[string]map[string]bool{},
	}
}

func (b *fakeBackend) addUser(user *shared.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[user.Id] = user
}

func (b *fakeBackend) addPost(userId, description string) *shared.Post {
	b.mu.Lock()
	defer b.mu.Unlock()
	post := &shared.Post{
		Id:          b.nextId("p"),
		UserId:      userId,
		Description: description,
		Likes:       []string{},
	}
	b.posts = append([]*shared.Post{post}, b.posts...)
	return post
}

func (b *fakeBackend) lookupCount(userId string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.userLookups[userId]
}

func (b *fakeBackend) setStreamErr(apiErr *shared.ApiError) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.streamErr = apiErr
}

func (b *fakeBackend) nextId(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s-%d", prefix, b.seq)
}

func (b *fakeBackend) publish() {
	b.mu.Lock()
	watchers := make([]chan struct{}, len(b.watchers))
	copy(watchers, b.watchers)
	b.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (b *fakeBackend) expenseSnapshot() json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	bytes, _ := json.Marshal(b.expenses)
	return bytes
}

func (b *fakeBackend) postSnapshot() json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	bytes, _ := json.Marshal(b.posts)
	return bytes
}

func (b *fakeBackend) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/expenses", func(w http.ResponseWriter, req *http.Request) {
		var body shared.CreateExpenseRequest
		json.NewDecoder(req.Body).Decode(&body)

		date, _ := time.Parse("2006-01-02", body.Date)
		expense := &shared.Expense{
			Id:          b.nextId("e"),
			Description: body.Description,
			Value:       body.Value,
			Date:        date,
		}

		b.mu.Lock()
		// newest first, matching server ordering for same-day expenses
		b.expenses = append([]*shared.Expense{expense}, b.expenses...)
		b.mu.Unlock()

		b.publish()
		json.NewEncoder(w).Encode(expense)
	}).Methods("POST")

	r.HandleFunc("/expenses", func(w http.ResponseWriter, req *http.Request) {
		w.Write(b.expenseSnapshot())
	}).Methods("GET")

	r.HandleFunc("/expenses/stream", func(w http.ResponseWriter, req *http.Request) {
		b.streamHandler(w, req, b.expenseSnapshot)
	}).Methods("GET")

	r.HandleFunc("/expenses/{expenseId}", func(w http.ResponseWriter, req *http.Request) {
		expenseId := mux.Vars(req)["expenseId"]

		var body shared.UpdateExpenseRequest
		json.NewDecoder(req.Body).Decode(&body)

		b.mu.Lock()
		var updated *shared.Expense
		for _, e := range b.expenses {
			if e.Id == expenseId {
				e.Description = body.Description
				e.Value = body.Value
				updated = e
			}
		}
		b.mu.Unlock()

		if updated == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(shared.ApiError{Type: shared.ApiErrorTypeNotFound, Status: 404, Msg: "expense not found"})
			return
		}

		b.publish()
		json.NewEncoder(w).Encode(updated)
	}).Methods("PUT")

	r.HandleFunc("/expenses/{expenseId}", func(w http.ResponseWriter, req *http.Request) {
		expenseId := mux.Vars(req)["expenseId"]

		b.mu.Lock()
		kept := b.expenses[:0]
		for _, e := range b.expenses {
			if e.Id != expenseId {
				kept = append(kept, e)
			}
		}
		b.expenses = kept
		b.mu.Unlock()

		b.publish()
		w.WriteHeader(http.StatusOK)
	}).Methods("DELETE")

	r.HandleFunc("/posts", func(w http.ResponseWriter, req *http.Request) {
		w.Write(b.postSnapshot())
	}).Methods("GET")

	r.HandleFunc("/users/{userId}", func(w http.ResponseWriter, req *http.Request) {
		userId := mux.Vars(req)["userId"]

		b.mu.Lock()
		b.userLookups[userId]++
		user := b.users[userId]
		b.mu.Unlock()

		if user == nil {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(shared.ApiError{Type: shared.ApiErrorTypeNotFound, Status: 404, Msg: "user not found"})
			return
		}
		json.NewEncoder(w).Encode(user)
	}).Methods("GET")

	r.HandleFunc("/users/{userId}/posts", func(w http.ResponseWriter, req *http.Request) {
		userId := mux.Vars(req)["userId"]

		b.mu.Lock()
		posts := []*shared.Post{}
		for _, p := range b.posts {
			if p.UserId == userId {
				posts = append(posts, p)
			}
		}
		b.mu.Unlock()

		json.NewEncoder(w).Encode(posts)
	}).Methods("GET")

	r.HandleFunc("/posts/{postId}/like", func(w http.ResponseWriter, req *http.Request) {
		postId := mux.Vars(req)["postId"]
		userId := "test-user"

		b.mu.Lock()
		if b.likes[postId] == nil {
			b.likes[postId] = map[string]bool{}
		}
		var liked bool
		if b.likes[postId][userId] {
			delete(b.likes[postId], userId)
		} else {
			b.likes[postId][userId] = true
			liked = true
		}
		likes := []string{}
		for id := range b.likes[postId] {
			likes = append(likes, id)
		}
		b.mu.Unlock()

		b.publish()
		json.NewEncoder(w).Encode(shared.ToggleLikeResponse{Liked: liked, Likes: likes})
	}).Methods("POST")

	return r
}

func (b *fakeBackend) streamHandler(w http.ResponseWriter, req *http.Request, snapshot func() json.RawMessage) {
	flusher := w.(http.Flusher)
	w.Header().Set("Transfer-Encoding", "chunked")
	w.WriteHeader(http.StatusOK)

	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.watchers = append(b.watchers, ch)
	b.mu.Unlock()

	send := func(msg shared.StreamMessage) {
		bytes, _ := json.Marshal(msg)
		w.Write(bytes)
		w.Write([]byte(shared.STREAM_MESSAGE_SEPARATOR))
		flusher.Flush()
	}

	send(shared.StreamMessage{Type: shared.StreamMessageStart})

	b.mu.Lock()
	streamErr := b.streamErr
	b.mu.Unlock()
	if streamErr != nil {
		send(shared.StreamMessage{Type: shared.StreamMessageError, Error: streamErr})
		return
	}

	send(shared.StreamMessage{Type: shared.StreamMessageSnapshot, Snapshot: snapshot()})

	heartbeat := time.NewTicker(50 * time.Millisecond)
	defer heartbeat.Stop()

	for {
		select {
		case <-req.Context().Done():
			return
		case <-ch:
			send(shared.StreamMessage{Type: shared.StreamMessageSnapshot, Snapshot: snapshot()})
		case <-heartbeat.C:
			w.Write([]byte(shared.StreamMessageHeartbeat))
			w.Write([]byte(shared.STREAM_MESSAGE_SEPARATOR))
			flusher.Flush()
		}
	}
}

type snapshotRecorder struct {
	mu        sync.Mutex
	snapshots [][]*shared.Expense
}

func (r *snapshotRecorder) record(expenses []*shared.Expense) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, expenses)
}

func (r *snapshotRecorder) latest() []*shared.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return nil
	}
	return r.snapshots[len(r.snapshots)-1]
}

func (r *snapshotRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.snapshots)
}

func (r *snapshotRecorder) waitFor(t *testing.T, pred func([]*shared.Expense) bool) []*shared.Expense {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot, latest: %+v", r.latest())
		case <-time.After(10 * time.Millisecond):
			if latest := r.latest(); r.count() > 0 && pred(latest) {
				return latest
			}
		}
	}
}

func TestExpenseCollectionLiveUpdates(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	recorder := &snapshotRecorder{}
	collection := NewExpenseCollection(c, recorder.record, func(err error) {
		t.Errorf("unexpected stream error: %v", err)
	})

	require.Nil(t, collection.Start())
	defer collection.Stop()

	// initial snapshot is empty
	recorder.waitFor(t, func(expenses []*shared.Expense) bool {
		return len(expenses) == 0
	})

	// add a lunch expense, watch it arrive over the stream
	expense, apiErr := c.CreateExpense(shared.CreateExpenseRequest{
		Description: "Almoço",
		Value:       23.50,
		Date:        "2026-08-30",
	})
	require.Nil(t, apiErr)

	snapshot := recorder.waitFor(t, func(expenses []*shared.Expense) bool {
		return len(expenses) == 1
	})
	assert.Equal(t, "Almoço", snapshot[0].Description)
	assert.Equal(t, "23.5", ExpenseTotal(snapshot).String())

	// correct the value, the total recomputes from the fresh snapshot
	_, apiErr = c.UpdateExpense(expense.Id, shared.UpdateExpenseRequest{
		Description: "Almoço",
		Value:       30.00,
		Date:        "2026-08-30",
	})
	require.Nil(t, apiErr)

	snapshot = recorder.waitFor(t, func(expenses []*shared.Expense) bool {
		return len(expenses) == 1 && expenses[0].Value == 30.00
	})
	assert.Equal(t, "30", ExpenseTotal(snapshot).String())

	// delete it, the collection empties again
	require.Nil(t, c.DeleteExpense(expense.Id))

	snapshot = recorder.waitFor(t, func(expenses []*shared.Expense) bool {
		return len(expenses) == 0
	})
	assert.Equal(t, "0", ExpenseTotal(snapshot).String())
}

func TestExpenseCollectionOrdering(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	for _, desc := range []string{"first", "second", "third"} {
		_, apiErr := c.CreateExpense(shared.CreateExpenseRequest{Description: desc, Value: 1, Date: "2026-08-30"})
		require.Nil(t, apiErr)
	}

	recorder := &snapshotRecorder{}
	collection := NewExpenseCollection(c, recorder.record, nil)
	require.Nil(t, collection.Start())
	defer collection.Stop()

	// server ordering is preserved as-is: newest first
	snapshot := recorder.waitFor(t, func(expenses []*shared.Expense) bool {
		return len(expenses) == 3
	})
	assert.Equal(t, "third", snapshot[0].Description)
	assert.Equal(t, "second", snapshot[1].Description)
	assert.Equal(t, "first", snapshot[2].Description)
}

func TestCollectionStopDiscardsLateSnapshots(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	recorder := &snapshotRecorder{}
	collection := NewExpenseCollection(c, recorder.record, nil)
	require.Nil(t, collection.Start())

	recorder.waitFor(t, func(expenses []*shared.Expense) bool { return true })

	collection.Stop()
	countAtStop := recorder.count()

	_, apiErr := c.CreateExpense(shared.CreateExpenseRequest{Description: "late", Value: 1, Date: "2026-08-30"})
	require.Nil(t, apiErr)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, countAtStop, recorder.count(), "no snapshots delivered after Stop")

	// Stop is idempotent
	collection.Stop()
}

func TestRefreshResolvesAndCachesAuthors(t *testing.T) {
	backend := newFakeBackend()
	backend.addUser(&shared.User{Id: "u1", Name: "Maria"})
	backend.addPost("u1", "Primeiro post")
	backend.addPost("u1", "Segundo post")
	backend.addPost("ghost", "Post órfão")
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	collection := NewPostCollection(c, nil, nil)

	require.Nil(t, collection.Refresh())

	posts := collection.Records()
	require.Len(t, posts, 3)
	assert.Equal(t, "Post órfão", posts[0].Description)
	assert.Equal(t, UnknownAuthorName, posts[0].UserName)
	assert.Equal(t, "Maria", posts[1].UserName)
	assert.Equal(t, "Maria", posts[2].UserName)

	// two posts by the same author cost one lookup
	assert.Equal(t, 1, backend.lookupCount("u1"))
	assert.Equal(t, 1, backend.lookupCount("ghost"))

	// a second refresh on the same collection hits the cache, including the
	// not-found entry
	require.Nil(t, collection.Refresh())
	assert.Equal(t, 1, backend.lookupCount("u1"))
	assert.Equal(t, 1, backend.lookupCount("ghost"))
	assert.Equal(t, "Maria", collection.Records()[1].UserName)
}

func TestListUserPosts(t *testing.T) {
	backend := newFakeBackend()
	backend.addUser(&shared.User{Id: "u1", Name: "Maria"})
	backend.addUser(&shared.User{Id: "u2", Name: "João"})
	backend.addPost("u1", "da Maria")
	backend.addPost("u2", "do João")
	backend.addPost("u1", "da Maria de novo")
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	posts, apiErr := c.ListUserPosts("u1")
	require.Nil(t, apiErr)
	require.Len(t, posts, 2)
	for _, post := range posts {
		assert.Equal(t, "u1", post.UserId)
	}

	posts, apiErr = c.ListUserPosts("u3")
	require.Nil(t, apiErr)
	assert.Empty(t, posts)
}

func TestStreamErrorTearsDownAndAllowsRestart(t *testing.T) {
	backend := newFakeBackend()
	backend.setStreamErr(&shared.ApiError{Type: shared.ApiErrorTypeOther, Status: 500, Msg: "collection unavailable"})
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	errCh := make(chan error, 1)
	recorder := &snapshotRecorder{}
	collection := NewExpenseCollection(c, recorder.record, func(err error) {
		errCh <- err
	})

	require.Nil(t, collection.Start())

	select {
	case err := <-errCh:
		assert.Contains(t, err.Error(), "collection unavailable")
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for stream error")
	}

	// the failed stream was torn down, so the collection can start again
	// once the backend recovers
	backend.setStreamErr(nil)
	require.Nil(t, collection.Start())
	defer collection.Stop()

	recorder.waitFor(t, func(expenses []*shared.Expense) bool { return true })
}

func TestToggleLikeRoundTrip(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	res, apiErr := c.ToggleLike("p1")
	require.Nil(t, apiErr)
	assert.True(t, res.Liked)
	assert.Equal(t, []string{"test-user"}, res.Likes)

	// toggling again removes the like rather than duplicating it
	res, apiErr = c.ToggleLike("p1")
	require.Nil(t, apiErr)
	assert.False(t, res.Liked)
	assert.Empty(t, res.Likes)

	res, apiErr = c.ToggleLike("p1")
	require.Nil(t, apiErr)
	assert.True(t, res.Liked)
	assert.Len(t, res.Likes, 1)
}

func TestCollectionRestart(t *testing.T) {
	backend := newFakeBackend()
	server := httptest.NewServer(backend.router())
	defer server.Close()

	c := NewClient(server.URL)
	c.SetAuth(&ClientAuth{UserId: "test-user", Token: "test-token"})

	recorder := &snapshotRecorder{}
	collection := NewExpenseCollection(c, recorder.record, nil)

	require.Nil(t, collection.Start())
	assert.NotNil(t, collection.Start(), "second Start without Stop should fail")

	collection.Stop()

	// a stopped collection can be started again
	require.Nil(t, collection.Start())
	defer collection.Stop()

	recorder.waitFor(t, func(expenses []*shared.Expense) bool { return true })
}
