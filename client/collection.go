package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"gastos/shared"
)

// Record is implemented by every model a live collection can hold.
type Record interface {
	AuthorId() string
	ApplyAuthor(shared.AuthorInfo)
}

// LiveCollection keeps an ordered, author-annotated snapshot of one server
// collection, updated over the live stream. Start subscribes, Stop tears
// down; snapshots arriving after Stop are discarded. Ordering is decided by
// the server and preserved as-is.
type LiveCollection[T Record] struct {
	client     *Client
	listPath   string
	streamPath string
	authors    *AuthorCache

	onChange func([]T)
	onError  func(error)

	mu      sync.Mutex
	records []T
	conn    *streamConn
	stopped bool
}

type CollectionParams[T Record] struct {
	ListPath   string
	StreamPath string
	OnChange   func([]T)
	OnError    func(error)
}

func newLiveCollection[T Record](client *Client, params CollectionParams[T]) *LiveCollection[T] {
	return &LiveCollection[T]{
		client:     client,
		listPath:   params.ListPath,
		streamPath: params.StreamPath,
		authors:    NewAuthorCache(client),
		onChange:   params.OnChange,
		onError:    params.OnError,
	}
}

func NewExpenseCollection(client *Client, onChange func([]*shared.Expense), onError func(error)) *LiveCollection[*shared.Expense] {
	return newLiveCollection(client, CollectionParams[*shared.Expense]{
		ListPath:   "/expenses",
		StreamPath: "/expenses/stream",
		OnChange:   onChange,
		OnError:    onError,
	})
}

func NewPostCollection(client *Client, onChange func([]*shared.Post), onError func(error)) *LiveCollection[*shared.Post] {
	return newLiveCollection(client, CollectionParams[*shared.Post]{
		ListPath:   "/posts",
		StreamPath: "/posts/stream",
		OnChange:   onChange,
		OnError:    onError,
	})
}

func NewCommentCollection(client *Client, postId string, onChange func([]*shared.Comment), onError func(error)) *LiveCollection[*shared.Comment] {
	return newLiveCollection(client, CollectionParams[*shared.Comment]{
		ListPath:   "/posts/" + postId + "/comments",
		StreamPath: "/posts/" + postId + "/comments/stream",
		OnChange:   onChange,
		OnError:    onError,
	})
}

// Start opens the live subscription. The author cache is created fresh per
// Start, so remounting re-resolves authors.
func (c *LiveCollection[T]) Start() *shared.ApiError {
	c.mu.Lock()
	if c.conn != nil {
		c.mu.Unlock()
		return apiErr(fmt.Errorf("collection already started"))
	}
	c.stopped = false
	c.authors = NewAuthorCache(c.client)
	c.mu.Unlock()

	conn, apiError := c.client.connectStream(c.streamPath, c.handleStreamMessage)
	if apiError != nil {
		return apiError
	}

	c.mu.Lock()
	if c.stopped {
		// Stop raced the connect. Drop the stream.
		c.mu.Unlock()
		conn.close()
		return nil
	}
	c.conn = conn
	c.mu.Unlock()

	return nil
}

// Stop tears the subscription down. Idempotent.
func (c *LiveCollection[T]) Stop() {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.stopped = true
	c.mu.Unlock()

	if conn != nil {
		conn.close()
	}
}

// Records returns a copy of the current snapshot.
func (c *LiveCollection[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	records := make([]T, len(c.records))
	copy(records, c.records)
	return records
}

// Refresh fetches the collection once, outside the stream, and applies it.
func (c *LiveCollection[T]) Refresh() *shared.ApiError {
	var records []T
	apiError := c.client.doJson(c.client.authenticatedClient, http.MethodGet, c.listPath, nil, &records)
	if apiError != nil {
		return apiError
	}
	c.applySnapshot(records)
	return nil
}

func (c *LiveCollection[T]) handleStreamMessage(msg *shared.StreamMessage, err error) {
	c.mu.Lock()
	stopped := c.stopped
	c.mu.Unlock()
	if stopped {
		return
	}

	if err != nil {
		c.fail(err)
		return
	}

	switch msg.Type {
	case shared.StreamMessageStart:
		// subscription confirmed, nothing to apply yet

	case shared.StreamMessageSnapshot:
		var records []T
		if err := json.Unmarshal(msg.Snapshot, &records); err != nil {
			c.fail(fmt.Errorf("error unmarshalling snapshot: %v", err))
			return
		}
		c.applySnapshot(records)

	case shared.StreamMessageError:
		c.fail(msg.Error)
	}
}

func (c *LiveCollection[T]) applySnapshot(records []T) {
	c.annotateAuthors(records)

	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.records = records
	onChange := c.onChange
	c.mu.Unlock()

	if onChange != nil {
		onChange(records)
	}
}

// annotateAuthors resolves author ids through the collection's cache, which
// lives as long as the collection instance: repeated Refreshes hit the cache
// instead of re-issuing every lookup. Start replaces it so a remount
// re-resolves.
func (c *LiveCollection[T]) annotateAuthors(records []T) {
	c.mu.Lock()
	authors := c.authors
	c.mu.Unlock()

	var ids []string
	for _, record := range records {
		if id := record.AuthorId(); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return
	}

	resolved := authors.Resolve(ids)
	for _, record := range records {
		if info, ok := resolved[record.AuthorId()]; ok {
			record.ApplyAuthor(info)
		}
	}
}

// fail tears the subscription down on a terminal stream error. Closing the
// body here also unblocks the reader goroutine, which would otherwise stay
// parked in Read until a later Stop. The collection can be started again
// afterwards.
func (c *LiveCollection[T]) fail(err error) {
	c.mu.Lock()
	stopped := c.stopped
	onError := c.onError
	conn := c.conn
	c.conn = nil
	c.stopped = true
	c.mu.Unlock()
	if stopped {
		return
	}

	if conn != nil {
		conn.close()
	}

	if onError != nil {
		onError(err)
	}
}

// ExpenseTotal sums expense values without accumulating float error.
func ExpenseTotal(expenses []*shared.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(decimal.NewFromFloat(expense.Value))
	}
	return total
}
