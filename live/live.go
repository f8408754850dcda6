// Package live is the server side of the app's live queries. Each collection
// path (e.g. "users/{uid}/expenses", "posts", "posts/{postId}/comments") has a
// set of subscribers; every successful mutation publishes the path and each
// subscriber's stream handler re-reads the collection and emits a fresh
// snapshot.
package live

import (
	"log"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
)

const verboseLogging = false

type subscription struct {
	id string
	ch chan struct{}
}

type collection struct {
	path          string
	subscriptions map[string]*subscription
}

var mu sync.Mutex
var collections = map[string]*collection{}

// Subscribe registers a subscriber for a collection path and returns a
// subscription id plus a channel that receives a signal whenever the
// collection changes. Signals are coalesced: a subscriber that hasn't drained
// the previous signal yet doesn't queue another, since each signal triggers a
// full re-read anyway.
func Subscribe(path string) (string, chan struct{}) {
	mu.Lock()
	defer mu.Unlock()

	coll, ok := collections[path]
	if !ok {
		coll = &collection{
			path:          path,
			subscriptions: map[string]*subscription{},
		}
		collections[path] = coll
	}

	sub := &subscription{
		id: uuid.New().String(),
		ch: make(chan struct{}, 1),
	}
	coll.subscriptions[sub.id] = sub

	log.Printf("live: subscribed to %s (%s)\n", path, sub.id)

	return sub.id, sub.ch
}

func Unsubscribe(path, subscriptionId string) {
	mu.Lock()
	defer mu.Unlock()

	coll, ok := collections[path]
	if !ok {
		return
	}

	delete(coll.subscriptions, subscriptionId)

	if len(coll.subscriptions) == 0 {
		delete(collections, path)
	}

	log.Printf("live: unsubscribed from %s (%s)\n", path, subscriptionId)
}

// Publish signals every subscriber of the path that the collection changed.
func Publish(path string) {
	mu.Lock()
	coll, ok := collections[path]
	if !ok {
		mu.Unlock()
		return
	}

	subs := make([]*subscription, 0, len(coll.subscriptions))
	for _, sub := range coll.subscriptions {
		subs = append(subs, sub)
	}
	mu.Unlock()

	if verboseLogging {
		log.Println("live: publishing change")
		log.Println(spew.Sdump(path, len(subs)))
	}

	for _, sub := range subs {
		select {
		case sub.ch <- struct{}{}:
		default:
			// a signal is already pending; the re-read will pick this change up
		}
	}
}

// NumActiveStreams reports open subscriptions across all collections. Used to
// drain streams before shutdown.
func NumActiveStreams() int {
	mu.Lock()
	defer mu.Unlock()

	n := 0
	for _, coll := range collections {
		n += len(coll.subscriptions)
	}
	return n
}
