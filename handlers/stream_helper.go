package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gastos/live"
	"gastos/shared"
)

const heartbeatInterval = 5 * time.Second

// startCollectionStream runs the live-query loop for one subscriber: an
// initial snapshot, then a fresh snapshot whenever the hub signals a change,
// with heartbeats in between. fetch re-reads the collection and returns the
// full ordered result set, already marshalled.
func startCollectionStream(w http.ResponseWriter, r *http.Request, path string, fetch func() (json.RawMessage, error)) {
	log.Printf("Collection stream: starting for %s\n", path)

	w.Header().Set("Transfer-Encoding", "chunked")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	// send initial message to client
	err := sendStreamMessage(w, shared.StreamMessage{Type: shared.StreamMessageStart})
	if err != nil {
		log.Println("Collection stream: error sending initial message:", err)
		return
	}

	subscriptionId, ch := live.Subscribe(path)
	defer func() {
		log.Println("Collection stream: client stream closed")
		live.Unsubscribe(path, subscriptionId)
	}()

	sendSnapshot := func() error {
		snapshot, err := fetch()
		if err != nil {
			log.Printf("Collection stream: error fetching snapshot: %v\n", err)
			return sendStreamMessage(w, shared.StreamMessage{
				Type: shared.StreamMessageError,
				Error: &shared.ApiError{
					Type:   shared.ApiErrorTypeOther,
					Status: http.StatusInternalServerError,
					Msg:    "Error fetching snapshot",
				},
			})
		}

		return sendStreamMessage(w, shared.StreamMessage{
			Type:     shared.StreamMessageSnapshot,
			Snapshot: snapshot,
		})
	}

	if err := sendSnapshot(); err != nil {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			log.Println("Collection stream: client disconnected")
			return
		case <-ch:
			if err := sendSnapshot(); err != nil {
				return
			}
		case <-heartbeat.C:
			if err := sendRawStreamMessage(w, shared.StreamMessageHeartbeat); err != nil {
				return
			}
		}
	}
}

func sendStreamMessage(w http.ResponseWriter, msg shared.StreamMessage) error {
	bytes, err := json.Marshal(msg)

	if err != nil {
		log.Printf("Collection stream: error marshalling message: %v\n", err)
		return err
	}

	return sendRawStreamMessage(w, string(bytes))
}

func sendRawStreamMessage(w http.ResponseWriter, msg string) error {
	bytes := []byte(msg + shared.STREAM_MESSAGE_SEPARATOR)

	_, err := w.Write(bytes)
	if err != nil {
		log.Printf("Collection stream: error writing to client: %v\n", err)
		return err
	} else if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
