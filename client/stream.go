package client

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gastos/shared"
)

// Give up on a stream after three missed heartbeats.
const heartbeatTimeout = 16 * time.Second

type OnStreamFn func(msg *shared.StreamMessage, err error)

type streamConn struct {
	body   io.ReadCloser
	reader *streamReader
}

func (s *streamConn) close() {
	s.body.Close()
}

// connectStream opens the chunked stream at path and dispatches each message
// to onStream on a background goroutine. Returns once the response headers
// arrive, so callers learn about auth or routing failures synchronously.
func (c *Client) connectStream(path string, onStream OnStreamFn) (*streamConn, *shared.ApiError) {
	resp, err := c.streamingClient.Get(c.host + path)
	if err != nil {
		return nil, apiErr(fmt.Errorf("error connecting stream: %v", err))
	}

	if resp.StatusCode >= 400 {
		errorBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, handleApiError(resp, errorBody)
	}

	conn := &streamConn{
		body: resp.Body,
		reader: &streamReader{
			reader:   resp.Body,
			onStream: onStream,
			timeout:  heartbeatTimeout,
		},
	}

	go conn.reader.start()

	return conn, nil
}

type streamReader struct {
	reader   io.Reader
	onStream OnStreamFn
	timeout  time.Duration
	buffer   []byte
}

func (r *streamReader) start() {
	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	// Buffered so the read loop can exit after the body is closed even when
	// nobody is left receiving.
	msgCh := make(chan string, 1)
	errCh := make(chan error, 1)

	go func() {
		for {
			s, err := r.readUntilSeparator()
			if err != nil {
				errCh <- err
				return
			}
			msgCh <- s
		}
	}()

	for {
		select {
		case <-timer.C:
			r.onStream(nil, fmt.Errorf("stream timed out: no heartbeat for %s", r.timeout))
			return

		case err := <-errCh:
			if err == io.EOF {
				return
			}
			r.onStream(nil, fmt.Errorf("error reading stream: %v", err))
			return

		case s := <-msgCh:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(r.timeout)

			if s == shared.StreamMessageHeartbeat {
				continue
			}

			var msg shared.StreamMessage
			if err := json.Unmarshal([]byte(s), &msg); err != nil {
				r.onStream(nil, fmt.Errorf("error unmarshalling stream message: %v", err))
				return
			}

			r.onStream(&msg, nil)
		}
	}
}

// readUntilSeparator accumulates bytes from the stream until the message
// separator, returning the message with the separator stripped.
func (r *streamReader) readUntilSeparator() (string, error) {
	for {
		if idx := strings.Index(string(r.buffer), shared.STREAM_MESSAGE_SEPARATOR); idx >= 0 {
			s := string(r.buffer[:idx])
			r.buffer = r.buffer[idx+len(shared.STREAM_MESSAGE_SEPARATOR):]
			return s, nil
		}

		chunk := make([]byte, 1024)
		n, err := r.reader.Read(chunk)
		if n > 0 {
			r.buffer = append(r.buffer, chunk[:n]...)
			continue
		}
		if err != nil {
			return "", err
		}
	}
}
