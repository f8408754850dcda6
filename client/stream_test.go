package client

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"gastos/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUntilSeparator(t *testing.T) {
	input := "first" + shared.STREAM_MESSAGE_SEPARATOR + "second" + shared.STREAM_MESSAGE_SEPARATOR
	r := &streamReader{reader: strings.NewReader(input)}

	s, err := r.readUntilSeparator()
	require.NoError(t, err)
	assert.Equal(t, "first", s)

	s, err = r.readUntilSeparator()
	require.NoError(t, err)
	assert.Equal(t, "second", s)

	_, err = r.readUntilSeparator()
	assert.Equal(t, io.EOF, err)
}

func TestReadUntilSeparatorSplitAcrossReads(t *testing.T) {
	// iotest-style one-byte reads exercise separator spanning chunks
	input := "hello" + shared.STREAM_MESSAGE_SEPARATOR
	r := &streamReader{reader: iotest(strings.NewReader(input))}

	s, err := r.readUntilSeparator()
	require.NoError(t, err)
	assert.Equal(t, "hello", s)
}

type oneByteReader struct {
	r io.Reader
}

func iotest(r io.Reader) io.Reader {
	return &oneByteReader{r: r}
}

func (o *oneByteReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return o.r.Read(p[:1])
}

func TestStreamReaderDispatchesMessages(t *testing.T) {
	startMsg, _ := json.Marshal(shared.StreamMessage{Type: shared.StreamMessageStart})
	snapshotMsg, _ := json.Marshal(shared.StreamMessage{
		Type:     shared.StreamMessageSnapshot,
		Snapshot: json.RawMessage(`[{"id":"e1"}]`),
	})

	input := string(startMsg) + shared.STREAM_MESSAGE_SEPARATOR +
		shared.StreamMessageHeartbeat + shared.STREAM_MESSAGE_SEPARATOR +
		string(snapshotMsg) + shared.STREAM_MESSAGE_SEPARATOR

	var msgs []*shared.StreamMessage
	done := make(chan struct{})

	r := &streamReader{
		reader:  strings.NewReader(input),
		timeout: time.Second,
		onStream: func(msg *shared.StreamMessage, err error) {
			require.NoError(t, err)
			msgs = append(msgs, msg)
			if len(msgs) == 2 {
				close(done)
			}
		},
	}

	go r.start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for stream messages")
	}

	// heartbeats keep the connection alive but are not dispatched
	require.Len(t, msgs, 2)
	assert.Equal(t, shared.StreamMessageStart, msgs[0].Type)
	assert.Equal(t, shared.StreamMessageSnapshot, msgs[1].Type)
	assert.JSONEq(t, `[{"id":"e1"}]`, string(msgs[1].Snapshot))
}

type blockedReader struct{}

func (blockedReader) Read(p []byte) (int, error) {
	select {}
}

func TestStreamReaderHeartbeatTimeout(t *testing.T) {
	errCh := make(chan error, 1)

	r := &streamReader{
		reader:  blockedReader{},
		timeout: 50 * time.Millisecond,
		onStream: func(msg *shared.StreamMessage, err error) {
			if err != nil {
				errCh <- err
			}
		},
	}

	go r.start()

	select {
	case err := <-errCh:
		assert.Contains(t, err.Error(), "timed out")
	case <-time.After(time.Second):
		t.Fatal("expected a heartbeat timeout error")
	}
}
