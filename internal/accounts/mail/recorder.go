package mail

import (
	"context"
	"sync"
)

// Recorder captures sent messages in memory for assertions in tests.
type Recorder struct {
	mu   sync.Mutex
	sent []Message

	// Err, when set, is returned from Send to simulate transport failures.
	Err error
}

func (r *Recorder) Send(ctx context.Context, msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.sent = append(r.sent, msg)
	return nil
}

// Sent returns a copy of the messages delivered so far.
func (r *Recorder) Sent() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.sent))
	copy(out, r.sent)
	return out
}
