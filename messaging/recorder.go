package messaging

import (
	"context"
	"sync"
)

// Recorded is one message captured by a Recorder.
type Recorded struct {
	Key     string
	Payload any
}

// Recorder keeps published messages in memory. Tests use it to assert what
// a service emitted.
type Recorder struct {
	mu       sync.Mutex
	messages []Recorded
}

func (r *Recorder) Publish(_ context.Context, key string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Recorded{Key: key, Payload: payload})
	return nil
}

func (r *Recorder) Close() error { return nil }

// Keys returns the routing keys in publish order.
func (r *Recorder) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, len(r.messages))
	for i, m := range r.messages {
		keys[i] = m.Key
	}
	return keys
}

func (r *Recorder) Messages() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Recorded(nil), r.messages...)
}
