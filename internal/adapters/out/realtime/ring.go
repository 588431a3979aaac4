package realtime

import "dispatch/internal/core/domain/events"

// ring keeps the most recent envelopes for reconnect catch-up.
type ring struct {
	buf   []events.Envelope
	start int
	size  int
	ids   map[string]struct{}
}

func newRing(capacity int) *ring {
	return &ring{
		buf: make([]events.Envelope, capacity),
		ids: make(map[string]struct{}, capacity),
	}
}

func (r *ring) contains(id string) bool {
	_, ok := r.ids[id]
	return ok
}

func (r *ring) push(e events.Envelope) {
	if len(r.buf) == 0 {
		return
	}
	if r.size == len(r.buf) {
		delete(r.ids, r.buf[r.start].ID)
		r.buf[r.start] = e
		r.start = (r.start + 1) % len(r.buf)
	} else {
		r.buf[(r.start+r.size)%len(r.buf)] = e
		r.size++
	}
	r.ids[e.ID] = struct{}{}
}

// after returns the envelopes pushed after the one with the given id, oldest first.
// ok is false when the id is no longer in the ring.
func (r *ring) after(id string) ([]events.Envelope, bool) {
	if !r.contains(id) {
		return nil, false
	}
	var out []events.Envelope
	found := false
	for i := range r.size {
		e := r.buf[(r.start+i)%len(r.buf)]
		if found {
			out = append(out, e)
			continue
		}
		found = e.ID == id
	}
	return out, true
}
