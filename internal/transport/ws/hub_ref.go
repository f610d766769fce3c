package ws

import "sync/atomic"

// HubRef provides an atomic indirection to the currently-active Hub, so the
// server can swap in a fresh hub after a supervisor-caught panic without
// restarting the HTTP listener, handlers call Get() per connection.
type HubRef struct {
	v atomic.Value // stores *Hub
}

// NewHubRef wraps initial as the active Hub; it need not be running yet.
func NewHubRef(initial *Hub) *HubRef {
	r := &HubRef{}
	r.v.Store(initial)
	return r
}

// Get returns the active Hub, or ok=false if none has been set.
func (r *HubRef) Get() (*Hub, bool) {
	h, ok := r.v.Load().(*Hub)
	return h, ok && h != nil
}

// Set installs a new active Hub.
func (r *HubRef) Set(h *Hub) {
	r.v.Store(h)
}
