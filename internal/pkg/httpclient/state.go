package httpclient

import (
	"sync"
	"time"
)

// State is a snapshot of process-wide network condition.
type State struct {
	Online      bool
	Connecting  bool
	RetryCount  int
	LastOnline  time.Time
	LastOffline time.Time
}

// NetState tracks connectivity shared by every client in the process. It is
// injectable so tests can substitute a fake clock and flip connectivity
// without touching the environment.
type NetState struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	nextID int
	now    func() time.Time
}

// NewNetState creates network state that starts online.
func NewNetState() *NetState {
	n := &NetState{
		subs: make(map[int]func(State)),
		now:  time.Now,
	}
	n.state.Online = true
	n.state.LastOnline = n.now()
	return n
}

// WithClock substitutes the time source. For tests.
func (n *NetState) WithClock(now func() time.Time) *NetState {
	n.mu.Lock()
	n.now = now
	n.mu.Unlock()
	return n
}

// GetState returns a snapshot of the current network state.
func (n *NetState) GetState() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// SetOnline flips connectivity. Called from environment connectivity events.
func (n *NetState) SetOnline(online bool) {
	n.mu.Lock()
	if n.state.Online == online {
		n.mu.Unlock()
		return
	}
	n.state.Online = online
	if online {
		n.state.LastOnline = n.now()
		n.state.RetryCount = 0
	} else {
		n.state.LastOffline = n.now()
	}
	snapshot := n.state
	subs := n.subscribers()
	n.mu.Unlock()

	notify(subs, snapshot)
}

// Subscribe registers a listener for state changes and returns an
// unsubscribe function.
func (n *NetState) Subscribe(fn func(State)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.subs, id)
		n.mu.Unlock()
	}
}

func (n *NetState) setConnecting(connecting bool) {
	n.mu.Lock()
	if n.state.Connecting == connecting {
		n.mu.Unlock()
		return
	}
	n.state.Connecting = connecting
	snapshot := n.state
	subs := n.subscribers()
	n.mu.Unlock()

	notify(subs, snapshot)
}

func (n *NetState) recordRetry() {
	n.mu.Lock()
	n.state.RetryCount++
	snapshot := n.state
	subs := n.subscribers()
	n.mu.Unlock()

	notify(subs, snapshot)
}

func (n *NetState) resetRetries() {
	n.mu.Lock()
	if n.state.RetryCount == 0 {
		n.mu.Unlock()
		return
	}
	n.state.RetryCount = 0
	snapshot := n.state
	subs := n.subscribers()
	n.mu.Unlock()

	notify(subs, snapshot)
}

// subscribers must be called with mu held.
func (n *NetState) subscribers() []func(State) {
	out := make([]func(State), 0, len(n.subs))
	for _, fn := range n.subs {
		out = append(out, fn)
	}
	return out
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}
