package compare

import "sync"

// Gate tracks, per user, whether a document pair has been vectorized so the
// chat workflow has something to answer from. Chat is refused until the
// user's flag is set. State is process-local and resets on restart; a user
// re-runs the comparison after a deploy.
type Gate struct {
	mu    sync.RWMutex
	ready map[string]bool
}

// NewGate constructs an empty gate.
func NewGate() *Gate {
	return &Gate{ready: make(map[string]bool)}
}

// SetReady marks the user's comparison as complete.
func (g *Gate) SetReady(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ready[userID] = true
}

// Clear resets the user's flag, used when a new comparison begins.
func (g *Gate) Clear(userID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.ready, userID)
}

// Ready reports whether the user has a completed comparison.
func (g *Gate) Ready(userID string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.ready[userID]
}
