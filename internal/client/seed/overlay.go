package seed

import (
	"errors"
	"sync"
)

var ErrAlreadyPurchased = errors.New("blueprint already purchased")

// Overlay records likes and purchases on demo blueprints. Nothing in it
// reaches the backend.
type Overlay interface {
	ToggleLike(id string) bool
	Liked(id string) bool
	Purchase(id string) error
	Purchased(id string) bool
}

// SessionOverlay keeps interactions in memory for the life of the process.
type SessionOverlay struct {
	mu        sync.Mutex
	likes     map[string]bool
	purchases map[string]bool
}

func NewSessionOverlay() *SessionOverlay {
	return &SessionOverlay{likes: map[string]bool{}, purchases: map[string]bool{}}
}

// ToggleLike flips the like on id and returns the new state.
func (o *SessionOverlay) ToggleLike(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.likes[id] {
		delete(o.likes, id)
		return false
	}
	o.likes[id] = true
	return true
}

func (o *SessionOverlay) Liked(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.likes[id]
}

func (o *SessionOverlay) Purchase(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.purchases[id] {
		return ErrAlreadyPurchased
	}
	o.purchases[id] = true
	return nil
}

func (o *SessionOverlay) Purchased(id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.purchases[id]
}
