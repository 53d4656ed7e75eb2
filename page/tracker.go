package page

import "sync"

// Tracker holds the current location of a page. It is safe for concurrent
// use.
type Tracker struct {
	mu  sync.RWMutex
	loc Location
}

// NewTracker returns a tracker positioned at loc.
func NewTracker(loc Location) *Tracker {
	return &Tracker{loc: loc}
}

// Location implements Locator.
func (t *Tracker) Location() Location {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.loc
}

// Navigate moves the tracker to href. The current location is unchanged when
// href cannot be parsed.
func (t *Tracker) Navigate(href string) error {
	loc, err := ParseLocation(href)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.loc = loc
	t.mu.Unlock()
	return nil
}
