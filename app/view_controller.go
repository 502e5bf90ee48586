package app

import (
	"sync"

	"carviz/domain/core"
)

// State is the interaction state of one viewer. Nil means nothing is
// selected.
type State struct {
	Selected *core.RecordID
}

// ViewController owns one viewer's selection. Selecting a record replaces
// the previous selection; there is no deselect.
type ViewController struct {
	mu       sync.Mutex
	service  *ViewService
	selected *core.RecordID
}

// NewViewController starts a viewer with nothing selected.
func NewViewController(service *ViewService) *ViewController {
	return &ViewController{service: service}
}

// Select makes id the selected record and returns the re-rendered page.
// An unknown id leaves the state unchanged.
func (c *ViewController) Select(id core.RecordID) (Page, error) {
	if _, err := c.service.Record(id); err != nil {
		return Page{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = &id
	return c.service.Render(State{Selected: c.selected}), nil
}

// Selected returns the current selection, if any.
func (c *ViewController) Selected() (core.RecordID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return 0, false
	}
	return *c.selected, true
}

// State returns a copy of the current state.
func (c *ViewController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return State{}
	}
	id := *c.selected
	return State{Selected: &id}
}

// Render draws the page for the current state.
func (c *ViewController) Render() Page {
	return c.service.Render(c.State())
}

// Service returns the shared view service.
func (c *ViewController) Service() *ViewService {
	return c.service
}
