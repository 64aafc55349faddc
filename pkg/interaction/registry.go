package interaction

import "slices"

// Registry holds the object controllers that may grab the pointer, in
// registration order.
type Registry struct {
	items []*Controller
}

// Add registers c. Adding a registered controller is a no-op.
func (r *Registry) Add(c *Controller) {
	if c == nil || r.Contains(c) {
		return
	}
	r.items = append(r.items, c)
}

// Remove unregisters c and reports whether it was registered.
func (r *Registry) Remove(c *Controller) bool {
	i := slices.Index(r.items, c)
	if i < 0 {
		return false
	}
	r.items = slices.Delete(r.items, i, i+1)
	return true
}

// Contains reports whether c is registered.
func (r *Registry) Contains(c *Controller) bool { return slices.Contains(r.items, c) }

// Len returns the number of registered controllers.
func (r *Registry) Len() int { return len(r.items) }

// All returns the registered controllers.
func (r *Registry) All() []*Controller { return slices.Clone(r.items) }

// Clear unregisters everything.
func (r *Registry) Clear() { r.items = nil }

// Grabber returns the first controller grabbing the pointer at (x, y).
func (r *Registry) Grabber(x, y float32) *Controller {
	for _, c := range r.items {
		if c.GrabsPointer(x, y) {
			return c
		}
	}
	return nil
}
