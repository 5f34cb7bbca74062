// Package selection holds the selection state shared between views and the
// registry that broadcasts it.
//
// Views register an [Updater] under a name. Whenever the state changes, the
// [Coordinator] calls every registered updater in registration order with a
// snapshot of the new state. Views never see each other directly.
package selection

import (
	"github.com/matzehuels/treezoom/pkg/errors"
)

// State is the cross-view selection. Empty strings mean "nothing selected".
type State struct {
	SelectedSection string `json:"selected_section,omitempty"`
	SelectedKeyword string `json:"selected_keyword,omitempty"`

	// Focus is the label of the treemap's focused node, published on every
	// zoom transition.
	Focus string `json:"focus,omitempty"`
}

// Updater is the capability a view registers to receive state changes.
type Updater interface {
	Update(s State)
}

// UpdaterFunc adapts a function to [Updater].
type UpdaterFunc func(s State)

// Update calls f(s).
func (f UpdaterFunc) Update(s State) { f(s) }

// Coordinator owns the shared state. It is not safe for concurrent use; hosts
// serialize access together with the view it belongs to.
type Coordinator struct {
	state State
	names []string
	views map[string]Updater
}

// NewCoordinator returns a coordinator with empty state and no views.
func NewCoordinator() *Coordinator {
	return &Coordinator{views: make(map[string]Updater)}
}

// Register adds a view. Names must be unique and non-empty.
func (c *Coordinator) Register(name string, u Updater) error {
	if name == "" || u == nil {
		return errors.New(errors.ErrCodeInvalidInput, "view registration needs a name and an updater")
	}
	if _, ok := c.views[name]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "view %q already registered", name)
	}
	c.views[name] = u
	c.names = append(c.names, name)
	return nil
}

// Unregister removes a view. Unknown names are ignored.
func (c *Coordinator) Unregister(name string) {
	if _, ok := c.views[name]; !ok {
		return
	}
	delete(c.views, name)
	for i, n := range c.names {
		if n == name {
			c.names = append(c.names[:i], c.names[i+1:]...)
			break
		}
	}
}

// Views returns the registered view names in registration order.
func (c *Coordinator) Views() []string {
	return append([]string(nil), c.names...)
}

// State returns a snapshot of the shared state.
func (c *Coordinator) State() State { return c.state }

// SelectSection sets the selected section and updates all views.
func (c *Coordinator) SelectSection(section string) {
	c.state.SelectedSection = section
	c.UpdateAll()
}

// SelectKeyword sets the selected keyword and updates all views.
func (c *Coordinator) SelectKeyword(keyword string) {
	c.state.SelectedKeyword = keyword
	c.UpdateAll()
}

// SetFocus publishes the treemap focus label and updates all views. Every
// call notifies, even when the label is unchanged.
func (c *Coordinator) SetFocus(label string) {
	c.state.Focus = label
	c.UpdateAll()
}

// UpdateAll calls every registered updater with the current state.
func (c *Coordinator) UpdateAll() {
	s := c.state
	for _, name := range c.names {
		c.views[name].Update(s)
	}
}
