package pipeline

import (
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/view"
)

// =============================================================================
// Layout Generation
// =============================================================================

// Layout builds a session over raw, zooms to opts.Focus and settles the
// view. The returned session is ready for [Render]; its frame holds the
// visible cells of the focused level.
//
// The empty focus is the root. An unknown focus path, or one naming a leaf,
// is an error; the pipeline does not fall back to the root.
func Layout(raw hierarchy.RawRecord, opts Options) (*view.Session, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	s := view.New(opts.ViewConfig(), view.WithLogger(opts.Logger))
	if err := s.Load(raw); err != nil {
		return nil, err
	}
	if opts.Focus != "" {
		if err := s.FocusPath(opts.Focus); err != nil {
			return nil, err
		}
	}
	s.Settle()

	opts.Logger.Debug("layout settled",
		"focus", opts.Focus,
		"nodes", s.Root().Count(),
		"visible", len(s.State().Focus.Children))
	return s, nil
}
