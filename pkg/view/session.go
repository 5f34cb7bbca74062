package view

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/hierarchy"
	"github.com/matzehuels/treezoom/pkg/observability"
	"github.com/matzehuels/treezoom/pkg/render/treemap/layout"
	"github.com/matzehuels/treezoom/pkg/render/treemap/reconcile"
	"github.com/matzehuels/treezoom/pkg/render/treemap/scale"
	"github.com/matzehuels/treezoom/pkg/render/treemap/sink"
	"github.com/matzehuels/treezoom/pkg/render/treemap/styles"
	"github.com/matzehuels/treezoom/pkg/render/treemap/zoom"
	"github.com/matzehuels/treezoom/pkg/selection"
)

// ViewName is the name the treemap registers under with a coordinator.
const ViewName = "treemap"

// Clock supplies animation time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to [Clock].
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// Config holds the session's canvas and presentation settings. Zero fields
// take the defaults below; a negative Duration disables animation.
type Config struct {
	Width    float64
	Height   float64
	Duration time.Duration
	Title    string
	Tiler    layout.Tiler
}

const (
	DefaultWidth    = 1600
	DefaultHeight   = 680
	DefaultTitle    = "NYT Archive"
	DefaultDuration = reconcile.DefaultDuration
)

func (c *Config) setDefaults() {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Duration == 0 {
		c.Duration = DefaultDuration
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
	if c.Tiler == nil {
		c.Tiler = layout.Tile
	}
}

// Option configures a [Session].
type Option func(*Session)

// WithClock injects the animation clock. The default is time.Now.
func WithClock(c Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session is one treemap view over one dataset.
type Session struct {
	cfg    Config
	clock  Clock
	logger *log.Logger
	coord  *selection.Coordinator

	raw     hierarchy.RawRecord
	loaded  bool
	root    *hierarchy.Node
	mapper  *scale.Mapper
	nav     *zoom.Navigator
	rec     *reconcile.Reconciler
	palette *styles.Ordinal
}

// New returns an empty session. Call [Session.Load] before anything else.
func New(cfg Config, opts ...Option) *Session {
	cfg.setDefaults()
	s := &Session{
		cfg:    cfg,
		clock:  ClockFunc(time.Now),
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach registers the session with a coordinator under [ViewName]. Focus
// changes are published to it from then on.
func (s *Session) Attach(c *selection.Coordinator) error {
	if err := c.Register(ViewName, s); err != nil {
		return err
	}
	s.coord = c
	s.publishFocus()
	return nil
}

// Update implements [selection.Updater]. The treemap does not react to
// keyword or section selection, so this is a no-op.
func (s *Session) Update(selection.State) {}

// Load builds the hierarchy from raw and lays out the root level. On error
// the session keeps whatever it showed before (nothing, on first load).
func (s *Session) Load(raw hierarchy.RawRecord) error {
	root, err := hierarchy.Build(raw)
	if err != nil {
		return err
	}
	s.raw = raw
	s.loaded = true
	s.install(root)
	return nil
}

// Loaded reports whether a dataset has been loaded.
func (s *Session) Loaded() bool { return s.loaded }

// Resize changes the canvas and, if a dataset is loaded, rebuilds
// everything from the raw data. Zoom state is lost.
func (s *Session) Resize(width, height float64) error {
	if err := errors.ValidateCanvas(width, height); err != nil {
		return err
	}
	s.cfg.Width, s.cfg.Height = width, height
	if !s.loaded {
		return nil
	}
	root, err := hierarchy.Build(s.raw)
	if err != nil {
		return err
	}
	s.install(root)
	return nil
}

func (s *Session) install(root *hierarchy.Node) {
	s.root = root
	s.mapper = scale.NewMapper(s.cfg.Width, s.cfg.Height)
	s.nav = zoom.New(root, s.mapper,
		zoom.WithTiler(s.cfg.Tiler),
		zoom.WithLogger(s.logger),
		zoom.WithListener(zoom.FocusListenerFunc(s.focusChanged)),
	)
	s.rec = reconcile.New(reconcile.WithDuration(s.cfg.Duration))
	s.rec.Place(s.nav.Visible(), s.mapper)
	s.palette = styles.NewOrdinal(styles.TolPalette)
	s.palette.Seed(root)

	count := root.Count()
	s.logger.Debug("rebuilt treemap", "width", s.cfg.Width, "height", s.cfg.Height, "nodes", count)
	observability.Navigation().OnRebuild(s.cfg.Width, s.cfg.Height, count)
	s.publishFocus()
}

func (s *Session) focusChanged(t zoom.Transition) {
	s.logger.Debug("focus", "header", Header(s.cfg.Title, t.To))
	s.publishFocus()
}

func (s *Session) publishFocus() {
	if s.coord == nil || s.nav == nil {
		return
	}
	s.coord.SetFocus(s.nav.Focus().Name)
}

// Click drills into n. It reports false when nothing is loaded or n is not a
// valid target.
func (s *Session) Click(n *hierarchy.Node) bool {
	if !s.loaded {
		return false
	}
	t, ok := s.nav.DrillIn(n)
	if ok {
		s.animate(t.Before, t.After)
	}
	return ok
}

// ClickAt drills into the cell under the pixel (px, py).
func (s *Session) ClickAt(px, py float64) bool {
	if !s.loaded {
		return false
	}
	n, ok := s.rec.HitTest(px, py)
	if !ok {
		return false
	}
	return s.Click(n)
}

// Back drills out one level. It reports false at the root.
func (s *Session) Back() bool {
	if !s.loaded {
		return false
	}
	t, ok := s.nav.DrillOut()
	if ok {
		s.animate(t.Before, t.After)
	}
	return ok
}

// Reset returns to the root. It reports false if already there.
func (s *Session) Reset() bool {
	if !s.loaded {
		return false
	}
	t, ok := s.nav.Reset()
	if ok {
		s.animate(t.Before, t.After)
	}
	return ok
}

// FocusPath zooms to the node at path as one animated transition.
func (s *Session) FocusPath(path string) error {
	if !s.loaded {
		return errors.New(errors.ErrCodeInvalidInput, "no dataset loaded")
	}
	trs, err := s.nav.DrillTo(path)
	if len(trs) > 0 {
		s.animate(trs[0].Before, trs[len(trs)-1].After)
	}
	return err
}

func (s *Session) animate(before, after scale.Mapper) {
	s.rec.Transition(s.nav.Visible(), before, after, s.clock.Now())
}

// Settle finishes any running animation immediately.
func (s *Session) Settle() {
	if s.loaded {
		s.rec.Cancel()
	}
}

// Animating reports whether a transition is in flight.
func (s *Session) Animating() bool {
	return s.loaded && s.rec.Active(s.clock.Now())
}

// Frame samples the view at the current clock time.
func (s *Session) Frame() sink.Frame {
	f := sink.Frame{Width: s.cfg.Width, Height: s.cfg.Height, Header: s.Header()}
	if !s.loaded {
		return f
	}
	f.Focus = s.nav.Focus()
	f.Sprites = s.rec.Frame(s.clock.Now())
	return f
}

// Header returns the breadcrumb text for the current focus.
func (s *Session) Header() string {
	if !s.loaded {
		return Header(s.cfg.Title, nil)
	}
	return Header(s.cfg.Title, s.nav.Focus())
}

// Header formats the breadcrumb for focus; nil or the root gives the
// top-level title.
func Header(title string, focus *hierarchy.Node) string {
	if focus == nil || focus.IsRoot() {
		return title + " | All Sections"
	}
	return "Back to All Sections |  " + focus.Name
}

// State returns the navigator's state. It is the zero value before Load.
func (s *Session) State() zoom.ViewState {
	if !s.loaded {
		return zoom.ViewState{}
	}
	return s.nav.State()
}

// Root returns the current hierarchy root, nil before Load.
func (s *Session) Root() *hierarchy.Node { return s.root }

// Palette returns the section color scale for this dataset.
func (s *Session) Palette() *styles.Ordinal { return s.palette }

// Config returns the effective configuration.
func (s *Session) Config() Config { return s.cfg }
