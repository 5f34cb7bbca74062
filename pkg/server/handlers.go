package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/matzehuels/treezoom/pkg/errors"
	"github.com/matzehuels/treezoom/pkg/pipeline"
	"github.com/matzehuels/treezoom/pkg/selection"
	"github.com/matzehuels/treezoom/pkg/session"
	"github.com/matzehuels/treezoom/pkg/view"
)

// =============================================================================
// Stateless rendering
// =============================================================================

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := s.cfg.Defaults
	opts.Source = q.Get("source")
	opts.Focus = q.Get("focus")
	if err := applyQuery(&opts, q); err != nil {
		writeError(w, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeArtifact(w, format, result.Artifacts[format])
}

// applyQuery copies presentation parameters from q onto opts.
func applyQuery(opts *pipeline.Options, q url.Values) error {
	for name, dst := range map[string]*float64{"width": &opts.Width, "height": &opts.Height, "scale": &opts.Scale} {
		if v := q.Get(name); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "%s must be a number, got %q", name, v)
			}
			*dst = f
		}
	}
	for name, dst := range map[string]*string{"style": &opts.Style, "unit": &opts.Unit, "tiling": &opts.Tiling, "title": &opts.Title} {
		if v := q.Get(name); v != "" {
			*dst = v
		}
	}
	if v := q.Get("header"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "header must be a boolean, got %q", v)
		}
		opts.Header = b
	}
	opts.Refresh = q.Get("refresh") == "true"
	return nil
}

// =============================================================================
// Sessions
// =============================================================================

type createRequest struct {
	Source string  `json:"source"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Focus  string  `json:"focus,omitempty"`
	Title  string  `json:"title,omitempty"`
	Tiling string  `json:"tiling,omitempty"`
}

type stateResponse struct {
	ID        string `json:"id"`
	Focus     string `json:"focus"`
	Header    string `json:"header"`
	Animating bool   `json:"animating"`
	Changed   *bool  `json:"changed,omitempty"`
	Nodes     int    `json:"nodes,omitempty"`
}

func stateOf(id string, v *view.Session) stateResponse {
	return stateResponse{
		ID:        id,
		Focus:     v.State().Focus.Path(),
		Header:    v.Header(),
		Animating: v.Animating(),
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	opts := s.cfg.Defaults
	opts.Source = req.Source
	opts.Focus = req.Focus
	if req.Width != 0 {
		opts.Width = req.Width
	}
	if req.Height != 0 {
		opts.Height = req.Height
	}
	if req.Title != "" {
		opts.Title = req.Title
	}
	if req.Tiling != "" {
		opts.Tiling = req.Tiling
	}
	if err := opts.ValidateForLayout(); err != nil {
		writeError(w, err)
		return
	}

	ds, err := s.runner.Load(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	cfg := opts.ViewConfig()
	cfg.Duration = 0
	v := view.New(cfg, view.WithLogger(s.logger), view.WithClock(s.cfg.Clock))
	if err := v.Load(ds.Raw); err != nil {
		writeError(w, err)
		return
	}
	if opts.Focus != "" {
		if err := v.FocusPath(opts.Focus); err != nil {
			writeError(w, err)
			return
		}
		v.Settle()
	}

	sess, err := session.New(v, nil, ds.Location, s.cfg.SessionTTL)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.sessions.Set(r.Context(), sess); err != nil {
		if err == session.ErrFull {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "store session"))
		return
	}

	s.logger.Debug("session created", "id", sess.ID, "source", ds.Location)
	resp := stateOf(sess.ID, v)
	resp.Nodes = v.Root().Count()
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := s.sessions.Delete(r.Context(), sess.ID); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete session"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := s.cfg.Defaults
	if err := applyQuery(&opts, q); err != nil {
		writeError(w, err)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	var artifacts map[string][]byte
	var err error
	sessionFrom(r).Do(func(v *view.Session, _ *selection.Coordinator) {
		if q.Get("settle") == "true" {
			v.Settle()
		}
		opts.Width, opts.Height = v.Config().Width, v.Config().Height
		artifacts, err = pipeline.Render(v, opts)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeArtifact(w, format, artifacts[format])
}

type drillInRequest struct {
	Path string   `json:"path,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
}

func (s *Server) handleDrillIn(w http.ResponseWriter, r *http.Request) {
	var req drillInRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Path == "" && (req.X == nil || req.Y == nil) {
		writeError(w, errors.New(errors.ErrCodeInvalidInput, "drill-in needs a path or x and y"))
		return
	}
	if err := errors.ValidateFocusPath(req.Path); err != nil {
		writeError(w, err)
		return
	}

	s.transition(w, r, func(v *view.Session) (bool, error) {
		if req.Path == "" {
			return v.ClickAt(*req.X, *req.Y), nil
		}
		n, ok := v.Root().Find(req.Path)
		if !ok {
			return false, errors.New(errors.ErrCodeFocusNotFound, "no node at path %q", req.Path)
		}
		return v.Click(n), nil
	})
}

func (s *Server) handleDrillOut(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(v *view.Session) (bool, error) { return v.Back(), nil })
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.transition(w, r, func(v *view.Session) (bool, error) { return v.Reset(), nil })
}

type focusRequest struct {
	Path string `json:"path"`
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	var req focusRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.transition(w, r, func(v *view.Session) (bool, error) {
		before := v.State().Focus
		if err := v.FocusPath(req.Path); err != nil {
			return false, err
		}
		return v.State().Focus != before, nil
	})
}

type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	s.transition(w, r, func(v *view.Session) (bool, error) {
		if err := v.Resize(req.Width, req.Height); err != nil {
			return false, err
		}
		return true, nil
	})
}

// transition applies fn under the session lock and reports the new state.
// Ignored transitions are not errors; they come back with changed=false.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, fn func(v *view.Session) (bool, error)) {
	sess := sessionFrom(r)
	var resp stateResponse
	var err error
	sess.Do(func(v *view.Session, _ *selection.Coordinator) {
		var changed bool
		changed, err = fn(v)
		resp = stateOf(sess.ID, v)
		resp.Changed = &changed
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type selectionRequest struct {
	Section *string `json:"section,omitempty"`
	Keyword *string `json:"keyword,omitempty"`
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	var state selection.State
	sessionFrom(r).Do(func(_ *view.Session, c *selection.Coordinator) {
		state = c.State()
	})
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var req selectionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	var state selection.State
	sessionFrom(r).Do(func(_ *view.Session, c *selection.Coordinator) {
		if req.Section != nil {
			c.SelectSection(*req.Section)
		}
		if req.Keyword != nil {
			c.SelectKeyword(*req.Keyword)
		}
		state = c.State()
	})
	writeJSON(w, http.StatusOK, state)
}
