package serviceImp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"sawah/entities"
	"sawah/pkg/geojson"
	"sawah/pkg/logging"
	"sawah/pkg/plot/repository"
	"sawah/pkg/plot/service"
	"sawah/pkg/ripeness"
)

// PlotSvc owns the plot collection. Every recolor goes through mu so a
// toggle and the refresh timer never race on baseline capture.
type PlotSvc struct {
	r   repository.PlotRepository
	rc  *ripeness.Recolorer
	now func() time.Time

	mu     sync.Mutex
	active bool
}

type Option func(*PlotSvc)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option { return func(s *PlotSvc) { s.now = now } }

func NewPlotService(r repository.PlotRepository, rc *ripeness.Recolorer, opts ...Option) *PlotSvc {
	if rc == nil {
		rc = ripeness.NewRecolorer(nil)
	}
	s := &PlotSvc{r: r, rc: rc, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	// stored fills may hold ripeness colors from a previous run
	active, err := r.LoadTuai()
	if err != nil {
		logging.Log.Warnf("[tuai] load mode: %v", err)
	}
	s.active = active
	return s
}

var _ service.PlotService = (*PlotSvc)(nil)

func (s *PlotSvc) Import(group, file string, data []byte) (int, error) {
	group, file = strings.TrimSpace(group), strings.TrimSpace(file)
	plots, err := geojson.Decode(group, file, data)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.r.ReplaceSource(group, file, plots); err != nil {
		return 0, err
	}
	// fills from the file are the new baseline; recolor them if Tuai is on
	if s.active {
		if err := s.r.SaveFills(s.rc.Apply(plots, true, s.now())); err != nil {
			return 0, err
		}
	}
	logging.Log.Infof("[import] %s/%s: %d plots", group, file, len(plots))
	return len(plots), nil
}

func (s *PlotSvc) List(group string) ([]entities.Plot, error) { return s.r.List(group) }

func (s *PlotSvc) Get(id string) (*service.PlotDetail, error) {
	p, err := s.r.FindByID(id)
	if err != nil {
		return nil, err
	}
	parsed, a := s.rc.Evaluator().Assess(p.DescriptionText, s.now())
	return &service.PlotDetail{Plot: *p, Parsed: parsed, Assessment: a}, nil
}

func (s *PlotSvc) Search(q string) ([]entities.Plot, error) { return s.r.SearchByName(q) }

func (s *PlotSvc) ByTreatment(tag string) ([]entities.Plot, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if !ripeness.IsTreatmentTag(tag) {
		return nil, fmt.Errorf("%q: %w", tag, service.ErrUnknownTag)
	}
	all, err := s.r.List("")
	if err != nil {
		return nil, err
	}
	out := make([]entities.Plot, 0, len(all))
	for _, p := range all {
		if ripeness.Parse(p.DescriptionText).HasTag(tag) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *PlotSvc) Export() ([]byte, error) {
	all, err := s.r.List("")
	if err != nil {
		return nil, err
	}
	return geojson.Encode(all)
}

func (s *PlotSvc) TuaiActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *PlotSvc) Palette() ripeness.Palette { return s.rc.Evaluator().Palette() }

func (s *PlotSvc) SetTuai(active bool) ([]entities.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(active)
}

func (s *PlotSvc) ToggleTuai() (bool, []entities.Plot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out, err := s.applyLocked(!s.active)
	return s.active, out, err
}

// Refresh re-applies ripeness colors while Tuai is on, so plots move
// between categories as calendar days pass.
func (s *PlotSvc) Refresh() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil
	}
	_, err := s.applyLocked(true)
	return err
}

func (s *PlotSvc) applyLocked(active bool) ([]entities.Plot, error) {
	all, err := s.r.List("")
	if err != nil {
		return nil, err
	}
	out := s.rc.Apply(all, active, s.now())
	if err := s.r.SaveFills(out); err != nil {
		return nil, err
	}
	if active != s.active {
		if err := s.r.SaveTuai(active); err != nil {
			return nil, err
		}
	}
	s.active = active
	logging.Log.Debugf("[tuai] active=%v recolored %d plots", active, len(out))
	return out, nil
}

// RunRefresher calls Refresh every interval until ctx is done.
func (s *PlotSvc) RunRefresher(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.Refresh(); err != nil {
				logging.Log.Warnf("[tuai] refresh: %v", err)
			}
		}
	}
}
