package ripeness

import "time"

// ApproachingSpan is how many days past the window a plot stays amber
// before it counts as overdue.
const ApproachingSpan = 10

type Evaluator struct {
	windows Windows
	palette Palette
	loc     *time.Location // nil: use the location of the time passed in
}

type Option func(*Evaluator)

func WithWindows(w Windows) Option {
	return func(e *Evaluator) {
		if len(w) > 0 {
			e.windows = w
		}
	}
}

func WithPalette(p Palette) Option { return func(e *Evaluator) { e.palette = p } }

func WithLocation(loc *time.Location) Option { return func(e *Evaluator) { e.loc = loc } }

func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{windows: DefaultWindows(), palette: DefaultPalette}
	for _, o := range opts {
		o(e)
	}
	return e
}

var defaultEvaluator = NewEvaluator()

// Evaluate classifies a plot with the default window table and palette.
func Evaluate(seed string, planted *CivilDate, now time.Time) Assessment {
	return defaultEvaluator.Evaluate(seed, planted, now)
}

func (e *Evaluator) Windows() Windows { return e.windows.Merge(nil) }

func (e *Evaluator) Palette() Palette { return e.palette }

// Location is the zone that decides the calendar day, nil when the
// location of each evaluated time is used.
func (e *Evaluator) Location() *time.Location { return e.loc }

func (e *Evaluator) Evaluate(seed string, planted *CivilDate, now time.Time) Assessment {
	window := e.windows.For(seed)
	a := Assessment{
		SeedCode:     normSeed(seed),
		PlantingDate: planted,
		WindowDays:   window,
		Category:     Unknown,
		Color:        e.palette.Unknown,
	}
	if planted == nil || !planted.Valid() {
		return a
	}

	days := e.elapsedDays(*planted, now)
	a.ElapsedDays = &days
	switch {
	case days < 0:
		a.Color = e.palette.Future
	case days < window:
		a.Category = Immature
	case days < window+ApproachingSpan:
		a.Category = Approaching
	default:
		a.Category = Overdue
	}
	if a.Category != Unknown {
		a.Color = e.palette.ColorFor(a.Category)
	}
	return a
}

// Assess parses a description and evaluates it in one step.
func (e *Evaluator) Assess(description string, now time.Time) (ParseResult, Assessment) {
	p := Parse(description)
	return p, e.Evaluate(p.SeedCode, p.PlantingDate, now)
}

// elapsedDays counts whole calendar days from planted to now's date.
func (e *Evaluator) elapsedDays(planted CivilDate, now time.Time) int {
	if e.loc != nil {
		now = now.In(e.loc)
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := time.Date(planted.Year, time.Month(planted.Month), planted.Day, 0, 0, 0, 0, time.UTC)
	return int((today.Unix() - start.Unix()) / 86400)
}
