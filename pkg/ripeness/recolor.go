package ripeness

import (
	"time"

	"sawah/entities"
)

// Recolorer applies ripeness colors across a plot collection. It only
// computes; pushing fills to a map or database is the caller's job, and the
// caller must not run two Apply calls over the same collection at once.
type Recolorer struct {
	eval *Evaluator
}

func NewRecolorer(e *Evaluator) *Recolorer {
	if e == nil {
		e = defaultEvaluator
	}
	return &Recolorer{eval: e}
}

var defaultRecolorer = NewRecolorer(nil)

// ApplyRipeness runs Apply with the default evaluator.
func ApplyRipeness(plots []entities.Plot, active bool, now time.Time) []entities.Plot {
	return defaultRecolorer.Apply(plots, active, now)
}

func (r *Recolorer) Evaluator() *Evaluator { return r.eval }

// Apply returns a recolored copy of plots in the same order.
//
// active=true captures OriginalFill the first time (never afterwards) and
// paints CurrentFill with the assessment color. active=false restores
// CurrentFill from OriginalFill when one was captured.
func (r *Recolorer) Apply(plots []entities.Plot, active bool, now time.Time) []entities.Plot {
	out := make([]entities.Plot, len(plots))
	for i, p := range plots {
		if p.OriginalFill != nil {
			orig := *p.OriginalFill
			p.OriginalFill = &orig
		}
		if !active {
			if p.OriginalFill != nil {
				p.CurrentFill = *p.OriginalFill
			}
			out[i] = p
			continue
		}
		if p.OriginalFill == nil {
			orig := p.CurrentFill
			p.OriginalFill = &orig
		}
		_, a := r.eval.Assess(p.DescriptionText, now)
		p.CurrentFill = a.Color
		out[i] = p
	}
	return out
}
