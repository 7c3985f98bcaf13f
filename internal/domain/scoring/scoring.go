// Package scoring computes comparable scores from a leader's raw metrics.
package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/accountable-india/civicrank/internal/domain/model"
)

// Mode selects which formula converts raw metrics into a score.
// Scores are only comparable within a single mode: RatingOnly stays on
// the 0-5 scale while every other mode lives on 0-100.
type Mode string

// The closed set of scoring modes.
const (
	Overall              Mode = "overall"
	AttendanceOnly       Mode = "attendance"
	PerformanceComposite Mode = "performance"
	RatingOnly           Mode = "rating"
)

// ParseMode maps a user-supplied string to a Mode. The empty string
// selects Overall.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Overall, "":
		return Overall, nil
	case AttendanceOnly:
		return AttendanceOnly, nil
	case PerformanceComposite:
		return PerformanceComposite, nil
	case RatingOnly:
		return RatingOnly, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Default scoring configuration constants. The composite weights blend
// parliamentary activity (bills, debates, questions); the overall blend
// combines attendance, composite and rescaled rating 30/30/40.
const (
	defaultBillWeight     = 5.0
	defaultDebateWeight   = 2.0
	defaultQuestionWeight = 1.0
	defaultDivisor        = 2.5

	defaultAttendanceShare = 0.30
	defaultCompositeShare  = 0.30
	defaultRatingShare     = 0.40

	ratingScale   = 20 // rescales 0-5 ratings onto the 0-100 axis
	maxScoreValue = 100
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCompositeWeights overrides the performance-composite weight vector
// and normalizing divisor. Non-positive divisors are ignored.
func WithCompositeWeights(bill, debate, question, divisor float64) Option {
	return func(e *Engine) {
		if divisor > 0 {
			e.billWeight = bill
			e.debateWeight = debate
			e.questionWeight = question
			e.divisor = divisor
		}
	}
}

// WithOverallBlend overrides the attendance/composite/rating shares of
// the Overall mode. Shares that do not sum to a positive value are
// ignored.
func WithOverallBlend(attendance, composite, rating float64) Option {
	return func(e *Engine) {
		if attendance+composite+rating > 0 {
			e.attendanceShare = attendance
			e.compositeShare = composite
			e.ratingShare = rating
		}
	}
}

// Engine maps a leader's raw metrics to a single comparable score under
// a selectable mode. The same weight constants apply to every leader in
// a ranking pass; there is no per-entity special-casing.
type Engine struct {
	billWeight     float64
	debateWeight   float64
	questionWeight float64
	divisor        float64

	attendanceShare float64
	compositeShare  float64
	ratingShare     float64
}

// NewEngine creates a scoring engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		billWeight:      defaultBillWeight,
		debateWeight:    defaultDebateWeight,
		questionWeight:  defaultQuestionWeight,
		divisor:         defaultDivisor,
		attendanceShare: defaultAttendanceShare,
		compositeShare:  defaultCompositeShare,
		ratingShare:     defaultRatingShare,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Score computes the leader's score under the given mode. Pure function
// of its inputs; unknown modes fall back to Overall.
func (e *Engine) Score(l *model.Leader, mode Mode) float64 {
	switch mode {
	case AttendanceOnly:
		return l.Attendance
	case RatingOnly:
		return l.Rating
	case PerformanceComposite:
		return e.composite(l)
	default:
		return e.overall(l)
	}
}

// composite is the parliamentary-activity score, rounded and clamped to
// the 0-100 axis. Raw counts have no enforced upper bound, so the clamp
// keeps runaway metrics from distorting the blended Overall score.
func (e *Engine) composite(l *model.Leader) float64 {
	raw := (l.Bills*e.billWeight + l.Debates*e.debateWeight + l.Questions*e.questionWeight) / e.divisor
	return clamp(math.Round(raw), 0, maxScoreValue)
}

func (e *Engine) overall(l *model.Leader) float64 {
	blended := l.Attendance*e.attendanceShare +
		e.composite(l)*e.compositeShare +
		l.Rating*ratingScale*e.ratingShare
	return clamp(math.Round(blended), 0, maxScoreValue)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
