package domain

// Phase is the household's lifecycle phase for one simulated year. The
// engine recomputes it each year from age and milestones rather than
// mutating stored state, so invalid transitions cannot occur.
type Phase string

const (
	// PhaseAccumulation: working and contributing.
	PhaseAccumulation Phase = "accumulation"
	// PhaseCoast: past the coast milestone; no new contributions needed,
	// growth alone carries the portfolio to the retirement target.
	PhaseCoast Phase = "coast"
	// PhaseBarista: retired from full-time work, part-time income covers
	// part of expenses.
	PhaseBarista Phase = "barista"
	// PhaseRetirement: fully retired, living off the portfolio.
	PhaseRetirement Phase = "retirement"
	// PhaseTerminal: at life expectancy; the final recorded year.
	PhaseTerminal Phase = "terminal"
)

// rank orders phases for monotonicity checks; a trace never moves to a
// lower-ranked phase.
func (p Phase) rank() int {
	switch p {
	case PhaseAccumulation:
		return 0
	case PhaseCoast:
		return 1
	case PhaseBarista:
		return 2
	case PhaseRetirement:
		return 3
	case PhaseTerminal:
		return 4
	default:
		return -1
	}
}

// AtLeast reports whether p is the same phase as other or a later one.
func (p Phase) AtLeast(other Phase) bool {
	return p.rank() >= other.rank()
}

// Retired reports whether the household has stopped full-time work.
func (p Phase) Retired() bool {
	return p == PhaseBarista || p == PhaseRetirement || p == PhaseTerminal
}
