// Package spoiler decides how competition results are shown to visitors who may not have watched the show yet.
package spoiler

// State is the spoiler preference of a visitor.
type State struct {
	// Revealed is false by default so that results are hidden for new visitors.
	Revealed bool
}

// Hidden reports whether results are hidden.
func (s State) Hidden() bool {
	return !s.Revealed
}

// Toggle flips between hidden and revealed results.
func (s State) Toggle() State {
	return State{Revealed: !s.Revealed}
}

// Badge is a rank or result prepared for display.
type Badge struct {
	Label string
	// Show is false when the badge must not be rendered at all.
	Show bool
	// Blurred badges are rendered but visually obscured.
	Blurred bool
	// Tone selects the badge styling: "winner", "runner-up" or "plain".
	Tone string
}

func tone(label string) string {
	switch label {
	case "Winner":
		return "winner"
	case "Runner-up":
		return "runner-up"
	default:
		return "plain"
	}
}

// RankBadge is the chef's overall rank. It is left out entirely while results are hidden. Judges are no exception,
// their "Judge" rank follows the same rule as competitive ranks.
func (s State) RankBadge(rank string) Badge {
	return Badge{
		Label:   rank,
		Show:    rank != "" && s.Revealed,
		Blurred: false,
		Tone:    tone(rank),
	}
}

// ResultBadge is the result of one appearance. It is always rendered but blurred while results are hidden, so that
// the layout does not give the result away.
func (s State) ResultBadge(result string) Badge {
	return Badge{
		Label:   result,
		Show:    true,
		Blurred: !s.Revealed,
		Tone:    tone(result),
	}
}
