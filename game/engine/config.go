package engine

import (
	"encoding/json"
	"fmt"
	"log"
)

// Rules are the tunable parameters of a game.
type Rules struct {
	Colors        []Color `json:"colors"`
	MinLine       int     `json:"min_line_length"`
	BoardSize     int     `json:"board_size"`
	BallsPerRound int     `json:"balls_per_round"`
}

// RulePatch is a partial rules update. Nil fields are left untouched.
type RulePatch struct {
	Colors        []Color `json:"colors,omitempty"`
	MinLine       *int    `json:"min_line_length,omitempty"`
	BoardSize     *int    `json:"board_size,omitempty"`
	BallsPerRound *int    `json:"balls_per_round,omitempty"`
}

// DefaultRules returns the classic ruleset: a 9×9 board, seven colors,
// lines of five, three balls per round.
func DefaultRules() Rules {
	return Rules{
		Colors:        []Color{1, 2, 3, 4, 5, 6, 7},
		MinLine:       5,
		BoardSize:     9,
		BallsPerRound: 3,
	}
}

// Validate checks every rule parameter and returns the first violation.
func (r Rules) Validate() error {
	if len(distinctColors(r.Colors)) < MinColors {
		return fmt.Errorf("rules validation: colors must contain at least %d distinct values, got %d", MinColors, len(distinctColors(r.Colors)))
	}
	if r.MinLine < MinLineLength || r.MinLine > MaxLineLength {
		return fmt.Errorf("rules validation: min_line_length must be between %d and %d, got %d", MinLineLength, MaxLineLength, r.MinLine)
	}
	if r.BoardSize < MinBoardSize || r.BoardSize > MaxBoardSize {
		return fmt.Errorf("rules validation: board_size must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, r.BoardSize)
	}
	if r.BallsPerRound < MinBallsPerRound || r.BallsPerRound > MaxBallsPerRound {
		return fmt.Errorf("rules validation: balls_per_round must be between %d and %d, got %d", MinBallsPerRound, MaxBallsPerRound, r.BallsPerRound)
	}
	return nil
}

// Apply merges p into r field by field. Each field is validated on its
// own; an invalid field keeps the value from r so one bad value cannot
// veto the rest of the patch.
func (r Rules) Apply(p RulePatch) Rules {
	out := r
	if p.Colors != nil {
		if colors := distinctColors(p.Colors); len(colors) >= MinColors {
			out.Colors = colors
		}
	}
	if p.MinLine != nil && *p.MinLine >= MinLineLength && *p.MinLine <= MaxLineLength {
		out.MinLine = *p.MinLine
	}
	if p.BoardSize != nil && *p.BoardSize >= MinBoardSize && *p.BoardSize <= MaxBoardSize {
		out.BoardSize = *p.BoardSize
	}
	if p.BallsPerRound != nil && *p.BallsPerRound >= MinBallsPerRound && *p.BallsPerRound <= MaxBallsPerRound {
		out.BallsPerRound = *p.BallsPerRound
	}
	return out
}

// Sanitize replaces each invalid field with its default, for rules read
// back from persistence. Valid fields pass through unchanged; duplicate
// palette colors are collapsed.
func (r Rules) Sanitize() Rules {
	def := DefaultRules()
	out := r
	if colors := distinctColors(r.Colors); len(colors) >= MinColors {
		out.Colors = colors
	} else {
		out.Colors = def.Colors
	}
	if r.MinLine < MinLineLength || r.MinLine > MaxLineLength {
		out.MinLine = def.MinLine
	}
	if r.BoardSize < MinBoardSize || r.BoardSize > MaxBoardSize {
		out.BoardSize = def.BoardSize
	}
	if r.BallsPerRound < MinBallsPerRound || r.BallsPerRound > MaxBallsPerRound {
		out.BallsPerRound = def.BallsPerRound
	}
	return out
}

// ParseRules decodes rules JSON tolerantly. Missing fields keep their
// defaults, invalid fields fall back to their defaults, and a document
// that does not parse at all yields the full default ruleset. It never
// fails.
func ParseRules(data []byte) Rules {
	rules := DefaultRules()
	if err := json.Unmarshal(data, &rules); err != nil {
		log.Printf("[RULES] malformed rules document, using defaults: %v", err)
		return DefaultRules()
	}
	return rules.Sanitize()
}

// distinctColors returns the palette with duplicates removed, keeping
// first-occurrence order.
func distinctColors(colors []Color) []Color {
	seen := make(map[Color]bool, len(colors))
	out := make([]Color, 0, len(colors))
	for _, c := range colors {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// sameColors reports whether two palettes are identical in content and
// order.
func sameColors(a, b []Color) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
