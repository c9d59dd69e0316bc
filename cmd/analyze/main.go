// Command analyze prints quick, human-readable heuristics about the rule
// presets in the project's configs directory. It summarizes board capacity,
// spawn pacing, how many positions can host a scoring line, and highlights
// rulesets that are too tight to play comfortably.
package main

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
)

// AnalysisPreset is a light struct for reading preset files used by analysis.
type AnalysisPreset struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Colors        []int  `json:"colors"`
	MinLine       int    `json:"min_line_length"`
	BoardSize     int    `json:"board_size"`
	BallsPerRound int    `json:"balls_per_round"`
}

func main() {
	presets := []string{
		"classic.json",
		"compact.json",
		"grand.json",
	}

	for _, presetFile := range presets {
		fmt.Printf("\n=== Analyzing %s ===\n", presetFile)
		analyzePreset(filepath.Join("configs", presetFile))
	}
}

func analyzePreset(path string) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		return
	}

	var preset AnalysisPreset
	if err := json.Unmarshal(data, &preset); err != nil {
		fmt.Printf("Error parsing JSON: %v\n", err)
		return
	}

	cells := preset.BoardSize * preset.BoardSize
	fmt.Printf("Name: %s\n", preset.Name)
	fmt.Printf("Board: %d x %d (%d cells)\n", preset.BoardSize, preset.BoardSize, cells)
	fmt.Printf("Line Length: %d\n", preset.MinLine)
	fmt.Printf("Colors: %d\n", len(preset.Colors))
	fmt.Printf("Balls Per Round: %d\n", preset.BallsPerRound)

	// How many distinct positions can host a full line on this board.
	slots := linePlacements(preset.BoardSize, preset.MinLine)
	fmt.Printf("Line Placements (rows+cols+diagonals): %d\n", slots)

	// How long an unlucky game can last: spawn rounds until a board that
	// never clears fills up completely.
	if preset.BallsPerRound > 0 {
		horizon := (cells + preset.BallsPerRound - 1) / preset.BallsPerRound
		fmt.Printf("Fill Horizon: %d non-clearing rounds\n", horizon)
	}

	// Expected spawns before one color has a line's worth of balls,
	// assuming a uniform draw and no clearing in between.
	if preset.BallsPerRound > 0 && len(preset.Colors) > 0 {
		rounds := (preset.MinLine*len(preset.Colors) + preset.BallsPerRound - 1) / preset.BallsPerRound
		fmt.Printf("Rounds To First Line Material: ~%d\n", rounds)
	}

	// Geometry check: can a minimum line exist at all?
	if slots == 0 {
		fmt.Printf("⚠️  CRITICAL: lines of %d can never fit on a %dx%d board!\n", preset.MinLine, preset.BoardSize, preset.BoardSize)
		fmt.Printf("   No line placement exists, so no ball can ever be cleared\n")
	} else if preset.MinLine == preset.BoardSize {
		fmt.Printf("⚠️  WARNING: lines only fit spanning a full row, column or diagonal\n")
		fmt.Printf("   %d placements total, every one of them blocked by a single stray ball\n", slots)
	} else {
		fmt.Printf("✅ Lines of %d fit on the board in all four directions\n", preset.MinLine)
	}

	// Pacing check: each round adds balls, each cleared minimum line
	// removes MinLine of them. If a round outpaces a line the board
	// fills even for a player clearing every single turn.
	if preset.MinLine > 0 {
		if preset.BallsPerRound > preset.MinLine {
			fmt.Printf("⚠️  WARNING: %d balls per round outpace lines of %d\n", preset.BallsPerRound, preset.MinLine)
			fmt.Printf("   The board fills even when every turn clears a line\n")
		} else if preset.BallsPerRound == preset.MinLine {
			fmt.Printf("⚠️  WARNING: break-even pacing, one full line per round just holds the board level\n")
		} else {
			fmt.Printf("✅ Clearing a line removes more balls than a round adds (%d vs %d)\n", preset.MinLine, preset.BallsPerRound)
		}
	}

	// Density check: with a uniform draw the board holds about
	// MinLine*len(Colors) balls before one color has a line's worth.
	if material := preset.MinLine * len(preset.Colors); material > 0 && cells > 0 {
		if material > cells {
			fmt.Printf("⚠️  WARNING: %d colors need ~%d balls for line material but the board only holds %d\n", len(preset.Colors), material, cells)
		} else {
			fmt.Printf("✅ Board capacity %d comfortably holds ~%d balls of line material\n", cells, material)
		}
	}
}

// linePlacements counts the positions where a run of minLine cells fits on
// a size x size board: horizontal, vertical and both diagonal directions.
func linePlacements(size, minLine int) int {
	if minLine <= 0 || minLine > size {
		return 0
	}
	span := size - minLine + 1
	return 2*size*span + 2*span*span
}
