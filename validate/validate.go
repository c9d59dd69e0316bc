// Command validate provides a small CLI that validates rule preset JSON
// files in the ../configs directory. It checks:
//   - JSON structure and preset metadata
//   - Rule bounds (palette size, line length, board size, spawn size)
//   - Duplicate palette colors
//   - Playability: a minimum-length line and a full spawn round must fit
//     on the configured board
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Rule parameter bounds. These mirror the engine's limits so the checker
// stays a standalone preflight tool with no module imports.
const (
	minBoardSize     = 3
	maxBoardSize     = 12
	minLineLength    = 3
	maxLineLength    = 8
	minBallsPerRound = 1
	maxBallsPerRound = 5
	minColors        = 2
)

// Preset mirrors the JSON schema for a stored rule preset.
type Preset struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Colors        []int  `json:"colors"`
	MinLine       int    `json:"min_line_length"`
	BoardSize     int    `json:"board_size"`
	BallsPerRound int    `json:"balls_per_round"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePreset loads and validates a single preset JSON file. It
// performs structural checks, rule bounds validation and a playability
// analysis of the combined parameters.
func validatePreset(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var preset Preset
	if err := json.Unmarshal(data, &preset); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}

	// Validate metadata
	if preset.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing preset name")
	}

	// Validate palette
	if len(preset.Colors) == 0 {
		result.Valid = false
		result.Errors = append(result.Errors, "Palette is empty")
	}

	distinct := map[int]bool{}
	for _, color := range preset.Colors {
		if distinct[color] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Duplicate color %d in palette", color))
			continue
		}
		distinct[color] = true
	}

	if len(preset.Colors) > 0 && len(distinct) < minColors {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Must have at least %d distinct colors, got %d", minColors, len(distinct)))
	}

	// Validate rule bounds
	if preset.MinLine < minLineLength || preset.MinLine > maxLineLength {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("min_line_length must be between %d and %d, got %d", minLineLength, maxLineLength, preset.MinLine))
	}

	if preset.BoardSize < minBoardSize || preset.BoardSize > maxBoardSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("board_size must be between %d and %d, got %d", minBoardSize, maxBoardSize, preset.BoardSize))
	}

	if preset.BallsPerRound < minBallsPerRound || preset.BallsPerRound > maxBallsPerRound {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("balls_per_round must be between %d and %d, got %d", minBallsPerRound, maxBallsPerRound, preset.BallsPerRound))
	}

	// Playability validation - the bounds can individually pass while the
	// combination still produces an unplayable game
	if result.Valid {
		playability := validatePlayability(preset)
		if !playability.Valid {
			result.Valid = false
		}
		result.Errors = append(result.Errors, playability.Errors...)
	}

	// Add informational data
	if result.Valid {
		cells := preset.BoardSize * preset.BoardSize
		fillRounds := (cells + preset.BallsPerRound - 1) / preset.BallsPerRound
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", preset.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %dx%d (%d cells)", preset.BoardSize, preset.BoardSize, cells))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Line length: %d", preset.MinLine))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Colors: %d distinct", len(distinct)))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Spawn: %d per round", preset.BallsPerRound))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Fill horizon: %d non-clearing moves to fill an empty board", fillRounds))
	}

	return result
}

// validatePlayability checks the cross-field consequences of a rule set:
// a minimum-length line must fit on the board in every direction, and a
// full spawn round must fit on an empty board. It returns an aggregated
// ValidationResult.
func validatePlayability(preset Preset) ValidationResult {
	result := ValidationResult{
		Valid:  true,
		Errors: []string{},
	}

	if preset.MinLine > preset.BoardSize {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unplayable rules: lines of %d can never fit on a %dx%d board", preset.MinLine, preset.BoardSize, preset.BoardSize))
		return result
	}

	// Bounds already cap balls_per_round below any legal board area, but
	// this function also runs against hand-built presets
	cells := preset.BoardSize * preset.BoardSize
	if preset.BallsPerRound > cells {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Unplayable rules: a spawn round of %d balls cannot fit on %d cells", preset.BallsPerRound, cells))
		return result
	}

	result.Errors = append(result.Errors, fmt.Sprintf("✓ Playability: lines of %d fit on the %dx%d board in all four directions", preset.MinLine, preset.BoardSize, preset.BoardSize))
	return result
}

// main scans the config directory for *.json files and validates each
// one, printing a concise report and exiting with non-zero status if any
// are invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding preset files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePreset(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All presets are valid!")
	} else {
		fmt.Println("❌ Some presets have errors")
		os.Exit(1)
	}
}
