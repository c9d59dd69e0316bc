package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type Cell struct {
	Color    int  `json:"color"`
	Occupied bool `json:"occupied"`
}

type Rules struct {
	Colors        []int `json:"colors"`
	MinLine       int   `json:"min_line_length"`
	BoardSize     int   `json:"board_size"`
	BallsPerRound int   `json:"balls_per_round"`
}

type GameState struct {
	BoardSize  int       `json:"board_size"`
	Cells      [][]Cell  `json:"cells"`
	NextColors []int     `json:"next_colors"`
	Score      int       `json:"score"`
	Status     string    `json:"status"`
	Selection  *Position `json:"selection,omitempty"`
	Rules      Rules     `json:"rules"`
	Turn       int       `json:"turn"`
}

type SessionResponse struct {
	ID        string     `json:"id"`
	Preset    string     `json:"preset"`
	GameState *GameState `json:"game_state"`
}

type ClickRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type CommandResult struct {
	Action    string     `json:"action"`
	Message   string     `json:"message,omitempty"`
	GameState *GameState `json:"game_state"`
}

type Client struct {
	baseURL   string
	sessionID string
	client    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateSession(preset string) (*GameState, error) {
	var reqBody []byte
	var err error

	if preset != "" {
		reqBody, err = json.Marshal(map[string]string{"preset": preset})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/sessions", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create session failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse session response: %w", err)
	}

	c.sessionID = session.ID
	return session.GameState, nil
}

func (c *Client) GetState() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s", c.baseURL, c.sessionID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var session SessionResponse
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return session.GameState, nil
}

func (c *Client) Click(row, col int) (*CommandResult, error) {
	body, err := json.Marshal(ClickRequest{Row: row, Col: col})
	if err != nil {
		return nil, fmt.Errorf("marshal click: %w", err)
	}

	url := fmt.Sprintf("%s/api/sessions/%s/click", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute click: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("click failed: %s - %s", resp.Status, string(respBody))
	}

	var result CommandResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("parse click response: %w", err)
	}

	return &result, nil
}

// Move performs the two clicks behind one ball move. Clicking a ball that
// is already selected toggles it off, so a "deselected" first click is
// simply clicked again.
func (c *Client) Move(from, to Position) (*GameState, string, error) {
	sel, err := c.Click(from.Row, from.Col)
	if err != nil {
		return nil, "", err
	}
	if sel.Action == "deselected" {
		sel, err = c.Click(from.Row, from.Col)
		if err != nil {
			return nil, "", err
		}
	}
	if sel.Action != "selected" && sel.Action != "reselected" {
		return sel.GameState, sel.Action, nil
	}

	res, err := c.Click(to.Row, to.Col)
	if err != nil {
		return nil, "", err
	}
	return res.GameState, res.Action, nil
}

func (c *Client) Reset() (*GameState, error) {
	url := fmt.Sprintf("%s/api/sessions/%s/reset", c.baseURL, c.sessionID)
	resp, err := c.client.Post(url, "application/json", nil)
	if err != nil {
		return nil, fmt.Errorf("reset: %w", err)
	}
	defer resp.Body.Close()

	var result CommandResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parse reset response: %w", err)
	}

	return result.GameState, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Game server URL")
	preset := flag.String("preset", "", "Rule preset name (classic, compact, grand)")
	continueSession := flag.String("continue", "", "Resume playing an existing session by ID")
	maxMoves := flag.Int("max-moves", 500, "Maximum moves per attempt")
	maxAttempts := flag.Int("max-attempts", 20, "Maximum attempts before giving up")
	targetScore := flag.Int("target", 100, "Score that counts as a win")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between moves in milliseconds (0 = no delay)")
	flag.Parse()

	log.Printf("Connecting to game server at %s", *serverURL)
	client := NewClient(*serverURL)

	var state *GameState
	var err error

	// Check for saved session ID
	sessionFile := ".session"
	savedSessionID := ""

	if *continueSession != "" {
		// Use explicitly provided session
		savedSessionID = *continueSession
	} else {
		// Try to load saved session
		if data, err := os.ReadFile(sessionFile); err == nil {
			savedSessionID = string(bytes.TrimSpace(data))
		}
	}

	if savedSessionID != "" {
		// Resume existing session
		client.sessionID = savedSessionID
		log.Printf("🔄 Resuming session: %s", client.sessionID)
		state, err = client.GetState()
		if err != nil {
			log.Printf("⚠️  Failed to resume session (may be expired): %v", err)
			log.Printf("Creating new session...")
			savedSessionID = "" // Force create new
		} else {
			log.Printf("Session resumed - Board: %dx%d, Balls: %d, Score: %d",
				state.BoardSize, state.BoardSize, countBalls(state), state.Score)
		}
	}

	if savedSessionID == "" {
		// Create new session
		state, err = client.CreateSession(*preset)
		if err != nil {
			log.Fatalf("Failed to create session: %v", err)
		}
		log.Printf("✨ Session created: %s", client.sessionID)
		log.Printf("Board: %dx%d, Colors: %d, Lines of %d, %d balls per round",
			state.BoardSize, state.BoardSize, len(state.Rules.Colors),
			state.Rules.MinLine, state.Rules.BallsPerRound)

		// Save session ID for next run
		if err := os.WriteFile(sessionFile, []byte(client.sessionID), 0644); err != nil {
			log.Printf("Warning: Failed to save session ID: %v", err)
		}
	}

	// RESET the game state at the beginning of each run
	log.Printf("🔄 Resetting game state...")
	state, err = client.Reset()
	if err != nil {
		log.Fatalf("Failed to reset game: %v", err)
	}
	log.Printf("Game reset - Balls: %d, Score: %d", countBalls(state), state.Score)

	// Initialize line-building strategy
	strategy := NewLineStrategy(state)

	// Keep trying until the score target is hit or attempts run out
	bestScore := 0
	attemptNum := 0
	for attemptNum < *maxAttempts {
		attemptNum++

		// Reset the game for this attempt
		if attemptNum > 1 {
			state, err = client.Reset()
			if err != nil {
				log.Printf("Failed to reset: %v", err)
				break
			}
		}

		// Reset strategy for new attempt
		strategy.Reset()

		log.Printf("\n=== 🎮 Attempt %d/%d ===", attemptNum, *maxAttempts)

		// Play until the board locks up - use single moves for reliability
		moveCount := 0
		for state.Status != "game_over" && moveCount < *maxMoves {
			if *verbose && moveCount%25 == 0 {
				log.Printf("Turn: %d, Score: %d, Balls: %d/%d",
					state.Turn, state.Score,
					countBalls(state), state.BoardSize*state.BoardSize)
			}

			// Get next move from strategy
			from, to, ok := strategy.NextMove(state)
			if !ok {
				log.Printf("⚠️  No valid moves available")
				break
			}

			// Execute the move as two clicks
			newState, action, err := client.Move(from, to)
			if err != nil {
				if *verbose {
					log.Printf("Move failed: %v", err)
				}
				// Resync with the server before trying again
				if recovered, rerr := client.GetState(); rerr == nil {
					state = recovered
				}
				continue
			}

			if action != "moved" {
				// Blocked path or a mis-timed click, steer the strategy away
				strategy.NoteFailed(from, to)
			}
			if newState != nil {
				state = newState
			}
			moveCount++

			// Add delay if specified
			if *delayMs > 0 {
				time.Sleep(time.Duration(*delayMs) * time.Millisecond)
			}
		}

		log.Printf("Attempt %d: Moves=%d, Turns=%d, Score=%d, Balls=%d",
			attemptNum, moveCount, state.Turn, state.Score, countBalls(state))

		if state.Score > bestScore {
			bestScore = state.Score
		}

		// Check if we hit the target
		if bestScore >= *targetScore {
			log.Printf("\n🎉 TARGET REACHED! Scored %d (target %d) in attempt %d!",
				bestScore, *targetScore, attemptNum)
			log.Printf("Session: %s", client.sessionID)
			os.Exit(0)
		}
	}

	// Fell short after all attempts
	log.Printf("\n❌ Best score %d after %d attempts (target %d)", bestScore, attemptNum, *targetScore)
	log.Printf("Session: %s", client.sessionID)
	os.Exit(1)
}

func countBalls(state *GameState) int {
	count := 0
	for _, row := range state.Cells {
		for _, cell := range row {
			if cell.Occupied {
				count++
			}
		}
	}
	return count
}
