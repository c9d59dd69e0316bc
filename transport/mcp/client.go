package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/colorlines/colorlines/game/engine"
	"github.com/colorlines/colorlines/game/service"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Color Lines Game",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Color Lines Game - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Arrange balls of the same color into straight lines to clear them and score points. Every move that clears nothing spawns new balls, so the board fills up unless you keep clearing.

AVAILABLE TOOLS:
- game_state: Get current board, score, status and next spawn colors
- click: Single click on a cell (select a ball or move the selection) - requires intent explanation
- move_ball: Select a ball and move it to a target cell in one call - requires intent explanation
- reset_game: Reset to a fresh board
- turn_history: View past turns
- create_session: Create new game session
- get_session: Get session details
- list_sessions: List all active sessions
- configure: Change the rules of a running session
- list_configs: List available rule presets
- top_scores: Show the persistent leaderboard
- game_instructions: Get comprehensive game instructions and rules
- describe_cell: Get detailed info about a specific board cell (color identity plus reachability from the current selection)

NOTE: The 'intent' parameter on click/move_ball tools serves as rubber duck debugging - explain your reasoning!`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional rule preset selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"preset": map[string]interface{}{
					"type":        "string",
					"description": "Name of the rule preset to use (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID to retrieve",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "click",
		Description: "Click a cell. Clicking a ball selects it, clicking an empty cell moves the selected ball there, clicking the selected ball deselects it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to click (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to click (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this click (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleClick)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_ball",
		Description: "Select the ball at (from_row, from_col) and move it to the empty cell at (to_row, to_col) in one call",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"from_row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the ball to move (0-based)",
				},
				"from_col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the ball to move (0-based)",
				},
				"to_row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the destination cell (0-based)",
				},
				"to_col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the destination cell (0-based)",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Brief explanation of the intent behind this move (serves as a rubber duck to help explain your reasoning)",
				},
			},
			Required: []string{"session_id", "from_row", "from_col", "to_row", "to_col"},
		},
	}, c.handleMoveBall)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Reset the game to a fresh board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "configure",
		Description: "Change the rules of a running session. Unknown or invalid values are ignored field by field, the rest apply.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"board_size": map[string]interface{}{
					"type":        "integer",
					"description": "Board size N for an NxN board (3-12). Changing it restarts the board.",
				},
				"min_line_length": map[string]interface{}{
					"type":        "integer",
					"description": "Minimum run length that clears (3-8)",
				},
				"balls_per_round": map[string]interface{}{
					"type":        "integer",
					"description": "Balls spawned after a non-clearing move (1-5)",
				},
				"colors": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "integer",
					},
					"description": "Palette of ball colors (at least 2 distinct values)",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleConfigure)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "turn_history",
		Description: "Get turn history for a session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"page": map[string]interface{}{
					"type":        "integer",
					"description": "Page number",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Items per page",
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleTurnHistory)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available rule presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "top_scores",
		Description: "Show the persistent leaderboard of best final scores",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleTopScores)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get comprehensive game instructions and rules",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Get detailed information about a specific board cell, including its exact color symbol and whether the currently selected ball can reach it. Useful for verifying a move before committing to it.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session ID",
				},
				"row": map[string]interface{}{
					"type":        "integer",
					"description": "Row of the cell to describe (0-based)",
				},
				"col": map[string]interface{}{
					"type":        "integer",
					"description": "Column of the cell to describe (0-based)",
				},
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	preset, _ := args["preset"].(string)

	body := map[string]string{}
	if preset != "" {
		body["preset"] = preset
	}

	var session service.SessionInfo
	err := c.apiCall("POST", "/api/sessions", body, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nPreset: %s\n\n%s",
		session.ID, presetLabel(session.Preset), formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	err := c.apiCall("GET", "/api/sessions", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		result += fmt.Sprintf("- %s (Preset: %s, Created: %s)\n",
			s.ID, presetLabel(s.Preset), s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var session service.SessionInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatGameState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := int(args["row"].(float64))
	col := int(args["col"].(float64))
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	body := map[string]int{
		"row": row,
		"col": col,
	}

	var result service.CommandResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/click", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatCommandResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleMoveBall(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	fromRow := int(args["from_row"].(float64))
	fromCol := int(args["from_col"].(float64))
	toRow := int(args["to_row"].(float64))
	toCol := int(args["to_col"].(float64))
	intent, _ := args["intent"].(string)

	// Intent parameter serves as rubber duck debugging - we don't need to process it further
	_ = intent

	clickPath := fmt.Sprintf("/api/sessions/%s/click", sessionID)

	var selection service.CommandResult
	err := c.apiCall("POST", clickPath, map[string]int{"row": fromRow, "col": fromCol}, &selection)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Clicking the already selected ball toggles it off, so click once more
	// to restore the selection before attempting the move.
	if selection.Action == string(engine.ActionDeselected) {
		err = c.apiCall("POST", clickPath, map[string]int{"row": fromRow, "col": fromCol}, &selection)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	if selection.Action != string(engine.ActionSelected) && selection.Action != string(engine.ActionReselected) {
		response := fmt.Sprintf("Could not select (%d,%d): %s\n\n%s",
			fromRow, fromCol, selection.Message, formatGameState(selection.GameState))
		return mcp.NewToolResultText(response), nil
	}

	var result service.CommandResult
	err = c.apiCall("POST", clickPath, map[string]int{"row": toRow, "col": toCol}, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("Move (%d,%d)→(%d,%d)\n\n%s",
		fromRow, fromCol, toRow, toCol, formatCommandResult(&result))
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	var result service.CommandResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/reset", sessionID), nil, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatCommandResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleConfigure(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	body := map[string]interface{}{}
	if v, ok := args["board_size"].(float64); ok {
		body["board_size"] = int(v)
	}
	if v, ok := args["min_line_length"].(float64); ok {
		body["min_line_length"] = int(v)
	}
	if v, ok := args["balls_per_round"].(float64); ok {
		body["balls_per_round"] = int(v)
	}
	if raw, ok := args["colors"].([]interface{}); ok {
		colors := make([]int, 0, len(raw))
		for _, item := range raw {
			if v, ok := item.(float64); ok {
				colors = append(colors, int(v))
			}
		}
		if len(colors) > 0 {
			body["colors"] = colors
		}
	}

	var result service.CommandResult
	err := c.apiCall("POST", fmt.Sprintf("/api/sessions/%s/configure", sessionID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatCommandResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleTurnHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)

	params := "?"
	if page, ok := args["page"].(float64); ok {
		params += fmt.Sprintf("page=%d&", int(page))
	}
	if limit, ok := args["limit"].(float64); ok {
		params += fmt.Sprintf("limit=%d&", int(limit))
	}

	var history service.HistoryResponse
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/history%s", sessionID, params), nil, &history)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch the live state for a current standing footer
	var session service.SessionInfo
	if err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s", sessionID), nil, &session); err != nil {
		// If fetching the session fails, still return the history
		result := formatHistory(&history)
		return mcp.NewToolResultText(result), nil
	}

	result := formatHistory(&history)
	result += "\n" + formatStanding(session.GameState)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Presets:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s (%s)\n  %s\n  Board: %dx%d, Line: %d, Colors: %d, Spawn: %d per round\n\n",
			config.Name, config.ConfigID, config.Description,
			config.BoardSize, config.BoardSize, config.MinLine, config.Colors, config.BallsPerRound)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleTopScores(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count  int                  `json:"count"`
		Scores []service.ScoreEntry `json:"scores"`
	}

	err := c.apiCall("GET", "/api/leaderboard", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Scores) == 0 {
		return mcp.NewToolResultText("No scores on the leaderboard yet."), nil
	}

	result := fmt.Sprintf("Top Scores (%d):\n\n", response.Count)
	for _, entry := range response.Scores {
		result += fmt.Sprintf("%d. %d points (%s)\n",
			entry.Rank, entry.Score, entry.Date.Format("2006-01-02"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `🎮 Color Lines - Complete Instructions

GAME OBJECTIVE:
Keep the board alive as long as possible and maximize your score by arranging balls of the same color into straight lines. Completed lines vanish and score points.

GAME MECHANICS:
• Click a ball to select it, then click an empty cell to move it there
• Movement: balls travel along orthogonally connected EMPTY cells only (no jumping over balls, no diagonal steps)
• Line completion: a straight run of same-colored balls at least min_line_length long (row, column, or either diagonal) is removed and scored the moment it forms
• Scoring: 10 points per removed ball
• Spawning: every move that removes nothing spawns balls_per_round new balls at random empty cells
• Free move: a move that clears a line spawns nothing, so chained clears starve the board of new balls
• Cascade: spawned balls that happen to complete a line are removed and scored immediately

BOARD LEGEND:
• . - Empty cell (the only legal move target)
• 1-9 - Ball of that color (matching digits form lines together)
• A-Z - Ball colors beyond 9 in custom palettes
• Next colors: the exact colors the next spawn round will place

🤖 AI AGENTS - CRITICAL SUCCESS STRATEGIES:

⚠️ PATH VERIFICATION (MOST COMMON FAILURE POINT):
A move is legal ONLY when a chain of empty orthogonal steps connects the ball to the target.

1. **Balls are walls**: every occupied cell blocks movement, including balls of the color you are collecting
2. **No diagonal movement**: two balls touching corner to corner leave no gap to slip through
3. **Verify before committing**: select the ball, then use describe_cell on the target to get a reachability verdict
4. **Blocked is not wasted**: a blocked move keeps your selection and spawns nothing, simply pick another target

📉 SPAWN PRESSURE MANAGEMENT:
- Every non-clearing move adds balls_per_round balls to the board
- Watch the "Spawn pressure" line in game_state output (SAFE, CAUTION, DANGER, CRITICAL)
- Prefer clearing moves over setup moves once pressure reaches CAUTION
- At DANGER, only consider moves that clear a line immediately

🎯 LINE PLANNING:
- Count your colors: the "Color counts" line shows how many balls of each color exist
- min_line_length balls of one color on the board means a line is available if you can gather them
- Extend existing runs rather than starting new clusters (the "longest run" figure tracks your best run)
- Watch next_colors and leave gathering room for colors that are about to arrive
- Lines longer than the minimum score more, but never risk the board for style points

🔄 TURN DISCIPLINE:
1. **Read**: call game_state and parse the grid row by row using the coordinate headers
2. **Count**: empty cells, color counts, current longest run
3. **Plan**: shortlist clearing moves first, then setup moves
4. **Verify**: describe_cell the intended target while the ball is selected
5. **Execute**: move_ball with a one-line intent

🚨 CRITICAL PITFALLS TO AVOID:
- ❌ Moving a ball into a pocket that walls off your own cluster
- ❌ Assuming a target is reachable because it looks close on the grid
- ❌ Clicking an occupied cell as a move target (it reselects that ball instead of moving)
- ❌ Ignoring next_colors when choosing where to leave empty space
- ❌ Spending moves on cosmetic rearrangement while spawn pressure climbs

🎮 API USAGE BEST PRACTICES:
- Use move_ball for select plus move in one call, use click when you need fine control
- A click on the currently selected ball deselects it
- Every command response lists events describing exactly what changed
- Monitor game state continuously during execution
- Use configure to shrink the board or palette when practicing

SCORING:
- 10 points per ball removed
- Overlapping lines cleared by one move all score at once, shared balls count once
- Final scores are persisted to the leaderboard automatically (see top_scores)

GAME OVER CONDITIONS:
- The board fills completely, or a spawn round cannot place all of its balls
- Game displays "💀 GAME OVER" when this occurs
- reset_game starts the same session over with a fresh opening spawn

CONFIGURATION OPTIONS:
- board_size: 3 to 12 (default 9). Changing it restarts the board.
- min_line_length: 3 to 8 (default 5)
- balls_per_round: 1 to 5 (default 3)
- colors: any palette of at least 2 distinct values (default 7 colors)
- Invalid values are ignored field by field, valid fields still apply

SESSION MANAGEMENT:
- Multiple game sessions can run simultaneously
- Each session has a unique 4-character ID
- Sessions maintain independent state and configuration
- Use session-specific tools for multi-game management

Remember: success comes from verifying paths before moving, clearing lines to suppress spawns, and planning around the published next_colors queue. The most common failure is moving to a cell the selected ball cannot reach!

Good luck clearing those lines! 🔵🟢🔴`

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	sessionID, _ := args["session_id"].(string)
	row := int(args["row"].(float64))
	col := int(args["col"].(float64))

	// Get the current game state to access the board
	var state engine.GameState
	err := c.apiCall("GET", fmt.Sprintf("/api/sessions/%s/state", sessionID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Check bounds
	size := state.BoardSize
	if row < 0 || row >= size || col < 0 || col >= size {
		return mcp.NewToolResultError(fmt.Sprintf("Position (%d, %d) is out of bounds. Board is %dx%d (0-%d for both row and col)",
			row, col, size, size, size-1)), nil
	}

	cell := state.Cells[row][col]
	board := rebuildBoard(&state)
	pos := engine.Position{Row: row, Col: col}

	// Determine cell symbol and description
	var cellSymbol string
	var cellType string
	var description string
	if cell.Occupied {
		cellSymbol = colorChar(cell.Color)
		cellType = fmt.Sprintf("Ball (color %s)", cellSymbol)
		description = fmt.Sprintf("Occupied by a color %s ball. %d balls of this color are on the board.",
			cellSymbol, engine.CountColor(board, cell.Color))
		if state.Selection != nil && state.Selection.Row == row && state.Selection.Col == col {
			description += " This ball is currently selected."
		}
	} else {
		cellSymbol = "."
		cellType = "Empty"
		description = "Empty cell. A selected ball can move here if an orthogonal path of empty cells exists."
	}

	// Reachability verdict relative to the current selection
	reachability := "No ball is selected, so reachability cannot be judged yet."
	if state.Selection != nil {
		from := *state.Selection
		switch {
		case from.Row == row && from.Col == col:
			reachability = "This is the selected ball itself."
		case cell.Occupied:
			reachability = "Occupied cells are never move targets. Clicking here would reselect this ball."
		default:
			if path := engine.ShortestPath(board, from, pos); path != nil {
				reachability = fmt.Sprintf("REACHABLE from the selected ball at (%d,%d) in %d steps.",
					from.Row, from.Col, len(path)-1)
			} else {
				reachability = fmt.Sprintf("NOT reachable from the selected ball at (%d,%d). Every path is blocked by other balls.",
					from.Row, from.Col)
			}
		}
	}

	// Build result
	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Symbol: %s
Type: %s
Description: %s
Reachability: %s

IMPORTANT: The symbol '%s' is what appears in the grid display.
%s`,
		row, col,
		cellSymbol,
		cellType,
		description,
		reachability,
		cellSymbol,
		getSymbolReminder(cellSymbol))

	return mcp.NewToolResultText(result), nil
}

func getSymbolReminder(symbol string) string {
	if symbol == "." {
		return "✅ Empty cells are the only legal move targets. The ball travels through empty cells and never jumps over other balls."
	}
	return fmt.Sprintf("⚠️ REMINDER: every '%s' on the board is the same color. Only balls with matching symbols form lines together.", symbol)
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nPreset: %s\nCreated: %s\n\n%s",
		session.ID, presetLabel(session.Preset),
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func presetLabel(preset string) string {
	if preset == "" {
		return "default"
	}
	return preset
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var result strings.Builder
	size := state.BoardSize
	board := rebuildBoard(state)

	// Header
	result.WriteString(fmt.Sprintf("Turn: %d | Score: %d | Status: %s | Balls: %d/%d\n",
		state.Turn, state.Score, state.Status, board.BallCount(), size*size))
	result.WriteString(fmt.Sprintf("Next colors: %s\n", formatColorList(state.NextColors)))

	// Decision aids
	if counts := formatColorCounts(board); counts != "" {
		result.WriteString(fmt.Sprintf("Color counts: %s\n", counts))
	}
	if run := engine.LongestRun(board); run > 0 {
		result.WriteString(fmt.Sprintf("Longest run: %d (need %d)\n", run, state.Rules.MinLine))
	}
	result.WriteString(fmt.Sprintf("Spawn pressure: %s\n", engine.AnalyzeSpawnPressure(board, state.Rules)))
	if state.Selection != nil {
		result.WriteString(fmt.Sprintf("Selection: (%d,%d)\n", state.Selection.Row, state.Selection.Col))
	}
	result.WriteString("\n")

	// Grid with coordinate headers
	result.WriteString("   ")
	for col := 0; col < size; col++ {
		result.WriteString(fmt.Sprintf("%2d", col))
	}
	result.WriteString("\n")
	for row := range state.Cells {
		result.WriteString(fmt.Sprintf("%2d ", row))
		for col := range state.Cells[row] {
			result.WriteString(" " + cellChar(state.Cells[row][col]))
		}
		result.WriteString("\n")
	}

	// Status
	if state.Status == engine.StatusGameOver {
		result.WriteString("\n💀 GAME OVER - no room left to play")
	}

	return result.String()
}

func formatCommandResult(result *service.CommandResult) string {
	response := fmt.Sprintf("Action: %s\n", result.Action)
	if result.Message != "" {
		response += fmt.Sprintf("Message: %s\n", result.Message)
	}

	if len(result.Events) > 0 {
		response += "Events:\n"
		for _, event := range result.Events {
			response += fmt.Sprintf("- %s: %s\n", event.Type, event.Message)
		}
	}

	response += "\n" + formatGameState(result.GameState)
	return response
}

func formatHistory(history *service.HistoryResponse) string {
	result := fmt.Sprintf("Turn History (Page %d/%d) | Total turns: %d\n\n",
		history.Page, history.TotalPages, history.TotalTurns)

	if len(history.Turns) == 0 {
		return result + "(no turns on this page)\n"
	}

	for _, turn := range history.Turns {
		line := fmt.Sprintf("%d. %s", turn.Turn, turn.Action)
		if turn.From != nil && turn.To != nil {
			line += fmt.Sprintf(" (%d,%d)→(%d,%d)", turn.From.Row, turn.From.Col, turn.To.Row, turn.To.Col)
		} else if turn.To != nil {
			line += fmt.Sprintf(" (%d,%d)", turn.To.Row, turn.To.Col)
		}
		if turn.Removed > 0 {
			line += fmt.Sprintf(" removed=%d", turn.Removed)
		}
		if turn.Spawned > 0 {
			line += fmt.Sprintf(" spawned=%d", turn.Spawned)
		}
		line += fmt.Sprintf(" [Score: %d]", turn.Score)
		result += line + "\n"
	}

	return result
}

// formatStanding renders a one-line summary of where the game is now
func formatStanding(state *engine.GameState) string {
	if state == nil {
		return "Current standing: unavailable"
	}
	board := rebuildBoard(state)
	return fmt.Sprintf("Current standing: turn %d, score %d, %d balls on a %dx%d board, longest run %d",
		state.Turn, state.Score, board.BallCount(), state.BoardSize, state.BoardSize, engine.LongestRun(board))
}

// rebuildBoard reconstructs a Board from a serialized snapshot so the
// analysis helpers can run client side.
func rebuildBoard(state *engine.GameState) *engine.Board {
	b := engine.NewBoard(state.BoardSize)
	for row := range state.Cells {
		for col := range state.Cells[row] {
			cell := state.Cells[row][col]
			if cell.Occupied {
				b.Place(engine.Position{Row: row, Col: col}, cell.Color)
			}
		}
	}
	return b
}

func cellChar(cell engine.Cell) string {
	if !cell.Occupied {
		return "."
	}
	return colorChar(cell.Color)
}

// colorChar maps a color to a single display character: digits for 1-9,
// letters for larger palette values.
func colorChar(color engine.Color) string {
	switch {
	case color >= 1 && color <= 9:
		return fmt.Sprintf("%d", color)
	case color >= 10 && color <= 35:
		return string(rune('A' + color - 10))
	default:
		return "?"
	}
}

func formatColorList(colors []engine.Color) string {
	if len(colors) == 0 {
		return "(none)"
	}
	parts := make([]string, len(colors))
	for i, color := range colors {
		parts[i] = colorChar(color)
	}
	return strings.Join(parts, " ")
}

// formatColorCounts renders ball tallies as "symbol:count" pairs in
// ascending color order.
func formatColorCounts(board *engine.Board) string {
	counts := engine.ColorCounts(board)
	if len(counts) == 0 {
		return ""
	}
	colors := make([]engine.Color, 0, len(counts))
	for color := range counts {
		colors = append(colors, color)
	}
	sort.Slice(colors, func(i, j int) bool { return colors[i] < colors[j] })
	parts := make([]string, len(colors))
	for i, color := range colors {
		parts[i] = fmt.Sprintf("%s:%d", colorChar(color), counts[color])
	}
	return strings.Join(parts, " ")
}
