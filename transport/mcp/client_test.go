package mcp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/wricardo/mcp-training/mazechase/game/engine"
	"github.com/wricardo/mcp-training/mazechase/game/service"
)

func testState() *engine.GameState {
	// 5x5 maze: walls around the border, pellets on the floor.
	grid := make([][]engine.Cell, 5)
	for y := range grid {
		grid[y] = make([]engine.Cell, 5)
		for x := range grid[y] {
			if x == 0 || y == 0 || x == 4 || y == 4 {
				grid[y][x] = engine.Cell{Kind: engine.Wall}
			} else {
				grid[y][x] = engine.Cell{Kind: engine.Pellet}
			}
		}
	}
	grid[1][1] = engine.Cell{Kind: engine.Empty} // player start
	grid[3][3] = engine.Cell{Kind: engine.Power}

	return &engine.GameState{
		Grid:      grid,
		PlayerPos: engine.Position{X: 1, Y: 1},
		Enemies:   []engine.Position{{X: 3, Y: 1}},
		Score:     30,
	}
}

func TestRenderCell(t *testing.T) {
	state := testState()

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"player", 1, 1, "C"},
		{"enemy", 3, 1, "E"},
		{"wall", 0, 0, "W"},
		{"pellet", 2, 1, "."},
		{"power", 3, 3, "O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderCell(state, tt.x, tt.y); got != tt.want {
				t.Errorf("renderCell(%d,%d) = %q, want %q", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestRenderCellPoweredEnemy(t *testing.T) {
	state := testState()
	state.PowerActive = true
	state.PowerRemaining = 3

	if got := renderCell(state, 3, 1); got != "e" {
		t.Errorf("expected lowercase e for edible enemy, got %q", got)
	}
}

func TestFormatGameState(t *testing.T) {
	state := testState()
	out := formatGameState(state)

	if !strings.Contains(out, "Position: (1,1)") {
		t.Error("expected player position in header")
	}
	if !strings.Contains(out, "Score: 30") {
		t.Error("expected score in header")
	}
	if !strings.Contains(out, "WWWWW") {
		t.Error("expected rendered wall row")
	}
	if strings.Contains(out, "GAME OVER") {
		t.Error("unexpected game over banner")
	}

	state.PowerActive = true
	state.PowerRemaining = 4
	out = formatGameState(state)
	if !strings.Contains(out, "POWER ACTIVE: 4 ticks remaining") {
		t.Error("expected power banner")
	}

	state.GameOver = true
	out = formatGameState(state)
	if !strings.Contains(out, "GAME OVER") {
		t.Error("expected game over banner")
	}
}

func TestFormatGameStateNil(t *testing.T) {
	if out := formatGameState(nil); !strings.Contains(out, "No game state") {
		t.Errorf("unexpected output for nil state: %q", out)
	}
}

func TestFormatMoveResult(t *testing.T) {
	result := &service.MoveResult{
		Success:   false,
		GameState: testState(),
		AttemptedTo: &service.AttemptInfo{
			X: 1, Y: 0, CellKind: "wall", Passable: false,
		},
		ThreatLevel:   "CAUTION: Enemy nearby",
		PossibleMoves: []string{"right", "down"},
	}

	out := formatMoveResult(result)
	if !strings.Contains(out, "✗ Move failed") {
		t.Error("expected failure marker")
	}
	if !strings.Contains(out, "attempted (1,0) cell=wall (impassable)") {
		t.Error("expected blocked diagnostics")
	}
	if !strings.Contains(out, "Possible moves: right,down") {
		t.Error("expected possible moves")
	}
}

func TestFormatHistory(t *testing.T) {
	history := &service.HistoryResponse{
		Moves: []engine.MoveHistoryEntry{
			{Action: "right", FromPosition: engine.Position{X: 1, Y: 1}, ToPosition: engine.Position{X: 2, Y: 1}, Score: 10, Success: true},
			{Action: "up", FromPosition: engine.Position{X: 2, Y: 1}, ToPosition: engine.Position{X: 2, Y: 1}, Score: 10, Success: false},
		},
		TotalMoves: 2,
		Page:       1,
		PageSize:   20,
		TotalPages: 1,
	}

	out := formatHistory(history)
	if !strings.Contains(out, "Total: 2") {
		t.Error("expected total in header")
	}
	if !strings.Contains(out, "1. right ✓") {
		t.Error("expected successful move line")
	}
	if !strings.Contains(out, "2. up ✗") {
		t.Error("expected failed move line")
	}
}

func toolText(t *testing.T, result *mcpgo.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := result.Content[0].(mcpgo.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func callRequest(name string, args map[string]interface{}) mcpgo.CallToolRequest {
	req := mcpgo.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestHandleGameStateAgainstAPI(t *testing.T) {
	state := testState()
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/sessions/ab12/state" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(state)
	}))
	defer apiServer.Close()

	client := NewClient(apiServer.URL)

	result, err := client.handleGameState(context.Background(),
		callRequest("game_state", map[string]interface{}{"session_id": "ab12"}))
	if err != nil {
		t.Fatalf("handleGameState failed: %v", err)
	}

	out := toolText(t, result)
	if !strings.Contains(out, "Score: 30") {
		t.Errorf("expected state in output, got: %s", out)
	}
}

func TestHandleGameStateAPIError(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "session not found: ffff"})
	}))
	defer apiServer.Close()

	client := NewClient(apiServer.URL)

	result, err := client.handleGameState(context.Background(),
		callRequest("game_state", map[string]interface{}{"session_id": "ffff"}))
	if err != nil {
		t.Fatalf("handleGameState returned transport error: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error result")
	}
}

func TestHandleDescribeCell(t *testing.T) {
	state := testState()
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(state)
	}))
	defer apiServer.Close()

	client := NewClient(apiServer.URL)

	result, err := client.handleDescribeCell(context.Background(),
		callRequest("describe_cell", map[string]interface{}{
			"session_id": "ab12", "x": float64(3), "y": float64(1),
		}))
	if err != nil {
		t.Fatalf("handleDescribeCell failed: %v", err)
	}

	out := toolText(t, result)
	if !strings.Contains(out, "DEADLY enemy") {
		t.Errorf("expected enemy occupant note, got: %s", out)
	}

	// Out of bounds
	result, err = client.handleDescribeCell(context.Background(),
		callRequest("describe_cell", map[string]interface{}{
			"session_id": "ab12", "x": float64(99), "y": float64(0),
		}))
	if err != nil {
		t.Fatalf("handleDescribeCell failed: %v", err)
	}
	if !result.IsError {
		t.Error("expected error for out-of-bounds coordinates")
	}
}

func TestHandleCreateSession(t *testing.T) {
	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/api/sessions" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(service.SessionInfo{ID: "ab12", ConfigName: "classic"})
	}))
	defer apiServer.Close()

	client := NewClient(apiServer.URL)

	result, err := client.handleCreateSession(context.Background(),
		callRequest("create_session", map[string]interface{}{"config_id": "classic"}))
	if err != nil {
		t.Fatalf("handleCreateSession failed: %v", err)
	}

	out := toolText(t, result)
	if !strings.Contains(out, "Created session: ab12") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestGetMCPServer(t *testing.T) {
	client := NewClient("http://localhost:8080")
	if client.GetMCPServer() == nil {
		t.Fatal("expected an MCP server instance")
	}
}
