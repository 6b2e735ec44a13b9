package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wricardo/mcp-training/mazechase/game/config"
	"github.com/wricardo/mcp-training/mazechase/game/service"
	"github.com/wricardo/mcp-training/mazechase/game/session"
	"github.com/wricardo/mcp-training/mazechase/transport/websocket"
)

func newTestServer(t *testing.T) (*Server, service.GameService) {
	t.Helper()

	configManager, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("config manager: %v", err)
	}

	svc := service.NewGameServiceWithOptions(
		session.NewManager(),
		configManager,
		service.Options{DisableRunners: true},
	)
	t.Cleanup(svc.Close)

	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	return NewServer(svc, hub), svc
}

func doRequest(t *testing.T, server *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	return rr
}

func createSession(t *testing.T, server *Server) string {
	t.Helper()

	rr := doRequest(t, server, "POST", "/api/sessions", map[string]string{})
	if rr.Code != http.StatusCreated {
		t.Fatalf("create session: expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var info service.SessionInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	return info.ID
}

func TestCreateSessionEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doRequest(t, server, "POST", "/api/sessions", map[string]string{})
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var info service.SessionInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.ID == "" {
		t.Error("expected session ID in response")
	}
	if info.GameState == nil {
		t.Error("expected initial game state in response")
	}
}

func TestCreateSessionUnknownConfig(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doRequest(t, server, "POST", "/api/sessions", map[string]string{"config_id": "no-such-maze"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestListSessionsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	for i := 0; i < 3; i++ {
		createSession(t, server)
	}

	rr := doRequest(t, server, "GET", "/api/sessions", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 3 || len(resp.Sessions) != 3 {
		t.Errorf("expected 3 sessions, got count=%d len=%d", resp.Count, len(resp.Sessions))
	}

	rr = doRequest(t, server, "GET", "/api/sessions?limit=2", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Sessions) != 2 {
		t.Errorf("expected limit of 2 sessions, got %d", len(resp.Sessions))
	}
}

func TestGetSessionEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	rr := doRequest(t, server, "GET", "/api/sessions/"+id, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/ffff", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteSessionEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	rr := doRequest(t, server, "DELETE", "/api/sessions/"+id, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}

	rr = doRequest(t, server, "GET", "/api/sessions/"+id, nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rr.Code)
	}
}

func TestGetGameStateEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	rr := doRequest(t, server, "GET", fmt.Sprintf("/api/sessions/%s/state", id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var state struct {
		Grid  [][]map[string]string `json:"grid"`
		Score int                   `json:"score"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(state.Grid) == 0 {
		t.Error("expected a grid in the state")
	}
	if state.Score != 0 {
		t.Errorf("expected score 0, got %d", state.Score)
	}
}

func TestMoveEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	// The built-in maze starts the player at (1,1) with open floor to the
	// right, so this move succeeds and collects whatever was seeded there.
	rr := doRequest(t, server, "POST", fmt.Sprintf("/api/sessions/%s/move", id),
		map[string]interface{}{"direction": "right"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var result service.MoveResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !result.Success {
		t.Errorf("expected successful move, got %q", result.Message)
	}
	if result.GameState.Score <= 0 {
		t.Errorf("expected points from the consumed cell, got %d", result.GameState.Score)
	}

	// Up from the start row is the border wall.
	rr = doRequest(t, server, "POST", fmt.Sprintf("/api/sessions/%s/move", id),
		map[string]interface{}{"direction": "up"})
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Success {
		t.Error("expected blocked move into the wall")
	}
	if result.AttemptedTo == nil || result.AttemptedTo.CellKind != "wall" {
		t.Errorf("expected wall diagnostics, got %+v", result.AttemptedTo)
	}
}

func TestMoveEndpointErrors(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	req := httptest.NewRequest("POST", fmt.Sprintf("/api/sessions/%s/move", id),
		strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	server.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad body, got %d", rr.Code)
	}

	rr = doRequest(t, server, "POST", "/api/sessions/ffff/move",
		map[string]interface{}{"direction": "right"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for missing session, got %d", rr.Code)
	}
}

func TestResetEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	doRequest(t, server, "POST", fmt.Sprintf("/api/sessions/%s/move", id),
		map[string]interface{}{"direction": "right"})

	rr := doRequest(t, server, "POST", fmt.Sprintf("/api/sessions/%s/reset", id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp struct {
		State struct {
			Score int `json:"score"`
		} `json:"state"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.State.Score != 0 {
		t.Errorf("expected score 0 after reset, got %d", resp.State.Score)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	id := createSession(t, server)

	for _, dir := range []string{"right", "right", "down"} {
		doRequest(t, server, "POST", fmt.Sprintf("/api/sessions/%s/move", id),
			map[string]interface{}{"direction": dir})
	}

	rr := doRequest(t, server, "GET", fmt.Sprintf("/api/sessions/%s/history?page=1&limit=2", id), nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	var resp service.HistoryResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TotalMoves != 3 {
		t.Errorf("expected 3 total moves, got %d", resp.TotalMoves)
	}
	if len(resp.Moves) != 2 {
		t.Errorf("expected 2 moves on page, got %d", len(resp.Moves))
	}
	if !resp.HasNext {
		t.Error("expected a next page")
	}
}

func TestConfigEndpoints(t *testing.T) {
	server, _ := newTestServer(t)

	// Save a new config through the API, then read it back.
	newConfig := map[string]interface{}{
		"name":        "api-test",
		"description": "Maze created through the API",
		"grid_size":   5,
		"layout": []string{
			"WWWWW",
			"WS..W",
			"W.W.W",
			"W..EW",
			"WWWWW",
		},
		"legend": map[string]string{
			"W": "wall", ".": "floor", "S": "start", "E": "enemy",
		},
		"pellet_points":  10,
		"power_points":   50,
		"power_duration": 5,
		"messages": map[string]string{
			"welcome":      "Welcome",
			"pellet_eaten": "Pellet! +%d",
			"power_eaten":  "Power! +%d",
			"caught":       "Caught",
		},
	}

	rr := doRequest(t, server, "POST", "/api/configs", newConfig)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, "GET", "/api/configs/api-test", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doRequest(t, server, "GET", "/api/configs", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var configs []*service.ConfigInfo
	if err := json.Unmarshal(rr.Body.Bytes(), &configs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(configs) != 1 || configs[0].ConfigID != "api-test" {
		t.Errorf("unexpected config list: %+v", configs)
	}

	rr = doRequest(t, server, "GET", "/api/configs/missing", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestCreateConfigValidation(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doRequest(t, server, "POST", "/api/configs", map[string]interface{}{
		"description": "missing name",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing name, got %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doRequest(t, server, "GET", "/api/health", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestWebSocketEndpointValidation(t *testing.T) {
	server, _ := newTestServer(t)

	rr := doRequest(t, server, "GET", "/ws", nil)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without session param, got %d", rr.Code)
	}

	rr = doRequest(t, server, "GET", "/ws?session=ffff", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown session, got %d", rr.Code)
	}
}
