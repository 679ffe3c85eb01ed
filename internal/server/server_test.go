package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"disc-score/internal/config"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(nil, config.Default())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any, headers map[string]string) *http.Response {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func createTeamWithPlayers(t *testing.T, ts *httptest.Server, name string) (uint, []uint) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/teams", map[string]any{"name": name}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create team: status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	teamID := uint(body["team_id"].(float64))

	var players []uint
	for i := 1; i <= squadSize; i++ {
		resp := doRequest(t, ts, http.MethodPost, fmt.Sprintf("/api/teams/%d/players", teamID), map[string]any{
			"name":   fmt.Sprintf("%s player %d", name, i),
			"number": i,
		}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add player: status %d", resp.StatusCode)
		}
		players = append(players, uint(decodeBody(t, resp)["player_id"].(float64)))
	}
	return teamID, players
}

type testMatch struct {
	gameID      string
	token       string
	homeTeamID  uint
	awayTeamID  uint
	homePlayers []uint
	awayPlayers []uint
}

func createMatch(t *testing.T, ts *httptest.Server) testMatch {
	t.Helper()
	homeID, homePlayers := createTeamWithPlayers(t, ts, "Sockeye")
	awayID, awayPlayers := createTeamWithPlayers(t, ts, "Revolver")

	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"home_team_id":    homeID,
		"away_team_id":    awayID,
		"pulling_team_id": homeID,
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create game: status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return testMatch{
		gameID:      body["game_id"].(string),
		token:       body["scorekeeper_token"].(string),
		homeTeamID:  homeID,
		awayTeamID:  awayID,
		homePlayers: homePlayers,
		awayPlayers: awayPlayers,
	}
}

func (m testMatch) auth() map[string]string {
	return map[string]string{scorekeeperTokenHeader: m.token}
}

func (m testMatch) startPoint(t *testing.T, ts *httptest.Server) {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+m.gameID+"/points", map[string]any{
		"home_lineup": m.homePlayers,
		"away_lineup": m.awayPlayers,
	}, m.auth())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start point: status %d", resp.StatusCode)
	}
}

func TestHomePage(t *testing.T) {
	ts := newTestServer(t)
	resp := doRequest(t, ts, http.MethodGet, "/", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp := doRequest(t, ts, http.MethodGet, "/metrics", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
}

func TestCreateGameValidation(t *testing.T) {
	ts := newTestServer(t)
	homeID, _ := createTeamWithPlayers(t, ts, "Sockeye")

	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"home_team_id": homeID,
		"away_team_id": homeID,
	}, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("same team twice: status %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"home_team_id": homeID,
		"away_team_id": 999,
	}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing away team: status %d", resp.StatusCode)
	}
}

func TestGameViewAndSnapshot(t *testing.T) {
	ts := newTestServer(t)
	match := createMatch(t, ts)

	resp := doRequest(t, ts, http.MethodGet, "/games/"+match.gameID, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("game view: status %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+match.gameID, nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("snapshot: status %d", resp.StatusCode)
	}
	snap := decodeBody(t, resp)
	if snap["status"] != statusActive {
		t.Fatalf("unexpected snapshot status %v", snap["status"])
	}
	if _, present := snap["active_point"]; present {
		t.Fatal("snapshot has an active point before any started")
	}
}

func TestScorekeeperTokenRequired(t *testing.T) {
	ts := newTestServer(t)
	match := createMatch(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/points", map[string]any{
		"home_lineup": match.homePlayers,
		"away_lineup": match.awayPlayers,
	}, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/undo", nil,
		map[string]string{scorekeeperTokenHeader: "wrong"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong token, got %d", resp.StatusCode)
	}
}

func TestFullPointFlow(t *testing.T) {
	ts := newTestServer(t)
	match := createMatch(t, ts)
	match.startPoint(t, ts)

	// Home pulls, so a home goal before any away turnover is illegal.
	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/events", map[string]any{
		"type":             "goal",
		"player_id":        match.homePlayers[0],
		"assist_player_id": match.homePlayers[1],
	}, match.auth())
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("early pulling-team goal: status %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/events", map[string]any{
		"type":      "throwaway",
		"player_id": match.awayPlayers[0],
	}, match.auth())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("throwaway: status %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/events", map[string]any{
		"type":             "goal",
		"player_id":        match.homePlayers[0],
		"assist_player_id": match.homePlayers[1],
	}, match.auth())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("goal: status %d", resp.StatusCode)
	}
	snap := decodeBody(t, resp)
	active := snap["active_point"].(map[string]any)
	events := active["events"].([]any)
	if len(events) != 2 {
		t.Fatalf("expected 2 events in snapshot, got %d", len(events))
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/complete", map[string]any{
		"scoring_team_id": match.homeTeamID,
	}, match.auth())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("complete: status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["home_score"].(float64) != 1 || body["away_score"].(float64) != 0 {
		t.Fatalf("score wrong after completion: %v", body)
	}

	// The scorer pulls the next point.
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/points", map[string]any{
		"home_lineup": match.homePlayers,
		"away_lineup": match.awayPlayers,
	}, match.auth())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("second point: status %d", resp.StatusCode)
	}
	second := decodeBody(t, resp)
	if second["point_number"].(float64) != 2 {
		t.Fatalf("expected point 2, got %v", second["point_number"])
	}
	if uint(second["pulling_team_id"].(float64)) != match.homeTeamID {
		t.Fatalf("expected home team pulling point 2, got %v", second["pulling_team_id"])
	}
}

func TestCallahanFlow(t *testing.T) {
	ts := newTestServer(t)
	match := createMatch(t, ts)
	match.startPoint(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/callahan", map[string]any{
		"defender_id": match.homePlayers[2],
		"culprit_id":  match.awayPlayers[3],
	}, match.auth())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("callahan: status %d", resp.StatusCode)
	}
	snap := decodeBody(t, resp)
	if snap["home_score"].(float64) != 1 {
		t.Fatalf("callahan did not score: %v", snap["home_score"])
	}
	if _, present := snap["active_point"]; present {
		t.Fatal("callahan left the point open")
	}
	completed := snap["completed_points"].([]any)
	if len(completed) != 1 {
		t.Fatalf("expected 1 completed point, got %d", len(completed))
	}
}

func TestUndoFlow(t *testing.T) {
	ts := newTestServer(t)
	match := createMatch(t, ts)
	match.startPoint(t, ts)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/events", map[string]any{
		"type":      "throwaway",
		"player_id": match.awayPlayers[0],
	}, match.auth())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("throwaway: status %d", resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/undo", nil, match.auth())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("undo: status %d", resp.StatusCode)
	}
	snap := decodeBody(t, resp)
	active := snap["active_point"].(map[string]any)
	if events := active["events"].([]any); len(events) != 0 {
		t.Fatalf("expected empty log after undo, got %d events", len(events))
	}

	// Undo on an empty log is a silent no-op.
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+match.gameID+"/undo", nil, match.auth())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("undo on empty log: status %d", resp.StatusCode)
	}
}

func TestListGames(t *testing.T) {
	ts := newTestServer(t)
	match := createMatch(t, ts)

	resp := doRequest(t, ts, http.MethodGet, "/api/games", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list games: status %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	games := body["games"].([]any)
	if len(games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(games))
	}
	first := games[0].(map[string]any)
	if first["game_id"] != match.gameID {
		t.Fatalf("unexpected game list entry: %v", first)
	}
}
