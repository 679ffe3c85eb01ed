package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"disc-score/internal/scoring"
)

type createTeamRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color"`
}

type addPlayerRequest struct {
	Name   string `json:"name" validate:"required"`
	Number int    `json:"number" validate:"min=0,max=99"`
}

type createGameRequest struct {
	Name          string `json:"name"`
	HomeTeamID    uint   `json:"home_team_id" validate:"required"`
	AwayTeamID    uint   `json:"away_team_id" validate:"required"`
	PullingTeamID uint   `json:"pulling_team_id"`
	PointsToWin   int    `json:"points_to_win" validate:"omitempty,min=1,max=50"`
}

type startPointRequest struct {
	HomeLineup []uint `json:"home_lineup" validate:"required"`
	AwayLineup []uint `json:"away_lineup" validate:"required"`
}

type recordEventRequest struct {
	Type           string `json:"type" validate:"required"`
	PlayerID       uint   `json:"player_id" validate:"required"`
	AssistPlayerID *uint  `json:"assist_player_id"`
	Turnover       *bool  `json:"turnover"`
}

type callahanRequest struct {
	DefenderID uint  `json:"defender_id" validate:"required"`
	CulpritID  *uint `json:"culprit_id"`
}

type completePointRequest struct {
	ScoringTeamID uint `json:"scoring_team_id" validate:"required"`
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	color, err := validateColor(req.Color)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	team := s.store.CreateTeam(name, color, currentUserID(r))
	if err := s.persistTeam(team); err != nil {
		log.Printf("persist team failed name=%q err=%v", name, err)
		writeError(w, http.StatusInternalServerError, "failed to create team")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"team_id": team.ID,
		"name":    team.Name,
		"color":   team.Color,
	})
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams := s.store.ListTeams(currentUserID(r))
	list := make([]map[string]any, 0, len(teams))
	for _, team := range teams {
		list = append(list, teamPayload(*team))
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": list})
}

// handleTeamSubroutes dispatches /api/teams/{id}[/players[/{playerID}]].
func (s *Server) handleTeamSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/teams/"), "/")
	parts := strings.Split(rest, "/")
	teamID, ok := parseID(parts[0])
	if !ok {
		http.NotFound(w, r)
		return
	}
	team, found := s.store.GetTeam(teamID)
	if !found {
		http.NotFound(w, r)
		return
	}

	switch {
	case len(parts) == 1 && r.Method == http.MethodDelete:
		s.handleDeleteTeam(w, team)
	case len(parts) == 2 && parts[1] == "players" && r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"players": teamPayload(*team)["players"]})
	case len(parts) == 2 && parts[1] == "players" && r.Method == http.MethodPost:
		s.handleAddPlayer(w, r, team)
	case len(parts) == 3 && parts[1] == "players" && r.Method == http.MethodDelete:
		playerID, ok := parseID(parts[2])
		if !ok {
			http.NotFound(w, r)
			return
		}
		s.handleDeletePlayer(w, r, team, playerID)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, team *TeamInfo) {
	if err := s.deleteTeamRows(team); err != nil {
		log.Printf("delete team failed team_id=%d err=%v", team.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete team")
		return
	}
	s.store.DeleteTeam(team.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddPlayer(w http.ResponseWriter, r *http.Request, team *TeamInfo) {
	var req addPlayerRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, err := validateName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	player, err := s.store.AddPlayer(team.ID, name, req.Number)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err := s.persistPlayer(team, player); err != nil {
		log.Printf("persist player failed team_id=%d name=%q err=%v", team.ID, name, err)
		writeError(w, http.StatusInternalServerError, "failed to add player")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"player_id": player.ID,
		"name":      player.Name,
		"number":    player.Number,
	})
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request, team *TeamInfo, playerID uint) {
	var target *PlayerInfo
	for i := range team.Players {
		if team.Players[i].ID == playerID {
			target = &team.Players[i]
			break
		}
	}
	if target == nil {
		http.NotFound(w, r)
		return
	}
	if err := s.deletePlayerRow(target); err != nil {
		log.Printf("delete player failed player_id=%d err=%v", playerID, err)
		writeError(w, http.StatusInternalServerError, "failed to delete player")
		return
	}
	s.store.DeletePlayer(team.ID, playerID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name, err := validateGameName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.HomeTeamID == req.AwayTeamID {
		writeError(w, http.StatusUnprocessableEntity, "home and away teams must be different")
		return
	}
	home, ok := s.store.GetTeam(req.HomeTeamID)
	if !ok {
		writeError(w, http.StatusNotFound, "home team not found")
		return
	}
	away, ok := s.store.GetTeam(req.AwayTeamID)
	if !ok {
		writeError(w, http.StatusNotFound, "away team not found")
		return
	}
	if req.PullingTeamID != 0 && req.PullingTeamID != home.ID && req.PullingTeamID != away.ID {
		writeError(w, http.StatusUnprocessableEntity, "pulling team is not playing this game")
		return
	}
	pointsToWin := req.PointsToWin
	if pointsToWin == 0 {
		pointsToWin = s.cfg.PointsToWin
	}
	if name == "" {
		name = "Game vs " + away.Name
	}

	game := s.store.CreateGame(name, home, away, req.PullingTeamID, pointsToWin, currentUserID(r), newScorekeeperToken())
	if err := s.persistGame(game); err != nil {
		log.Printf("persist game failed game_id=%s err=%v", game.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to create game")
		return
	}
	metricGamesCreated.Inc()
	log.Printf("game created game_id=%s home=%q away=%q points_to_win=%d", game.ID, home.Name, away.Name, pointsToWin)
	writeJSON(w, http.StatusCreated, map[string]string{
		"game_id":           game.ID,
		"scorekeeper_token": game.ScorekeeperToken,
	})
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	summaries := s.store.ListGameSummaries(currentUserID(r))
	list := make([]map[string]any, 0, len(summaries))
	for _, summary := range summaries {
		list = append(list, map[string]any{
			"game_id":    summary.ID,
			"name":       summary.Name,
			"home_team":  summary.HomeTeam,
			"away_team":  summary.AwayTeam,
			"home_score": summary.HomeScore,
			"away_score": summary.AwayScore,
			"status":     summary.Status,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": list})
}

// handleGameSubroutes dispatches /api/games/{id}[/points|events|callahan|complete|undo].
func (s *Server) handleGameSubroutes(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/games/"), "/")
	parts := strings.Split(rest, "/")
	gameID := parts[0]
	game, ok := s.store.GetGame(gameID)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 && r.Method == http.MethodGet {
		writeJSON(w, http.StatusOK, s.snapshot(game))
		return
	}
	if len(parts) != 2 || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !authorizeScorekeeper(game, r) {
		writeError(w, http.StatusForbidden, "scorekeeper token required")
		return
	}

	switch parts[1] {
	case "points":
		s.handleStartPoint(w, r, game)
	case "events":
		s.handleRecordEvent(w, r, game)
	case "callahan":
		s.handleRecordCallahan(w, r, game)
	case "complete":
		s.handleCompletePoint(w, r, game)
	case "undo":
		s.handleUndoEvent(w, game)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleStartPoint(w http.ResponseWriter, r *http.Request, game *Game) {
	var req startPointRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	game, err := s.store.UpdateGame(game.ID, func(g *Game) error {
		return startPoint(g, req.HomeLineup, req.AwayLineup)
	})
	if err != nil {
		writeRuleError(w, err, "failed to start point")
		return
	}
	if err := s.persistPointStart(game, game.Active); err != nil {
		// The point row group did not commit; drop the in-memory point so
		// the scorekeeper can retry cleanly.
		_, _ = s.store.UpdateGame(game.ID, func(g *Game) error {
			g.Active = nil
			return nil
		})
		log.Printf("persist point failed game_id=%s err=%v", game.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to start point")
		return
	}
	log.Printf("point started game_id=%s point=%d", game.ID, game.Active.Number)
	s.broadcastGame(game)
	writeJSON(w, http.StatusCreated, map[string]any{
		"point_number":    game.Active.Number,
		"pulling_team_id": game.pointContext().PullingTeamID,
	})
}

func (s *Server) handleRecordEvent(w http.ResponseWriter, r *http.Request, game *Game) {
	var req recordEventRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var event *EventState
	game, err := s.store.UpdateGame(game.ID, func(g *Game) error {
		var err error
		event, err = recordEvent(g, scoring.EventType(req.Type), req.PlayerID, req.AssistPlayerID, req.Turnover)
		return err
	})
	if err != nil {
		writeRuleError(w, err, "failed to record event")
		return
	}
	if err := s.persistEvent(game, event); err != nil {
		_, _ = s.store.UpdateGame(game.ID, func(g *Game) error {
			undoLastEvent(g)
			return nil
		})
		log.Printf("persist event failed game_id=%s type=%s err=%v", game.ID, req.Type, err)
		writeError(w, http.StatusInternalServerError, "failed to record event")
		return
	}
	metricEventsRecorded.WithLabelValues(req.Type).Inc()
	s.broadcastGame(game)
	writeJSON(w, http.StatusCreated, s.snapshot(game))
}

func (s *Server) handleRecordCallahan(w http.ResponseWriter, r *http.Request, game *Game) {
	var req callahanRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		events    []EventState
		completed *CompletedPoint
		pointDBID uint
	)
	game, err := s.store.UpdateGame(game.ID, func(g *Game) error {
		if g.Active != nil {
			pointDBID = g.Active.DBID
		}
		var err error
		events, completed, err = recordCallahan(g, req.DefenderID, req.CulpritID)
		return err
	})
	if err != nil {
		writeRuleError(w, err, "failed to record callahan")
		return
	}
	if err := s.persistCallahanGroup(game, pointDBID, events, completed); err != nil {
		log.Printf("persist callahan failed game_id=%s err=%v", game.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to record callahan")
		return
	}
	for _, ev := range events {
		metricEventsRecorded.WithLabelValues(string(ev.Type)).Inc()
	}
	metricPointsCompleted.Inc()
	log.Printf("callahan recorded game_id=%s point=%d team_id=%d", game.ID, completed.Number, completed.ScoringTeamID)
	s.broadcastGame(game)
	writeJSON(w, http.StatusCreated, s.snapshot(game))
}

func (s *Server) handleCompletePoint(w http.ResponseWriter, r *http.Request, game *Game) {
	var req completePointRequest
	if err := readJSON(r.Body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := validateStruct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var completed *CompletedPoint
	game, err := s.store.UpdateGame(game.ID, func(g *Game) error {
		var err error
		completed, err = completePoint(g, req.ScoringTeamID)
		return err
	})
	if err != nil {
		writeRuleError(w, err, "failed to complete point")
		return
	}
	if err := s.persistCompletion(game, completed); err != nil {
		log.Printf("persist completion failed game_id=%s err=%v", game.ID, err)
		writeError(w, http.StatusInternalServerError, "failed to complete point")
		return
	}
	metricPointsCompleted.Inc()
	log.Printf("point completed game_id=%s point=%d team_id=%d score=%d-%d",
		game.ID, completed.Number, completed.ScoringTeamID, game.HomeScore, game.AwayScore)
	s.broadcastGame(game)
	writeJSON(w, http.StatusOK, map[string]any{
		"point_number":    completed.Number,
		"scoring_team_id": completed.ScoringTeamID,
		"home_score":      game.HomeScore,
		"away_score":      game.AwayScore,
		"status":          game.Status,
	})
}

func (s *Server) handleUndoEvent(w http.ResponseWriter, game *Game) {
	var removed *EventState
	game, err := s.store.UpdateGame(game.ID, func(g *Game) error {
		removed, _ = undoLastEvent(g)
		return nil
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to undo event")
		return
	}
	if removed != nil {
		if err := s.deleteEventRow(removed.DBID); err != nil {
			log.Printf("delete event row failed game_id=%s event_id=%d err=%v", game.ID, removed.DBID, err)
		}
		metricEventsUndone.Inc()
	}
	s.broadcastGame(game)
	writeJSON(w, http.StatusOK, s.snapshot(game))
}

func parseID(raw string) (uint, bool) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}
