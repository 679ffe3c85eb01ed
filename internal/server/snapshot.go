package server

import "disc-score/internal/scoring"

// snapshot is the full client-facing view of one game. It is recomputed
// from the event log on every call rather than patched incrementally.
func (s *Server) snapshot(game *Game) map[string]any {
	payload := map[string]any{
		"game_id":       game.ID,
		"name":          game.Name,
		"status":        game.Status,
		"points_to_win": game.PointsToWin,
		"home_team":     teamPayload(game.HomeTeam),
		"away_team":     teamPayload(game.AwayTeam),
		"home_score":    game.HomeScore,
		"away_score":    game.AwayScore,
		"points_played": len(game.Completed),
	}

	completed := make([]map[string]any, 0, len(game.Completed))
	for _, point := range game.Completed {
		completed = append(completed, map[string]any{
			"number":          point.Number,
			"scoring_team_id": point.ScoringTeamID,
		})
	}
	payload["completed_points"] = completed

	if game.Active != nil {
		ctx := game.pointContext()
		events := game.Active.playEvents()
		possession := scoring.ComputePossession(ctx.PullingTeamID, ctx.ReceivingTeamID, events)
		payload["active_point"] = map[string]any{
			"number":            game.Active.Number,
			"pulling_team_id":   ctx.PullingTeamID,
			"receiving_team_id": ctx.ReceivingTeamID,
			"offense_team_id":   possession.OffenseTeamID,
			"defense_team_id":   possession.DefenseTeamID,
			"lineup":            lineupPayload(game.Active.Lineup),
			"events":            eventsPayload(game.Active.Events),
			"stats":             statsPayload(game, scoring.Aggregate(events)),
		}
	}
	return payload
}

func teamPayload(team TeamInfo) map[string]any {
	players := make([]map[string]any, 0, len(team.Players))
	for _, player := range team.Players {
		players = append(players, map[string]any{
			"id":     player.ID,
			"name":   player.Name,
			"number": player.Number,
		})
	}
	return map[string]any{
		"id":      team.ID,
		"name":    team.Name,
		"color":   team.Color,
		"players": players,
	}
}

func lineupPayload(lineup []LineupEntry) []map[string]any {
	entries := make([]map[string]any, 0, len(lineup))
	for _, entry := range lineup {
		entries = append(entries, map[string]any{
			"player_id": entry.PlayerID,
			"team_id":   entry.TeamID,
		})
	}
	return entries
}

func eventsPayload(events []EventState) []map[string]any {
	list := make([]map[string]any, 0, len(events))
	for _, ev := range events {
		entry := map[string]any{
			"sequence":    ev.Sequence,
			"type":        string(ev.Type),
			"player_id":   ev.PlayerID,
			"team_id":     ev.TeamID,
			"is_turnover": ev.IsTurnover,
		}
		if ev.AssistPlayerID != nil {
			entry["assist_player_id"] = *ev.AssistPlayerID
		}
		list = append(list, entry)
	}
	return list
}

// statsPayload emits a line per lineup player so the scoreboard shows zeros
// for players with no recorded involvement yet.
func statsPayload(game *Game, stats map[uint]scoring.StatLine) []map[string]any {
	list := make([]map[string]any, 0, len(game.Active.Lineup))
	for _, entry := range game.Active.Lineup {
		line := stats[entry.PlayerID]
		name := ""
		if player, _, ok := game.FindPlayer(entry.PlayerID); ok {
			name = player.Name
		}
		list = append(list, map[string]any{
			"player_id": entry.PlayerID,
			"name":      name,
			"team_id":   entry.TeamID,
			"goals":     line.Goals,
			"assists":   line.Assists,
			"turnovers": line.Turnovers,
			"blocks":    line.Blocks,
		})
	}
	return list
}
