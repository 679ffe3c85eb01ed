package server

import (
	"errors"
	"fmt"
	"time"

	"disc-score/internal/db"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The database mirrors the store: every handler mutates the store first and
// then calls one of these. A nil s.db turns them all into no-ops so the
// server (and its tests) can run purely in memory.

func (s *Server) persistTeam(team *TeamInfo) error {
	if s.db == nil {
		return nil
	}
	record := db.Team{
		Name:    team.Name,
		Color:   team.Color,
		OwnerID: team.OwnerID,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	team.DBID = record.ID
	return nil
}

func (s *Server) persistPlayer(team *TeamInfo, player *PlayerInfo) error {
	if s.db == nil {
		return nil
	}
	if team.DBID == 0 {
		return errors.New("team has no database row")
	}
	record := db.Player{
		TeamID: team.DBID,
		Name:   player.Name,
		Number: player.Number,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	player.DBID = record.ID
	return nil
}

func (s *Server) deleteTeamRows(team *TeamInfo) error {
	if s.db == nil || team.DBID == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", team.DBID).Delete(&db.Player{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Team{}, team.DBID).Error
	})
}

func (s *Server) deletePlayerRow(player *PlayerInfo) error {
	if s.db == nil || player.DBID == 0 {
		return nil
	}
	return s.db.Delete(&db.Player{}, player.DBID).Error
}

func (s *Server) persistGame(game *Game) error {
	if s.db == nil {
		return nil
	}
	record := db.Game{
		Name:        game.Name,
		HomeTeamID:  game.HomeTeam.DBID,
		AwayTeamID:  game.AwayTeam.DBID,
		PointsToWin: game.PointsToWin,
		Status:      game.Status,
		OwnerID:     game.OwnerID,
	}
	if game.PullingTeamID != 0 {
		pulling := s.teamDBID(game, game.PullingTeamID)
		record.PullingTeamID = &pulling
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	game.DBID = record.ID
	newID := fmt.Sprintf("game-%d", record.ID)
	if game.ID != newID {
		s.store.UpdateGameID(game, newID)
	}
	return nil
}

// persistPointStart writes the point row and its 14 lineup rows in one
// transaction, so a failed lineup insert never leaves an orphaned point.
func (s *Server) persistPointStart(game *Game, point *PointState) error {
	if s.db == nil {
		return nil
	}
	if game.DBID == 0 {
		return errors.New("game has no database row")
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		record := db.Point{
			GameID:      game.DBID,
			PointNumber: point.Number,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		point.DBID = record.ID
		for i := range point.Lineup {
			entry := &point.Lineup[i]
			row := db.PointLineup{
				PointID:   record.ID,
				PlayerID:  s.playerDBID(game, entry.PlayerID),
				TeamID:    s.teamDBID(game, entry.TeamID),
				CreatedAt: time.Now().UTC(),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			entry.DBID = row.ID
		}
		return nil
	})
}

func (s *Server) persistEvent(game *Game, event *EventState) error {
	if s.db == nil {
		return nil
	}
	if game.Active == nil || game.Active.DBID == 0 {
		return errors.New("point has no database row")
	}
	record := s.eventRow(game, game.Active.DBID, event)
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}
	event.DBID = record.ID
	return nil
}

func (s *Server) eventRow(game *Game, pointDBID uint, event *EventState) db.Event {
	record := db.Event{
		PointID:        pointDBID,
		SequenceNumber: event.Sequence,
		Type:           string(event.Type),
		PlayerID:       s.playerDBID(game, event.PlayerID),
		TeamID:         s.teamDBID(game, event.TeamID),
		IsTurnover:     event.IsTurnover,
	}
	if event.AssistPlayerID != nil {
		assist := s.playerDBID(game, *event.AssistPlayerID)
		record.AssistPlayerID = &assist
	}
	if event.TurnoverOverride != nil {
		record.Detail = datatypes.JSON(fmt.Sprintf(`{"turnover_override":%t}`, *event.TurnoverOverride))
	}
	return record
}

func (s *Server) deleteEventRow(eventDBID uint) error {
	if s.db == nil || eventDBID == 0 {
		return nil
	}
	return s.db.Delete(&db.Event{}, eventDBID).Error
}

// persistCompletion stamps the point's scoring team and the game's new
// score and status in one transaction.
func (s *Server) persistCompletion(game *Game, completed *CompletedPoint) error {
	if s.db == nil {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.applyCompletion(tx, game, completed)
	})
}

// persistCallahanGroup writes the callahan's event group plus the
// completion updates atomically. The store applied the same group under a
// single lock hold, so memory and database agree even on failure.
func (s *Server) persistCallahanGroup(game *Game, pointDBID uint, events []EventState, completed *CompletedPoint) error {
	if s.db == nil {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range events {
			record := s.eventRow(game, pointDBID, &events[i])
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return s.applyCompletion(tx, game, completed)
	})
}

func (s *Server) applyCompletion(tx *gorm.DB, game *Game, completed *CompletedPoint) error {
	if completed.DBID == 0 {
		return errors.New("point has no database row")
	}
	scoringTeam := s.teamDBID(game, completed.ScoringTeamID)
	if err := tx.Model(&db.Point{}).
		Where("id = ?", completed.DBID).
		Update("scoring_team_id", scoringTeam).Error; err != nil {
		return err
	}
	updates := map[string]any{
		"home_score": game.HomeScore,
		"away_score": game.AwayScore,
		"status":     game.Status,
	}
	return tx.Model(&db.Game{}).Where("id = ?", game.DBID).Updates(updates).Error
}

func (s *Server) teamDBID(game *Game, teamID uint) uint {
	for _, team := range []TeamInfo{game.HomeTeam, game.AwayTeam} {
		if team.ID == teamID && team.DBID != 0 {
			return team.DBID
		}
	}
	return teamID
}

func (s *Server) playerDBID(game *Game, playerID uint) uint {
	if player, _, ok := game.FindPlayer(playerID); ok && player.DBID != 0 {
		return player.DBID
	}
	return playerID
}
