package server

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Store is the authoritative in-memory state: team rosters and live games.
// The database is a mirror, written after store mutations succeed.
type Store struct {
	mu           sync.Mutex
	nextTeamID   uint
	nextPlayerID uint
	nextGameID   int
	teams        map[uint]*TeamInfo
	games        map[string]*Game
}

func NewStore() *Store {
	return &Store{
		nextTeamID:   1,
		nextPlayerID: 1,
		nextGameID:   1,
		teams:        make(map[uint]*TeamInfo),
		games:        make(map[string]*Game),
	}
}

func (s *Store) CreateTeam(name, color, ownerID string) *TeamInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	team := &TeamInfo{
		ID:      s.nextTeamID,
		Name:    name,
		Color:   color,
		OwnerID: ownerID,
	}
	s.nextTeamID++
	s.teams[team.ID] = team
	return team
}

func (s *Store) GetTeam(id uint) (*TeamInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[id]
	return team, ok
}

func (s *Store) ListTeams(ownerID string) []*TeamInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]*TeamInfo, 0, len(s.teams))
	for _, team := range s.teams {
		if ownerID != "" && team.OwnerID != "" && team.OwnerID != ownerID {
			continue
		}
		list = append(list, team)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (s *Store) DeleteTeam(id uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[id]; !ok {
		return false
	}
	delete(s.teams, id)
	return true
}

func (s *Store) AddPlayer(teamID uint, name string, number int) (*PlayerInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok {
		return nil, errors.New("team not found")
	}
	for i := range team.Players {
		if strings.EqualFold(team.Players[i].Name, name) {
			return nil, errors.New("player name already on roster")
		}
	}
	player := PlayerInfo{
		ID:     s.nextPlayerID,
		Name:   name,
		Number: number,
	}
	s.nextPlayerID++
	team.Players = append(team.Players, player)
	return &team.Players[len(team.Players)-1], nil
}

func (s *Store) DeletePlayer(teamID, playerID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, ok := s.teams[teamID]
	if !ok {
		return false
	}
	for i := range team.Players {
		if team.Players[i].ID == playerID {
			team.Players = append(team.Players[:i], team.Players[i+1:]...)
			return true
		}
	}
	return false
}

// CreateGame snapshots both rosters into the game so point lineups stay
// stable even if the team roster changes mid-game.
func (s *Store) CreateGame(name string, home, away *TeamInfo, pullingTeamID uint, pointsToWin int, ownerID, token string) *Game {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := fmt.Sprintf("game-%d", s.nextGameID)
	s.nextGameID++
	game := &Game{
		ID:               id,
		Name:             name,
		Status:           statusActive,
		OwnerID:          ownerID,
		ScorekeeperToken: token,
		HomeTeam:         copyTeam(home),
		AwayTeam:         copyTeam(away),
		PullingTeamID:    pullingTeamID,
		PointsToWin:      pointsToWin,
	}
	s.games[id] = game
	return game
}

func copyTeam(team *TeamInfo) TeamInfo {
	copied := *team
	copied.Players = make([]PlayerInfo, len(team.Players))
	copy(copied.Players, team.Players)
	return copied
}

func (s *Store) GetGame(id string) (*Game, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	return game, ok
}

func (s *Store) UpdateGame(id string, update func(game *Game) error) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return nil, errors.New("game not found")
	}
	if err := update(game); err != nil {
		return nil, err
	}
	return game, nil
}

func (s *Store) UpdateGameID(game *Game, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if game.ID == newID {
		return
	}
	delete(s.games, game.ID)
	game.ID = newID
	s.games[newID] = game
}

func (s *Store) ListGameSummaries(ownerID string) []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]GameSummary, 0, len(s.games))
	for _, game := range s.games {
		if ownerID != "" && game.OwnerID != "" && game.OwnerID != ownerID {
			continue
		}
		list = append(list, GameSummary{
			ID:        game.ID,
			Name:      game.Name,
			HomeTeam:  game.HomeTeam.Name,
			AwayTeam:  game.AwayTeam.Name,
			HomeScore: game.HomeScore,
			AwayScore: game.AwayScore,
			Status:    game.Status,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		return gameSortKey(list[i].ID) < gameSortKey(list[j].ID)
	})
	return list
}

func gameSortKey(id string) int {
	parts := strings.Split(id, "-")
	if len(parts) < 2 {
		return 0
	}
	value, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return value
}

// FindPlayer looks a player up across both rosters of a game.
func (g *Game) FindPlayer(playerID uint) (PlayerInfo, uint, bool) {
	for _, team := range []TeamInfo{g.HomeTeam, g.AwayTeam} {
		for _, player := range team.Players {
			if player.ID == playerID {
				return player, team.ID, true
			}
		}
	}
	return PlayerInfo{}, 0, false
}
