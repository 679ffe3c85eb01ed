package server

import "disc-score/internal/scoring"

const (
	statusActive    = "active"
	statusCompleted = "completed"
)

// squadSize is the number of players each team fields for one point.
const squadSize = 7

type GameSummary struct {
	ID        string
	Name      string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    string
}

type Game struct {
	ID               string
	DBID             uint
	Name             string
	Status           string
	OwnerID          string
	ScorekeeperToken string
	HomeTeam         TeamInfo
	AwayTeam         TeamInfo
	// PullingTeamID is the configured puller for point 1. Zero means no
	// explicit choice; the home team pulls first by default.
	PullingTeamID uint
	PointsToWin   int
	HomeScore     int
	AwayScore     int
	Completed     []CompletedPoint
	Active        *PointState
}

type TeamInfo struct {
	ID      uint
	Name    string
	Color   string
	OwnerID string
	DBID    uint
	Players []PlayerInfo
}

type PlayerInfo struct {
	ID     uint
	Name   string
	Number int
	DBID   uint
}

type CompletedPoint struct {
	Number        int
	DBID          uint
	ScoringTeamID uint
}

// PointState is the in-progress point: its fixed lineup and its event log.
type PointState struct {
	Number int
	DBID   uint
	Lineup []LineupEntry
	Events []EventState
}

type LineupEntry struct {
	PlayerID uint
	TeamID   uint
	DBID     uint
}

// EventState pairs a play event with its database row id so undo can delete
// the persisted row.
type EventState struct {
	scoring.Event
	DBID             uint
	TurnoverOverride *bool
}

// playEvents projects the event log into the pure form the scoring package
// consumes, preserving order.
func (p *PointState) playEvents() []scoring.Event {
	events := make([]scoring.Event, len(p.Events))
	for i := range p.Events {
		events[i] = p.Events[i].Event
	}
	return events
}

// nextSequence is max(existing)+1, or 1 on an empty log. Callers must hold
// the store lock for the read-then-assign to serialize.
func (p *PointState) nextSequence() int {
	max := 0
	for i := range p.Events {
		if p.Events[i].Sequence > max {
			max = p.Events[i].Sequence
		}
	}
	return max + 1
}

func (g *Game) teamInfo(teamID uint) (TeamInfo, bool) {
	switch teamID {
	case g.HomeTeam.ID:
		return g.HomeTeam, true
	case g.AwayTeam.ID:
		return g.AwayTeam, true
	}
	return TeamInfo{}, false
}

func (g *Game) teamNames() map[uint]string {
	return map[uint]string{
		g.HomeTeam.ID: g.HomeTeam.Name,
		g.AwayTeam.ID: g.AwayTeam.Name,
	}
}

func (g *Game) otherTeamID(teamID uint) uint {
	if teamID == g.HomeTeam.ID {
		return g.AwayTeam.ID
	}
	return g.HomeTeam.ID
}

// over reports whether either side has reached the game target.
func (g *Game) over() bool {
	return g.HomeScore >= g.PointsToWin || g.AwayScore >= g.PointsToWin
}

// configuredPuller is the game-level default pulling team.
func (g *Game) configuredPuller() uint {
	if g.PullingTeamID != 0 {
		return g.PullingTeamID
	}
	return g.HomeTeam.ID
}

// pullingTeamForPoint resolves pull lineage: point 1 uses the configured
// puller; a later point is pulled by whichever team scored the previous
// point, falling back to the configured puller if that point is unknown.
func (g *Game) pullingTeamForPoint(number int) uint {
	if number <= 1 {
		return g.configuredPuller()
	}
	for _, p := range g.Completed {
		if p.Number == number-1 {
			return p.ScoringTeamID
		}
	}
	return g.configuredPuller()
}
