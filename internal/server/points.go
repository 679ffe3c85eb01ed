package server

import (
	"fmt"

	"disc-score/internal/scoring"
)

// The point lifecycle lives here as plain functions over a *Game. Callers
// run them inside Store.UpdateGame so every read-then-write (sequence
// numbers, point numbers, score updates) happens under the store lock.

func (g *Game) pointContext() scoring.PointContext {
	number := 1
	if g.Active != nil {
		number = g.Active.Number
	}
	pulling := g.pullingTeamForPoint(number)
	return scoring.PointContext{
		PullingTeamID:   pulling,
		ReceivingTeamID: g.otherTeamID(pulling),
		TeamNames:       g.teamNames(),
	}
}

func startPoint(g *Game, homeLineup, awayLineup []uint) error {
	if g.Status != statusActive || g.over() {
		return &scoring.ValidationError{Reason: "the game is over"}
	}
	if g.Active != nil {
		return &scoring.ValidationError{Reason: "a point is already in progress"}
	}
	if err := checkLineup(g.HomeTeam, homeLineup); err != nil {
		return err
	}
	if err := checkLineup(g.AwayTeam, awayLineup); err != nil {
		return err
	}

	number := 1
	for _, p := range g.Completed {
		if p.Number >= number {
			number = p.Number + 1
		}
	}
	point := &PointState{Number: number}
	for _, playerID := range homeLineup {
		point.Lineup = append(point.Lineup, LineupEntry{PlayerID: playerID, TeamID: g.HomeTeam.ID})
	}
	for _, playerID := range awayLineup {
		point.Lineup = append(point.Lineup, LineupEntry{PlayerID: playerID, TeamID: g.AwayTeam.ID})
	}
	g.Active = point
	return nil
}

func checkLineup(team TeamInfo, lineup []uint) error {
	if len(lineup) != squadSize {
		return &scoring.ValidationError{
			Reason: fmt.Sprintf("%s must field exactly %d players, got %d", team.Name, squadSize, len(lineup)),
		}
	}
	seen := make(map[uint]struct{}, squadSize)
	for _, playerID := range lineup {
		if _, dup := seen[playerID]; dup {
			return &scoring.ValidationError{
				Reason: fmt.Sprintf("%s lineup lists the same player twice", team.Name),
			}
		}
		seen[playerID] = struct{}{}
		if !onRoster(team, playerID) {
			return &scoring.ValidationError{
				Reason: fmt.Sprintf("player %d is not on the %s roster", playerID, team.Name),
			}
		}
	}
	return nil
}

func onRoster(team TeamInfo, playerID uint) bool {
	for _, player := range team.Players {
		if player.ID == playerID {
			return true
		}
	}
	return false
}

func (p *PointState) lineupTeam(playerID uint) (uint, bool) {
	for _, entry := range p.Lineup {
		if entry.PlayerID == playerID {
			return entry.TeamID, true
		}
	}
	return 0, false
}

// recordEvent validates and appends one play event. The turnover override is
// honored only for blocks and interceptions; every other type keeps its
// default.
func recordEvent(g *Game, eventType scoring.EventType, playerID uint, assistPlayerID *uint, turnoverOverride *bool) (*EventState, error) {
	if g.Active == nil {
		return nil, &scoring.ValidationError{Reason: "no point is in progress"}
	}
	switch eventType {
	case scoring.EventGoal, scoring.EventThrowaway, scoring.EventDrop, scoring.EventStall,
		scoring.EventBlock, scoring.EventInterception, scoring.EventCallahan:
	default:
		return nil, &scoring.ValidationError{Reason: fmt.Sprintf("unsupported event type %q", eventType)}
	}
	teamID, ok := g.Active.lineupTeam(playerID)
	if !ok {
		return nil, &scoring.ValidationError{Reason: fmt.Sprintf("player %d is not in this point's lineup", playerID)}
	}

	if eventType == scoring.EventGoal {
		if assistPlayerID != nil {
			assistTeam, inLineup := g.Active.lineupTeam(*assistPlayerID)
			if !inLineup {
				return nil, &scoring.ValidationError{Reason: fmt.Sprintf("assist player %d is not in this point's lineup", *assistPlayerID)}
			}
			if assistTeam != teamID {
				return nil, &scoring.ValidationError{Reason: "assist must come from the scoring team"}
			}
			if *assistPlayerID == playerID {
				return nil, &scoring.ValidationError{Reason: "a player cannot assist their own goal"}
			}
		}
		if err := scoring.CheckGoal(g.pointContext(), teamID, g.Active.playEvents()); err != nil {
			return nil, err
		}
	} else if assistPlayerID != nil {
		return nil, &scoring.ValidationError{Reason: "only goals carry an assist"}
	}

	isTurnover := scoring.DefaultTurnover(eventType)
	var override *bool
	if turnoverOverride != nil && scoring.OverridableTurnover(eventType) {
		isTurnover = *turnoverOverride
		override = turnoverOverride
	}

	event := EventState{
		Event: scoring.Event{
			Sequence:       g.Active.nextSequence(),
			Type:           eventType,
			PlayerID:       playerID,
			AssistPlayerID: assistPlayerID,
			TeamID:         teamID,
			IsTurnover:     isTurnover,
		},
		TurnoverOverride: override,
	}
	g.Active.Events = append(g.Active.Events, event)
	return &g.Active.Events[len(g.Active.Events)-1], nil
}

// recordCallahan appends the compound sequence: an optional throwaway by the
// offensive culprit, the callahan itself, and the defender's goal with no
// assist. It then completes the point for the defender's team. The whole
// group is applied in one store closure so it is all-or-nothing in memory;
// the database mirror wraps it in a single transaction.
func recordCallahan(g *Game, defenderID uint, culpritID *uint) ([]EventState, *CompletedPoint, error) {
	if g.Active == nil {
		return nil, nil, &scoring.ValidationError{Reason: "no point is in progress"}
	}
	defenderTeam, ok := g.Active.lineupTeam(defenderID)
	if !ok {
		return nil, nil, &scoring.ValidationError{Reason: fmt.Sprintf("player %d is not in this point's lineup", defenderID)}
	}
	if culpritID != nil {
		culpritTeam, inLineup := g.Active.lineupTeam(*culpritID)
		if !inLineup {
			return nil, nil, &scoring.ValidationError{Reason: fmt.Sprintf("player %d is not in this point's lineup", *culpritID)}
		}
		if culpritTeam == defenderTeam {
			return nil, nil, &scoring.ValidationError{Reason: "the callahan culprit must be on the opposing team"}
		}
	}

	mark := len(g.Active.Events)
	restore := func() { g.Active.Events = g.Active.Events[:mark] }

	if culpritID != nil {
		if _, err := recordEvent(g, scoring.EventThrowaway, *culpritID, nil, nil); err != nil {
			restore()
			return nil, nil, err
		}
	}
	if _, err := recordEvent(g, scoring.EventCallahan, defenderID, nil, nil); err != nil {
		restore()
		return nil, nil, err
	}
	if _, err := recordEvent(g, scoring.EventGoal, defenderID, nil, nil); err != nil {
		restore()
		return nil, nil, err
	}

	appended := make([]EventState, len(g.Active.Events)-mark)
	copy(appended, g.Active.Events[mark:])

	completed, err := completePoint(g, defenderTeam)
	if err != nil {
		restore()
		return nil, nil, err
	}
	return appended, completed, nil
}

// completePoint credits the point, bumps the score, and clears the active
// point. Completion is one-way: there is no uncomplete.
func completePoint(g *Game, scoringTeamID uint) (*CompletedPoint, error) {
	if g.Active == nil {
		return nil, &scoring.ValidationError{Reason: "no point is in progress"}
	}
	if scoringTeamID != g.HomeTeam.ID && scoringTeamID != g.AwayTeam.ID {
		return nil, &scoring.ValidationError{Reason: "scoring team is not playing this game"}
	}
	if err := scoring.CheckCompletion(g.pointContext(), scoringTeamID, g.Active.playEvents()); err != nil {
		return nil, err
	}

	completed := CompletedPoint{
		Number:        g.Active.Number,
		DBID:          g.Active.DBID,
		ScoringTeamID: scoringTeamID,
	}
	g.Completed = append(g.Completed, completed)
	if scoringTeamID == g.HomeTeam.ID {
		g.HomeScore++
	} else {
		g.AwayScore++
	}
	if g.over() {
		g.Status = statusCompleted
	}
	g.Active = nil
	return &completed, nil
}

// undoLastEvent removes the event with the highest sequence number from the
// active point. It is a no-op on an empty log or when no point is open.
func undoLastEvent(g *Game) (*EventState, bool) {
	if g.Active == nil || len(g.Active.Events) == 0 {
		return nil, false
	}
	last := 0
	for i := range g.Active.Events {
		if g.Active.Events[i].Sequence > g.Active.Events[last].Sequence {
			last = i
		}
	}
	removed := g.Active.Events[last]
	g.Active.Events = append(g.Active.Events[:last], g.Active.Events[last+1:]...)
	return &removed, true
}
