package scoring

import "testing"

func uptr(v uint) *uint { return &v }

func TestAggregateCounts(t *testing.T) {
	events := []Event{
		{Sequence: 1, Type: EventThrowaway, PlayerID: 20, TeamID: teamAway, IsTurnover: true},
		{Sequence: 2, Type: EventBlock, PlayerID: 10, TeamID: teamHome, IsTurnover: true},
		{Sequence: 3, Type: EventGoal, PlayerID: 11, AssistPlayerID: uptr(10), TeamID: teamHome},
	}
	stats := Aggregate(events)

	if got := stats[10]; got.Blocks != 1 || got.Assists != 1 || got.Turnovers != 1 {
		t.Fatalf("player 10: %+v", got)
	}
	if got := stats[11]; got.Goals != 1 || got.Assists != 0 {
		t.Fatalf("player 11: %+v", got)
	}
	if got := stats[20]; got.Turnovers != 1 || got.Goals != 0 {
		t.Fatalf("player 20: %+v", got)
	}
	if _, ok := stats[99]; ok {
		t.Fatal("uninvolved player present in stats")
	}
}

func TestAggregateUnassistedGoal(t *testing.T) {
	stats := Aggregate([]Event{
		{Sequence: 1, Type: EventGoal, PlayerID: 11, TeamID: teamHome},
	})
	if got := stats[11]; got.Goals != 1 {
		t.Fatalf("expected one goal, got %+v", got)
	}
	for id, line := range stats {
		if line.Assists != 0 {
			t.Fatalf("unexpected assist for player %d", id)
		}
	}
}

func TestAggregateCallahan(t *testing.T) {
	stats := Aggregate([]Event{
		{Sequence: 1, Type: EventCallahan, PlayerID: 10, TeamID: teamHome, IsTurnover: true},
		{Sequence: 2, Type: EventGoal, PlayerID: 10, TeamID: teamHome},
	})
	got := stats[10]
	if got.Blocks != 1 || got.Goals != 1 {
		t.Fatalf("callahan tallies wrong: %+v", got)
	}
}

func TestAggregateLegacyDCountsAsBlock(t *testing.T) {
	stats := Aggregate([]Event{
		{Sequence: 1, Type: EventD, PlayerID: 12, TeamID: teamHome, IsTurnover: true},
	})
	if got := stats[12]; got.Blocks != 1 {
		t.Fatalf("legacy d not counted as block: %+v", got)
	}
}

func TestAggregateDeterministic(t *testing.T) {
	events := []Event{
		{Sequence: 1, Type: EventThrowaway, PlayerID: 20, TeamID: teamAway, IsTurnover: true},
		{Sequence: 2, Type: EventGoal, PlayerID: 11, AssistPlayerID: uptr(10), TeamID: teamHome},
	}
	first := Aggregate(events)
	second := Aggregate(events)
	if len(first) != len(second) {
		t.Fatalf("aggregate is not deterministic: %v vs %v", first, second)
	}
	for id, line := range first {
		if second[id] != line {
			t.Fatalf("aggregate is not deterministic for player %d", id)
		}
	}
}
