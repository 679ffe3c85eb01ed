package scoring

import (
	"errors"
	"strings"
	"testing"
)

func pointCtx() PointContext {
	return PointContext{
		PullingTeamID:   teamHome,
		ReceivingTeamID: teamAway,
		TeamNames:       map[uint]string{teamHome: "Sockeye", teamAway: "Revolver"},
	}
}

func TestCheckGoalReceivingTeamAlwaysAllowed(t *testing.T) {
	if err := CheckGoal(pointCtx(), teamAway, nil); err != nil {
		t.Fatalf("receiving team goal rejected: %v", err)
	}
}

func TestCheckGoalPullingTeamNeedsTurnover(t *testing.T) {
	ctx := pointCtx()

	err := CheckGoal(ctx, teamHome, nil)
	if err == nil {
		t.Fatal("expected rejection before any turnover")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if !strings.Contains(verr.Reason, "Revolver") {
		t.Fatalf("error should name the receiving team: %q", verr.Reason)
	}

	events := []Event{ev(1, EventThrowaway, 20, teamAway, true)}
	if err := CheckGoal(ctx, teamHome, events); err != nil {
		t.Fatalf("goal after receiving turnover rejected: %v", err)
	}
}

func TestCheckGoalDefensivePlayCountsAsReceivingTurnover(t *testing.T) {
	events := []Event{ev(1, EventInterception, 10, teamHome, true)}
	if err := CheckGoal(pointCtx(), teamHome, events); err != nil {
		t.Fatalf("goal after pulling-team takeaway rejected: %v", err)
	}
}

func TestCheckGoalOverriddenBlockDoesNotCount(t *testing.T) {
	events := []Event{ev(1, EventBlock, 10, teamHome, false)}
	if err := CheckGoal(pointCtx(), teamHome, events); err == nil {
		t.Fatal("block without turnover flag should not unlock a pulling-team goal")
	}
}

func TestCheckCompletion(t *testing.T) {
	ctx := pointCtx()
	turn := ev(1, EventThrowaway, 20, teamAway, true)

	tests := []struct {
		name    string
		events  []Event
		scoring uint
		wantErr string
	}{
		{
			name:    "no goals",
			events:  []Event{turn},
			scoring: teamHome,
			wantErr: "no goal",
		},
		{
			name: "goal without assist",
			events: []Event{
				turn,
				ev(2, EventGoal, 11, teamHome, false),
			},
			scoring: teamHome,
			wantErr: "assist",
		},
		{
			name: "assisted goal accepted",
			events: []Event{
				turn,
				{Sequence: 2, Type: EventGoal, PlayerID: 11, AssistPlayerID: uptr(10), TeamID: teamHome},
			},
			scoring: teamHome,
		},
		{
			name: "callahan needs no assist",
			events: []Event{
				ev(1, EventCallahan, 10, teamHome, true),
				ev(2, EventGoal, 10, teamHome, false),
			},
			scoring: teamHome,
		},
		{
			name: "pulling rule rechecked at completion",
			events: []Event{
				{Sequence: 1, Type: EventGoal, PlayerID: 20, AssistPlayerID: uptr(21), TeamID: teamAway},
			},
			scoring: teamHome,
			wantErr: "turned the disc over",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCompletion(ctx, tt.scoring, tt.events)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected completion to pass, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected completion to be rejected")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %q, got %q", tt.wantErr, err)
			}
		})
	}
}
