package scoring

import "fmt"

// ValidationError is a rule-of-play rejection meant to be shown to the
// scorekeeper verbatim. It never indicates a storage or transport problem.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErrorf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// PointContext identifies the two sides of a point for legality checks. The
// pulling team is fixed for the whole point (pull lineage, not live
// possession). TeamNames is optional and only used to word error messages.
type PointContext struct {
	PullingTeamID   uint
	ReceivingTeamID uint
	TeamNames       map[uint]string
}

func (c PointContext) teamName(id uint) string {
	if name, ok := c.TeamNames[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("team %d", id)
}

// ReceivingTeamTurnedOver reports whether the receiving team has lost the
// disc at least once: either through its own offensive mistake or through a
// defensive play by the pulling team.
func ReceivingTeamTurnedOver(c PointContext, events []Event) bool {
	for _, ev := range events {
		if !ev.IsTurnover {
			continue
		}
		if OffensiveMistakeType(ev.Type) && ev.TeamID == c.ReceivingTeamID {
			return true
		}
		if DefensiveType(ev.Type) && ev.TeamID == c.PullingTeamID {
			return true
		}
	}
	return false
}

// CheckGoal decides whether a goal by scoringTeamID may be recorded given the
// events so far. The pulling team cannot score until the receiving team has
// turned the disc over at least once.
func CheckGoal(c PointContext, scoringTeamID uint, events []Event) error {
	if scoringTeamID != c.PullingTeamID {
		return nil
	}
	if ReceivingTeamTurnedOver(c, events) {
		return nil
	}
	return validationErrorf("%s cannot score yet: %s has not turned the disc over",
		c.teamName(c.PullingTeamID), c.teamName(c.ReceivingTeamID))
}

// CheckCompletion decides whether a point may be completed with
// scoringTeamID credited. A completed point needs at least one goal or
// callahan, and at least one assisted goal unless a callahan ended it. The
// pulling-team rule from CheckGoal is re-checked against the credited team.
//
// The check reads recorded turnover events only. A block overridden to "no
// turnover" does not count, even if the blocking team went on to score; that
// matches the recorded log rather than second-guessing the scorekeeper.
func CheckCompletion(c PointContext, scoringTeamID uint, events []Event) error {
	goals := 0
	assisted := 0
	callahans := 0
	for _, ev := range events {
		switch ev.Type {
		case EventGoal:
			goals++
			if ev.AssistPlayerID != nil {
				assisted++
			}
		case EventCallahan:
			callahans++
		}
	}
	if goals == 0 && callahans == 0 {
		return validationErrorf("cannot complete the point: no goal has been recorded")
	}
	if assisted == 0 && callahans == 0 {
		return validationErrorf("cannot complete the point: no goal has an assist recorded")
	}
	return CheckGoal(c, scoringTeamID, events)
}
