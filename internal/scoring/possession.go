package scoring

// Possession is the offense/defense split at some prefix of a point's log.
type Possession struct {
	OffenseTeamID uint
	DefenseTeamID uint
}

// ComputePossession replays events in order and returns who holds the disc.
// The receiving team starts on offense. An event flips possession only when
// its turnover flag is set and its actor is on the side that logically loses
// the disc: a defensive play by the current defense, or an offensive mistake
// by the current offense. Goals never flip; they end the point.
//
// Events must already be sorted ascending by Sequence.
func ComputePossession(pullingTeamID, receivingTeamID uint, events []Event) Possession {
	offense := receivingTeamID
	defense := pullingTeamID
	for _, ev := range events {
		if !ev.IsTurnover {
			continue
		}
		switch {
		case DefensiveType(ev.Type) && ev.TeamID == defense:
			offense, defense = defense, offense
		case OffensiveMistakeType(ev.Type) && ev.TeamID == offense:
			offense, defense = defense, offense
		}
	}
	return Possession{OffenseTeamID: offense, DefenseTeamID: defense}
}
