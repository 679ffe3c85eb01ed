// Package scoring holds the point-level rules of play: which team has the
// disc, what each player has tallied, and whether a goal or a point
// completion is legal. Everything here is a pure function over an ordered
// event list; storage and transport live elsewhere.
package scoring

type EventType string

const (
	EventGoal         EventType = "goal"
	EventThrowaway    EventType = "throwaway"
	EventDrop         EventType = "drop"
	EventStall        EventType = "stall"
	EventBlock        EventType = "block"
	EventInterception EventType = "interception"
	EventCallahan     EventType = "callahan"

	// Older rows may still carry these; they are read and replayed but the
	// record API never produces them.
	EventTurnover EventType = "turnover"
	EventD        EventType = "d"
)

// Event is one recorded play inside a point, ordered by Sequence.
type Event struct {
	Sequence       int
	Type           EventType
	PlayerID       uint
	AssistPlayerID *uint
	TeamID         uint
	IsTurnover     bool
}

// KnownType reports whether t is an event type the replay logic understands.
func KnownType(t EventType) bool {
	switch t {
	case EventGoal, EventThrowaway, EventDrop, EventStall,
		EventBlock, EventInterception, EventCallahan,
		EventTurnover, EventD:
		return true
	}
	return false
}

// DefensiveType reports whether t is a play made by the team without the
// disc.
func DefensiveType(t EventType) bool {
	switch t {
	case EventBlock, EventInterception, EventCallahan, EventD:
		return true
	}
	return false
}

// OffensiveMistakeType reports whether t is a loss of the disc by the team
// holding it.
func OffensiveMistakeType(t EventType) bool {
	switch t {
	case EventThrowaway, EventDrop, EventStall, EventTurnover:
		return true
	}
	return false
}

// DefaultTurnover returns the turnover flag an event of type t carries unless
// the scorekeeper overrides it. Goals never turn the disc over; everything
// else does by default.
func DefaultTurnover(t EventType) bool {
	return t != EventGoal
}

// OverridableTurnover reports whether the turnover flag for t may be set
// explicitly by the caller. Only blocks and interceptions are ambiguous on
// the field (the disc can land back with the offense).
func OverridableTurnover(t EventType) bool {
	return t == EventBlock || t == EventInterception
}
