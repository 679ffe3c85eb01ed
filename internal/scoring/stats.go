package scoring

// StatLine is one player's tallies within a single point.
type StatLine struct {
	Goals     int `json:"goals"`
	Assists   int `json:"assists"`
	Turnovers int `json:"turnovers"`
	Blocks    int `json:"blocks"`
}

// Aggregate computes per-player stat lines from a point's event log. Players
// with no recorded involvement are absent from the result.
func Aggregate(events []Event) map[uint]StatLine {
	stats := make(map[uint]StatLine)
	for _, ev := range events {
		if ev.Type == EventGoal {
			line := stats[ev.PlayerID]
			line.Goals++
			stats[ev.PlayerID] = line
			if ev.AssistPlayerID != nil {
				line := stats[*ev.AssistPlayerID]
				line.Assists++
				stats[*ev.AssistPlayerID] = line
			}
		}
		if ev.IsTurnover {
			line := stats[ev.PlayerID]
			line.Turnovers++
			stats[ev.PlayerID] = line
		}
		if DefensiveType(ev.Type) {
			line := stats[ev.PlayerID]
			line.Blocks++
			stats[ev.PlayerID] = line
		}
	}
	return stats
}
