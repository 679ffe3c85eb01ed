package web

// GameSummary is the view model for one row in the home page game list.
type GameSummary struct {
	ID        string
	Name      string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	Status    string
}
