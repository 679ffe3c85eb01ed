package web

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

func Home(games []GameSummary) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Disc Score</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body>
    <main class="shell">
      <header class="hero">
        <span class="tag">Disc Score</span>
        <h1>Live ultimate scorekeeping</h1>
        <p>Build rosters, start a game, and track every point as it happens.</p>
      </header>

      <section class="panel">
        <h2>Games</h2>
`)
		if len(games) == 0 {
			b.WriteString(`        <p class="empty">No games yet. Create teams and start one below.</p>
`)
		} else {
			b.WriteString(`        <ul class="game-list">
`)
			for _, game := range games {
				b.WriteString(`          <li><a href="/games/` + html.EscapeString(game.ID) + `">` +
					html.EscapeString(game.HomeTeam) + ` ` + itoa(game.HomeScore) +
					` &ndash; ` + itoa(game.AwayScore) + ` ` + html.EscapeString(game.AwayTeam) +
					` <span class="status">` + html.EscapeString(game.Status) + `</span></a></li>
`)
			}
			b.WriteString(`        </ul>
`)
		}
		b.WriteString(`      </section>

      <section class="panel">
        <h2>New team</h2>
        <form id="teamForm" class="stack-form">
          <input name="name" placeholder="Team name" autocomplete="off" required/>
          <input name="color" placeholder="#1d4ed8" autocomplete="off"/>
          <button type="submit" class="secondary">Create team</button>
        </form>
        <div id="teamResult" class="result"></div>
      </section>

      <section class="panel">
        <h2>New game</h2>
        <form id="gameForm" class="stack-form">
          <input name="name" placeholder="Game name (optional)" autocomplete="off"/>
          <input name="home" placeholder="Home team id" autocomplete="off" required/>
          <input name="away" placeholder="Away team id" autocomplete="off" required/>
          <button type="submit" class="primary">Start game</button>
        </form>
        <div id="gameResult" class="result"></div>
      </section>
    </main>

    <script>
      const teamForm = document.getElementById("teamForm");
      const teamResult = document.getElementById("teamResult");
      const gameForm = document.getElementById("gameForm");
      const gameResult = document.getElementById("gameResult");

      teamForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        teamResult.textContent = "Creating team...";
        const res = await fetch("/api/teams", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            name: teamForm.elements.name.value.trim(),
            color: teamForm.elements.color.value.trim()
          })
        });
        const data = await res.json();
        if (!res.ok) {
          teamResult.textContent = data.error || "Failed to create team.";
          return;
        }
        teamResult.textContent = "Team " + data.name + " created with id " + data.team_id + ".";
      });

      gameForm.addEventListener("submit", async (event) => {
        event.preventDefault();
        gameResult.textContent = "Starting game...";
        const res = await fetch("/api/games", {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify({
            name: gameForm.elements.name.value.trim(),
            home_team_id: Number(gameForm.elements.home.value),
            away_team_id: Number(gameForm.elements.away.value)
          })
        });
        const data = await res.json();
        if (!res.ok) {
          gameResult.textContent = data.error || "Failed to start game.";
          return;
        }
        sessionStorage.setItem("scorekeeper:" + data.game_id, data.scorekeeper_token);
        window.location.href = "/games/" + data.game_id;
      });
    </script>
  </body>
</html>
`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}
