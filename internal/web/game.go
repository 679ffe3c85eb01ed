package web

import (
	"context"
	"html"
	"io"

	"github.com/a-h/templ"
)

// GameView renders the live scoreboard shell. All game data arrives over the
// websocket as snapshots; the page itself only knows the game id.
func GameView(gameID, name string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>`+html.EscapeString(name)+` | Disc Score</title>
    <link rel="stylesheet" href="/static/styles.css"/>
  </head>
  <body data-game-id="`+html.EscapeString(gameID)+`">
    <main class="shell">
      <header class="scoreboard">
        <a class="back" href="/">&larr; All games</a>
        <h1>`+html.EscapeString(name)+`</h1>
        <div class="score-row">
          <div class="side"><span id="homeName"></span><span id="homeScore" class="score">0</span></div>
          <div class="sep">&ndash;</div>
          <div class="side"><span id="awayScore" class="score">0</span><span id="awayName"></span></div>
        </div>
        <p id="status" class="status"></p>
        <p id="possession" class="possession"></p>
      </header>

      <section class="panel">
        <h2>Point events</h2>
        <ul id="events" class="event-list"></ul>
      </section>

      <section class="panel">
        <h2>Point stats</h2>
        <table class="stats">
          <thead>
            <tr><th>Player</th><th>G</th><th>A</th><th>T</th><th>B</th></tr>
          </thead>
          <tbody id="stats"></tbody>
        </table>
      </section>
    </main>

    <script>
      const gameId = document.body.dataset.gameId;
      const proto = location.protocol === "https:" ? "wss:" : "ws:";
      const socket = new WebSocket(proto + "//" + location.host + "/ws/games/" + gameId);

      socket.addEventListener("message", (message) => {
        const snap = JSON.parse(message.data);
        document.getElementById("homeName").textContent = snap.home_team.name;
        document.getElementById("awayName").textContent = snap.away_team.name;
        document.getElementById("homeScore").textContent = snap.home_score;
        document.getElementById("awayScore").textContent = snap.away_score;
        document.getElementById("status").textContent = snap.status;

        const possession = document.getElementById("possession");
        const events = document.getElementById("events");
        const stats = document.getElementById("stats");
        events.replaceChildren();
        stats.replaceChildren();
        if (!snap.active_point) {
          possession.textContent = "No point in progress.";
          return;
        }
        const names = {};
        for (const p of snap.home_team.players.concat(snap.away_team.players)) {
          names[p.id] = p.name;
        }
        const offense = snap.active_point.offense_team_id === snap.home_team.id
          ? snap.home_team.name : snap.away_team.name;
        possession.textContent = "Point " + snap.active_point.number + ": " + offense + " on offense";
        for (const ev of snap.active_point.events) {
          const li = document.createElement("li");
          li.textContent = ev.sequence + ". " + ev.type + " by " + (names[ev.player_id] || ev.player_id);
          events.appendChild(li);
        }
        for (const line of snap.active_point.stats) {
          const tr = document.createElement("tr");
          for (const value of [line.name, line.goals, line.assists, line.turnovers, line.blocks]) {
            const td = document.createElement("td");
            td.textContent = value;
            tr.appendChild(td);
          }
          stats.appendChild(tr);
        }
      });
    </script>
  </body>
</html>
`)
		return err
	})
}
