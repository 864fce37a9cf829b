package standings

import (
	"slices"
	"sort"

	"github.com/riskibarqy/community-league/internal/domain/game"
)

// buildForms keeps each team's last FormLength results, oldest first so the
// final marker is the latest game. It expects only countable completed games.
func buildForms(games []game.Game) map[string][]Outcome {
	ordered := append([]game.Game(nil), games...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return game.Before(ordered[j], ordered[i])
	})

	out := make(map[string][]Outcome)
	for _, g := range ordered {
		if len(out[g.HomeTeamID]) < FormLength {
			out[g.HomeTeamID] = append(out[g.HomeTeamID], outcomeFor(*g.HomeScore, *g.AwayScore))
		}
		if len(out[g.AwayTeamID]) < FormLength {
			out[g.AwayTeamID] = append(out[g.AwayTeamID], outcomeFor(*g.AwayScore, *g.HomeScore))
		}
	}
	for _, form := range out {
		slices.Reverse(form)
	}
	return out
}

// FormString renders outcomes as a compact string such as "WWDLW".
func FormString(form []Outcome) string {
	buf := make([]byte, 0, len(form))
	for _, o := range form {
		buf = append(buf, string(o)...)
	}
	return string(buf)
}
