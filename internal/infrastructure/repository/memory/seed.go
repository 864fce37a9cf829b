package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
)

const (
	seedWeeks          = 8
	seedCompletedWeeks = 3
)

var (
	seedSeasonStart = time.Date(2025, time.October, 12, 0, 0, 0, 0, time.UTC)
	seedKickoffs    = []string{"20:30", "21:30", "22:30"}
	seedFields      = []string{"Field 1", "Field 2", "Field 1"}
	// Results for the completed weeks, in schedule order.
	seedScores = [][2]int{
		{2, 1}, {0, 0}, {3, 2},
		{1, 1}, {0, 2}, {4, 1},
		{1, 0}, {2, 2}, {1, 3},
	}
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-al-huda", Name: "Masjid Al-Huda", Organization: "Masjid Al-Huda"},
		{ID: "team-islamic-center", Name: "Islamic Center", Organization: "Islamic Center"},
		{ID: "team-brampton-ic", Name: "Brampton Islamic Center", Organization: "Brampton Islamic Center"},
		{ID: "team-al-noor", Name: "Masjid Al-Noor", Organization: "Masjid Al-Noor"},
		{ID: "team-islamic-society", Name: "Islamic Society", Organization: "Islamic Society"},
		{ID: "team-al-falah", Name: "Masjid Al-Falah", Organization: "Masjid Al-Falah"},
	}
}

// SeedRoster gives every seed team two players wearing 9 and 10.
func SeedRoster() []roster.Entry {
	names := map[string][2]string{
		"team-al-huda":         {"Yusuf Rahman", "Ibrahim Khan"},
		"team-islamic-center":  {"Omar Siddiqui", "Bilal Ahmed"},
		"team-brampton-ic":     {"Hamza Qureshi", "Zaid Malik"},
		"team-al-noor":         {"Khalid Hassan", "Tariq Aziz"},
		"team-islamic-society": {"Imran Sheikh", "Faisal Iqbal"},
		"team-al-falah":        {"Adam Chaudhry", "Musa Ali"},
	}

	out := make([]roster.Entry, 0, len(names)*2)
	for _, t := range SeedTeams() {
		for i, name := range names[t.ID] {
			jersey := 9 + i
			out = append(out, roster.Entry{
				ID:           seedPlayerID(t.ID, i),
				TeamID:       t.ID,
				PlayerName:   name,
				JerseyNumber: &jersey,
			})
		}
	}
	return out
}

// SeedGames builds a round-robin schedule over seedWeeks weeks, three games a
// week. The first seedCompletedWeeks weeks are already played.
func SeedGames() []game.Game {
	teams := SeedTeams()
	pairings := roundRobin(len(teams))

	out := make([]game.Game, 0, seedWeeks*len(pairings[0]))
	played := 0
	for week := 1; week <= seedWeeks; week++ {
		round := pairings[(week-1)%len(pairings)]
		for n, pair := range round {
			item := game.Game{
				ID:          fmt.Sprintf("game-w%d-%d", week, n+1),
				MatchLabel:  game.FormatMatchLabel(week, n+1),
				Week:        week,
				Date:        seedSeasonStart.AddDate(0, 0, 7*(week-1)),
				Time:        seedKickoffs[n%len(seedKickoffs)],
				Location:    seedFields[n%len(seedFields)],
				HomeTeamID:  teams[pair[0]].ID,
				AwayTeamID:  teams[pair[1]].ID,
				Status:      game.StatusScheduled,
				IsPublished: true,
			}
			if week <= seedCompletedWeeks && played < len(seedScores) {
				item.Status = game.StatusCompleted
				item.HomeScore = game.IntPtr(seedScores[played][0])
				item.AwayScore = game.IntPtr(seedScores[played][1])
				played++
			}
			out = append(out, item)
		}
	}
	return out
}

// SeedEvents credits every goal of the completed seed games to the scoring
// team's players in turn and books one yellow card per game.
func SeedEvents() []gameevent.Event {
	out := make([]gameevent.Event, 0)
	for _, g := range SeedGames() {
		if !g.HasFinalScore() {
			continue
		}
		seq := 0
		add := func(playerID string, kind gameevent.Type) {
			seq++
			out = append(out, gameevent.Event{
				ID:        fmt.Sprintf("%s-e%d", g.ID, seq),
				GameID:    g.ID,
				PlayerID:  playerID,
				Type:      kind,
				CreatedAt: g.KickoffAt().Add(time.Duration(seq) * time.Minute),
			})
		}
		for i := 0; i < *g.HomeScore; i++ {
			add(seedPlayerID(g.HomeTeamID, i%2), gameevent.TypeGoal)
		}
		for i := 0; i < *g.AwayScore; i++ {
			add(seedPlayerID(g.AwayTeamID, i%2), gameevent.TypeGoal)
		}
		add(seedPlayerID(g.AwayTeamID, 1), gameevent.TypeYellowCard)
	}
	return out
}

func seedPlayerID(teamID string, idx int) string {
	return fmt.Sprintf("%s-p%d", teamID, idx+1)
}

// roundRobin pairs n teams (n even) with the circle method: team 0 stays put
// and the others rotate one place per round.
func roundRobin(n int) [][][2]int {
	ring := make([]int, n)
	for i := range ring {
		ring[i] = i
	}

	rounds := make([][][2]int, 0, n-1)
	for r := 0; r < n-1; r++ {
		round := make([][2]int, 0, n/2)
		for i := 0; i < n/2; i++ {
			home, away := ring[i], ring[n-1-i]
			if r%2 == 1 {
				home, away = away, home
			}
			round = append(round, [2]int{home, away})
		}
		rounds = append(rounds, round)

		last := ring[n-1]
		copy(ring[2:], ring[1:n-1])
		ring[1] = last
	}
	return rounds
}

// Dataset is a complete league snapshot used to seed a store.
type Dataset struct {
	Teams  []team.Team
	Games  []game.Game
	Roster []roster.Entry
	Events []gameevent.Event
}

// DefaultDataset is the demo league served in development.
func DefaultDataset() Dataset {
	return Dataset{
		Teams:  SeedTeams(),
		Games:  SeedGames(),
		Roster: SeedRoster(),
		Events: SeedEvents(),
	}
}
