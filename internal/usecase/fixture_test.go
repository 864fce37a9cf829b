package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	"github.com/riskibarqy/community-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/community-league/internal/platform/logging"
)

// leagueFixture is a four-team league on memory repositories:
// g1 A 2-1 B and g2 C 0-0 D in week 1, g3 and g4 scheduled in week 2,
// g5 an unpublished playoff game.
type leagueFixture struct {
	teams     *memory.TeamRepository
	games     *memory.GameRepository
	roster    *memory.RosterRepository
	events    *memory.GameEventRepository
	standings *StandingsService
	rosterSt  *RosterStatsService
	public    *PublicService
}

func newLeagueFixture(t *testing.T, withEvents bool) leagueFixture {
	t.Helper()

	day := func(d, hour int) time.Time {
		return time.Date(2025, time.October, d, hour, 0, 0, 0, time.UTC)
	}
	scheduled := func(id string, week int, date time.Time, home, away string) game.Game {
		return game.Game{
			ID:         id,
			Week:       week,
			Date:       date,
			Time:       "20:00",
			HomeTeamID: home,
			AwayTeamID: away,
			Status:     game.StatusScheduled,
		}
	}

	g1 := completedGame("g1", 1, "A", "B", 2, 1)
	g1.Date, g1.Time = day(5, 0), "18:00"
	g2 := completedGame("g2", 1, "C", "D", 0, 0)
	g2.Date, g2.Time = day(5, 0), "20:00"
	g5 := scheduled("g5", 3, day(19, 0), "C", "D")
	g5.IsPlayoff = true

	f := leagueFixture{
		teams: memory.NewTeamRepository([]team.Team{
			{ID: "A", Name: "Masjid Al-Huda"},
			{ID: "B", Name: "Islamic Center"},
			{ID: "C", Name: "Masjid Al-Noor"},
			{ID: "D", Name: "Masjid Al-Falah"},
		}),
		games: memory.NewGameRepository([]game.Game{
			g1,
			g2,
			scheduled("g3", 2, day(12, 0), "A", "C"),
			scheduled("g4", 2, day(12, 0), "B", "D"),
			g5,
		}),
		roster: memory.NewRosterRepository([]roster.Entry{
			{ID: "pA1", TeamID: "A", PlayerName: "Yusuf Rahman"},
			{ID: "pB1", TeamID: "B", PlayerName: "Omar Siddiqui"},
			{ID: "pC1", TeamID: "C", PlayerName: "Bilal Hassan"},
		}),
	}
	if withEvents {
		f.events = memory.NewGameEventRepository([]gameevent.Event{
			{ID: "e1", GameID: "g1", PlayerID: "pA1", Type: gameevent.TypeGoal},
			{ID: "e2", GameID: "g1", PlayerID: "pB1", Type: gameevent.TypeGoal},
			{ID: "e3", GameID: "g1", PlayerID: "pA1", Type: gameevent.TypeGoal},
			{ID: "e4", GameID: "g1", PlayerID: "pB1", Type: gameevent.TypeYellowCard},
		})
	} else {
		f.events = memory.NewUnavailableGameEventRepository()
	}
	f.games.CascadeEvents(f.events)

	logger := logging.NewNop()
	f.standings = NewStandingsService(NewRepositoryDataSource(f.teams, f.games), f.teams, 2, logger)
	f.rosterSt = NewRosterStatsService(f.roster, f.events, 2, logger)
	f.public = NewPublicService(f.games, f.teams, f.roster, f.events, f.standings, f.rosterSt, logger)
	return f
}
