// Package standings derives the league table, roster counters and playoff
// bracket from raw game data. Everything here is pure: no I/O, no clocks.
package standings

import (
	"sort"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/team"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1

	// FormLength is how many recent results the form column shows.
	FormLength = 5
)

type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

type SkipReason string

const (
	SkipMissingScore SkipReason = "missing_score"
	SkipUnknownTeam  SkipReason = "unknown_team"
	SkipSameTeam     SkipReason = "same_team"
)

// SkippedGame is a completed game that could not be counted.
type SkippedGame struct {
	GameID string
	Reason SkipReason
}

// Record is one row of the league table.
type Record struct {
	Position int
	TeamID   string
	TeamName string
	Stats    team.Stats
	// Form lists up to FormLength recent results, oldest first.
	Form []Outcome
}

type Table struct {
	Records []Record
	Skipped []SkippedGame
}

// StatsByTeam indexes the computed stats by team id.
func (t Table) StatsByTeam() map[string]team.Stats {
	out := make(map[string]team.Stats, len(t.Records))
	for _, r := range t.Records {
		out[r.TeamID] = r.Stats
	}
	return out
}

// Compute builds the league table from teams and games.
//
// Only games with status completed count. A completed game with a missing
// score, an unknown team, or the same team on both sides is left out and
// listed in Table.Skipped. Every team appears in the result, including teams
// with no games. Rows are ordered by points, goal difference, then goals for,
// all descending; teams level on all three keep their input order.
func Compute(teams []team.Team, games []game.Game) Table {
	index := make(map[string]int, len(teams))
	records := make([]Record, 0, len(teams))
	for _, t := range teams {
		if _, dup := index[t.ID]; dup {
			continue
		}
		index[t.ID] = len(records)
		records = append(records, Record{TeamID: t.ID, TeamName: t.Name})
	}

	var skipped []SkippedGame
	counted := make([]game.Game, 0, len(games))
	for _, g := range games {
		if g.Status != game.StatusCompleted {
			continue
		}
		if reason, ok := skipReason(g, index); !ok {
			skipped = append(skipped, SkippedGame{GameID: g.ID, Reason: reason})
			continue
		}
		counted = append(counted, g)

		home := &records[index[g.HomeTeamID]].Stats
		away := &records[index[g.AwayTeamID]].Stats
		apply(home, *g.HomeScore, *g.AwayScore)
		apply(away, *g.AwayScore, *g.HomeScore)
	}

	forms := buildForms(counted)
	for i := range records {
		s := &records[i].Stats
		s.Points = s.Wins*pointsPerWin + s.Draws*pointsPerDraw
		s.GoalDifference = s.GoalsFor - s.GoalsAgainst
		records[i].Form = forms[records[i].TeamID]
	}

	sort.SliceStable(records, func(i, j int) bool {
		return ranksAbove(records[i].Stats, records[j].Stats)
	})
	for i := range records {
		records[i].Position = i + 1
	}

	return Table{Records: records, Skipped: skipped}
}

func skipReason(g game.Game, index map[string]int) (SkipReason, bool) {
	if g.HomeScore == nil || g.AwayScore == nil {
		return SkipMissingScore, false
	}
	if g.HomeTeamID == g.AwayTeamID {
		return SkipSameTeam, false
	}
	if _, ok := index[g.HomeTeamID]; !ok {
		return SkipUnknownTeam, false
	}
	if _, ok := index[g.AwayTeamID]; !ok {
		return SkipUnknownTeam, false
	}
	return "", true
}

func apply(s *team.Stats, own, opp int) {
	s.GamesPlayed++
	s.GoalsFor += own
	s.GoalsAgainst += opp
	switch {
	case own > opp:
		s.Wins++
	case own < opp:
		s.Losses++
	default:
		s.Draws++
	}
}

func ranksAbove(a, b team.Stats) bool {
	if a.Points != b.Points {
		return a.Points > b.Points
	}
	if a.GoalDifference != b.GoalDifference {
		return a.GoalDifference > b.GoalDifference
	}
	return a.GoalsFor > b.GoalsFor
}

func outcomeFor(own, opp int) Outcome {
	switch {
	case own > opp:
		return OutcomeWin
	case own < opp:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}
