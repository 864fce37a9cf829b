package standings

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/community-league/internal/domain/game"
)

// DefaultPlayoffTeams is how many teams qualify for the playoffs.
const DefaultPlayoffTeams = 6

var (
	ErrInvalidBracketSize = errors.New("playoff size must be at least 2")
	ErrNotEnoughTeams     = errors.New("not enough teams for playoff bracket")
)

// Slot is one team position in a bracket matchup. Seed is zero for slots
// filled by a winner from an earlier round.
type Slot struct {
	Seed   int
	TeamID string
}

// Matchup pairs two slots. GameID is set when an existing playoff game
// between the two teams was found; WinnerTeamID once that game is decided.
// A Bye matchup has an empty Away slot and its Home team advances unplayed.
type Matchup struct {
	Round        int
	Index        int
	Home         Slot
	Away         Slot
	Bye          bool
	GameID       string
	WinnerTeamID string
}

// Bracket is a single-elimination playoff tree. Rounds[0] is the first round;
// the last round holds the final. Size is the number of qualified teams and
// Byes how many of the top seeds skip round one.
type Bracket struct {
	Size           int
	Byes           int
	Rounds         [][]Matchup
	ChampionTeamID string
}

// SeedBracket seeds the top size teams of table into a single-elimination
// bracket where seed 1 meets the lowest seed in round one and seeds 1 and 2
// can only meet in the final. When size is not a power of two the draw is
// padded to the next one and the top seeds get first-round byes. Playoff games
// are matched to matchups by team pair and decide who advances; a drawn or
// unfinished game leaves the winner empty.
func SeedBracket(table Table, size int, playoffGames []game.Game) (Bracket, error) {
	if size < 2 {
		return Bracket{}, fmt.Errorf("%w: got %d", ErrInvalidBracketSize, size)
	}
	if len(table.Records) < size {
		return Bracket{}, fmt.Errorf("%w: need %d, have %d", ErrNotEnoughTeams, size, len(table.Records))
	}

	games := latestGameByPair(playoffGames)
	draw := drawSize(size)
	order := seedOrder(draw)
	slot := func(seed int) Slot {
		if seed > size {
			return Slot{}
		}
		return Slot{Seed: seed, TeamID: table.Records[seed-1].TeamID}
	}

	first := make([]Matchup, 0, draw/2)
	for i := 0; i < draw; i += 2 {
		m := Matchup{
			Round: 1,
			Index: i / 2,
			Home:  slot(order[i]),
			Away:  slot(order[i+1]),
		}
		// order always puts the better seed first, so a bye is the away side.
		if m.Away.Seed == 0 {
			m.Bye = true
			m.WinnerTeamID = m.Home.TeamID
		} else {
			resolve(&m, games)
		}
		first = append(first, m)
	}

	bracket := Bracket{Size: size, Byes: draw - size, Rounds: [][]Matchup{first}}
	prev := first
	for round := 2; len(prev) > 1; round++ {
		next := make([]Matchup, 0, len(prev)/2)
		for i := 0; i < len(prev); i += 2 {
			m := Matchup{
				Round: round,
				Index: i / 2,
				Home:  advancing(prev[i]),
				Away:  advancing(prev[i+1]),
			}
			resolve(&m, games)
			next = append(next, m)
		}
		bracket.Rounds = append(bracket.Rounds, next)
		prev = next
	}
	bracket.ChampionTeamID = prev[0].WinnerTeamID

	return bracket, nil
}

// drawSize is the smallest power of two holding size teams.
func drawSize(size int) int {
	n := 2
	for n < size {
		n *= 2
	}
	return n
}

// seedOrder lists seeds in bracket order, e.g. [1 4 2 3] for four teams and
// [1 8 4 5 2 7 3 6] for eight.
func seedOrder(size int) []int {
	order := []int{1}
	for n := 2; n <= size; n *= 2 {
		expanded := make([]int, 0, n)
		for _, seed := range order {
			expanded = append(expanded, seed, n+1-seed)
		}
		order = expanded
	}
	return order
}

func advancing(m Matchup) Slot {
	if m.WinnerTeamID == "" {
		return Slot{}
	}
	if m.WinnerTeamID == m.Home.TeamID {
		return m.Home
	}
	return m.Away
}

type teamPair struct{ a, b string }

func pairOf(x, y string) teamPair {
	if x > y {
		x, y = y, x
	}
	return teamPair{a: x, b: y}
}

func latestGameByPair(games []game.Game) map[teamPair]game.Game {
	out := make(map[teamPair]game.Game, len(games))
	for _, g := range games {
		if !g.IsPlayoff || g.Status == game.StatusCancelled {
			continue
		}
		key := pairOf(g.HomeTeamID, g.AwayTeamID)
		if cur, ok := out[key]; ok && game.Before(g, cur) {
			continue
		}
		out[key] = g
	}
	return out
}

func resolve(m *Matchup, games map[teamPair]game.Game) {
	if m.Home.TeamID == "" || m.Away.TeamID == "" {
		return
	}
	g, ok := games[pairOf(m.Home.TeamID, m.Away.TeamID)]
	if !ok {
		return
	}
	m.GameID = g.ID
	if !g.HasFinalScore() || *g.HomeScore == *g.AwayScore {
		return
	}
	if *g.HomeScore > *g.AwayScore {
		m.WinnerTeamID = g.HomeTeamID
	} else {
		m.WinnerTeamID = g.AwayTeamID
	}
}
