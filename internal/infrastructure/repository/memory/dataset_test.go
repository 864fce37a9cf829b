package memory

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/stretchr/testify/require"
)

func TestLoadDataset_LeagueFileMatchesDefault(t *testing.T) {
	f, err := os.Open("../../../../db/seed/league.yaml")
	require.NoError(t, err)
	defer f.Close()

	got, err := LoadDataset(f)
	require.NoError(t, err)
	require.Equal(t, DefaultDataset(), got)
}

func TestLoadDataset_AssignsMissingLabels(t *testing.T) {
	const doc = `
teams:
  - id: a
    name: A
  - id: b
    name: B
games:
  - id: g1
    label: Week 2 - Game 3
    week: 2
    date: 2025-10-19
    home: a
    away: b
  - id: g2
    week: 2
    date: 2025-10-19
    home: b
    away: a
`
	got, err := LoadDataset(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, got.Games, 2)
	require.Equal(t, "Week 2 - Game 4", got.Games[1].MatchLabel)
}

func TestLoadDataset_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "unknown field",
			doc:  "teams:\n  - id: a\n    name: A\n    colour: red\n",
		},
		{
			name: "unknown team in game",
			doc: `
teams:
  - id: a
    name: A
games:
  - id: g1
    week: 1
    date: 2025-10-12
    home: a
    away: z
`,
		},
		{
			name: "bad date",
			doc: `
teams:
  - id: a
    name: A
  - id: b
    name: B
games:
  - id: g1
    week: 1
    date: 12/10/2025
    home: a
    away: b
`,
		},
		{
			name: "event for unknown player",
			doc: `
teams:
  - id: a
    name: A
  - id: b
    name: B
games:
  - id: g1
    week: 1
    date: 2025-10-12
    home: a
    away: b
events:
  - id: e1
    game: g1
    player: nobody
    type: goal
`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadDataset(strings.NewReader(tt.doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadDataset_DuplicateJersey(t *testing.T) {
	const doc = `
teams:
  - id: a
    name: A
    players:
      - id: p1
        name: One
        jersey: 7
      - id: p2
        name: Two
        jersey: 7
`
	_, err := LoadDataset(strings.NewReader(doc))
	if !errors.Is(err, roster.ErrDuplicateJersey) {
		t.Fatalf("expected ErrDuplicateJersey, got %v", err)
	}
}
