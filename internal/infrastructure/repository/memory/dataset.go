package memory

import (
	"fmt"
	"io"
	"time"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	"gopkg.in/yaml.v3"
)

type datasetFile struct {
	Teams []struct {
		ID           string `yaml:"id"`
		Name         string `yaml:"name"`
		Organization string `yaml:"organization"`
		Players      []struct {
			ID      string `yaml:"id"`
			Name    string `yaml:"name"`
			Jersey  *int   `yaml:"jersey"`
			Assists int    `yaml:"assists"`
		} `yaml:"players"`
	} `yaml:"teams"`
	Games []struct {
		ID        string `yaml:"id"`
		Label     string `yaml:"label"`
		Week      int    `yaml:"week"`
		Date      string `yaml:"date"`
		Time      string `yaml:"time"`
		Location  string `yaml:"location"`
		Home      string `yaml:"home"`
		Away      string `yaml:"away"`
		Status    string `yaml:"status"`
		HomeScore *int   `yaml:"home_score"`
		AwayScore *int   `yaml:"away_score"`
		Playoff   bool   `yaml:"playoff"`
		Published bool   `yaml:"published"`
	} `yaml:"games"`
	Events []struct {
		ID     string `yaml:"id"`
		Game   string `yaml:"game"`
		Player string `yaml:"player"`
		Type   string `yaml:"type"`
	} `yaml:"events"`
}

// LoadDataset decodes a league file. Every record is validated and every
// reference must resolve inside the file.
func LoadDataset(r io.Reader) (Dataset, error) {
	var file datasetFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return Dataset{}, fmt.Errorf("decode league file: %w", err)
	}

	var out Dataset
	teamIDs := make(map[string]struct{}, len(file.Teams))
	playerIDs := make(map[string]struct{})
	for _, t := range file.Teams {
		item := team.Team{ID: t.ID, Name: t.Name, Organization: t.Organization}
		if err := item.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("team %q: %w", t.ID, err)
		}
		if _, dup := teamIDs[t.ID]; dup {
			return Dataset{}, fmt.Errorf("team %q: duplicate id", t.ID)
		}
		teamIDs[t.ID] = struct{}{}
		out.Teams = append(out.Teams, item)

		for _, p := range t.Players {
			entry := roster.Entry{
				ID:           p.ID,
				TeamID:       t.ID,
				PlayerName:   p.Name,
				JerseyNumber: p.Jersey,
				Counters:     roster.Counters{Assists: p.Assists},
			}
			if err := entry.Validate(); err != nil {
				return Dataset{}, fmt.Errorf("player %q: %w", p.ID, err)
			}
			if roster.JerseyConflict(out.Roster, entry) {
				return Dataset{}, fmt.Errorf("player %q: %w", p.ID, roster.ErrDuplicateJersey)
			}
			playerIDs[p.ID] = struct{}{}
			out.Roster = append(out.Roster, entry)
		}
	}

	games := make(map[string]game.Game, len(file.Games))
	for _, g := range file.Games {
		date, err := time.Parse(time.DateOnly, g.Date)
		if err != nil {
			return Dataset{}, fmt.Errorf("game %q: invalid date %q", g.ID, g.Date)
		}
		status, err := game.ParseStatus(g.Status)
		if err != nil {
			return Dataset{}, fmt.Errorf("game %q: %w", g.ID, err)
		}
		item := game.Game{
			ID:          g.ID,
			MatchLabel:  g.Label,
			Week:        g.Week,
			Date:        date,
			Time:        g.Time,
			Location:    g.Location,
			HomeTeamID:  g.Home,
			AwayTeamID:  g.Away,
			HomeScore:   g.HomeScore,
			AwayScore:   g.AwayScore,
			Status:      status,
			IsPlayoff:   g.Playoff,
			IsPublished: g.Published,
		}
		if err := item.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("game %q: %w", g.ID, err)
		}
		for _, id := range []string{g.Home, g.Away} {
			if _, ok := teamIDs[id]; !ok {
				return Dataset{}, fmt.Errorf("game %q: unknown team %q", g.ID, id)
			}
		}
		if item.MatchLabel == "" {
			item.MatchLabel = game.NextMatchLabel(item.Week, labelsForWeek(out.Games, item.Week))
		}
		games[g.ID] = item
		out.Games = append(out.Games, item)
	}

	seq := make(map[string]int)
	for _, e := range file.Events {
		kind, err := gameevent.ParseType(e.Type)
		if err != nil {
			return Dataset{}, fmt.Errorf("event %q: %w", e.ID, err)
		}
		g, ok := games[e.Game]
		if !ok {
			return Dataset{}, fmt.Errorf("event %q: unknown game %q", e.ID, e.Game)
		}
		if _, ok := playerIDs[e.Player]; !ok {
			return Dataset{}, fmt.Errorf("event %q: unknown player %q", e.ID, e.Player)
		}
		seq[e.Game]++
		item := gameevent.Event{
			ID:        e.ID,
			GameID:    e.Game,
			PlayerID:  e.Player,
			Type:      kind,
			CreatedAt: g.KickoffAt().Add(time.Duration(seq[e.Game]) * time.Minute),
		}
		if err := item.Validate(); err != nil {
			return Dataset{}, fmt.Errorf("event %q: %w", e.ID, err)
		}
		out.Events = append(out.Events, item)
	}

	return out, nil
}

func labelsForWeek(games []game.Game, week int) []string {
	labels := make([]string, 0)
	for _, g := range games {
		if g.Week == week {
			labels = append(labels, g.MatchLabel)
		}
	}
	return labels
}
