package roster

import (
	"sort"
	"strings"
)

// DefaultLeadersLimit is how many rows the public leaders board shows.
const DefaultLeadersLimit = 20

// TopScorers ranks entries with at least one goal by goals, then name.
func TopScorers(entries []Entry, limit int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Counters.Goals > 0 {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Counters.Goals != out[j].Counters.Goals {
			return out[i].Counters.Goals > out[j].Counters.Goals
		}
		return strings.ToLower(out[i].PlayerName) < strings.ToLower(out[j].PlayerName)
	})
	return truncate(out, limit)
}

// CardLeaders ranks booked entries by red cards, then yellow cards, then name.
func CardLeaders(entries []Entry, limit int) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Counters.YellowCards > 0 || e.Counters.RedCards > 0 {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Counters, out[j].Counters
		if a.RedCards != b.RedCards {
			return a.RedCards > b.RedCards
		}
		if a.YellowCards != b.YellowCards {
			return a.YellowCards > b.YellowCards
		}
		return strings.ToLower(out[i].PlayerName) < strings.ToLower(out[j].PlayerName)
	})
	return truncate(out, limit)
}

func truncate(entries []Entry, limit int) []Entry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
