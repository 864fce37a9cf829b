package standings

import (
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
)

// CountEvents returns a copy of entries with goals, yellow cards and red cards
// recomputed from events. Players with no events get zero. Assists are kept
// as stored since no event type records them. Events for players outside
// entries are ignored.
func CountEvents(entries []roster.Entry, events []gameevent.Event) []roster.Entry {
	type key struct {
		playerID string
		kind     gameevent.Type
	}
	counts := make(map[key]int, len(events))
	for _, e := range events {
		counts[key{playerID: e.PlayerID, kind: e.Type}]++
	}

	out := make([]roster.Entry, len(entries))
	for i, entry := range entries {
		entry.Counters.Goals = counts[key{entry.ID, gameevent.TypeGoal}]
		entry.Counters.YellowCards = counts[key{entry.ID, gameevent.TypeYellowCard}]
		entry.Counters.RedCards = counts[key{entry.ID, gameevent.TypeRedCard}]
		out[i] = entry
	}
	return out
}
