package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/gameevent"
	"github.com/riskibarqy/community-league/internal/domain/roster"
	"github.com/riskibarqy/community-league/internal/domain/team"
	basecache "github.com/riskibarqy/community-league/internal/platform/cache"
)

const (
	teamPrefix   = "team:"
	gamePrefix   = "game:"
	rosterPrefix = "roster:"
	eventPrefix  = "event:"
)

// TeamRepository caches team reads. Every write, including stats
// write-back, drops all cached team keys.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, teamPrefix+"list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, teamPrefix+"id:"+teamID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.next.Create(ctx, item)
}

func (r *TeamRepository) Update(ctx context.Context, item team.Team) error {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.next.Update(ctx, item)
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.next.Delete(ctx, teamID)
}

func (r *TeamRepository) UpdateStats(ctx context.Context, teamID string, stats team.Stats) error {
	defer r.cache.DeletePrefix(ctx, teamPrefix)
	return r.next.UpdateStats(ctx, teamID, stats)
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	v, err := r.cache.GetOrLoad(ctx, gamePrefix+"list:"+gameFilterKey(filter), func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]game.Game(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.Game)
	return append([]game.Game(nil), items...), nil
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, gamePrefix+"id:"+gameID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return cachedGameByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}

	cached, _ := v.(cachedGameByID)
	return cached.value, cached.exists, nil
}

type cachedGameByID struct {
	value  game.Game
	exists bool
}

// ListLabelsByWeek always reads through; label numbering must see the latest
// games.
func (r *GameRepository) ListLabelsByWeek(ctx context.Context, week int) ([]string, error) {
	return r.next.ListLabelsByWeek(ctx, week)
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) error {
	defer r.cache.DeletePrefix(ctx, gamePrefix)
	return r.next.Create(ctx, item)
}

func (r *GameRepository) Update(ctx context.Context, item game.Game) error {
	defer r.cache.DeletePrefix(ctx, gamePrefix)
	return r.next.Update(ctx, item)
}

func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	// Deleting a game cascades to its events.
	defer r.cache.DeletePrefix(ctx, gamePrefix, eventPrefix)
	return r.next.Delete(ctx, gameID)
}

func gameFilterKey(filter game.Filter) string {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}
	sort.Strings(statuses)

	var b strings.Builder
	b.WriteString("w=")
	b.WriteString(strconv.Itoa(filter.Week))
	b.WriteString(";s=")
	b.WriteString(strings.Join(statuses, ","))
	b.WriteString(";po=")
	b.WriteString(strconv.FormatBool(filter.PlayoffOnly))
	b.WriteString(";rs=")
	b.WriteString(strconv.FormatBool(filter.ExcludePlayoff))
	b.WriteString(";pub=")
	b.WriteString(strconv.FormatBool(filter.PublishedOnly))
	b.WriteString(";t=")
	b.WriteString(filter.TeamID)
	return b.String()
}

type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) List(ctx context.Context, teamID string) ([]roster.Entry, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterPrefix+"list:"+teamID, func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]roster.Entry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]roster.Entry)
	return append([]roster.Entry(nil), items...), nil
}

func (r *RosterRepository) GetByID(ctx context.Context, entryID string) (roster.Entry, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterPrefix+"id:"+entryID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, entryID)
		if err != nil {
			return nil, err
		}
		return cachedEntryByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return roster.Entry{}, false, err
	}

	cached, _ := v.(cachedEntryByID)
	return cached.value, cached.exists, nil
}

type cachedEntryByID struct {
	value  roster.Entry
	exists bool
}

func (r *RosterRepository) Create(ctx context.Context, item roster.Entry) error {
	defer r.cache.DeletePrefix(ctx, rosterPrefix)
	return r.next.Create(ctx, item)
}

func (r *RosterRepository) Update(ctx context.Context, item roster.Entry) error {
	defer r.cache.DeletePrefix(ctx, rosterPrefix)
	return r.next.Update(ctx, item)
}

func (r *RosterRepository) Delete(ctx context.Context, entryID string) error {
	defer r.cache.DeletePrefix(ctx, rosterPrefix, eventPrefix)
	return r.next.Delete(ctx, entryID)
}

func (r *RosterRepository) UpdateCounters(ctx context.Context, entryID string, counters roster.Counters) error {
	defer r.cache.DeletePrefix(ctx, rosterPrefix)
	return r.next.UpdateCounters(ctx, entryID, counters)
}

// GameEventRepository caches event reads. Errors, including
// gameevent.ErrFeatureUnavailable, are never cached.
type GameEventRepository struct {
	next  gameevent.Repository
	cache *basecache.Store
}

func NewGameEventRepository(next gameevent.Repository, cache *basecache.Store) *GameEventRepository {
	return &GameEventRepository{next: next, cache: cache}
}

func (r *GameEventRepository) ListAll(ctx context.Context) ([]gameevent.Event, error) {
	v, err := r.cache.GetOrLoad(ctx, eventPrefix+"all", func(ctx context.Context) (any, error) {
		items, err := r.next.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return append([]gameevent.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gameevent.Event)
	return append([]gameevent.Event(nil), items...), nil
}

func (r *GameEventRepository) ListByGames(ctx context.Context, gameIDs []string) ([]gameevent.Event, error) {
	ids := append([]string(nil), gameIDs...)
	sort.Strings(ids)
	key := eventPrefix + "games:" + strings.Join(ids, ",")

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGames(ctx, gameIDs)
		if err != nil {
			return nil, err
		}
		return append([]gameevent.Event(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gameevent.Event)
	return append([]gameevent.Event(nil), items...), nil
}

func (r *GameEventRepository) GetByID(ctx context.Context, eventID string) (gameevent.Event, bool, error) {
	return r.next.GetByID(ctx, eventID)
}

func (r *GameEventRepository) Create(ctx context.Context, item gameevent.Event) error {
	defer r.cache.DeletePrefix(ctx, eventPrefix)
	return r.next.Create(ctx, item)
}

func (r *GameEventRepository) Delete(ctx context.Context, eventID string) error {
	defer r.cache.DeletePrefix(ctx, eventPrefix)
	return r.next.Delete(ctx, eventID)
}

func (r *GameEventRepository) ReplaceForGame(ctx context.Context, gameID string, items []gameevent.Event) error {
	defer r.cache.DeletePrefix(ctx, eventPrefix)
	return r.next.ReplaceForGame(ctx, gameID, items)
}
