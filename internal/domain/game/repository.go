package game

import "context"

// Filter narrows List results. Zero values mean no constraint.
type Filter struct {
	Week        int
	Statuses    []Status
	PlayoffOnly bool
	// ExcludePlayoff keeps regular-season games only.
	ExcludePlayoff bool
	PublishedOnly  bool
	TeamID         string
}

// Repository describes game persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Game, error)
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListLabelsByWeek(ctx context.Context, week int) ([]string, error)
	Create(ctx context.Context, item Game) error
	Update(ctx context.Context, item Game) error
	// Delete removes the game and its recorded events in one write.
	Delete(ctx context.Context, gameID string) error
}

// Matches reports whether g satisfies f. Shared by in-memory stores and tests.
func (f Filter) Matches(g Game) bool {
	if f.Week > 0 && g.Week != f.Week {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if g.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PlayoffOnly && !g.IsPlayoff {
		return false
	}
	if f.ExcludePlayoff && g.IsPlayoff {
		return false
	}
	if f.PublishedOnly && !g.PubliclyVisible() {
		return false
	}
	if f.TeamID != "" && !g.Involves(f.TeamID) {
		return false
	}
	return true
}
