package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	// List returns every entry, or only the entries of teamID when it is non-empty.
	List(ctx context.Context, teamID string) ([]Entry, error)
	GetByID(ctx context.Context, entryID string) (Entry, bool, error)
	Create(ctx context.Context, item Entry) error
	Update(ctx context.Context, item Entry) error
	Delete(ctx context.Context, entryID string) error
	UpdateCounters(ctx context.Context, entryID string, counters Counters) error
}
