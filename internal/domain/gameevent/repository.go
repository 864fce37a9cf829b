package gameevent

import "context"

// Repository describes event persistence needs from use cases. Every method
// may return ErrFeatureUnavailable.
type Repository interface {
	ListAll(ctx context.Context) ([]Event, error)
	ListByGames(ctx context.Context, gameIDs []string) ([]Event, error)
	GetByID(ctx context.Context, eventID string) (Event, bool, error)
	Create(ctx context.Context, item Event) error
	Delete(ctx context.Context, eventID string) error
	ReplaceForGame(ctx context.Context, gameID string, items []Event) error
}
