package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/community-league/internal/domain/game"
	"github.com/riskibarqy/community-league/internal/domain/standings"
)

type BracketService struct {
	standings standingsTableReader
	gameRepo  game.Repository
	size      int
}

func NewBracketService(standingsReader standingsTableReader, gameRepo game.Repository, size int) *BracketService {
	if size <= 0 {
		size = standings.DefaultPlayoffTeams
	}
	return &BracketService{
		standings: standingsReader,
		gameRepo:  gameRepo,
		size:      size,
	}
}

// Get seeds the bracket from the current table. When publicOnly is set,
// unpublished playoff games do not decide matchups.
func (s *BracketService) Get(ctx context.Context, publicOnly bool) (standings.Bracket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.Get")
	defer span.End()

	table, err := s.standings.Table(ctx)
	if err != nil {
		return standings.Bracket{}, fmt.Errorf("load standings: %w", err)
	}

	games, err := s.gameRepo.List(ctx, game.Filter{PlayoffOnly: true, PublishedOnly: publicOnly})
	if err != nil {
		return standings.Bracket{}, fmt.Errorf("list playoff games: %w", err)
	}

	bracket, err := standings.SeedBracket(table, s.size, games)
	if errors.Is(err, standings.ErrNotEnoughTeams) {
		return standings.Bracket{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if err != nil {
		return standings.Bracket{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return bracket, nil
}
