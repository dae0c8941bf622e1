package repository

import (
	"context"

	"sudoku-server/internal/domain"
)

// GameRepository defines persistence operations for Game entities. Every
// accessor that touches an existing row takes the owning user id and filters
// on it; callers never see games they do not own.
type GameRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, game *domain.Game) (int64, error)
	Update(ctx context.Context, game *domain.Game) error
	Get(ctx context.Context, id, userID int64) (*domain.Game, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.GameSummary, error)
	Delete(ctx context.Context, id, userID int64) error
}
