package service

import (
	"context"
	"encoding/json"
	"errors"

	"sudoku-server/internal/domain"
	"sudoku-server/internal/repository"
)

// ErrGameNotFound is returned when a game does not exist or is owned by a
// different user. The two cases are deliberately indistinguishable.
var ErrGameNotFound = errors.New("game not found")

// SaveResult reports whether a save created a new game or updated an existing one.
type SaveResult struct {
	GameID  int64
	Created bool
}

// GameService coordinates game persistence. Every operation is scoped to the
// authenticated owner's id.
type GameService interface {
	Save(ctx context.Context, userID int64, gameID *int64, boardState json.RawMessage, isCompleted bool, elapsedTime int64) (*SaveResult, error)
	Get(ctx context.Context, gameID, userID int64) (*domain.Game, error)
	List(ctx context.Context, userID int64) ([]domain.GameSummary, error)
	Delete(ctx context.Context, gameID, userID int64) error
}

type gameService struct {
	games repository.GameRepository
}

func NewGameService(games repository.GameRepository) GameService {
	return &gameService{games: games}
}

// Save creates a new game when gameID is nil, otherwise updates the existing
// game in place. An unknown or foreign gameID yields ErrGameNotFound rather
// than a fresh record.
func (s *gameService) Save(ctx context.Context, userID int64, gameID *int64, boardState json.RawMessage, isCompleted bool, elapsedTime int64) (*SaveResult, error) {
	if len(boardState) == 0 {
		return nil, errors.New("board state is required")
	}
	if elapsedTime < 0 {
		return nil, errors.New("elapsed time must not be negative")
	}

	game := &domain.Game{
		UserID:      userID,
		BoardState:  boardState,
		IsCompleted: isCompleted,
		ElapsedTime: elapsedTime,
	}

	if gameID == nil {
		id, err := s.games.Create(ctx, game)
		if err != nil {
			return nil, err
		}
		return &SaveResult{GameID: id, Created: true}, nil
	}

	game.ID = *gameID
	if err := s.games.Update(ctx, game); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return &SaveResult{GameID: game.ID, Created: false}, nil
}

func (s *gameService) Get(ctx context.Context, gameID, userID int64) (*domain.Game, error) {
	game, err := s.games.Get(ctx, gameID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) List(ctx context.Context, userID int64) ([]domain.GameSummary, error) {
	return s.games.ListByUser(ctx, userID)
}

func (s *gameService) Delete(ctx context.Context, gameID, userID int64) error {
	if err := s.games.Delete(ctx, gameID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}
