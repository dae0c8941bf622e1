package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sudoku-server/internal/domain"
	"sudoku-server/internal/repository"
)

const createGamesTable = `
CREATE TABLE IF NOT EXISTS games (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users(id),
	board_state TEXT NOT NULL,
	is_completed INTEGER NOT NULL DEFAULT 0,
	elapsed_time INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_games_user_updated ON games(user_id, updated_at DESC);
`

type GameRepository struct {
	db *sql.DB
}

func NewGameRepository(db *sql.DB) repository.GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createGamesTable); err != nil {
		return fmt.Errorf("create games table: %w", err)
	}
	return nil
}

func (r *GameRepository) Create(ctx context.Context, game *domain.Game) (int64, error) {
	now := time.Now().UTC()
	game.CreatedAt = now
	game.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO games (user_id, board_state, is_completed, elapsed_time, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		game.UserID,
		string(game.BoardState),
		game.IsCompleted,
		game.ElapsedTime,
		game.CreatedAt,
		game.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert game: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("game last insert id: %w", err)
	}
	game.ID = id
	return id, nil
}

// Update overwrites the mutable fields of a game. The WHERE clause filters on
// both id and user_id, so a game owned by someone else counts as not found.
func (r *GameRepository) Update(ctx context.Context, game *domain.Game) error {
	game.UpdatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
UPDATE games
SET board_state=?, is_completed=?, elapsed_time=?, updated_at=?
WHERE id=? AND user_id=?`,
		string(game.BoardState),
		game.IsCompleted,
		game.ElapsedTime,
		game.UpdatedAt,
		game.ID,
		game.UserID,
	)
	if err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("game update rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("game %d: %w", game.ID, repository.ErrNotFound)
	}
	return nil
}

func (r *GameRepository) Get(ctx context.Context, id, userID int64) (*domain.Game, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, board_state, is_completed, elapsed_time, created_at, updated_at
FROM games
WHERE id=? AND user_id=?`,
		id,
		userID,
	)
	return scanGame(row)
}

func (r *GameRepository) ListByUser(ctx context.Context, userID int64) ([]domain.GameSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, is_completed, created_at, updated_at
FROM games
WHERE user_id=?
ORDER BY updated_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query games: %w", err)
	}
	defer rows.Close()

	var games []domain.GameSummary
	for rows.Next() {
		var (
			g         domain.GameSummary
			createdAt time.Time
			updatedAt time.Time
		)
		if err := rows.Scan(&g.ID, &g.IsCompleted, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan game summary: %w", err)
		}
		g.CreatedAt = createdAt.UTC()
		g.UpdatedAt = updatedAt.UTC()
		games = append(games, g)
	}

	return games, rows.Err()
}

func (r *GameRepository) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM games WHERE id=? AND user_id=?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("game delete rows affected: %w", err)
	}
	if aff == 0 {
		return fmt.Errorf("game %d: %w", id, repository.ErrNotFound)
	}
	return nil
}

func scanGame(scanner interface {
	Scan(dest ...any) error
}) (*domain.Game, error) {
	var (
		game       domain.Game
		boardState string
		createdAt  time.Time
		updatedAt  time.Time
	)

	if err := scanner.Scan(
		&game.ID,
		&game.UserID,
		&boardState,
		&game.IsCompleted,
		&game.ElapsedTime,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("game: %w", repository.ErrNotFound)
		}
		return nil, fmt.Errorf("scan game: %w", err)
	}

	game.BoardState = []byte(boardState)
	game.CreatedAt = createdAt.UTC()
	game.UpdatedAt = updatedAt.UTC()
	return &game, nil
}
