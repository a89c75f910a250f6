package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedPersistence "github.com/tendhq/tend/internal/shared/infrastructure/persistence"
)

// PostgresGoalRepository implements domain.GoalRepository using PostgreSQL.
type PostgresGoalRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresGoalRepository creates a new PostgreSQL goal repository.
func NewPostgresGoalRepository(pool *pgxpool.Pool) *PostgresGoalRepository {
	return &PostgresGoalRepository{pool: pool}
}

func (r *PostgresGoalRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Save persists a goal.
func (r *PostgresGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	_, err := r.executor(ctx).Exec(ctx, `
		INSERT INTO goals (id, owner_id, title, completed, completed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			completed = EXCLUDED.completed,
			completed_at = EXCLUDED.completed_at,
			updated_at = EXCLUDED.updated_at`,
		goal.ID(), goal.OwnerID(), goal.Title(), goal.IsCompleted(),
		goal.CompletedAt(), goal.CreatedAt(), goal.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// FindByID retrieves a goal by ID. Returns (nil, nil) when absent.
func (r *PostgresGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	row := r.executor(ctx).QueryRow(ctx, `
		SELECT id, owner_id, title, completed, completed_at, created_at, updated_at
		FROM goals WHERE id = $1`, id)

	goal, err := scanPGGoal(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return goal, err
}

// FindByOwnerID retrieves all goals for an owner, newest first.
func (r *PostgresGoalRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, owner_id, title, completed, completed_at, created_at, updated_at
		FROM goals WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := scanPGGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// CountGoals counts goals created in [start, end).
func (r *PostgresGoalRepository) CountGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.executor(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM goals
		WHERE owner_id = $1 AND created_at >= $2 AND created_at < $3`,
		ownerID, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return n, nil
}

// CountCompletedGoals counts goals completed in [start, end).
func (r *PostgresGoalRepository) CountCompletedGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.executor(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM goals
		WHERE owner_id = $1 AND completed
		  AND completed_at >= $2 AND completed_at < $3`,
		ownerID, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count completed goals: %w", err)
	}
	return n, nil
}

func scanPGGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		id, ownerID          uuid.UUID
		title                string
		completed            bool
		completedAt          *time.Time
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &ownerID, &title, &completed, &completedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydrateGoal(id, ownerID, title, completed, completedAt, createdAt, updatedAt), nil
}

// PostgresDeedRepository implements domain.DeedRepository using PostgreSQL.
type PostgresDeedRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDeedRepository creates a new PostgreSQL deed repository.
func NewPostgresDeedRepository(pool *pgxpool.Pool) *PostgresDeedRepository {
	return &PostgresDeedRepository{pool: pool}
}

func (r *PostgresDeedRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Save persists a deed.
func (r *PostgresDeedRepository) Save(ctx context.Context, deed *domain.Deed) error {
	_, err := r.executor(ctx).Exec(ctx, `
		INSERT INTO deeds (id, owner_id, note, done_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at`,
		deed.ID(), deed.OwnerID(), deed.Note(), deed.DoneAt(),
		deed.CreatedAt(), deed.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save deed: %w", err)
	}
	return nil
}

// FindByOwnerID retrieves all deeds for an owner, newest first.
func (r *PostgresDeedRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deed, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, owner_id, note, done_at, created_at, updated_at
		FROM deeds WHERE owner_id = $1 ORDER BY done_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query deeds: %w", err)
	}
	defer rows.Close()

	deeds := make([]*domain.Deed, 0)
	for rows.Next() {
		var (
			id, owner            uuid.UUID
			note                 string
			doneAt               time.Time
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &owner, &note, &doneAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		deeds = append(deeds, domain.RehydrateDeed(id, owner, note, doneAt, createdAt, updatedAt))
	}
	return deeds, rows.Err()
}

// CountDeeds counts deeds done in [start, end).
func (r *PostgresDeedRepository) CountDeeds(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.executor(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM deeds
		WHERE owner_id = $1 AND done_at >= $2 AND done_at < $3`,
		ownerID, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count deeds: %w", err)
	}
	return n, nil
}

// PostgresReflectionRepository implements domain.ReflectionRepository using PostgreSQL.
type PostgresReflectionRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresReflectionRepository creates a new PostgreSQL reflection repository.
func NewPostgresReflectionRepository(pool *pgxpool.Pool) *PostgresReflectionRepository {
	return &PostgresReflectionRepository{pool: pool}
}

func (r *PostgresReflectionRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Save persists a reflection.
func (r *PostgresReflectionRepository) Save(ctx context.Context, reflection *domain.Reflection) error {
	_, err := r.executor(ctx).Exec(ctx, `
		INSERT INTO reflections (id, owner_id, text, written_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			updated_at = EXCLUDED.updated_at`,
		reflection.ID(), reflection.OwnerID(), reflection.Text(),
		reflection.WrittenAt(), reflection.CreatedAt(), reflection.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save reflection: %w", err)
	}
	return nil
}

// FindByOwnerID retrieves all reflections for an owner, newest first.
func (r *PostgresReflectionRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Reflection, error) {
	rows, err := r.executor(ctx).Query(ctx, `
		SELECT id, owner_id, text, written_at, created_at, updated_at
		FROM reflections WHERE owner_id = $1 ORDER BY written_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query reflections: %w", err)
	}
	defer rows.Close()

	reflections := make([]*domain.Reflection, 0)
	for rows.Next() {
		var (
			id, owner            uuid.UUID
			text                 string
			writtenAt            time.Time
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&id, &owner, &text, &writtenAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		reflections = append(reflections, domain.RehydrateReflection(id, owner, text, writtenAt, createdAt, updatedAt))
	}
	return reflections, rows.Err()
}

// CountReflections counts reflections written in [start, end).
func (r *PostgresReflectionRepository) CountReflections(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.executor(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM reflections
		WHERE owner_id = $1 AND written_at >= $2 AND written_at < $3`,
		ownerID, start, end).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reflections: %w", err)
	}
	return n, nil
}
