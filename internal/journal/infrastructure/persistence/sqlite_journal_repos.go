package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/journal/domain"
	sharedPersistence "github.com/tendhq/tend/internal/shared/infrastructure/persistence"
)

// SQLiteGoalRepository implements domain.GoalRepository using SQLite.
type SQLiteGoalRepository struct {
	db *sql.DB
}

// NewSQLiteGoalRepository creates a new SQLite goal repository.
func NewSQLiteGoalRepository(db *sql.DB) *SQLiteGoalRepository {
	return &SQLiteGoalRepository{db: db}
}

func (r *SQLiteGoalRepository) conn(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.SQLiteConn(ctx, r.db)
}

// Save persists a goal.
func (r *SQLiteGoalRepository) Save(ctx context.Context, goal *domain.Goal) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO goals (id, owner_id, title, completed, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			completed = excluded.completed,
			completed_at = excluded.completed_at,
			updated_at = excluded.updated_at`,
		goal.ID().String(),
		goal.OwnerID().String(),
		goal.Title(),
		boolToInt(goal.IsCompleted()),
		timePtrToString(goal.CompletedAt()),
		goal.CreatedAt().UTC().Format(time.RFC3339),
		goal.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// FindByID retrieves a goal by ID. Returns (nil, nil) when absent.
func (r *SQLiteGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	row := r.conn(ctx).QueryRowContext(ctx, `
		SELECT id, owner_id, title, completed, completed_at, created_at, updated_at
		FROM goals WHERE id = ?`, id.String())

	goal, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return goal, err
}

// FindByOwnerID retrieves all goals for an owner, newest first.
func (r *SQLiteGoalRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Goal, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT id, owner_id, title, completed, completed_at, created_at, updated_at
		FROM goals WHERE owner_id = ? ORDER BY created_at DESC`, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	goals := make([]*domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// CountGoals counts goals created in [start, end).
func (r *SQLiteGoalRepository) CountGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM goals
		WHERE owner_id = ? AND created_at >= ? AND created_at < ?`,
		ownerID, start, end)
}

// CountCompletedGoals counts goals completed in [start, end).
func (r *SQLiteGoalRepository) CountCompletedGoals(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	return r.count(ctx, `
		SELECT COUNT(*) FROM goals
		WHERE owner_id = ? AND completed = 1
		  AND completed_at >= ? AND completed_at < ?`,
		ownerID, start, end)
}

func (r *SQLiteGoalRepository) count(ctx context.Context, query string, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRowContext(ctx, query,
		ownerID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count goals: %w", err)
	}
	return n, nil
}

func scanGoal(row interface{ Scan(dest ...any) error }) (*domain.Goal, error) {
	var (
		idStr, ownerStr, title     string
		completedInt               int
		completedAtStr             sql.NullString
		createdAtStr, updatedAtStr string
	)
	if err := row.Scan(&idStr, &ownerStr, &title, &completedInt, &completedAtStr, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse goal id: %w", err)
	}
	ownerID, err := uuid.Parse(ownerStr)
	if err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}

	createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

	return domain.RehydrateGoal(id, ownerID, title, completedInt != 0,
		stringToTimePtr(completedAtStr), createdAt, updatedAt), nil
}

// SQLiteDeedRepository implements domain.DeedRepository using SQLite.
type SQLiteDeedRepository struct {
	db *sql.DB
}

// NewSQLiteDeedRepository creates a new SQLite deed repository.
func NewSQLiteDeedRepository(db *sql.DB) *SQLiteDeedRepository {
	return &SQLiteDeedRepository{db: db}
}

func (r *SQLiteDeedRepository) conn(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.SQLiteConn(ctx, r.db)
}

// Save persists a deed.
func (r *SQLiteDeedRepository) Save(ctx context.Context, deed *domain.Deed) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO deeds (id, owner_id, note, done_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			note = excluded.note,
			updated_at = excluded.updated_at`,
		deed.ID().String(),
		deed.OwnerID().String(),
		deed.Note(),
		deed.DoneAt().UTC().Format(time.RFC3339),
		deed.CreatedAt().UTC().Format(time.RFC3339),
		deed.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save deed: %w", err)
	}
	return nil
}

// FindByOwnerID retrieves all deeds for an owner, newest first.
func (r *SQLiteDeedRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Deed, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT id, owner_id, note, done_at, created_at, updated_at
		FROM deeds WHERE owner_id = ? ORDER BY done_at DESC`, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("query deeds: %w", err)
	}
	defer rows.Close()

	deeds := make([]*domain.Deed, 0)
	for rows.Next() {
		var (
			idStr, ownerStr, note      string
			doneAtStr                  string
			createdAtStr, updatedAtStr string
		)
		if err := rows.Scan(&idStr, &ownerStr, &note, &doneAtStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse deed id: %w", err)
		}
		owner, err := uuid.Parse(ownerStr)
		if err != nil {
			return nil, fmt.Errorf("parse owner id: %w", err)
		}
		doneAt, _ := time.Parse(time.RFC3339, doneAtStr)
		createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
		updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

		deeds = append(deeds, domain.RehydrateDeed(id, owner, note, doneAt, createdAt, updatedAt))
	}
	return deeds, rows.Err()
}

// CountDeeds counts deeds done in [start, end).
func (r *SQLiteDeedRepository) CountDeeds(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM deeds
		WHERE owner_id = ? AND done_at >= ? AND done_at < ?`,
		ownerID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count deeds: %w", err)
	}
	return n, nil
}

// SQLiteReflectionRepository implements domain.ReflectionRepository using SQLite.
type SQLiteReflectionRepository struct {
	db *sql.DB
}

// NewSQLiteReflectionRepository creates a new SQLite reflection repository.
func NewSQLiteReflectionRepository(db *sql.DB) *SQLiteReflectionRepository {
	return &SQLiteReflectionRepository{db: db}
}

func (r *SQLiteReflectionRepository) conn(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.SQLiteConn(ctx, r.db)
}

// Save persists a reflection.
func (r *SQLiteReflectionRepository) Save(ctx context.Context, reflection *domain.Reflection) error {
	_, err := r.conn(ctx).ExecContext(ctx, `
		INSERT INTO reflections (id, owner_id, text, written_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			updated_at = excluded.updated_at`,
		reflection.ID().String(),
		reflection.OwnerID().String(),
		reflection.Text(),
		reflection.WrittenAt().UTC().Format(time.RFC3339),
		reflection.CreatedAt().UTC().Format(time.RFC3339),
		reflection.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save reflection: %w", err)
	}
	return nil
}

// FindByOwnerID retrieves all reflections for an owner, newest first.
func (r *SQLiteReflectionRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Reflection, error) {
	rows, err := r.conn(ctx).QueryContext(ctx, `
		SELECT id, owner_id, text, written_at, created_at, updated_at
		FROM reflections WHERE owner_id = ? ORDER BY written_at DESC`, ownerID.String())
	if err != nil {
		return nil, fmt.Errorf("query reflections: %w", err)
	}
	defer rows.Close()

	reflections := make([]*domain.Reflection, 0)
	for rows.Next() {
		var (
			idStr, ownerStr, text      string
			writtenAtStr               string
			createdAtStr, updatedAtStr string
		)
		if err := rows.Scan(&idStr, &ownerStr, &text, &writtenAtStr, &createdAtStr, &updatedAtStr); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse reflection id: %w", err)
		}
		owner, err := uuid.Parse(ownerStr)
		if err != nil {
			return nil, fmt.Errorf("parse owner id: %w", err)
		}
		writtenAt, _ := time.Parse(time.RFC3339, writtenAtStr)
		createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
		updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

		reflections = append(reflections, domain.RehydrateReflection(id, owner, text, writtenAt, createdAt, updatedAt))
	}
	return reflections, rows.Err()
}

// CountReflections counts reflections written in [start, end).
func (r *SQLiteReflectionRepository) CountReflections(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRowContext(ctx, `
		SELECT COUNT(*) FROM reflections
		WHERE owner_id = ? AND written_at >= ? AND written_at < ?`,
		ownerID.String(),
		start.UTC().Format(time.RFC3339),
		end.UTC().Format(time.RFC3339),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count reflections: %w", err)
	}
	return n, nil
}

func timePtrToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func stringToTimePtr(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
