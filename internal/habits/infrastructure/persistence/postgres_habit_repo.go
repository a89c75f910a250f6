package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedPersistence "github.com/tendhq/tend/internal/shared/infrastructure/persistence"
)

// PostgresHabitRepository implements domain.Repository using PostgreSQL.
type PostgresHabitRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresHabitRepository creates a new PostgreSQL habit repository.
func NewPostgresHabitRepository(pool *pgxpool.Pool) *PostgresHabitRepository {
	return &PostgresHabitRepository{pool: pool}
}

func (r *PostgresHabitRepository) executor(ctx context.Context) sharedPersistence.DBExecutor {
	return sharedPersistence.Executor(ctx, r.pool)
}

// Save persists a habit and rewrites its ledger entries.
func (r *PostgresHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	exec := r.executor(ctx)

	_, err := exec.Exec(ctx, `
		INSERT INTO habits (
			id, owner_id, name, description, today_status,
			streak, longest_streak, last_completed,
			reminder_time, reminder_days, archived,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			today_status = EXCLUDED.today_status,
			streak = EXCLUDED.streak,
			longest_streak = EXCLUDED.longest_streak,
			last_completed = EXCLUDED.last_completed,
			reminder_time = EXCLUDED.reminder_time,
			reminder_days = EXCLUDED.reminder_days,
			archived = EXCLUDED.archived,
			updated_at = EXCLUDED.updated_at`,
		habit.ID(),
		habit.OwnerID(),
		habit.Name(),
		habit.Description(),
		string(habit.TodayStatus()),
		habit.Streak(),
		habit.LongestStreak(),
		habit.LastCompleted(),
		habit.ReminderTime(),
		weekdaysToCSV(habit.ReminderDays()),
		habit.IsArchived(),
		habit.CreatedAt(),
		habit.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save habit: %w", err)
	}

	if _, err := exec.Exec(ctx,
		`DELETE FROM habit_entries WHERE habit_id = $1`, habit.ID()); err != nil {
		return fmt.Errorf("clear habit entries: %w", err)
	}

	for _, day := range habit.Ledger().TrackedDays() {
		status := habit.Ledger().Get(day)
		if _, err := exec.Exec(ctx,
			`INSERT INTO habit_entries (habit_id, day, status) VALUES ($1, $2, $3)`,
			habit.ID(), day.String(), string(status)); err != nil {
			return fmt.Errorf("save habit entry %s: %w", day, err)
		}
	}

	return nil
}

// FindByID retrieves a habit by its ID. Returns (nil, nil) when absent.
func (r *PostgresHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := r.executor(ctx)

	row := exec.QueryRow(ctx, pgHabitSelect+` WHERE id = $1`, id)
	habit, err := r.scanHabit(ctx, row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return habit, err
}

// FindByOwnerID retrieves all habits for an owner.
func (r *PostgresHabitRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `WHERE owner_id = $1 ORDER BY created_at`, ownerID)
}

// FindActiveByOwnerID retrieves all non-archived habits for an owner.
func (r *PostgresHabitRepository) FindActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `WHERE owner_id = $1 AND NOT archived ORDER BY created_at`, ownerID)
}

// FindDueToday retrieves habits scheduled for the current date.
func (r *PostgresHabitRepository) FindDueToday(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	habits, err := r.FindActiveByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	due := make([]*domain.Habit, 0, len(habits))
	for _, h := range habits {
		if h.IsDueOn(today) {
			due = append(due, h)
		}
	}
	return due, nil
}

// Delete removes a habit and its ledger entries.
func (r *PostgresHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	exec := r.executor(ctx)

	if _, err := exec.Exec(ctx,
		`DELETE FROM habit_entries WHERE habit_id = $1`, id); err != nil {
		return fmt.Errorf("delete habit entries: %w", err)
	}
	if _, err := exec.Exec(ctx,
		`DELETE FROM habits WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

const pgHabitSelect = `
	SELECT id, owner_id, name, description, today_status,
	       streak, longest_streak, last_completed,
	       reminder_time, reminder_days, archived,
	       created_at, updated_at
	FROM habits`

func (r *PostgresHabitRepository) findWhere(ctx context.Context, clause string, args ...any) ([]*domain.Habit, error) {
	exec := r.executor(ctx)

	rows, err := exec.Query(ctx, pgHabitSelect+" "+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query habits: %w", err)
	}
	defer rows.Close()

	habits := make([]*domain.Habit, 0)
	for rows.Next() {
		habit, err := r.scanHabit(ctx, rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, habit)
	}
	return habits, rows.Err()
}

func (r *PostgresHabitRepository) scanHabit(ctx context.Context, row pgx.Row) (*domain.Habit, error) {
	var (
		id, ownerID                 uuid.UUID
		name, description           string
		todayStatus                 string
		streak, longestStreak       int
		lastCompleted               *time.Time
		reminderTime, reminderDays  string
		archived                    bool
		createdAt, updatedAt        time.Time
	)

	err := row.Scan(
		&id, &ownerID, &name, &description, &todayStatus,
		&streak, &longestStreak, &lastCompleted,
		&reminderTime, &reminderDays, &archived,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	ledger, err := r.loadLedger(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateHabit(
		id,
		ownerID,
		name,
		description,
		domain.Status(todayStatus),
		streak,
		longestStreak,
		lastCompleted,
		ledger,
		reminderTime,
		weekdaysFromCSV(reminderDays),
		archived,
		createdAt,
		updatedAt,
	), nil
}

func (r *PostgresHabitRepository) loadLedger(ctx context.Context, habitID uuid.UUID) (*domain.Ledger, error) {
	exec := r.executor(ctx)

	rows, err := exec.Query(ctx,
		`SELECT day, status FROM habit_entries WHERE habit_id = $1`, habitID)
	if err != nil {
		return nil, fmt.Errorf("query habit entries: %w", err)
	}
	defer rows.Close()

	ledger := domain.NewLedger()
	for rows.Next() {
		var dayStr, statusStr string
		if err := rows.Scan(&dayStr, &statusStr); err != nil {
			return nil, err
		}
		day, err := domain.ParseDayKey(dayStr)
		if err != nil {
			continue
		}
		ledger.Set(day, domain.ParseStatus(statusStr))
	}
	return ledger, rows.Err()
}
