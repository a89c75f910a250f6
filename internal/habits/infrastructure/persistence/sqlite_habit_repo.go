package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tendhq/tend/internal/habits/domain"
	sharedPersistence "github.com/tendhq/tend/internal/shared/infrastructure/persistence"
)

// SQLiteHabitRepository implements domain.Repository using SQLite.
type SQLiteHabitRepository struct {
	db *sql.DB
}

// NewSQLiteHabitRepository creates a new SQLite habit repository.
func NewSQLiteHabitRepository(db *sql.DB) *SQLiteHabitRepository {
	return &SQLiteHabitRepository{db: db}
}

func (r *SQLiteHabitRepository) conn(ctx context.Context) sharedPersistence.SQLiteExecutor {
	return sharedPersistence.SQLiteConn(ctx, r.db)
}

// Save persists a habit and rewrites its ledger entries.
func (r *SQLiteHabitRepository) Save(ctx context.Context, habit *domain.Habit) error {
	conn := r.conn(ctx)

	_, err := conn.ExecContext(ctx, `
		INSERT INTO habits (
			id, owner_id, name, description, today_status,
			streak, longest_streak, last_completed,
			reminder_time, reminder_days, archived,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			description = excluded.description,
			today_status = excluded.today_status,
			streak = excluded.streak,
			longest_streak = excluded.longest_streak,
			last_completed = excluded.last_completed,
			reminder_time = excluded.reminder_time,
			reminder_days = excluded.reminder_days,
			archived = excluded.archived,
			updated_at = excluded.updated_at`,
		habit.ID().String(),
		habit.OwnerID().String(),
		habit.Name(),
		habit.Description(),
		string(habit.TodayStatus()),
		habit.Streak(),
		habit.LongestStreak(),
		timePtrToString(habit.LastCompleted()),
		habit.ReminderTime(),
		weekdaysToCSV(habit.ReminderDays()),
		boolToInt(habit.IsArchived()),
		habit.CreatedAt().UTC().Format(time.RFC3339),
		habit.UpdatedAt().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save habit: %w", err)
	}

	// The ledger is small (days, not events), so a full rewrite keeps the
	// stored entries exactly in sync with untracked-key deletion.
	if _, err := conn.ExecContext(ctx,
		`DELETE FROM habit_entries WHERE habit_id = ?`, habit.ID().String()); err != nil {
		return fmt.Errorf("clear habit entries: %w", err)
	}

	for _, day := range habit.Ledger().TrackedDays() {
		status := habit.Ledger().Get(day)
		if _, err := conn.ExecContext(ctx,
			`INSERT INTO habit_entries (habit_id, day, status) VALUES (?, ?, ?)`,
			habit.ID().String(), day.String(), string(status)); err != nil {
			return fmt.Errorf("save habit entry %s: %w", day, err)
		}
	}

	return nil
}

// FindByID retrieves a habit by its ID. Returns (nil, nil) when absent.
func (r *SQLiteHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	conn := r.conn(ctx)

	row := conn.QueryRowContext(ctx, habitSelect+` WHERE id = ?`, id.String())
	habit, err := r.scanHabit(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return habit, err
}

// FindByOwnerID retrieves all habits for an owner.
func (r *SQLiteHabitRepository) FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `WHERE owner_id = ? ORDER BY created_at`, ownerID.String())
}

// FindActiveByOwnerID retrieves all non-archived habits for an owner.
func (r *SQLiteHabitRepository) FindActiveByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
	return r.findWhere(ctx, `WHERE owner_id = ? AND archived = 0 ORDER BY created_at`, ownerID.String())
}

// FindDueToday retrieves habits scheduled for the current date.
func (r *SQLiteHabitRepository) FindDueToday(ctx context.Context, ownerID uuid.UUID) ([]*domain.Habit, error) {
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
func (r *SQLiteHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	conn := r.conn(ctx)

	if _, err := conn.ExecContext(ctx,
		`DELETE FROM habit_entries WHERE habit_id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete habit entries: %w", err)
	}
	if _, err := conn.ExecContext(ctx,
		`DELETE FROM habits WHERE id = ?`, id.String()); err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}

const habitSelect = `
	SELECT id, owner_id, name, description, today_status,
	       streak, longest_streak, last_completed,
	       reminder_time, reminder_days, archived,
	       created_at, updated_at
	FROM habits`

func (r *SQLiteHabitRepository) findWhere(ctx context.Context, clause string, args ...any) ([]*domain.Habit, error) {
	conn := r.conn(ctx)

	rows, err := conn.QueryContext(ctx, habitSelect+" "+clause, args...)
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

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteHabitRepository) scanHabit(ctx context.Context, row rowScanner) (*domain.Habit, error) {
	var (
		idStr, ownerStr, name, description  string
		todayStatus                         string
		streak, longestStreak, archivedInt  int
		lastCompletedStr                    sql.NullString
		reminderTime, reminderDays          string
		createdAtStr, updatedAtStr          string
	)

	err := row.Scan(
		&idStr, &ownerStr, &name, &description, &todayStatus,
		&streak, &longestStreak, &lastCompletedStr,
		&reminderTime, &reminderDays, &archivedInt,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse habit id: %w", err)
	}
	ownerID, err := uuid.Parse(ownerStr)
	if err != nil {
		return nil, fmt.Errorf("parse owner id: %w", err)
	}

	ledger, err := r.loadLedger(ctx, id)
	if err != nil {
		return nil, err
	}

	createdAt, _ := time.Parse(time.RFC3339, createdAtStr)
	updatedAt, _ := time.Parse(time.RFC3339, updatedAtStr)

	return domain.RehydrateHabit(
		id,
		ownerID,
		name,
		description,
		domain.Status(todayStatus),
		streak,
		longestStreak,
		stringToTimePtr(lastCompletedStr),
		ledger,
		reminderTime,
		weekdaysFromCSV(reminderDays),
		archivedInt != 0,
		createdAt,
		updatedAt,
	), nil
}

func (r *SQLiteHabitRepository) loadLedger(ctx context.Context, habitID uuid.UUID) (*domain.Ledger, error) {
	conn := r.conn(ctx)

	rows, err := conn.QueryContext(ctx,
		`SELECT day, status FROM habit_entries WHERE habit_id = ?`, habitID.String())
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
			// A corrupt row should not take the whole habit down.
			continue
		}
		ledger.Set(day, domain.ParseStatus(statusStr))
	}
	return ledger, rows.Err()
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

func weekdaysToCSV(days []time.Weekday) string {
	if len(days) == 0 {
		return ""
	}
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(int(d))
	}
	return strings.Join(parts, ",")
}

func weekdaysFromCSV(s string) []time.Weekday {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	days := make([]time.Weekday, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		days = append(days, time.Weekday(n))
	}
	return days
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
