package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tendhq/tend/internal/shared/infrastructure/persistence"
)

// SQLiteRepository persists outbox messages in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a SQLite-backed outbox repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteMessageColumns = `id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
	payload, metadata, created_at, published_at, retry_count, last_error, next_retry_at,
	dead_lettered_at, dead_letter_reason`

// Save persists a single message, joining the transaction in ctx when present.
func (r *SQLiteRepository) Save(ctx context.Context, msg *Message) error {
	exec := persistence.SQLiteConn(ctx, r.db)

	result, err := exec.ExecContext(ctx, `
		INSERT INTO outbox_messages (
			event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, retry_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.EventType,
		msg.RoutingKey,
		string(msg.Payload),
		string(msg.Metadata),
		msg.CreatedAt.UTC().Format(time.RFC3339Nano),
		msg.RetryCount,
	)
	if err != nil {
		return fmt.Errorf("failed to save outbox message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read outbox message id: %w", err)
	}
	msg.ID = id
	return nil
}

// SaveBatch persists messages in order.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished returns unpublished, non-dead messages that are due for
// delivery, oldest first.
func (r *SQLiteRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	exec := persistence.SQLiteConn(ctx, r.db)

	rows, err := exec.QueryContext(ctx, `
		SELECT `+sqliteMessageColumns+`
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY id
		LIMIT ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox messages: %w", err)
	}
	defer rows.Close()

	return scanSQLiteMessages(rows)
}

// MarkPublished stamps the message as delivered.
func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := persistence.SQLiteConn(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		UPDATE outbox_messages
		SET published_at = ?, last_error = NULL, next_retry_at = NULL
		WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark outbox message published: %w", err)
	}
	return nil
}

// MarkFailed records a delivery failure and schedules the next attempt.
func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	exec := persistence.SQLiteConn(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		UPDATE outbox_messages
		SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
		WHERE id = ?`,
		errMsg,
		nextRetryAt.UTC().Format(time.RFC3339Nano),
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark outbox message failed: %w", err)
	}
	return nil
}

// MarkDead removes the message from delivery rotation permanently.
func (r *SQLiteRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	exec := persistence.SQLiteConn(ctx, r.db)

	_, err := exec.ExecContext(ctx, `
		UPDATE outbox_messages
		SET dead_lettered_at = ?, dead_letter_reason = ?
		WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano),
		reason,
	)
	if err != nil {
		return fmt.Errorf("failed to dead-letter outbox message: %w", err)
	}
	return nil
}

// GetFailed returns messages that have failed at least once but are not dead.
func (r *SQLiteRepository) GetFailed(ctx context.Context, maxRetries, limit int) ([]*Message, error) {
	exec := persistence.SQLiteConn(ctx, r.db)

	rows, err := exec.QueryContext(ctx, `
		SELECT `+sqliteMessageColumns+`
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND retry_count > 0
		  AND retry_count < ?
		ORDER BY id
		LIMIT ?`,
		maxRetries,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query failed outbox messages: %w", err)
	}
	defer rows.Close()

	return scanSQLiteMessages(rows)
}

// DeleteOld removes published messages older than the retention window.
func (r *SQLiteRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	exec := persistence.SQLiteConn(ctx, r.db)

	cutoff := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	result, err := exec.ExecContext(ctx, `
		DELETE FROM outbox_messages
		WHERE published_at IS NOT NULL AND published_at < ?`,
		cutoff.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old outbox messages: %w", err)
	}
	return result.RowsAffected()
}

func scanSQLiteMessages(rows *sql.Rows) ([]*Message, error) {
	var messages []*Message
	for rows.Next() {
		var (
			msg              Message
			payload          string
			metadata         sql.NullString
			createdAt        string
			publishedAt      sql.NullString
			lastError        sql.NullString
			nextRetryAt      sql.NullString
			deadLetteredAt   sql.NullString
			deadLetterReason sql.NullString
		)
		if err := rows.Scan(
			&msg.ID,
			&msg.EventID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.EventType,
			&msg.RoutingKey,
			&payload,
			&metadata,
			&createdAt,
			&publishedAt,
			&msg.RetryCount,
			&lastError,
			&nextRetryAt,
			&deadLetteredAt,
			&deadLetterReason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}

		msg.Payload = []byte(payload)
		if metadata.Valid {
			msg.Metadata = []byte(metadata.String)
		}

		created, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse outbox created_at: %w", err)
		}
		msg.CreatedAt = created

		msg.PublishedAt, err = parseNullableTime(publishedAt)
		if err != nil {
			return nil, err
		}
		msg.NextRetryAt, err = parseNullableTime(nextRetryAt)
		if err != nil {
			return nil, err
		}
		msg.DeadLetteredAt, err = parseNullableTime(deadLetteredAt)
		if err != nil {
			return nil, err
		}
		if lastError.Valid {
			msg.LastError = &lastError.String
		}
		if deadLetterReason.Valid {
			msg.DeadLetterReason = &deadLetterReason.String
		}

		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox messages: %w", err)
	}
	return messages, nil
}

func parseNullableTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, v.String)
	if err != nil {
		return nil, fmt.Errorf("failed to parse outbox timestamp: %w", err)
	}
	return &t, nil
}
