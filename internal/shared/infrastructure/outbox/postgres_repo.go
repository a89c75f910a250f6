package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendhq/tend/internal/shared/infrastructure/persistence"
)

// PostgresRepository persists outbox messages in PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed outbox repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const pgMessageColumns = `id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
	payload, metadata, created_at, published_at, retry_count, last_error, next_retry_at,
	dead_lettered_at, dead_letter_reason`

func (r *PostgresRepository) Save(ctx context.Context, msg *Message) error {
	exec := persistence.Executor(ctx, r.pool)

	err := exec.QueryRow(ctx, `
		INSERT INTO outbox_messages (
			event_id, aggregate_type, aggregate_id, event_type, routing_key,
			payload, metadata, created_at, retry_count
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		msg.EventID,
		msg.AggregateType,
		msg.AggregateID,
		msg.EventType,
		msg.RoutingKey,
		msg.Payload,
		msg.Metadata,
		msg.CreatedAt,
		msg.RetryCount,
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("failed to save outbox message: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished returns unpublished, non-dead messages due for delivery.
// FOR UPDATE SKIP LOCKED keeps concurrent workers off the same batch.
func (r *PostgresRepository) GetUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	exec := persistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, `
		SELECT `+pgMessageColumns+`
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= now())
		ORDER BY id
		LIMIT $1
		FOR UPDATE SKIP LOCKED`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query outbox messages: %w", err)
	}
	defer rows.Close()

	return scanPGMessages(rows)
}

func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := persistence.Executor(ctx, r.pool)

	_, err := exec.Exec(ctx, `
		UPDATE outbox_messages
		SET published_at = now(), last_error = NULL, next_retry_at = NULL
		WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark outbox message published: %w", err)
	}
	return nil
}

func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	exec := persistence.Executor(ctx, r.pool)

	_, err := exec.Exec(ctx, `
		UPDATE outbox_messages
		SET retry_count = retry_count + 1, last_error = $2, next_retry_at = $3
		WHERE id = $1`,
		id,
		errMsg,
		nextRetryAt,
	)
	if err != nil {
		return fmt.Errorf("failed to mark outbox message failed: %w", err)
	}
	return nil
}

func (r *PostgresRepository) MarkDead(ctx context.Context, id int64, reason string) error {
	exec := persistence.Executor(ctx, r.pool)

	_, err := exec.Exec(ctx, `
		UPDATE outbox_messages
		SET dead_lettered_at = now(), dead_letter_reason = $2
		WHERE id = $1`,
		id,
		reason,
	)
	if err != nil {
		return fmt.Errorf("failed to dead-letter outbox message: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetFailed(ctx context.Context, maxRetries, limit int) ([]*Message, error) {
	exec := persistence.Executor(ctx, r.pool)

	rows, err := exec.Query(ctx, `
		SELECT `+pgMessageColumns+`
		FROM outbox_messages
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND retry_count > 0
		  AND retry_count < $1
		ORDER BY id
		LIMIT $2`,
		maxRetries,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query failed outbox messages: %w", err)
	}
	defer rows.Close()

	return scanPGMessages(rows)
}

func (r *PostgresRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	exec := persistence.Executor(ctx, r.pool)

	tag, err := exec.Exec(ctx, `
		DELETE FROM outbox_messages
		WHERE published_at IS NOT NULL AND published_at < now() - make_interval(days => $1)`,
		olderThanDays,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old outbox messages: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanPGMessages(rows pgx.Rows) ([]*Message, error) {
	var messages []*Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(
			&msg.ID,
			&msg.EventID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.EventType,
			&msg.RoutingKey,
			&msg.Payload,
			&msg.Metadata,
			&msg.CreatedAt,
			&msg.PublishedAt,
			&msg.RetryCount,
			&msg.LastError,
			&msg.NextRetryAt,
			&msg.DeadLetteredAt,
			&msg.DeadLetterReason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate outbox messages: %w", err)
	}
	return messages, nil
}
