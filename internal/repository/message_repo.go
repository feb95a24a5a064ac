package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"resumate-backend/internal/models"
)

type MessageRepo struct {
	pool *pgxpool.Pool
}

func NewMessageRepo(pool *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{pool: pool}
}

// ListByUser returns the user's full conversation history in insertion
// order. The seq tiebreaker keeps a pair ordered when both rows share the
// transaction timestamp.
func (r *MessageRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Message, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, role, content, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at ASC, seq ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// AppendPair persists a user turn and its assistant reply in a single
// transaction so concurrent chats can never interleave half a pair.
func (r *MessageRepo) AppendPair(ctx context.Context, userID uuid.UUID, userContent, assistantContent string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	const insert = `INSERT INTO messages (id, user_id, role, content) VALUES ($1, $2, $3, $4)`

	if _, err := tx.Exec(ctx, insert, uuid.New(), userID, models.RoleUser, userContent); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, insert, uuid.New(), userID, models.RoleAssistant, assistantContent); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// DeleteByUser clears the conversation history. Stored CV/JD context on the
// user row is not touched.
func (r *MessageRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM messages WHERE user_id = $1", userID)
	return err
}
