package repository

import (
	"context"

	"messenger-api/internal/domain"
	"messenger-api/pkg/database"
	messenger_errors "messenger-api/pkg/errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) MessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

const listMessagesQuery = `
	SELECT m.id, m.chat_id, m.sender_id, m.text, m.created_at, u.username, u.first_name, u.avatar_url
	FROM messages m
	JOIN users u ON u.id = m.sender_id
	WHERE m.chat_id = $1
	ORDER BY m.created_at ASC, m.id ASC`

func (r *PostgresMessageRepository) ListByChat(ctx context.Context, chatID int64) ([]domain.Message, error) {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, listMessagesQuery, chatID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Text, &m.CreatedAt, &m.SenderUsername, &m.SenderFirstName, &m.SenderAvatarURL); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *PostgresMessageRepository) Create(ctx context.Context, in domain.NewMessage) (domain.Message, error) {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return domain.Message{}, err
	}

	query, args, err := psql.
		Insert("messages").
		Columns("chat_id", "sender_id", "text").
		Values(in.ChatID, in.SenderID, in.Text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return domain.Message{}, err
	}

	m := domain.Message{ChatID: in.ChatID, SenderID: in.SenderID, Text: in.Text}
	if err := db.QueryRow(ctx, query, args...).Scan(&m.ID, &m.CreatedAt); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Message{}, messenger_errors.Invalid("Unknown chat or sender")
		}
		return domain.Message{}, err
	}
	return m, nil
}
