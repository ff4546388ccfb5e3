package repository

import (
	"context"
	"errors"

	"messenger-api/internal/domain"
	"messenger-api/pkg/database"
	messenger_errors "messenger-api/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &PostgresChatRepository{pool: pool}
}

const listChatsQuery = `
	SELECT c.id, u.id, u.username, u.first_name, u.last_name, u.avatar_url, lm.text, lm.created_at
	FROM chats c
	JOIN chat_participants cp1 ON cp1.chat_id = c.id AND cp1.user_id = $1
	JOIN chat_participants cp2 ON cp2.chat_id = c.id AND cp2.user_id <> $1
	JOIN users u ON u.id = cp2.user_id
	LEFT JOIN LATERAL (
		SELECT m.text, m.created_at
		FROM messages m
		WHERE m.chat_id = c.id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT 1
	) lm ON true
	WHERE NOT EXISTS (
		SELECT 1 FROM blocked_users b WHERE b.blocker_id = $1 AND b.blocked_id = u.id
	)
	ORDER BY lm.created_at DESC NULLS LAST, c.id DESC`

func (r *PostgresChatRepository) ListForUser(ctx context.Context, userID int64) ([]domain.ChatSummary, error) {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return nil, err
	}
	rows, err := db.Query(ctx, listChatsQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	chats := []domain.ChatSummary{}
	for rows.Next() {
		var s domain.ChatSummary
		p := &s.Counterpart
		if err := rows.Scan(&s.ChatID, &p.ID, &p.Username, &p.FirstName, &p.LastName, &p.AvatarURL, &s.LastMessage, &s.LastMessageTime); err != nil {
			return nil, err
		}
		chats = append(chats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return chats, nil
}

const findDirectChatQuery = `
	SELECT c.id
	FROM chats c
	JOIN chat_participants cp1 ON cp1.chat_id = c.id AND cp1.user_id = $1
	JOIN chat_participants cp2 ON cp2.chat_id = c.id AND cp2.user_id = $2
	ORDER BY c.id
	LIMIT 1`

func (r *PostgresChatRepository) FindDirect(ctx context.Context, userA, userB int64) (int64, bool, error) {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return 0, false, err
	}
	var id int64
	err = db.QueryRow(ctx, findDirectChatQuery, userA, userB).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}

func (r *PostgresChatRepository) CreateDirect(ctx context.Context, userA, userB int64) (int64, error) {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return 0, err
	}

	var chatID int64
	err = WithTx(ctx, db, func(tx database.DBTX) error {
		if err := tx.QueryRow(ctx, `INSERT INTO chats DEFAULT VALUES RETURNING id`).Scan(&chatID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO chat_participants (chat_id, user_id) VALUES ($1, $2), ($1, $3)`,
			chatID, userA, userB,
		)
		return err
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, messenger_errors.Invalid("Unknown user")
		}
		return 0, err
	}
	return chatID, nil
}
