package repository

import (
	"context"
	"errors"

	"messenger-api/internal/domain"
	"messenger-api/pkg/database"
	messenger_errors "messenger-api/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Search(ctx context.Context, handlePrefix string, callerID *int64, limit int) ([]domain.PublicProfile, error) {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return nil, err
	}

	query, args, err := searchUsersQuery(handlePrefix, callerID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.PublicProfile{}
	for rows.Next() {
		var p domain.PublicProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.FirstName, &p.LastName, &p.AvatarURL); err != nil {
			return nil, err
		}
		users = append(users, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile sets only the present fields plus updated_at in one statement.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, userID int64, update domain.ProfileUpdate) (domain.User, error) {
	assignments := update.Assignments()
	if len(assignments) == 0 {
		return domain.User{}, messenger_errors.Invalid("No fields to update")
	}

	db, err := database.From(ctx, r.pool)
	if err != nil {
		return domain.User{}, err
	}

	query, args, err := updateProfileQuery(userID, assignments)
	if err != nil {
		return domain.User{}, err
	}

	var u domain.User
	err = db.QueryRow(ctx, query, args...).Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.AvatarURL, &u.Language, &u.Theme,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, messenger_errors.NotFound("User not found")
		}
		if isUniqueViolation(err) {
			return domain.User{}, messenger_errors.Conflict("Username or email already taken")
		}
		return domain.User{}, err
	}
	return u, nil
}

func (r *PostgresUserRepository) Block(ctx context.Context, edge domain.BlockEdge) error {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return err
	}
	query, args, err := psql.
		Insert("blocked_users").
		Columns("blocker_id", "blocked_id").
		Values(edge.BlockerID, edge.BlockedID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := db.Exec(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return messenger_errors.Invalid("Unknown user")
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) Unblock(ctx context.Context, edge domain.BlockEdge) error {
	db, err := database.From(ctx, r.pool)
	if err != nil {
		return err
	}
	query, args, err := psql.
		Delete("blocked_users").
		Where(sq.Eq{"blocker_id": edge.BlockerID, "blocked_id": edge.BlockedID}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = db.Exec(ctx, query, args...)
	return err
}

func searchUsersQuery(handlePrefix string, callerID *int64, limit int) (string, []any, error) {
	q := psql.
		Select("id", "username", "first_name", "last_name", "avatar_url").
		From("users").
		Where(sq.ILike{"username": handlePrefix + "%"})
	if callerID != nil {
		q = q.
			Where(sq.NotEq{"id": *callerID}).
			Where("id NOT IN (SELECT blocked_id FROM blocked_users WHERE blocker_id = ?)", *callerID)
	}
	return q.OrderBy("username").Limit(uint64(limit)).ToSql()
}

func updateProfileQuery(userID int64, assignments []domain.Assignment) (string, []any, error) {
	b := psql.Update("users")
	for _, a := range assignments {
		b = b.Set(a.Column, a.Value)
	}
	return b.
		Set("updated_at", sq.Expr("CURRENT_TIMESTAMP")).
		Where(sq.Eq{"id": userID}).
		Suffix("RETURNING id, username, email, first_name, last_name, avatar_url, language, theme").
		ToSql()
}
