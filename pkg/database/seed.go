package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// SeedConfig holds configuration for seeding the database
type SeedConfig struct {
	Password      string
	TestUserCount int
}

// DefaultSeedConfig returns default seed configuration
func DefaultSeedConfig() *SeedConfig {
	return &SeedConfig{
		Password:      "Test@123!",
		TestUserCount: 6,
	}
}

// SeedResult holds the result of the seeding operation
type SeedResult struct {
	UserIDs  map[string]int64
	ChatIDs  []int64
	Messages int
	Blocks   int
}

type seedUser struct {
	username  string
	email     string
	firstName string
	lastName  string
}

var testUsers = []seedUser{
	{"@alice", "alice@test.com", "Alice", "Johnson"},
	{"@bob", "bob@test.com", "Bob", "Smith"},
	{"@charlie", "charlie@test.com", "Charlie", "Brown"},
	{"@diana", "diana@test.com", "Diana", "Prince"},
	{"@edward", "edward@test.com", "Edward", "Chen"},
	{"@fiona", "fiona@test.com", "Fiona", "Green"},
	{"@george", "george@test.com", "George", "Miller"},
	{"@hannah", "hannah@test.com", "Hannah", "White"},
}

var testChats = []struct {
	a, b     string
	messages []string
}{
	{"@alice", "@bob", []string{"Hey Bob!", "Hi Alice, how are you?", "Great, thanks for asking."}},
	{"@alice", "@charlie", []string{"Did you push the fix?"}},
	{"@bob", "@diana", nil},
}

// Diana hides Edward from her listings.
var testBlocks = [][2]string{{"@diana", "@edward"}}

// Seed fills an empty or partially seeded database with development data.
// Running it twice does not duplicate users, chats or block edges.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg *SeedConfig) (*SeedResult, error) {
	if pool == nil {
		return nil, ErrNotInitialized
	}
	if cfg == nil {
		cfg = DefaultSeedConfig()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	result := &SeedResult{UserIDs: make(map[string]int64)}
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, u := range testUsers {
			if i >= cfg.TestUserCount {
				break
			}
			id, err := seedUserRow(ctx, tx, u, string(hash))
			if err != nil {
				return fmt.Errorf("failed to create test user %s: %w", u.username, err)
			}
			result.UserIDs[u.username] = id
		}

		for _, c := range testChats {
			a, okA := result.UserIDs[c.a]
			b, okB := result.UserIDs[c.b]
			if !okA || !okB {
				continue
			}
			chatID, created, err := seedChat(ctx, tx, a, b)
			if err != nil {
				return fmt.Errorf("failed to create chat %s/%s: %w", c.a, c.b, err)
			}
			result.ChatIDs = append(result.ChatIDs, chatID)
			if !created {
				continue
			}
			for i, text := range c.messages {
				sender := a
				if i%2 == 1 {
					sender = b
				}
				if _, err := tx.Exec(ctx,
					`INSERT INTO messages (chat_id, sender_id, text, created_at)
					 VALUES ($1, $2, $3, now() + make_interval(secs => $4))`,
					chatID, sender, text, i); err != nil {
					return err
				}
				result.Messages++
			}
		}

		for _, edge := range testBlocks {
			blocker, okA := result.UserIDs[edge[0]]
			blocked, okB := result.UserIDs[edge[1]]
			if !okA || !okB {
				continue
			}
			tag, err := tx.Exec(ctx,
				`INSERT INTO blocked_users (blocker_id, blocked_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				blocker, blocked)
			if err != nil {
				return err
			}
			result.Blocks += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Seeded %d users, %d chats, %d messages", len(result.UserIDs), len(result.ChatIDs), result.Messages)
	return result, nil
}

func seedUserRow(ctx context.Context, tx pgx.Tx, u seedUser, hash string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, first_name, last_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (username) DO UPDATE SET username = EXCLUDED.username
		RETURNING id`,
		u.username, u.email, hash, u.firstName, u.lastName,
	).Scan(&id)
	return id, err
}

func seedChat(ctx context.Context, tx pgx.Tx, a, b int64) (int64, bool, error) {
	var id int64
	err := tx.QueryRow(ctx, `
		SELECT c.id FROM chats c
		JOIN chat_participants p1 ON p1.chat_id = c.id AND p1.user_id = $1
		JOIN chat_participants p2 ON p2.chat_id = c.id AND p2.user_id = $2
		ORDER BY c.id LIMIT 1`, a, b).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, err
	}

	if err := tx.QueryRow(ctx, `INSERT INTO chats DEFAULT VALUES RETURNING id`).Scan(&id); err != nil {
		return 0, false, err
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO chat_participants (chat_id, user_id) VALUES ($1, $2), ($1, $3)`, id, a, b); err != nil {
		return 0, false, err
	}
	return id, true, nil
}
