// Package storage provides persistence for Hearth.
package storage

import (
	"database/sql"
	"time"

	"github.com/hearthbot/hearth/internal/core"
)

// UserStore handles user persistence
type UserStore struct {
	db *DB
}

// NewUserStore creates a new user store
func NewUserStore(db *DB) *UserStore {
	return &UserStore{db: db}
}

// GetOrCreate returns the user for a Discord ID, creating the row on
// first interaction. The username is refreshed on every call so display
// names stay current.
func (s *UserStore) GetOrCreate(discordID, username string) (*core.User, error) {
	user, err := s.GetByDiscordID(discordID)
	if err == nil {
		if user.Username != username && username != "" {
			_, err = s.db.conn.Exec(
				`UPDATE users SET username = ? WHERE user_id = ?`, username, user.ID)
			if err != nil {
				return nil, err
			}
			user.Username = username
		}
		return user, nil
	}
	if err != core.ErrUserNotFound {
		return nil, err
	}

	now := time.Now().UTC()
	res, err := s.db.conn.Exec(`
		INSERT INTO users (discord_id, username, timezone, created_at)
		VALUES (?, ?, 'UTC', ?)
	`, discordID, username, now)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &core.User{
		ID:        core.UserID(id),
		DiscordID: discordID,
		Username:  username,
		Timezone:  "UTC",
		CreatedAt: now,
	}, nil
}

// GetByDiscordID returns a user by Discord snowflake
func (s *UserStore) GetByDiscordID(discordID string) (*core.User, error) {
	return s.scanOne(s.db.conn.QueryRow(`
		SELECT user_id, discord_id, username, timezone, created_at
		FROM users WHERE discord_id = ?
	`, discordID))
}

// GetByID returns a user by local ID
func (s *UserStore) GetByID(id core.UserID) (*core.User, error) {
	return s.scanOne(s.db.conn.QueryRow(`
		SELECT user_id, discord_id, username, timezone, created_at
		FROM users WHERE user_id = ?
	`, id))
}

// SetTimezone updates a user's timezone
func (s *UserStore) SetTimezone(id core.UserID, tz string) error {
	res, err := s.db.conn.Exec(`UPDATE users SET timezone = ? WHERE user_id = ?`, tz, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return core.ErrUserNotFound
	}
	return nil
}

func (s *UserStore) scanOne(row *sql.Row) (*core.User, error) {
	user := &core.User{}
	err := row.Scan(&user.ID, &user.DiscordID, &user.Username, &user.Timezone, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, core.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
