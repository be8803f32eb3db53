// Package postgres stores progress records in PostgreSQL through sqlx.
package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/progress"
)

const schema = `
CREATE TABLE IF NOT EXISTS user_streaks (
	user_id        UUID PRIMARY KEY,
	current_streak INTEGER NOT NULL DEFAULT 0,
	longest_streak INTEGER NOT NULL DEFAULT 0,
	last_active    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS user_achievements (
	id              UUID PRIMARY KEY,
	user_id         UUID NOT NULL,
	achievement_key TEXT NOT NULL,
	title           TEXT NOT NULL,
	awarded_at      TIMESTAMPTZ NOT NULL,
	UNIQUE (user_id, achievement_key)
);

CREATE TABLE IF NOT EXISTS user_roles (
	user_id UUID PRIMARY KEY,
	role    TEXT NOT NULL CHECK (role IN ('student', 'teacher'))
);
`

type repository struct {
	db *sqlx.DB
}

var _ progress.Repository = (*repository)(nil)

// Open connects with the lib/pq driver and verifies the connection.
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: connect")
	}
	return db, nil
}

// Migrate creates the progress tables when missing.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return errors.Wrap(err, "postgres: migrate")
}

func NewRepository(db *sqlx.DB) progress.Repository {
	return &repository{db: db}
}

func (repo *repository) GetStreak(ctx context.Context, user uuid.UUID) (progress.Streak, error) {
	var s progress.Streak
	err := repo.db.GetContext(ctx, &s,
		`SELECT user_id, current_streak, longest_streak, last_active FROM user_streaks WHERE user_id = $1`, user)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.Streak{}, progress.ErrNotFound
	}
	if err != nil {
		return progress.Streak{}, errors.Wrap(err, "postgres: get streak")
	}
	s.LastActive = s.LastActive.UTC()
	return s, nil
}

func (repo *repository) UpsertStreak(ctx context.Context, s progress.Streak) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO user_streaks (user_id, current_streak, longest_streak, last_active)
		VALUES (:user_id, :current_streak, :longest_streak, :last_active)
		ON CONFLICT (user_id) DO UPDATE SET
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			last_active = EXCLUDED.last_active`, s)
	return errors.Wrap(err, "postgres: upsert streak")
}

func (repo *repository) ListAchievements(ctx context.Context, user uuid.UUID) ([]progress.Achievement, error) {
	as := []progress.Achievement{}
	err := repo.db.SelectContext(ctx, &as, `
		SELECT id, user_id, achievement_key, title, awarded_at
		FROM user_achievements WHERE user_id = $1 ORDER BY awarded_at`, user)
	if err != nil {
		return nil, errors.Wrap(err, "postgres: list achievements")
	}
	return as, nil
}

func (repo *repository) AddAchievement(ctx context.Context, a progress.Achievement) error {
	res, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_key, title, awarded_at)
		VALUES (:id, :user_id, :achievement_key, :title, :awarded_at)
		ON CONFLICT (user_id, achievement_key) DO NOTHING`, a)
	if err != nil {
		return errors.Wrap(err, "postgres: add achievement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "postgres: add achievement")
	}
	if n == 0 {
		return progress.ErrAchievementExists
	}
	return nil
}

func (repo *repository) GetRole(ctx context.Context, user uuid.UUID) (progress.RoleRecord, error) {
	var r progress.RoleRecord
	err := repo.db.GetContext(ctx, &r, `SELECT user_id, role FROM user_roles WHERE user_id = $1`, user)
	if errors.Is(err, sql.ErrNoRows) {
		return progress.RoleRecord{}, progress.ErrNotFound
	}
	if err != nil {
		return progress.RoleRecord{}, errors.Wrap(err, "postgres: get role")
	}
	return r, nil
}

func (repo *repository) SetRole(ctx context.Context, r progress.RoleRecord) error {
	_, err := repo.db.NamedExecContext(ctx, `
		INSERT INTO user_roles (user_id, role) VALUES (:user_id, :role)
		ON CONFLICT (user_id) DO UPDATE SET role = EXCLUDED.role`, r)
	return errors.Wrap(err, "postgres: set role")
}
