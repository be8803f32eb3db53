package progress

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the record store contract. Getters return ErrNotFound when
// no row exists; AddAchievement returns ErrAchievementExists for a repeated
// (user, key) pair.
type Repository interface {
	GetStreak(ctx context.Context, user uuid.UUID) (Streak, error)
	UpsertStreak(ctx context.Context, s Streak) error
	ListAchievements(ctx context.Context, user uuid.UUID) ([]Achievement, error)
	AddAchievement(ctx context.Context, a Achievement) error
	GetRole(ctx context.Context, user uuid.UUID) (RoleRecord, error)
	SetRole(ctx context.Context, r RoleRecord) error
}
