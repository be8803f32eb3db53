// Package progress keeps per-user learning records: daily activity streaks,
// one-time achievements and the user's role.
package progress

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// errors
	ErrNotFound          = errors.New("progress: record not found")
	ErrAchievementExists = errors.New("progress: achievement already awarded")
	ErrInvalidRole       = errors.New("progress: role must be student or teacher")
)

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleStudent, RoleTeacher:
		return r, nil
	}
	return "", errors.Wrapf(ErrInvalidRole, "got %q", s)
}

type (
	Streak struct {
		UserID     uuid.UUID `db:"user_id" json:"userId"`
		Current    int       `db:"current_streak" json:"current"`
		Longest    int       `db:"longest_streak" json:"longest"`
		LastActive time.Time `db:"last_active" json:"lastActive"`
	}

	Achievement struct {
		ID        uuid.UUID `db:"id" json:"id"`
		UserID    uuid.UUID `db:"user_id" json:"userId"`
		Key       string    `db:"achievement_key" json:"key"`
		Title     string    `db:"title" json:"title"`
		AwardedAt time.Time `db:"awarded_at" json:"awardedAt"`
	}

	RoleRecord struct {
		UserID uuid.UUID `db:"user_id" json:"userId"`
		Role   Role      `db:"role" json:"role"`
	}
)

// Award is a catalog entry: Threshold is the streak length that earns it.
type Award struct {
	Key       string
	Title     string
	Threshold int
}

// Awards is ordered by threshold.
var Awards = []Award{
	{Key: "first_steps", Title: "First Steps", Threshold: 1},
	{Key: "streak_3", Title: "Three Day Streak", Threshold: 3},
	{Key: "streak_7", Title: "Week Warrior", Threshold: 7},
	{Key: "streak_30", Title: "Monthly Master", Threshold: 30},
}

// day truncates t to its UTC calendar day.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
