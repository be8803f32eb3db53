package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/eduverse/internal/progress"
)

func testRepo(t *testing.T) progress.Repository {
	t.Helper()
	url := os.Getenv("EDUVERSE_DATABASE_URL")
	if url == "" {
		t.Skip("EDUVERSE_DATABASE_URL not set")
	}
	ctx := context.Background()
	db, err := Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(ctx, db))
	return NewRepository(db)
}

func TestStreakUpsert(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	user := uuid.New()

	_, err := repo.GetStreak(ctx, user)
	assert.ErrorIs(t, err, progress.ErrNotFound)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.UpsertStreak(ctx, progress.Streak{UserID: user, Current: 1, Longest: 1, LastActive: day}))
	require.NoError(t, repo.UpsertStreak(ctx, progress.Streak{UserID: user, Current: 2, Longest: 2, LastActive: day.AddDate(0, 0, 1)}))

	s, err := repo.GetStreak(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Current)
	assert.True(t, s.LastActive.Equal(day.AddDate(0, 0, 1)))
}

func TestAchievementsAwardOnce(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	user := uuid.New()

	a := progress.Achievement{ID: uuid.New(), UserID: user, Key: "first_steps", Title: "First Steps", AwardedAt: time.Now().UTC()}
	require.NoError(t, repo.AddAchievement(ctx, a))
	a.ID = uuid.New()
	assert.ErrorIs(t, repo.AddAchievement(ctx, a), progress.ErrAchievementExists)

	as, err := repo.ListAchievements(ctx, user)
	require.NoError(t, err)
	assert.Len(t, as, 1)
}

func TestRoles(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()
	user := uuid.New()

	require.NoError(t, repo.SetRole(ctx, progress.RoleRecord{UserID: user, Role: progress.RoleStudent}))
	require.NoError(t, repo.SetRole(ctx, progress.RoleRecord{UserID: user, Role: progress.RoleTeacher}))
	r, err := repo.GetRole(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, progress.RoleTeacher, r.Role)
}
