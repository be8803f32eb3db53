// Package inmem is a map-backed progress.Repository for tests and
// single-process runs without a database.
package inmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/san-kum/eduverse/internal/progress"
)

type repository struct {
	mutex        sync.RWMutex
	streaks      map[uuid.UUID]progress.Streak
	achievements map[uuid.UUID][]progress.Achievement
	roles        map[uuid.UUID]progress.Role
}

var _ progress.Repository = (*repository)(nil)

func NewRepository() progress.Repository {
	return &repository{
		streaks:      make(map[uuid.UUID]progress.Streak),
		achievements: make(map[uuid.UUID][]progress.Achievement),
		roles:        make(map[uuid.UUID]progress.Role),
	}
}

func (repo *repository) GetStreak(_ context.Context, user uuid.UUID) (progress.Streak, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	s, ok := repo.streaks[user]
	if !ok {
		return progress.Streak{}, progress.ErrNotFound
	}
	return s, nil
}

func (repo *repository) UpsertStreak(_ context.Context, s progress.Streak) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	repo.streaks[s.UserID] = s
	return nil
}

func (repo *repository) ListAchievements(_ context.Context, user uuid.UUID) ([]progress.Achievement, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	as := make([]progress.Achievement, len(repo.achievements[user]))
	copy(as, repo.achievements[user])
	sort.SliceStable(as, func(i, j int) bool { return as[i].AwardedAt.Before(as[j].AwardedAt) })
	return as, nil
}

func (repo *repository) AddAchievement(_ context.Context, a progress.Achievement) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, have := range repo.achievements[a.UserID] {
		if have.Key == a.Key {
			return progress.ErrAchievementExists
		}
	}
	repo.achievements[a.UserID] = append(repo.achievements[a.UserID], a)
	return nil
}

func (repo *repository) GetRole(_ context.Context, user uuid.UUID) (progress.RoleRecord, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	r, ok := repo.roles[user]
	if !ok {
		return progress.RoleRecord{}, progress.ErrNotFound
	}
	return progress.RoleRecord{UserID: user, Role: r}, nil
}

func (repo *repository) SetRole(_ context.Context, r progress.RoleRecord) error {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	repo.roles[r.UserID] = r.Role
	return nil
}
