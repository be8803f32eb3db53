package progress

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock replaces the clock used when callers pass a zero time.
func (svc *Service) WithClock(now func() time.Time) *Service {
	svc.now = now
	return svc
}

// ActivityResult reports the streak after an activity and any awards it
// earned. Changed is false when nothing was written.
type ActivityResult struct {
	Streak  Streak        `json:"streak"`
	Awarded []Achievement `json:"awarded"`
	Changed bool          `json:"changed"`
}

// RecordActivity counts an activity at `at` (now when zero) toward the
// user's streak. Activity on the same UTC day, or older than the last
// recorded day, leaves the record untouched.
func (svc *Service) RecordActivity(ctx context.Context, user uuid.UUID, at time.Time) (ActivityResult, error) {
	if at.IsZero() {
		at = svc.now()
	}
	at = at.UTC()

	cur, err := svc.repo.GetStreak(ctx, user)
	switch {
	case errors.Is(err, ErrNotFound):
		cur = Streak{UserID: user}
	case err != nil:
		return ActivityResult{}, errors.Wrap(err, "progress: get streak")
	}

	next, changed := advance(cur, at)
	res := ActivityResult{Streak: next, Awarded: []Achievement{}}
	if !changed {
		return res, nil
	}
	if err := svc.repo.UpsertStreak(ctx, next); err != nil {
		return ActivityResult{}, errors.Wrap(err, "progress: upsert streak")
	}
	res.Changed = true

	awarded, err := svc.award(ctx, user, next.Current, at)
	if err != nil {
		return res, err
	}
	res.Awarded = awarded
	return res, nil
}

func advance(cur Streak, at time.Time) (Streak, bool) {
	today := day(at)
	if cur.Current == 0 || cur.LastActive.IsZero() {
		return Streak{UserID: cur.UserID, Current: 1, Longest: max(1, cur.Longest), LastActive: today}, true
	}
	last := day(cur.LastActive)
	if !today.After(last) {
		return cur, false
	}
	next := cur
	next.LastActive = today
	if today.Equal(last.AddDate(0, 0, 1)) {
		next.Current++
	} else {
		next.Current = 1
	}
	next.Longest = max(next.Longest, next.Current)
	return next, true
}

func (svc *Service) award(ctx context.Context, user uuid.UUID, streak int, at time.Time) ([]Achievement, error) {
	have, err := svc.repo.ListAchievements(ctx, user)
	if err != nil {
		return nil, errors.Wrap(err, "progress: list achievements")
	}
	owned := make(map[string]bool, len(have))
	for _, a := range have {
		owned[a.Key] = true
	}

	awarded := []Achievement{}
	for _, aw := range Awards {
		if streak < aw.Threshold || owned[aw.Key] {
			continue
		}
		a := Achievement{ID: uuid.New(), UserID: user, Key: aw.Key, Title: aw.Title, AwardedAt: at}
		err := svc.repo.AddAchievement(ctx, a)
		if errors.Is(err, ErrAchievementExists) {
			continue
		}
		if err != nil {
			return awarded, errors.Wrapf(err, "progress: award %s", aw.Key)
		}
		awarded = append(awarded, a)
	}
	return awarded, nil
}

// Streak returns the stored streak, or a zero streak for unknown users.
func (svc *Service) Streak(ctx context.Context, user uuid.UUID) (Streak, error) {
	s, err := svc.repo.GetStreak(ctx, user)
	if errors.Is(err, ErrNotFound) {
		return Streak{UserID: user}, nil
	}
	return s, err
}

func (svc *Service) Achievements(ctx context.Context, user uuid.UUID) ([]Achievement, error) {
	return svc.repo.ListAchievements(ctx, user)
}

func (svc *Service) SetRole(ctx context.Context, user uuid.UUID, role string) (RoleRecord, error) {
	r, err := ParseRole(role)
	if err != nil {
		return RoleRecord{}, err
	}
	rec := RoleRecord{UserID: user, Role: r}
	if err := svc.repo.SetRole(ctx, rec); err != nil {
		return RoleRecord{}, errors.Wrap(err, "progress: set role")
	}
	return rec, nil
}

func (svc *Service) Role(ctx context.Context, user uuid.UUID) (RoleRecord, error) {
	return svc.repo.GetRole(ctx, user)
}
