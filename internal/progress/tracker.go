package progress

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/eduverse/internal/logging"
)

// Tracker is the call-site face of Service. Store failures are logged and
// reported as ok=false so the caller can carry on.
type Tracker struct {
	svc *Service
	log logging.Logger
}

func NewTracker(svc *Service, log logging.Logger) *Tracker {
	if log == nil {
		log = logging.Discard()
	}
	return &Tracker{svc: svc, log: log}
}

func (t *Tracker) RecordActivity(ctx context.Context, user uuid.UUID, at time.Time) (ActivityResult, bool) {
	res, err := t.svc.RecordActivity(ctx, user, at)
	if err != nil {
		t.log.Errorf("progress: record activity for %s: %v", user, err)
		return ActivityResult{}, false
	}
	return res, true
}

func (t *Tracker) Streak(ctx context.Context, user uuid.UUID) (Streak, bool) {
	s, err := t.svc.Streak(ctx, user)
	if err != nil {
		t.log.Errorf("progress: streak for %s: %v", user, err)
		return Streak{}, false
	}
	return s, true
}

func (t *Tracker) Achievements(ctx context.Context, user uuid.UUID) ([]Achievement, bool) {
	as, err := t.svc.Achievements(ctx, user)
	if err != nil {
		t.log.Errorf("progress: achievements for %s: %v", user, err)
		return nil, false
	}
	return as, true
}

func (t *Tracker) SetRole(ctx context.Context, user uuid.UUID, role string) (RoleRecord, bool) {
	r, err := t.svc.SetRole(ctx, user, role)
	if err != nil {
		t.log.Errorf("progress: set role for %s: %v", user, err)
		return RoleRecord{}, false
	}
	return r, true
}
