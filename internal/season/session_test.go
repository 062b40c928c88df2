package season

import (
	"errors"
	"testing"
	"time"
)

// fakeClock implements Clock with a settable time.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestStoreCreateAndGet(t *testing.T) {
	st := NewStore(time.Hour, newFakeClock())

	s := st.Create()
	if s.ID == "" {
		t.Fatalf("expected a session ID")
	}

	got, err := st.Get(s.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != s {
		t.Fatalf("expected the same session instance")
	}

	if _, err := st.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	st := NewStore(time.Hour, newFakeClock())
	a := st.Create()
	b := st.Create()

	err := st.Do(a.ID, func(w *Wizard) error {
		return w.Draft().AddWeek(DivisionPremier, WeekBye)
	})
	if err != nil {
		t.Fatalf("mutate session a: %v", err)
	}

	var aLen, bLen int
	st.Do(a.ID, func(w *Wizard) error { aLen = len(w.Draft().Schedules[DivisionPremier]); return nil })
	st.Do(b.ID, func(w *Wizard) error { bLen = len(w.Draft().Schedules[DivisionPremier]); return nil })
	if aLen != bLen+1 {
		t.Fatalf("expected independent drafts, got lengths %d and %d", aLen, bLen)
	}
}

func TestStoreRemoveAbandons(t *testing.T) {
	st := NewStore(time.Hour, newFakeClock())
	s := st.Create()

	if err := st.Remove(s.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := st.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected removed session to be gone, got %v", err)
	}
	if err := st.Remove(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on double remove, got %v", err)
	}
}

func TestStoreRemoveRejectsSubmitting(t *testing.T) {
	clock := newFakeClock()
	st := NewStore(time.Hour, clock)

	s := st.Create()
	err := s.Do(clock, func(w *Wizard) error {
		completeDraft(t, w)
		advanceTo(t, w, StepReview)
		_, err := w.BeginSubmit()
		return err
	})
	if err != nil {
		t.Fatalf("begin submit: %v", err)
	}

	if err := st.Remove(s.ID); !errors.Is(err, ErrSubmitInProgress) {
		t.Fatalf("expected ErrSubmitInProgress, got %v", err)
	}
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("submitting session must survive removal: %v", err)
	}

	// Once the submission resolves the session can go.
	err = s.Do(clock, func(w *Wizard) error { return w.FinishSubmit(false) })
	if err != nil {
		t.Fatalf("finish submit: %v", err)
	}
	if err := st.Remove(s.ID); err != nil {
		t.Fatalf("remove after resolve: %v", err)
	}
}

func TestStoreSweepExpiresIdleSessions(t *testing.T) {
	clock := newFakeClock()
	st := NewStore(30*time.Minute, clock)

	stale := st.Create()
	clock.advance(20 * time.Minute)
	fresh := st.Create()
	clock.advance(15 * time.Minute)

	// stale is 35m idle, fresh 15m.
	if n := st.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept session, got %d", n)
	}
	if _, err := st.Get(stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected stale session to be swept")
	}
	if _, err := st.Get(fresh.ID); err != nil {
		t.Fatalf("expected fresh session to survive: %v", err)
	}
}

func TestStoreSweepSkipsSubmitting(t *testing.T) {
	clock := newFakeClock()
	st := NewStore(time.Minute, clock)

	s := st.Create()
	err := s.Do(clock, func(w *Wizard) error {
		completeDraft(t, w)
		advanceTo(t, w, StepReview)
		_, err := w.BeginSubmit()
		return err
	})
	if err != nil {
		t.Fatalf("begin submit: %v", err)
	}

	clock.advance(time.Hour)
	if n := st.Sweep(); n != 0 {
		t.Fatalf("expected submitting session to be skipped, swept %d", n)
	}
	if _, err := st.Get(s.ID); err != nil {
		t.Fatalf("submitting session must survive the sweep: %v", err)
	}
}

func TestStoreZeroTTLDisablesSweep(t *testing.T) {
	clock := newFakeClock()
	st := NewStore(0, clock)
	st.Create()
	clock.advance(24 * time.Hour)
	if n := st.Sweep(); n != 0 {
		t.Fatalf("expected sweep disabled with zero TTL, swept %d", n)
	}
}
