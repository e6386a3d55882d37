package purchase

import (
	"errors"
	"testing"
	"time"
)

func TestManagerSessionLifecycle(t *testing.T) {
	m := NewManager(time.Hour)

	id := m.NewSession()
	if id == "" {
		t.Fatal("empty session id")
	}

	err := m.With(id, func(f *Flow) error {
		f.Open(testBundle())
		return nil
	})
	if err != nil {
		t.Fatalf("With: %v", err)
	}

	// State persists across calls.
	err = m.With(id, func(f *Flow) error {
		if f.Step() != StepSelection {
			t.Errorf("step = %v, want selection", f.Step())
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	m.Drop(id)
	err = m.With(id, func(f *Flow) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("With after Drop: err = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerUnknownSession(t *testing.T) {
	m := NewManager(time.Hour)
	err := m.With("nope", func(f *Flow) error { return nil })
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestManagerSweepExpiresIdleSessions(t *testing.T) {
	m := NewManager(10 * time.Millisecond)

	stale := m.NewSession()
	time.Sleep(20 * time.Millisecond)
	fresh := m.NewSession()

	if removed := m.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d sessions, want 1", removed)
	}
	if err := m.With(stale, func(f *Flow) error { return nil }); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("stale session survived sweep")
	}
	if err := m.With(fresh, func(f *Flow) error { return nil }); err != nil {
		t.Errorf("fresh session swept: %v", err)
	}
}
