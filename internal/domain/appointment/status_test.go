package appointment

import (
	"testing"

	"github.com/keechi-app/keechi-api/internal/httperr"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}

	for _, s := range []Status{"", "pending", "Done", "Archived"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(); got != StatusPending {
		t.Errorf("InitialStatus() = %q, want %q", got, StatusPending)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok && err != nil {
			t.Errorf("CanTransition(%s, %s) = %v, want nil", tt.from, tt.to, err)
		}
		if !tt.ok && !httperr.IsBusiness(err, "invalid_transition") {
			t.Errorf("CanTransition(%s, %s) = %v, want invalid_transition", tt.from, tt.to, err)
		}
	}
}
