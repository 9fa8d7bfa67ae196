package appointment

import (
	"context"
	"testing"

	"github.com/keechi-app/keechi-api/internal/httperr"
)

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }

func TestCreateAppointmentAsUser(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)

	inv := &recordingInvalidator{}
	uc := NewCreateAppointment(repo, nil, inv)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0),
		Notes: "first visit", UserID: uintPtr(7),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.ID == 0 {
		t.Error("appointment id not assigned")
	}
	if ap.Status != "Pending" {
		t.Errorf("status = %q, want Pending", ap.Status)
	}
	if ap.UserID == nil || *ap.UserID != 7 {
		t.Errorf("userId = %v, want 7", ap.UserID)
	}
	if len(inv.days) != 1 || inv.days[0] != "2026-03-10" {
		t.Errorf("invalidated days = %v, want [2026-03-10]", inv.days)
	}
}

func TestCreateAppointmentAsGuest(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)

	uc := NewCreateAppointment(repo, nil, nil)

	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(11, 0),
		CustomerName:  strPtr("Walk In"),
		CustomerPhone: strPtr("555-0101"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.UserID != nil {
		t.Errorf("guest booking got userId %v", *ap.UserID)
	}
	if ap.CustomerName == nil || *ap.CustomerName != "Walk In" {
		t.Errorf("customerName = %v, want Walk In", ap.CustomerName)
	}
}

func TestCreateAppointmentInvalidRefs(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addShop(2, 11)
	repo.addService(1, 1, 30)
	repo.addService(2, 2, 30)

	uc := NewCreateAppointment(repo, nil, nil)

	tests := []struct {
		name     string
		in       CreateAppointmentInput
		wantCode string
	}{
		{
			name:     "unknown shop",
			in:       CreateAppointmentInput{ShopID: 99, ServiceID: 1, DateTime: slotAt(10, 0)},
			wantCode: "shop_not_found",
		},
		{
			name:     "unknown service",
			in:       CreateAppointmentInput{ShopID: 1, ServiceID: 99, DateTime: slotAt(10, 0)},
			wantCode: "service_not_found",
		},
		{
			name:     "service from another shop",
			in:       CreateAppointmentInput{ShopID: 1, ServiceID: 2, DateTime: slotAt(10, 0)},
			wantCode: "service_not_in_shop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.in)
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Fatalf("err = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)

	uc := NewCreateAppointment(repo, nil, nil)

	if _, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0),
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	// Same slot again loses.
	_, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0),
	})
	if !httperr.IsBusiness(err, "slot_taken") {
		t.Fatalf("err = %v, want slot_taken", err)
	}

	// An adjacent slot is fine.
	if _, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 30),
	}); err != nil {
		t.Fatalf("adjacent booking: %v", err)
	}
}
