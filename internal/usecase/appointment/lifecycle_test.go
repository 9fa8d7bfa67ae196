package appointment

import (
	"context"
	"testing"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

func seedBooking(t *testing.T, repo *fakeRepo, userID *uint) *models.Appointment {
	t.Helper()

	uc := NewCreateAppointment(repo, nil, nil)
	ap, err := uc.Execute(context.Background(), CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0), UserID: userID,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return ap
}

// --------------------------------------------------
// UpdateStatus
// --------------------------------------------------

func TestUpdateStatusByOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	inv := &recordingInvalidator{}
	uc := NewUpdateStatus(repo, nil, inv, false)

	owner := domain.Requester{ID: 10, Role: models.RoleShopOwner}

	updated, err := uc.Execute(context.Background(), ap.ID, domain.StatusConfirmed, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "Confirmed" {
		t.Errorf("status = %q, want Confirmed", updated.Status)
	}
	if len(inv.days) != 1 {
		t.Errorf("expected one cache invalidation, got %v", inv.days)
	}
}

func TestUpdateStatusForbiddenForNonOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	uc := NewUpdateStatus(repo, nil, nil, false)

	stranger := domain.Requester{ID: 42, Role: models.RoleShopOwner}

	_, err := uc.Execute(context.Background(), ap.ID, domain.StatusConfirmed, stranger)
	if !httperr.IsBusiness(err, "forbidden") {
		t.Fatalf("err = %v, want forbidden", err)
	}
}

func TestUpdateStatusInvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, nil)

	uc := NewUpdateStatus(repo, nil, nil, false)

	owner := domain.Requester{ID: 10, Role: models.RoleShopOwner}

	_, err := uc.Execute(context.Background(), ap.ID, domain.Status("Archived"), owner)
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("err = %v, want invalid_status", err)
	}
}

func TestUpdateStatusLenientAllowsBackwards(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, nil)
	repo.appointments[ap.ID].Status = "Completed"

	uc := NewUpdateStatus(repo, nil, nil, false)

	owner := domain.Requester{ID: 10, Role: models.RoleShopOwner}

	updated, err := uc.Execute(context.Background(), ap.ID, domain.StatusConfirmed, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != "Confirmed" {
		t.Errorf("status = %q, want Confirmed", updated.Status)
	}
}

func TestUpdateStatusStrictRejectsBackwards(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, nil)
	repo.appointments[ap.ID].Status = "Completed"

	uc := NewUpdateStatus(repo, nil, nil, true)

	owner := domain.Requester{ID: 10, Role: models.RoleShopOwner}

	_, err := uc.Execute(context.Background(), ap.ID, domain.StatusConfirmed, owner)
	if !httperr.IsBusiness(err, "invalid_transition") {
		t.Fatalf("err = %v, want invalid_transition", err)
	}
}

// --------------------------------------------------
// Delete
// --------------------------------------------------

func TestDeleteAppointmentByBookingUser(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	uc := NewDeleteAppointment(repo, nil, nil)

	user := domain.Requester{ID: 7, Role: models.RoleUser}
	if err := uc.Execute(context.Background(), ap.ID, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := repo.GetAppointment(context.Background(), ap.ID); err == nil {
		t.Error("appointment still present after delete")
	}
}

func TestDeleteAppointmentByShopOwner(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	uc := NewDeleteAppointment(repo, nil, nil)

	owner := domain.Requester{ID: 10, Role: models.RoleShopOwner}
	if err := uc.Execute(context.Background(), ap.ID, owner); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteAppointmentForbidden(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	uc := NewDeleteAppointment(repo, nil, nil)

	tests := []struct {
		name      string
		requester domain.Requester
	}{
		{"different user", domain.Requester{ID: 8, Role: models.RoleUser}},
		{"different owner", domain.Requester{ID: 42, Role: models.RoleShopOwner}},
		{"unknown role", domain.Requester{ID: 7, Role: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := uc.Execute(context.Background(), ap.ID, tt.requester)
			if !httperr.IsBusiness(err, "forbidden") {
				t.Fatalf("err = %v, want forbidden", err)
			}
		})
	}
}

// --------------------------------------------------
// Get
// --------------------------------------------------

func TestGetAppointmentAnonymousAllowed(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	uc := NewGetAppointment(repo)

	got, err := uc.Execute(context.Background(), ap.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != ap.ID {
		t.Errorf("id = %d, want %d", got.ID, ap.ID)
	}
}

func TestGetAppointmentOwnershipChecks(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)
	ap := seedBooking(t, repo, uintPtr(7))

	uc := NewGetAppointment(repo)

	tests := []struct {
		name      string
		requester domain.Requester
		wantErr   bool
	}{
		{"booking user", domain.Requester{ID: 7, Role: models.RoleUser}, false},
		{"shop owner", domain.Requester{ID: 10, Role: models.RoleShopOwner}, false},
		{"other user", domain.Requester{ID: 8, Role: models.RoleUser}, true},
		{"other owner", domain.Requester{ID: 42, Role: models.RoleShopOwner}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), ap.ID, &tt.requester)
			if tt.wantErr && !httperr.IsBusiness(err, "forbidden") {
				t.Fatalf("err = %v, want forbidden", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestGetAppointmentNotFound(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAppointment(repo)

	_, err := uc.Execute(context.Background(), 999, nil)
	if !httperr.IsBusiness(err, "appointment_not_found") {
		t.Fatalf("err = %v, want appointment_not_found", err)
	}
}

// --------------------------------------------------
// List
// --------------------------------------------------

func TestListForRequester(t *testing.T) {
	repo := newFakeRepo()
	repo.addShop(1, 10)
	repo.addService(1, 1, 30)

	create := NewCreateAppointment(repo, nil, nil)
	mustCreate := func(in CreateAppointmentInput) {
		t.Helper()
		if _, err := create.Execute(context.Background(), in); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mustCreate(CreateAppointmentInput{ShopID: 1, ServiceID: 1, DateTime: slotAt(9, 0), UserID: uintPtr(7)})
	mustCreate(CreateAppointmentInput{ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0), UserID: uintPtr(8)})
	mustCreate(CreateAppointmentInput{ShopID: 1, ServiceID: 1, DateTime: slotAt(11, 0)})

	uc := NewListForRequester(repo)

	user, err := uc.Execute(context.Background(), domain.Requester{ID: 7, Role: models.RoleUser})
	if err != nil {
		t.Fatalf("user list: %v", err)
	}
	if len(user) != 1 {
		t.Errorf("user sees %d appointments, want 1", len(user))
	}

	owner, err := uc.Execute(context.Background(), domain.Requester{ID: 10, Role: models.RoleShopOwner})
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(owner) != 3 {
		t.Errorf("owner sees %d appointments, want 3", len(owner))
	}

	_, err = uc.Execute(context.Background(), domain.Requester{ID: 42, Role: models.RoleShopOwner})
	if !httperr.IsBusiness(err, "shop_not_found") {
		t.Fatalf("ownerless err = %v, want shop_not_found", err)
	}
}
