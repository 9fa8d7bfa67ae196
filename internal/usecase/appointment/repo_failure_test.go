package appointment

import (
	"context"
	"errors"
	"testing"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

var errDBDown = errors.New("connection refused")

// outageRepo fails every lookup the way a dead database would, to verify the
// failure is not mistaken for a missing row.
type outageRepo struct {
	*fakeRepo
}

func (r *outageRepo) GetShop(ctx context.Context, id uint) (*models.Shop, error) {
	return nil, errDBDown
}

func (r *outageRepo) GetShopByOwner(ctx context.Context, ownerID uint) (*models.Shop, error) {
	return nil, errDBDown
}

func (r *outageRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	return nil, errDBDown
}

func (r *outageRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	return nil, errDBDown
}

func assertPassedThrough(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("want an error, got nil")
	}
	if !errors.Is(err, errDBDown) {
		t.Fatalf("err = %v, want the repository failure passed through", err)
	}
	if code, ok := httperr.BusinessCode(err); ok {
		t.Fatalf("repository failure was rewritten into business error %q", code)
	}
}

func TestRepositoryOutageNotMappedToNotFound(t *testing.T) {
	repo := &outageRepo{fakeRepo: newFakeRepo()}
	ctx := context.Background()
	owner := domain.Requester{ID: 10, Role: models.RoleShopOwner}

	t.Run("GetAvailability", func(t *testing.T) {
		_, err := availabilityUC(repo.fakeRepo, false).Execute(ctx, domain.AvailabilityInput{
			ShopID: 1, ServiceID: 1, Date: testDay,
		})
		if _, ok := httperr.BusinessCode(err); !ok {
			t.Fatalf("missing service should stay a business error, got %v", err)
		}

		uc := NewGetAvailability(repo, domain.BusinessHours{Open: 9, Close: 18}, 30, false)
		_, err = uc.Execute(ctx, domain.AvailabilityInput{ShopID: 1, ServiceID: 1, Date: testDay})
		assertPassedThrough(t, err)
	})

	t.Run("Create", func(t *testing.T) {
		uc := NewCreateAppointment(repo, nil, nil)
		_, err := uc.Execute(ctx, CreateAppointmentInput{
			ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0),
		})
		assertPassedThrough(t, err)
	})

	t.Run("Get", func(t *testing.T) {
		_, err := NewGetAppointment(repo).Execute(ctx, 1, nil)
		assertPassedThrough(t, err)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		uc := NewUpdateStatus(repo, nil, nil, false)
		_, err := uc.Execute(ctx, 1, domain.StatusConfirmed, owner)
		assertPassedThrough(t, err)
	})

	t.Run("Delete", func(t *testing.T) {
		uc := NewDeleteAppointment(repo, nil, nil)
		assertPassedThrough(t, uc.Execute(ctx, 1, owner))
	})

	t.Run("ListForOwner", func(t *testing.T) {
		_, err := NewListForRequester(repo).Execute(ctx, owner)
		assertPassedThrough(t, err)
	})
}

func TestMissingRowsStayNotFound(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	_, err := NewGetAppointment(repo).Execute(ctx, 99, nil)
	if code, _ := httperr.BusinessCode(err); code != "appointment_not_found" {
		t.Fatalf("code = %q, want appointment_not_found", code)
	}

	_, err = NewCreateAppointment(repo, nil, nil).Execute(ctx, CreateAppointmentInput{
		ShopID: 1, ServiceID: 1, DateTime: slotAt(10, 0),
	})
	if code, _ := httperr.BusinessCode(err); code != "shop_not_found" {
		t.Fatalf("code = %q, want shop_not_found", code)
	}
}
