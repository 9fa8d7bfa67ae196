package appointment

import (
	"context"
	"errors"

	domain "github.com/keechi-app/keechi-api/internal/domain/appointment"
	"github.com/keechi-app/keechi-api/internal/httperr"
	"github.com/keechi-app/keechi-api/internal/models"
)

type ListForRequester struct {
	repo domain.Repository
}

func NewListForRequester(repo domain.Repository) *ListForRequester {
	return &ListForRequester{repo: repo}
}

// Execute lists appointments visible to the requester: their own bookings for
// customers, the whole shop's book for owners. Results come back in
// persistence order; callers paginate client-side.
func (uc *ListForRequester) Execute(
	ctx context.Context,
	requester domain.Requester,
) ([]models.Appointment, error) {

	switch requester.Role {
	case models.RoleUser:
		return uc.repo.ListAppointmentsForUser(ctx, requester.ID)

	case models.RoleShopOwner:
		shop, err := uc.repo.GetShopByOwner(ctx, requester.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, httperr.ErrBusiness("shop_not_found")
			}
			return nil, err
		}
		return uc.repo.ListAppointmentsForShop(ctx, shop.ID)
	}

	return []models.Appointment{}, nil
}
