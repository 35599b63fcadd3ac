package services

import (
	"context"
	"errors"

	"sweetshop/internal/models"
	"sweetshop/internal/repository"
)

var ErrAdminOnly = errors.New("admin access required")

// SweetStore is the capability set the rule engine needs from the store:
// create/find/update/delete plus an atomic adjust-by-delta.
type SweetStore interface {
	Create(ctx context.Context, sweet *models.Sweet) error
	GetByID(ctx context.Context, id string) (*models.Sweet, error)
	List(ctx context.Context) ([]models.Sweet, error)
	Search(ctx context.Context, f repository.SweetFilter) ([]models.Sweet, error)
	Update(ctx context.Context, id string, patch repository.SweetPatch) (*models.Sweet, error)
	Delete(ctx context.Context, id string) error
	AdjustQuantity(ctx context.Context, id string, delta int) (*models.Sweet, error)
}

// SweetService enforces the role and stock rules for inventory mutation.
// Identity and role are resolved by the caller; payloads arrive validated.
type SweetService struct {
	store SweetStore
}

func NewSweetService(store SweetStore) *SweetService {
	return &SweetService{store: store}
}

func (s *SweetService) Create(ctx context.Context, sweet *models.Sweet) error {
	return s.store.Create(ctx, sweet)
}

func (s *SweetService) List(ctx context.Context) ([]models.Sweet, error) {
	return s.store.List(ctx)
}

// Search applies the supplied predicates AND-combined. An empty filter
// behaves exactly like List.
func (s *SweetService) Search(ctx context.Context, f repository.SweetFilter) ([]models.Sweet, error) {
	return s.store.Search(ctx, f)
}

func (s *SweetService) Update(ctx context.Context, id string, patch repository.SweetPatch) (*models.Sweet, error) {
	if patch.Empty() {
		// Nothing to apply; still surfaces NotFound for a bad id.
		return s.store.GetByID(ctx, id)
	}
	return s.store.Update(ctx, id, patch)
}

func (s *SweetService) Delete(ctx context.Context, id string, role models.Role) error {
	if role != models.RoleAdmin {
		return ErrAdminOnly
	}
	return s.store.Delete(ctx, id)
}

// Purchase decrements stock by qty. The stock check against the observed
// quantity classifies the failure; the authoritative check-and-decrement
// happens in the store's guarded relative update, so a concurrent purchase
// can still turn this into ErrInsufficientStock.
func (s *SweetService) Purchase(ctx context.Context, id string, qty int) (*models.Sweet, error) {
	sweet, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sweet.InStock(qty) {
		return nil, repository.ErrInsufficientStock
	}
	return s.store.AdjustQuantity(ctx, id, -qty)
}

// Restock increments stock by qty. ADMIN only.
func (s *SweetService) Restock(ctx context.Context, id string, qty int, role models.Role) (*models.Sweet, error) {
	if role != models.RoleAdmin {
		return nil, ErrAdminOnly
	}
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.AdjustQuantity(ctx, id, qty)
}
