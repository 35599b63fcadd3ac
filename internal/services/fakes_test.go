package services

import (
	"context"
	"fmt"
	"strings"

	"sweetshop/internal/models"
	"sweetshop/internal/repository"
)

// In-memory stands-ins for the repositories, mirroring their sentinel
// errors and the non-negative quantity guard of AdjustQuantity.

type fakeUserStore struct {
	users       map[string]models.User // keyed by email
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]models.User{}}
}

func (f *fakeUserStore) Create(ctx context.Context, user *models.User) error {
	f.createCalls++
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", f.createCalls)
	}
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type fakeSweetStore struct {
	sweets      map[string]models.Sweet
	createCalls int
	adjustCalls int
}

func newFakeSweetStore(seed ...models.Sweet) *fakeSweetStore {
	f := &fakeSweetStore{sweets: map[string]models.Sweet{}}
	for _, s := range seed {
		f.sweets[s.ID] = s
	}
	return f
}

func (f *fakeSweetStore) Create(ctx context.Context, sweet *models.Sweet) error {
	f.createCalls++
	if sweet.ID == "" {
		sweet.ID = fmt.Sprintf("sweet-%d", f.createCalls)
	}
	f.sweets[sweet.ID] = *sweet
	return nil
}

func (f *fakeSweetStore) GetByID(ctx context.Context, id string) (*models.Sweet, error) {
	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &sweet, nil
}

func (f *fakeSweetStore) List(ctx context.Context) ([]models.Sweet, error) {
	var out []models.Sweet
	for _, s := range f.sweets {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSweetStore) Search(ctx context.Context, filter repository.SweetFilter) ([]models.Sweet, error) {
	var out []models.Sweet
	for _, s := range f.sweets {
		if filter.Name != "" && !strings.Contains(strings.ToLower(s.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(s.Category, filter.Category) {
			continue
		}
		if filter.MinPrice != nil && s.Price < *filter.MinPrice {
			continue
		}
		if filter.MaxPrice != nil && s.Price > *filter.MaxPrice {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeSweetStore) Update(ctx context.Context, id string, patch repository.SweetPatch) (*models.Sweet, error) {
	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		sweet.Name = *patch.Name
	}
	if patch.Category != nil {
		sweet.Category = *patch.Category
	}
	if patch.Price != nil {
		sweet.Price = *patch.Price
	}
	if patch.Quantity != nil {
		sweet.Quantity = *patch.Quantity
	}
	f.sweets[id] = sweet
	return &sweet, nil
}

func (f *fakeSweetStore) Delete(ctx context.Context, id string) error {
	if _, ok := f.sweets[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.sweets, id)
	return nil
}

func (f *fakeSweetStore) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Sweet, error) {
	f.adjustCalls++
	sweet, ok := f.sweets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if sweet.Quantity+delta < 0 {
		return nil, repository.ErrInsufficientStock
	}
	sweet.Quantity += delta
	f.sweets[id] = sweet
	return &sweet, nil
}

type fakeAuditStore struct {
	entries []models.AuditEntry
}

func (f *fakeAuditStore) Create(ctx context.Context, entry *models.AuditEntry) error {
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeAuditStore) Recent(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	out := make([]models.AuditEntry, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}
