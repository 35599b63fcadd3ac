package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sweetshop/internal/models"
)

// SweetFilter describes the search predicates. Zero-value fields are not
// applied; all supplied predicates are AND-combined.
type SweetFilter struct {
	Name     string
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// SweetPatch carries the fields of a partial update. Nil fields are left
// untouched.
type SweetPatch struct {
	Name     *string
	Category *string
	Price    *float64
	Quantity *int
}

func (p SweetPatch) Empty() bool {
	return p.Name == nil && p.Category == nil && p.Price == nil && p.Quantity == nil
}

type SweetRepository struct {
	db *gorm.DB
}

func NewSweetRepository(db *gorm.DB) *SweetRepository {
	return &SweetRepository{db: db}
}

func (r *SweetRepository) Create(ctx context.Context, sweet *models.Sweet) error {
	if sweet.ID == "" {
		sweet.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(sweet).Error
}

func (r *SweetRepository) GetByID(ctx context.Context, id string) (*models.Sweet, error) {
	var sweet models.Sweet
	err := r.db.WithContext(ctx).First(&sweet, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sweet, nil
}

func (r *SweetRepository) List(ctx context.Context) ([]models.Sweet, error) {
	var sweets []models.Sweet
	err := r.db.WithContext(ctx).Find(&sweets).Error
	return sweets, err
}

func (r *SweetRepository) Search(ctx context.Context, f SweetFilter) ([]models.Sweet, error) {
	qb := r.db.WithContext(ctx).Model(&models.Sweet{})
	if f.Name != "" {
		qb = qb.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Category != "" {
		qb = qb.Where("LOWER(category) = LOWER(?)", f.Category)
	}
	if f.MinPrice != nil {
		qb = qb.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		qb = qb.Where("price <= ?", *f.MaxPrice)
	}
	var sweets []models.Sweet
	err := qb.Find(&sweets).Error
	return sweets, err
}

func (r *SweetRepository) Update(ctx context.Context, id string, patch SweetPatch) (*models.Sweet, error) {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Quantity != nil {
		fields["quantity"] = *patch.Quantity
	}

	tx := r.db.WithContext(ctx).Model(&models.Sweet{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *SweetRepository) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&models.Sweet{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustQuantity applies a relative stock adjustment. The guard keeps the
// stored quantity non-negative so concurrent purchases cannot oversell; the
// check and the write happen in a single UPDATE.
func (r *SweetRepository) AdjustQuantity(ctx context.Context, id string, delta int) (*models.Sweet, error) {
	tx := r.db.WithContext(ctx).Model(&models.Sweet{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		// Guard rejected: either the row is missing or stock ran out.
		if _, err := r.GetByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrInsufficientStock
	}
	return r.GetByID(ctx, id)
}
