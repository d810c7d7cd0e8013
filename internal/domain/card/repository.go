package card

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, c *Card) error
	GetByID(ctx context.Context, id string) (*Card, error)
	SetQRCodeURL(ctx context.Context, id, url string) error
	ListProvisional(ctx context.Context, limit int) ([]*Card, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Card) error {
	return r.db.WithContext(ctx).Create(c).Error
}

// GetByID treats malformed identifiers the same as unknown ones: both
// come back as ErrCardNotFound.
func (r *repository) GetByID(ctx context.Context, id string) (*Card, error) {
	var c Card
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) SetQRCodeURL(ctx context.Context, id, url string) error {
	res := r.db.WithContext(ctx).Model(&Card{}).Where("id = ?", id).Update("qr_code_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}

func (r *repository) ListProvisional(ctx context.Context, limit int) ([]*Card, error) {
	var cards []*Card
	q := r.db.WithContext(ctx).
		Where("qr_code_url = ? OR qr_code_url IS NULL", "").
		Order("created_at")
	if limit > 0 {
		q = q.Limit(limit)
	}
	return cards, q.Find(&cards).Error
}
