package repository

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// VoucherRepository defines persistence operations for vouchers.
type VoucherRepository interface {
	Create(ctx context.Context, voucher *models.Voucher) error
	ListByUser(ctx context.Context, username string) ([]models.Voucher, error)
}

type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a new VoucherRepository
func NewVoucherRepository(db *gorm.DB) VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(ctx context.Context, voucher *models.Voucher) error {
	if err := r.db.WithContext(ctx).Create(voucher).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *voucherRepository) ListByUser(ctx context.Context, username string) ([]models.Voucher, error) {
	vouchers := []models.Voucher{}
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Order("created_at DESC, code DESC").
		Find(&vouchers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return vouchers, nil
}
