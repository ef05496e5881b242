package repository

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines persistence operations for users and their point balances.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Exists(ctx context.Context, username string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdateDietary(ctx context.Context, username string, tags models.TagList) error
	UpdateAllergies(ctx context.Context, username string, tags models.TagList) error
	// Points returns the balance, or 0 when the user does not exist.
	Points(ctx context.Context, username string) (int, error)
	CreditPoints(ctx context.Context, username string, amount int) error
	// DebitPoints subtracts amount only if the balance covers it and reports
	// whether the debit happened.
	DebitPoints(ctx context.Context, username string, amount int) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, wrapNotFound(err, "User", username)
	}
	return &user, nil
}

func (r *userRepository) Exists(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Username already taken")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdateDietary(ctx context.Context, username string, tags models.TagList) error {
	return r.updateColumn(ctx, username, "dietary_restrictions", tags)
}

func (r *userRepository) UpdateAllergies(ctx context.Context, username string, tags models.TagList) error {
	return r.updateColumn(ctx, username, "allergies", tags)
}

func (r *userRepository) updateColumn(ctx context.Context, username, column string, value interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Update(column, value)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", username)
	}
	return nil
}

func (r *userRepository) Points(ctx context.Context, username string) (int, error) {
	var points []int
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Limit(1).
		Pluck("points", &points).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	if len(points) == 0 {
		return 0, nil
	}
	return points[0], nil
}

func (r *userRepository) CreditPoints(ctx context.Context, username string, amount int) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		UpdateColumn("points", gorm.Expr("points + ?", amount))
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("User", username)
	}
	return nil
}

func (r *userRepository) DebitPoints(ctx context.Context, username string, amount int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND points >= ?", username, amount).
		UpdateColumn("points", gorm.Expr("points - ?", amount))
	if result.Error != nil {
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected == 1, nil
}
