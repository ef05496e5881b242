package repository

import (
	"context"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// Repos bundles the repositories taking part in the reward workflows, all
// bound to the same connection or transaction.
type Repos struct {
	Users    UserRepository
	Recipes  RecipeRepository
	Reviews  ReviewRepository
	Vouchers VoucherRepository
}

// NewRepos binds every repository to db.
func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Users:    NewUserRepository(db),
		Recipes:  NewRecipeRepository(db),
		Reviews:  NewReviewRepository(db),
		Vouchers: NewVoucherRepository(db),
	}
}

// TxRunner runs a unit of work inside one database transaction. The
// transaction commits when fn returns nil and rolls back otherwise.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx Repos) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

// NewTxRunner returns a TxRunner over db.
func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) InTx(ctx context.Context, fn func(tx Repos) error) error {
	var fnErr error
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(NewRepos(tx))
		return fnErr
	})
	if err != nil && fnErr == nil {
		// begin or commit failed
		return models.NewInternalError(err)
	}
	return err
}
