package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/observability"
	"recipebox/internal/repository"
)

// PointsAccount reads and spends a user's points balance.
type PointsAccount struct {
	users    repository.UserRepository
	vouchers repository.VoucherRepository
	tx       repository.TxRunner
	issuer   *VoucherIssuer
}

// NewPointsAccount wires a PointsAccount.
func NewPointsAccount(
	users repository.UserRepository,
	vouchers repository.VoucherRepository,
	tx repository.TxRunner,
	issuer *VoucherIssuer,
) *PointsAccount {
	return &PointsAccount{users: users, vouchers: vouchers, tx: tx, issuer: issuer}
}

// GetPoints returns the balance of username, 0 for unknown users.
func (a *PointsAccount) GetPoints(ctx context.Context, username string) (int, error) {
	return a.users.Points(ctx, username)
}

// Redeem debits amount and issues a voucher in one transaction. An
// insufficient balance, including a missing user, is reported in the result
// and changes nothing.
func (a *PointsAccount) Redeem(ctx context.Context, username string, amount int) (_ *models.Redemption, err error) {
	ctx, span := observability.StartSpan(ctx, "PointsAccount", "Redeem")
	defer func() { observability.EndSpan(span, err) }()

	if amount <= 0 {
		observability.Redemptions.WithLabelValues("invalid").Inc()
		return nil, models.NewValidationError("Amount must be a positive number of points")
	}

	var redemption *models.Redemption
	err = a.tx.InTx(ctx, func(tx repository.Repos) error {
		debited, err := tx.Users.DebitPoints(ctx, username, amount)
		if err != nil {
			return err
		}
		if !debited {
			remaining, err := tx.Users.Points(ctx, username)
			if err != nil {
				return err
			}
			redemption = &models.Redemption{
				Status:          models.RedemptionInsufficient,
				RemainingPoints: remaining,
				Message:         models.InsufficientPointsMessage,
			}
			return nil
		}

		voucher, err := a.issuer.Issue(ctx, tx, username, amount)
		if err != nil {
			return err
		}
		remaining, err := tx.Users.Points(ctx, username)
		if err != nil {
			return err
		}
		redemption = &models.Redemption{
			Status:          models.RedemptionIssued,
			RemainingPoints: remaining,
			Voucher:         voucher,
		}
		return nil
	})
	if err != nil {
		observability.Redemptions.WithLabelValues("error").Inc()
		return nil, err
	}

	observability.Redemptions.WithLabelValues(string(redemption.Status)).Inc()
	return redemption, nil
}

// ListVouchers returns the vouchers of username, newest first.
func (a *PointsAccount) ListVouchers(ctx context.Context, username string) ([]models.Voucher, error) {
	return a.vouchers.ListByUser(ctx, username)
}
