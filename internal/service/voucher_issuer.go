package service

import (
	"context"

	"recipebox/internal/models"
	"recipebox/internal/observability"
	"recipebox/internal/repository"
)

// VoucherIssuer turns an already-debited amount into a voucher. It trusts the
// caller's debit and must run inside the caller's transaction.
type VoucherIssuer struct{}

// NewVoucherIssuer returns a VoucherIssuer.
func NewVoucherIssuer() *VoucherIssuer {
	return &VoucherIssuer{}
}

// Issue inserts a voucher for username worth amount points using tx.
func (*VoucherIssuer) Issue(ctx context.Context, tx repository.Repos, username string, amount int) (*models.Voucher, error) {
	voucher := &models.Voucher{Username: username, Points: amount}
	if err := tx.Vouchers.Create(ctx, voucher); err != nil {
		return nil, err
	}
	observability.VouchersIssued.Inc()
	return voucher, nil
}
