package service

import (
	"context"
	"sync"
	"testing"

	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPointsAccount(db *gorm.DB) *PointsAccount {
	return NewPointsAccount(
		repository.NewUserRepository(db),
		repository.NewVoucherRepository(db),
		repository.NewTxRunner(db),
		NewVoucherIssuer(),
	)
}

func TestPointsAccount_GetPoints(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "alice", 250)
	account := newPointsAccount(db)

	points, err := account.GetPoints(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 250, points)

	points, err = account.GetPoints(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, points)
}

func TestPointsAccount_Redeem_Issued(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "alice", 150)
	account := newPointsAccount(db)
	ctx := context.Background()

	res, err := account.Redeem(ctx, "alice", 100)
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, models.RedemptionIssued, res.Status)
	assert.Equal(t, 50, res.RemainingPoints)
	require.NotNil(t, res.Voucher)
	assert.NotZero(t, res.Voucher.Code)
	assert.Equal(t, 100, res.Voucher.Points)
	assert.Equal(t, "alice", res.Voucher.Username)

	assert.Equal(t, 50, userPoints(t, db, "alice"))

	vouchers, err := account.ListVouchers(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, vouchers, 1)
	assert.Equal(t, res.Voucher.Code, vouchers[0].Code)
}

func TestPointsAccount_Redeem_ExactBalance(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "alice", 100)

	res, err := newPointsAccount(db).Redeem(context.Background(), "alice", 100)
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, 0, res.RemainingPoints)
	assert.Equal(t, 0, userPoints(t, db, "alice"))
}

func TestPointsAccount_Redeem_Insufficient(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "alice", 40)
	account := newPointsAccount(db)

	res, err := account.Redeem(context.Background(), "alice", 50)
	require.NoError(t, err)
	assert.False(t, res.Success())
	assert.Equal(t, models.RedemptionInsufficient, res.Status)
	assert.Equal(t, models.InsufficientPointsMessage, res.Message)
	assert.Equal(t, 40, res.RemainingPoints)
	assert.Nil(t, res.Voucher)

	assert.Equal(t, 40, userPoints(t, db, "alice"))
	assert.Equal(t, int64(0), countRows(t, db, &models.Voucher{}))
}

func TestPointsAccount_Redeem_UnknownUser(t *testing.T) {
	db := setupDB(t)

	res, err := newPointsAccount(db).Redeem(context.Background(), "ghost", 10)
	require.NoError(t, err)
	assert.Equal(t, models.RedemptionInsufficient, res.Status)
	assert.Equal(t, models.InsufficientPointsMessage, res.Message)
	assert.Equal(t, int64(0), countRows(t, db, &models.Voucher{}))
}

func TestPointsAccount_Redeem_NonPositiveAmount(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "alice", 100)
	account := newPointsAccount(db)

	for _, amount := range []int{0, -5} {
		_, err := account.Redeem(context.Background(), "alice", amount)
		assertValidationError(t, err)
	}
	assert.Equal(t, 100, userPoints(t, db, "alice"))
}

// The SQLite fixture has a single connection, so these redemptions queue up
// rather than interleave. The no-overdraw guard itself is the conditional
// UPDATE covered by TestUserRepository_DebitPoints plus the points >= 0 check.
func TestPointsAccount_Redeem_ConcurrentNeverOverdraws(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "alice", 100)
	account := newPointsAccount(db)

	const attempts = 10
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		issued int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := account.Redeem(context.Background(), "alice", 30)
			if err != nil || !res.Success() {
				return
			}
			mu.Lock()
			issued++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, issued)
	assert.Equal(t, 10, userPoints(t, db, "alice"))
	assert.Equal(t, int64(3), countRows(t, db, &models.Voucher{}))
}

func TestPointsAccount_RatingThenRedeem(t *testing.T) {
	db := setupDB(t)
	testutil.CreateUser(t, db, "owner", 0)
	testutil.CreateUser(t, db, "r1", 0)
	testutil.CreateUser(t, db, "r2", 0)
	recipe := testutil.CreateRecipe(t, db, "owner", "Stew")

	ledger := NewRatingLedger(repository.NewTxRunner(db), nil, nil, nil)
	ctx := context.Background()
	_, err := ledger.SubmitRating(ctx, SubmitRatingInput{Rater: "r1", RecipeID: recipe.ID, Rating: 5})
	require.NoError(t, err)
	_, err = ledger.SubmitRating(ctx, SubmitRatingInput{Rater: "r2", RecipeID: recipe.ID, Rating: 4})
	require.NoError(t, err)

	account := newPointsAccount(db)
	points, err := account.GetPoints(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, 150, points)

	res, err := account.Redeem(ctx, "owner", 150)
	require.NoError(t, err)
	assert.True(t, res.Success())
	assert.Equal(t, 0, res.RemainingPoints)
}
