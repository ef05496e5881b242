package service

import (
	"context"
	"sync"
	"testing"

	"recipebox/internal/models"
	"recipebox/internal/notifications"
	"recipebox/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewSQLiteDB(t)
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func userPoints(t *testing.T, db *gorm.DB, username string) int {
	t.Helper()
	var user models.User
	require.NoError(t, db.Where("username = ?", username).First(&user).Error)
	return user.Points
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertCode(t, err, models.CodeValidation)
}

// publisherStub records points notifications instead of publishing them.
type publisherStub struct {
	mu     sync.Mutex
	owners []string
	events []notifications.PointsAwarded
	err    error
}

func (p *publisherStub) PublishPointsAwarded(_ context.Context, owner string, ev notifications.PointsAwarded) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.owners = append(p.owners, owner)
	p.events = append(p.events, ev)
	return p.err
}

func (p *publisherStub) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}
