package settings

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSettingsRepo struct {
	findByNameFn func(ctx context.Context, name string) (*Setting, error)
	calls        int
}

func (f *fakeSettingsRepo) FindByName(ctx context.Context, name string) (*Setting, error) {
	f.calls++
	return f.findByNameFn(ctx, name)
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s *Setting) error {
	return nil
}

func TestProvider_Get_CacheHit(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeSettingsRepo{
		findByNameFn: func(ctx context.Context, name string) (*Setting, error) {
			t.Fatal("repository must not be hit on cache hit")
			return nil, nil
		},
	}
	p := NewProvider(repo, rdb)

	redisMock.ExpectGet("settings:shifts").SetVal(`["AM","PM","NOON"]`)

	raw, err := p.Get(ctx, NameShifts)

	assert.NoError(t, err)
	assert.JSONEq(t, `["AM","PM","NOON"]`, string(raw))
	assert.Equal(t, 0, repo.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProvider_Get_CacheMissFillsCache(t *testing.T) {
	ctx := context.Background()
	rdb, redisMock := redismock.NewClientMock()
	repo := &fakeSettingsRepo{
		findByNameFn: func(ctx context.Context, name string) (*Setting, error) {
			assert.Equal(t, NameDeliveryStatuses, name)
			return &Setting{Name: name, Value: `["Delivered","Not Delivered","Partial"]`}, nil
		},
	}
	p := NewProvider(repo, rdb)

	redisMock.ExpectGet("settings:deliveryStatuses").RedisNil()
	redisMock.ExpectSet("settings:deliveryStatuses", `["Delivered","Not Delivered","Partial"]`, 5*time.Minute).SetVal("OK")

	statuses, err := p.DeliveryStatuses(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"Delivered", "Not Delivered", "Partial"}, statuses)
	assert.Equal(t, 1, repo.calls)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestProvider_Get_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{
		findByNameFn: func(ctx context.Context, name string) (*Setting, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	p := NewProvider(repo, nil)

	shifts, err := p.Shifts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"AM", "PM"}, shifts)

	role, err := p.DefaultRole(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "staff", role)

	shift, err := p.DefaultShift(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "AM", shift)
}

func TestProvider_Get_UnknownNameNotFound(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{
		findByNameFn: func(ctx context.Context, name string) (*Setting, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	p := NewProvider(repo, nil)

	_, err := p.Get(ctx, "notARealSetting")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProvider_Get_RepoErrorPropagates(t *testing.T) {
	ctx := context.Background()
	repo := &fakeSettingsRepo{
		findByNameFn: func(ctx context.Context, name string) (*Setting, error) {
			return nil, assert.AnError
		},
	}
	p := NewProvider(repo, nil)

	_, err := p.Get(ctx, NameRoles)

	assert.ErrorIs(t, err, assert.AnError)
}
