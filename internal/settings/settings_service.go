package settings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	cacheKeyPrefix = "settings:"
	cacheTTL       = 5 * time.Minute
)

// Compiled defaults used when a setting row has not been seeded. Validation
// must never hard-fail because an operator forgot a seed value.
var defaults = map[string]string{
	NameShifts:           `["AM","PM"]`,
	NameRoles:            `["admin","staff"]`,
	NameDefaultRole:      `"staff"`,
	NameDefaultShift:     `"AM"`,
	NameDeliveryStatuses: `["Delivered","Not Delivered"]`,
}

//go:generate mockgen -source=settings_service.go -destination=mock/settings_service_mock.go -package=mock

// Provider is the read-only settings collaborator injected into business
// logic so enumerations stay testable with fixed fixtures.
type Provider interface {
	Get(ctx context.Context, name string) (json.RawMessage, error)
	Shifts(ctx context.Context) ([]string, error)
	Roles(ctx context.Context) ([]string, error)
	DeliveryStatuses(ctx context.Context) ([]string, error)
	DefaultShift(ctx context.Context) (string, error)
	DefaultRole(ctx context.Context) (string, error)
}

type provider struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewProvider(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Provider {
	l := zap.L().Named("settings.provider")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("settings.provider")
	}
	return &provider{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (p *provider) Get(ctx context.Context, name string) (json.RawMessage, error) {
	if p.rdb != nil {
		if val, err := p.rdb.Get(ctx, cacheKeyPrefix+name).Result(); err == nil {
			return json.RawMessage(val), nil
		}
	}

	val, err, _ := p.sf.Do(name, func() (any, error) {
		row, err := p.repo.FindByName(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if def, ok := defaults[name]; ok {
					return def, nil
				}
				return "", err
			}
			return "", err
		}
		return row.Value, nil
	})
	if err != nil {
		return nil, err
	}

	raw := val.(string)
	if p.rdb != nil {
		if err := p.rdb.Set(ctx, cacheKeyPrefix+name, raw, cacheTTL).Err(); err != nil {
			p.logger.Warn("settings cache set failed", zap.String("name", name), zap.Error(err))
		}
	}
	return json.RawMessage(raw), nil
}

func (p *provider) stringSlice(ctx context.Context, name string) ([]string, error) {
	raw, err := p.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *provider) stringValue(ctx context.Context, name string) (string, error) {
	raw, err := p.Get(ctx, name)
	if err != nil {
		return "", err
	}
	var out string
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", err
	}
	return out, nil
}

func (p *provider) Shifts(ctx context.Context) ([]string, error) {
	return p.stringSlice(ctx, NameShifts)
}

func (p *provider) Roles(ctx context.Context) ([]string, error) {
	return p.stringSlice(ctx, NameRoles)
}

func (p *provider) DeliveryStatuses(ctx context.Context) ([]string, error) {
	return p.stringSlice(ctx, NameDeliveryStatuses)
}

func (p *provider) DefaultShift(ctx context.Context) (string, error) {
	return p.stringValue(ctx, NameDefaultShift)
}

func (p *provider) DefaultRole(ctx context.Context) (string, error) {
	return p.stringValue(ctx, NameDefaultRole)
}
