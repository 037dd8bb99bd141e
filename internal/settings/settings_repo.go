package settings

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=settings_repo.go -destination=mock/settings_repo_mock.go -package=mock
type Repository interface {
	FindByName(ctx context.Context, name string) (*Setting, error)
	Upsert(ctx context.Context, s *Setting) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByName(ctx context.Context, name string) (*Setting, error) {
	var s Setting
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&s).Error
	return &s, err
}

func (r *repository) Upsert(ctx context.Context, s *Setting) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO settings (id, name, value, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?::jsonb, now(), now())
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, s.Name, s.Value).Error
}
