package database

import (
	"context"
	"errors"
	"fmt"

	"problemas/internal/models"

	"gorm.io/gorm"
)

type roleRepo struct {
	db *gorm.DB
}

func (r *roleRepo) EnsureDefaults(ctx context.Context) error {
	for _, name := range models.AllRoles {
		role := models.Role{Name: name}
		if err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}
	return nil
}

func (r *roleRepo) FindByName(ctx context.Context, name models.RoleName) (*models.Role, error) {
	var role models.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role %s: %w", name, err)
	}
	return &role, nil
}
