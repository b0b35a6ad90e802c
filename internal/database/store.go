package database

import (
	"context"
	"fmt"

	"problemas/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	ListWithPostCounts(ctx context.Context) ([]models.UserSummary, error)
	CountByRole(ctx context.Context, role models.RoleName) (int64, error)
	UpdateRole(ctx context.Context, userID, roleID uint) error
	Delete(ctx context.Context, id uint) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	ListNewestFirst(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, userID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountByOwner(ctx context.Context, userID uint) (int64, error)
}

type RoleRepository interface {
	EnsureDefaults(ctx context.Context) error
	FindByName(ctx context.Context, name models.RoleName) (*models.Role, error)
}

type AuditRepository interface {
	Record(ctx context.Context, entry *models.AuditLog) error
	Recent(ctx context.Context, limit int) ([]models.AuditLog, error)
	DetachActor(ctx context.Context, userID uint) error
}

// Store groups the repositories. Transaction hands fn a Store bound to a
// single database transaction; returning an error rolls it back.
type Store interface {
	Users() UserRepository
	Posts() PostRepository
	Roles() RoleRepository
	Audit() AuditRepository
	Transaction(ctx context.Context, fn func(tx Store) error) error
	Ping(ctx context.Context) error
}

type GormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository { return &userRepo{db: s.db} }
func (s *GormStore) Posts() PostRepository { return &postRepo{db: s.db} }
func (s *GormStore) Roles() RoleRepository { return &roleRepo{db: s.db} }
func (s *GormStore) Audit() AuditRepository { return &auditRepo{db: s.db} }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("sql handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
