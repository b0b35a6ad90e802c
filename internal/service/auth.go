package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"problemas/internal/database"
	"problemas/internal/metrics"
	"problemas/internal/models"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Username string `validate:"required,min=3,max=20" label:"usuario"`
	FullName string `validate:"max=120" label:"nombre y apellido"`
	Email    string `validate:"required,email,max=120" label:"correo"`
	Password string `validate:"required,min=6,max=72" label:"contraseña"`
}

// AuthService handles registration, login and per-request actor lookup.
type AuthService struct {
	store database.Store
	cost  int
	log   zerolog.Logger

	// compared against when the email is unknown so both failures cost the same
	dummyHash []byte
}

func NewAuthService(store database.Store, cost int, log zerolog.Logger) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		// only fails for an out-of-range cost, which config rejects
		panic(fmt.Sprintf("auth: bcrypt cost %d: %v", cost, err))
	}
	return &AuthService{store: store, cost: cost, log: log, dummyHash: dummy}
}

// Register creates a citizen account. Username and email must both be unused.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validateStruct(in); err != nil {
		return nil, err
	}

	exists, err := s.store.Users().ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.ErrUserExists
	}

	role, err := s.store.Roles().FindByName(ctx, models.DefaultRole)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     in.Username,
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		Role:         *role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		return nil, err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.log.Info().Uint("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

// Login returns the user owning email when password matches its hash.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.store.Users().FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, models.ErrUserNotFound) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, models.ErrInvalidCredentials
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	return user, nil
}

// Actor loads the user behind a session, with role, fresh from the store.
func (s *AuthService) Actor(ctx context.Context, id uint) (*models.User, error) {
	return s.store.Users().FindByID(ctx, id)
}
