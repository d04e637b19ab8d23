// Package service provides the business logic for authentication and for
// the owner-scoped resources, delegating persistence to repository
// interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atinyakov/notekeeper/internal/common"
	"github.com/atinyakov/notekeeper/internal/models"
	"github.com/atinyakov/notekeeper/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthRepository defines the persistence operations
// required by the authentication service.
type AuthRepository interface {
	// UserExists returns true if a user with the given email exists.
	UserExists(ctx context.Context, email string) (bool, error)
	// CreateUser stores a new user. It returns common.ErrDuplicateEmail if
	// the email is taken.
	CreateUser(ctx context.Context, u *models.User) error
	// GetUserByEmail returns common.ErrNotFound for unknown emails.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns common.ErrNotFound for unknown ids.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(identityID string) (string, error)
}

// Service implements registration and login.
type Service struct {
	repo    AuthRepository
	tokens  TokenIssuer
	cost    int
	now     func() time.Time
	compare func(hash, password []byte) error

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService constructs a new Service using the provided repository
// and token issuer.
func NewAuthService(repo AuthRepository, tokens TokenIssuer) *Service {
	return &Service{
		repo:    repo,
		tokens:  tokens,
		cost:    bcrypt.DefaultCost,
		now:     time.Now,
		compare: bcrypt.CompareHashAndPassword,
	}
}

// unknownUserHash returns a hash of the service's cost that no password
// matches. Login compares against it for unknown emails so both failure
// paths do the same bcrypt work.
func (s *Service) unknownUserHash() []byte {
	s.dummyOnce.Do(func() {
		// Generation only fails for an out-of-range cost, which Register
		// would hit first.
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte(uuid.NewString()), s.cost)
	})
	return s.dummyHash
}

// Register validates the input, creates the identity with a bcrypt
// password hash and returns a freshly issued token.
func (s *Service) Register(ctx context.Context, in models.RegisterInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	exists, err := s.repo.UserExists(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return "", common.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return "", common.ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	return s.tokens.Issue(user.ID)
}

// Login checks the credentials and returns a freshly issued token. An
// unknown email and a wrong password both yield
// common.ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in models.LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return "", err
	}

	user, err := s.repo.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, common.ErrNotFound) {
		_ = s.compare(s.unknownUserHash(), []byte(in.Password))
		return "", common.ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := s.compare(user.PasswordHash, []byte(in.Password)); err != nil {
		return "", common.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID)
}

// GetUser returns the authenticated identity's profile.
func (s *Service) GetUser(ctx context.Context, identityID string) (*models.User, error) {
	if identityID == "" {
		return nil, common.ErrUnauthenticated
	}
	user, err := s.repo.GetUserByID(ctx, identityID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
