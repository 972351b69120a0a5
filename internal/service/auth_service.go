package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Sobilo34/Tyma-server/internal/errs"
	"github.com/Sobilo34/Tyma-server/internal/models"
	"github.com/Sobilo34/Tyma-server/internal/repository"
	"github.com/Sobilo34/Tyma-server/pkg/auth"
	"github.com/Sobilo34/Tyma-server/pkg/logger"
	"github.com/Sobilo34/Tyma-server/pkg/validation"
)

// ErrInvalidCredentials is returned when login fails. It deliberately does
// not say whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	users    *repository.UserRepository
	tokens   *auth.TokenService
	validate *validation.Validator
	log      *logger.Logger
}

func NewAuthService(users *repository.UserRepository, tokens *auth.TokenService, validate *validation.Validator, log *logger.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, validate: validate, log: log}
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates an administrator account.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	fields := map[string]string{}
	if !s.validate.IsEmail(email) {
		fields["email"] = "invalid email address"
	}
	if len(input.Password) < 8 {
		fields["password"] = "password must be at least 8 characters"
	}
	if len(fields) > 0 {
		return nil, errs.ValidationFields(fields)
	}

	existing, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.Conflict("user '%s' already exists", email)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		IsStaff:      true,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("registered admin user %s", user.Email)
	return user, nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, time.Time, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	s.log.Infof("admin user %s logged in", user.Email)
	return user, token, expiresAt, nil
}
