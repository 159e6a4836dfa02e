package services

import (
	"context"

	"autoparts/app/models"
	"autoparts/app/repositories"
	"autoparts/pkg/auth"
	"autoparts/pkg/logger"
	"autoparts/pkg/orm"
)

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// Register creates a new customer account and returns a signed token.
// Public registration always produces a CLIENTE; elevated roles are
// granted later through the admin endpoints.
func (s *AuthService) Register(name, email, password string) (models.User, string, error) {
	taken, err := s.users.EmailTaken(email)
	if err != nil {
		return models.User{}, "", err
	}
	if taken {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hash,
		Role:     models.RoleCliente,
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, "", err
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}

	logger.Info("auth: user registered", "user_id", user.ID)
	return user, token, nil
}

// Login verifies the credentials and returns the user with a fresh token.
// A bcrypt comparison runs even when the email is unknown so the timing
// does not reveal whether the account exists.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		if orm.IsNotFound(err) {
			auth.CheckDummyPassword(password)
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}

	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}

	return user, token, nil
}

// Me returns the authenticated user's profile.
func (s *AuthService) Me(userID uint) (models.User, error) {
	return s.users.FindByID(userID)
}

// LoadRole is the middleware.UserLoader: it resolves the caller's current
// role on every authenticated request.
func (s *AuthService) LoadRole(_ context.Context, userID uint) (string, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return "", err
	}
	return string(user.Role), nil
}
