package services

import (
	"errors"
	"fmt"
	"log/slog"

	"games_catalog/internal/models"
	"games_catalog/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes with bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type AuthService struct {
	repo storage.Repository
	log  *slog.Logger
	cost int
}

func NewAuthService(repo storage.Repository, log *slog.Logger) *AuthService {
	return &AuthService{
		repo: repo,
		log:  log,
		cost: bcrypt.DefaultCost,
	}
}

func (s *AuthService) Register(username, password string) error {
	const op = "services.auth.Register"

	existing, err := s.repo.GetUser(username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if existing != nil {
		return ErrNameNotUnique
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.AddUser(models.NewUser(username, string(hash))); err != nil {
		if errors.Is(err, storage.ErrExists) {
			return ErrNameNotUnique
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("username", username))

	return nil
}

// Authenticate returns ErrAuthentication for an unknown user and for a
// wrong password alike.
func (s *AuthService) Authenticate(username, password string) (*models.User, error) {
	const op = "services.auth.Authenticate"

	user, err := s.repo.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, ErrAuthentication
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrAuthentication
	}

	return user, nil
}

func (s *AuthService) User(username string) (*models.User, error) {
	const op = "services.auth.User"

	user, err := s.repo.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, ErrUnknownUser
	}

	return user, nil
}
