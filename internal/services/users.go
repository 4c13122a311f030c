package services

import (
	"fmt"
	"log/slog"

	"games_catalog/internal/models"
	"games_catalog/internal/storage"
)

type UserService struct {
	repo storage.Repository
	log  *slog.Logger
}

func NewUserService(repo storage.Repository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

func (s *UserService) Wishlist(username string) ([]*models.Game, error) {
	user, err := s.user(username)
	if err != nil {
		return nil, err
	}
	return user.Wishlist().Games(), nil
}

func (s *UserService) Favourites(username string) ([]*models.Game, error) {
	user, err := s.user(username)
	if err != nil {
		return nil, err
	}
	return user.FavouriteGames(), nil
}

// ReviewedGames lists each game the user reviewed once, in review order.
func (s *UserService) ReviewedGames(username string) ([]*models.Game, error) {
	user, err := s.user(username)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	games := make([]*models.Game, 0)
	for _, r := range user.Reviews() {
		if seen[r.Game().ID()] {
			continue
		}
		seen[r.Game().ID()] = true
		games = append(games, r.Game())
	}

	return games, nil
}

// Bio returns an empty string for a user without a bio.
func (s *UserService) Bio(username string) (string, error) {
	user, err := s.user(username)
	if err != nil {
		return "", err
	}
	bio, _ := user.Bio()
	return bio, nil
}

func (s *UserService) UpdateBio(username, bio string) error {
	const op = "services.users.UpdateBio"

	user, err := s.user(username)
	if err != nil {
		return err
	}

	if err := s.repo.ChangeBio(user, bio); err != nil {
		s.log.Error("failed to update bio",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *UserService) user(username string) (*models.User, error) {
	const op = "services.users.user"

	user, err := s.repo.GetUser(username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, fmt.Errorf("%s: %q: %w", op, username, ErrUnknownUser)
	}

	return user, nil
}
