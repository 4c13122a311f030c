package storage

import (
	"errors"

	"games_catalog/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrExists   = errors.New("already exists")
)

// Repository is the storage contract shared by every backend.
//
// Lookups signal a missing entity with a nil result and a nil error; the
// returned error is reserved for storage failures and contract violations
// such as ErrExists or query.ErrInvalidPageSize.
type Repository interface {
	AddGame(game *models.Game) error
	AddReview(review *models.Review) error
	// AddUser returns ErrExists when the username is taken.
	AddUser(user *models.User) error

	AddToWishlist(user *models.User, game *models.Game) error
	RemoveFromWishlist(user *models.User, game *models.Game) error
	AddToFavourites(user *models.User, game *models.Game) error
	RemoveFromFavourites(user *models.User, game *models.Game) error
	ChangeBio(user *models.User, bio string) error

	// GetGames returns every game ordered by title.
	GetGames() ([]*models.Game, error)
	GetNumberOfGames() (int, error)
	GetGenres() ([]models.Genre, error)
	GetPublishers() ([]models.Publisher, error)
	// GetGamesByGenre returns an empty list for an unknown genre.
	GetGamesByGenre(genre string) ([]*models.Game, error)

	GetSublist(games []*models.Game, size int) ([][]*models.Game, error)
	// GetSortedDataset sorts games, or all games when games is nil.
	GetSortedDataset(sortMode string, games []*models.Game) ([]*models.Game, error)
	GetSortedReviewsForGame(game *models.Game, sortOption string) []*models.Review

	GetGame(id int64) (*models.Game, error)
	GetUser(username string) (*models.User, error)
	GetUsers() ([]*models.User, error)
}

// SessionScoped is implemented by backends that keep a per-request session.
type SessionScoped interface {
	ResetSession()
	CloseSession()
}
