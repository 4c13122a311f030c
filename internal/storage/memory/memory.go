// Package memory keeps the catalog in process memory.
//
// Lookups by id and username are linear scans. The repository is not
// synchronized: callers must ensure a single writer, e.g. by serializing
// requests.
package memory

import (
	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/storage"
)

type Repository struct {
	games        []*models.Game
	publishers   map[string]models.Publisher
	genres       map[string]models.Genre
	gamesByGenre map[string][]*models.Game
	users        []*models.User
}

var _ storage.Repository = (*Repository)(nil)

func New() *Repository {
	return &Repository{
		publishers:   make(map[string]models.Publisher),
		genres:       make(map[string]models.Genre),
		gamesByGenre: make(map[string][]*models.Game),
	}
}

// AddGame indexes the game under each of its genres. Re-adding the same game
// is a no-op; a different game with a known id is rejected with ErrExists.
func (r *Repository) AddGame(game *models.Game) error {
	if game == nil {
		return nil
	}
	if existing := r.findGame(game.ID()); existing != nil {
		if existing == game {
			return nil
		}
		return storage.ErrExists
	}

	r.games = append(r.games, game)
	for _, genre := range game.Genres() {
		if _, ok := r.genres[genre.Name]; !ok {
			r.genres[genre.Name] = genre
		}
		r.gamesByGenre[genre.Name] = append(r.gamesByGenre[genre.Name], game)
	}
	if game.Publisher != nil {
		r.publishers[game.Publisher.Name] = *game.Publisher
	}

	return nil
}

func (r *Repository) AddReview(review *models.Review) error {
	models.LinkReview(review)
	return nil
}

func (r *Repository) AddUser(user *models.User) error {
	if user == nil {
		return nil
	}
	if r.findUser(user.Username()) != nil {
		return storage.ErrExists
	}
	r.users = append(r.users, user)
	return nil
}

func (r *Repository) AddToWishlist(user *models.User, game *models.Game) error {
	if user != nil {
		user.Wishlist().Add(game)
	}
	return nil
}

func (r *Repository) RemoveFromWishlist(user *models.User, game *models.Game) error {
	if user != nil {
		user.Wishlist().Remove(game)
	}
	return nil
}

func (r *Repository) AddToFavourites(user *models.User, game *models.Game) error {
	if user != nil {
		user.AddFavourite(game)
	}
	return nil
}

func (r *Repository) RemoveFromFavourites(user *models.User, game *models.Game) error {
	if user != nil {
		user.RemoveFavourite(game)
	}
	return nil
}

func (r *Repository) ChangeBio(user *models.User, bio string) error {
	user.SetBio(bio)
	return nil
}

func (r *Repository) GetGames() ([]*models.Game, error) {
	out := make([]*models.Game, len(r.games))
	copy(out, r.games)
	query.SortByTitle(out)
	return out, nil
}

func (r *Repository) GetNumberOfGames() (int, error) {
	return len(r.games), nil
}

func (r *Repository) GetGenres() ([]models.Genre, error) {
	out := make([]models.Genre, 0, len(r.genres))
	for _, g := range r.genres {
		out = append(out, g)
	}
	query.SortGenres(out)
	return out, nil
}

func (r *Repository) GetPublishers() ([]models.Publisher, error) {
	out := make([]models.Publisher, 0, len(r.publishers))
	for _, p := range r.publishers {
		out = append(out, p)
	}
	query.SortPublishers(out)
	return out, nil
}

func (r *Repository) GetGamesByGenre(genre string) ([]*models.Game, error) {
	bucket := r.gamesByGenre[genre]
	out := make([]*models.Game, len(bucket))
	copy(out, bucket)
	query.SortByTitle(out)
	return out, nil
}

func (r *Repository) GetSublist(games []*models.Game, size int) ([][]*models.Game, error) {
	return query.Sublist(games, size)
}

func (r *Repository) GetSortedDataset(sortMode string, games []*models.Game) ([]*models.Game, error) {
	if games == nil {
		games = r.games
	}
	return query.SortGames(games, sortMode)
}

func (r *Repository) GetSortedReviewsForGame(game *models.Game, sortOption string) []*models.Review {
	return query.SortReviews(game.Reviews(), sortOption)
}

func (r *Repository) GetGame(id int64) (*models.Game, error) {
	return r.findGame(id), nil
}

func (r *Repository) GetUser(username string) (*models.User, error) {
	return r.findUser(username), nil
}

func (r *Repository) GetUsers() ([]*models.User, error) {
	out := make([]*models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *Repository) findGame(id int64) *models.Game {
	for _, g := range r.games {
		if g.ID() == id {
			return g
		}
	}
	return nil
}

func (r *Repository) findUser(username string) *models.User {
	for _, u := range r.users {
		if u.Username() == username {
			return u
		}
	}
	return nil
}
