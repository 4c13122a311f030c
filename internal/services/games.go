package services

import (
	"fmt"
	"log/slog"

	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/storage"
)

type GameService struct {
	repo storage.Repository
	log  *slog.Logger
}

func NewGameService(repo storage.Repository, log *slog.Logger) *GameService {
	return &GameService{
		repo: repo,
		log:  log,
	}
}

func (s *GameService) Games(sortMode string, page, size int) (Page[*models.Game], error) {
	const op = "services.games.Games"

	games, err := s.repo.GetSortedDataset(sortMode, nil)
	if err != nil {
		return Page[*models.Game]{}, fmt.Errorf("%s: %w", op, err)
	}

	return newPage(games, page, size)
}

func (s *GameService) NumberOfPages(size int) (int, error) {
	const op = "services.games.NumberOfPages"

	if size < 1 {
		return 0, query.ErrInvalidPageSize
	}

	n, err := s.repo.GetNumberOfGames()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return query.TotalPages(n, size), nil
}

func (s *GameService) Game(id int64) (*models.Game, error) {
	const op = "services.games.Game"

	g, err := s.repo.GetGame(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if g == nil {
		return nil, fmt.Errorf("%s: game %d: %w", op, id, storage.ErrNotFound)
	}

	return g, nil
}

func (s *GameService) SortedReviews(id int64, option string) ([]*models.Review, error) {
	g, err := s.Game(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetSortedReviewsForGame(g, option), nil
}

func (s *GameService) AverageRating(game *models.Game) (float64, bool) {
	return query.AverageRating(game)
}

func (s *GameService) AddReview(username string, gameID int64, rating int, comment string) (*models.Review, error) {
	const op = "services.games.AddReview"

	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	review, err := models.NewReview(user, game, rating, comment)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.AddReview(review); err != nil {
		s.log.Error("failed to store review",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (s *GameService) AddToWishlist(username string, gameID int64) error {
	const op = "services.games.AddToWishlist"

	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.AddToWishlist(user, game); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *GameService) RemoveFromWishlist(username string, gameID int64) error {
	const op = "services.games.RemoveFromWishlist"

	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.RemoveFromWishlist(user, game); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *GameService) InWishlist(username string, gameID int64) (bool, error) {
	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return false, err
	}
	return user.Wishlist().Contains(game), nil
}

func (s *GameService) AddToFavourites(username string, gameID int64) error {
	const op = "services.games.AddToFavourites"

	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.AddToFavourites(user, game); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *GameService) RemoveFromFavourites(username string, gameID int64) error {
	const op = "services.games.RemoveFromFavourites"

	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.repo.RemoveFromFavourites(user, game); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *GameService) IsFavourite(username string, gameID int64) (bool, error) {
	user, game, err := s.userAndGame(username, gameID)
	if err != nil {
		return false, err
	}
	return user.IsFavourite(game), nil
}

func (s *GameService) GenreGames(genre, sortMode string, page, size int) (Page[*models.Game], error) {
	const op = "services.games.GenreGames"

	games, err := s.repo.GetGamesByGenre(genre)
	if err != nil {
		return Page[*models.Game]{}, fmt.Errorf("%s: %w", op, err)
	}
	games, err = s.repo.GetSortedDataset(sortMode, games)
	if err != nil {
		return Page[*models.Game]{}, fmt.Errorf("%s: %w", op, err)
	}

	return newPage(games, page, size)
}

func (s *GameService) Genres() ([]models.Genre, error) {
	return s.repo.GetGenres()
}

func (s *GameService) Publishers() ([]models.Publisher, error) {
	return s.repo.GetPublishers()
}

func (s *GameService) userAndGame(username string, gameID int64) (*models.User, *models.Game, error) {
	user, err := s.repo.GetUser(username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%q: %w", username, ErrUnknownUser)
	}

	game, err := s.repo.GetGame(gameID)
	if err != nil {
		return nil, nil, err
	}
	if game == nil {
		return nil, nil, fmt.Errorf("game %d: %w", gameID, storage.ErrNotFound)
	}

	return user, game, nil
}
