package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"games_catalog/internal/middleware"
	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/services"

	"github.com/go-chi/chi/v5"
)

type GameServicer interface {
	Games(sortMode string, page, size int) (services.Page[*models.Game], error)
	NumberOfPages(size int) (int, error)
	Game(id int64) (*models.Game, error)
	AverageRating(game *models.Game) (float64, bool)
	SortedReviews(id int64, option string) ([]*models.Review, error)
	GenreGames(genre, sortMode string, page, size int) (services.Page[*models.Game], error)
	Genres() ([]models.Genre, error)
	Publishers() ([]models.Publisher, error)
	AddReview(username string, gameID int64, rating int, comment string) (*models.Review, error)
	AddToWishlist(username string, gameID int64) error
	RemoveFromWishlist(username string, gameID int64) error
	AddToFavourites(username string, gameID int64) error
	RemoveFromFavourites(username string, gameID int64) error
	InWishlist(username string, gameID int64) (bool, error)
	IsFavourite(username string, gameID int64) (bool, error)
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type GameController struct {
	service GameServicer
	log     *slog.Logger
}

func NewGameController(s GameServicer, log *slog.Logger) *GameController {
	return &GameController{
		service: s,
		log:     log,
	}
}

func (c *GameController) GetAll(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetAll"

	page, size, err := pageParams(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	sortMode := r.URL.Query().Get("sort")
	if sortMode == "" {
		sortMode = query.SortName
	}

	res, err := c.service.Games(sortMode, page, size)
	if err != nil {
		c.log.Error(
			ErrGetGames.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		http.Error(w, ErrGetGames.Error(), status(err, http.StatusInternalServerError))
		return
	}

	writeJSON(w, c.log, http.StatusOK, newPaginationResponse(res, c.service.AverageRating))
}

func (c *GameController) GetPages(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetPages"

	_, size, err := pageParams(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	pages, err := c.service.NumberOfPages(size)
	if err != nil {
		code := status(err, http.StatusInternalServerError)
		if code == http.StatusInternalServerError {
			c.log.Error(
				ErrGetGames.Error(),
				slog.String("operation", op),
				slog.String("error", err.Error()))
		}
		http.Error(w, ErrGetGames.Error(), code)
		return
	}

	writeJSON(w, c.log, http.StatusOK, PagesResponse{Pages: pages, Size: size})
}

func (c *GameController) GetByID(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetByID"

	id, err := pathID(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	game, err := c.service.Game(id)
	if err != nil {
		code := status(err, http.StatusInternalServerError)
		if code == http.StatusNotFound {
			http.Error(w, ErrNotFound.Error(), code)
			return
		}
		c.log.Error(
			ErrGetGame.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		http.Error(w, ErrGetGame.Error(), code)
		return
	}

	writeJSON(w, c.log, http.StatusOK, newGameResponse(game, c.service.AverageRating))
}

func (c *GameController) GetReviews(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetReviews"

	id, err := pathID(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	reviews, err := c.service.SortedReviews(id, r.URL.Query().Get("sort"))
	if err != nil {
		code := status(err, http.StatusInternalServerError)
		if code != http.StatusNotFound {
			c.log.Error(
				ErrGetReviews.Error(),
				slog.String("operation", op),
				slog.String("error", err.Error()))
		}
		http.Error(w, ErrGetReviews.Error(), code)
		return
	}

	out := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, newReviewResponse(rv))
	}

	writeJSON(w, c.log, http.StatusOK, out)
}

func (c *GameController) CreateReview(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.CreateReview"

	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	var req CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidPayload.Error(), http.StatusBadRequest)
		return
	}

	review, err := c.service.AddReview(username, id, req.Rating, req.Comment)
	if err != nil {
		code := status(err, http.StatusInternalServerError)
		if code == http.StatusInternalServerError {
			c.log.Error(
				ErrCreateReview.Error(),
				slog.String("operation", op),
				slog.String("error", err.Error()))
		}
		http.Error(w, ErrCreateReview.Error(), code)
		return
	}

	writeJSON(w, c.log, http.StatusCreated, newReviewResponse(review))
}

func (c *GameController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	c.updateList(w, r, "controllers.games.AddToWishlist", c.service.AddToWishlist)
}

func (c *GameController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	c.updateList(w, r, "controllers.games.RemoveFromWishlist", c.service.RemoveFromWishlist)
}

func (c *GameController) AddToFavourites(w http.ResponseWriter, r *http.Request) {
	c.updateList(w, r, "controllers.games.AddToFavourites", c.service.AddToFavourites)
}

func (c *GameController) RemoveFromFavourites(w http.ResponseWriter, r *http.Request) {
	c.updateList(w, r, "controllers.games.RemoveFromFavourites", c.service.RemoveFromFavourites)
}

func (c *GameController) updateList(w http.ResponseWriter, r *http.Request, op string, fn func(string, int64) error) {
	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	if err := fn(username, id); err != nil {
		code := status(err, http.StatusInternalServerError)
		if code == http.StatusInternalServerError {
			c.log.Error(
				ErrUpdateList.Error(),
				slog.String("operation", op),
				slog.String("error", err.Error()))
		}
		http.Error(w, ErrUpdateList.Error(), code)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetStatus reports whether the game is on the caller's wishlist and among
// their favourites.
func (c *GameController) GetStatus(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetStatus"

	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	id, err := pathID(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	res := GameStatusResponse{GameID: id}
	if res.InWishlist, err = c.service.InWishlist(username, id); err == nil {
		res.IsFavourite, err = c.service.IsFavourite(username, id)
	}
	if err != nil {
		code := status(err, http.StatusInternalServerError)
		if code == http.StatusInternalServerError {
			c.log.Error(
				ErrGetGame.Error(),
				slog.String("operation", op),
				slog.String("error", err.Error()))
		}
		http.Error(w, ErrGetGame.Error(), code)
		return
	}

	writeJSON(w, c.log, http.StatusOK, res)
}

func (c *GameController) GetGenres(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetGenres"

	genres, err := c.service.Genres()
	if err != nil {
		c.log.Error(
			ErrGetGenres.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		http.Error(w, ErrGetGenres.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, c.log, http.StatusOK, genres)
}

func (c *GameController) GetGenreGames(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetGenreGames"

	page, size, err := pageParams(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	sortMode := r.URL.Query().Get("sort")
	if sortMode == "" {
		sortMode = query.SortName
	}

	res, err := c.service.GenreGames(chi.URLParam(r, "name"), sortMode, page, size)
	if err != nil {
		c.log.Error(
			ErrGetGames.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		http.Error(w, ErrGetGames.Error(), status(err, http.StatusInternalServerError))
		return
	}

	writeJSON(w, c.log, http.StatusOK, newPaginationResponse(res, c.service.AverageRating))
}

func (c *GameController) GetPublishers(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.games.GetPublishers"

	publishers, err := c.service.Publishers()
	if err != nil {
		c.log.Error(
			ErrGetPublishers.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		http.Error(w, ErrGetPublishers.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, c.log, http.StatusOK, publishers)
}
