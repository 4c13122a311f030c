package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"games_catalog/internal/middleware"
	"games_catalog/internal/models"
	"games_catalog/internal/query"
)

type UserServicer interface {
	Wishlist(username string) ([]*models.Game, error)
	Favourites(username string) ([]*models.Game, error)
	ReviewedGames(username string) ([]*models.Game, error)
	Bio(username string) (string, error)
	UpdateBio(username, bio string) error
}

type UpdateBioRequest struct {
	Bio string `json:"bio"`
}

type UserController struct {
	service UserServicer
	log     *slog.Logger
}

func NewUserController(s UserServicer, log *slog.Logger) *UserController {
	return &UserController{service: s, log: log}
}

func (c *UserController) Profile(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.users.Profile"

	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	res, err := c.profile(username)
	if err != nil {
		c.log.Error(ErrGetProfile.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		http.Error(w, ErrGetProfile.Error(), status(err, http.StatusInternalServerError))
		return
	}

	writeJSON(w, c.log, http.StatusOK, res)
}

func (c *UserController) UpdateBio(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.users.UpdateBio"

	username, ok := middleware.UsernameFromContext(r.Context())
	if !ok {
		http.Error(w, ErrUnauthorized.Error(), http.StatusUnauthorized)
		return
	}

	var req UpdateBioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, ErrInvalidPayload.Error(), http.StatusBadRequest)
		return
	}

	if err := c.service.UpdateBio(username, req.Bio); err != nil {
		c.log.Error(ErrUpdateBio.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		http.Error(w, ErrUpdateBio.Error(), status(err, http.StatusInternalServerError))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *UserController) profile(username string) (ProfileResponse, error) {
	res := ProfileResponse{Username: username}

	bio, err := c.service.Bio(username)
	if err != nil {
		return res, err
	}
	res.Bio = bio

	wishlist, err := c.service.Wishlist(username)
	if err != nil {
		return res, err
	}
	res.Wishlist = newGameResponses(wishlist, query.AverageRating)

	favourites, err := c.service.Favourites(username)
	if err != nil {
		return res, err
	}
	res.Favourites = newGameResponses(favourites, query.AverageRating)

	reviewed, err := c.service.ReviewedGames(username)
	if err != nil {
		return res, err
	}
	res.Reviewed = newGameResponses(reviewed, query.AverageRating)

	return res, nil
}
