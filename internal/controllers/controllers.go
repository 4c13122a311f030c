package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/services"
	"games_catalog/internal/storage"

	"github.com/go-chi/chi/v5"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrBadRequest     = errors.New("bad request")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrGetGames       = errors.New("failed to get games")
	ErrGetGame        = errors.New("failed to get game")
	ErrGetReviews     = errors.New("failed to get reviews")
	ErrGetGenres      = errors.New("failed to get genres")
	ErrGetPublishers  = errors.New("failed to get publishers")
	ErrSearch         = errors.New("failed to search games")
	ErrCreateReview   = errors.New("failed to create review")
	ErrUpdateList     = errors.New("failed to update list")
	ErrGetProfile     = errors.New("failed to get profile")
	ErrUpdateBio      = errors.New("failed to update bio")
	ErrRegister       = errors.New("failed to register")
	ErrLogin          = errors.New("failed to login")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrEncoding       = errors.New("failed to encode")
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(ErrEncoding.Error(), slog.String("error", err.Error()))
	}
}

// status maps service and storage errors onto HTTP codes; fallback is
// used for everything else.
func status(err error, fallback int) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, services.ErrUnknownUser):
		return http.StatusNotFound
	case errors.Is(err, query.ErrInvalidPageSize), errors.Is(err, models.ErrReviewRating):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNameNotUnique):
		return http.StatusConflict
	case errors.Is(err, services.ErrAuthentication):
		return http.StatusUnauthorized
	}
	return fallback
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func pageParams(r *http.Request) (page, size int, err error) {
	q := r.URL.Query()

	page, size = defaultPage, defaultPageSize
	if v := q.Get("page"); v != "" {
		if page, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}
	if v := q.Get("page_size"); v != "" {
		if size, err = strconv.Atoi(v); err != nil {
			return 0, 0, err
		}
	}

	return page, size, nil
}
