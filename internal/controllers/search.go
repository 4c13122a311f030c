package controllers

import (
	"log/slog"
	"net/http"

	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/services"
)

type SearchServicer interface {
	Search(q, genre, publisher string, page, size int) (services.Page[*models.Game], error)
}

type SearchController struct {
	service SearchServicer
	log     *slog.Logger
}

func NewSearchController(s SearchServicer, log *slog.Logger) *SearchController {
	return &SearchController{service: s, log: log}
}

func (c *SearchController) Search(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.search.Search"

	page, size, err := pageParams(r)
	if err != nil {
		http.Error(w, ErrBadRequest.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	res, err := c.service.Search(q.Get("q"), q.Get("genre"), q.Get("publisher"), page, size)
	if err != nil {
		c.log.Error(
			ErrSearch.Error(),
			slog.String("operation", op),
			slog.String("error", err.Error()))
		http.Error(w, ErrSearch.Error(), status(err, http.StatusInternalServerError))
		return
	}

	writeJSON(w, c.log, http.StatusOK, newPaginationResponse(res, query.AverageRating))
}
