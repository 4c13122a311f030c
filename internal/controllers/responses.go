package controllers

import (
	"time"

	"games_catalog/internal/models"
	"games_catalog/internal/services"
)

// ratingFunc computes a game's average rating; ok is false when the game has
// no reviews.
type ratingFunc func(game *models.Game) (avg float64, ok bool)

type GameResponse struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Price         float64  `json:"price"`
	ReleaseDate   string   `json:"release_date"`
	Description   string   `json:"description,omitempty"`
	ImageURL      string   `json:"image_url,omitempty"`
	WebsiteURL    string   `json:"website_url,omitempty"`
	Publisher     string   `json:"publisher"`
	Genres        []string `json:"genres"`
	AverageRating *float64 `json:"average_rating"`
	ReviewCount   int      `json:"review_count"`
}

type ReviewResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	GameID    int64     `json:"game_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

type PaginationResponse struct {
	Total   int            `json:"total"`
	Pages   int            `json:"pages"`
	Current int            `json:"current"`
	Size    int            `json:"size"`
	Data    []GameResponse `json:"data"`
}

type PagesResponse struct {
	Pages int `json:"pages"`
	Size  int `json:"size"`
}

type GameStatusResponse struct {
	GameID      int64 `json:"game_id"`
	InWishlist  bool  `json:"in_wishlist"`
	IsFavourite bool  `json:"is_favourite"`
}

type ProfileResponse struct {
	Username   string         `json:"username"`
	Bio        string         `json:"bio"`
	Wishlist   []GameResponse `json:"wishlist"`
	Favourites []GameResponse `json:"favourites"`
	Reviewed   []GameResponse `json:"reviewed"`
}

func newGameResponse(g *models.Game, rating ratingFunc) GameResponse {
	res := GameResponse{
		ID:          g.ID(),
		Title:       g.Title,
		Price:       g.Price(),
		ReleaseDate: g.ReleaseDate,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		WebsiteURL:  g.WebsiteURL,
		Publisher:   models.UnknownPublisher,
		Genres:      make([]string, 0),
		ReviewCount: len(g.Reviews()),
	}
	if g.Publisher != nil {
		res.Publisher = g.Publisher.Name
	}
	for _, genre := range g.Genres() {
		res.Genres = append(res.Genres, genre.Name)
	}
	if avg, ok := rating(g); ok {
		res.AverageRating = &avg
	}
	return res
}

func newGameResponses(games []*models.Game, rating ratingFunc) []GameResponse {
	out := make([]GameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, newGameResponse(g, rating))
	}
	return out
}

func newReviewResponse(r *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:        r.ID().String(),
		Username:  r.User().Username(),
		GameID:    r.Game().ID(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
	}
}

func newPaginationResponse(p services.Page[*models.Game], rating ratingFunc) PaginationResponse {
	return PaginationResponse{
		Total:   p.Total,
		Pages:   p.Pages,
		Current: p.Page,
		Size:    p.Size,
		Data:    newGameResponses(p.Items, rating),
	}
}
