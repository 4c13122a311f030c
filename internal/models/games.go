package models

import (
	"errors"
	"strings"
)

// ReleaseDateLayout is the display format of Game.ReleaseDate, e.g. "Nov 12, 2007".
const ReleaseDateLayout = "Jan 2, 2006"

const UnknownPublisher = "Unknown"

var ErrNegativePrice = errors.New("price must not be negative")

type Genre struct {
	Name string `json:"name"`
}

func NewGenre(name string) Genre {
	return Genre{Name: name}
}

type Publisher struct {
	Name string `json:"name"`
}

// NewPublisher falls back to UnknownPublisher for a blank name.
func NewPublisher(name string) Publisher {
	name = strings.TrimSpace(name)
	if name == "" {
		name = UnknownPublisher
	}
	return Publisher{Name: name}
}

type Game struct {
	id          int64
	price       float64
	Title       string
	ReleaseDate string
	Description string
	ImageURL    string
	WebsiteURL  string
	Publisher   *Publisher

	genres  []Genre
	reviews []*Review
}

func NewGame(id int64, title string) *Game {
	return &Game{id: id, Title: title}
}

func (g *Game) ID() int64 {
	return g.id
}

func (g *Game) Price() float64 {
	return g.price
}

func (g *Game) SetPrice(price float64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	g.price = price
	return nil
}

// Equal compares games by id only.
func (g *Game) Equal(other *Game) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.id == other.id
}

func (g *Game) Genres() []Genre {
	out := make([]Genre, len(g.genres))
	copy(out, g.genres)
	return out
}

// AddGenre reports whether the genre was not already present.
func (g *Game) AddGenre(genre Genre) bool {
	if g.HasGenre(genre.Name) {
		return false
	}
	g.genres = append(g.genres, genre)
	return true
}

// SetGenres replaces the genre list, dropping duplicates.
func (g *Game) SetGenres(genres ...Genre) {
	g.genres = nil
	for _, genre := range genres {
		g.AddGenre(genre)
	}
}

func (g *Game) HasGenre(name string) bool {
	for _, genre := range g.genres {
		if genre.Name == name {
			return true
		}
	}
	return false
}

func (g *Game) Reviews() []*Review {
	out := make([]*Review, len(g.reviews))
	copy(out, g.reviews)
	return out
}

func (g *Game) hasReview(r *Review) bool {
	for _, existing := range g.reviews {
		if existing.id == r.id {
			return true
		}
	}
	return false
}
