package mariadb

import (
	"time"

	"games_catalog/internal/models"
)

type publisherRow struct {
	Name string `gorm:"column:publisher_name;primaryKey;size:255"`
}

func (publisherRow) TableName() string { return "publishers" }

type genreRow struct {
	Name string `gorm:"column:genre_name;primaryKey;size:255"`
}

func (genreRow) TableName() string { return "genres" }

type gameRow struct {
	GameID        int64   `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	Title         string  `gorm:"column:game_title;type:text;not null"`
	Price         float64 `gorm:"column:game_price;not null"`
	ReleaseDate   string  `gorm:"column:release_date;size:50;not null"`
	Description   string  `gorm:"column:game_description;type:text"`
	ImageURL      string  `gorm:"column:game_image_url;size:255"`
	WebsiteURL    string  `gorm:"column:game_website_url;size:255"`
	PublisherName *string `gorm:"column:publisher_name;size:255;index"`
}

func (gameRow) TableName() string { return "games" }

type gameGenreRow struct {
	GameID    int64  `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	GenreName string `gorm:"column:genre_name;primaryKey;size:255;index"`
	Position  int    `gorm:"column:position;not null"`
}

func (gameGenreRow) TableName() string { return "game_genres" }

type userRow struct {
	Username string  `gorm:"column:user_name;primaryKey;size:255"`
	Password string  `gorm:"column:password;size:255;not null"`
	Bio      *string `gorm:"column:bio;size:255"`
}

func (userRow) TableName() string { return "users" }

type reviewRow struct {
	ReviewID  string    `gorm:"column:review_id;primaryKey;size:36"`
	Username  string    `gorm:"column:user_name;size:255;not null;index"`
	GameID    int64     `gorm:"column:game_id;not null;index"`
	Rating    int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"column:comment;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_at;type:datetime(6);not null"`
}

func (reviewRow) TableName() string { return "reviews" }

type favouriteRow struct {
	Username string    `gorm:"column:user_name;primaryKey;size:255"`
	GameID   int64     `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	AddedAt  time.Time `gorm:"column:added_at;type:datetime(6);not null"`
}

func (favouriteRow) TableName() string { return "user_favourites" }

type wishlistGameRow struct {
	Username string    `gorm:"column:user_name;primaryKey;size:255"`
	GameID   int64     `gorm:"column:game_id;primaryKey;autoIncrement:false"`
	AddedAt  time.Time `gorm:"column:added_at;type:datetime(6);not null"`
}

func (wishlistGameRow) TableName() string { return "wishlist_games" }

func newGameRow(g *models.Game) gameRow {
	row := gameRow{
		GameID:      g.ID(),
		Title:       g.Title,
		Price:       g.Price(),
		ReleaseDate: g.ReleaseDate,
		Description: g.Description,
		ImageURL:    g.ImageURL,
		WebsiteURL:  g.WebsiteURL,
	}
	if g.Publisher != nil {
		name := g.Publisher.Name
		row.PublisherName = &name
	}
	return row
}

// apply copies the row's columns onto g. Genres and reviews are linked
// separately.
func (row gameRow) apply(g *models.Game) {
	g.Title = row.Title
	g.ReleaseDate = row.ReleaseDate
	g.Description = row.Description
	g.ImageURL = row.ImageURL
	g.WebsiteURL = row.WebsiteURL
	// the column is NOT NULL and only ever written from a validated game
	_ = g.SetPrice(row.Price)
	g.Publisher = nil
	if row.PublisherName != nil {
		p := models.Publisher{Name: *row.PublisherName}
		g.Publisher = &p
	}
}

func newUserRow(u *models.User) userRow {
	row := userRow{Username: u.Username(), Password: u.Password}
	if bio, ok := u.Bio(); ok {
		row.Bio = &bio
	}
	return row
}

func (row userRow) model() *models.User {
	u := models.NewUser(row.Username, row.Password)
	if row.Bio != nil {
		u.SetBio(*row.Bio)
	}
	return u
}

func newReviewRow(r *models.Review) reviewRow {
	return reviewRow{
		ReviewID:  r.ID().String(),
		Username:  r.User().Username(),
		GameID:    r.Game().ID(),
		Rating:    r.Rating(),
		Comment:   r.Comment(),
		CreatedAt: r.CreatedAt(),
	}
}
