package services

import (
	"io"
	"log/slog"
	"math"
	"regexp"
	"testing"

	"games_catalog/internal/models"
	"games_catalog/internal/query"
	"games_catalog/internal/storage"
	"games_catalog/internal/storage/mariadb"
	"games_catalog/internal/storage/memory"
	"games_catalog/internal/storage/storagetest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupRepo(t *testing.T) *memory.Repository {
	repo := memory.New()
	storagetest.Populate(t, repo)
	return repo
}

func setupMockDB(t *testing.T) (*mariadb.Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return mariadb.NewWithDB(gormDB, nil), mock
}

func ids(games []*models.Game) []int64 {
	out := make([]int64, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID())
	}
	return out
}

func TestGameService_Games(t *testing.T) {
	service := NewGameService(setupRepo(t), discardLogger())

	t.Run("first page", func(t *testing.T) {
		page, err := service.Games(query.SortName, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, []int64{1228870, 7940}, ids(page.Items))
		assert.Equal(t, 2, page.Pages)
		assert.Equal(t, 4, page.Total)
	})

	t.Run("latest", func(t *testing.T) {
		page, err := service.Games(query.SortLatest, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, []int64{1228870, 410320, 311120, 7940}, ids(page.Items))
	})

	t.Run("out of range", func(t *testing.T) {
		page, err := service.Games(query.SortName, 3, 2)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 2, page.Pages)
	})

	t.Run("huge page", func(t *testing.T) {
		page, err := service.Games(query.SortName, math.MaxInt, 2)
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, math.MaxInt, page.Page)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := service.Games(query.SortName, 1, 0)
		assert.ErrorIs(t, err, query.ErrInvalidPageSize)
	})
}

func TestGameService_NumberOfPages(t *testing.T) {
	service := NewGameService(setupRepo(t), discardLogger())

	pages, err := service.NumberOfPages(3)
	require.NoError(t, err)
	assert.Equal(t, 2, pages)

	_, err = service.NumberOfPages(0)
	assert.ErrorIs(t, err, query.ErrInvalidPageSize)
}

func TestGameService_Game(t *testing.T) {
	service := NewGameService(setupRepo(t), discardLogger())

	g, err := service.Game(7940)
	require.NoError(t, err)
	assert.Equal(t, "Call of Duty® 4: Modern Warfare®", g.Title)

	_, err = service.Game(1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestGameService_Reviews(t *testing.T) {
	service := NewGameService(setupRepo(t), discardLogger())

	reviews, err := service.SortedReviews(1228870, query.StarRatingsDescend)
	require.NoError(t, err)
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating())
	}
	assert.Equal(t, []int{4, 4, 3, 2}, ratings)

	g, _ := service.Game(1228870)
	avg, ok := service.AverageRating(g)
	assert.True(t, ok)
	assert.InDelta(t, 3.25, avg, 1e-9)

	g, _ = service.Game(7940)
	_, ok = service.AverageRating(g)
	assert.False(t, ok)
}

func TestGameService_AddReview(t *testing.T) {
	tests := []struct {
		name     string
		username string
		gameID   int64
		rating   int
		wantErr  error
	}{
		{name: "success", username: "FirsttestUser1", gameID: 7940, rating: 5},
		{name: "unknown user", username: "ghost", gameID: 7940, rating: 5, wantErr: ErrUnknownUser},
		{name: "unknown game", username: "FirsttestUser1", gameID: 1, rating: 5, wantErr: storage.ErrNotFound},
		{name: "bad rating", username: "FirsttestUser1", gameID: 7940, rating: 0, wantErr: models.ErrReviewRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewGameService(setupRepo(t), discardLogger())

			review, err := service.AddReview(tt.username, tt.gameID, tt.rating, "Still holds up.")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, review)
				return
			}

			require.NoError(t, err)
			g, _ := service.Game(tt.gameID)
			assert.Equal(t, []*models.Review{review}, g.Reviews())
			assert.Contains(t, review.User().Reviews(), review)
		})
	}
}

func TestGameService_WishlistAndFavourites(t *testing.T) {
	service := NewGameService(setupRepo(t), discardLogger())
	const user = "SecondtestUser2"

	require.NoError(t, service.AddToWishlist(user, 410320))
	in, err := service.InWishlist(user, 410320)
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, service.RemoveFromWishlist(user, 410320))
	in, _ = service.InWishlist(user, 410320)
	assert.False(t, in)

	require.NoError(t, service.AddToFavourites(user, 410320))
	fav, err := service.IsFavourite(user, 410320)
	require.NoError(t, err)
	assert.True(t, fav)

	require.NoError(t, service.RemoveFromFavourites(user, 410320))
	fav, _ = service.IsFavourite(user, 410320)
	assert.False(t, fav)

	assert.ErrorIs(t, service.AddToWishlist("ghost", 410320), ErrUnknownUser)
}

func TestGameService_GenreGames(t *testing.T) {
	service := NewGameService(setupRepo(t), discardLogger())

	page, err := service.GenreGames("Action", query.SortPrice, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []int64{311120, 7940, 1228870, 410320}, ids(page.Items))

	page, err = service.GenreGames("Non existent", query.SortName, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Pages)

	genres, err := service.Genres()
	require.NoError(t, err)
	assert.Equal(t, []models.Genre{{Name: "Action"}}, genres)

	publishers, err := service.Publishers()
	require.NoError(t, err)
	assert.Len(t, publishers, 4)
}

func TestGameService_Database(t *testing.T) {
	repo, mock := setupMockDB(t)
	service := NewGameService(repo, discardLogger())

	t.Run("number of pages", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `games`")).
			WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(21))

		pages, err := service.NumberOfPages(20)
		require.NoError(t, err)
		assert.Equal(t, 2, pages)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("game not found", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `games` WHERE game_id IN")).
			WillReturnRows(sqlmock.NewRows([]string{"game_id", "game_title"}))

		_, err := service.Game(42)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
