package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisher(t *testing.T) {
	assert.Equal(t, "Activision", NewPublisher(" Activision ").Name)
	assert.Equal(t, UnknownPublisher, NewPublisher("").Name)
	assert.Equal(t, UnknownPublisher, NewPublisher("   ").Name)
}

func TestGame_SetPrice(t *testing.T) {
	g := NewGame(7940, "Call of Duty® 4: Modern Warfare®")

	require.NoError(t, g.SetPrice(9.99))
	assert.Equal(t, 9.99, g.Price())

	assert.ErrorIs(t, g.SetPrice(-1), ErrNegativePrice)
	assert.Equal(t, 9.99, g.Price())
}

func TestGame_AddGenre(t *testing.T) {
	g := NewGame(1, "Game")

	assert.True(t, g.AddGenre(NewGenre("Action")))
	assert.False(t, g.AddGenre(NewGenre("Action")))
	assert.True(t, g.AddGenre(NewGenre("action")))

	assert.Equal(t, []Genre{{Name: "Action"}, {Name: "action"}}, g.Genres())
	assert.True(t, g.HasGenre("Action"))
	assert.False(t, g.HasGenre("Indie"))

	g.SetGenres(NewGenre("Indie"), NewGenre("Indie"))
	assert.Equal(t, []Genre{{Name: "Indie"}}, g.Genres())
	assert.False(t, g.HasGenre("Action"))

	g.SetGenres()
	assert.Empty(t, g.Genres())
}

func TestGame_Equal(t *testing.T) {
	assert.True(t, NewGame(1, "a").Equal(NewGame(1, "b")))
	assert.False(t, NewGame(1, "a").Equal(NewGame(2, "a")))
	assert.False(t, NewGame(1, "a").Equal(nil))
}

func TestNewReview(t *testing.T) {
	user := NewUser("thorke", "hash")
	game := NewGame(1995240, "Deer Journey")

	t.Run("valid", func(t *testing.T) {
		r, err := NewReview(user, game, 5, "great")
		require.NoError(t, err)
		assert.Equal(t, 5, r.Rating())
		assert.Equal(t, "great", r.Comment())
		assert.Same(t, user, r.User())
		assert.Same(t, game, r.Game())
		assert.Empty(t, user.Reviews())
		assert.Empty(t, game.Reviews())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewReview(nil, game, 5, "")
		assert.ErrorIs(t, err, ErrReviewUser)

		_, err = NewReview(user, nil, 5, "")
		assert.ErrorIs(t, err, ErrReviewGame)

		_, err = NewReview(user, game, 0, "")
		assert.ErrorIs(t, err, ErrReviewRating)

		_, err = NewReview(user, game, 6, "")
		assert.ErrorIs(t, err, ErrReviewRating)
	})
}

func TestLinkReview(t *testing.T) {
	user := NewUser("thorke", "hash")
	game := NewGame(1995240, "Deer Journey")
	r, err := NewReview(user, game, 4, "nice")
	require.NoError(t, err)

	assert.True(t, LinkReview(r))
	assert.False(t, LinkReview(r))

	assert.Equal(t, []*Review{r}, user.Reviews())
	assert.Equal(t, []*Review{r}, game.Reviews())
}

func TestWishlist(t *testing.T) {
	user := NewUser("thorke", "hash")
	game := NewGame(7940, "Call of Duty")
	wl := user.Wishlist()

	assert.Equal(t, "thorke", wl.Owner())
	assert.True(t, wl.Add(game))
	assert.False(t, wl.Add(NewGame(7940, "same id")))
	assert.Equal(t, 1, wl.Len())
	assert.True(t, wl.Contains(game))

	assert.False(t, wl.Remove(NewGame(1, "absent")))
	assert.True(t, wl.Remove(game))
	assert.Equal(t, 0, wl.Len())
	assert.False(t, wl.Remove(game))
}

func TestUser_Favourites(t *testing.T) {
	user := NewUser("thorke", "hash")
	a := NewGame(1, "A")
	b := NewGame(2, "B")

	assert.True(t, user.AddFavourite(a))
	assert.True(t, user.AddFavourite(b))
	assert.False(t, user.AddFavourite(a))
	assert.Equal(t, []*Game{a, b}, user.FavouriteGames())

	assert.True(t, user.RemoveFavourite(a))
	assert.False(t, user.RemoveFavourite(a))
	assert.Equal(t, []*Game{b}, user.FavouriteGames())
}

func TestUser_Bio(t *testing.T) {
	user := NewUser("thorke", "hash")

	_, ok := user.Bio()
	assert.False(t, ok)

	user.SetBio("")
	bio, ok := user.Bio()
	assert.True(t, ok)
	assert.Equal(t, "", bio)
}
