package query

import (
	"math"
	"testing"

	"games_catalog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(t *testing.T, id int64, title, date string, price float64, publisher string, genres ...string) *models.Game {
	t.Helper()

	g := models.NewGame(id, title)
	g.ReleaseDate = date
	require.NoError(t, g.SetPrice(price))
	p := models.NewPublisher(publisher)
	g.Publisher = &p
	for _, name := range genres {
		g.AddGenre(models.NewGenre(name))
	}
	return g
}

func fixtureGames(t *testing.T) []*models.Game {
	return []*models.Game{
		newGame(t, 311120, "The Stalin Subway: Red Veil", "Sep 29, 2014", 4.99, "Buka Entertainment", "Action"),
		newGame(t, 1228870, "Bartlow's Dread Machine", "Oct 20, 2020", 19.99, "Beep Games, Inc.", "Action", "Indie"),
		newGame(t, 7940, "Call of Duty® 4: Modern Warfare®", "Nov 12, 2007", 9.99, "Activision", "Action"),
		newGame(t, 410320, "EARTH DEFENSE FORCE 4.1 The Shadow of New Despair", "Jul 18, 2016", 39.99, "D3PUBLISHER", "Action"),
	}
}

func ids(games []*models.Game) []int64 {
	out := make([]int64, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID())
	}
	return out
}

func TestSortGames(t *testing.T) {
	games := fixtureGames(t)

	tests := []struct {
		name string
		mode string
		want []int64
	}{
		{"name", SortName, []int64{1228870, 7940, 410320, 311120}},
		{"date", SortDate, []int64{7940, 311120, 410320, 1228870}},
		{"latest", SortLatest, []int64{1228870, 410320, 311120, 7940}},
		{"price", SortPrice, []int64{311120, 7940, 1228870, 410320}},
		{"unknown falls back to name", "rating", []int64{1228870, 7940, 410320, 311120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sorted, err := SortGames(games, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(sorted))

			again, err := SortGames(sorted, tt.mode)
			require.NoError(t, err)
			assert.Equal(t, sorted, again)
		})
	}

	assert.Equal(t, int64(311120), games[0].ID(), "input must not be reordered")
}

func TestSortGames_DateScenario(t *testing.T) {
	games := []*models.Game{
		newGame(t, 1, "Newer", "Nov 12, 2007", 1, ""),
		newGame(t, 2, "Older", "Jan 1, 1999", 1, ""),
	}

	byDate, err := SortGames(games, SortDate)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(byDate))

	latest, err := SortGames(games, SortLatest)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids(latest))
}

func TestSortGames_TieBreaksByID(t *testing.T) {
	games := []*models.Game{
		newGame(t, 30, "Same", "Jan 1, 2000", 5, ""),
		newGame(t, 10, "Same", "Jan 1, 2000", 5, ""),
		newGame(t, 20, "Same", "Jan 1, 2000", 5, ""),
	}

	for _, mode := range []string{SortName, SortDate, SortLatest, SortPrice} {
		sorted, err := SortGames(games, mode)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 20, 30}, ids(sorted), mode)
	}
}

func TestSortGames_CaseSensitiveTitles(t *testing.T) {
	games := []*models.Game{
		newGame(t, 1, "alpha", "Jan 1, 2000", 1, ""),
		newGame(t, 2, "Beta", "Jan 1, 2000", 1, ""),
	}

	sorted, err := SortGames(games, SortName)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 1}, ids(sorted))
}

func TestSortGames_MalformedDate(t *testing.T) {
	games := []*models.Game{
		newGame(t, 1, "Good", "Nov 12, 2007", 1, ""),
		newGame(t, 2, "Bad", "2007-11-12", 1, ""),
	}

	_, err := SortGames(games, SortDate)
	assert.ErrorIs(t, err, ErrInvalidReleaseDate)

	_, err = SortGames(games, SortName)
	assert.NoError(t, err)
}

func TestSortReviews(t *testing.T) {
	user := models.NewUser("thorke", "hash")
	game := models.NewGame(1, "Game")

	var reviews []*models.Review
	for _, c := range []struct {
		rating  int
		comment string
	}{{3, "medium text"}, {5, "short"}, {1, "a much longer comment here"}, {4, "ok"}} {
		r, err := models.NewReview(user, game, c.rating, c.comment)
		require.NoError(t, err)
		reviews = append(reviews, r)
	}

	comments := func(rs []*models.Review) []string {
		out := make([]string, 0, len(rs))
		for _, r := range rs {
			out = append(out, r.Comment())
		}
		return out
	}

	assert.Equal(t, []string{"ok", "short", "medium text", "a much longer comment here"},
		comments(SortReviews(reviews, CommentLengthAscend)))
	assert.Equal(t, []string{"a much longer comment here", "medium text", "short", "ok"},
		comments(SortReviews(reviews, CommentLengthDescend)))
	assert.Equal(t, []string{"a much longer comment here", "medium text", "ok", "short"},
		comments(SortReviews(reviews, StarRatingsAscend)))
	assert.Equal(t, []string{"short", "ok", "medium text", "a much longer comment here"},
		comments(SortReviews(reviews, StarRatingsDescend)))
	assert.Equal(t, comments(reviews), comments(SortReviews(reviews, "bogus")))
}

func TestSublist(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	chunks, err := Sublist(items, 3)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3}, {4, 5}}, chunks)

	chunks, err = Sublist(items, 5)
	require.NoError(t, err)
	assert.Equal(t, [][]int{{1, 2, 3, 4, 5}}, chunks)

	chunks, err = Sublist([]int{}, 2)
	require.NoError(t, err)
	assert.Empty(t, chunks)

	_, err = Sublist(items, 0)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}

func TestSublist_Properties(t *testing.T) {
	items := make([]int, 47)
	for i := range items {
		items[i] = i
	}

	for size := 1; size <= 50; size++ {
		chunks, err := Sublist(items, size)
		require.NoError(t, err)
		assert.Len(t, chunks, TotalPages(len(items), size))

		var joined []int
		for i, c := range chunks {
			if i < len(chunks)-1 {
				assert.Len(t, c, size)
			}
			joined = append(joined, c...)
		}
		assert.Equal(t, items, joined)
	}
}

func TestPaginate(t *testing.T) {
	items := make([]int, 21)
	for i := range items {
		items[i] = i + 1
	}

	assert.Len(t, Paginate(items, 1, 20), 20)
	assert.Equal(t, []int{21}, Paginate(items, 2, 20))
	assert.Empty(t, Paginate(items, 3, 20))
	assert.Empty(t, Paginate(items, 0, 20))
	assert.Empty(t, Paginate(items, math.MaxInt, 2))
	assert.Empty(t, Paginate(items, math.MaxInt/2, math.MaxInt/2))
	assert.Equal(t, items, Paginate(items, 1, math.MaxInt))
	assert.Equal(t, 1, TotalPages(len(items), math.MaxInt))
	assert.Equal(t, 2, TotalPages(len(items), 20))

	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 1, TotalPages(1, 20))
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, []int{1}, Paginate([]int{1}, 1, 20))
}

func TestSearch(t *testing.T) {
	games := fixtureGames(t)

	tests := []struct {
		name      string
		query     string
		genre     string
		publisher string
		want      int
	}{
		{"empty filters match all", "", "", "", 4},
		{"title query", "Call", "", "", 1},
		{"case insensitive", "earth defense", "", "", 1},
		{"genre", "", "Action", "", 4},
		{"second genre", "", "Indie", "", 1},
		{"unknown genre", "", "Non existent", "", 0},
		{"publisher", "", "", "Buka Entertainment", 1},
		{"no match", "NotRealGame", "", "", 0},
		{"combined", "the", "Action", "Buka Entertainment", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Search(tt.query, models.Genre{Name: tt.genre}, models.Publisher{Name: tt.publisher}, games)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestAverageRating(t *testing.T) {
	user := models.NewUser("thorke", "hash")
	game := models.NewGame(1, "Game")

	_, ok := AverageRating(game)
	assert.False(t, ok)

	for _, rating := range []int{3, 4, 3, 2} {
		r, err := models.NewReview(user, game, rating, "")
		require.NoError(t, err)
		models.LinkReview(r)
	}

	avg, ok := AverageRating(game)
	assert.True(t, ok)
	assert.Equal(t, 3.0, avg)
}
