package loader

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"games_catalog/internal/models"

	"github.com/PuerkitoBio/goquery"
)

const (
	GamesFile   = "games.csv"
	UsersFile   = "users.csv"
	ReviewsFile = "reviews.csv"
)

var errMissingColumn = errors.New("missing column")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source hands out the tabular data files by name.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

// table is a CSV file addressed by header name.
type table struct {
	name    string
	columns map[string]int
	rows    [][]string
}

func readTable(src Source, name string) (*table, error) {
	rc, err := src.Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	br := bufio.NewReader(rc)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	t := &table{name: name, columns: make(map[string]int)}
	if len(records) == 0 {
		return t, nil
	}

	for i, col := range records[0] {
		t.columns[strings.TrimSpace(col)] = i
	}
	t.rows = records[1:]

	return t, nil
}

func (t *table) field(row []string, col string) (string, error) {
	i, ok := t.columns[col]
	if !ok || i >= len(row) {
		return "", fmt.Errorf("%w %q", errMissingColumn, col)
	}
	return row[i], nil
}

// optional returns an empty string for a column the file does not have.
func (t *table) optional(row []string, col string) string {
	v, _ := t.field(row, col)
	return v
}

func parseGame(t *table, row []string) (*models.Game, error) {
	cols := map[string]string{}
	for _, col := range []string{"AppID", "Name", "Release date", "Price", "About the game", "Header image", "Publishers", "Genres"} {
		v, err := t.field(row, col)
		if err != nil {
			return nil, err
		}
		cols[col] = v
	}

	id, err := strconv.ParseInt(strings.TrimSpace(cols["AppID"]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("AppID: %w", err)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(cols["Price"]), 64)
	if err != nil {
		return nil, fmt.Errorf("Price: %w", err)
	}

	game := models.NewGame(id, cols["Name"])
	if err := game.SetPrice(price); err != nil {
		return nil, err
	}
	game.ReleaseDate = strings.TrimSpace(cols["Release date"])
	game.Description = plainText(cols["About the game"])
	game.ImageURL = strings.TrimSpace(cols["Header image"])
	game.WebsiteURL = strings.TrimSpace(t.optional(row, "Website"))

	publisher := models.NewPublisher(cols["Publishers"])
	game.Publisher = &publisher

	for _, name := range strings.Split(cols["Genres"], ",") {
		if name = strings.TrimSpace(name); name != "" {
			game.AddGenre(models.NewGenre(name))
		}
	}

	return game, nil
}

// plainText strips markup from a store description and collapses whitespace.
func plainText(s string) string {
	if strings.ContainsRune(s, '<') {
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(s)); err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}

type userRecord struct {
	username string
	password string
}

func parseUser(t *table, row []string) (userRecord, error) {
	username, err := t.field(row, "username")
	if err != nil {
		return userRecord{}, err
	}
	password, err := t.field(row, "password")
	if err != nil {
		return userRecord{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return userRecord{}, errors.New("empty username")
	}
	if password == "" {
		return userRecord{}, errors.New("empty password")
	}

	return userRecord{username: username, password: password}, nil
}

type reviewRecord struct {
	reviewer string
	gameID   int64
	rating   int
	comment  string
}

func parseReview(t *table, row []string) (reviewRecord, error) {
	var rec reviewRecord

	reviewer, err := t.field(row, "reviewer")
	if err != nil {
		return rec, err
	}
	rawID, err := t.field(row, "game-id")
	if err != nil {
		return rec, err
	}
	rawRating, err := t.field(row, "rating")
	if err != nil {
		return rec, err
	}
	comment, err := t.field(row, "comment")
	if err != nil {
		return rec, err
	}

	rec.gameID, err = strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		return rec, fmt.Errorf("game-id: %w", err)
	}
	rec.rating, err = strconv.Atoi(strings.TrimSpace(rawRating))
	if err != nil {
		return rec, fmt.Errorf("rating: %w", err)
	}
	if rec.rating < models.MinRating || rec.rating > models.MaxRating {
		return rec, models.ErrReviewRating
	}

	rec.reviewer = strings.TrimSpace(reviewer)
	rec.comment = comment

	return rec, nil
}
