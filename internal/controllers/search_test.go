package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"games_catalog/internal/models"
	"games_catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(q, genre, publisher string, page, size int) (services.Page[*models.Game], error) {
	args := m.Called(q, genre, publisher, page, size)
	return args.Get(0).(services.Page[*models.Game]), args.Error(1)
}

func TestSearchController_Search(t *testing.T) {
	m := &MockSearchService{}
	ctrl := NewSearchController(m, slog.New(slog.NewTextHandler(io.Discard, nil)))

	m.On("Search", "duty", "Action", "", 1, 5).
		Return(services.Page[*models.Game]{Items: []*models.Game{testGame()}, Page: 1, Pages: 1, Size: 5, Total: 1}, nil)
	m.On("Search", "fail", "", "", 1, 20).
		Return(services.Page[*models.Game]{}, errors.New("db down"))

	w := httptest.NewRecorder()
	ctrl.Search(w, httptest.NewRequest(http.MethodGet, "/api/search?q=duty&genre=Action&page_size=5", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = httptest.NewRecorder()
	ctrl.Search(w, httptest.NewRequest(http.MethodGet, "/api/search?q=fail", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	m.AssertExpectations(t)
}
