package controllers

import (
	"bytes"
	"encoding/json"
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
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Wishlist(username string) ([]*models.Game, error) {
	args := m.Called(username)
	g, _ := args.Get(0).([]*models.Game)
	return g, args.Error(1)
}

func (m *MockUserService) Favourites(username string) ([]*models.Game, error) {
	args := m.Called(username)
	g, _ := args.Get(0).([]*models.Game)
	return g, args.Error(1)
}

func (m *MockUserService) ReviewedGames(username string) ([]*models.Game, error) {
	args := m.Called(username)
	g, _ := args.Get(0).([]*models.Game)
	return g, args.Error(1)
}

func (m *MockUserService) Bio(username string) (string, error) {
	args := m.Called(username)
	return args.String(0), args.Error(1)
}

func (m *MockUserService) UpdateBio(username, bio string) error {
	return m.Called(username, bio).Error(0)
}

func TestUserController_Profile(t *testing.T) {
	m := &MockUserService{}
	ctrl := NewUserController(m, slog.New(slog.NewTextHandler(io.Discard, nil)))

	m.On("Bio", "thorke").Return("Co-op enjoyer", nil)
	m.On("Wishlist", "thorke").Return([]*models.Game{testGame()}, nil)
	m.On("Favourites", "thorke").Return([]*models.Game{}, nil)
	m.On("ReviewedGames", "thorke").Return([]*models.Game{}, nil)

	w := httptest.NewRecorder()
	ctrl.Profile(w, withUser(httptest.NewRequest(http.MethodGet, "/api/me", nil), "thorke"))

	assert.Equal(t, http.StatusOK, w.Code)
	var res ProfileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	assert.Equal(t, "Co-op enjoyer", res.Bio)
	require.Len(t, res.Wishlist, 1)
	assert.Equal(t, int64(7940), res.Wishlist[0].ID)
	assert.Empty(t, res.Favourites)
	m.AssertExpectations(t)
}

func TestUserController_Profile_UnknownUser(t *testing.T) {
	m := &MockUserService{}
	ctrl := NewUserController(m, slog.New(slog.NewTextHandler(io.Discard, nil)))

	m.On("Bio", "ghost").Return("", services.ErrUnknownUser)

	w := httptest.NewRecorder()
	ctrl.Profile(w, withUser(httptest.NewRequest(http.MethodGet, "/api/me", nil), "ghost"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserController_UpdateBio(t *testing.T) {
	m := &MockUserService{}
	ctrl := NewUserController(m, slog.New(slog.NewTextHandler(io.Discard, nil)))

	m.On("UpdateBio", "thorke", "new bio").Return(nil).Once()
	m.On("UpdateBio", "thorke", "boom").Return(errors.New("db down")).Once()

	w := httptest.NewRecorder()
	ctrl.UpdateBio(w, withUser(httptest.NewRequest(http.MethodPut, "/api/me/bio", bytes.NewBufferString(`{"bio":"new bio"}`)), "thorke"))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	ctrl.UpdateBio(w, withUser(httptest.NewRequest(http.MethodPut, "/api/me/bio", bytes.NewBufferString(`{"bio":"boom"}`)), "thorke"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	ctrl.UpdateBio(w, httptest.NewRequest(http.MethodPut, "/api/me/bio", bytes.NewBufferString(`{"bio":"x"}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	m.AssertExpectations(t)
}
