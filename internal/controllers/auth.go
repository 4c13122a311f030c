package controllers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"games_catalog/internal/models"
)

var (
	ErrMissingUsername = errors.New("username is required")
	ErrMissingPassword = errors.New("password is required")
)

type AuthServicer interface {
	Register(username, password string) error
	Authenticate(username, password string) (*models.User, error)
}

type AuthController struct {
	log     *slog.Logger
	service AuthServicer
}

func NewAuthController(log *slog.Logger, s AuthServicer) *AuthController {
	return &AuthController{log: log, service: s}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Username string `json:"username"`
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.auth.Register"

	req, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.service.Register(req.Username, req.Password); err != nil {
		code := status(err, http.StatusInternalServerError)
		if code == http.StatusConflict {
			http.Error(w, err.Error(), code)
			return
		}
		c.log.Error(ErrRegister.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		http.Error(w, ErrRegister.Error(), code)
		return
	}

	writeJSON(w, c.log, http.StatusCreated, LoginResponse{Username: req.Username})
}

// Login checks credentials. Subsequent requests authenticate with HTTP
// basic auth.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	const op = "controllers.auth.Login"

	req, err := decodeCredentials(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := c.service.Authenticate(req.Username, req.Password)
	if err != nil {
		code := status(err, http.StatusInternalServerError)
		if code != http.StatusUnauthorized {
			c.log.Error(ErrLogin.Error(), slog.String("operation", op), slog.String("error", err.Error()))
		}
		http.Error(w, ErrLogin.Error(), code)
		return
	}

	writeJSON(w, c.log, http.StatusOK, LoginResponse{Username: user.Username()})
}

func decodeCredentials(r *http.Request) (CredentialsRequest, error) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, ErrInvalidPayload
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return req, ErrMissingUsername
	}
	if req.Password == "" {
		return req, ErrMissingPassword
	}

	return req, nil
}
