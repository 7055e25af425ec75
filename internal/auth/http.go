// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/secureblog/internal/platform/request"
	"github.com/taibuivan/secureblog/internal/platform/respond"
	"github.com/taibuivan/secureblog/pkg/encode"
)

// # Definitions & Constructors

// Handler implements account-related HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with account routes.
//
// protect is the anti-forgery check; authenticate is the bearer check.
//
// # Endpoints
//   - POST /register : Creates a new account.        (anti-forgery)
//   - POST /login    : Returns a bearer token.        (anti-forgery)
//   - POST /logout   : Tells the client to drop it.   (anti-forgery)
//   - GET  /users    : Lists accounts.                (bearer)
func (handler *Handler) Routes(protect, authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/register", handler.register)
		r.Post("/login", handler.login)
		r.Post("/logout", handler.logout)
	})

	router.Group(func(r chi.Router) {
		r.Use(authenticate)
		r.Get("/users", handler.listUsers)
	})

	return router
}

// # Request & Response Payloads

type credentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// TokenResponse carries the bearer token issued by login.
type TokenResponse struct {
	Token string `json:"token"`
}

// presentUser encodes the username for safe display.
func presentUser(user *User) UserResponse {
	return UserResponse{ID: user.ID, Username: encode.HTML(user.Username)}
}

/*
register handles the creation of a new user account.

POST /register

Response:
  - 200: UserResponse
  - 400: Missing fields or "User already exists"
  - 403: Invalid CSRF token
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, presentUser(user))
}

/*
login authenticates a user and returns a bearer token.

POST /login

Response:
  - 200: TokenResponse
  - 401: Invalid credentials
  - 403: Invalid CSRF token
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input credentialsRequest

	// Shape errors are reported as bad credentials so login never reveals
	// which field was wrong.
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, handler.authService.fail())
		return
	}

	result, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, TokenResponse{Token: result.Token})
}

/*
logout acknowledges a logout request.

POST /logout

Tokens are stateless; the client discards its copy.
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	respond.Message(writer, LogoutMessage, "")
}

/*
listUsers returns every account.

GET /users

Response:
  - 200: []UserResponse
  - 401/403: Missing or invalid bearer token
*/
func (handler *Handler) listUsers(writer http.ResponseWriter, request *http.Request) {
	users, err := handler.authService.ListUsers(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, user := range users {
		response = append(response, presentUser(user))
	}
	respond.OK(writer, response)
}
