// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/secureblog/internal/platform/request"
	"github.com/taibuivan/secureblog/internal/platform/respond"
	"github.com/taibuivan/secureblog/pkg/encode"
)

// # Definitions & Constructors

// Handler implements the /posts endpoints.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] for /posts.
//
// Every route requires a bearer token; mutations also require an
// anti-forgery token, checked after the bearer.
//
// # Endpoints
//   - GET    /      : Lists posts.
//   - POST   /      : Creates a post owned by the caller.
//   - PUT    /{id}  : Updates a post the caller owns.
//   - DELETE /{id}  : Deletes a post the caller owns.
func (handler *Handler) Routes(protect, authenticate func(http.Handler) http.Handler) chi.Router {
	router := chi.NewRouter()
	router.Use(authenticate)

	router.Get("/", handler.list)

	router.Group(func(r chi.Router) {
		r.Use(protect)
		r.Post("/", handler.create)
		r.Put("/{id}", handler.update)
		r.Delete("/{id}", handler.delete)
	})

	return router
}

// # Request & Response Payloads

type postRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// PostResponse is the browser-safe view of a post.
type PostResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// present encodes the stored text for display. It is the only place posts
// are encoded.
func present(post *Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		OwnerID:   post.OwnerID,
		Title:     encode.HTML(post.Title),
		Content:   encode.HTML(post.Content),
		CreatedAt: post.CreatedAt,
	}
}

/*
list returns every post with encoded text.

GET /posts
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	posts, err := handler.postService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	response := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		response = append(response, present(post))
	}
	respond.OK(writer, response)
}

/*
create stores a post owned by the caller.

POST /posts

Response:
  - 200: PostResponse
  - 400: Missing fields
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Create(request.Context(), claims.UserID, CreatePostInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, present(post))
}

/*
update rewrites a post the caller owns.

PUT /posts/{id}

Response:
  - 200: PostResponse
  - 400: Missing fields
  - 404: Post not found or not owned
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input postRequest
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.postService.Update(request.Context(), claims.UserID, requestutil.Param(request, "id"), UpdatePostInput{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, present(post))
}

/*
delete removes a post the caller owns.

DELETE /posts/{id}

Response:
  - 200: {"message": "Post deleted", "id": ...}
  - 404: Post not found or not owned
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := handler.postService.Delete(request.Context(), claims.UserID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, MessageDeleted, id)
}
