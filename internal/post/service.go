// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package post

import (
	"context"
	"time"

	"github.com/taibuivan/secureblog/internal/platform/apperr"
	"github.com/taibuivan/secureblog/internal/platform/validate"
	"github.com/taibuivan/secureblog/pkg/uuid"
)

// Denied mutation labels.
const (
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// DenialRecorder counts mutations that matched no owned row.
type DenialRecorder interface {
	MutationDenied(operation string)
}

// Service implements post use cases on top of a [PostRepository].
type Service struct {
	repository PostRepository
	recorder   DenialRecorder
	now        func() time.Time
}

// NewService constructs a new [Service]. recorder may be nil.
func NewService(repository PostRepository, recorder DenialRecorder) *Service {
	return &Service{repository: repository, recorder: recorder, now: time.Now}
}

// # Inputs

// CreatePostInput holds the fields of a new post.
type CreatePostInput struct {
	Title   string
	Content string
}

// UpdatePostInput holds the replacement fields of an existing post.
type UpdatePostInput struct {
	Title   string
	Content string
}

func validateFields(title, content string) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, MaxTitleLength).
		Required(FieldContent, content).
		MaxLen(FieldContent, content, MaxContentLength)
	return validator.Err()
}

// # Use Cases

/*
Create stores a new post owned by ownerID.

Parameters:
  - ctx: context.Context
  - ownerID: string (the authenticated caller)
  - input: CreatePostInput

Returns:
  - *Post: The stored post, text unencoded
  - error: ValidationError or storage errors
*/
func (service *Service) Create(ctx context.Context, ownerID string, input CreatePostInput) (*Post, error) {
	if err := validateFields(input.Title, input.Content); err != nil {
		return nil, err
	}

	post := &Post{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedAt: service.now().UTC(),
	}

	if err := service.repository.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns every post ordered by creation.
func (service *Service) List(ctx context.Context) ([]*Post, error) {
	return service.repository.List(ctx)
}

/*
Update replaces the title and content of a post the caller owns.

Parameters:
  - ctx: context.Context
  - callerID: string
  - postID: string
  - input: UpdatePostInput

Returns:
  - *Post: The updated post
  - error: ValidationError, NotFoundOrNotOwned or storage errors
*/
func (service *Service) Update(ctx context.Context, callerID, postID string, input UpdatePostInput) (*Post, error) {
	if err := validateFields(input.Title, input.Content); err != nil {
		return nil, err
	}

	id, ok := uuid.Canonical(postID)
	if !ok {
		return nil, service.deny(OperationUpdate)
	}

	post, err := service.repository.UpdateOwned(ctx, id, callerID, input.Title, input.Content)
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, service.deny(OperationUpdate)
		}
		return nil, err
	}
	return post, nil
}

/*
Delete removes a post the caller owns.

Parameters:
  - ctx: context.Context
  - callerID: string
  - postID: string

Returns:
  - string: The canonical id of the removed post
  - error: NotFoundOrNotOwned or storage errors
*/
func (service *Service) Delete(ctx context.Context, callerID, postID string) (string, error) {
	id, ok := uuid.Canonical(postID)
	if !ok {
		return "", service.deny(OperationDelete)
	}

	deleted, err := service.repository.DeleteOwned(ctx, id, callerID)
	if err != nil {
		return "", err
	}
	if !deleted {
		return "", service.deny(OperationDelete)
	}
	return id, nil
}

func (service *Service) deny(operation string) error {
	if service.recorder != nil {
		service.recorder.MutationDenied(operation)
	}
	return apperr.NotFoundOrNotOwned(resourceName)
}
