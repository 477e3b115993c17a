package service

import (
	"context"
	"errors"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
	"github.com/tourdesh/tourdesh-api/internal/ports"
)

// StoryStore is the view of the story collection the story service
// needs. data.StoryRepo satisfies it.
type StoryStore interface {
	List(ctx context.Context, addedBy string) ([]model.Story, error)
	FindByID(ctx context.Context, id string) (model.Story, error)
	Create(ctx context.Context, story model.Story) (model.Story, error)
	UpdateContent(ctx context.Context, id, title, content string) error
	ToggleImage(ctx context.Context, id, imgURL string) error
	Delete(ctx context.Context, id string) error
}

// StoryService manages travel stories. Mutations are owner-scoped: only
// the author or an admin may edit or delete a story, and the admin check
// re-reads the role from the store rather than the credential claim.
type StoryService struct {
	stories StoryStore
	roles   ports.RoleReader
}

// NewStoryService constructs a new StoryService.
func NewStoryService(stories StoryStore, roles ports.RoleReader) *StoryService {
	return &StoryService{stories: stories, roles: roles}
}

// List returns stories, newest last, optionally filtered by author.
func (s *StoryService) List(ctx context.Context, addedBy string) ([]model.Story, error) {
	stories, err := s.stories.List(ctx, addedBy)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "list stories")
	}
	return stories, nil
}

// Get fetches a single story by ID.
func (s *StoryService) Get(ctx context.Context, id string) (model.Story, error) {
	story, err := s.stories.FindByID(ctx, id)
	if err != nil {
		return model.Story{}, mapStoryStoreError(err)
	}
	return story, nil
}

// Create adds a story authored by the caller. AddedBy comes from the
// verified session, never from the request body.
func (s *StoryService) Create(ctx context.Context, caller domainauth.Context, story model.Story) (model.Story, error) {
	if story.Title == "" {
		return model.Story{}, apperrors.ValidationField("title", "title is required")
	}
	story.AddedBy = caller.Email

	created, err := s.stories.Create(ctx, story)
	if err != nil {
		return model.Story{}, apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "create story")
	}
	return created, nil
}

// UpdateContent rewrites a story's title and content.
func (s *StoryService) UpdateContent(ctx context.Context, caller domainauth.Context, id, title, content string) error {
	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return err
	}
	if err := s.stories.UpdateContent(ctx, id, title, content); err != nil {
		return mapStoryStoreError(err)
	}
	return nil
}

// ToggleImage adds the image URL to the story if absent, removes it if
// present.
func (s *StoryService) ToggleImage(ctx context.Context, caller domainauth.Context, id, imgURL string) error {
	if imgURL == "" {
		return apperrors.ValidationField("imgUrl", "image url is required")
	}
	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return err
	}
	if err := s.stories.ToggleImage(ctx, id, imgURL); err != nil {
		return mapStoryStoreError(err)
	}
	return nil
}

// Delete removes a story.
func (s *StoryService) Delete(ctx context.Context, caller domainauth.Context, id string) error {
	if err := s.authorizeOwner(ctx, caller, id); err != nil {
		return err
	}
	if err := s.stories.Delete(ctx, id); err != nil {
		return mapStoryStoreError(err)
	}
	return nil
}

// authorizeOwner loads the story and rejects callers who neither wrote
// it nor currently hold the admin role. The admin escalation uses a
// fresh store read, never the role snapshot in the credential.
func (s *StoryService) authorizeOwner(ctx context.Context, caller domainauth.Context, id string) error {
	story, err := s.stories.FindByID(ctx, id)
	if err != nil {
		return mapStoryStoreError(err)
	}
	if story.AddedBy == caller.Email {
		return nil
	}
	role, err := freshRole(ctx, s.roles, caller)
	if err != nil {
		return err
	}
	if role != domainauth.RoleAdmin {
		return apperrors.Forbidden("not the story author")
	}
	return nil
}

func mapStoryStoreError(err error) error {
	switch {
	case errors.Is(err, data.ErrStoryNotFound):
		return apperrors.NotFound("story not found")
	case errors.Is(err, data.ErrInvalidID):
		return apperrors.ValidationField("id", "invalid story id")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeUnavailable, "story store")
	}
}
