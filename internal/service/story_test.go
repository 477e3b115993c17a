package service

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/tourdesh/tourdesh-api/internal/data"
	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
	"github.com/tourdesh/tourdesh-api/internal/domain/model"
	apperrors "github.com/tourdesh/tourdesh-api/internal/errors"
)

// memStoryStore is an in-memory StoryStore keyed by hex ID.
type memStoryStore struct {
	stories map[string]model.Story
}

var _ StoryStore = (*memStoryStore)(nil)

func newMemStoryStore() *memStoryStore {
	return &memStoryStore{stories: map[string]model.Story{}}
}

func (s *memStoryStore) List(_ context.Context, addedBy string) ([]model.Story, error) {
	var out []model.Story
	for _, story := range s.stories {
		if addedBy == "" || story.AddedBy == addedBy {
			out = append(out, story)
		}
	}
	return out, nil
}

func (s *memStoryStore) FindByID(_ context.Context, id string) (model.Story, error) {
	story, ok := s.stories[id]
	if !ok {
		return model.Story{}, data.ErrStoryNotFound
	}
	return story, nil
}

func (s *memStoryStore) Create(_ context.Context, story model.Story) (model.Story, error) {
	story.ID = bson.NewObjectID()
	s.stories[story.ID.Hex()] = story
	return story, nil
}

func (s *memStoryStore) UpdateContent(_ context.Context, id, title, content string) error {
	story, ok := s.stories[id]
	if !ok {
		return data.ErrStoryNotFound
	}
	story.Title, story.Content = title, content
	s.stories[id] = story
	return nil
}

func (s *memStoryStore) ToggleImage(_ context.Context, id, imgURL string) error {
	story, ok := s.stories[id]
	if !ok {
		return data.ErrStoryNotFound
	}
	if i := slices.Index(story.Images, imgURL); i >= 0 {
		story.Images = slices.Delete(story.Images, i, i+1)
	} else {
		story.Images = append(story.Images, imgURL)
	}
	s.stories[id] = story
	return nil
}

func (s *memStoryStore) Delete(_ context.Context, id string) error {
	if _, ok := s.stories[id]; !ok {
		return data.ErrStoryNotFound
	}
	delete(s.stories, id)
	return nil
}

func (s *memStoryStore) seed(t *testing.T, story model.Story) model.Story {
	t.Helper()
	stored, err := s.Create(context.Background(), story)
	require.NoError(t, err)
	return stored
}

var (
	authorCtx  = domainauth.Context{Email: "author@example.com", Role: domainauth.RoleTourist}
	strangerCtx = domainauth.Context{Email: "stranger@example.com", Role: domainauth.RoleTourist}
	adminCtx   = domainauth.Context{Email: "admin@example.com", Role: domainauth.RoleAdmin}
)

func TestStoryCreate_StampsCallerAsAuthor(t *testing.T) {
	store := newMemStoryStore()
	svc := NewStoryService(store, sessionRoles())

	created, err := svc.Create(context.Background(), authorCtx, model.Story{
		Title:   "Sunset at Cox's Bazar",
		AddedBy: "spoofed@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "author@example.com", created.AddedBy)
}

func TestStoryUpdate_OnlyAuthorOrAdmin(t *testing.T) {
	store := newMemStoryStore()
	svc := NewStoryService(store, sessionRoles())
	story := store.seed(t, model.Story{Title: "Old", AddedBy: authorCtx.Email})

	err := svc.UpdateContent(context.Background(), strangerCtx, story.ID.Hex(), "Hijacked", "x")
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, svc.UpdateContent(context.Background(), authorCtx, story.ID.Hex(), "New", "body"))
	require.NoError(t, svc.UpdateContent(context.Background(), adminCtx, story.ID.Hex(), "Newer", "body"))

	got, err := store.FindByID(context.Background(), story.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Newer", got.Title)
}

func TestStoryUpdate_DemotedAdminForbidden(t *testing.T) {
	store := newMemStoryStore()
	roles := sessionRoles()
	svc := NewStoryService(store, roles)
	story := store.seed(t, model.Story{Title: "Old", AddedBy: authorCtx.Email})

	// The credential still says admin, but the store no longer does.
	roles.Set(adminCtx.Email, domainauth.RoleTourist)

	err := svc.UpdateContent(context.Background(), adminCtx, story.ID.Hex(), "Hijacked", "x")
	assert.True(t, apperrors.IsForbidden(err))

	got, err := store.FindByID(context.Background(), story.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Title)
}

func TestStoryToggleImage_AddsThenRemoves(t *testing.T) {
	store := newMemStoryStore()
	svc := NewStoryService(store, sessionRoles())
	story := store.seed(t, model.Story{Title: "t", AddedBy: authorCtx.Email})

	require.NoError(t, svc.ToggleImage(context.Background(), authorCtx, story.ID.Hex(), "https://img/1.jpg"))
	got, _ := store.FindByID(context.Background(), story.ID.Hex())
	assert.Equal(t, []string{"https://img/1.jpg"}, got.Images)

	require.NoError(t, svc.ToggleImage(context.Background(), authorCtx, story.ID.Hex(), "https://img/1.jpg"))
	got, _ = store.FindByID(context.Background(), story.ID.Hex())
	assert.Empty(t, got.Images)
}

func TestStoryDelete_StrangerForbidden(t *testing.T) {
	store := newMemStoryStore()
	svc := NewStoryService(store, sessionRoles())
	story := store.seed(t, model.Story{Title: "t", AddedBy: authorCtx.Email})

	err := svc.Delete(context.Background(), strangerCtx, story.ID.Hex())
	assert.True(t, apperrors.IsForbidden(err))

	require.NoError(t, svc.Delete(context.Background(), authorCtx, story.ID.Hex()))
	_, err = svc.Get(context.Background(), story.ID.Hex())
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStoryGet_UnknownIDIsNotFound(t *testing.T) {
	svc := NewStoryService(newMemStoryStore(), sessionRoles())

	_, err := svc.Get(context.Background(), bson.NewObjectID().Hex())
	assert.True(t, apperrors.IsNotFound(err))
}
