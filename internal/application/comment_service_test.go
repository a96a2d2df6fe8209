package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

func TestCommentService_AddComputesIsUploader(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"))
	svc := NewCommentService(videos)

	c, err := svc.Add(ctx, "v1", "uploader-1", "bob", "first!")
	require.NoError(t, err)
	assert.True(t, c.IsUploader)

	c, err = svc.Add(ctx, "v1", "someone-else", "carol", "nice video")
	require.NoError(t, err)
	assert.False(t, c.IsUploader)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "carol", c.Username)

	got, err := svc.List(ctx, "v1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCommentService_AddRejectsEmptyText(t *testing.T) {
	svc := NewCommentService(newMockVideoRepo(testVideo("v1")))
	_, err := svc.Add(context.Background(), "v1", "u1", "bob", "   ")
	assert.Equal(t, "text_required", apperr.CodeOf(err))
}

func TestCommentService_UpdateAuthorization(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"))
	svc := NewCommentService(videos)

	c, err := svc.Add(ctx, "v1", "author-1", "bob", "original")
	require.NoError(t, err)

	// a stranger may not edit
	_, err = svc.Update(ctx, "v1", c.ID, "stranger", "hacked")
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	// the author may
	got, err := svc.Update(ctx, "v1", c.ID, "author-1", "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	// so may the uploader
	got, err = svc.Update(ctx, "v1", c.ID, "uploader-1", "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", got.Text)
}

func TestCommentService_DeleteByUploader(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"))
	svc := NewCommentService(videos)

	c, err := svc.Add(ctx, "v1", "author-1", "bob", "spam")
	require.NoError(t, err)

	err = svc.Delete(ctx, "v1", c.ID, "stranger")
	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))

	require.NoError(t, svc.Delete(ctx, "v1", c.ID, "uploader-1"))

	err = svc.Delete(ctx, "v1", c.ID, "uploader-1")
	assert.Equal(t, "comment_not_found", apperr.CodeOf(err))
}
