package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidstream/vidstream-backend/internal/domain/relation"
	"github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

func newEngagement(videos *mockVideoRepo) (*EngagementService, *mockUserRepo) {
	users := &mockUserRepo{user: testUser("alice"), videos: videos}
	return NewEngagementService(users, videos), users
}

func TestEngagementService_ToggleLike(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"))
	svc, users := newEngagement(videos)

	res, err := svc.ToggleLike(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.Likes)
	assert.Equal(t, []repository.Collection{repository.ColLiked, repository.ColDisliked}, users.mutatedCols)

	// second toggle removes the like
	res, err = svc.ToggleLike(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.EqualValues(t, 0, res.Likes)
}

func TestEngagementService_ToggleSwitchesSides(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"))
	svc, users := newEngagement(videos)

	_, err := svc.ToggleDislike(ctx, "alice", "v1")
	require.NoError(t, err)

	res, err := svc.ToggleLike(ctx, "alice", "v1")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.False(t, res.Disliked)
	assert.EqualValues(t, 1, res.Likes)
	assert.EqualValues(t, 0, res.Dislikes)
	assert.Empty(t, users.user.DislikedVideos)
}

func TestEngagementService_ToggleMissingVideo(t *testing.T) {
	svc, _ := newEngagement(newMockVideoRepo())
	_, err := svc.ToggleLike(context.Background(), "alice", "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEngagementService_AddRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newEngagement(newMockVideoRepo(testVideo("v1")))

	require.NoError(t, svc.Add(ctx, "alice", "v1", relation.WatchLater))
	err := svc.Add(ctx, "alice", "v1", relation.WatchLater)
	assert.Equal(t, "already_present", apperr.CodeOf(err))
}

func TestEngagementService_AddMissingVideo(t *testing.T) {
	svc, _ := newEngagement(newMockVideoRepo())
	err := svc.Add(context.Background(), "alice", "ghost", relation.Liked)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestEngagementService_RemoveSurvivesDeletedVideo(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"))
	svc, users := newEngagement(videos)

	require.NoError(t, svc.Add(ctx, "alice", "v1", relation.Liked))
	delete(videos.store, "v1")

	// membership removal still lands, counter skip is silent
	require.NoError(t, svc.Remove(ctx, "alice", "v1", relation.Liked))
	assert.Empty(t, users.user.LikedVideos)
}

func TestEngagementService_RemoveNotInSet(t *testing.T) {
	svc, _ := newEngagement(newMockVideoRepo(testVideo("v1")))
	err := svc.Remove(context.Background(), "alice", "v1", relation.WatchLater)
	assert.Equal(t, "not_in_set", apperr.CodeOf(err))
}

func TestEngagementService_CheckNeverFailsOnAbsence(t *testing.T) {
	svc, _ := newEngagement(newMockVideoRepo())
	ok, err := svc.Check(context.Background(), "alice", "ghost", relation.Liked)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngagementService_ClearReturnsPriorCount(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"), testVideo("v2"))
	svc, users := newEngagement(videos)

	require.NoError(t, svc.Add(ctx, "alice", "v1", relation.Liked))
	require.NoError(t, svc.Add(ctx, "alice", "v2", relation.Liked))

	n, err := svc.Clear(ctx, "alice", relation.Liked)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, users.user.LikedVideos)
	// clear leaves the counters alone
	assert.EqualValues(t, 1, videos.store["v1"].Likes)
	assert.Equal(t, []repository.Collection{repository.ColLiked}, users.mutatedCols)
}

func TestEngagementService_ListVideosFiltersDangling(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"), testVideo("v2"))
	svc, _ := newEngagement(videos)

	require.NoError(t, svc.Add(ctx, "alice", "v1", relation.WatchLater))
	require.NoError(t, svc.Add(ctx, "alice", "v2", relation.WatchLater))
	delete(videos.store, "v1")

	got, err := svc.ListVideos(ctx, "alice", relation.WatchLater)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "v2", got[0].ID)
}
