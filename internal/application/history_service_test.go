package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

func newHistory(videos *mockVideoRepo) (*HistoryService, *mockUserRepo) {
	users := &mockUserRepo{user: testUser("alice"), videos: videos}
	return NewHistoryService(users, videos), users
}

func TestHistoryService_RecordRequiresVideo(t *testing.T) {
	svc, _ := newHistory(newMockVideoRepo())
	err := svc.Record(context.Background(), "alice", "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestHistoryService_RecordDedupesAndPromotes(t *testing.T) {
	ctx := context.Background()
	svc, users := newHistory(newMockVideoRepo(testVideo("v1"), testVideo("v2")))

	require.NoError(t, svc.Record(ctx, "alice", "v1"))
	require.NoError(t, svc.Record(ctx, "alice", "v2"))
	require.NoError(t, svc.Record(ctx, "alice", "v1"))

	require.Len(t, users.user.History, 2)
	assert.Equal(t, "v1", users.user.History[0].VideoID)
	assert.Equal(t, "v2", users.user.History[1].VideoID)
}

func TestHistoryService_ListFiltersDangling(t *testing.T) {
	ctx := context.Background()
	videos := newMockVideoRepo(testVideo("v1"), testVideo("v2"))
	svc, _ := newHistory(videos)

	require.NoError(t, svc.Record(ctx, "alice", "v1"))
	require.NoError(t, svc.Record(ctx, "alice", "v2"))
	delete(videos.store, "v1")

	items, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "v2", items[0].Video.ID)
	assert.False(t, items[0].WatchedAt.IsZero())
}

func TestHistoryService_RemoveIsSilentOnAbsence(t *testing.T) {
	ctx := context.Background()
	svc, users := newHistory(newMockVideoRepo(testVideo("v1")))

	require.NoError(t, svc.Record(ctx, "alice", "v1"))
	require.NoError(t, svc.Remove(ctx, "alice", "never-watched"))
	assert.Len(t, users.user.History, 1)

	require.NoError(t, svc.Remove(ctx, "alice", "v1"))
	assert.Empty(t, users.user.History)
}

func TestHistoryService_ClearReturnsPriorCount(t *testing.T) {
	ctx := context.Background()
	svc, users := newHistory(newMockVideoRepo(testVideo("v1"), testVideo("v2")))

	require.NoError(t, svc.Record(ctx, "alice", "v1"))
	require.NoError(t, svc.Record(ctx, "alice", "v2"))

	n, err := svc.Clear(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Empty(t, users.user.History)
}
