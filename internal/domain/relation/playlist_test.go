package relation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestCreatePlaylist(t *testing.T) {
	u := newUser()

	p, err := CreatePlaylist(u, "p1", "  Favorites  ", "my picks", now)
	require.NoError(t, err)
	assert.Equal(t, "Favorites", p.Name)
	assert.Equal(t, "my picks", p.Description)
	assert.Empty(t, p.Videos)
	assert.Equal(t, now, p.CreatedAt)
}

func TestCreatePlaylist_EmptyNameRejected(t *testing.T) {
	u := newUser()
	for _, name := range []string{"", "   ", "\t"} {
		_, err := CreatePlaylist(u, "p1", name, "", now)
		require.Error(t, err)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	}
	assert.Empty(t, u.Playlists)
}

func TestCreatePlaylist_DuplicateNameCaseInsensitive(t *testing.T) {
	u := newUser()
	_, err := CreatePlaylist(u, "p1", "Favorites", "", now)
	require.NoError(t, err)

	_, err = CreatePlaylist(u, "p2", "favorites", "", now)
	require.Error(t, err)
	assert.Equal(t, "duplicate_name", apperr.CodeOf(err))
	assert.Len(t, u.Playlists, 1)
}

func TestUpdatePlaylist(t *testing.T) {
	u := newUser()
	_, err := CreatePlaylist(u, "p1", "Favorites", "", now)
	require.NoError(t, err)
	_, err = CreatePlaylist(u, "p2", "Watch again", "", now)
	require.NoError(t, err)

	t.Run("rename to own name is allowed", func(t *testing.T) {
		p, err := UpdatePlaylist(u, "p1", "FAVORITES", nil)
		require.NoError(t, err)
		assert.Equal(t, "FAVORITES", p.Name)
	})

	t.Run("rename to another playlist's name is rejected", func(t *testing.T) {
		_, err := UpdatePlaylist(u, "p1", "watch AGAIN", nil)
		require.Error(t, err)
		assert.Equal(t, "duplicate_name", apperr.CodeOf(err))
	})

	t.Run("empty name means no rename", func(t *testing.T) {
		desc := "updated"
		p, err := UpdatePlaylist(u, "p1", "  ", &desc)
		require.NoError(t, err)
		assert.Equal(t, "FAVORITES", p.Name)
		assert.Equal(t, "updated", p.Description)
	})

	t.Run("unknown playlist", func(t *testing.T) {
		_, err := UpdatePlaylist(u, "nope", "x", nil)
		assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	})
}

func TestAddRemoveVideo_OrderAndDuplicates(t *testing.T) {
	u := newUser()
	_, err := CreatePlaylist(u, "p1", "Favorites", "", now)
	require.NoError(t, err)

	_, err = AddVideo(u, "p1", "v1")
	require.NoError(t, err)
	_, err = AddVideo(u, "p1", "v2")
	require.NoError(t, err)

	// Duplicate add rejected.
	_, err = AddVideo(u, "p1", "v1")
	require.Error(t, err)
	assert.Equal(t, "already_in_playlist", apperr.CodeOf(err))

	// Remove then re-add moves the video to the back.
	_, err = RemoveVideo(u, "p1", "v1")
	require.NoError(t, err)
	p, err := AddVideo(u, "p1", "v1")
	require.NoError(t, err)
	assert.Equal(t, []string{"v2", "v1"}, p.Videos)
}

func TestRemoveVideo_AbsentRejected(t *testing.T) {
	u := newUser()
	_, err := CreatePlaylist(u, "p1", "Favorites", "", now)
	require.NoError(t, err)

	_, err = RemoveVideo(u, "p1", "v1")
	require.Error(t, err)
	assert.Equal(t, "not_in_playlist", apperr.CodeOf(err))
}

func TestDeletePlaylist_PreservesOrder(t *testing.T) {
	u := newUser()
	for i, name := range []string{"a", "b", "c"} {
		_, err := CreatePlaylist(u, string(rune('1'+i)), name, "", now)
		require.NoError(t, err)
	}

	deleted, err := DeletePlaylist(u, "2")
	require.NoError(t, err)
	assert.Equal(t, "b", deleted.Name)
	assert.Equal(t, "a", u.Playlists[0].Name)
	assert.Equal(t, "c", u.Playlists[1].Name)

	_, err = DeletePlaylist(u, "2")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestClearPlaylists(t *testing.T) {
	u := newUser()
	_, err := CreatePlaylist(u, "p1", "a", "", now)
	require.NoError(t, err)
	_, err = CreatePlaylist(u, "p2", "b", "", now)
	require.NoError(t, err)

	assert.Equal(t, 2, ClearPlaylists(u))
	assert.Empty(t, u.Playlists)
	assert.Equal(t, 0, ClearPlaylists(u))
}

// No video id ever appears twice in a playlist, whatever the op sequence.
func TestPlaylistVideoUniqueness(t *testing.T) {
	u := newUser()
	_, err := CreatePlaylist(u, "p1", "mix", "", now)
	require.NoError(t, err)

	ids := []string{"v1", "v2", "v1", "v3", "v2"}
	for _, id := range ids {
		_, _ = AddVideo(u, "p1", id)
	}
	p := u.PlaylistByID("p1")
	seen := map[string]bool{}
	for _, id := range p.Videos {
		assert.Falsef(t, seen[id], "duplicate %s", id)
		seen[id] = true
	}
	assert.Equal(t, []string{"v1", "v2", "v3"}, p.Videos)
}
