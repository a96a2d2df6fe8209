package relation

import (
	"strings"
	"time"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

// CreatePlaylist appends a new empty playlist. Names must be non-empty after
// trimming and unique per user under case-insensitive comparison.
func CreatePlaylist(u *entity.User, id, name, description string, now time.Time) (*entity.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name_required", "playlist name is required")
	}
	if findByName(u, name, "") != nil {
		return nil, apperr.Invariant("duplicate_name", "a playlist with this name already exists")
	}
	u.Playlists = append(u.Playlists, entity.Playlist{
		ID:          id,
		Name:        name,
		Description: description,
		Videos:      []string{},
		CreatedAt:   now,
	})
	return &u.Playlists[len(u.Playlists)-1], nil
}

// UpdatePlaylist renames and/or re-describes a playlist. An empty or
// whitespace-only name means "no rename requested". The uniqueness check
// excludes the playlist being updated. A nil description leaves it unchanged.
func UpdatePlaylist(u *entity.User, playlistID, name string, description *string) (*entity.Playlist, error) {
	p := u.PlaylistByID(playlistID)
	if p == nil {
		return nil, apperr.NotFound("playlist_not_found", "playlist not found")
	}
	name = strings.TrimSpace(name)
	if name != "" {
		if findByName(u, name, playlistID) != nil {
			return nil, apperr.Invariant("duplicate_name", "a playlist with this name already exists")
		}
		p.Name = name
	}
	if description != nil {
		p.Description = *description
	}
	return p, nil
}

// AddVideo appends the video id to the playlist, rejecting duplicates.
// Append order is insertion order and is preserved for display.
func AddVideo(u *entity.User, playlistID, videoID string) (*entity.Playlist, error) {
	p := u.PlaylistByID(playlistID)
	if p == nil {
		return nil, apperr.NotFound("playlist_not_found", "playlist not found")
	}
	if contains(p.Videos, videoID) {
		return nil, apperr.Invariant("already_in_playlist", "video is already in this playlist")
	}
	p.Videos = append(p.Videos, videoID)
	return p, nil
}

// RemoveVideo removes the video id by value, preserving the relative order of
// the remaining entries.
func RemoveVideo(u *entity.User, playlistID, videoID string) (*entity.Playlist, error) {
	p := u.PlaylistByID(playlistID)
	if p == nil {
		return nil, apperr.NotFound("playlist_not_found", "playlist not found")
	}
	if !contains(p.Videos, videoID) {
		return nil, apperr.Invariant("not_in_playlist", "video is not in this playlist")
	}
	p.Videos = remove(p.Videos, videoID)
	return p, nil
}

// DeletePlaylist removes the playlist from the user's sequence, keeping the
// order of the remaining playlists. The removed playlist is returned.
func DeletePlaylist(u *entity.User, playlistID string) (entity.Playlist, error) {
	for i := range u.Playlists {
		if u.Playlists[i].ID == playlistID {
			deleted := u.Playlists[i]
			u.Playlists = append(u.Playlists[:i], u.Playlists[i+1:]...)
			return deleted, nil
		}
	}
	return entity.Playlist{}, apperr.NotFound("playlist_not_found", "playlist not found")
}

// ClearPlaylists deletes all playlists and returns the prior count.
func ClearPlaylists(u *entity.User) int {
	n := len(u.Playlists)
	u.Playlists = nil
	return n
}

func findByName(u *entity.User, name, excludeID string) *entity.Playlist {
	for i := range u.Playlists {
		if u.Playlists[i].ID == excludeID {
			continue
		}
		if strings.EqualFold(u.Playlists[i].Name, name) {
			return &u.Playlists[i]
		}
	}
	return nil
}
