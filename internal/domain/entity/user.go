package entity

import (
	"time"
)

// User is the aggregate root for the viewer domain. It owns the per-user
// relation collections (liked, disliked, watch-later), the playlists and the
// watch history. Video ids inside the collections are weak references: the
// videos themselves live in their own aggregate and may be deleted
// independently.
//
// Passwords are stored as bcrypt hashes in Password.
type User struct {
	ID        string
	Email     string
	Username  string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time

	LikedVideos    []string
	DislikedVideos []string
	WatchLater     []string
	Playlists      []Playlist
	History        []HistoryEntry
}

// Playlist is owned exclusively by its parent user. Videos keeps insertion
// order and holds no duplicates.
type Playlist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Videos      []string  `json:"videos"`
	CreatedAt   time.Time `json:"created_at"`
}

// HistoryEntry records one watched video. Entries are unique by VideoID and
// kept newest first.
type HistoryEntry struct {
	VideoID   string    `json:"video_id"`
	WatchedAt time.Time `json:"watched_at"`
}

// PlaylistByID returns the playlist with the given id, or nil.
func (u *User) PlaylistByID(id string) *Playlist {
	for i := range u.Playlists {
		if u.Playlists[i].ID == id {
			return &u.Playlists[i]
		}
	}
	return nil
}
