package repository

import (
	"context"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
)

// Collection names one of the per-user relation collections. Each is stored
// independently addressable by user id, so a mutation persists only the
// collections it actually changed.
type Collection string

const (
	ColLiked      Collection = "liked_videos"
	ColDisliked   Collection = "disliked_videos"
	ColWatchLater Collection = "watch_later"
	ColPlaylists  Collection = "playlists"
	ColHistory    Collection = "history"
)

// UserRepository defines user aggregate persistence.
//
// Mutate and MutateWithVideo implement the read-modify-write discipline: the
// row(s) are loaded under lock inside one transaction, fn applies the
// invariant-preserving mutation in memory, and the named collections (plus
// the video counters for MutateWithVideo) are written back before commit. If
// fn returns an error nothing is persisted.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	// Update persists the account fields (email, password hash); the relation
	// collections are only ever written through Mutate/MutateWithVideo.
	Update(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)

	Mutate(ctx context.Context, username string, cols []Collection, fn func(u *entity.User) error) (*entity.User, error)

	// MutateWithVideo additionally loads the video row. The video pointer
	// passed to fn is nil when the video no longer exists; counter changes are
	// then skipped while the membership change still lands.
	MutateWithVideo(ctx context.Context, username, videoID string, cols []Collection, fn func(u *entity.User, v *entity.Video) error) (*entity.User, *entity.Video, error)
}
