package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/internal/domain/relation"
	repo "github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

// PlaylistService manages per-user playlists.
type PlaylistService struct {
	Users  repo.UserRepository
	Videos repo.VideoRepository
}

func NewPlaylistService(users repo.UserRepository, videos repo.VideoRepository) *PlaylistService {
	return &PlaylistService{Users: users, Videos: videos}
}

func (s *PlaylistService) List(ctx context.Context, username string) ([]entity.Playlist, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u.Playlists == nil {
		return []entity.Playlist{}, nil
	}
	return u.Playlists, nil
}

// PlaylistDetail pairs the playlist with its resolved videos. Dangling video
// ids are filtered on read and stay in the stored playlist.
type PlaylistDetail struct {
	entity.Playlist
	ResolvedVideos []VideoSummary `json:"resolved_videos"`
}

func (s *PlaylistService) Get(ctx context.Context, username, playlistID string) (*PlaylistDetail, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p := u.PlaylistByID(playlistID)
	if p == nil {
		return nil, apperr.NotFound("playlist_not_found", "playlist not found")
	}
	vs, err := s.Videos.GetByIDs(ctx, p.Videos)
	if err != nil {
		return nil, err
	}
	return &PlaylistDetail{Playlist: *p, ResolvedVideos: Summaries(vs)}, nil
}

func (s *PlaylistService) Create(ctx context.Context, username, name, description string) (*entity.Playlist, error) {
	var created *entity.Playlist
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColPlaylists},
		func(u *entity.User) error {
			p, err := relation.CreatePlaylist(u, uuid.NewString(), name, description, time.Now().UTC())
			if err != nil {
				return err
			}
			cp := *p
			created = &cp
			return nil
		})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *PlaylistService) Update(ctx context.Context, username, playlistID, name string, description *string) (*entity.Playlist, error) {
	return s.mutatePlaylist(ctx, username, func(u *entity.User) (*entity.Playlist, error) {
		return relation.UpdatePlaylist(u, playlistID, name, description)
	})
}

// AddVideo verifies the video still exists before inserting the reference.
func (s *PlaylistService) AddVideo(ctx context.Context, username, playlistID, videoID string) (*entity.Playlist, error) {
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return nil, err
	}
	return s.mutatePlaylist(ctx, username, func(u *entity.User) (*entity.Playlist, error) {
		return relation.AddVideo(u, playlistID, videoID)
	})
}

func (s *PlaylistService) RemoveVideo(ctx context.Context, username, playlistID, videoID string) (*entity.Playlist, error) {
	return s.mutatePlaylist(ctx, username, func(u *entity.User) (*entity.Playlist, error) {
		return relation.RemoveVideo(u, playlistID, videoID)
	})
}

func (s *PlaylistService) Delete(ctx context.Context, username, playlistID string) (*entity.Playlist, error) {
	var deleted entity.Playlist
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColPlaylists},
		func(u *entity.User) error {
			var err error
			deleted, err = relation.DeletePlaylist(u, playlistID)
			return err
		})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

// DeleteAll removes every playlist and returns the prior count.
func (s *PlaylistService) DeleteAll(ctx context.Context, username string) (int, error) {
	var n int
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColPlaylists},
		func(u *entity.User) error {
			n = relation.ClearPlaylists(u)
			return nil
		})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PlaylistService) mutatePlaylist(ctx context.Context, username string, fn func(u *entity.User) (*entity.Playlist, error)) (*entity.Playlist, error) {
	var out *entity.Playlist
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColPlaylists},
		func(u *entity.User) error {
			p, err := fn(u)
			if err != nil {
				return err
			}
			cp := *p
			out = &cp
			return nil
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}
