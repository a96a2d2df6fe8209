package application

import (
	"context"
	"time"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/internal/domain/relation"
	repo "github.com/vidstream/vidstream-backend/internal/domain/repository"
)

// HistoryService manages the bounded watch history log.
type HistoryService struct {
	Users  repo.UserRepository
	Videos repo.VideoRepository
}

func NewHistoryService(users repo.UserRepository, videos repo.VideoRepository) *HistoryService {
	return &HistoryService{Users: users, Videos: videos}
}

// Record notes a watch. The video must still exist; rewatches move the entry
// to the front and the log stays capped.
func (s *HistoryService) Record(ctx context.Context, username, videoID string) error {
	if _, err := s.Videos.GetByID(ctx, videoID); err != nil {
		return err
	}
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColHistory},
		func(u *entity.User) error {
			relation.RecordHistory(u, videoID, time.Now().UTC())
			return nil
		})
	return err
}

// HistoryItem pairs a resolved video with its watch timestamp.
type HistoryItem struct {
	Video     VideoSummary `json:"video"`
	WatchedAt time.Time    `json:"watched_at"`
}

// List returns the history newest first. Entries whose video no longer exists
// are dropped from the view; the stored log is left untouched.
func (s *HistoryService) List(ctx context.Context, username string) ([]HistoryItem, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	entries := relation.SortedHistory(u)
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.VideoID)
	}
	vs, err := s.Videos.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Video, len(vs))
	for i := range vs {
		byID[vs[i].ID] = &vs[i]
	}

	out := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		v, ok := byID[e.VideoID]
		if !ok {
			continue
		}
		out = append(out, HistoryItem{Video: SummaryOf(v), WatchedAt: e.WatchedAt})
	}
	return out, nil
}

// Remove drops the entry for the video id. Absence is a silent no-op.
func (s *HistoryService) Remove(ctx context.Context, username, videoID string) error {
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColHistory},
		func(u *entity.User) error {
			relation.RemoveHistory(u, videoID)
			return nil
		})
	return err
}

// Clear empties the log and returns the prior count.
func (s *HistoryService) Clear(ctx context.Context, username string) (int, error) {
	var n int
	_, err := s.Users.Mutate(ctx, username, []repo.Collection{repo.ColHistory},
		func(u *entity.User) error {
			n = relation.ClearHistory(u)
			return nil
		})
	if err != nil {
		return 0, err
	}
	return n, nil
}
