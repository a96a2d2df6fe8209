package relation

import (
	"sort"
	"time"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
)

// HistoryLimit caps the watch history length. Records beyond the cap evict
// the oldest entries unconditionally.
const HistoryLimit = 100

// RecordHistory notes that the user watched the video now. An existing entry
// for the same video is removed first so a rewatch moves the video to the
// front instead of duplicating it, then the log is truncated to HistoryLimit.
func RecordHistory(u *entity.User, videoID string, now time.Time) {
	entries := make([]entity.HistoryEntry, 0, len(u.History)+1)
	entries = append(entries, entity.HistoryEntry{VideoID: videoID, WatchedAt: now})
	for _, e := range u.History {
		if e.VideoID != videoID {
			entries = append(entries, e)
		}
	}
	if len(entries) > HistoryLimit {
		entries = entries[:HistoryLimit]
	}
	u.History = entries
}

// RemoveHistory drops all entries for the video id. Absence is a silent
// no-op on this path.
func RemoveHistory(u *entity.User, videoID string) {
	out := u.History[:0]
	for _, e := range u.History {
		if e.VideoID != videoID {
			out = append(out, e)
		}
	}
	u.History = out
}

// ClearHistory empties the log and returns the prior count.
func ClearHistory(u *entity.User) int {
	n := len(u.History)
	u.History = nil
	return n
}

// SortedHistory returns a copy of the log ordered by WatchedAt descending.
// The prepend discipline already maintains this order, but the read-time sort
// is authoritative regardless of storage order.
func SortedHistory(u *entity.User) []entity.HistoryEntry {
	out := make([]entity.HistoryEntry, len(u.History))
	copy(out, u.History)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WatchedAt.After(out[j].WatchedAt)
	})
	return out
}
