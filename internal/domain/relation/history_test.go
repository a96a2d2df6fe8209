package relation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
)

func historyEntry(videoID string, watchedAt time.Time) entity.HistoryEntry {
	return entity.HistoryEntry{VideoID: videoID, WatchedAt: watchedAt}
}

func at(offset int) time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Second)
}

func TestRecordHistory_DedupAndPromote(t *testing.T) {
	u := newUser()

	RecordHistory(u, "v1", at(0))
	RecordHistory(u, "v2", at(1))
	RecordHistory(u, "v1", at(2))

	assert.Len(t, u.History, 2)
	assert.Equal(t, "v1", u.History[0].VideoID)
	assert.Equal(t, "v2", u.History[1].VideoID)
	assert.Equal(t, at(2), u.History[0].WatchedAt)
}

func TestRecordHistory_CapEvictsOldest(t *testing.T) {
	u := newUser()
	for i := 0; i < HistoryLimit+1; i++ {
		RecordHistory(u, fmt.Sprintf("v%d", i), at(i))
	}

	assert.Len(t, u.History, HistoryLimit)
	// The very first video recorded has been evicted.
	for _, e := range u.History {
		assert.NotEqual(t, "v0", e.VideoID)
	}
	assert.Equal(t, fmt.Sprintf("v%d", HistoryLimit), u.History[0].VideoID)
}

func TestRecordHistory_UniqueByVideo(t *testing.T) {
	u := newUser()
	for i := 0; i < 300; i++ {
		RecordHistory(u, fmt.Sprintf("v%d", i%50), at(i))
	}
	assert.LessOrEqual(t, len(u.History), HistoryLimit)
	seen := map[string]bool{}
	for _, e := range u.History {
		assert.Falsef(t, seen[e.VideoID], "duplicate history entry for %s", e.VideoID)
		seen[e.VideoID] = true
	}
}

func TestRemoveHistory_SilentOnAbsence(t *testing.T) {
	u := newUser()
	RecordHistory(u, "v1", at(0))

	RemoveHistory(u, "v2") // no-op, no error by contract
	assert.Len(t, u.History, 1)

	RemoveHistory(u, "v1")
	assert.Empty(t, u.History)
}

func TestClearHistory(t *testing.T) {
	u := newUser()
	RecordHistory(u, "v1", at(0))
	RecordHistory(u, "v2", at(1))

	assert.Equal(t, 2, ClearHistory(u))
	assert.Empty(t, u.History)
	assert.Equal(t, 0, ClearHistory(u))
}

func TestSortedHistory_AuthoritativeOrder(t *testing.T) {
	u := newUser()
	// Storage order scrambled on purpose; read-time sort must fix it.
	u.History = append(u.History,
		historyEntry("v2", at(1)),
		historyEntry("v3", at(5)),
		historyEntry("v1", at(3)),
	)

	sorted := SortedHistory(u)
	assert.Equal(t, "v3", sorted[0].VideoID)
	assert.Equal(t, "v1", sorted[1].VideoID)
	assert.Equal(t, "v2", sorted[2].VideoID)
	// Original slice untouched.
	assert.Equal(t, "v2", u.History[0].VideoID)
}
