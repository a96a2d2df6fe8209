package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
)

// Like, like again via toggle (undo), then dislike: counters and membership
// must follow and the liked/disliked sets stay disjoint throughout.
func TestToggleLike_Sequence(t *testing.T) {
	u := newUser()
	v := newVideo("v1")

	res := ToggleLike(u, v)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)
	assert.Equal(t, int64(0), res.Dislikes)

	res = ToggleLike(u, v)
	assert.False(t, res.Liked)
	assert.Equal(t, int64(0), res.Likes)

	res = ToggleLike(u, v)
	assert.True(t, res.Liked)

	res = ToggleDislike(u, v)
	assert.False(t, res.Liked)
	assert.True(t, res.Disliked)
	assert.Equal(t, int64(0), res.Likes)
	assert.Equal(t, int64(1), res.Dislikes)

	assertDisjoint(t, u)
}

func TestToggleDislike_Sequence(t *testing.T) {
	u := newUser()
	v := newVideo("v1")

	res := ToggleDislike(u, v)
	assert.True(t, res.Disliked)
	assert.Equal(t, int64(1), res.Dislikes)

	res = ToggleLike(u, v)
	assert.True(t, res.Liked)
	assert.False(t, res.Disliked)
	assert.Equal(t, int64(1), res.Likes)
	assert.Equal(t, int64(0), res.Dislikes)

	assertDisjoint(t, u)
}

func TestToggle_UnlikeDoesNotTouchDislikes(t *testing.T) {
	u := newUser()
	v := newVideo("v1")

	ToggleLike(u, v)
	before := v.Dislikes
	res := ToggleLike(u, v) // removal path
	assert.Equal(t, before, res.Dislikes)
	assert.False(t, res.Disliked)
}

func TestToggle_CounterFloor(t *testing.T) {
	u := newUser()
	v := newVideo("v1")

	// Repeated toggle-off cycles never drive counters below zero.
	for i := 0; i < 5; i++ {
		ToggleLike(u, v)
		ToggleLike(u, v)
		ToggleDislike(u, v)
		ToggleDislike(u, v)
	}
	assert.Equal(t, int64(0), v.Likes)
	assert.Equal(t, int64(0), v.Dislikes)
}

func TestToggle_Disjointness(t *testing.T) {
	u := newUser()
	videos := []string{"v1", "v2", "v3"}
	// Alternate likes and dislikes over several videos.
	for i := 0; i < 20; i++ {
		v := newVideo(videos[i%len(videos)])
		if i%2 == 0 {
			ToggleLike(u, v)
		} else {
			ToggleDislike(u, v)
		}
		assertDisjoint(t, u)
	}
}

func TestStatus_DoesNotMutate(t *testing.T) {
	u := newUser()
	v := newVideo("v1")
	ToggleLike(u, v)

	res := Status(u, v)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), res.Likes)
	assert.Len(t, u.LikedVideos, 1)
}

func assertDisjoint(t *testing.T, u *entity.User) {
	t.Helper()
	seen := map[string]bool{}
	for _, id := range u.LikedVideos {
		seen[id] = true
	}
	for _, id := range u.DislikedVideos {
		assert.Falsef(t, seen[id], "video %s present in both liked and disliked", id)
	}
}
