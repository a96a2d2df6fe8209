package relation

import (
	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

// Kind identifies one of the per-user video reference sets.
type Kind string

const (
	Liked      Kind = "liked"
	Disliked   Kind = "disliked"
	WatchLater Kind = "watch_later"
)

func (k Kind) setOf(u *entity.User) *[]string {
	switch k {
	case Liked:
		return &u.LikedVideos
	case Disliked:
		return &u.DislikedVideos
	default:
		return &u.WatchLater
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Add inserts the video into the user's set of the given kind. A second Add
// with the same video is rejected with already_present rather than treated as
// a no-op, so callers can distinguish the two. For liked and disliked the
// video counters are adjusted and the id is evicted from the opposite set,
// keeping the two sets disjoint.
func Add(u *entity.User, v *entity.Video, kind Kind) error {
	set := kind.setOf(u)
	if contains(*set, v.ID) {
		return apperr.Invariant("already_present", "video is already in %s videos", kind)
	}
	*set = append(*set, v.ID)

	switch kind {
	case Liked:
		v.Likes++
		if contains(u.DislikedVideos, v.ID) {
			u.DislikedVideos = remove(u.DislikedVideos, v.ID)
			v.Dislikes = floor(v.Dislikes - 1)
		}
	case Disliked:
		v.Dislikes++
		if contains(u.LikedVideos, v.ID) {
			u.LikedVideos = remove(u.LikedVideos, v.ID)
			v.Likes = floor(v.Likes - 1)
		}
	}
	return nil
}

// Remove deletes the video id from the set, rejecting with not_in_set when it
// is absent. For liked/disliked the corresponding counter is decremented,
// floored at zero. The video may be nil when it no longer exists; membership
// is still removed, only the counter adjustment is skipped.
func Remove(u *entity.User, v *entity.Video, videoID string, kind Kind) error {
	set := kind.setOf(u)
	if !contains(*set, videoID) {
		return apperr.Invariant("not_in_set", "video is not in %s videos", kind)
	}
	*set = remove(*set, videoID)

	if v != nil {
		switch kind {
		case Liked:
			v.Likes = floor(v.Likes - 1)
		case Disliked:
			v.Dislikes = floor(v.Dislikes - 1)
		}
	}
	return nil
}

// Contains reports membership. It never fails on absence of the video.
func Contains(u *entity.User, videoID string, kind Kind) bool {
	return contains(*kind.setOf(u), videoID)
}

// Clear empties the set unconditionally and returns the prior count. Video
// counters are left untouched, matching the per-item remove asymmetry the
// product has always had.
func Clear(u *entity.User, kind Kind) int {
	set := kind.setOf(u)
	n := len(*set)
	*set = nil
	return n
}

func floor(n int64) int64 {
	if n < 0 {
		return 0
	}
	return n
}
