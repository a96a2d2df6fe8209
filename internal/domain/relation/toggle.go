package relation

import (
	"github.com/vidstream/vidstream-backend/internal/domain/entity"
)

// ToggleResult describes the state after a like/dislike toggle.
type ToggleResult struct {
	Liked    bool
	Disliked bool
	Likes    int64
	Dislikes int64
}

// ToggleLike applies the video-side like action. If the video is not yet
// liked it is added to the liked set (incrementing Video.Likes) and evicted
// from the disliked set if present (decrementing Video.Dislikes). If it is
// already liked, the like is removed instead; the disliked set is not touched
// on that path. After any toggle the liked and disliked sets contain the
// video id in at most one of the two.
func ToggleLike(u *entity.User, v *entity.Video) ToggleResult {
	if !contains(u.LikedVideos, v.ID) {
		u.LikedVideos = append(u.LikedVideos, v.ID)
		v.Likes++
		if contains(u.DislikedVideos, v.ID) {
			u.DislikedVideos = remove(u.DislikedVideos, v.ID)
			v.Dislikes = floor(v.Dislikes - 1)
		}
	} else {
		u.LikedVideos = remove(u.LikedVideos, v.ID)
		v.Likes = floor(v.Likes - 1)
	}
	return result(u, v)
}

// ToggleDislike is the symmetric rule for the dislike action.
func ToggleDislike(u *entity.User, v *entity.Video) ToggleResult {
	if !contains(u.DislikedVideos, v.ID) {
		u.DislikedVideos = append(u.DislikedVideos, v.ID)
		v.Dislikes++
		if contains(u.LikedVideos, v.ID) {
			u.LikedVideos = remove(u.LikedVideos, v.ID)
			v.Likes = floor(v.Likes - 1)
		}
	} else {
		u.DislikedVideos = remove(u.DislikedVideos, v.ID)
		v.Dislikes = floor(v.Dislikes - 1)
	}
	return result(u, v)
}

// Status reports the current membership and counters without mutating.
func Status(u *entity.User, v *entity.Video) ToggleResult {
	return result(u, v)
}

func result(u *entity.User, v *entity.Video) ToggleResult {
	return ToggleResult{
		Liked:    contains(u.LikedVideos, v.ID),
		Disliked: contains(u.DislikedVideos, v.ID),
		Likes:    v.Likes,
		Dislikes: v.Dislikes,
	}
}
