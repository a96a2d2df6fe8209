package entity

import (
	"time"
)

// Video is an independent aggregate, referenced (never owned) by user
// collections. Likes and Dislikes mirror set membership on the user side;
// Views is monotonically non-decreasing.
type Video struct {
	ID           string
	Title        string
	Description  string
	Category     string
	SrcURL       string
	ThumbnailURL string
	UploadedBy   string // user id of the uploader
	UploadedAt   time.Time
	Views        int64
	Likes        int64
	Dislikes     int64
	Comments     []Comment

	// UploaderName is filled on reads by joining the uploader; not persisted
	// on the video row itself.
	UploaderName string
}

// Comment is owned exclusively by its parent video. Username is a snapshot of
// the author at creation time; IsUploader is computed once and never
// recomputed.
type Comment struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	UserID     string    `json:"user_id"`
	Username   string    `json:"username"`
	IsUploader bool      `json:"is_uploader"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentByID returns the comment with the given id, or nil.
func (v *Video) CommentByID(id string) *Comment {
	for i := range v.Comments {
		if v.Comments[i].ID == id {
			return &v.Comments[i]
		}
	}
	return nil
}
