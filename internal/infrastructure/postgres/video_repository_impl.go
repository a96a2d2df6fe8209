package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

type VideoRepository struct {
	pool *pgxpool.Pool
}

func NewVideoRepository(pool *pgxpool.Pool) *VideoRepository {
	return &VideoRepository{pool: pool}
}

const videoColumns = `v.id, v.title, v.description, v.category, v.src_url, v.thumbnail_url,
	v.uploaded_by, v.uploaded_at, v.views, v.likes, v.dislikes, v.comments,
	COALESCE(u.username, '')`

const videoFrom = ` FROM videos v LEFT JOIN users u ON u.id = v.uploaded_by `

func scanVideo(row pgx.Row) (*entity.Video, error) {
	v := &entity.Video{}
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.Category, &v.SrcURL, &v.ThumbnailURL,
		&v.UploadedBy, &v.UploadedAt, &v.Views, &v.Likes, &v.Dislikes, &v.Comments,
		&v.UploaderName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("video_not_found", "video not found")
		}
		return nil, err
	}
	return v, nil
}

func collectVideos(rows pgx.Rows) ([]entity.Video, error) {
	defer rows.Close()
	var out []entity.Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *VideoRepository) Create(ctx context.Context, v *entity.Video) error {
	if v.Comments == nil {
		v.Comments = []entity.Comment{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO videos (title, description, category, src_url, thumbnail_url, uploaded_by, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, uploaded_at
	`, v.Title, v.Description, v.Category, v.SrcURL, v.ThumbnailURL, v.UploadedBy, v.Comments)
	return row.Scan(&v.ID, &v.UploadedAt)
}

func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	return scanVideo(r.pool.QueryRow(ctx,
		`SELECT `+videoColumns+videoFrom+`WHERE v.id = $1`, id))
}

// GetByIDs returns the videos that still exist, in the order of ids. Missing
// ids are skipped: dangling references are the caller's weak-reference
// filtering, not an error.
func (r *VideoRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.Video, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+videoFrom+`WHERE v.id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	found, err := collectVideos(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]entity.Video, len(found))
	for _, v := range found {
		byID[v.ID] = v
	}
	out := make([]entity.Video, 0, len(found))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *VideoRepository) List(ctx context.Context) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+videoFrom+`ORDER BY v.uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

func (r *VideoRepository) ListTrending(ctx context.Context, limit int) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+videoFrom+`ORDER BY v.views DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

func (r *VideoRepository) ListByUploader(ctx context.Context, userID string) ([]entity.Video, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+videoColumns+videoFrom+`WHERE v.uploaded_by = $1 ORDER BY v.uploaded_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	return collectVideos(rows)
}

// CountView bumps the view counter in a single statement, so concurrent
// detail reads never lose increments.
func (r *VideoRepository) CountView(ctx context.Context, id string) (*entity.Video, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, apperr.NotFound("video_not_found", "video not found")
	}
	return r.GetByID(ctx, id)
}

// MutateComments locks the video row, applies fn to the in-memory aggregate
// and writes back the comments document.
func (r *VideoRepository) MutateComments(ctx context.Context, id string, fn func(v *entity.Video) error) (*entity.Video, error) {
	var out *entity.Video
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		v := &entity.Video{}
		err := tx.QueryRow(ctx, `
			SELECT id, title, description, category, src_url, thumbnail_url,
			       uploaded_by, uploaded_at, views, likes, dislikes, comments
			FROM videos WHERE id = $1 FOR UPDATE
		`, id).Scan(&v.ID, &v.Title, &v.Description, &v.Category, &v.SrcURL, &v.ThumbnailURL,
			&v.UploadedBy, &v.UploadedAt, &v.Views, &v.Likes, &v.Dislikes, &v.Comments)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("video_not_found", "video not found")
		}
		if err != nil {
			return err
		}
		if err := fn(v); err != nil {
			return err
		}
		if v.Comments == nil {
			v.Comments = []entity.Comment{}
		}
		if _, err := tx.Exec(ctx,
			`UPDATE videos SET comments = $1 WHERE id = $2`, v.Comments, v.ID); err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

var _ repository.VideoRepository = (*VideoRepository)(nil)
