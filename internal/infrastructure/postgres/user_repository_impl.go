package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, username, password_hash,
	liked_videos, disliked_videos, watch_later, playlists, history,
	created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.Password,
		&u.LikedVideos, &u.DislikedVideos, &u.WatchLater, &u.Playlists, &u.History,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user_not_found", "user not found")
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Email, u.Username, u.Password)
	return uniqueViolation(row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET email = $1, password_hash = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, u.Email, u.Password, u.ID)
	err := row.Scan(&u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("user_not_found", "user not found")
	}
	return uniqueViolation(err)
}

// uniqueViolation translates a 23505 on the email/username indexes into a
// structured rejection instead of a bare driver error.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return apperr.Invariant("username_taken", "username is already taken")
		}
		return apperr.Invariant("email_taken", "email is already registered")
	}
	return err
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

var collectionColumns = map[repository.Collection]bool{
	repository.ColLiked:      true,
	repository.ColDisliked:   true,
	repository.ColWatchLater: true,
	repository.ColPlaylists:  true,
	repository.ColHistory:    true,
}

// Mutate loads the user row FOR UPDATE inside one transaction, applies fn and
// writes back only the named collections. If fn fails the transaction rolls
// back and nothing is persisted.
func (r *UserRepository) Mutate(ctx context.Context, username string, cols []repository.Collection, fn func(u *entity.User) error) (*entity.User, error) {
	var out *entity.User
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE username = $1 FOR UPDATE`, username))
		if err != nil {
			return err
		}
		if err := fn(u); err != nil {
			return err
		}
		if err := saveCollections(ctx, tx, u, cols); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MutateWithVideo locks the user row first and the video row second (a fixed
// order, so concurrent toggles cannot deadlock), applies fn, then persists
// the named user collections and the video counters in the same transaction.
// A missing video is passed to fn as nil; the counter write is then skipped.
func (r *UserRepository) MutateWithVideo(ctx context.Context, username, videoID string, cols []repository.Collection, fn func(u *entity.User, v *entity.Video) error) (*entity.User, *entity.Video, error) {
	var (
		outU *entity.User
		outV *entity.Video
	)
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		u, err := scanUser(tx.QueryRow(ctx,
			`SELECT `+userColumns+` FROM users WHERE username = $1 FOR UPDATE`, username))
		if err != nil {
			return err
		}

		v := &entity.Video{}
		err = tx.QueryRow(ctx, `
			SELECT id, title, description, category, src_url, thumbnail_url,
			       uploaded_by, uploaded_at, views, likes, dislikes, comments
			FROM videos WHERE id = $1 FOR UPDATE
		`, videoID).Scan(&v.ID, &v.Title, &v.Description, &v.Category, &v.SrcURL, &v.ThumbnailURL,
			&v.UploadedBy, &v.UploadedAt, &v.Views, &v.Likes, &v.Dislikes, &v.Comments)
		if errors.Is(err, pgx.ErrNoRows) {
			v = nil
		} else if err != nil {
			return err
		}

		if err := fn(u, v); err != nil {
			return err
		}
		if err := saveCollections(ctx, tx, u, cols); err != nil {
			return err
		}
		if v != nil {
			if _, err := tx.Exec(ctx,
				`UPDATE videos SET likes = $1, dislikes = $2 WHERE id = $3`,
				v.Likes, v.Dislikes, v.ID); err != nil {
				return err
			}
		}
		outU, outV = u, v
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return outU, outV, nil
}

func saveCollections(ctx context.Context, tx pgx.Tx, u *entity.User, cols []repository.Collection) error {
	if len(cols) == 0 {
		return nil
	}
	sets := make([]string, 0, len(cols)+1)
	args := make([]any, 0, len(cols)+1)
	for _, col := range cols {
		if !collectionColumns[col] {
			return fmt.Errorf("unknown user collection %q", col)
		}
		args = append(args, collectionValue(u, col))
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	args = append(args, time.Now())
	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))
	args = append(args, u.ID)

	_, err := tx.Exec(ctx,
		`UPDATE users SET `+strings.Join(sets, ", ")+fmt.Sprintf(` WHERE id = $%d`, len(args)),
		args...)
	return err
}

// collectionValue normalizes nil slices to empty ones so the jsonb columns
// always hold arrays, never null.
func collectionValue(u *entity.User, col repository.Collection) any {
	switch col {
	case repository.ColLiked:
		return emptyIfNil(u.LikedVideos)
	case repository.ColDisliked:
		return emptyIfNil(u.DislikedVideos)
	case repository.ColWatchLater:
		return emptyIfNil(u.WatchLater)
	case repository.ColPlaylists:
		if u.Playlists == nil {
			return []entity.Playlist{}
		}
		return u.Playlists
	default:
		if u.History == nil {
			return []entity.HistoryEntry{}
		}
		return u.History
	}
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

var _ repository.UserRepository = (*UserRepository)(nil)
