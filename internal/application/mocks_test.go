package application

import (
	"context"

	"github.com/vidstream/vidstream-backend/internal/domain/entity"
	"github.com/vidstream/vidstream-backend/internal/domain/repository"
	"github.com/vidstream/vidstream-backend/pkg/apperr"
)

// mockUserRepo is an in-memory stand-in for repository.UserRepository. It
// holds a single user aggregate; Mutate and MutateWithVideo run fn directly
// against it, recording which collections were named. Individual methods can
// be overridden through the func fields.
type mockUserRepo struct {
	user   *entity.User
	videos *mockVideoRepo // resolved by MutateWithVideo, may be nil

	CreateFunc     func(u *entity.User) error
	UpdateFunc     func(u *entity.User) error
	GetByEmailFunc func(email string) (*entity.User, error)

	mutatedCols []repository.Collection
}

func (m *mockUserRepo) Create(_ context.Context, u *entity.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(u)
	}
	u.ID = "user-1"
	m.user = u
	return nil
}

func (m *mockUserRepo) Update(_ context.Context, u *entity.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(u)
	}
	m.user = u
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	if m.user != nil && m.user.ID == id {
		return m.user, nil
	}
	return nil, apperr.NotFound("user_not_found", "user not found")
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	if m.user != nil && m.user.Email == email {
		return m.user, nil
	}
	return nil, apperr.NotFound("user_not_found", "user not found")
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	if m.user != nil && m.user.Username == username {
		return m.user, nil
	}
	return nil, apperr.NotFound("user_not_found", "user not found")
}

func (m *mockUserRepo) Mutate(_ context.Context, username string, cols []repository.Collection, fn func(u *entity.User) error) (*entity.User, error) {
	if m.user == nil || m.user.Username != username {
		return nil, apperr.NotFound("user_not_found", "user not found")
	}
	m.mutatedCols = cols
	if err := fn(m.user); err != nil {
		return nil, err
	}
	return m.user, nil
}

func (m *mockUserRepo) MutateWithVideo(_ context.Context, username, videoID string, cols []repository.Collection, fn func(u *entity.User, v *entity.Video) error) (*entity.User, *entity.Video, error) {
	if m.user == nil || m.user.Username != username {
		return nil, nil, apperr.NotFound("user_not_found", "user not found")
	}
	m.mutatedCols = cols
	var v *entity.Video
	if m.videos != nil {
		v = m.videos.store[videoID]
	}
	if err := fn(m.user, v); err != nil {
		return nil, nil, err
	}
	return m.user, v, nil
}

var _ repository.UserRepository = (*mockUserRepo)(nil)

// mockVideoRepo keeps videos in a map keyed by id.
type mockVideoRepo struct {
	store map[string]*entity.Video

	CreateFunc func(v *entity.Video) error
}

func newMockVideoRepo(videos ...*entity.Video) *mockVideoRepo {
	m := &mockVideoRepo{store: map[string]*entity.Video{}}
	for _, v := range videos {
		m.store[v.ID] = v
	}
	return m
}

func (m *mockVideoRepo) Create(_ context.Context, v *entity.Video) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(v)
	}
	if v.ID == "" {
		v.ID = "video-new"
	}
	m.store[v.ID] = v
	return nil
}

func (m *mockVideoRepo) GetByID(_ context.Context, id string) (*entity.Video, error) {
	if v, ok := m.store[id]; ok {
		return v, nil
	}
	return nil, apperr.NotFound("video_not_found", "video not found")
}

func (m *mockVideoRepo) GetByIDs(_ context.Context, ids []string) ([]entity.Video, error) {
	out := make([]entity.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := m.store[id]; ok {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVideoRepo) List(_ context.Context) ([]entity.Video, error) {
	out := make([]entity.Video, 0, len(m.store))
	for _, v := range m.store {
		out = append(out, *v)
	}
	return out, nil
}

func (m *mockVideoRepo) ListTrending(_ context.Context, limit int) ([]entity.Video, error) {
	vs, _ := m.List(context.Background())
	if len(vs) > limit {
		vs = vs[:limit]
	}
	return vs, nil
}

func (m *mockVideoRepo) ListByUploader(_ context.Context, userID string) ([]entity.Video, error) {
	var out []entity.Video
	for _, v := range m.store {
		if v.UploadedBy == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (m *mockVideoRepo) CountView(_ context.Context, id string) (*entity.Video, error) {
	v, ok := m.store[id]
	if !ok {
		return nil, apperr.NotFound("video_not_found", "video not found")
	}
	v.Views++
	return v, nil
}

func (m *mockVideoRepo) MutateComments(_ context.Context, id string, fn func(v *entity.Video) error) (*entity.Video, error) {
	v, ok := m.store[id]
	if !ok {
		return nil, apperr.NotFound("video_not_found", "video not found")
	}
	if err := fn(v); err != nil {
		return nil, err
	}
	return v, nil
}

var _ repository.VideoRepository = (*mockVideoRepo)(nil)

func testUser(username string) *entity.User {
	return &entity.User{ID: "user-1", Email: username + "@example.com", Username: username}
}

func testVideo(id string) *entity.Video {
	return &entity.Video{ID: id, Title: "video " + id, Category: "music", UploadedBy: "uploader-1"}
}
