package gallery

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository/mysql"
	"github.com/artcontest/contest-backend/internal/testutil"
	"github.com/artcontest/contest-backend/internal/usecase/like"
)

func newGallery(t *testing.T) (*Service, domain.SubmissionRepository, *like.Service) {
	t.Helper()
	db := testutil.NewTestDB(t)
	subs := mysql.NewSubmissionRepository(db)
	likes := like.NewService(mysql.NewLikeRepository(db), subs, nil, false)
	return NewService(subs, likes), subs, likes
}

func store(t *testing.T, repo domain.SubmissionRepository, category string, verified bool) domain.Submission {
	t.Helper()
	s := domain.Submission{
		Nickname: "n",
		Email:    fmt.Sprintf("%s@x.com", uuid.NewString()[:8]),
		Category: category,
		FileURL:  "/uploads/x.jpg",
		Storage:  domain.StorageLocal,
	}
	require.NoError(t, repo.Store(context.Background(), &s))
	if verified {
		require.NoError(t, repo.SetVerified(context.Background(), s.ID, true))
	}
	return s
}

func TestFetchVerifiedNeverReturnsPending(t *testing.T) {
	svc, repo, _ := newGallery(t)
	for i := 0; i < 6; i++ {
		store(t, repo, "sport", i%2 == 0)
	}
	store(t, repo, "art", true)

	items, total, err := svc.FetchVerified(context.Background(), "", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	for _, s := range items {
		assert.True(t, s.IsVerified)
	}

	items, total, err = svc.FetchVerified(context.Background(), "sport", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, items, 2)
}

func TestFetchVerifiedEmpty(t *testing.T) {
	svc, repo, _ := newGallery(t)
	store(t, repo, "sport", false)

	items, total, err := svc.FetchVerified(context.Background(), "", 0, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetDetail(t *testing.T) {
	svc, repo, likes := newGallery(t)
	s := store(t, repo, "sport", true)
	ctx := context.Background()

	_, err := likes.Like(ctx, s.ID, "ana@x.com")
	require.NoError(t, err)

	got, liked, err := svc.GetDetail(ctx, s.ID, "ana@x.com")
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, int64(1), got.LikesCount)

	_, liked, err = svc.GetDetail(ctx, s.ID, "bob@x.com")
	require.NoError(t, err)
	assert.False(t, liked)

	_, liked, err = svc.GetDetail(ctx, s.ID, "")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestGetDetailMissing(t *testing.T) {
	svc, _, _ := newGallery(t)

	_, _, err := svc.GetDetail(context.Background(), "nope", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.GetDetail(context.Background(), uuid.NewString(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// gatedRepo holds GetByID until release is closed.
type gatedRepo struct {
	domain.SubmissionRepository
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedRepo) GetByID(ctx context.Context, id string) (domain.Submission, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	return g.SubmissionRepository.GetByID(ctx, id)
}

func TestGetDetailSharedLoadOutlivesFirstCaller(t *testing.T) {
	_, repo, _ := newGallery(t)
	s := store(t, repo, "sport", true)
	gated := &gatedRepo{SubmissionRepository: repo, started: make(chan struct{}), release: make(chan struct{})}
	svc := NewService(gated, nil)

	first, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, _, err := svc.GetDetail(first, s.ID, "")
		firstErr <- err
	}()
	<-gated.started

	secondErr := make(chan error, 1)
	var got domain.Submission
	go func() {
		var err error
		got, _, err = svc.GetDetail(context.Background(), s.ID, "")
		secondErr <- err
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	close(gated.release)

	require.NoError(t, <-secondErr)
	assert.Equal(t, s.ID, got.ID)
	assert.NoError(t, <-firstErr)
}

func TestGetDetailWithCanceledContext(t *testing.T) {
	svc, repo, _ := newGallery(t)
	s := store(t, repo, "sport", true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, liked, err := svc.GetDetail(ctx, s.ID, "")
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, s.ID, got.ID)
}
