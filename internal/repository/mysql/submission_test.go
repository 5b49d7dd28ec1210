package mysql_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/artcontest/contest-backend/domain"
	repo "github.com/artcontest/contest-backend/internal/repository/mysql"
	"github.com/artcontest/contest-backend/internal/testutil"
)

func seed(t *testing.T, db *gorm.DB, subs ...domain.Submission) []domain.Submission {
	t.Helper()
	r := repo.NewSubmissionRepository(db)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range subs {
		if subs[i].Nickname == "" {
			subs[i].Nickname = faker.FirstName()
		}
		if subs[i].Email == "" {
			subs[i].Email = "owner@x.com"
		}
		subs[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, r.Store(context.TODO(), &subs[i]))
	}
	return subs
}

func TestSubmissionStoreAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	r := repo.NewSubmissionRepository(db)

	s := domain.Submission{
		Nickname:    "Ana",
		Email:       "ana@x.com",
		Category:    "sport",
		Description: "run",
		FileURL:     "/uploads/1-ana.png",
		Storage:     domain.StorageLocal,
		MimeType:    "image/png",
		Size:        42,
	}
	require.NoError(t, r.Store(context.TODO(), &s))
	require.NotEmpty(t, s.ID)

	got, err := r.GetByID(context.TODO(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@x.com", got.Email)
	assert.Equal(t, int64(42), got.Size)
	assert.False(t, got.IsVerified)
	assert.Zero(t, got.LikesCount)

	_, err = r.GetByID(context.TODO(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmissionCountByEmailCategory(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed(t, db,
		domain.Submission{Email: "a@x.com", Category: "sport"},
		domain.Submission{Email: "a@x.com", Category: "sport"},
		domain.Submission{Email: "a@x.com", Category: "art"},
		domain.Submission{Email: "b@x.com", Category: "sport"},
	)
	r := repo.NewSubmissionRepository(db)

	n, err := r.CountByEmailCategory(context.TODO(), "a@x.com", "sport")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = r.CountByEmailCategory(context.TODO(), "c@x.com", "sport")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSubmissionFind(t *testing.T) {
	db := testutil.NewTestDB(t)
	subs := seed(t, db,
		domain.Submission{Nickname: "Ana", Category: "sport", Description: "Morning Run", IsVerified: true},
		domain.Submission{Nickname: "Bob", Category: "art", Description: "oil", LikesCount: 7},
		domain.Submission{Nickname: "Cleo", Category: "sport", Description: "swim", IsVerified: true, LikesCount: 3},
	)
	r := repo.NewSubmissionRepository(db)
	ctx := context.TODO()

	t.Run("verified newest first", func(t *testing.T) {
		q := domain.SubmissionQuery{Filter: domain.FilterVerified, Page: 1, Limit: 10, SortField: "createdAt", SortDesc: true}
		items, err := r.Find(ctx, q)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, subs[2].ID, items[0].ID)
		assert.Equal(t, subs[0].ID, items[1].ID)

		total, err := r.Count(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("pending", func(t *testing.T) {
		items, err := r.Find(ctx, domain.SubmissionQuery{Filter: domain.FilterPending, Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Bob", items[0].Nickname)
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		items, err := r.Find(ctx, domain.SubmissionQuery{Search: "RUN", Page: 1, Limit: 10})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Ana", items[0].Nickname)
	})

	t.Run("category and likes ascending", func(t *testing.T) {
		items, err := r.Find(ctx, domain.SubmissionQuery{Category: "sport", Page: 1, Limit: 10, SortField: "likesCount"})
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Ana", items[0].Nickname)
		assert.Equal(t, "Cleo", items[1].Nickname)
	})

	t.Run("paging", func(t *testing.T) {
		items, err := r.Find(ctx, domain.SubmissionQuery{Page: 2, Limit: 2, SortField: "createdAt", SortDesc: true})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, subs[0].ID, items[0].ID)
	})
}

func TestSubmissionSearchIsLiteral(t *testing.T) {
	db := testutil.NewTestDB(t)
	seed(t, db,
		domain.Submission{Nickname: "Ana", Category: "art", Description: "100% oil"},
		domain.Submission{Nickname: "Bob", Category: "art", Description: "snake_case"},
		domain.Submission{Nickname: "Cleo", Category: "art", Description: "wow!"},
		domain.Submission{Nickname: "Dan", Category: "art", Description: "plain"},
	)
	r := repo.NewSubmissionRepository(db)

	cases := []struct {
		search string
		want   string
	}{
		{"%", "Ana"},
		{"_", "Bob"},
		{"!", "Cleo"},
		{"e_c", "Bob"},
	}
	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			q := domain.SubmissionQuery{Search: tc.search, Page: 1, Limit: 10}
			items, err := r.Find(context.TODO(), q)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tc.want, items[0].Nickname)

			total, err := r.Count(context.TODO(), q)
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
		})
	}
}

func TestSubmissionSetVerified(t *testing.T) {
	db := testutil.NewTestDB(t)
	subs := seed(t, db, domain.Submission{Category: "art"})
	r := repo.NewSubmissionRepository(db)

	require.NoError(t, r.SetVerified(context.TODO(), subs[0].ID, true))
	require.NoError(t, r.SetVerified(context.TODO(), subs[0].ID, true), "approving twice is fine")

	got, err := r.GetByID(context.TODO(), subs[0].ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	assert.ErrorIs(t, r.SetVerified(context.TODO(), "missing", true), domain.ErrNotFound)
}

func TestSubmissionDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	subs := seed(t, db, domain.Submission{Category: "art"})
	r := repo.NewSubmissionRepository(db)

	require.NoError(t, r.Delete(context.TODO(), subs[0].ID))
	assert.ErrorIs(t, r.Delete(context.TODO(), subs[0].ID), domain.ErrNotFound)

	_, err := r.GetByID(context.TODO(), subs[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
