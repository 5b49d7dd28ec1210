package moderation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcontest/contest-backend/domain"
	"github.com/artcontest/contest-backend/internal/repository/mysql"
	"github.com/artcontest/contest-backend/internal/testutil"
)

func seed(t *testing.T, repo domain.SubmissionRepository) []domain.Submission {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []struct {
		nickname, category, description string
		verified                        bool
	}{
		{"Ana", "sport", "morning run", true},
		{"Bob", "nature", "Forest at dusk", false},
		{"Cleo", "nature", "river", true},
		{"Dan", "art", "oil on canvas", false},
	}

	var out []domain.Submission
	for i, r := range rows {
		s := domain.Submission{
			Nickname:    r.nickname,
			Email:       fmt.Sprintf("user%d@x.com", i),
			Category:    r.category,
			Description: r.description,
			FileURL:     fmt.Sprintf("/uploads/%d.jpg", i),
			Storage:     domain.StorageLocal,
			IsVerified:  r.verified,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Store(context.Background(), &s))
		out = append(out, s)
	}
	return out
}

func nicknames(items []domain.Submission) []string {
	var out []string
	for _, s := range items {
		out = append(out, s.Nickname)
	}
	return out
}

func TestListFilters(t *testing.T) {
	repo := mysql.NewSubmissionRepository(testutil.NewTestDB(t))
	seed(t, repo)
	svc := NewService(repo)
	ctx := context.Background()

	items, total, err := svc.List(ctx, domain.SubmissionQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"Dan", "Cleo", "Bob", "Ana"}, nicknames(items))

	items, total, err = svc.List(ctx, domain.SubmissionQuery{Filter: domain.FilterPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, []string{"Dan", "Bob"}, nicknames(items))

	items, _, err = svc.List(ctx, domain.SubmissionQuery{Filter: domain.FilterVerified, Category: "nature"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleo"}, nicknames(items))

	items, total, err = svc.List(ctx, domain.SubmissionQuery{Search: "FOREST"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []string{"Bob"}, nicknames(items))
}

func TestListSortAndPaging(t *testing.T) {
	repo := mysql.NewSubmissionRepository(testutil.NewTestDB(t))
	seed(t, repo)
	svc := NewService(repo)

	items, total, err := svc.List(context.Background(), domain.SubmissionQuery{
		Page:      2,
		Limit:     2,
		SortField: "nickname",
		SortDesc:  false,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, []string{"Cleo", "Dan"}, nicknames(items))
}

func TestApproveAndDelete(t *testing.T) {
	repo := mysql.NewSubmissionRepository(testutil.NewTestDB(t))
	rows := seed(t, repo)
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Approve(ctx, rows[1].ID))
	got, err := repo.GetByID(ctx, rows[1].ID)
	require.NoError(t, err)
	assert.True(t, got.IsVerified)

	// approving twice is not an error
	assert.NoError(t, svc.Approve(ctx, rows[1].ID))

	require.NoError(t, svc.Delete(ctx, rows[3].ID))
	_, err = repo.GetByID(ctx, rows[3].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Approve(ctx, "missing"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, rows[3].ID), domain.ErrNotFound)
}
