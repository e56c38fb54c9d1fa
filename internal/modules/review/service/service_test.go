package review

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/entity"
	bookRepo "sourcingsprints.com/bookclub/internal/modules/book/repository"
	reviewDto "sourcingsprints.com/bookclub/internal/modules/review/dto"
	reviewRepo "sourcingsprints.com/bookclub/internal/modules/review/repository"
	"sourcingsprints.com/bookclub/internal/testutil"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

func intPtr(n int) *int { return &n }

func newService(t *testing.T) (ReviewService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	svc := NewReviewService(reviewRepo.NewReviewRepository(db), bookRepo.NewBookRepository(db))
	return svc, db
}

func TestUpsertReplacesInPlace(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	book := testutil.NewBook(t, db, "Refactoring", entity.BookStatusRead)
	user := testutil.NewUser(t, db, "ana@example.com", "Ana")

	first, err := svc.Upsert(ctx, book.ID, user.ID, reviewDto.UpsertReviewRequest{
		Rating:   intPtr(3),
		Thoughts: "Decent",
	})
	require.NoError(t, err)

	second, err := svc.Upsert(ctx, book.ID, user.ID, reviewDto.UpsertReviewRequest{
		Rating:   intPtr(5),
		Thoughts: "Grew on me",
	})
	require.NoError(t, err)

	// Same row, new content.
	assert.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Rating)
	assert.Equal(t, 5, *second.Rating)
	assert.Equal(t, "Grew on me", second.Thoughts)

	var count int64
	require.NoError(t, db.Model(&entity.Review{}).Where("book_id = ?", book.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertUnknownBook(t *testing.T) {
	svc, db := newService(t)
	user := testutil.NewUser(t, db, "ana@example.com", "Ana")

	_, err := svc.Upsert(context.Background(), uuid.New(), user.ID, reviewDto.UpsertReviewRequest{
		Thoughts: "Ghost book",
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestUpsertRejectsEmptyThoughts(t *testing.T) {
	svc, db := newService(t)
	book := testutil.NewBook(t, db, "Silence", entity.BookStatusRead)
	user := testutil.NewUser(t, db, "ana@example.com", "Ana")

	_, err := svc.Upsert(context.Background(), book.ID, user.ID, reviewDto.UpsertReviewRequest{
		Thoughts: "   ",
	})
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestAggregateAveragesOnlyRatedReviews(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	book := testutil.NewBook(t, db, "Mixed Feelings", entity.BookStatusRead)
	rater1 := testutil.NewUser(t, db, "a@example.com", "A")
	rater2 := testutil.NewUser(t, db, "b@example.com", "B")
	texter := testutil.NewUser(t, db, "c@example.com", "C")

	_, err := svc.Upsert(ctx, book.ID, rater1.ID, reviewDto.UpsertReviewRequest{Rating: intPtr(4), Thoughts: "Good"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, book.ID, rater2.ID, reviewDto.UpsertReviewRequest{Rating: intPtr(5), Thoughts: "Great"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, book.ID, texter.ID, reviewDto.UpsertReviewRequest{Thoughts: "No rating from me"})
	require.NoError(t, err)

	agg, err := svc.Aggregate(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), agg.Count)
	require.NotNil(t, agg.Average)
	assert.InDelta(t, 4.5, *agg.Average, 0.0001)
}

func TestAggregateNoReviews(t *testing.T) {
	svc, db := newService(t)
	book := testutil.NewBook(t, db, "Untouched", entity.BookStatusRead)

	agg, err := svc.Aggregate(context.Background(), book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), agg.Count)
	assert.Nil(t, agg.Average)
}

func TestAggregateOnlyUnratedReviews(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	book := testutil.NewBook(t, db, "Words Only", entity.BookStatusRead)
	u1 := testutil.NewUser(t, db, "a@example.com", "A")
	u2 := testutil.NewUser(t, db, "b@example.com", "B")

	_, err := svc.Upsert(ctx, book.ID, u1.ID, reviewDto.UpsertReviewRequest{Thoughts: "Thoughts only"})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, book.ID, u2.ID, reviewDto.UpsertReviewRequest{Thoughts: "Same here"})
	require.NoError(t, err)

	agg, err := svc.Aggregate(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), agg.Count)
	assert.Nil(t, agg.Average)
}

func TestGetForBookIncludesReviewerNames(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	book := testutil.NewBook(t, db, "Named", entity.BookStatusRead)
	user := testutil.NewUser(t, db, "ana@example.com", "Ana")

	_, err := svc.Upsert(ctx, book.ID, user.ID, reviewDto.UpsertReviewRequest{Rating: intPtr(4), Thoughts: "Solid"})
	require.NoError(t, err)

	resp, err := svc.GetForBook(ctx, book.ID)
	require.NoError(t, err)
	require.Len(t, resp.Reviews, 1)
	assert.Equal(t, "Ana", resp.Reviews[0].ReviewerName)
	assert.Equal(t, int64(1), resp.Count)
}
