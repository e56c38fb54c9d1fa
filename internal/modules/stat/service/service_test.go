package stat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/entity"
	statRepo "sourcingsprints.com/bookclub/internal/modules/stat/repository"
	"sourcingsprints.com/bookclub/internal/testutil"
)

func newService(t *testing.T) (StatService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewStatService(statRepo.NewStatRepository(db)), db
}

func addReview(t *testing.T, db *gorm.DB, book *entity.Book, user *entity.User, rating *int) {
	t.Helper()
	review := &entity.Review{BookID: book.ID, UserID: user.ID, Rating: rating, Thoughts: "noted"}
	require.NoError(t, db.Create(review).Error)
}

func intPtr(n int) *int { return &n }

func TestDashboardEmptyClub(t *testing.T) {
	svc, _ := newService(t)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.BooksRead)
	assert.Nil(t, stats.TeamAverage)
	assert.Empty(t, stats.TopReviewers)
	assert.Empty(t, stats.MostGenerous)
	assert.Empty(t, stats.MostCritical)
}

func TestDashboardCountsAndAverages(t *testing.T) {
	svc, db := newService(t)

	finished := testutil.NewBook(t, db, "Finished Book", entity.BookStatusRead)
	alsoFinished := testutil.NewBook(t, db, "Also Finished", entity.BookStatusRead)
	current := testutil.NewBook(t, db, "In Progress", entity.BookStatusCurrent)
	_ = testutil.NewBook(t, db, "Shelved", entity.BookStatusArchived)

	ana := testutil.NewUser(t, db, "ana@example.com", "Ana")
	ben := testutil.NewUser(t, db, "ben@example.com", "Ben")

	addReview(t, db, finished, ana, intPtr(5))
	addReview(t, db, finished, ben, intPtr(3))
	addReview(t, db, alsoFinished, ana, intPtr(2))
	addReview(t, db, current, ana, nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	// Only Read books count as finished; Current and Archived do not.
	assert.Equal(t, int64(2), stats.BooksRead)

	require.NotNil(t, stats.TeamAverage)
	assert.InDelta(t, 10.0/3.0, *stats.TeamAverage, 0.0001)

	require.NotEmpty(t, stats.TopReviewers)
	assert.Equal(t, "Ana", stats.TopReviewers[0].DisplayName)
	assert.Equal(t, int64(3), stats.TopReviewers[0].ReviewCount)
}

func TestGenerosityBoardsRequireTwoRatingsPerReviewer(t *testing.T) {
	svc, db := newService(t)

	shared := testutil.NewBook(t, db, "Shared Book", entity.BookStatusRead)
	ana := testutil.NewUser(t, db, "ana@example.com", "Ana")
	ben := testutil.NewUser(t, db, "ben@example.com", "Ben")

	// Two ratings on one book, but each person has only rated once, so
	// neither is eligible yet.
	addReview(t, db, shared, ana, intPtr(5))
	addReview(t, db, shared, ben, intPtr(2))

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats.MostGenerous)
	assert.Empty(t, stats.MostCritical)
}

func TestGenerosityBoardsRankReviewers(t *testing.T) {
	svc, db := newService(t)

	first := testutil.NewBook(t, db, "First Book", entity.BookStatusRead)
	second := testutil.NewBook(t, db, "Second Book", entity.BookStatusRead)

	ana := testutil.NewUser(t, db, "ana@example.com", "Ana")
	ben := testutil.NewUser(t, db, "ben@example.com", "Ben")
	cal := testutil.NewUser(t, db, "cal@example.com", "Cal")

	addReview(t, db, first, ana, intPtr(5))
	addReview(t, db, second, ana, intPtr(5))
	addReview(t, db, first, ben, intPtr(2))
	addReview(t, db, second, ben, intPtr(3))
	// Cal has one rating and an unrated review; stays off the boards.
	addReview(t, db, first, cal, intPtr(4))
	addReview(t, db, second, cal, nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	require.Len(t, stats.MostGenerous, 2)
	assert.Equal(t, "Ana", stats.MostGenerous[0].DisplayName)
	assert.InDelta(t, 5.0, stats.MostGenerous[0].Average, 0.0001)
	assert.Equal(t, int64(2), stats.MostGenerous[0].RatingCount)

	require.Len(t, stats.MostCritical, 2)
	assert.Equal(t, "Ben", stats.MostCritical[0].DisplayName)
	assert.InDelta(t, 2.5, stats.MostCritical[0].Average, 0.0001)
}
