package proposal

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
	bookService "sourcingsprints.com/bookclub/internal/modules/book/service"
	notifRepo "sourcingsprints.com/bookclub/internal/modules/notification/repository"
	notifService "sourcingsprints.com/bookclub/internal/modules/notification/service"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	proposalDto "sourcingsprints.com/bookclub/internal/modules/proposal/dto"
	proposalRepo "sourcingsprints.com/bookclub/internal/modules/proposal/repository"
	"sourcingsprints.com/bookclub/internal/testutil"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type fixture struct {
	db       *gorm.DB
	svc      ProposalService
	books    bookRepo.BookRepository
	proposer *entity.User
	voter    *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	books := bookRepo.NewBookRepository(db)
	bookSvc := bookService.NewBookService(books, nil, nil, "covers")
	notifications := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil)
	svc := NewProposalService(proposalRepo.NewProposalRepository(db), bookSvc, notifications, userRepo.NewUserRepository(db))

	return &fixture{
		db:       db,
		svc:      svc,
		books:    books,
		proposer: testutil.NewUser(t, db, "ana@example.com", "Ana"),
		voter:    testutil.NewUser(t, db, "ben@example.com", "Ben"),
	}
}

func (f *fixture) propose(t *testing.T, title string) *entity.Proposal {
	t.Helper()
	p, err := f.svc.Propose(context.Background(), f.proposer.ID, proposalDto.ProposeRequest{
		Title:  title,
		Author: "Some Author",
	})
	require.NoError(t, err)
	return p
}

func TestToggleVoteTwiceIsIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.propose(t, "Accelerate")

	first, err := f.svc.ToggleVote(ctx, p.ID, f.voter.ID)
	require.NoError(t, err)
	assert.True(t, first.Voted)
	assert.Equal(t, int64(1), first.VoteCount)

	second, err := f.svc.ToggleVote(ctx, p.ID, f.voter.ID)
	require.NoError(t, err)
	assert.False(t, second.Voted)
	assert.Equal(t, int64(0), second.VoteCount)
}

func TestToggleVoteUnknownProposal(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ToggleVote(context.Background(), uuid.New(), f.voter.ID)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestRankOrdersByVotesThenNewest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := f.propose(t, "Older Zero Votes")
	newer := f.propose(t, "Newer Zero Votes")
	popular := f.propose(t, "Popular Pick")

	_, err := f.svc.ToggleVote(ctx, popular.ID, f.voter.ID)
	require.NoError(t, err)
	_, err = f.svc.ToggleVote(ctx, popular.ID, f.proposer.ID)
	require.NoError(t, err)

	ranked, err := f.svc.Rank(ctx, &f.voter.ID)
	require.NoError(t, err)
	require.Len(t, ranked, 3)

	assert.Equal(t, popular.ID, ranked[0].ID)
	assert.True(t, ranked[0].Voted)
	// Zero-vote tie breaks toward the newer proposal.
	assert.Equal(t, newer.ID, ranked[1].ID)
	assert.Equal(t, older.ID, ranked[2].ID)
	assert.False(t, ranked[1].Voted)
}

func TestTopTruncatesRanking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.propose(t, "One")
	f.propose(t, "Two")
	f.propose(t, "Three")
	f.propose(t, "Four")

	top, err := f.svc.Top(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, top, 3)
}

func TestPromoteCreatesBookAndDeactivates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.propose(t, "Team Topologies")

	created, err := f.svc.Promote(ctx, p.ID, entity.BookStatusCurrent)
	require.NoError(t, err)
	assert.Equal(t, "Team Topologies", created.Title)
	assert.Equal(t, entity.BookStatusCurrent, created.Status)

	// Off the board after promotion.
	ranked, err := f.svc.Rank(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)

	// Promoting again finds nothing active.
	_, err = f.svc.Promote(ctx, p.ID, entity.BookStatusRead)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// The proposer hears about it.
	var notifications []entity.Notification
	require.NoError(t, f.db.Where("recipient_id = ?", f.proposer.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationPromoted, notifications[0].Type)

	// Everyone else hears what's next.
	var announcements []entity.Notification
	require.NoError(t, f.db.Where("recipient_id = ?", f.voter.ID).Find(&announcements).Error)
	require.Len(t, announcements, 1)
	assert.Equal(t, entity.NotificationNewBook, announcements[0].Type)
}

func TestPromoteToCurrentDemotesShelf(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	existing := testutil.NewBook(t, f.db, "Sitting Current", entity.BookStatusCurrent)
	p := f.propose(t, "The Next One")

	_, err := f.svc.Promote(ctx, p.ID, entity.BookStatusCurrent)
	require.NoError(t, err)

	demoted, err := f.books.FindByID(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusRead, demoted.Status)

	count, err := f.books.CountByStatus(ctx, entity.BookStatusCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPromoteRejectsArchivedTarget(t *testing.T) {
	f := newFixture(t)
	p := f.propose(t, "Nope")

	_, err := f.svc.Promote(context.Background(), p.ID, entity.BookStatusArchived)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
}

func TestWithdrawOwnershipCheck(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.propose(t, "Mine Only")

	err := f.svc.Withdraw(ctx, p.ID, f.voter.ID, false)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))

	// Admin may withdraw anyone's proposal.
	require.NoError(t, f.svc.Withdraw(ctx, p.ID, f.voter.ID, true))

	ranked, err := f.svc.Rank(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}
