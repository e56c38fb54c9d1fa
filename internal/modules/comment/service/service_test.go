package comment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"sourcingsprints.com/bookclub/internal/entity"
	commentDto "sourcingsprints.com/bookclub/internal/modules/comment/dto"
	commentRepo "sourcingsprints.com/bookclub/internal/modules/comment/repository"
	notifRepo "sourcingsprints.com/bookclub/internal/modules/notification/repository"
	notifService "sourcingsprints.com/bookclub/internal/modules/notification/service"
	userRepo "sourcingsprints.com/bookclub/internal/modules/profile/repository"
	profileService "sourcingsprints.com/bookclub/internal/modules/profile/service"
	reviewRepo "sourcingsprints.com/bookclub/internal/modules/review/repository"
	"sourcingsprints.com/bookclub/internal/testutil"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

type fixture struct {
	db     *gorm.DB
	svc    CommentService
	review *entity.Review
	author *entity.User
	alice  *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	profiles := profileService.NewProfileService(userRepo.NewUserRepository(db))
	notifications := notifService.NewNotificationService(notifRepo.NewNotificationRepository(db), nil)
	reviews := reviewRepo.NewReviewRepository(db)
	svc := NewCommentService(commentRepo.NewCommentRepository(db), reviews, profiles, notifications)

	author := testutil.NewUser(t, db, "author@example.com", "Author")
	alice := testutil.NewUser(t, db, "alice@example.com", "Alice")
	book := testutil.NewBook(t, db, "Discussed Book", entity.BookStatusRead)

	review := &entity.Review{BookID: book.ID, UserID: author.ID, Thoughts: "Lots to unpack"}
	require.NoError(t, db.Create(review).Error)

	return &fixture{db: db, svc: svc, review: review, author: author, alice: alice}
}

func (f *fixture) mentionsFor(t *testing.T, commentID uuid.UUID) []entity.Mention {
	t.Helper()
	var mentions []entity.Mention
	require.NoError(t, f.db.Where("comment_id = ?", commentID).Find(&mentions).Error)
	return mentions
}

func TestPostRecordsOneMentionPerPerson(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Post(context.Background(), f.review.ID, f.author.ID, commentDto.CreateCommentRequest{
		Body: "@Alice great read @Alice",
	})
	require.NoError(t, err)

	mentions := f.mentionsFor(t, created.ID)
	require.Len(t, mentions, 1)
	assert.Equal(t, f.alice.ID, mentions[0].MentionedUserID)

	var notifications []entity.Notification
	require.NoError(t, f.db.Where("recipient_id = ?", f.alice.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, entity.NotificationMention, notifications[0].Type)
	require.NotNil(t, notifications[0].ReviewID)
	assert.Equal(t, f.review.ID, *notifications[0].ReviewID)
	require.NotNil(t, notifications[0].CommentID)
	assert.Equal(t, created.ID, *notifications[0].CommentID)
}

func TestPostMatchesNamesCaseInsensitively(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Post(context.Background(), f.review.ID, f.author.ID, commentDto.CreateCommentRequest{
		Body: "totally agree @aLiCe",
	})
	require.NoError(t, err)

	mentions := f.mentionsFor(t, created.ID)
	require.Len(t, mentions, 1)
	assert.Equal(t, f.alice.ID, mentions[0].MentionedUserID)
}

func TestPostIgnoresPrefixAndUnknownTokens(t *testing.T) {
	f := newFixture(t)

	// "@Ali" is a prefix of Alice, not her name; "@nobody" matches no profile.
	created, err := f.svc.Post(context.Background(), f.review.ID, f.author.ID, commentDto.CreateCommentRequest{
		Body: "hey @Ali and @nobody",
	})
	require.NoError(t, err)

	assert.Empty(t, f.mentionsFor(t, created.ID))

	var count int64
	require.NoError(t, f.db.Model(&entity.Notification{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPostUnknownAuthorWritesNothing(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Post(context.Background(), f.review.ID, uuid.New(), commentDto.CreateCommentRequest{
		Body: "ghost comment @Alice",
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&entity.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPostRejectsEmptyBody(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Post(context.Background(), f.review.ID, f.author.ID, commentDto.CreateCommentRequest{
		Body: "  ",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestListReturnsOldestFirstWithMentions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Post(ctx, f.review.ID, f.author.ID, commentDto.CreateCommentRequest{Body: "first"})
	require.NoError(t, err)
	second, err := f.svc.Post(ctx, f.review.ID, f.alice.ID, commentDto.CreateCommentRequest{Body: "second, pinging @Author"})
	require.NoError(t, err)

	comments, err := f.svc.List(ctx, f.review.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, first.ID, comments[0].ID)
	assert.Equal(t, second.ID, comments[1].ID)
	assert.Equal(t, "Author", comments[0].AuthorName)
	require.Len(t, comments[1].Mentioned, 1)
	assert.Equal(t, f.author.ID, comments[1].Mentioned[0])
}
