package book

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sourcingsprints.com/bookclub/internal/entity"
	bookDto "sourcingsprints.com/bookclub/internal/modules/book/dto"
	bookRepo "sourcingsprints.com/bookclub/internal/modules/book/repository"
	"sourcingsprints.com/bookclub/internal/testutil"
	"sourcingsprints.com/bookclub/pkg/apperror"
)

func newService(t *testing.T) (BookService, bookRepo.BookRepository) {
	t.Helper()
	db := testutil.NewDB(t)
	repo := bookRepo.NewBookRepository(db)
	return NewBookService(repo, nil, nil, "covers"), repo
}

func TestCreateDefaultsToRead(t *testing.T) {
	svc, _ := newService(t)

	created, err := svc.Create(context.Background(), bookDto.CreateBookRequest{
		Title:  "The Goal",
		Author: "Eliyahu Goldratt",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusRead, created.Status)
	assert.NotEqual(t, uuid.Nil, created.ID)
}

func TestCreateRejectsBlankFields(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.Create(context.Background(), bookDto.CreateBookRequest{
		Title:  "   ",
		Author: "Someone",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateAsCurrentDemotesExisting(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "First Pick", Author: "A", Status: "Current",
	})
	require.NoError(t, err)

	second, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Second Pick", Author: "B", Status: "Current",
	})
	require.NoError(t, err)

	demoted, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusRead, demoted.Status)

	promoted, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusCurrent, promoted.Status)

	count, err := repo.CountByStatus(ctx, entity.BookStatusCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSetCurrentSwapsInOneStep(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	old, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Old Current", Author: "A", Status: "Current",
	})
	require.NoError(t, err)
	next, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Next Current", Author: "B",
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetCurrent(ctx, next.ID))

	oldAfter, err := repo.FindByID(ctx, old.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusRead, oldAfter.Status)

	nextAfter, err := repo.FindByID(ctx, next.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusCurrent, nextAfter.Status)

	count, err := repo.CountByStatus(ctx, entity.BookStatusCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSetCurrentUnknownBookLeavesShelfAlone(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	current, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Still Current", Author: "A", Status: "Current",
	})
	require.NoError(t, err)

	err = svc.SetCurrent(ctx, uuid.New())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	after, err := repo.FindByID(ctx, current.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusCurrent, after.Status)
}

func TestShelfSplitsCurrentAndHidesArchived(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	current, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Now Reading", Author: "A", Status: "Current",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Finished One", Author: "B",
	})
	require.NoError(t, err)
	archived, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Shelved Away", Author: "C",
	})
	require.NoError(t, err)
	require.NoError(t, svc.Archive(ctx, archived.ID))

	shelf, err := svc.Shelf(ctx)
	require.NoError(t, err)
	require.NotNil(t, shelf.Current)
	assert.Equal(t, current.ID, shelf.Current.ID)
	require.Len(t, shelf.Books, 1)
	assert.Equal(t, "Finished One", shelf.Books[0].Title)
}

func TestUnarchiveReturnsBookToShelf(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	b, err := svc.Create(ctx, bookDto.CreateBookRequest{
		Title: "Comeback", Author: "A",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Archive(ctx, b.ID))
	require.NoError(t, svc.Unarchive(ctx, b.ID))

	after, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookStatusRead, after.Status)
}
