package book

import (
	"context"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"sourcingsprints.com/bookclub/internal/entity"
	bookDto "sourcingsprints.com/bookclub/internal/modules/book/dto"
	bookRepo "sourcingsprints.com/bookclub/internal/modules/book/repository"
	search "sourcingsprints.com/bookclub/internal/modules/search/service"
	"sourcingsprints.com/bookclub/pkg/apperror"
	"sourcingsprints.com/bookclub/pkg/storage"
)

type BookService interface {
	Create(ctx context.Context, req bookDto.CreateBookRequest) (*entity.Book, error)
	// CreateFromProposal is the promotion hand-off from the voting engine.
	CreateFromProposal(ctx context.Context, proposal *entity.Proposal, status entity.BookStatus) (*entity.Book, error)
	SetCurrent(ctx context.Context, id uuid.UUID) error
	MarkRead(ctx context.Context, id uuid.UUID) error
	Archive(ctx context.Context, id uuid.UUID) error
	Unarchive(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*entity.Book, error)
	Shelf(ctx context.Context) (*bookDto.ShelfResponse, error)
	ListAll(ctx context.Context) ([]entity.Book, error)
	UploadCover(ctx context.Context, id uuid.UUID, file io.Reader, fileName string) (*entity.Book, error)
	Search(ctx context.Context, query string) ([]search.BookDocument, error)
}

type bookService struct {
	repo         bookRepo.BookRepository
	imageStorage storage.ImageStorage
	searchSvc    search.SearchService
	uploadFolder string
}

func NewBookService(repo bookRepo.BookRepository, imageStorage storage.ImageStorage, searchSvc search.SearchService, uploadFolder string) BookService {
	return &bookService{
		repo:         repo,
		imageStorage: imageStorage,
		searchSvc:    searchSvc,
		uploadFolder: uploadFolder,
	}
}

func (s *bookService) Create(ctx context.Context, req bookDto.CreateBookRequest) (*entity.Book, error) {
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if title == "" || author == "" {
		return nil, apperror.ErrInvalidInput
	}

	status := entity.BookStatus(req.Status)
	if status == "" {
		status = entity.BookStatusRead
	}
	switch status {
	case entity.BookStatusCurrent, entity.BookStatusRead, entity.BookStatusArchived:
	default:
		return nil, apperror.ErrInvalidInput
	}

	book := &entity.Book{
		Title:    title,
		Author:   author,
		CoverURL: req.CoverURL,
		Status:   status,
	}

	var err error
	if status == entity.BookStatusCurrent {
		err = s.repo.CreateAsCurrent(ctx, book)
	} else {
		err = s.repo.Create(ctx, book)
	}
	if err != nil {
		return nil, err
	}

	s.index(book)
	return book, nil
}

func (s *bookService) CreateFromProposal(ctx context.Context, proposal *entity.Proposal, status entity.BookStatus) (*entity.Book, error) {
	return s.Create(ctx, bookDto.CreateBookRequest{
		Title:    proposal.Title,
		Author:   proposal.Author,
		CoverURL: proposal.CoverURL,
		Status:   string(status),
	})
}

func (s *bookService) SetCurrent(ctx context.Context, id uuid.UUID) error {
	return s.repo.SetCurrent(ctx, id)
}

func (s *bookService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, entity.BookStatusRead)
}

func (s *bookService) Archive(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, entity.BookStatusArchived)
}

func (s *bookService) Unarchive(ctx context.Context, id uuid.UUID) error {
	return s.repo.UpdateStatus(ctx, id, entity.BookStatusRead)
}

func (s *bookService) Get(ctx context.Context, id uuid.UUID) (*entity.Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Shelf returns Current + Read books, the current one split out. Archived
// books never show here.
func (s *bookService) Shelf(ctx context.Context) (*bookDto.ShelfResponse, error) {
	books, err := s.repo.FindByStatuses(ctx, []entity.BookStatus{entity.BookStatusCurrent, entity.BookStatusRead})
	if err != nil {
		return nil, err
	}

	resp := &bookDto.ShelfResponse{Books: make([]entity.Book, 0, len(books))}
	for i := range books {
		if books[i].Status == entity.BookStatusCurrent {
			resp.Current = &books[i]
			continue
		}
		resp.Books = append(resp.Books, books[i])
	}
	return resp, nil
}

func (s *bookService) ListAll(ctx context.Context) ([]entity.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *bookService) UploadCover(ctx context.Context, id uuid.UUID, file io.Reader, fileName string) (*entity.Book, error) {
	if s.imageStorage == nil {
		return nil, apperror.ErrInternal
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	url, err := s.imageStorage.UploadImage(ctx, file, s.uploadFolder, fileName)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateCoverURL(ctx, id, url); err != nil {
		return nil, err
	}

	book.CoverURL = &url
	return book, nil
}

func (s *bookService) Search(ctx context.Context, query string) ([]search.BookDocument, error) {
	if s.searchSvc == nil {
		return nil, apperror.ErrNotFound
	}
	return s.searchSvc.SearchBooks(query)
}

// index mirrors the book into Meilisearch when search is enabled. Indexing
// failures are logged, never surfaced; the store stays the source of truth.
func (s *bookService) index(book *entity.Book) {
	if s.searchSvc == nil {
		return
	}
	if err := s.searchSvc.IndexBook(book); err != nil {
		log.Printf("Failed to index book %s: %v", book.ID, err)
	}
}
