package search

import (
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"sourcingsprints.com/bookclub/internal/entity"
)

const booksIndex = "books"

// BookDocument is the shape indexed for title/author search.
type BookDocument struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Status string `json:"status"`
}

// SearchService mirrors the shelf into Meilisearch. Every caller must treat
// a nil SearchService as "search disabled".
type SearchService interface {
	IndexBook(book *entity.Book) error
	DeleteBook(id string) error
	SearchBooks(query string) ([]BookDocument, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) SearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	filterableAttrs := []string{"status"}
	filterableInterface := make([]any, len(filterableAttrs))
	for i, v := range filterableAttrs {
		filterableInterface[i] = v
	}
	if _, err := s.client.Index(booksIndex).UpdateFilterableAttributes(&filterableInterface); err != nil {
		log.Printf("Failed to update books filterable attributes: %v", err)
	}
}

func (s *meiliSearchService) IndexBook(book *entity.Book) error {
	doc := BookDocument{
		ID:     book.ID.String(),
		Title:  book.Title,
		Author: book.Author,
		Status: string(book.Status),
	}

	if _, err := s.client.Index(booksIndex).AddDocuments([]BookDocument{doc}, nil); err != nil {
		return fmt.Errorf("failed to index book: %w", err)
	}
	return nil
}

func (s *meiliSearchService) DeleteBook(id string) error {
	if _, err := s.client.Index(booksIndex).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to delete book from index: %w", err)
	}
	return nil
}

func (s *meiliSearchService) SearchBooks(query string) ([]BookDocument, error) {
	res, err := s.client.Index(booksIndex).Search(query, &meilisearch.SearchRequest{Limit: 20})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	docs := make([]BookDocument, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc := BookDocument{}
		if err := hit.DecodeInto(&doc); err != nil {
			continue
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
