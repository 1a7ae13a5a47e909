package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrAuthorNotFound      = errors.New("author not found")
	ErrAuthorAlreadyExists = errors.New("author already exists")
	ErrInvalidAuthor       = errors.New("invalid author")
)

type AuthorService interface {
	CreateAuthor(ctx context.Context, author *model.Author) error
	GetBooksByAuthor(ctx context.Context, authorID uint64) ([]model.Book, error)
}

type authorService struct {
	authorRepo repository.AuthorRepository
	bookRepo   repository.BookRepository
}

func NewAuthorService(authorRepo repository.AuthorRepository, bookRepo repository.BookRepository) AuthorService {
	return &authorService{
		authorRepo: authorRepo,
		bookRepo:   bookRepo,
	}
}

func (s *authorService) CreateAuthor(ctx context.Context, author *model.Author) error {
	author.FirstName = strings.TrimSpace(author.FirstName)
	author.LastName = strings.TrimSpace(author.LastName)
	author.Publisher = strings.TrimSpace(author.Publisher)

	logger.Info("Creating author", map[string]interface{}{
		"author_id": author.ID,
	})

	if author.ID == 0 || author.FirstName == "" || author.LastName == "" {
		return fmt.Errorf("%w: author_id, first_name and last_name are required", ErrInvalidAuthor)
	}

	if err := s.authorRepo.Create(ctx, author); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAuthorAlreadyExists
		}
		return err
	}

	logger.Info("Author created successfully", map[string]interface{}{
		"author_id": author.ID,
	})
	return nil
}

// GetBooksByAuthor lists the books attributed to the author's full name.
// An author without books yields an empty list.
func (s *authorService) GetBooksByAuthor(ctx context.Context, authorID uint64) ([]model.Book, error) {
	author, err := s.authorRepo.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Author not found", map[string]interface{}{
				"author_id": authorID,
			})
			return nil, ErrAuthorNotFound
		}
		return nil, err
	}

	return s.bookRepo.FindWithFilter(ctx, repository.BookFilter{Author: author.FullName()})
}
