package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrBookNotFound      = errors.New("book not found")
	ErrBookAlreadyExists = errors.New("book already exists")
	ErrInvalidBook       = errors.New("invalid book")
	ErrNoBooksFound      = errors.New("no books found")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrInvalidDiscount   = errors.New("discount percentage must be between 0 and 100")
)

const (
	TopSellersLimit = 10
	MaxBookRating   = 5
)

type BookService interface {
	CreateBook(ctx context.Context, book *model.Book) error
	GetBook(ctx context.Context, isbn uint64) (*model.Book, error)
	GetBooksByGenre(ctx context.Context, genre string) ([]model.Book, error)
	GetTopSellers(ctx context.Context) ([]model.Book, error)
	GetBooksByMinRating(ctx context.Context, rating float64) ([]model.Book, error)
	ApplyDiscount(ctx context.Context, publisher string, percent float64) (int64, error)
}

type bookService struct {
	bookRepo repository.BookRepository
}

func NewBookService(bookRepo repository.BookRepository) BookService {
	return &bookService{bookRepo: bookRepo}
}

func (s *bookService) CreateBook(ctx context.Context, book *model.Book) error {
	logger.Info("Creating book", map[string]interface{}{
		"isbn": book.ISBN,
		"name": book.Name,
	})

	if err := validateBook(book); err != nil {
		logger.Warn("Cannot create book: invalid input", map[string]interface{}{
			"isbn":  book.ISBN,
			"error": err.Error(),
		})
		return err
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Cannot create book: ISBN taken", map[string]interface{}{
				"isbn": book.ISBN,
			})
			return ErrBookAlreadyExists
		}
		return err
	}

	logger.Info("Book created successfully", map[string]interface{}{
		"isbn": book.ISBN,
	})
	return nil
}

func (s *bookService) GetBook(ctx context.Context, isbn uint64) (*model.Book, error) {
	book, err := s.bookRepo.FindByISBN(ctx, isbn)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Book not found", map[string]interface{}{
				"isbn": isbn,
			})
			return nil, ErrBookNotFound
		}
		logger.Error("Failed to fetch book", err, map[string]interface{}{
			"isbn": isbn,
		})
		return nil, err
	}
	return book, nil
}

// GetBooksByGenre returns ErrNoBooksFound rather than an empty list.
func (s *bookService) GetBooksByGenre(ctx context.Context, genre string) ([]model.Book, error) {
	books, err := s.bookRepo.FindWithFilter(ctx, repository.BookFilter{Genre: genre})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w for genre %q", ErrNoBooksFound, genre)
	}

	logger.Info("Books fetched by genre", map[string]interface{}{
		"genre": genre,
		"count": len(books),
	})
	return books, nil
}

// GetTopSellers returns up to ten books by copies sold, highest first.
// An empty catalog yields an empty list.
func (s *bookService) GetTopSellers(ctx context.Context) ([]model.Book, error) {
	return s.bookRepo.FindWithFilter(ctx, repository.BookFilter{
		SortBy: repository.BookSortCopiesSold,
		Limit:  TopSellersLimit,
	})
}

// GetBooksByMinRating returns books rated at least rating.
func (s *bookService) GetBooksByMinRating(ctx context.Context, rating float64) ([]model.Book, error) {
	if math.IsNaN(rating) || rating < 0 || rating > MaxBookRating {
		return nil, ErrInvalidRating
	}

	books, err := s.bookRepo.FindWithFilter(ctx, repository.BookFilter{
		MinRating: &rating,
		SortBy:    repository.BookSortRating,
	})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("%w with rating %g or higher", ErrNoBooksFound, rating)
	}
	return books, nil
}

// ApplyDiscount lowers the price of every book from publisher by percent
// and reports how many books were repriced.
func (s *bookService) ApplyDiscount(ctx context.Context, publisher string, percent float64) (int64, error) {
	logger.Info("Applying discount", map[string]interface{}{
		"publisher": publisher,
		"percent":   percent,
	})

	if math.IsNaN(percent) || percent < 0 || percent > 100 {
		return 0, ErrInvalidDiscount
	}

	matched, err := s.bookRepo.ApplyDiscount(ctx, publisher, 1-percent/100)
	if err != nil {
		return 0, err
	}
	if matched == 0 {
		logger.Warn("Cannot apply discount: no books for publisher", map[string]interface{}{
			"publisher": publisher,
		})
		return 0, fmt.Errorf("%w for publisher %q", ErrNoBooksFound, publisher)
	}

	logger.Info("Discount applied successfully", map[string]interface{}{
		"publisher": publisher,
		"books":     matched,
	})
	return matched, nil
}

func validateBook(book *model.Book) error {
	book.Name = strings.TrimSpace(book.Name)
	book.Author = strings.TrimSpace(book.Author)
	book.Genre = strings.TrimSpace(book.Genre)
	book.Publisher = strings.TrimSpace(book.Publisher)

	switch {
	case book.ISBN == 0:
		return fmt.Errorf("%w: book_id is required", ErrInvalidBook)
	case book.Name == "":
		return fmt.Errorf("%w: book_name is required", ErrInvalidBook)
	case book.Price < 0 || math.IsNaN(book.Price) || math.IsInf(book.Price, 0):
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidBook)
	case book.CopiesSold < 0:
		return fmt.Errorf("%w: copies_sold must not be negative", ErrInvalidBook)
	case math.IsNaN(book.Rating) || book.Rating < 0 || book.Rating > MaxBookRating:
		return fmt.Errorf("%w: %v", ErrInvalidBook, ErrInvalidRating)
	}
	return nil
}
