package repository

import (
	"context"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/db"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"gorm.io/gorm"
)

type BookSort string

const (
	BookSortISBN       BookSort = "isbn"
	BookSortCopiesSold BookSort = "copies_sold"
	BookSortRating     BookSort = "rating"
)

type BookFilter struct {
	Genre         string
	Author        string
	Publisher     string
	MinRating     *float64
	SortBy        BookSort
	SortAscending bool
	Limit         int
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByISBN(ctx context.Context, isbn uint64) (*model.Book, error)
	FindWithFilter(ctx context.Context, filter BookFilter) ([]model.Book, error)
	ApplyDiscount(ctx context.Context, publisher string, factor float64) (int64, error)
}

type bookRepository struct {
	db *db.Database
}

func NewBookRepository(database *db.Database) BookRepository {
	return &bookRepository{db: database}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	logger.Debug("Creating book in database", map[string]interface{}{
		"isbn":   book.ISBN,
		"name":   book.Name,
		"author": book.Author,
	})

	err := r.db.Run(ctx, "book.create", func(tx *gorm.DB) error {
		return tx.Create(book).Error
	})
	if err != nil {
		logger.Error("Failed to create book in database", err, map[string]interface{}{
			"isbn": book.ISBN,
			"name": book.Name,
		})
		return err
	}

	logger.Debug("Book created in database", map[string]interface{}{
		"isbn": book.ISBN,
	})
	return nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn uint64) (*model.Book, error) {
	logger.Debug("Finding book by ISBN in database", map[string]interface{}{
		"isbn": isbn,
	})

	var book model.Book
	err := r.db.Run(ctx, "book.find", func(tx *gorm.DB) error {
		return tx.Where("isbn = ?", isbn).First(&book).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindWithFilter lists books matching every set field of filter. Results
// are ordered by ISBN unless SortBy says otherwise; ties always fall back
// to ISBN so the order is stable.
func (r *bookRepository) FindWithFilter(ctx context.Context, filter BookFilter) ([]model.Book, error) {
	logger.Debug("Finding books with filter", map[string]interface{}{
		"genre":      filter.Genre,
		"author":     filter.Author,
		"publisher":  filter.Publisher,
		"min_rating": filter.MinRating,
		"sort_by":    filter.SortBy,
		"ascending":  filter.SortAscending,
		"limit":      filter.Limit,
	})

	books := []model.Book{}
	err := r.db.Run(ctx, "book.find_with_filter", func(tx *gorm.DB) error {
		query := tx.Model(&model.Book{})

		if filter.Genre != "" {
			query = query.Where("genre = ?", filter.Genre)
		}
		if filter.Author != "" {
			query = query.Where("author = ?", filter.Author)
		}
		if filter.Publisher != "" {
			query = query.Where("publisher = ?", filter.Publisher)
		}
		if filter.MinRating != nil {
			query = query.Where("rating >= ?", *filter.MinRating)
		}

		direction := "DESC"
		if filter.SortAscending {
			direction = "ASC"
		}
		switch filter.SortBy {
		case BookSortCopiesSold:
			query = query.Order("copies_sold " + direction)
		case BookSortRating:
			query = query.Order("rating " + direction)
		}
		query = query.Order("isbn ASC")

		if filter.Limit > 0 {
			query = query.Limit(filter.Limit)
		}
		return query.Find(&books).Error
	})
	if err != nil {
		logger.Error("Failed to find books with filter", err, map[string]interface{}{
			"genre":  filter.Genre,
			"author": filter.Author,
		})
		return nil, err
	}

	logger.Debug("Books found with filter", map[string]interface{}{
		"count": len(books),
	})
	return books, nil
}

// ApplyDiscount multiplies the price of every book from publisher by
// factor in one statement and reports how many books matched.
func (r *bookRepository) ApplyDiscount(ctx context.Context, publisher string, factor float64) (int64, error) {
	logger.Debug("Applying discount in database", map[string]interface{}{
		"publisher": publisher,
		"factor":    factor,
	})

	var affected int64
	err := r.db.Run(ctx, "book.apply_discount", func(tx *gorm.DB) error {
		result := tx.Model(&model.Book{}).
			Where("publisher = ?", publisher).
			Update("price", gorm.Expr("price * ?", factor))
		affected = result.RowsAffected
		return result.Error
	})
	if err != nil {
		logger.Error("Failed to apply discount in database", err, map[string]interface{}{
			"publisher": publisher,
		})
		return 0, err
	}
	return affected, nil
}
