package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/service"
	apperrors "github.com/ikkim/bookstore-backend/internal/errors"
	"github.com/ikkim/bookstore-backend/internal/middleware"
	"github.com/ikkim/bookstore-backend/pkg/logger"
)

type BookController struct {
	bookService service.BookService
}

func NewBookController(bookService service.BookService) *BookController {
	return &BookController{
		bookService: bookService,
	}
}

type CreateBookRequest struct {
	BookID          uint64  `json:"book_id" binding:"required"`
	BookName        string  `json:"book_name" binding:"required,max=255"`
	BookDescription string  `json:"book_description"`
	Price           float64 `json:"price" binding:"gte=0"`
	Author          string  `json:"author" binding:"max=255"`
	Genre           string  `json:"genre" binding:"max=100"`
	Publisher       string  `json:"publisher" binding:"max=255"`
	YearPublished   int     `json:"year_published"`
	CopiesSold      int     `json:"copies_sold" binding:"gte=0"`
	Rating          float64 `json:"rating" binding:"gte=0,lte=5"`
}

// respondBookError maps book service errors to HTTP responses.
// notFound is the message used when a listing matched nothing.
func respondBookError(c *gin.Context, log *logger.Logger, err error, notFound string, fields map[string]interface{}) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		apperrors.NotFound(c, apperrors.BookNotFound, "Book could not be found")
	case errors.Is(err, service.ErrNoBooksFound):
		apperrors.NotFound(c, apperrors.BookNotFound, notFound)
	case errors.Is(err, service.ErrBookAlreadyExists):
		apperrors.Conflict(c, apperrors.BookAlreadyExists, "A book with this book_id already exists")
	case errors.Is(err, service.ErrInvalidBook):
		apperrors.BadRequest(c, apperrors.BookInvalidInput, err.Error())
	case errors.Is(err, service.ErrInvalidRating):
		apperrors.BadRequest(c, apperrors.BookInvalidRating, "Rating must be between 0 and 5")
	case errors.Is(err, service.ErrInvalidDiscount):
		apperrors.BadRequest(c, apperrors.BookInvalidDiscount, "Discount percentage must be between 0 and 100")
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error("Book store unavailable", err, fields)
		apperrors.ServiceUnavailable(c, "")
	default:
		log.Error("Book operation failed", err, fields)
		apperrors.InternalError(c, "")
	}
}

// CreateBook adds a book to the catalog
// POST /books/
func (ctrl *BookController) CreateBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create book request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "Invalid book")
		return
	}

	book := &model.Book{
		ISBN:          req.BookID,
		Name:          req.BookName,
		Description:   req.BookDescription,
		Price:         req.Price,
		Author:        req.Author,
		Genre:         req.Genre,
		Publisher:     req.Publisher,
		YearPublished: req.YearPublished,
		CopiesSold:    req.CopiesSold,
		Rating:        req.Rating,
	}
	if err := ctrl.bookService.CreateBook(c.Request.Context(), book); err != nil {
		respondBookError(c, log, err, "", map[string]interface{}{
			"isbn": req.BookID,
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book created successfully",
		"book":    book,
	})
}

// GetBook returns one book by ISBN
// GET /books/:book_id
func (ctrl *BookController) GetBook(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	raw := c.Param("book_id")
	isbn, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		log.Warn("Invalid book ID format", map[string]interface{}{
			"book_id": raw,
			"error":   err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid book ID")
		return
	}

	book, err := ctrl.bookService.GetBook(c.Request.Context(), isbn)
	if err != nil {
		respondBookError(c, log, err, "", map[string]interface{}{
			"isbn": isbn,
		})
		return
	}

	c.JSON(http.StatusOK, book)
}

// GetBooksByGenre lists the books of one genre
// GET /books/genre/:genre
func (ctrl *BookController) GetBooksByGenre(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	genre := c.Param("genre")

	books, err := ctrl.bookService.GetBooksByGenre(c.Request.Context(), genre)
	if err != nil {
		respondBookError(c, log, err, "No books found for this genre", map[string]interface{}{
			"genre": genre,
		})
		return
	}

	respondBooks(c, books)
}

// GetTopSellers lists the ten best-selling books
// GET /books/top_sellers
func (ctrl *BookController) GetTopSellers(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	books, err := ctrl.bookService.GetTopSellers(c.Request.Context())
	if err != nil {
		respondBookError(c, log, err, "", nil)
		return
	}

	respondBooks(c, books)
}

// GetBooksByRating lists books rated at or above the given rating
// GET /books/rating/:rating
func (ctrl *BookController) GetBooksByRating(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	raw := c.Param("rating")
	rating, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.BookInvalidRating, "Rating must be a number")
		return
	}

	books, err := ctrl.bookService.GetBooksByMinRating(c.Request.Context(), rating)
	if err != nil {
		respondBookError(c, log, err, "No books found with this rating or higher", map[string]interface{}{
			"rating": rating,
		})
		return
	}

	respondBooks(c, books)
}

// ApplyDiscount reprices every book of a publisher
// PATCH /books/discount/:publisher?discount_percent=N
func (ctrl *BookController) ApplyDiscount(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	publisher := c.Param("publisher")

	raw, ok := c.GetQuery("discount_percent")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "discount_percent is required")
		return
	}
	percent, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.BookInvalidDiscount, "discount_percent must be a number")
		return
	}

	updated, err := ctrl.bookService.ApplyDiscount(c.Request.Context(), publisher, percent)
	if err != nil {
		respondBookError(c, log, err, "No books found for this publisher", map[string]interface{}{
			"publisher": publisher,
			"percent":   percent,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Discount of " + strconv.FormatFloat(percent, 'f', -1, 64) + "% applied to books from " + publisher,
		"updated": updated,
	})
}

func respondBooks(c *gin.Context, books []model.Book) {
	c.JSON(http.StatusOK, gin.H{
		"books": books,
		"count": len(books),
	})
}
