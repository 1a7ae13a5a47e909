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
)

type AuthorController struct {
	authorService service.AuthorService
}

func NewAuthorController(authorService service.AuthorService) *AuthorController {
	return &AuthorController{
		authorService: authorService,
	}
}

type CreateAuthorRequest struct {
	AuthorID  uint64 `json:"author_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Biography string `json:"biography"`
	Publisher string `json:"publisher" binding:"max=255"`
}

// CreateAuthor registers an author
// POST /authors/
func (ctrl *AuthorController) CreateAuthor(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create author request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondWithBindingError(c, err, "Invalid author")
		return
	}

	author := &model.Author{
		ID:        req.AuthorID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Biography: req.Biography,
		Publisher: req.Publisher,
	}
	if err := ctrl.authorService.CreateAuthor(c.Request.Context(), author); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAuthor):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, err.Error())
		case errors.Is(err, service.ErrAuthorAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthorAlreadyExists, "An author with this author_id already exists")
		default:
			log.Error("Failed to create author", err, map[string]interface{}{
				"author_id": req.AuthorID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create author")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Author added successfully",
		"author":  author,
	})
}

// GetAuthorBooks lists the books written by an author
// GET /authors/:author_id/books
func (ctrl *AuthorController) GetAuthorBooks(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	raw := c.Param("author_id")
	authorID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid author ID")
		return
	}

	books, err := ctrl.authorService.GetBooksByAuthor(c.Request.Context(), authorID)
	if err != nil {
		if errors.Is(err, service.ErrAuthorNotFound) {
			apperrors.NotFound(c, apperrors.AuthorNotFound, "Author could not be found")
			return
		}
		log.Error("Failed to fetch author books", err, map[string]interface{}{
			"author_id": authorID,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "get author books")
		return
	}

	respondBooks(c, books)
}
