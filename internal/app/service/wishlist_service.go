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
	ErrWishlistNotFound      = errors.New("wishlist not found")
	ErrWishlistAlreadyExists = errors.New("wishlist already exists for this user")
	ErrBookAlreadyInWishlist = errors.New("book already in wishlist")
	ErrInvalidWishlist       = errors.New("invalid wishlist")
)

type WishlistService interface {
	CreateWishlist(ctx context.Context, userID, name string, books []string) (*model.Wishlist, error)
	GetWishlist(ctx context.Context, userID string) (*model.Wishlist, error)
	AddBook(ctx context.Context, userID, title string) error
	DeleteWishlist(ctx context.Context, userID string) error
}

type wishlistService struct {
	wishlistRepo repository.WishlistRepository
}

func NewWishlistService(wishlistRepo repository.WishlistRepository) WishlistService {
	return &wishlistService{wishlistRepo: wishlistRepo}
}

func (s *wishlistService) CreateWishlist(ctx context.Context, userID, name string, books []string) (*model.Wishlist, error) {
	userID = strings.TrimSpace(userID)
	logger.Info("Creating wishlist", map[string]interface{}{
		"user_id": userID,
		"books":   len(books),
	})

	if userID == "" || strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: user_id and name are required", ErrInvalidWishlist)
	}

	wishlist := &model.Wishlist{
		UserID: userID,
		Name:   strings.TrimSpace(name),
	}
	seen := make(map[string]struct{}, len(books))
	for _, title := range books {
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		wishlist.Books = append(wishlist.Books, model.WishlistBook{BookTitle: title})
	}

	if err := s.wishlistRepo.Create(ctx, wishlist); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Cannot create wishlist: already exists", map[string]interface{}{
				"user_id": userID,
			})
			return nil, ErrWishlistAlreadyExists
		}
		return nil, err
	}

	logger.Info("Wishlist created successfully", map[string]interface{}{
		"wishlist_id": wishlist.ID,
		"user_id":     userID,
	})
	return wishlist, nil
}

func (s *wishlistService) GetWishlist(ctx context.Context, userID string) (*model.Wishlist, error) {
	wishlist, err := s.wishlistRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWishlistNotFound
		}
		logger.Error("Failed to fetch wishlist", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return wishlist, nil
}

// AddBook adds a title with set semantics.
func (s *wishlistService) AddBook(ctx context.Context, userID, title string) error {
	title = strings.TrimSpace(title)
	logger.Info("Adding book to wishlist", map[string]interface{}{
		"user_id":    userID,
		"book_title": title,
	})

	if title == "" {
		return fmt.Errorf("%w: book_title is required", ErrInvalidWishlist)
	}

	wishlist, err := s.GetWishlist(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.wishlistRepo.AddBook(ctx, wishlist.ID, title); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrBookAlreadyInWishlist
		}
		return err
	}

	logger.Info("Book added to wishlist", map[string]interface{}{
		"user_id":    userID,
		"book_title": title,
	})
	return nil
}

func (s *wishlistService) DeleteWishlist(ctx context.Context, userID string) error {
	logger.Info("Deleting wishlist", map[string]interface{}{
		"user_id": userID,
	})

	deleted, err := s.wishlistRepo.DeleteByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrWishlistNotFound
	}

	logger.Info("Wishlist deleted successfully", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}
