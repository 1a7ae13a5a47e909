package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikkim/bookstore-backend/internal/app/model"
	"github.com/ikkim/bookstore-backend/internal/app/repository"
	"github.com/ikkim/bookstore-backend/pkg/logger"
	"github.com/ikkim/bookstore-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("username already exists")
	ErrInvalidUserInput  = errors.New("invalid user input")
	ErrNoUserChanges     = errors.New("no updatable fields provided")
)

type CreateUserInput struct {
	Username    string
	Password    string
	Name        string
	Email       string
	HomeAddress string
}

// UpdateUserInput holds optional profile changes. Email cannot be changed.
type UpdateUserInput struct {
	Password    *string
	Name        *string
	HomeAddress *string
}

type UserService interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, username string) (*model.User, error)
	UpdateUser(ctx context.Context, username string, input UpdateUserInput) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	logger.Info("Creating user", map[string]interface{}{
		"username": username,
	})

	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidUserInput)
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		HomeAddress:  strings.TrimSpace(input.HomeAddress),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("Cannot create user: username taken", map[string]interface{}{
				"username": username,
			})
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	logger.Info("User created successfully", map[string]interface{}{
		"user_id":  user.ID,
		"username": username,
	})
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"username": username,
		})
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, username string, input UpdateUserInput) error {
	logger.Info("Updating user", map[string]interface{}{
		"username": username,
	})

	fields := make(map[string]interface{})
	if input.Password != nil {
		if *input.Password == "" {
			return fmt.Errorf("%w: password cannot be empty", ErrInvalidUserInput)
		}
		hash, err := util.HashPassword(*input.Password)
		if err != nil {
			return err
		}
		fields["password_hash"] = hash
	}
	if input.Name != nil {
		fields["name"] = strings.TrimSpace(*input.Name)
	}
	if input.HomeAddress != nil {
		fields["home_address"] = strings.TrimSpace(*input.HomeAddress)
	}
	if len(fields) == 0 {
		return ErrNoUserChanges
	}

	matched, err := s.userRepo.Update(ctx, username, fields)
	if err != nil {
		return err
	}
	if matched == 0 {
		logger.Warn("Cannot update user: user not found", map[string]interface{}{
			"username": username,
		})
		return ErrUserNotFound
	}

	logger.Info("User updated successfully", map[string]interface{}{
		"username": username,
		"fields":   len(fields),
	})
	return nil
}
