package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"auction-market/internal/models"
	"auction-market/internal/repository"

	"gorm.io/gorm"
)

// Kenyan mobile numbers: +254 followed by nine digits
var phoneNumberPattern = regexp.MustCompile(`^\+254\d{9}$`)

type UserService struct {
	repo *repository.Repository
}

func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// CreateOrUpdateUser upserts a user keyed by phone number. An existing live
// user's name is refreshed in place instead of creating a duplicate.
func (s *UserService) CreateOrUpdateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if !phoneNumberPattern.MatchString(req.PhoneNumber) {
		return nil, errors.New("phone number is not valid")
	}

	existing, err := s.repo.GetUserByPhone(ctx, req.PhoneNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if existing != nil {
		existing.Name = req.Name
		if err := s.repo.UpdateUser(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
		return existing, nil
	}

	user := &models.User{
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByPhone retrieves a live user by phone number
func (s *UserService) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	user, err := s.repo.GetUserByPhone(ctx, phoneNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUsers retrieves all live users
func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.repo.GetUsers(ctx)
}

// DeleteUser soft-deletes a user and their bids
func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	return s.repo.DeleteUser(ctx, userID)
}
