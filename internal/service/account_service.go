package service

import (
	"context"
	"errors"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repository"
	"recipebox/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentialsMessage = "Invalid username or password"

type AccountService struct {
	userRepo repository.UserRepository
	hashCost int
}

type SignupInput struct {
	Username string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

func NewAccountService(userRepo repository.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo, hashCost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost, mainly so tests stay fast.
func (s *AccountService) WithHashCost(cost int) *AccountService {
	s.hashCost = cost
	return s
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:            username,
		Password:            string(hashed),
		DietaryRestrictions: models.TagList{},
		Allergies:           models.TagList{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AccountService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, models.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

func (s *AccountService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.userRepo.Exists(ctx, strings.TrimSpace(username))
}

func (s *AccountService) GetUser(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

func (s *AccountService) GetDietary(ctx context.Context, username string) (models.TagList, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.DietaryRestrictions.Normalize(), nil
}

func (s *AccountService) UpdateDietary(ctx context.Context, username string, tags []string) (models.TagList, error) {
	normalized := models.TagList(tags).Normalize()
	if err := s.userRepo.UpdateDietary(ctx, username, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

func (s *AccountService) GetAllergies(ctx context.Context, username string) (models.TagList, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return user.Allergies.Normalize(), nil
}

func (s *AccountService) UpdateAllergies(ctx context.Context, username string, tags []string) (models.TagList, error) {
	normalized := models.TagList(tags).Normalize()
	if err := s.userRepo.UpdateAllergies(ctx, username, normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}
