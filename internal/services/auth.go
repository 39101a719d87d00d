package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"smartpulse-backend/internal/middleware"
	"smartpulse-backend/internal/models"
	"smartpulse-backend/internal/repository"
)

type AuthService struct {
	userRepo    *repository.UserRepo
	companyRepo *repository.CompanyRepo
	redis       *redis.Client
	jwt         *middleware.JWTAuth
}

func NewAuthService(userRepo *repository.UserRepo, companyRepo *repository.CompanyRepo, redisClient *redis.Client, jwt *middleware.JWTAuth) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		redis:       redisClient,
		jwt:         jwt,
	}
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Register creates the user and bootstraps the company: an unknown
// company name is created on the spot and its first user becomes the
// company ADMIN; later signups join as EMPLOYEE.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	fieldErrors := make(map[string]string)

	if len(req.Name) < 2 {
		fieldErrors["name"] = "Name is required"
	}
	if !emailRegex.MatchString(req.Email) {
		fieldErrors["email"] = "Invalid email format"
	}
	if err := validatePassword(req.Password); err != nil {
		fieldErrors["password"] = err.Error()
	}
	if len(req.Company) < 2 {
		fieldErrors["company"] = "Company name is required"
	}

	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	// Check uniqueness
	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, &ConflictError{Message: "User already exists"}
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	role := models.RoleEmployee
	company, err := s.companyRepo.GetByName(ctx, req.Company)
	if errors.Is(err, pgx.ErrNoRows) {
		company = &models.Company{Name: req.Company}
		if err := s.companyRepo.Create(ctx, company); err != nil {
			return nil, err
		}
		role = models.RoleAdmin
	} else if err != nil {
		return nil, err
	} else {
		count, err := s.userRepo.CountByCompany(ctx, company.ID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			role = models.RoleAdmin
		}
	}

	// Hash password (bcrypt cost 12)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		CompanyID:    company.ID,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.Name,
		Role:         role,
		TermsAgreed:  req.TermsAgreed,
	}
	if req.Contact != "" {
		user.Contact = &req.Contact
	}
	if req.CountryCode != "" {
		user.CountryCode = &req.CountryCode
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and returns tokens plus the user payload
// the dashboard stores client-side.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthTokens, *models.LoginUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, &UnauthorizedError{Message: "Incorrect email or password"}
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, &UnauthorizedError{Message: "Incorrect email or password"}
	}

	company, err := s.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, nil, err
	}

	s.userRepo.UpdateLastLogin(ctx, user.ID)

	tokens, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return tokens, &models.LoginUser{
		ID:          user.ID,
		Name:        user.FullName,
		AvatarURL:   user.AvatarURL,
		Email:       user.Email,
		CompanyID:   user.CompanyID,
		CompanyName: company.Name,
		Role:        user.Role,
		Contact:     user.Contact,
		CountryCode: user.CountryCode,
	}, nil
}

func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthTokens, error) {
	userIDStr, err := s.redis.Get(ctx, "refresh:"+refreshToken).Result()
	if err != nil {
		return nil, &UnauthorizedError{Message: "Invalid or expired refresh token. Please log in again."}
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	// Delete old token (rotation)
	s.redis.Del(ctx, "refresh:"+refreshToken)

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.redis.Del(ctx, "refresh:"+refreshToken).Err()
}

// Me returns the caller's profile with the company name resolved.
func (s *AuthService) Me(ctx context.Context, userID uuid.UUID) (*models.LoginUser, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{Message: "User not found"}
		}
		return nil, err
	}

	company, err := s.companyRepo.GetByID(ctx, user.CompanyID)
	if err != nil {
		return nil, err
	}

	return &models.LoginUser{
		ID:          user.ID,
		Name:        user.FullName,
		AvatarURL:   user.AvatarURL,
		Email:       user.Email,
		CompanyID:   user.CompanyID,
		CompanyName: company.Name,
		Role:        user.Role,
		Contact:     user.Contact,
		CountryCode: user.CountryCode,
	}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*models.AuthTokens, error) {
	accessToken, err := s.jwt.GenerateAccessToken(user.ID, user.CompanyID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := generateToken(64)
	if err != nil {
		return nil, err
	}

	// Store refresh token in Redis (7 days)
	err = s.redis.Set(ctx, "refresh:"+refreshToken, user.ID.String(), 7*24*time.Hour).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    900,
	}, nil
}

func generateToken(bytes int) (string, error) {
	b := make([]byte, bytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validatePassword(pw string) error {
	if len(pw) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	var hasLetter, hasNumber, hasSymbol bool
	for _, ch := range pw {
		switch {
		case unicode.IsLetter(ch):
			hasLetter = true
		case unicode.IsDigit(ch):
			hasNumber = true
		case unicode.IsPunct(ch) || unicode.IsSymbol(ch):
			hasSymbol = true
		}
	}
	if !hasLetter || !hasNumber || !hasSymbol {
		return fmt.Errorf("Password must contain letters, numbers, and symbols")
	}
	return nil
}

// Custom errors
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

type ForbiddenError struct{ Message string }

func (e *ForbiddenError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }
