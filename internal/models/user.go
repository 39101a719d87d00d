package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
)

type User struct {
	ID           uuid.UUID       `json:"id"`
	CompanyID    uuid.UUID       `json:"companyId"`
	Email        string          `json:"email"`
	PasswordHash string          `json:"-"`
	FullName     string          `json:"name"`
	AvatarURL    *string         `json:"avatarUrl"`
	Contact      *string         `json:"contact"`
	CountryCode  *string         `json:"countryCode"`
	Role         string          `json:"role"`
	TermsAgreed  bool            `json:"termsAgreed"`
	SettingsJSON json.RawMessage `json:"-"`
	CreatedAt    time.Time       `json:"createdAt"`
	LastLoginAt  *time.Time      `json:"lastLoginAt"`
}

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Company     string `json:"company"`
	Contact     string `json:"contact"`
	CountryCode string `json:"countryCode"`
	TermsAgreed bool   `json:"termsAgreed"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the user payload returned on login, shaped for the dashboard.
type LoginUser struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	AvatarURL   *string   `json:"avatarUrl"`
	Email       string    `json:"email"`
	CompanyID   uuid.UUID `json:"companyId"`
	CompanyName string    `json:"companyName"`
	Role        string    `json:"role"`
	Contact     *string   `json:"contact"`
	CountryCode *string   `json:"countryCode"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}
