package handlers

import (
	"time"

	"simplylife/internal/cms/domain/entities"
	"simplylife/internal/cms/domain/services"
)

// LoginRequest - тело запроса входа в коллекцию.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionUser - пользователь в ответе на вход.
type SessionUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Collection string `json:"collection"`
}

// LoginResponse - ответ на успешный вход.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Exp     int64       `json:"exp"`
	User    SessionUser `json:"user"`
}

func toLoginResponse(s *services.Session) LoginResponse {
	return LoginResponse{
		Message: "Authentication Passed",
		Token:   s.Token,
		Exp:     s.ExpiresAt.Unix(),
		User:    SessionUser{ID: s.UserID, Email: s.Email, Collection: s.Collection},
	}
}

// AdminRequest - тело создания и обновления администратора.
type AdminRequest struct {
	Email        *string `json:"email"`
	Fullname     *string `json:"fullname"`
	Password     *string `json:"password"`
	EnableAPIKey *bool   `json:"enableAPIKey"`
}

// AdminResponse - администратор в ответе API.
type AdminResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Fullname     string    `json:"fullname"`
	EnableAPIKey bool      `json:"enableAPIKey"`
	APIKey       string    `json:"apiKey,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toAdminResponse(a *entities.Admin) AdminResponse {
	return AdminResponse{
		ID:           a.ID,
		Email:        a.Email,
		Fullname:     a.Fullname,
		EnableAPIKey: a.APIKey != "",
		APIKey:       a.APIKey,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// AppUserRequest - тело создания и обновления пользователя приложения.
type AppUserRequest struct {
	Email         *string `json:"email"`
	Role          *string `json:"role"`
	Lastname      *string `json:"lastname"`
	Firstname     *string `json:"firstname"`
	Cabinet       *string `json:"cabinet"`
	AdressCabinet *string `json:"adress_cabinet"`
	Birthday      *string `json:"birthday"`
	EntryDate     *string `json:"entry_date"`
	RGPD          *string `json:"rgpd"`
	Phone         *string `json:"phone"`
	Password      *string `json:"password"`
}

// AppUserResponse - пользователь приложения в ответе API. Хэш пароля и токен сброса не отдаются.
type AppUserResponse struct {
	ID                    string    `json:"id"`
	Email                 string    `json:"email"`
	Role                  string    `json:"role"`
	Lastname              string    `json:"lastname"`
	Firstname             string    `json:"firstname,omitempty"`
	Cabinet               string    `json:"cabinet,omitempty"`
	AdressCabinet         string    `json:"adress_cabinet,omitempty"`
	Birthday              string    `json:"birthday,omitempty"`
	EntryDate             string    `json:"entry_date,omitempty"`
	RGPD                  string    `json:"rgpd"`
	Phone                 string    `json:"phone,omitempty"`
	Image                 string    `json:"image,omitempty"`
	RegistrationCompleted bool      `json:"registrationCompleted"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func toAppUserResponse(u *entities.AppUser) AppUserResponse {
	return AppUserResponse{
		ID:                    u.ID,
		Email:                 u.Email,
		Role:                  u.Role,
		Lastname:              u.Lastname,
		Firstname:             u.Firstname,
		Cabinet:               u.Cabinet,
		AdressCabinet:         u.AdressCabinet,
		Birthday:              u.Birthday,
		EntryDate:             u.EntryDate,
		RGPD:                  u.RGPD,
		Phone:                 u.Phone,
		Image:                 u.ImagePath,
		RegistrationCompleted: u.RegistrationCompleted,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

// SupplierResponse - поставщик в ответе API.
type SupplierResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Selection        bool      `json:"selection"`
	Epargne          bool      `json:"epargne"`
	Enveloppe        string    `json:"enveloppe,omitempty"`
	Fond             string    `json:"fond,omitempty"`
	OtherInformation string    `json:"other_information,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func toSupplierResponse(s *entities.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:               s.ID,
		Name:             s.Name,
		Selection:        s.Selection,
		Epargne:          s.Epargne,
		Enveloppe:        s.Enveloppe,
		Fond:             s.Fond,
		OtherInformation: s.OtherInformation,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
