package accounts

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"petstore-client/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	validate := validator.New()

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/token/", tokenHandler(svc, validate))
		ar.Post("/token/refresh/", refreshHandler(svc, validate))
		ar.Post("/users/register/", registerHandler(svc, validate))
		ar.Get("/users/profile/", profileHandler(svc))
	})
}

type tokenRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Phone     string `json:"phone" validate:"max=20"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

type userResponse struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Phone      string    `json:"phone"`
	Role       Role      `json:"role"`
	IsStaff    bool      `json:"is_staff"`
	DateJoined time.Time `json:"date_joined"`
}

// tokenHandler
// @Summary  Obtain access/refresh pair
// @Param    body body tokenRequest true "credentials"
// @Success  200 {object} auth.TokenPair
// @Failure  401 {object} errorResponse
// @Router   /auth/token/ [post]
func tokenHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		pair, err := svc.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				writeError(w, http.StatusUnauthorized, err.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, pair)
	}
}

// refreshHandler
// @Summary  Refresh access token
// @Param    body body refreshRequest true "refresh token"
// @Router   /auth/token/refresh/ [post]
func refreshHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		access, err := svc.Refresh(r.Context(), req.Refresh)
		if err != nil {
			writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"access": access})
	}
}

// registerHandler
// @Summary  Register a customer account
// @Param    body body registerRequest true "new user"
// @Success  201 {object} userResponse
// @Router   /auth/users/register/ [post]
func registerHandler(svc *Service, validate *validator.Validate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !decodeAndValidate(w, r, validate, &req) {
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Username:  req.Username,
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Password:  req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrUsernameTaken):
				writeJSON(w, http.StatusBadRequest, map[string][]string{"username": {err.Error()}})
			case errors.Is(err, ErrEmailTaken):
				writeJSON(w, http.StatusBadRequest, map[string][]string{"email": {err.Error()}})
			default:
				writeError(w, http.StatusInternalServerError, "internal error")
			}
			return
		}
		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

// profileHandler
// @Summary  Current user profile
// @Security Bearer
// @Success  200 {object} userResponse
// @Router   /auth/users/profile/ [get]
func profileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}

		u, err := svc.Profile(r.Context(), claims)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidToken) {
				writeError(w, http.StatusUnauthorized, ErrInvalidToken.Error())
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      u.Phone,
		Role:       u.Role,
		IsStaff:    u.IsStaff,
		DateJoined: u.DateJoined,
	}
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, validate *validator.Validate, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			writeJSON(w, http.StatusBadRequest, fieldErrors(vErrs))
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// fieldErrors arma {"campo": ["mensaje"]} al estilo DRF.
func fieldErrors(vErrs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(vErrs))
	for _, fe := range vErrs {
		field := jsonName(fe.Field())
		msg := "invalid value"
		switch fe.Tag() {
		case "required":
			msg = "This field is required."
		case "email":
			msg = "Enter a valid email address."
		case "min":
			msg = "Ensure this field has at least " + fe.Param() + " characters."
		case "max":
			msg = "Ensure this field has no more than " + fe.Param() + " characters."
		case "eqfield":
			field = "password"
			msg = "Password fields didn't match."
		}
		out[field] = append(out[field], msg)
	}
	return out
}

var jsonNames = map[string]string{
	"FirstName": "first_name",
	"LastName":  "last_name",
	"Password2": "password2",
}

func jsonName(field string) string {
	if v, ok := jsonNames[field]; ok {
		return v
	}
	return strings.ToLower(field)
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
