package validators

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"sweetshop/internal/models"
)

// ValidationError lists the request fields that failed validation. The HTTP
// layer flattens every instance into one uniform bad-input response.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

var (
	letterRegex = regexp.MustCompile(`[A-Za-z]`)
	digitRegex  = regexp.MustCompile(`[0-9]`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// 8-15 chars with at least one letter and one digit.
	v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		pw := fl.Field().String()
		if len(pw) < 8 || len(pw) > 15 {
			return false
		}
		return letterRegex.MatchString(pw) && digitRegex.MatchString(pw)
	})
	return v
}

func check(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return &ValidationError{Fields: []string{"body"}}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return &ValidationError{Fields: fields}
}

type SignupRequest struct {
	Email    string      `json:"email" validate:"required,email"`
	Password string      `json:"password" validate:"required,password"`
	Name     string      `json:"name" validate:"required"`
	Role     models.Role `json:"role" validate:"omitempty,oneof=ADMIN CUSTOMER"`
}

func (r *SignupRequest) Validate() error {
	return check(r)
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

func (r *SigninRequest) Validate() error {
	return check(r)
}

type SweetCreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Quantity *int    `json:"quantity" validate:"required,gte=0"`
}

func (r *SweetCreateRequest) Validate() error {
	return check(r)
}

// SweetUpdateRequest is the partial form of SweetCreateRequest: every field
// optional, but at least one must be present.
type SweetUpdateRequest struct {
	Name     *string  `json:"name" validate:"omitempty,min=1"`
	Category *string  `json:"category" validate:"omitempty,min=1"`
	Price    *float64 `json:"price" validate:"omitempty,gt=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

func (r *SweetUpdateRequest) Validate() error {
	if r.Name == nil && r.Category == nil && r.Price == nil && r.Quantity == nil {
		return &ValidationError{Fields: []string{"body"}}
	}
	return check(r)
}

type QuantityRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

func (r *QuantityRequest) Validate() error {
	return check(r)
}
