package handlers

import (
	"strings"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type ValidationErrorResponse struct {
	Message string                   `json:"message"`
	Errors  []ProductValidationError `json:"errors"`
}

// validateProduct is the only numeric validation boundary: records that
// reach the store are never negative.
func validateProduct(p ProductRequest) []ProductValidationError {
	errs := []ProductValidationError{}
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ProductValidationError{Field: "name", Description: "Name is required"})
	}
	if strings.TrimSpace(p.Category) == "" {
		errs = append(errs, ProductValidationError{Field: "category", Description: "Category is required"})
	}
	if p.Price.IsNegative() {
		errs = append(errs, ProductValidationError{Field: "price", Description: "Price cannot be negative"})
	}
	if p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "quantity", Description: "Quantity cannot be negative"})
	}
	if p.MinStock != nil && *p.MinStock < 0 {
		errs = append(errs, ProductValidationError{Field: "minStock", Description: "Minimum stock cannot be negative"})
	}
	return errs
}

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

func validateCredentials(username, password string) string {
	if username == "" || password == "" {
		return "Username and password are required"
	}
	if len(username) < minUsernameLength || len(password) < minPasswordLength {
		return "Username or password too short"
	}
	return ""
}
