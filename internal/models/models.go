// Package models holds the wire types of the Hoaxify REST API
// and a few constants shared between the client packages.
package models

type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Image    string `json:"image"`
	Token    string `json:"token"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Image    string `json:"image"`
}

type UserPage struct {
	Content    []User `json:"content"`
	Page       int    `json:"page"`
	Size       int    `json:"size"`
	TotalPages int    `json:"totalPages"`
}

// ErrorResponse covers both failure bodies of the backend:
// `{message}` and `{validationErrors:{field:msg}}`.
type ErrorResponse struct {
	Message          string            `json:"message,omitempty"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

const (
	StorageTypeUnknown = iota
	StorageTypePostgresql
	StorageTypeRedis
	StorageTypeFile
	StorageTypeMemory
)

// DefaultUserPageSize is the page size used by the user list on the home page.
const DefaultUserPageSize = 3
