package domain

import (
	"context"
	"time"
)

// Admin is a moderator account
type Admin struct {
	ID           string    // Unique identifier
	Name         string    // Display name
	Email        string    // Login email (unique)
	PasswordHash string    // Bcrypt hashed password
	CreatedAt    time.Time // Account creation timestamp
}

// AdminRepository defines the contract for admin persistence.
type AdminRepository interface {
	// GetByID returns ErrNotFound if the admin doesn't exist.
	GetByID(ctx context.Context, id string) (Admin, error)

	// GetByEmail is used during login to verify credentials.
	// Returns ErrNotFound if the admin doesn't exist.
	GetByEmail(ctx context.Context, email string) (Admin, error)

	// Insert backfills ID and CreatedAt. Returns ErrConflict on a duplicate email.
	Insert(ctx context.Context, a *Admin) error
}

// AdminUsecase handles moderator authentication.
type AdminUsecase interface {
	// Register returns ErrConflict if the email already exists.
	Register(ctx context.Context, name, email, password string) (Admin, error)

	// Login verifies credentials and returns a signed token.
	// Returns ErrUnauthorized on unknown email or wrong password.
	Login(ctx context.Context, email, password string) (string, Admin, error)

	// Authenticate resolves a bearer token to an existing admin.
	Authenticate(ctx context.Context, token string) (Admin, error)
}
