package user

import "context"

// Repository defines the interface for user data operations.
// Lookups return (nil, nil) when the user does not exist.
type Repository interface {
	// Create inserts the user and assigns its ID
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id uint) (*User, error)

	// GetByEmail expects a normalised email
	GetByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
