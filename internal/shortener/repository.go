package shortener

import "context"

// Repository defines the interface for short URL storage.
// Implementations keep insertion order so List can return newest first,
// and never delete records; expired entries stay visible.
type Repository interface {
	// Save persists a new record. Returns ErrCodeExists if the code is taken.
	Save(ctx context.Context, shortURL *ShortURL) error

	// GetByCode retrieves a record by its code. Returns ErrNotFound if absent.
	GetByCode(ctx context.Context, code Code) (*ShortURL, error)

	// List returns all records, newest first.
	List(ctx context.Context) ([]*ShortURL, error)

	// IncrementClicks bumps the click counter by one and returns the new count.
	// Returns ErrNotFound if no record exists for the code.
	IncrementClicks(ctx context.Context, code Code) (int64, error)

	// Contains reports whether a code is in use. Satisfies CodeSet.
	Contains(ctx context.Context, code Code) (bool, error)
}
