package storage

import "context"

// Tag is one autocomplete candidate row from the tags relation. A Tag is
// immutable once read; it is owned by the response being built.
type Tag struct {
	ID             int32   `json:"id"`
	Name           string  `json:"name"`
	PostCount      int32   `json:"post_count"`
	Category       int16   `json:"category"`
	AntecedentName *string `json:"antecedent_name"`
}

// TagStore answers autocomplete lookups for canonical search keys.
type TagStore interface {
	// Lookup returns matching tags ordered by descending usage count,
	// ties broken by ascending name. The result may be empty; it is
	// never nil on success.
	Lookup(ctx context.Context, key string) ([]Tag, error)

	Close() error
}
