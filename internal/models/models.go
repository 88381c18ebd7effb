// package models defines the data model for tunebox playlists
package models

import "iter"

// Model defines validation for entities created from user input.
type Model interface {
	Validate() error // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines index-addressed access to an ordered collection.
//
// Indexes are zero-based positions; out-of-range lookups and deletions report false instead of failing.
type Repository[T any] interface {
	Create(name string) (T, error) // Create appends a new element and returns it
	Get(index int) (T, bool)       // Get returns the element at index
	Delete(index int) bool         // Delete removes the element at index, shifting later ones left
	List() iter.Seq2[int, string]  // List enumerates index and name pairs in order
	Count() int                    // Count returns the number of elements
}
