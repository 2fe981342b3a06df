package ontology

import "errors"

// Common ontology errors.
var (
	// ErrNotFound is returned when a term is not in the ontology's primary map.
	ErrNotFound = errors.New("term not found")

	// ErrTypeMismatch is returned when an argument has an unsupported type.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrAlreadyAdopted is returned when adoption runs twice on the same ontology.
	ErrAlreadyAdopted = errors.New("relationships already adopted")
)
