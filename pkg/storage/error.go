package storage

// NotFoundError is returned when a routine doesn't exist in the store.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return "routine not found"
	}

	return "routine not found: " + e.ID
}
