package storage

import "fmt"

// StorageError wraps a backend failure. The backend's own message is kept
// intact in Err.
type StorageError struct {
	Op      string
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Backend, e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Backend: backend, Err: err}
}

// APIError is a non-2xx response from the hosted REST store.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (status %d, code %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}
