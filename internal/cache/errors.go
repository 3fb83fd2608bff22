package cache

import "fmt"

// StorageError wraps a fault in the underlying store. The cache treats
// every StorageError as a miss (fail-open); it is surfaced only in logs.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("cache storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
