package service

import "fmt"

// ServiceError records which service operation failed. Sentinels from the
// domain, store and auth packages stay reachable through errors.Is.
type ServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s service %s operation failed", e.Service, e.Op)
	}
	return fmt.Sprintf("%s service %s operation failed: %v", e.Service, e.Op, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError wraps err.
func NewServiceError(service, op string, err error) *ServiceError {
	return &ServiceError{Service: service, Op: op, Err: err}
}
