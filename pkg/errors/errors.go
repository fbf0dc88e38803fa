// Package errors provides custom error types for the glossync connector.
// Collaborator failures carry a Kind so callers can branch on "not found",
// "name conflict", "invalid parameter" or "transport" without depending on
// concrete error types.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is an alias for the standard library errors.As.
var As = errors.As

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// Common sentinel errors for the glossync system
var (
	// ErrNotFound indicates that a requested element was not found
	ErrNotFound = errors.New("not found")

	// ErrNameConflict indicates that the remote catalog rejected a name as a duplicate
	ErrNameConflict = errors.New("name conflict")

	// ErrInvalidParameter indicates that a remote service rejected a request parameter
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrTransport indicates a server communication failure
	ErrTransport = errors.New("server communication failure")

	// ErrRefreshInProgress indicates that a refresh is already running
	ErrRefreshInProgress = errors.New("refresh in progress")

	// ErrNoListener indicates that no event listener has been registered yet
	ErrNoListener = errors.New("no event listener registered")
)

// Kind classifies a collaborator failure.
type Kind int

const (
	// KindUnknown is an unclassified failure.
	KindUnknown Kind = iota
	// KindNotFound means the addressed element does not exist.
	KindNotFound
	// KindNameConflict means a create was rejected because the name is taken.
	KindNameConflict
	// KindInvalidParameter means the service rejected a parameter, usually an unknown GUID.
	KindInvalidParameter
	// KindTransport means the request could not be completed or decoded.
	KindTransport
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindNameConflict:
		return "name_conflict"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindNameConflict:
		return ErrNameConflict
	case KindInvalidParameter:
		return ErrInvalidParameter
	case KindTransport:
		return ErrTransport
	default:
		return nil
	}
}

// ServiceError is a classified failure returned by a remote service client.
type ServiceError struct {
	Service    string // "atlas" or "egeria"
	Operation  string // e.g. "get glossary"
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s failed (%s, status %d): %s", e.Service, e.Operation, e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s failed (%s): %s", e.Service, e.Operation, e.Kind, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ServiceError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewServiceError creates a new ServiceError
func NewServiceError(service, operation string, kind Kind, message string, err error) *ServiceError {
	if message == "" && err != nil {
		message = err.Error()
	}
	return &ServiceError{
		Service:   service,
		Operation: operation,
		Kind:      kind,
		Message:   message,
		Err:       err,
	}
}

// KindOf returns the Kind of the first ServiceError in the chain, or the
// kind implied by a wrapped sentinel.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNameConflict):
		return KindNameConflict
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, ErrTransport):
		return KindTransport
	}
	return KindUnknown
}

// NotFoundError represents an error when an element is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ConnectorError is the single fatal error a refresh cycle surfaces to its
// host. It records which connector failed and the type of the original error.
type ConnectorError struct {
	Connector string
	Operation string
	CauseType string
	Err       error
}

// Error implements the error interface
func (e *ConnectorError) Error() string {
	return fmt.Sprintf("connector %s: %s failed with %s: %v", e.Connector, e.Operation, e.CauseType, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ConnectorError) Unwrap() error {
	return e.Err
}

// NewConnectorError creates a new ConnectorError
func NewConnectorError(connector, operation string, err error) *ConnectorError {
	return &ConnectorError{
		Connector: connector,
		Operation: operation,
		CauseType: fmt.Sprintf("%T", err),
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "update", "delete", "fetch"
	Resource  string // "glossary", "category", "term"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsNameConflict checks if an error is a name conflict
func IsNameConflict(err error) bool {
	return KindOf(err) == KindNameConflict
}

// IsInvalidParameter checks if an error is an invalid parameter error
func IsInvalidParameter(err error) bool {
	return KindOf(err) == KindInvalidParameter
}

// IsTransport checks if an error is a server communication failure
func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

// IsGone reports whether err means the addressed element most likely no
// longer exists. Unknown GUIDs are reported as invalid parameters by Egeria.
func IsGone(err error) bool {
	k := KindOf(err)
	return k == KindNotFound || k == KindInvalidParameter
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Helper wrapping functions for common patterns

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   err.Error(),
		Err:       err,
	}
}
