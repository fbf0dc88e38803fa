package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/glossync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestServiceError(t *testing.T) {
	t.Run("message with status", func(t *testing.T) {
		err := &pkgerrors.ServiceError{
			Service:    "atlas",
			Operation:  "create term",
			Kind:       pkgerrors.KindNameConflict,
			StatusCode: 409,
			Message:    "term already exists",
		}
		assert.Equal(t, "atlas create term failed (name_conflict, status 409): term already exists", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNameConflict))
		assert.False(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor takes message from cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pkgerrors.NewServiceError("egeria", "get glossary", pkgerrors.KindTransport, "", cause)
		assert.Contains(t, err.Error(), "connection refused")
		assert.ErrorIs(t, err, cause)
		assert.True(t, pkgerrors.IsTransport(err))
	})

	t.Run("unknown kind matches no sentinel", func(t *testing.T) {
		err := pkgerrors.NewServiceError("atlas", "get", pkgerrors.KindUnknown, "boom", nil)
		assert.False(t, errors.Is(err, pkgerrors.ErrTransport))
		assert.Equal(t, pkgerrors.KindUnknown, pkgerrors.KindOf(err))
	})
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want pkgerrors.Kind
	}{
		{"nil", nil, pkgerrors.KindUnknown},
		{"plain", errors.New("x"), pkgerrors.KindUnknown},
		{"service not found", pkgerrors.NewServiceError("atlas", "get", pkgerrors.KindNotFound, "gone", nil), pkgerrors.KindNotFound},
		{"wrapped invalid parameter", fmt.Errorf("lookup: %w", pkgerrors.NewServiceError("egeria", "get", pkgerrors.KindInvalidParameter, "bad guid", nil)), pkgerrors.KindInvalidParameter},
		{"not found error type", pkgerrors.NewNotFoundError("term", "t1"), pkgerrors.KindNotFound},
		{"sentinel", fmt.Errorf("x: %w", pkgerrors.ErrTransport), pkgerrors.KindTransport},
		{"resource wrapping service", pkgerrors.WrapResource("create", "term", "t1", pkgerrors.NewServiceError("atlas", "create", pkgerrors.KindNameConflict, "dup", nil)), pkgerrors.KindNameConflict},
		{"joined", errors.Join(errors.New("a"), pkgerrors.NewServiceError("atlas", "get", pkgerrors.KindNotFound, "", nil)), pkgerrors.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pkgerrors.KindOf(tt.err))
		})
	}
}

func TestIsGone(t *testing.T) {
	assert.True(t, pkgerrors.IsGone(pkgerrors.NewServiceError("egeria", "get", pkgerrors.KindInvalidParameter, "", nil)))
	assert.True(t, pkgerrors.IsGone(pkgerrors.NewNotFoundError("glossary", "g1")))
	assert.False(t, pkgerrors.IsGone(pkgerrors.NewServiceError("egeria", "get", pkgerrors.KindTransport, "", nil)))
	assert.False(t, pkgerrors.IsGone(nil))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", pkgerrors.KindNotFound.String())
	assert.Equal(t, "name_conflict", pkgerrors.KindNameConflict.String())
	assert.Equal(t, "invalid_parameter", pkgerrors.KindInvalidParameter.String())
	assert.Equal(t, "transport", pkgerrors.KindTransport.String())
	assert.Equal(t, "unknown", pkgerrors.Kind(42).String())
}

func TestConnectorError(t *testing.T) {
	cause := pkgerrors.NewServiceError("atlas", "list glossaries", pkgerrors.KindTransport, "timeout", nil)
	err := pkgerrors.NewConnectorError("atlas-sync", "refresh", cause)

	assert.Equal(t, "*errors.ServiceError", err.CauseType)
	assert.Contains(t, err.Error(), "connector atlas-sync: refresh failed with *errors.ServiceError")

	var se *pkgerrors.ServiceError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, pkgerrors.KindTransport, se.Kind)
}

func TestNotFoundError(t *testing.T) {
	err := pkgerrors.NewNotFoundError("glossary", "g-1")
	assert.Equal(t, "glossary with ID g-1 not found", err.Error())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("page_size", 0, "must be positive")
		assert.Equal(t, "validation failed for field page_size: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.True(t, pkgerrors.IsValidationError(pkgerrors.WrapResource("create", "connector", "c", err)))
		assert.False(t, pkgerrors.IsValidationError(errors.New("plain")))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestConfigError(t *testing.T) {
	cause := errors.New("missing url")
	err := pkgerrors.NewConfigError("atlas", "endpoint not configured", cause)
	assert.Equal(t, "configuration error in atlas: endpoint not configured", err.Error())
	assert.ErrorIs(t, err, cause)

	noComponent := &pkgerrors.ConfigError{Message: "bad"}
	assert.Equal(t, "configuration error: bad", noComponent.Error())
}

func TestWrapHelpers(t *testing.T) {
	assert.Nil(t, pkgerrors.WrapResource("create", "term", "t1", nil))

	err := pkgerrors.WrapResource("update", "category", "c1", errors.New("boom"))
	assert.Equal(t, "failed to update category c1: boom", err.Error())
	assert.ErrorAs(t, err, new(*pkgerrors.ResourceError))
}
