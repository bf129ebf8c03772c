package serviceerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomServiceError_KeepsBaseIdentity(t *testing.T) {
	err := CustomServiceError(NotFoundError, "client G001 not found")

	assert.Equal(t, KindNotFound, err.Kind)
	assert.Equal(t, "RMS-4004", err.Code)
	assert.Equal(t, ClientErrorType, err.Type)
	assert.Equal(t, "client G001 not found", err.ErrorDescription)
	assert.Equal(t, "RMS-4004: client G001 not found", err.Error())
}

func TestWrapServiceError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := WrapServiceError(StoreError, cause, "failed to load client")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Equal(t, KindStore, KindOf(err))
}

func TestKindOf_ThroughFmtWrapping(t *testing.T) {
	inner := CustomServiceError(ConflictError, "duplicate key")
	wrapped := fmt.Errorf("create: %w", inner)

	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindConflict))
	assert.False(t, IsKind(wrapped, KindValidation))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.False(t, IsKind(nil, KindConflict))
}

func TestIs_MatchesOnKind(t *testing.T) {
	err := CustomServiceError(InvalidStateError, "already authorized")

	assert.True(t, errors.Is(err, &InvalidStateError))
	assert.False(t, errors.Is(err, &NotFoundError))
}

func TestWithPrefix(t *testing.T) {
	err := WithPrefix(CustomServiceError(ValidationError, "coCode is invalid"), "item 1")
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "item 1: coCode is invalid")

	plain := WithPrefix(errors.New("disk full"), "item 2")
	assert.Equal(t, KindStore, KindOf(plain))

	assert.NoError(t, WithPrefix(nil, "item 3"))
}

func TestToServiceError(t *testing.T) {
	svcErr := ToServiceError(errors.New("boom"))
	assert.Equal(t, KindStore, svcErr.Kind)
	assert.Equal(t, ServerErrorType, svcErr.Type)

	orig := CustomServiceError(NotFoundError, "missing")
	assert.Same(t, orig, ToServiceError(orig))
}
