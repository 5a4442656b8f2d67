package livesession

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streetside/internal/shared/errors"
)

func TestSessionErrorsCarryAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType errors.ErrorType
		wantCode int
	}{
		{name: "not approved", err: NewNotApprovedError("vnd_abc"), wantType: errors.ErrorTypeForbidden, wantCode: 403},
		{name: "already active", err: NewAlreadyActiveError("vnd_abc"), wantType: errors.ErrorTypeConflict, wantCode: 409},
		{name: "no active session", err: NewNoActiveSessionError("vnd_abc"), wantType: errors.ErrorTypeConflict, wantCode: 409},
		{name: "not found", err: NewNotFoundError("ls_xyz"), wantType: errors.ErrorTypeNotFound, wantCode: 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := errors.GetAppError(tt.err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantType, appErr.Type)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestSessionErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("starting session: %w", NewAlreadyActiveError("vnd_abc"))

	assert.True(t, IsAlreadyActive(wrapped))

	appErr := errors.GetAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
}
