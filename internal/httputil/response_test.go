package httputil

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/redeemly/vouchers/internal/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleErrorGin(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "not found",
			err:            apperrors.Wrap(apperrors.ErrNotFound, "voucher not found"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "not_found",
		},
		{
			name:           "conflict",
			err:            apperrors.ErrConflict,
			expectedStatus: http.StatusConflict,
			expectedError:  "conflict",
		},
		{
			name:           "invalid input",
			err:            apperrors.Wrap(apperrors.ErrInvalidInput, "discount value out of range"),
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid_input",
		},
		{
			name:           "unredeemable",
			err:            apperrors.ErrUnredeemable,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "unredeemable",
		},
		{
			name:           "already used",
			err:            apperrors.ErrAlreadyUsed,
			expectedStatus: http.StatusForbidden,
			expectedError:  "already_used",
		},
		{
			name:           "unauthorized",
			err:            apperrors.ErrUnauthorized,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "unauthorized",
		},
		{
			name:           "forbidden",
			err:            apperrors.ErrForbidden,
			expectedStatus: http.StatusForbidden,
			expectedError:  "forbidden",
		},
		{
			name:           "unknown error",
			err:            assert.AnError,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestContext()

			HandleErrorGin(c, tt.err, discardLogger())

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response ErrorResponse
			err := json.Unmarshal(w.Body.Bytes(), &response)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedError, response.Error)
		})
	}
}

func TestHandleErrorGin_UnredeemableHidesCause(t *testing.T) {
	// Three distinct causes must produce byte-identical responses.
	causes := []error{
		apperrors.Wrap(apperrors.ErrUnredeemable, "no voucher with code"),
		apperrors.Wrap(apperrors.ErrUnredeemable, "wrong owner"),
		apperrors.Wrap(apperrors.ErrUnredeemable, "voucher disabled"),
	}

	var bodies []string
	for _, cause := range causes {
		c, w := newTestContext()
		HandleErrorGin(c, cause, discardLogger())
		assert.Equal(t, http.StatusBadRequest, w.Code)
		bodies = append(bodies, w.Body.String())
	}

	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, bodies[1], bodies[2])
}

func TestHandleErrorGin_InternalDetailNotLeaked(t *testing.T) {
	c, w := newTestContext()

	HandleErrorGin(c, apperrors.New("pq: connection refused on 10.0.0.5"), discardLogger())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.5")
}

func TestHandleErrorGin_NilError(t *testing.T) {
	c, w := newTestContext()

	HandleErrorGin(c, nil, discardLogger())

	assert.Empty(t, w.Body.String())
}

func TestHandleBadRequestGin(t *testing.T) {
	c, w := newTestContext()

	HandleBadRequestGin(c, apperrors.New("unexpected EOF"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "bad_request", response.Error)
}

func TestHandleValidationErrorGin(t *testing.T) {
	c, w := newTestContext()

	HandleValidationErrorGin(c, apperrors.New("discountType: must be a valid value"), discardLogger())

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	assert.Equal(t, "validation_error", response.Error)
}
