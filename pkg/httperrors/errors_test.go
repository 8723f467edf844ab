package httperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourname/vault_lite/internal/models"
	"github.com/yourname/vault_lite/pkg/vaultproto"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("decode: %w", models.ErrMalformedRequest), http.StatusBadRequest, vaultproto.CodeMalformedRequest},
		{models.ErrQuotaExceeded, http.StatusBadRequest, vaultproto.CodeQuotaExceeded},
		{models.ErrNotFound, http.StatusNotFound, vaultproto.CodeNotFound},
		{fmt.Errorf("file 1: %w", models.ErrBlobNotFound), http.StatusNotFound, vaultproto.CodeBlobNotFound},
		{models.ErrPersistenceFailed, http.StatusInternalServerError, vaultproto.CodePersistenceFailed},
		{errors.New("boom"), http.StatusInternalServerError, vaultproto.CodeInternal},
	}

	for _, tt := range tests {
		status, code := Classify(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.code, code, tt.err.Error())
	}
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, models.ErrQuotaExceeded)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body vaultproto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, vaultproto.CodeQuotaExceeded, body.Code)
	assert.Equal(t, models.ErrQuotaExceeded.Error(), body.Message)
}
