package testutil

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/procure/backend/internal/interfaces/http/dto"
)

// DoJSON performs a request against the engine with an optional JSON body
// and an optional bearer token, returning the recorded response.
func DoJSON(t *testing.T, engine *gin.Engine, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

// DecodeResponse unmarshals the recorded body into the standard envelope.
func DecodeResponse(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "body: %s", rec.Body.String())
	return resp
}

// DataField returns a field from the response data object, which arrives
// as a map once decoded from JSON.
func DataField(t *testing.T, resp dto.Response, field string) any {
	t.Helper()

	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "response data is not an object: %v", resp.Data)
	return data[field]
}
