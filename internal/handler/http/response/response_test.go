package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Account created", map[string]string{"id": "acc-1"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Account created", body["message"])
	assert.NotNil(t, body["data"])
	assert.Nil(t, body["error"])
}

func TestSuccess_OmitsEmptyFields(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, []string{"a"})

	assert.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	_, hasMessage := body["message"]
	_, hasMeta := body["meta"]
	assert.False(t, hasMessage)
	assert.False(t, hasMeta)
}

func TestSuccessWithMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	SuccessWithMeta(rec, []string{"a", "b"}, &Meta{Page: 2, Limit: 20, TotalItems: 41})

	body := decodeBody(t, rec)
	meta, ok := body["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), meta["page"])
	assert.Equal(t, float64(20), meta["limit"])
	assert.Equal(t, float64(41), meta["total_items"])
}

func TestValidationError(t *testing.T) {
	rec := httptest.NewRecorder()
	ValidationError(rec, map[string]string{"amount": "must be positive"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	errBody, ok := body["error"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", errBody["code"])
	details, ok := errBody["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "must be positive", details["amount"])
}

func TestErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		fn   func(http.ResponseWriter, string)
		want int
		code string
	}{
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", Forbidden, http.StatusForbidden, "FORBIDDEN"},
		{"not found", NotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", Conflict, http.StatusConflict, "CONFLICT"},
		{"internal", InternalServerError, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.fn(rec, "boom")

			assert.Equal(t, c.want, rec.Code)
			body := decodeBody(t, rec)
			errBody, ok := body["error"].(map[string]interface{})
			require.True(t, ok)
			assert.Equal(t, c.code, errBody["code"])
			assert.Equal(t, "boom", errBody["message"])
		})
	}
}
