package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docker-worker-mgr/internal/common/errs"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.E(errs.Invalid, "op", "", nil), http.StatusBadRequest},
		{errs.E(errs.Lifecycle, "start", "c1", errs.E(errs.NotFound, "inspect", "c1", nil)), http.StatusNotFound},
		{errs.E(errs.Statistics, "get", "c1", errs.E(errs.Timeout, "await", "c1", context.DeadlineExceeded)), http.StatusGatewayTimeout},
		{errs.E(errs.Engine, "list", "", errors.New("down")), http.StatusBadGateway},
		{errs.E(errs.Lifecycle, "start", "c1", errors.New("port in use")), http.StatusBadGateway},
		{errs.E(errs.Store, "list", "", errors.New("db")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestWriteErrorCarriesKind(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errs.E(errs.NotFound, "inspect container", "c9", errors.New("no such container")))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "not_found", body.Kind)
	assert.Contains(t, body.Message, "no such container")
}

func TestWriteResponseSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponse(rec, http.StatusOK, map[string]int{"n": 1})

	var body struct {
		Status string         `json:"status"`
		Data   map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "success", body.Status)
	assert.Equal(t, 1, body.Data["n"])
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}
