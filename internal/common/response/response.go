package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"docker-worker-mgr/internal/common/errs"
)

type APIResponse struct {
	Status  string      `json:"status"`            // "success" or "error"
	Kind    string      `json:"kind,omitempty"`    // error kind, only for errors
	Message string      `json:"message,omitempty"` // only for errors
	Data    interface{} `json:"data,omitempty"`    // payload (for success)
}

func WriteResponse(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	resp := APIResponse{}
	if statusCode >= 200 && statusCode < 300 {
		resp.Status = "success"
		resp.Data = payload
	} else {
		resp.Status = "error"
		switch v := payload.(type) {
		case error:
			resp.Message = v.Error()
			if k := errs.KindOf(v); k != 0 {
				resp.Kind = k.String()
			}
		case string:
			resp.Message = v
		default:
			resp.Message = fmt.Sprintf("%v", v)
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// WriteError picks the status code from the error's kind.
func WriteError(w http.ResponseWriter, err error) {
	WriteResponse(w, StatusFor(err), err)
}

// StatusFor maps an error kind to an HTTP status. A timeout wins over the
// statistics kind that wraps it.
func StatusFor(err error) int {
	switch {
	case errs.Is(err, errs.Invalid):
		return http.StatusBadRequest
	case errs.Is(err, errs.NotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.Timeout):
		return http.StatusGatewayTimeout
	case errs.Is(err, errs.Engine), errs.Is(err, errs.Lifecycle):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
