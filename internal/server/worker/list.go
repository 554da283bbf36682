package worker

import (
	"fmt"
	"net/http"
	"strconv"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/common/errs"
	"docker-worker-mgr/internal/common/response"
)

// ListHandler serves GET /v1/workers?page=0&size=20.
func ListHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := intQuery(r, "page")
		if err != nil {
			response.WriteError(w, err)
			return
		}
		size, err := intQuery(r, "size")
		if err != nil {
			response.WriteError(w, err)
			return
		}

		result, err := deps.Service.ListWorkers(r.Context(), page, size)
		if err != nil {
			response.WriteError(w, err)
			return
		}
		response.WriteResponse(w, http.StatusOK, result)
	}
}

// intQuery returns 0 for a missing parameter.
func intQuery(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errs.E(errs.Invalid, "parse query", "", fmt.Errorf("%s=%q is not a number", name, raw))
	}
	return n, nil
}
