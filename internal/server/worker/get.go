package worker

import (
	"net/http"

	"github.com/gorilla/mux"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/common/response"
)

func GetHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		containerID := mux.Vars(r)["containerId"]

		worker, err := deps.Service.GetWorker(r.Context(), containerID)
		if err != nil {
			response.WriteError(w, err)
			return
		}
		if worker == nil {
			response.WriteResponse(w, http.StatusNotFound, "worker not found")
			return
		}
		response.WriteResponse(w, http.StatusOK, worker)
	}
}
