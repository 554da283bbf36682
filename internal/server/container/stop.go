package container

import (
	"net/http"

	"github.com/gorilla/mux"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/common/response"
	clog "docker-worker-mgr/utils/log" //custom log
)

func StopHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		containerID := mux.Vars(r)["containerId"]

		result, err := deps.Service.StopContainer(r.Context(), containerID)
		if err != nil {
			clog.Error("Container stop failed", "containerID", containerID, "err", err)
			response.WriteError(w, err)
			return
		}

		// mysql db update는 monitoring go루틴에서 진행하도록 함
		response.WriteResponse(w, http.StatusOK, result)
	}
}
