package container

import (
	"net/http"

	"github.com/gorilla/mux"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/common/response"
	clog "docker-worker-mgr/utils/log" //custom log
)

// StatsHandler returns one live sample. The client disconnecting cancels the
// wait through the request context.
func StatsHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		containerID := mux.Vars(r)["containerId"]

		stats, err := deps.Service.GetStatistics(r.Context(), containerID)
		if err != nil {
			if r.Context().Err() != nil {
				clog.Warn("클라이언트가 요청을 취소했습니다", "containerID", containerID, "err", r.Context().Err())
				return
			}
			clog.Error("Container stats failed", "containerID", containerID, "err", err)
			response.WriteError(w, err)
			return
		}

		response.WriteResponse(w, http.StatusOK, stats)
	}
}
