package container

import (
	"net/http"

	"github.com/gorilla/mux"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/common/response"
	clog "docker-worker-mgr/utils/log" //custom log
)

// StartHandler는 컨테이너를 시작. 이미 running이면 엔진 호출 없이 성공 응답.
// DB 갱신은 monitoring 루프에서 진행
func StartHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		containerID := mux.Vars(r)["containerId"]

		result, err := deps.Service.StartContainer(r.Context(), containerID)
		if err != nil {
			clog.Error("Container start failed", "containerID", containerID, "err", err)
			response.WriteError(w, err)
			return
		}

		response.WriteResponse(w, http.StatusOK, result)
	}
}
