package server

import (
	"net/http"

	"github.com/gorilla/mux"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/server/container"
	"docker-worker-mgr/internal/server/worker"
)

func NewRouter(deps *appctx.Dependencies) *mux.Router {
	r := mux.NewRouter()
	RegisterWorkerRoutes(r, deps)
	RegisterContainerRoutes(r, deps)
	return r
}

func RegisterWorkerRoutes(r *mux.Router, deps *appctx.Dependencies) {
	r.HandleFunc("/v1/workers/sync", worker.SyncHandler(deps)).Methods(http.MethodPost)
	r.HandleFunc("/v1/workers", worker.ListHandler(deps)).Methods(http.MethodGet)
	r.HandleFunc("/v1/workers/{containerId}", worker.GetHandler(deps)).Methods(http.MethodGet)
	r.HandleFunc("/v1/sync/last", worker.LastReportHandler(deps)).Methods(http.MethodGet)
}

func RegisterContainerRoutes(r *mux.Router, deps *appctx.Dependencies) {
	r.HandleFunc("/v1/containers/{containerId}/start", container.StartHandler(deps)).Methods(http.MethodPost)
	r.HandleFunc("/v1/containers/{containerId}/stop", container.StopHandler(deps)).Methods(http.MethodPost)
	r.HandleFunc("/v1/containers/{containerId}/stats", container.StatsHandler(deps)).Methods(http.MethodGet)
}
