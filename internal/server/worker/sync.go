package worker

import (
	"net/http"

	"docker-worker-mgr/internal/appctx"
	"docker-worker-mgr/internal/common/response"
	clog "docker-worker-mgr/utils/log" //custom log
)

// SyncHandler runs a reconciliation pass inline and returns its report.
func SyncHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := deps.Service.Reconcile(r.Context())
		if err != nil {
			clog.Error("Sync failed", "err", err)
			response.WriteError(w, err)
			return
		}
		clog.Info("Sync done", "runID", report.RunID, "total", report.Total, "failed", report.Failed)
		response.WriteResponse(w, http.StatusOK, report)
	}
}

func LastReportHandler(deps *appctx.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := deps.Service.LastReport(r.Context())
		if err != nil {
			response.WriteError(w, err)
			return
		}
		if report == nil {
			response.WriteResponse(w, http.StatusNotFound, "no sync has run yet")
			return
		}
		response.WriteResponse(w, http.StatusOK, report)
	}
}
