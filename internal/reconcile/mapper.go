package reconcile

import (
	"fmt"
	"strings"

	"github.com/docker/docker/api/types"

	"docker-worker-mgr/internal/model"
	"docker-worker-mgr/utils"
)

// containerName strips the leading "/" the engine puts on container names.
func containerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// mapWorker copies the scalar fields of one observed container onto w. It
// leaves w untouched when any timestamp fails to parse.
func mapWorker(w *model.Worker, c types.Container, detail types.ContainerJSON) error {
	if detail.ContainerJSONBase == nil {
		return fmt.Errorf("inspection of %s has no container details", c.ID)
	}

	created, err := utils.ParseRFC3339(detail.Created)
	if err != nil {
		return fmt.Errorf("created: %w", err)
	}

	var startedRaw, finishedRaw string
	if detail.State != nil {
		startedRaw, finishedRaw = detail.State.StartedAt, detail.State.FinishedAt
	}
	started, err := utils.ParseOptionalRFC3339(startedRaw)
	if err != nil {
		return fmt.Errorf("started at: %w", err)
	}
	finished, err := utils.ParseOptionalRFC3339(finishedRaw)
	if err != nil {
		return fmt.Errorf("finished at: %w", err)
	}

	w.ContainerID = c.ID
	w.Name = containerName(c.Names)
	w.Command = c.Command
	w.Image = c.Image
	w.ImageID = c.ImageID
	w.Status = c.Status
	w.State = c.State
	w.SizeRw = c.SizeRw
	w.SizeRootFs = c.SizeRootFs
	w.CreatedAt = created
	w.StartedAt = started
	w.FinishedAt = finished
	return nil
}
