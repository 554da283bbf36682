// Package lifecycle starts and stops containers, skipping the engine call when
// the container is already in the requested state. It never writes to the
// store; the next reconciliation pass picks up the new status.
package lifecycle

import (
	"context"

	"github.com/docker/docker/api/types"

	"docker-worker-mgr/internal/common/errs"
	clog "docker-worker-mgr/utils/log" //custom log
)

const (
	ActionStart = "start"
	ActionStop  = "stop"

	StatusRunning = "running"
	StatusExited  = "exited"
	StatusCreated = "created"
	StatusDead    = "dead"
)

type Engine interface {
	Inspect(ctx context.Context, containerID string) (types.ContainerJSON, error)
	Start(ctx context.Context, containerID string) error
	Stop(ctx context.Context, containerID string) error
}

type Result struct {
	ContainerID string `json:"container_id"`
	Action      string `json:"action"`
	// AlreadyInState is true when no command was sent because the container
	// was already running (start) or already stopped (stop).
	AlreadyInState bool   `json:"already_in_state"`
	Message        string `json:"message"`
}

type Controller struct {
	engine Engine
}

func New(engine Engine) *Controller {
	return &Controller{engine: engine}
}

func (c *Controller) status(ctx context.Context, containerID string) (string, error) {
	detail, err := c.engine.Inspect(ctx, containerID)
	if err != nil {
		if errs.KindOf(err) != 0 {
			return "", err
		}
		return "", errs.E(errs.Engine, "inspect container", containerID, err)
	}
	if detail.ContainerJSONBase == nil || detail.State == nil {
		return "", errs.E(errs.Engine, "inspect container", containerID, nil)
	}
	return detail.State.Status, nil
}

func (c *Controller) Start(ctx context.Context, containerID string) (Result, error) {
	status, err := c.status(ctx, containerID)
	if err != nil {
		return Result{}, err
	}
	if status == StatusRunning {
		clog.Info("Container already running", "containerID", containerID)
		return Result{ContainerID: containerID, Action: ActionStart, AlreadyInState: true, Message: "container is already running"}, nil
	}

	if err := c.engine.Start(ctx, containerID); err != nil {
		return Result{}, errs.E(errs.Lifecycle, "start container", containerID, err)
	}

	clog.Info("Container started", "containerID", containerID, "from", status)
	return Result{ContainerID: containerID, Action: ActionStart, Message: "container started"}, nil
}

// Stop treats created and dead containers like exited ones: there is no
// process to stop.
func (c *Controller) Stop(ctx context.Context, containerID string) (Result, error) {
	status, err := c.status(ctx, containerID)
	if err != nil {
		return Result{}, err
	}
	switch status {
	case StatusExited, StatusCreated, StatusDead:
		clog.Info("Container already stopped", "containerID", containerID, "status", status)
		return Result{ContainerID: containerID, Action: ActionStop, AlreadyInState: true, Message: "container is already stopped"}, nil
	}

	if err := c.engine.Stop(ctx, containerID); err != nil {
		return Result{}, errs.E(errs.Lifecycle, "stop container", containerID, err)
	}

	clog.Info("Container stopped", "containerID", containerID, "from", status)
	return Result{ContainerID: containerID, Action: ActionStop, Message: "container stopped"}, nil
}
