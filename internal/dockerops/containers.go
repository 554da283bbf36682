package dockerops

import (
	"context"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/client"

	"docker-worker-mgr/internal/common/errs"
	clog "docker-worker-mgr/utils/log" //custom log
)

func engineErr(op, containerID string, err error) error {
	if client.IsErrNotFound(err) {
		return errs.E(errs.NotFound, op, containerID, err)
	}
	return errs.E(errs.Engine, op, containerID, err)
}

// ListContainers returns the engine's container summaries including sizes.
// includeStopped also returns created/exited/dead containers.
func (e *Engine) ListContainers(ctx context.Context, includeStopped bool) ([]types.Container, error) {
	containers, err := e.cli.ContainerList(ctx, types.ContainerListOptions{
		All:  includeStopped,
		Size: true,
	})
	if err != nil {
		return nil, engineErr("list containers", "", err)
	}
	clog.Debug("Listed containers", "count", len(containers), "all", includeStopped)
	return containers, nil
}

func (e *Engine) Inspect(ctx context.Context, containerID string) (types.ContainerJSON, error) {
	containerJSON, err := e.cli.ContainerInspect(ctx, containerID)
	if err != nil {
		return types.ContainerJSON{}, engineErr("inspect container", containerID, err)
	}
	return containerJSON, nil
}

func (e *Engine) Start(ctx context.Context, containerID string) error {
	if err := e.cli.ContainerStart(ctx, containerID, types.ContainerStartOptions{}); err != nil {
		return engineErr("start container", containerID, err)
	}
	return nil
}

// Stop sends SIGTERM and waits up to the engine's stop timeout before the
// daemon kills the container.
func (e *Engine) Stop(ctx context.Context, containerID string) error {
	timeout := e.stopTimeout
	if err := e.cli.ContainerStop(ctx, containerID, &timeout); err != nil {
		return engineErr("stop container", containerID, err)
	}
	return nil
}
