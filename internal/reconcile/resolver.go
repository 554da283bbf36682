package reconcile

import (
	"context"

	"docker-worker-mgr/internal/model"
)

// resolve returns the worker persisted for imageID, or a new unpersisted one
// seeded with it. Callers hold the image's lock.
func (r *Reconciler) resolve(ctx context.Context, imageID string) (*model.Worker, error) {
	w, err := r.store.FindWorkerByImageID(ctx, imageID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return &model.Worker{ImageID: imageID}, nil
	}
	return w, nil
}
