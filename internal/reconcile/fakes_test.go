package reconcile

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"

	"docker-worker-mgr/internal/model"
)

// fakeEngine serves a fixed container list and per-container inspections.
type fakeEngine struct {
	mu         sync.Mutex
	containers []types.Container
	details    map[string]types.ContainerJSON
	listErr    error
	inspectErr map[string]error
	delay      time.Duration
}

func (f *fakeEngine) set(containers ...types.Container) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.containers = containers
}

func (f *fakeEngine) ListContainers(_ context.Context, includeStopped bool) ([]types.Container, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !includeStopped {
		return nil, errors.New("reconciliation must list stopped containers")
	}
	return slices.Clone(f.containers), f.listErr
}

func (f *fakeEngine) Inspect(_ context.Context, containerID string) (types.ContainerJSON, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.inspectErr[containerID]; err != nil {
		return types.ContainerJSON{}, err
	}
	if d, ok := f.details[containerID]; ok {
		return d, nil
	}
	return inspection("2024-03-01T10:00:00Z", "2024-03-01T10:00:01Z", "0001-01-01T00:00:00Z"), nil
}

func inspection(created, started, finished string) types.ContainerJSON {
	return types.ContainerJSON{
		ContainerJSONBase: &types.ContainerJSONBase{
			Created: created,
			State: &types.ContainerState{
				Status:     "running",
				StartedAt:  started,
				FinishedAt: finished,
			},
		},
	}
}

func container(id, imageID, name string) types.Container {
	c := types.Container{
		ID:         id,
		Names:      []string{"/" + name},
		Image:      "nginx:latest",
		ImageID:    imageID,
		Command:    "nginx -g 'daemon off;'",
		State:      "running",
		Status:     "Up 2 hours",
		SizeRw:     1024,
		SizeRootFs: 4096,
		Ports: []types.Port{
			{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"},
		},
		Mounts: []types.MountPoint{
			{Type: mount.TypeVolume, Name: "data", Destination: "/data", Source: "/var/lib/docker/volumes/data/_data", Driver: "local", RW: true},
		},
		NetworkSettings: &types.SummaryNetworkSettings{
			Networks: map[string]*network.EndpointSettings{
				"bridge": {
					Aliases:     []string{"web", "web"},
					Gateway:     "172.17.0.1",
					EndpointID:  "ep-" + id,
					IPAddress:   "172.17.0.2",
					IPPrefixLen: 16,
					MacAddress:  "02:42:ac:11:00:02",
				},
			},
		},
	}
	c.HostConfig.NetworkMode = "bridge"
	return c
}

// memStore keeps aggregates in memory and assigns ids like a database would.
// It does not enforce image id uniqueness on its own.
type memStore struct {
	mu        sync.Mutex
	workers   []*model.Worker
	nextID    int64
	upsertErr map[string]error
	upserts   int
}

func newMemStore() *memStore {
	return &memStore{upsertErr: map[string]error{}}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memStore) byID(id int64) *model.Worker {
	for _, w := range s.workers {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *memStore) FindWorkerByImageID(_ context.Context, imageID string) (*model.Worker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.workers {
		if w.ImageID == imageID {
			out := cloneWorker(w)
			out.Ports, out.Mounts, out.HostConfig, out.NetworkSettings = nil, nil, nil, nil
			return out, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindPortsByWorkerID(_ context.Context, workerID int64) ([]model.DockerPort, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.byID(workerID); w != nil {
		return slices.Clone(w.Ports), nil
	}
	return nil, nil
}

func (s *memStore) FindHostConfigByWorkerID(_ context.Context, workerID int64) (*model.DockerHostConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.byID(workerID); w != nil && w.HostConfig != nil {
		hc := *w.HostConfig
		return &hc, nil
	}
	return nil, nil
}

func (s *memStore) FindNetworkSettingsByWorkerID(_ context.Context, workerID int64) (*model.DockerNetworkSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.byID(workerID); w != nil && w.NetworkSettings != nil {
		return cloneWorker(w).NetworkSettings, nil
	}
	return nil, nil
}

func (s *memStore) FindMountsByWorkerID(_ context.Context, workerID int64) ([]model.DockerMount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := s.byID(workerID); w != nil {
		return slices.Clone(w.Mounts), nil
	}
	return nil, nil
}

func (s *memStore) UpsertWorker(_ context.Context, w *model.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.upsertErr[w.ContainerID]; err != nil {
		return err
	}
	s.upserts++

	if w.ID == 0 {
		w.ID = s.id()
	}
	for i := range w.Ports {
		if w.Ports[i].ID == 0 {
			w.Ports[i].ID = s.id()
		}
	}
	for i := range w.Mounts {
		if w.Mounts[i].ID == 0 {
			w.Mounts[i].ID = s.id()
		}
	}
	if w.HostConfig != nil && w.HostConfig.ID == 0 {
		w.HostConfig.ID = s.id()
	}
	if ns := w.NetworkSettings; ns != nil {
		if ns.ID == 0 {
			ns.ID = s.id()
		}
		for i := range ns.Networks {
			if ns.Networks[i].ID == 0 {
				ns.Networks[i].ID = s.id()
			}
		}
	}
	w.SetOwner()

	stored := cloneWorker(w)
	if existing := s.byID(w.ID); existing != nil {
		*existing = *stored
		return nil
	}
	s.workers = append(s.workers, stored)
	return nil
}

func (s *memStore) snapshot() []*model.Worker {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, cloneWorker(w))
	}
	return out
}

func (s *memStore) countByImage(imageID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, w := range s.workers {
		if w.ImageID == imageID {
			n++
		}
	}
	return n
}

func cloneWorker(w *model.Worker) *model.Worker {
	out := *w
	out.Ports = slices.Clone(w.Ports)
	out.Mounts = slices.Clone(w.Mounts)
	if w.HostConfig != nil {
		hc := *w.HostConfig
		out.HostConfig = &hc
	}
	if w.NetworkSettings != nil {
		ns := *w.NetworkSettings
		ns.Networks = make([]model.DockerNetwork, len(w.NetworkSettings.Networks))
		for i, n := range w.NetworkSettings.Networks {
			n.Aliases = slices.Clone(n.Aliases)
			ns.Networks[i] = n
		}
		out.NetworkSettings = &ns
	}
	return &out
}
