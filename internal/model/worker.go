// Package model holds the persisted Worker aggregate and the values exposed to
// API callers.
package model

import "time"

// Worker is one logical workload, identified by ImageID. ContainerID is the
// runtime instance last observed for it and may change across recreations.
type Worker struct {
	ID          int64
	ImageID     string
	ContainerID string
	Name        string
	Command     string
	Image       string
	Status      string
	State       string
	SizeRw      int64
	SizeRootFs  int64
	CreatedAt   time.Time
	StartedAt   *time.Time
	FinishedAt  *time.Time

	Ports           []DockerPort
	HostConfig      *DockerHostConfig
	NetworkSettings *DockerNetworkSettings
	Mounts          []DockerMount
}

// DockerPort is one published port. Two ports are the same logical port when
// their private ports match, regardless of IP, public port or protocol.
type DockerPort struct {
	ID          int64
	WorkerID    int64
	IP          string
	PrivatePort int
	PublicPort  int
	Type        string
}

func (p DockerPort) SameLogicalPort(o DockerPort) bool {
	return p.PrivatePort == o.PrivatePort
}

type DockerHostConfig struct {
	ID          int64
	WorkerID    int64
	NetworkMode string
}

type DockerNetworkSettings struct {
	ID       int64
	WorkerID int64
	Networks []DockerNetwork
}

type DockerNetwork struct {
	ID                  int64
	SettingsID          int64
	Name                string
	Aliases             []string
	Gateway             string
	EndpointID          string
	IPAddress           string
	IPPrefixLen         int
	GlobalIPv6Address   string
	GlobalIPv6PrefixLen int
	IPv6Gateway         string
	MacAddress          string
}

type DockerMount struct {
	ID          int64
	WorkerID    int64
	RW          bool
	Name        string
	Mode        string
	Driver      string
	Destination string
	Source      string
	Propagation string
}

// SetOwner points every nested entity at w.ID. Call it after w.ID is known.
func (w *Worker) SetOwner() {
	for i := range w.Ports {
		w.Ports[i].WorkerID = w.ID
	}
	for i := range w.Mounts {
		w.Mounts[i].WorkerID = w.ID
	}
	if w.HostConfig != nil {
		w.HostConfig.WorkerID = w.ID
	}
	if w.NetworkSettings != nil {
		w.NetworkSettings.WorkerID = w.ID
		for i := range w.NetworkSettings.Networks {
			w.NetworkSettings.Networks[i].SettingsID = w.NetworkSettings.ID
		}
	}
}
