package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDockerPortString(t *testing.T) {
	assert.Equal(t, "0.0.0.0:8080->80/tcp", DockerPort{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"}.String())
	assert.Equal(t, "0.0.0.0:53->53/udp", DockerPort{PrivatePort: 53, PublicPort: 53, Type: "udp"}.String())
	assert.Equal(t, "6379/tcp", DockerPort{PrivatePort: 6379}.String())
}

func TestSameLogicalPortIgnoresEverythingButPrivatePort(t *testing.T) {
	a := DockerPort{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"}
	b := DockerPort{IP: "::", PrivatePort: 80, PublicPort: 9090, Type: "udp"}
	c := DockerPort{IP: "0.0.0.0", PrivatePort: 81, PublicPort: 8080, Type: "tcp"}

	assert.True(t, a.SameLogicalPort(b))
	assert.False(t, a.SameLogicalPort(c))
}

func TestSummarize(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	w := Worker{
		ContainerID: "c1",
		ImageID:     "sha256:abc",
		Name:        "web-1",
		Image:       "nginx:latest",
		Status:      "Up 2 hours",
		State:       "running",
		SizeRw:      2048,
		SizeRootFs:  1000000,
		CreatedAt:   created,
		Ports:       []DockerPort{{IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"}},
	}

	s := Summarize(w)

	assert.Equal(t, "web-1", s.Name)
	assert.Equal(t, []string{"0.0.0.0:8080->80/tcp"}, s.Ports)
	assert.Equal(t, "2.048kB (virtual 1MB)", s.Size)
	assert.Equal(t, created, s.CreatedAt)
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 0, 20, 41)
	assert.Equal(t, 3, p.TotalPages)
	assert.NotNil(t, p.Items)

	assert.Equal(t, 0, NewPage([]int{}, 0, 20, 0).TotalPages)
}

func TestSetOwner(t *testing.T) {
	w := Worker{
		ID:              7,
		Ports:           []DockerPort{{PrivatePort: 80}},
		Mounts:          []DockerMount{{Destination: "/data"}},
		HostConfig:      &DockerHostConfig{},
		NetworkSettings: &DockerNetworkSettings{ID: 3, Networks: []DockerNetwork{{Name: "bridge"}}},
	}

	w.SetOwner()

	assert.Equal(t, int64(7), w.Ports[0].WorkerID)
	assert.Equal(t, int64(7), w.Mounts[0].WorkerID)
	assert.Equal(t, int64(7), w.HostConfig.WorkerID)
	assert.Equal(t, int64(7), w.NetworkSettings.WorkerID)
	assert.Equal(t, int64(3), w.NetworkSettings.Networks[0].SettingsID)
}
