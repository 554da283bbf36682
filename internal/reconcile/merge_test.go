package reconcile

import (
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docker-worker-mgr/internal/model"
)

func TestMergePortsNewValuesWinAndKeepRowID(t *testing.T) {
	prior := []model.DockerPort{
		{ID: 11, WorkerID: 1, IP: "0.0.0.0", PrivatePort: 80, PublicPort: 8080, Type: "tcp"},
		{ID: 12, WorkerID: 1, IP: "0.0.0.0", PrivatePort: 22, PublicPort: 2222, Type: "tcp"},
	}
	observed := []types.Port{
		{IP: "127.0.0.1", PrivatePort: 80, PublicPort: 9090, Type: "tcp"},
		{IP: "0.0.0.0", PrivatePort: 5432, PublicPort: 5432, Type: "tcp"},
	}

	got := mergePorts(prior, observed)

	require.Len(t, got, 2)
	assert.Equal(t, model.DockerPort{ID: 11, IP: "127.0.0.1", PrivatePort: 80, PublicPort: 9090, Type: "tcp"}, got[0])
	assert.Equal(t, model.DockerPort{ID: 0, IP: "0.0.0.0", PrivatePort: 5432, PublicPort: 5432, Type: "tcp"}, got[1])
}

func TestMergePortsEmpty(t *testing.T) {
	got := mergePorts([]model.DockerPort{{ID: 1, PrivatePort: 80}}, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMergeMounts(t *testing.T) {
	prior := []model.DockerMount{{ID: 5, Destination: "/data"}, {ID: 6, Destination: "/old"}}
	observed := []types.MountPoint{
		{Type: mount.TypeBind, Source: "/srv", Destination: "/srv", Mode: "ro", Propagation: mount.PropagationRPrivate},
		{Type: mount.TypeVolume, Name: "data", Destination: "/data", RW: true, Driver: "local"},
	}

	got := mergeMounts(prior, observed)

	require.Len(t, got, 2)
	assert.Equal(t, "/data", got[0].Destination)
	assert.Equal(t, int64(5), got[0].ID)
	assert.True(t, got[0].RW)
	assert.Equal(t, "/srv", got[1].Destination)
	assert.Zero(t, got[1].ID)
	assert.Equal(t, "rprivate", got[1].Propagation)
	assert.Equal(t, "ro", got[1].Mode)
}

func TestMergeHostConfigFindOrCreate(t *testing.T) {
	c := types.Container{}
	c.HostConfig.NetworkMode = "host"

	created := mergeHostConfig(nil, c)
	assert.Equal(t, &model.DockerHostConfig{NetworkMode: "host"}, created)

	updated := mergeHostConfig(&model.DockerHostConfig{ID: 4, WorkerID: 2, NetworkMode: "bridge"}, c)
	assert.Equal(t, int64(4), updated.ID)
	assert.Equal(t, "host", updated.NetworkMode)
}

func TestMergeNetworkSettings(t *testing.T) {
	prior := &model.DockerNetworkSettings{
		ID:       9,
		WorkerID: 2,
		Networks: []model.DockerNetwork{{ID: 21, SettingsID: 9, Name: "frontend"}, {ID: 22, SettingsID: 9, Name: "gone"}},
	}
	observed := &types.SummaryNetworkSettings{
		Networks: map[string]*network.EndpointSettings{
			"frontend": {Aliases: []string{"b", "a", "b"}, IPAddress: "10.0.0.2", IPPrefixLen: 24},
			"backend":  {IPAddress: "10.1.0.2", GlobalIPv6Address: "fd00::2", GlobalIPv6PrefixLen: 64, IPv6Gateway: "fd00::1"},
			"nil":      nil,
		},
	}

	got := mergeNetworkSettings(prior, observed)

	assert.Equal(t, int64(9), got.ID)
	require.Len(t, got.Networks, 2)
	assert.Equal(t, "backend", got.Networks[0].Name)
	assert.Zero(t, got.Networks[0].ID)
	assert.Equal(t, "fd00::2", got.Networks[0].GlobalIPv6Address)
	assert.Equal(t, []string{}, got.Networks[0].Aliases)
	assert.Equal(t, "frontend", got.Networks[1].Name)
	assert.Equal(t, int64(21), got.Networks[1].ID)
	assert.Equal(t, []string{"a", "b"}, got.Networks[1].Aliases)

	empty := mergeNetworkSettings(nil, nil)
	assert.Zero(t, empty.ID)
	assert.Empty(t, empty.Networks)
}
