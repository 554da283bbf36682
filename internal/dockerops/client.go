package dockerops

import (
	"time"

	"github.com/docker/docker/client"
)

// NewDockerClient creates a new Docker API client using environment variables.
// A non-empty host overrides DOCKER_HOST.
func NewDockerClient(host string) (*client.Client, error) {
	opts := []client.Opt{
		client.FromEnv,                     // 환경 변수에서 Docker API 설정 읽음.
		client.WithAPIVersionNegotiation(), // API 버전 조회해서 호환 가능한 버전으로 통신하게 함.
	}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}
	return client.NewClientWithOpts(opts...)
}

// Engine is the container-engine capability used by reconciliation, lifecycle
// control and statistics collection.
type Engine struct {
	cli         client.APIClient
	stopTimeout time.Duration
}

func NewEngine(cli client.APIClient, stopTimeout time.Duration) *Engine {
	return &Engine{cli: cli, stopTimeout: stopTimeout}
}
