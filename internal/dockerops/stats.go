package dockerops

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/docker/docker/api/types"
)

// SampleStream yields statistics samples until closed.
type SampleStream interface {
	Recv() (types.StatsJSON, error)
	Close() error
}

// StatsStream decodes the engine's streaming stats body one sample at a time.
type StatsStream struct {
	body io.ReadCloser
	dec  *json.Decoder
	once sync.Once
	err  error
}

func (s *StatsStream) Recv() (types.StatsJSON, error) {
	var sample types.StatsJSON
	if err := s.dec.Decode(&sample); err != nil {
		return types.StatsJSON{}, err
	}
	return sample, nil
}

// Close releases the HTTP body. Safe to call more than once; an in-flight
// Recv returns with an error.
func (s *StatsStream) Close() error {
	s.once.Do(func() {
		s.err = s.body.Close()
	})
	return s.err
}

func (e *Engine) OpenStatsStream(ctx context.Context, containerID string) (SampleStream, error) {
	resp, err := e.cli.ContainerStats(ctx, containerID, true)
	if err != nil {
		return nil, engineErr("open stats stream", containerID, err)
	}
	return &StatsStream{body: resp.Body, dec: json.NewDecoder(resp.Body)}, nil
}
