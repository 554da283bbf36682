package stats

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docker-worker-mgr/internal/common/errs"
	"docker-worker-mgr/internal/dockerops"
)

// fakeStream hands out queued samples and then blocks until closed.
type fakeStream struct {
	mu      sync.Mutex
	samples []types.StatsJSON
	recvErr error
	closed  chan struct{}
	once    sync.Once
	closes  atomic.Int32
}

func newFakeStream(samples ...types.StatsJSON) *fakeStream {
	return &fakeStream{samples: samples, closed: make(chan struct{})}
}

func (s *fakeStream) Recv() (types.StatsJSON, error) {
	s.mu.Lock()
	if s.recvErr != nil {
		err := s.recvErr
		s.mu.Unlock()
		return types.StatsJSON{}, err
	}
	if len(s.samples) > 0 {
		next := s.samples[0]
		s.samples = s.samples[1:]
		s.mu.Unlock()
		return next, nil
	}
	s.mu.Unlock()

	<-s.closed
	return types.StatsJSON{}, io.ErrClosedPipe
}

func (s *fakeStream) Close() error {
	s.closes.Add(1)
	s.once.Do(func() { close(s.closed) })
	return nil
}

type fakeEngine struct {
	stream  *fakeStream
	openErr error
}

func (f *fakeEngine) OpenStatsStream(context.Context, string) (dockerops.SampleStream, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.stream, nil
}

func sample(read time.Time) types.StatsJSON {
	s := types.StatsJSON{Name: "/web-1", ID: "c1"}
	s.Read = read
	s.CPUStats.CPUUsage.TotalUsage = 400
	s.CPUStats.SystemUsage = 2000
	s.CPUStats.OnlineCPUs = 2
	s.PreCPUStats.CPUUsage.TotalUsage = 200
	s.PreCPUStats.SystemUsage = 1000
	s.MemoryStats.Usage = 600
	s.MemoryStats.Limit = 1000
	s.MemoryStats.Stats = map[string]uint64{"inactive_file": 100}
	s.PidsStats.Current = 7
	s.Networks = map[string]types.NetworkStats{"eth0": {RxBytes: 10, TxBytes: 20, RxPackets: 1, TxPackets: 2}}
	s.BlkioStats.IoServiceBytesRecursive = []types.BlkioStatEntry{
		{Op: "Read", Value: 30},
		{Op: "write", Value: 40},
		{Op: "Total", Value: 70},
	}
	return s
}

func TestGetReturnsFirstCompleteSampleAndCloses(t *testing.T) {
	read := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	stream := newFakeStream(types.StatsJSON{}, sample(read))

	got, err := New(&fakeEngine{stream: stream}, time.Second).Get(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, "web-1", got.Name)
	assert.Equal(t, read, got.ReadAt)
	assert.InDelta(t, 40.0, got.CPU.Percent, 0.001)
	assert.Equal(t, uint32(2), got.CPU.OnlineCPUs)
	assert.Equal(t, uint64(500), got.Memory.Usage)
	assert.InDelta(t, 50.0, got.Memory.Percent, 0.001)
	assert.Equal(t, uint64(20), got.Networks["eth0"].TxBytes)
	assert.Equal(t, uint64(30), got.BlockIO.ReadBytes)
	assert.Equal(t, uint64(40), got.BlockIO.WriteBytes)
	assert.Equal(t, uint64(7), got.PIDs)

	assert.Equal(t, int32(1), stream.closes.Load())
}

func TestGetTimesOutAndClosesStream(t *testing.T) {
	stream := newFakeStream()

	start := time.Now()
	got, err := New(&fakeEngine{stream: stream}, 20*time.Millisecond).Get(context.Background(), "c1")

	assert.Nil(t, got)
	assert.True(t, errs.Is(err, errs.Statistics))
	assert.True(t, errs.Is(err, errs.Timeout))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, int32(1), stream.closes.Load())
}

func TestGetHonoursCallerCancel(t *testing.T) {
	stream := newFakeStream()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := New(&fakeEngine{stream: stream}, time.Minute).Get(ctx, "c1")

	assert.True(t, errs.Is(err, errs.Statistics))
	assert.False(t, errs.Is(err, errs.Timeout))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), stream.closes.Load())
}

func TestGetStreamErrorNeverReturnsPartialSample(t *testing.T) {
	stream := newFakeStream()
	stream.recvErr = errors.New("unexpected EOF")

	got, err := New(&fakeEngine{stream: stream}, time.Second).Get(context.Background(), "c1")

	assert.Nil(t, got)
	assert.True(t, errs.Is(err, errs.Statistics))
	assert.Contains(t, err.Error(), "unexpected EOF")
	assert.Equal(t, int32(1), stream.closes.Load())
}

func TestGetOpenFailure(t *testing.T) {
	engine := &fakeEngine{openErr: errs.E(errs.NotFound, "open stats stream", "c1", errors.New("no such container"))}

	_, err := New(engine, time.Second).Get(context.Background(), "c1")

	assert.True(t, errs.Is(err, errs.Statistics))
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestCPUPercentWithoutPreviousSample(t *testing.T) {
	s := sample(time.Now())
	s.PreCPUStats = types.CPUStats{}
	s.CPUStats.SystemUsage = 0

	assert.Zero(t, cpuPercent(s))
}
