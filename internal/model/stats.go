package model

import "time"

// Statistics is one complete resource-usage sample for a container.
type Statistics struct {
	ContainerID string               `json:"container_id"`
	Name        string               `json:"name"`
	ReadAt      time.Time            `json:"read_at"`
	CPU         CPUStats             `json:"cpu"`
	Memory      MemoryStats          `json:"memory"`
	Networks    map[string]NetworkIO `json:"networks"`
	BlockIO     BlockIO              `json:"block_io"`
	PIDs        uint64               `json:"pids"`
}

type CPUStats struct {
	TotalUsage  uint64  `json:"total_usage"`
	SystemUsage uint64  `json:"system_usage"`
	OnlineCPUs  uint32  `json:"online_cpus"`
	Percent     float64 `json:"percent"`
}

type MemoryStats struct {
	Usage   uint64  `json:"usage"`
	Limit   uint64  `json:"limit"`
	Percent float64 `json:"percent"`
}

type NetworkIO struct {
	RxBytes   uint64 `json:"rx_bytes"`
	TxBytes   uint64 `json:"tx_bytes"`
	RxPackets uint64 `json:"rx_packets"`
	TxPackets uint64 `json:"tx_packets"`
}

type BlockIO struct {
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
}
