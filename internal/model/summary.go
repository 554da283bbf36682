package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/docker/go-units"
)

type WorkerSummary struct {
	ContainerID string    `json:"container_id"`
	ImageID     string    `json:"image_id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Status      string    `json:"status"`
	State       string    `json:"state"`
	Ports       []string  `json:"ports"`
	Size        string    `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, page, size int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if size > 0 {
		pages = int((total + int64(size) - 1) / int64(size))
	}
	return Page[T]{Items: items, Page: page, Size: size, Total: total, TotalPages: pages}
}

// Summarize projects a Worker and its ports into the list view.
func Summarize(w Worker) WorkerSummary {
	ports := make([]string, 0, len(w.Ports))
	for _, p := range w.Ports {
		ports = append(ports, p.String())
	}
	return WorkerSummary{
		ContainerID: w.ContainerID,
		ImageID:     w.ImageID,
		Name:        w.Name,
		Image:       w.Image,
		Status:      w.Status,
		State:       w.State,
		Ports:       ports,
		Size:        fmt.Sprintf("%s (virtual %s)", units.HumanSize(float64(w.SizeRw)), units.HumanSize(float64(w.SizeRootFs))),
		CreatedAt:   w.CreatedAt,
	}
}

// NatPort is the private side of the mapping, e.g. "80/tcp".
func (p DockerPort) NatPort() nat.Port {
	proto := p.Type
	if proto == "" {
		proto = "tcp"
	}
	port, err := nat.NewPort(proto, strconv.Itoa(p.PrivatePort))
	if err != nil {
		return nat.Port(fmt.Sprintf("%d/%s", p.PrivatePort, proto))
	}
	return port
}

// String renders the mapping the way `docker ps` does.
func (p DockerPort) String() string {
	if p.PublicPort == 0 {
		return string(p.NatPort())
	}
	ip := p.IP
	if ip == "" {
		ip = "0.0.0.0"
	}
	return fmt.Sprintf("%s:%d->%s", ip, p.PublicPort, p.NatPort())
}
