package sqlops

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"docker-worker-mgr/internal/model"
	"docker-worker-mgr/utils"
)

type workerRow struct {
	ID          int64          `db:"id"`
	ImageID     string         `db:"image_id"`
	ContainerID string         `db:"container_id"`
	Name        string         `db:"name"`
	Command     string         `db:"command"`
	Image       string         `db:"image"`
	Status      string         `db:"status"`
	State       string         `db:"state"`
	SizeRw      int64          `db:"size_rw"`
	SizeRootFs  int64          `db:"size_root_fs"`
	CreatedAt   string         `db:"created_at"`
	StartedAt   sql.NullString `db:"started_at"`
	FinishedAt  sql.NullString `db:"finished_at"`
}

type portRow struct {
	ID          int64  `db:"id"`
	WorkerID    int64  `db:"worker_id"`
	IP          string `db:"ip"`
	PrivatePort int    `db:"private_port"`
	PublicPort  int    `db:"public_port"`
	Type        string `db:"type"`
}

type hostConfigRow struct {
	ID          int64  `db:"id"`
	WorkerID    int64  `db:"worker_id"`
	NetworkMode string `db:"network_mode"`
}

type networkSettingsRow struct {
	ID       int64 `db:"id"`
	WorkerID int64 `db:"worker_id"`
}

type networkRow struct {
	ID                  int64  `db:"id"`
	SettingsID          int64  `db:"network_settings_id"`
	Name                string `db:"name"`
	Aliases             string `db:"aliases"`
	Gateway             string `db:"gateway"`
	EndpointID          string `db:"endpoint_id"`
	IPAddress           string `db:"ip_address"`
	IPPrefixLen         int    `db:"ip_prefix_len"`
	GlobalIPv6Address   string `db:"global_ipv6_address"`
	GlobalIPv6PrefixLen int    `db:"global_ipv6_prefix_len"`
	IPv6Gateway         string `db:"ipv6_gateway"`
	MacAddress          string `db:"mac_address"`
}

type mountRow struct {
	ID          int64  `db:"id"`
	WorkerID    int64  `db:"worker_id"`
	RW          bool   `db:"rw"`
	Name        string `db:"name"`
	Mode        string `db:"mode"`
	Driver      string `db:"driver"`
	Destination string `db:"destination"`
	Source      string `db:"source"`
	Propagation string `db:"propagation"`
}

func (r workerRow) toModel() (*model.Worker, error) {
	created, err := utils.ParseRFC3339(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("worker %d created_at: %w", r.ID, err)
	}
	started, err := nullTime(r.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("worker %d started_at: %w", r.ID, err)
	}
	finished, err := nullTime(r.FinishedAt)
	if err != nil {
		return nil, fmt.Errorf("worker %d finished_at: %w", r.ID, err)
	}
	return &model.Worker{
		ID:          r.ID,
		ImageID:     r.ImageID,
		ContainerID: r.ContainerID,
		Name:        r.Name,
		Command:     r.Command,
		Image:       r.Image,
		Status:      r.Status,
		State:       r.State,
		SizeRw:      r.SizeRw,
		SizeRootFs:  r.SizeRootFs,
		CreatedAt:   created,
		StartedAt:   started,
		FinishedAt:  finished,
	}, nil
}

// workerValues is the argument list for upsertWorker, in workerColumns order.
func workerValues(w *model.Worker) []any {
	return []any{
		w.ImageID,
		w.ContainerID,
		w.Name,
		w.Command,
		w.Image,
		w.Status,
		w.State,
		w.SizeRw,
		w.SizeRootFs,
		utils.FormatDatetime(w.CreatedAt),
		timeValue(w.StartedAt),
		timeValue(w.FinishedAt),
	}
}

func nullTime(v sql.NullString) (*time.Time, error) {
	if !v.Valid || v.String == "" {
		return nil, nil
	}
	t, err := utils.ParseRFC3339(v.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func timeValue(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: utils.FormatDatetime(*t), Valid: true}
}

func (r portRow) toModel() model.DockerPort {
	return model.DockerPort{
		ID:          r.ID,
		WorkerID:    r.WorkerID,
		IP:          r.IP,
		PrivatePort: r.PrivatePort,
		PublicPort:  r.PublicPort,
		Type:        r.Type,
	}
}

func (r networkRow) toModel() (model.DockerNetwork, error) {
	var aliases []string
	if r.Aliases != "" {
		if err := json.Unmarshal([]byte(r.Aliases), &aliases); err != nil {
			return model.DockerNetwork{}, fmt.Errorf("network %d aliases: %w", r.ID, err)
		}
	}
	return model.DockerNetwork{
		ID:                  r.ID,
		SettingsID:          r.SettingsID,
		Name:                r.Name,
		Aliases:             aliases,
		Gateway:             r.Gateway,
		EndpointID:          r.EndpointID,
		IPAddress:           r.IPAddress,
		IPPrefixLen:         r.IPPrefixLen,
		GlobalIPv6Address:   r.GlobalIPv6Address,
		GlobalIPv6PrefixLen: r.GlobalIPv6PrefixLen,
		IPv6Gateway:         r.IPv6Gateway,
		MacAddress:          r.MacAddress,
	}, nil
}

func aliasesValue(aliases []string) (string, error) {
	if aliases == nil {
		aliases = []string{}
	}
	raw, err := json.Marshal(aliases)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (r mountRow) toModel() model.DockerMount {
	return model.DockerMount{
		ID:          r.ID,
		WorkerID:    r.WorkerID,
		RW:          r.RW,
		Name:        r.Name,
		Mode:        r.Mode,
		Driver:      r.Driver,
		Destination: r.Destination,
		Source:      r.Source,
		Propagation: r.Propagation,
	}
}
