package sqlops

import (
	"context"
	"database/sql"

	"docker-worker-mgr/internal/model"
)

var (
	portColumns    = []string{"ip", "private_port", "public_port", "type"}
	mountColumns   = []string{"rw", "name", "mode", "driver", "destination", "source", "propagation"}
	networkColumns = []string{
		"name", "aliases", "gateway", "endpoint_id", "ip_address", "ip_prefix_len",
		"global_ipv6_address", "global_ipv6_prefix_len", "ipv6_gateway", "mac_address",
	}
)

func syncPorts(ctx context.Context, tx *sql.Tx, w *model.Worker) error {
	ids := make([]int64, 0, len(w.Ports))
	for _, p := range w.Ports {
		ids = append(ids, p.ID)
	}
	if err := pruneChildren(ctx, tx, "docker_ports", "worker_id", w.ID, keptIDs(ids...)); err != nil {
		return err
	}

	for i := range w.Ports {
		p := &w.Ports[i]
		id, err := saveChild(ctx, tx, "docker_ports", "worker_id", w.ID, p.ID, portColumns,
			[]any{p.IP, p.PrivatePort, p.PublicPort, p.Type})
		if err != nil {
			return err
		}
		p.ID = id
	}
	return nil
}

func syncMounts(ctx context.Context, tx *sql.Tx, w *model.Worker) error {
	ids := make([]int64, 0, len(w.Mounts))
	for _, m := range w.Mounts {
		ids = append(ids, m.ID)
	}
	if err := pruneChildren(ctx, tx, "docker_mounts", "worker_id", w.ID, keptIDs(ids...)); err != nil {
		return err
	}

	for i := range w.Mounts {
		m := &w.Mounts[i]
		id, err := saveChild(ctx, tx, "docker_mounts", "worker_id", w.ID, m.ID, mountColumns,
			[]any{m.RW, m.Name, m.Mode, m.Driver, m.Destination, m.Source, m.Propagation})
		if err != nil {
			return err
		}
		m.ID = id
	}
	return nil
}

func syncHostConfig(ctx context.Context, tx *sql.Tx, w *model.Worker) error {
	if w.HostConfig == nil {
		return pruneChildren(ctx, tx, "docker_host_configs", "worker_id", w.ID, nil)
	}
	hc := w.HostConfig
	if err := pruneChildren(ctx, tx, "docker_host_configs", "worker_id", w.ID, keptIDs(hc.ID)); err != nil {
		return err
	}
	id, err := saveChild(ctx, tx, "docker_host_configs", "worker_id", w.ID, hc.ID,
		[]string{"network_mode"}, []any{hc.NetworkMode})
	if err != nil {
		return err
	}
	hc.ID = id
	return nil
}

func syncNetworkSettings(ctx context.Context, tx *sql.Tx, w *model.Worker) error {
	ns := w.NetworkSettings
	if ns == nil {
		if _, err := ExecQuery(ctx, tx,
			`DELETE FROM docker_networks WHERE network_settings_id IN (SELECT id FROM docker_network_settings WHERE worker_id = ?)`,
			w.ID); err != nil {
			return err
		}
		return pruneChildren(ctx, tx, "docker_network_settings", "worker_id", w.ID, nil)
	}

	if err := pruneChildren(ctx, tx, "docker_network_settings", "worker_id", w.ID, keptIDs(ns.ID)); err != nil {
		return err
	}
	if ns.ID == 0 {
		id, err := saveChild(ctx, tx, "docker_network_settings", "worker_id", w.ID, 0, nil, nil)
		if err != nil {
			return err
		}
		ns.ID = id
	}

	ids := make([]int64, 0, len(ns.Networks))
	for i := range ns.Networks {
		ns.Networks[i].SettingsID = ns.ID
		ids = append(ids, ns.Networks[i].ID)
	}
	if err := pruneChildren(ctx, tx, "docker_networks", "network_settings_id", ns.ID, keptIDs(ids...)); err != nil {
		return err
	}

	for i := range ns.Networks {
		n := &ns.Networks[i]
		aliases, err := aliasesValue(n.Aliases)
		if err != nil {
			return err
		}
		id, err := saveChild(ctx, tx, "docker_networks", "network_settings_id", ns.ID, n.ID, networkColumns,
			[]any{n.Name, aliases, n.Gateway, n.EndpointID, n.IPAddress, n.IPPrefixLen,
				n.GlobalIPv6Address, n.GlobalIPv6PrefixLen, n.IPv6Gateway, n.MacAddress})
		if err != nil {
			return err
		}
		n.ID = id
	}
	return nil
}
