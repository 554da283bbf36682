package reconcile

import (
	"context"
	"slices"
	"sort"

	"github.com/docker/docker/api/types"

	"docker-worker-mgr/internal/model"
	"docker-worker-mgr/utils"
)

// mergePorts builds the worker's ports from the observation. Ports are one
// logical entry per private port: a later observation of the same private port
// overwrites the earlier one, and a port already persisted keeps its row id.
func mergePorts(prior []model.DockerPort, observed []types.Port) []model.DockerPort {
	priorIDs := utils.ListToMap(prior,
		func(p model.DockerPort) int { return p.PrivatePort },
		func(p model.DockerPort) int64 { return p.ID },
	)

	out := make([]model.DockerPort, 0, len(observed))
	for _, op := range observed {
		port := model.DockerPort{
			ID:          priorIDs[int(op.PrivatePort)],
			IP:          op.IP,
			PrivatePort: int(op.PrivatePort),
			PublicPort:  int(op.PublicPort),
			Type:        op.Type,
		}
		if i := slices.IndexFunc(out, port.SameLogicalPort); i >= 0 {
			out[i] = port
			continue
		}
		out = append(out, port)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PrivatePort < out[j].PrivatePort })
	return out
}

// mergeMounts replaces the mount list wholesale; a mount at a destination that
// was already persisted keeps its row id.
func mergeMounts(prior []model.DockerMount, observed []types.MountPoint) []model.DockerMount {
	priorIDs := utils.ListToMap(prior,
		func(m model.DockerMount) string { return m.Destination },
		func(m model.DockerMount) int64 { return m.ID },
	)

	byDest := make(map[string]int, len(observed))
	out := make([]model.DockerMount, 0, len(observed))
	for _, om := range observed {
		mount := model.DockerMount{
			ID:          priorIDs[om.Destination],
			RW:          om.RW,
			Name:        om.Name,
			Mode:        om.Mode,
			Driver:      om.Driver,
			Destination: om.Destination,
			Source:      om.Source,
			Propagation: string(om.Propagation),
		}
		if i, ok := byDest[om.Destination]; ok {
			out[i] = mount
			continue
		}
		byDest[om.Destination] = len(out)
		out = append(out, mount)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Destination < out[j].Destination })
	return out
}

func mergeHostConfig(prior *model.DockerHostConfig, c types.Container) *model.DockerHostConfig {
	hc := &model.DockerHostConfig{}
	if prior != nil {
		hc.ID = prior.ID
	}
	hc.NetworkMode = c.HostConfig.NetworkMode
	return hc
}

// mergeNetworkSettings finds or creates the settings record and replaces its
// networks with the observed attachments, keyed by network name.
func mergeNetworkSettings(prior *model.DockerNetworkSettings, observed *types.SummaryNetworkSettings) *model.DockerNetworkSettings {
	ns := &model.DockerNetworkSettings{}
	var priorNetworks []model.DockerNetwork
	if prior != nil {
		ns.ID = prior.ID
		priorNetworks = prior.Networks
	}
	priorIDs := utils.ListToMap(priorNetworks,
		func(n model.DockerNetwork) string { return n.Name },
		func(n model.DockerNetwork) int64 { return n.ID },
	)

	ns.Networks = make([]model.DockerNetwork, 0)
	if observed == nil {
		return ns
	}

	names := make([]string, 0, len(observed.Networks))
	for name := range observed.Networks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ep := observed.Networks[name]
		if ep == nil {
			continue
		}
		ns.Networks = append(ns.Networks, model.DockerNetwork{
			ID:                  priorIDs[name],
			SettingsID:          ns.ID,
			Name:                name,
			Aliases:             normalizeAliases(ep.Aliases),
			Gateway:             ep.Gateway,
			EndpointID:          ep.EndpointID,
			IPAddress:           ep.IPAddress,
			IPPrefixLen:         ep.IPPrefixLen,
			GlobalIPv6Address:   ep.GlobalIPv6Address,
			GlobalIPv6PrefixLen: ep.GlobalIPv6PrefixLen,
			IPv6Gateway:         ep.IPv6Gateway,
			MacAddress:          ep.MacAddress,
		})
	}
	return ns
}

// normalizeAliases treats aliases as a set.
func normalizeAliases(aliases []string) []string {
	out := slices.Clone(aliases)
	if out == nil {
		out = []string{}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// mergeNested loads w's persisted nested state and replaces it with what the
// engine reports for c. A worker that was never persisted starts empty.
func (r *Reconciler) mergeNested(ctx context.Context, w *model.Worker, c types.Container) error {
	var (
		ports    []model.DockerPort
		mounts   []model.DockerMount
		hostCfg  *model.DockerHostConfig
		settings *model.DockerNetworkSettings
		err      error
	)

	if w.ID != 0 {
		if ports, err = r.store.FindPortsByWorkerID(ctx, w.ID); err != nil {
			return err
		}
		if hostCfg, err = r.store.FindHostConfigByWorkerID(ctx, w.ID); err != nil {
			return err
		}
		if settings, err = r.store.FindNetworkSettingsByWorkerID(ctx, w.ID); err != nil {
			return err
		}
		if mounts, err = r.store.FindMountsByWorkerID(ctx, w.ID); err != nil {
			return err
		}
	}

	w.Ports = mergePorts(ports, c.Ports)
	w.HostConfig = mergeHostConfig(hostCfg, c)
	w.NetworkSettings = mergeNetworkSettings(settings, c.NetworkSettings)
	w.Mounts = mergeMounts(mounts, c.Mounts)
	w.SetOwner()
	return nil
}
