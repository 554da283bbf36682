package sqlops

import (
	"fmt"
	"strings"
)

// workerColumns are the scalar columns written on every upsert, image_id first.
var workerColumns = []string{
	"image_id",
	"container_id",
	"name",
	"command",
	"image",
	"status",
	"state",
	"size_rw",
	"size_root_fs",
	"created_at",
	"started_at",
	"finished_at",
}

type Dialect struct {
	Name   string
	schema []string
	// upsertWorker inserts a worker row or updates the one holding the same image_id.
	upsertWorker string
}

var MySQL = Dialect{
	Name: "mysql",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS workers (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	image_id VARCHAR(255) NOT NULL,
	container_id VARCHAR(128) NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	command TEXT NOT NULL,
	image VARCHAR(512) NOT NULL DEFAULT '',
	status VARCHAR(255) NOT NULL DEFAULT '',
	state VARCHAR(64) NOT NULL DEFAULT '',
	size_rw BIGINT NOT NULL DEFAULT 0,
	size_root_fs BIGINT NOT NULL DEFAULT 0,
	created_at VARCHAR(40) NOT NULL,
	started_at VARCHAR(40) NULL,
	finished_at VARCHAR(40) NULL,
	UNIQUE KEY uq_workers_image_id (image_id),
	KEY idx_workers_container_id (container_id)
)`,
		`CREATE TABLE IF NOT EXISTS docker_ports (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	worker_id BIGINT NOT NULL,
	ip VARCHAR(64) NOT NULL DEFAULT '',
	private_port INT NOT NULL,
	public_port INT NOT NULL DEFAULT 0,
	type VARCHAR(16) NOT NULL DEFAULT '',
	KEY idx_docker_ports_worker (worker_id),
	CONSTRAINT fk_docker_ports_worker FOREIGN KEY (worker_id) REFERENCES workers (id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS docker_host_configs (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	worker_id BIGINT NOT NULL,
	network_mode VARCHAR(255) NOT NULL DEFAULT '',
	UNIQUE KEY uq_docker_host_configs_worker (worker_id),
	CONSTRAINT fk_docker_host_configs_worker FOREIGN KEY (worker_id) REFERENCES workers (id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS docker_network_settings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	worker_id BIGINT NOT NULL,
	UNIQUE KEY uq_docker_network_settings_worker (worker_id),
	CONSTRAINT fk_docker_network_settings_worker FOREIGN KEY (worker_id) REFERENCES workers (id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS docker_networks (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	network_settings_id BIGINT NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	aliases TEXT NOT NULL,
	gateway VARCHAR(64) NOT NULL DEFAULT '',
	endpoint_id VARCHAR(128) NOT NULL DEFAULT '',
	ip_address VARCHAR(64) NOT NULL DEFAULT '',
	ip_prefix_len INT NOT NULL DEFAULT 0,
	global_ipv6_address VARCHAR(64) NOT NULL DEFAULT '',
	global_ipv6_prefix_len INT NOT NULL DEFAULT 0,
	ipv6_gateway VARCHAR(64) NOT NULL DEFAULT '',
	mac_address VARCHAR(32) NOT NULL DEFAULT '',
	KEY idx_docker_networks_settings (network_settings_id),
	CONSTRAINT fk_docker_networks_settings FOREIGN KEY (network_settings_id) REFERENCES docker_network_settings (id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS docker_mounts (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	worker_id BIGINT NOT NULL,
	rw TINYINT(1) NOT NULL DEFAULT 0,
	name VARCHAR(255) NOT NULL DEFAULT '',
	mode VARCHAR(64) NOT NULL DEFAULT '',
	driver VARCHAR(128) NOT NULL DEFAULT '',
	destination VARCHAR(1024) NOT NULL DEFAULT '',
	source VARCHAR(1024) NOT NULL DEFAULT '',
	propagation VARCHAR(32) NOT NULL DEFAULT '',
	KEY idx_docker_mounts_worker (worker_id),
	CONSTRAINT fk_docker_mounts_worker FOREIGN KEY (worker_id) REFERENCES workers (id) ON DELETE CASCADE
)`,
	},
	upsertWorker: buildUpsert(
		"ON DUPLICATE KEY UPDATE",
		func(col string) string { return fmt.Sprintf("%s = VALUES(%s)", col, col) },
	),
}

var SQLite = Dialect{
	Name: "sqlite",
	schema: []string{
		`PRAGMA foreign_keys = ON`,
		`CREATE TABLE IF NOT EXISTS workers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	image_id TEXT NOT NULL UNIQUE,
	container_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	command TEXT NOT NULL DEFAULT '',
	image TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT '',
	state TEXT NOT NULL DEFAULT '',
	size_rw INTEGER NOT NULL DEFAULT 0,
	size_root_fs INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	started_at TEXT,
	finished_at TEXT
)`,
		`CREATE INDEX IF NOT EXISTS idx_workers_container_id ON workers (container_id)`,
		`CREATE TABLE IF NOT EXISTS docker_ports (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	worker_id INTEGER NOT NULL REFERENCES workers (id) ON DELETE CASCADE,
	ip TEXT NOT NULL DEFAULT '',
	private_port INTEGER NOT NULL,
	public_port INTEGER NOT NULL DEFAULT 0,
	type TEXT NOT NULL DEFAULT ''
)`,
		`CREATE INDEX IF NOT EXISTS idx_docker_ports_worker ON docker_ports (worker_id)`,
		`CREATE TABLE IF NOT EXISTS docker_host_configs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	worker_id INTEGER NOT NULL UNIQUE REFERENCES workers (id) ON DELETE CASCADE,
	network_mode TEXT NOT NULL DEFAULT ''
)`,
		`CREATE TABLE IF NOT EXISTS docker_network_settings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	worker_id INTEGER NOT NULL UNIQUE REFERENCES workers (id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS docker_networks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	network_settings_id INTEGER NOT NULL REFERENCES docker_network_settings (id) ON DELETE CASCADE,
	name TEXT NOT NULL DEFAULT '',
	aliases TEXT NOT NULL DEFAULT '[]',
	gateway TEXT NOT NULL DEFAULT '',
	endpoint_id TEXT NOT NULL DEFAULT '',
	ip_address TEXT NOT NULL DEFAULT '',
	ip_prefix_len INTEGER NOT NULL DEFAULT 0,
	global_ipv6_address TEXT NOT NULL DEFAULT '',
	global_ipv6_prefix_len INTEGER NOT NULL DEFAULT 0,
	ipv6_gateway TEXT NOT NULL DEFAULT '',
	mac_address TEXT NOT NULL DEFAULT ''
)`,
		`CREATE INDEX IF NOT EXISTS idx_docker_networks_settings ON docker_networks (network_settings_id)`,
		`CREATE TABLE IF NOT EXISTS docker_mounts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	worker_id INTEGER NOT NULL REFERENCES workers (id) ON DELETE CASCADE,
	rw INTEGER NOT NULL DEFAULT 0,
	name TEXT NOT NULL DEFAULT '',
	mode TEXT NOT NULL DEFAULT '',
	driver TEXT NOT NULL DEFAULT '',
	destination TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	propagation TEXT NOT NULL DEFAULT ''
)`,
		`CREATE INDEX IF NOT EXISTS idx_docker_mounts_worker ON docker_mounts (worker_id)`,
	},
	upsertWorker: buildUpsert(
		"ON CONFLICT (image_id) DO UPDATE SET",
		func(col string) string { return fmt.Sprintf("%s = excluded.%s", col, col) },
	),
}

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case MySQL.Name:
		return MySQL, nil
	case SQLite.Name:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported store driver %q", driver)
	}
}

func buildUpsert(clause string, assign func(col string) string) string {
	updates := make([]string, 0, len(workerColumns)-1)
	for _, col := range workerColumns[1:] {
		updates = append(updates, assign(col))
	}
	return fmt.Sprintf(
		"INSERT INTO workers (%s) VALUES (%s) %s %s",
		strings.Join(workerColumns, ", "),
		placeholders(len(workerColumns)),
		clause,
		strings.Join(updates, ", "),
	)
}
