package sqlops

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"docker-worker-mgr/config"
	clog "docker-worker-mgr/utils/log" //custom log

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

func MysqlConnection(mysqlConfig *config.DBConfig) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true&allowNativePasswords=true",
		mysqlConfig.User,
		mysqlConfig.Password,
		mysqlConfig.Host,
		mysqlConfig.Port,
		mysqlConfig.Database,
	)

	// DB 연결
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	// 연결 확인
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	clog.Info("MySQL connected", "host", mysqlConfig.Host, "database", mysqlConfig.Database)
	return db, nil
}

// SqliteConnection opens (creating if needed) an embedded database file. The
// pool is capped at one connection so writers never contend for the file lock.
func SqliteConnection(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA busy_timeout = 5000`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	clog.Info("SQLite opened", "path", path)
	return db, nil
}
