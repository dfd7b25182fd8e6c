package config

import "fmt"

type ServerConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	Timezone string `mapstructure:"timezone"`
	// IngressSecret authenticates the lead-ingestion webhook via a shared
	// secret header, checked with a constant-time comparison at the
	// transport boundary before any payload reaches the engine.
	IngressSecret string `mapstructure:"ingress_secret"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Username        string `mapstructure:"username"`
	Password        string `mapstructure:"password"`
	Database        string `mapstructure:"database"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`
}

// GetDSN builds the driver-appropriate connection string. Driver is either
// "mysql" (default) or "postgres"; both support the row-level locking the
// fairness and counter stores rely on.
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			d.Host, d.Port, d.Username, d.Password, d.Database)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.Username, d.Password, d.Host, d.Port, d.Database)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// BroadcasterConfig controls the assignment-event Redis Pub/Sub fan-out.
type BroadcasterConfig struct {
	Channel string `mapstructure:"channel"`
}

// EngineConfig holds the engine.max_commit_retries setting. Nothing in
// the service reads MaxCommitRetries: a transient commit conflict
// (pointer/counter row deadlock) is not retried in process and reaches
// the HTTP client as a 409 Conflict.
type EngineConfig struct {
	MaxCommitRetries int `mapstructure:"max_commit_retries"`
}

// WorkerConfig controls the invariant auditor's schedule.
type WorkerConfig struct {
	AuditCronSpec string `mapstructure:"audit_cron_spec"`
}
