package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type Persistence struct {
	Driver        string        `yaml:"driver" validate:"required|in:file,badger,redis,memory"`
	FilePath      string        `yaml:"filePath"`
	BadgerDir     string        `yaml:"badgerDir"`
	RetryInterval time.Duration `yaml:"retryInterval" validate:"required|min:1"`
	Redis         RedisConfig   `yaml:"redis"`
	Breaker       BreakerConfig `yaml:"breaker"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
}

type BreakerConfig struct {
	FailureThreshold uint32        `yaml:"failureThreshold"`
	Timeout          time.Duration `yaml:"timeout"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type CatalogConfig struct {
	Source         string        `yaml:"source" validate:"required|in:file,mongo"`
	Path           string        `yaml:"path"`
	ReloadInterval time.Duration `yaml:"reloadInterval"`
	Mongo          MongoConfig   `yaml:"mongo"`
}

type StateConfig struct {
	UserTTL             time.Duration `yaml:"userTTL"`
	MaintenanceInterval time.Duration `yaml:"maintenanceInterval"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName     string
	Debug       bool
	Path        string
	Catalog     CatalogConfig `yaml:"catalog"`
	State       StateConfig   `yaml:"state"`
	WebServer   Server        `yaml:"webServer"`
	Persistence Persistence   `yaml:"persistence"`
	Logger      LoggerConfig  `yaml:"logger"`
	Cache       CacheConfig   `yaml:"cache"`
	Metrics     MetricsConfig `yaml:"metrics"`
}
