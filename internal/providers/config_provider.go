package providers

import (
	"fmt"
	"path/filepath"
	"strings"
	"swiperank/internal/structures"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	// .env is optional; real environment variables take precedence over it.
	_ = godotenv.Load()

	filename := filepath.Base(flags.ConfigPath)
	viper.AddConfigPath(filepath.Dir(flags.ConfigPath))
	viper.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	viper.SetConfigType("yaml")

	viper.SetDefault("persistence.driver", "file")
	viper.SetDefault("persistence.retryInterval", "30s")
	viper.SetDefault("persistence.breaker.failureThreshold", 5)
	viper.SetDefault("persistence.breaker.timeout", "30s")
	viper.SetDefault("catalog.source", "file")
	viper.SetDefault("state.userTTL", "30m")
	viper.SetDefault("state.maintenanceInterval", "5m")
	viper.SetDefault("cache.ttl", "60s")

	viper.BindEnv("logger.level", "SWR_LOG_LEVEL")
	viper.BindEnv("persistence.driver", "SWR_STORE_DRIVER")
	viper.BindEnv("persistence.redis.addr", "SWR_REDIS_ADDR")
	viper.BindEnv("catalog.path", "SWR_CATALOG_PATH")
	viper.BindEnv("catalog.mongo.uri", "SWR_MONGO_URI")
	viper.BindEnv("cache.enabled", "SWR_CACHE_ENABLED")
	viper.BindEnv("cache.size", "SWR_CACHE_SIZE")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = viper.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "SwipeRankDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}
