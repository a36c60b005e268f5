package config

const (
	envRedisAddr     = "REDIS_ADDR"
	envRedisPassword = "REDIS_PASSWORD"
	envRedisDB       = "REDIS_DB"
	envKeyPrefix     = "CACHE_KEY_PREFIX"

	defaultRedisAddr = "localhost:6379"
	defaultKeyPrefix = "in_play"
)

// RedisConfig controls the cache sink connection and key layout.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

func loadRedis() RedisConfig {
	return RedisConfig{
		Addr:      envOrDefault(envRedisAddr, defaultRedisAddr),
		Password:  envOrDefault(envRedisPassword, ""),
		DB:        intEnvOrDefaultAllowZero(envRedisDB, 0),
		KeyPrefix: envOrDefault(envKeyPrefix, defaultKeyPrefix),
	}
}
