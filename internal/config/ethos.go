package config

import "time"

type CacheBackend string

const (
	CacheBackendMemory CacheBackend = "memory"
	CacheBackendRedis  CacheBackend = "redis"
)

type Ethos struct {
	BaseURL        string        `env:"ETHOS_BASE_URL" envDefault:"https://api.ethos.network/api/v2"`
	ClientHeader   string        `env:"ETHOS_CLIENT_HEADER" envDefault:"trustrace@v1.0.0"`
	RequestTimeout time.Duration `env:"ETHOS_REQUEST_TIMEOUT" envDefault:"10s"`
	CacheTTL       time.Duration `env:"ETHOS_CACHE_TTL" envDefault:"1h"`
	CacheBackend   CacheBackend  `env:"ETHOS_CACHE_BACKEND" envDefault:"memory"`
	LogFieldMaxLen int           `env:"ETHOS_LOG_FIELD_MAX_LEN" envDefault:"2048"`
}
