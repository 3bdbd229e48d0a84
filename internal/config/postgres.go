package config

import "time"

type Postgres struct {
	DSN             string        `env:"PG_DSN,notEmpty" json:"-"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME" envDefault:"5m"`
}

type Redis struct {
	Address            string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"`
	Username           string `env:"REDIS_USERNAME"`
	Password           string `env:"REDIS_PASSWORD" json:"-"`
	DatabaseNumber     int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize           int    `env:"REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConnections int    `env:"REDIS_MIN_IDLE_CONNS" envDefault:"1"`
	MaxIdleConnections int    `env:"REDIS_MAX_IDLE_CONNS" envDefault:"5"`
}
