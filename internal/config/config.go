package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Store      Store
	Catalog    Catalog
	Limiter    Limiter
	Auth       AuthConfig
	Cache      Cache
	Uploader   Uploader
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"8080"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"4s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	CorsOrigins    []string      `env:"HTTP_CORS_ORIGINS" env-default:"http://localhost:3000" env-description:"allowed browser origins"`
}

// Store points at the remote document collection. The collection is a
// single flat namespace of city records addressed as
// <base_url>/<collection>/<id>.json, Firebase RTDB style.
type Store struct {
	BaseURL    string        `env:"STORE_BASE_URL" env-required:"true"`
	Collection string        `env:"STORE_COLLECTION" env-default:"cities"`
	Timeout    time.Duration `env:"STORE_TIMEOUT" env-default:"10s"`
	AuthToken  string        `env:"STORE_AUTH_TOKEN" env-default:"" env-description:"credential attached to every store request, empty disables"`
}

type Catalog struct {
	SnapshotTTL time.Duration `env:"CATALOG_SNAPSHOT_TTL" env-default:"30s" env-description:"in-memory normalized snapshot lifetime"`
	CacheTTL    time.Duration `env:"CATALOG_CACHE_TTL" env-default:"2m" env-description:"redis raw collection cache lifetime"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	Enabled bool `env:"AUTH_ENABLED" env-default:"false" env-description:"gate mutation routes behind bearer tokens"`
	JWT     JWTConfig
}

type JWTConfig struct {
	AccessTokenTTL  time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"15m"`
	RefreshTokenTTL time.Duration `env:"JWT_REFRESH_TOKEN_TTL" env-default:"240h"`
	SigningKey      string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-required:"true" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

// Uploader configures the image hosting collaborator. The catalog only
// consumes the hosted URL it returns.
type Uploader struct {
	CloudName    string        `env:"UPLOADER_CLOUD_NAME" env-default:""`
	UploadPreset string        `env:"UPLOADER_UPLOAD_PRESET" env-default:""`
	Timeout      time.Duration `env:"UPLOADER_TIMEOUT" env-default:"30s"`
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
