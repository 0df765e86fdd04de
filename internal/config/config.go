package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Cron        CronConfig        `mapstructure:"cron"`
	Clanker     ClankerConfig     `mapstructure:"clanker"`
	DexScreener DexScreenerConfig `mapstructure:"dexscreener"`
	Neynar      NeynarConfig      `mapstructure:"neynar"`
	Pinata      PinataConfig      `mapstructure:"pinata"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Sync        SyncConfig        `mapstructure:"sync"`
	Chat        ChatConfig        `mapstructure:"chat"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	TokenSync string `mapstructure:"token_sync"`
}

type ClankerConfig struct {
	BaseURL         string        `mapstructure:"base_url"`
	APIKey          string        `mapstructure:"api_key"`
	Timeout         time.Duration `mapstructure:"timeout"`
	RatePerMinute   int           `mapstructure:"rate_per_minute"`
	DeployerAddress string        `mapstructure:"deployer_address"`
}

type DexScreenerConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute"`
}

type NeynarConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerMinute int           `mapstructure:"rate_per_minute"`
	ProfileTTL    time.Duration `mapstructure:"profile_ttl"`
}

type PinataConfig struct {
	UploadURL  string        `mapstructure:"upload_url"`
	JWT        string        `mapstructure:"jwt"`
	GatewayURL string        `mapstructure:"gateway_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

type CacheConfig struct {
	TokensTTL      time.Duration `mapstructure:"tokens_ttl"`
	TrendingTTL    time.Duration `mapstructure:"trending_ttl"`
	DexScreenerTTL time.Duration `mapstructure:"dexscreener_ttl"`
	CleanupEvery   time.Duration `mapstructure:"cleanup_every"`
}

type SyncConfig struct {
	TargetFID      int64         `mapstructure:"target_fid"`
	PageLimit      int           `mapstructure:"page_limit"`
	PollerEnabled  bool          `mapstructure:"poller_enabled"`
	PollInterval   time.Duration `mapstructure:"poll_interval"`
	MaxPollBackoff time.Duration `mapstructure:"max_poll_backoff"`
}

type ChatConfig struct {
	MaxMessageLen int `mapstructure:"max_message_len"`
	PageLimit     int `mapstructure:"page_limit"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.token_sync", "@every 5m")
	v.SetDefault("clanker.base_url", "https://www.clanker.world/api")
	v.SetDefault("clanker.timeout", "15s")
	v.SetDefault("clanker.rate_per_minute", 120)
	v.SetDefault("clanker.deployer_address", "0x23fc5f7179d8aaf18d3f8a85175160c33fc7cbc7")
	v.SetDefault("dexscreener.base_url", "https://api.dexscreener.com")
	v.SetDefault("dexscreener.timeout", "10s")
	v.SetDefault("dexscreener.rate_per_minute", 300)
	v.SetDefault("neynar.base_url", "https://api.neynar.com")
	v.SetDefault("neynar.timeout", "10s")
	v.SetDefault("neynar.rate_per_minute", 300)
	v.SetDefault("neynar.profile_ttl", "1h")
	v.SetDefault("pinata.upload_url", "https://uploads.pinata.cloud/v3/files")
	v.SetDefault("pinata.gateway_url", "gateway.pinata.cloud")
	v.SetDefault("pinata.timeout", "30s")
	v.SetDefault("cache.tokens_ttl", "1s")
	v.SetDefault("cache.trending_ttl", "1s")
	v.SetDefault("cache.dexscreener_ttl", "30s")
	v.SetDefault("cache.cleanup_every", "1m")
	v.SetDefault("sync.target_fid", 1049503)
	v.SetDefault("sync.page_limit", 100)
	v.SetDefault("sync.poller_enabled", false)
	v.SetDefault("sync.poll_interval", "15s")
	v.SetDefault("sync.max_poll_backoff", "60s")
	v.SetDefault("chat.max_message_len", 500)
	v.SetDefault("chat.page_limit", 100)

	// Secrets have no defaults and may have no config-file entry, so Unmarshal
	// would never see their env values without an explicit binding.
	for _, key := range []string{"db.dsn", "clanker.api_key", "neynar.api_key", "pinata.jwt"} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, err
		}
	}

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate rejects configurations that would otherwise fall back to baked-in
// secret literals. Secrets must come from the config file or environment.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DB.DSN) == "" {
		return fmt.Errorf("config: db.dsn is required")
	}
	if strings.TrimSpace(c.Clanker.APIKey) == "" {
		return fmt.Errorf("config: clanker.api_key is required")
	}
	if c.Sync.TargetFID <= 0 {
		return fmt.Errorf("config: sync.target_fid must be positive")
	}
	return nil
}
