package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Transport string

const (
	TransportStdio      Transport = "stdio"
	TransportSSE        Transport = "sse"
	TransportStreamable Transport = "streamable"
)

type Config struct {
	DatabaseDSN           string    `mapstructure:"database_dsn"`
	ConnectTimeoutSeconds int       `mapstructure:"connect_timeout_seconds"`
	StatementTimeoutMs    int       `mapstructure:"statement_timeout_ms"`
	AppName               string    `mapstructure:"app_name"`
	Transport             Transport `mapstructure:"transport"`
	HTTPAddr              string    `mapstructure:"http_addr"`
	HTTPPort              int       `mapstructure:"http_port"`
	HTTPPath              string    `mapstructure:"http_path"`
	AllowDelete           bool      `mapstructure:"allow_delete"`
	ApprovalSecret        string    `mapstructure:"approval_secret"`
	MaxRows               int       `mapstructure:"max_rows"`
	EnableCaching         bool      `mapstructure:"enable_caching"`
	CacheTTLSeconds       int       `mapstructure:"cache_ttl_seconds"`
	AuditsPerMinute       int       `mapstructure:"audits_per_minute"`
	LogLevel              string    `mapstructure:"log_level"`
}

// StorageEnabled reports whether audit persistence is configured.
func (c Config) StorageEnabled() bool { return c.DatabaseDSN != "" }

func defaults(v *viper.Viper) {
	v.SetDefault("database_dsn", "")
	v.SetDefault("connect_timeout_seconds", 5)
	v.SetDefault("statement_timeout_ms", 30000)
	v.SetDefault("app_name", "seolens-mcp")
	v.SetDefault("transport", string(TransportStdio))
	v.SetDefault("http_addr", "127.0.0.1")
	v.SetDefault("http_port", 8750)
	v.SetDefault("http_path", "/mcp")
	v.SetDefault("allow_delete", false)
	v.SetDefault("approval_secret", "")
	v.SetDefault("max_rows", 200)
	v.SetDefault("enable_caching", true)
	v.SetDefault("cache_ttl_seconds", 30)
	v.SetDefault("audits_per_minute", 60)
	v.SetDefault("log_level", "info")
}

func Load() (Config, error) {
	v := viper.New()
	defaults(v)
	v.SetEnvPrefix("SEOLENS_MCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flags override (parse early to locate config file)
	fs := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	var cfgPathFlag string
	fs.StringVarP(&cfgPathFlag, "config", "c", "", "Config file path (yaml|json|toml)")
	fs.String("database-dsn", "", "Audit storage DSN (postgres://…); empty disables persistence")
	fs.Int("connect-timeout-seconds", 5, "Connection timeout in seconds")
	fs.Int("statement-timeout-ms", 30000, "Statement timeout in milliseconds")
	fs.String("app-name", "seolens-mcp", "Application name")
	fs.String("transport", string(TransportStdio), "Transport: stdio|sse|streamable")
	fs.String("http-addr", "127.0.0.1", "HTTP listen address (sse/streamable)")
	fs.Int("http-port", 8750, "HTTP listen port (sse/streamable)")
	fs.String("http-path", "/mcp", "HTTP endpoint path (sse/streamable)")
	fs.Bool("allow-delete", false, "Allow the delete_audit tool")
	fs.String("approval-secret", "", "Approval secret (required if allow-delete)")
	fs.Int("max-rows", 200, "Maximum rows returned by list tools")
	fs.Bool("enable-caching", true, "Enable report read caching")
	fs.Int("cache-ttl-seconds", 30, "Cache TTL in seconds")
	fs.Int("audits-per-minute", 60, "run_audit rate limit per minute (0 = unlimited)")
	fs.String("log-level", "info", "Log level")

	_ = fs.Parse(os.Args[1:])

	// Config file resolution
	cfgPath := cfgPathFlag
	if cfgPath == "" {
		cfgPath = os.Getenv("SEOLENS_MCP_CONFIG")
	}
	if cfgPath != "" {
		if err := readConfigFile(v, cfgPath); err != nil {
			return Config{}, err
		}
	} else {
		_ = readDefaultConfig(v) // best-effort
	}

	// Flags override config
	_ = v.BindPFlags(fs)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validate(cfg Config) error {
	switch cfg.Transport {
	case TransportStdio, TransportSSE, TransportStreamable:
	default:
		return fmt.Errorf("config: transport must be one of [%s,%s,%s]", TransportStdio, TransportSSE, TransportStreamable)
	}
	if cfg.AllowDelete && cfg.ApprovalSecret == "" {
		return errors.New("config: approval_secret is required when allow_delete=true")
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		return errors.New("config: connect_timeout_seconds must be > 0")
	}
	if cfg.StatementTimeoutMs <= 0 {
		return errors.New("config: statement_timeout_ms must be > 0")
	}
	if cfg.MaxRows <= 0 {
		return errors.New("config: max_rows must be > 0")
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return errors.New("config: http_port must be in (0,65535]")
	}
	if cfg.AuditsPerMinute < 0 {
		return errors.New("config: audits_per_minute must be >= 0")
	}
	return nil
}

func readConfigFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	return nil
}

func readDefaultConfig(v *viper.Viper) error {
	paths := defaultConfigCandidates()
	exts := []string{"yaml", "yml", "json", "toml"}
	for _, base := range paths {
		for _, ext := range exts {
			candidate := base + "." + ext
			if _, err := os.Stat(candidate); err == nil {
				v.SetConfigFile(candidate)
				if err := v.ReadInConfig(); err != nil {
					return fmt.Errorf("read default config %s: %w", candidate, err)
				}
				return nil
			}
		}
	}
	return nil
}

func defaultConfigCandidates() []string {
	var out []string
	cwd, _ := os.Getwd()
	if cwd != "" {
		out = append(out,
			filepath.Join(cwd, "seolens-mcp"),
			filepath.Join(cwd, "config", "seolens-mcp"),
		)
	}
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			xdg = filepath.Join(home, ".config")
		}
	}
	if xdg != "" {
		out = append(out, filepath.Join(xdg, "seolens-mcp", "config"))
	}
	return out
}
