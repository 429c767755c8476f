package config

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode string `mapstructure:"mode"`

	// Platform application identity. Consumed by the platform client, the
	// core only passes the resolved values through.
	AppID                 string `mapstructure:"app_id"`
	AppSecret             string `mapstructure:"app_secret"`
	CertificateThumbprint string `mapstructure:"certificate_thumbprint"`

	ServiceDNSName string `mapstructure:"service_dns_name"`
	MediaDNSName   string `mapstructure:"media_dns_name"`

	BotInternalPort        int `mapstructure:"bot_internal_port"`
	BotExternalPort        int `mapstructure:"bot_external_port"`
	BotCallingInternalPort int `mapstructure:"bot_calling_internal_port"`
	MediaInternalPort      int `mapstructure:"media_internal_port"`
	MediaExternalPort      int `mapstructure:"media_external_port"`

	UseLocalDevSettings bool `mapstructure:"use_local_dev_settings"`

	TranscriptDir string `mapstructure:"transcript_dir"`
	TaskWorkers   int    `mapstructure:"task_workers"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("mode", "release")
	v.SetDefault("bot_internal_port", 9441)
	v.SetDefault("bot_external_port", 443)
	v.SetDefault("bot_calling_internal_port", 9442)
	v.SetDefault("media_internal_port", 8445)
	v.SetDefault("media_external_port", 20046)
	v.SetDefault("transcript_dir", "./transcripts")
	v.SetDefault("task_workers", 8)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Local dev runs plain HTTP behind a tunnel: the signaling port clients
	// see is 443 and the bot listens on the calling port directly.
	if cfg.UseLocalDevSettings {
		cfg.BotExternalPort = 443
		cfg.BotInternalPort = cfg.BotCallingInternalPort
	}

	return &cfg, nil
}
