package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/praktikjakt/scb-match/pkg/types"
)

func init() {
	viper.SetDefault("registry.timeout", 30*time.Second)
	viper.SetDefault("registry.user_agent", "scb-match/0.1")
	viper.SetDefault("registry.rate_limit_delay", 500*time.Millisecond)
	viper.SetDefault("registry.max_retries", 5)
	viper.SetDefault("registry.backoff_base", 500*time.Millisecond)
	viper.SetDefault("registry.backoff_factor", 2.0)
	viper.SetDefault("match.base_threshold", 85)
	viper.SetDefault("store.db_path", "companies.db")
}

// pipelineConfig assembles the config from viper, secrets, and the
// command's flags (flags win when set).
func pipelineConfig(cmd *cobra.Command) types.PipelineConfig {
	cfg := types.PipelineConfig{
		Registry: types.RegistryConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("registry.timeout"),
				UserAgent: viper.GetString("registry.user_agent"),
			},
			BaseURL:        viper.GetString("registry.base_url"),
			CertFile:       secretDefault("scb-cert-file", viper.GetString("registry.cert_file")),
			KeyFile:        secretDefault("scb-key-file", viper.GetString("registry.key_file")),
			RateLimitDelay: viper.GetDuration("registry.rate_limit_delay"),
			MaxRetries:     viper.GetInt("registry.max_retries"),
			BackoffBase:    viper.GetDuration("registry.backoff_base"),
			BackoffFactor:  viper.GetFloat64("registry.backoff_factor"),
		},
		Match: types.MatchConfig{
			BaseThreshold: viper.GetInt("match.base_threshold"),
			OnlyTypes:     viper.GetStringSlice("match.only_types"),
		},
		Store: types.StoreConfig{
			DBPath: viper.GetString("store.db_path"),
		},
	}

	if cmd.Flags().Changed("db") {
		cfg.Store.DBPath, _ = cmd.Flags().GetString("db")
	}
	if cmd.Flags().Changed("cert") {
		cert, _ := cmd.Flags().GetString("cert")
		// A "cert.pem,key.pem" pair may be given in one flag.
		if c, k, ok := strings.Cut(cert, ","); ok {
			cfg.Registry.CertFile = strings.TrimSpace(c)
			cfg.Registry.KeyFile = strings.TrimSpace(k)
		} else {
			cfg.Registry.CertFile = cert
		}
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Match.BaseThreshold, _ = cmd.Flags().GetInt("min-score")
	}
	if cmd.Flags().Changed("only-type") {
		raw, _ := cmd.Flags().GetString("only-type")
		cfg.Match.OnlyTypes = nil
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cfg.Match.OnlyTypes = append(cfg.Match.OnlyTypes, t)
			}
		}
	}

	return cfg
}
