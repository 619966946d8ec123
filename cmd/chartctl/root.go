package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cocreateceo/Vedic-Astro-sub002/internal/domain/chart"
	"github.com/cocreateceo/Vedic-Astro-sub002/internal/infra/chartcache"
	"github.com/cocreateceo/Vedic-Astro-sub002/pkg/logger"
)

// cliConfig holds defaults for chartctl. Values come from .chartctl.yaml,
// CHARTCTL_* env vars, and flags.
type cliConfig struct {
	UTCOffsetHours float64 `mapstructure:"offset"`
	Latitude       float64 `mapstructure:"lat"`
	Longitude      float64 `mapstructure:"lng"`
	Output         string  `mapstructure:"output"`
	LogLevel       string  `mapstructure:"log_level"`
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	root := &cobra.Command{
		Use:           "chartctl",
		Short:         "Compute Lahiri sidereal birth charts from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	root.PersistentFlags().String("config", "", "config file (default .chartctl.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level written to stderr")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newComputeCmd(v), newCheckCmd(v))
	return root
}

func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".chartctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	v.SetEnvPrefix("CHARTCTL")
	v.AutomaticEnv()

	v.SetDefault("offset", 0.0)
	v.SetDefault("output", "table")

	// Only an explicitly named config file is required to exist.
	if err := v.ReadInConfig(); err != nil && cfgFile != "" {
		return fmt.Errorf("read config %s: %w", cfgFile, err)
	}
	return nil
}

func loadConfig(v *viper.Viper) (cliConfig, error) {
	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

func newChartService(cfg cliConfig) chart.Service {
	log := logger.NewWithWriter(os.Stderr, cfg.LogLevel).With("component", "chartctl")
	return chart.NewService(chart.Config{}, chartcache.NewMemoryStore(), log)
}
