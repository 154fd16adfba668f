package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aweris/svo/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "svo",
	Short: "Sparse voxel octree CLI",
	Long:  "CLI for inspecting octant ids and walking sparse voxel octrees.",

	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Init()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ~/.config/svo/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error or disabled")
	rootCmd.PersistentFlags().Int("concurrency", 0, "maximum parallel workers (default: 4)")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("concurrency", rootCmd.PersistentFlags().Lookup("concurrency"))
}

func initConfig() {
	if cfg := rootCmd.PersistentFlags().Lookup("config").Value.String(); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(configDir())
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SVO")
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "warn")
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("walk.depth", 2)
	viper.SetDefault("walk.order", "bfs")
	viper.SetDefault("walk.extent", 1.0)

	viper.ReadInConfig()
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "svo")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "svo")
	}
	return ".svo"
}

func getConcurrency() int {
	if n := viper.GetInt("concurrency"); n > 0 {
		return n
	}
	return 4
}
