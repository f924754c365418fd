// Package config loads perflab settings from config.yaml, the environment
// and .env files.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes viper from an optional explicit config file, a config.yaml
// in the working directory and PERFLAB_* environment variables.
func Load(cfgFile string) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("PERFLAB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// A missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("log_file", "")

	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("store.path", ".perflab.db")
	viper.SetDefault("store.dsn", "")

	viper.SetDefault("metrics.enabled", false)
	viper.SetDefault("metrics.port", 2112)

	viper.SetDefault("generate.samples", 10000)
	viper.SetDefault("repeat.duration", "10s")
	viper.SetDefault("repeat.threshold", 10.0)

	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#perflab")
}
