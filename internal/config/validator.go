package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Validate checks configuration values after Load and reports every problem
// it finds in one error.
func Validate() error {
	var problems []string

	switch t := strings.ToLower(viper.GetString("store.type")); t {
	case "", "sqlite", "sqlite3":
	case "postgres", "postgresql":
		if viper.GetString("store.dsn") == "" {
			problems = append(problems, "store.dsn is required when store.type is postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("store.type must be sqlite or postgres, got: %s", t))
	}

	if port := viper.GetInt("metrics.port"); port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("metrics.port must be in 1..65535, got: %d", port))
	}

	if d := viper.GetDuration("repeat.duration"); d <= 0 {
		problems = append(problems, fmt.Sprintf("repeat.duration must be positive, got: %v", d))
	}

	if th := viper.GetFloat64("repeat.threshold"); th < 0 {
		problems = append(problems, fmt.Sprintf("repeat.threshold must not be negative, got: %v", th))
	}

	if n := viper.GetInt("generate.samples"); n <= 0 {
		problems = append(problems, fmt.Sprintf("generate.samples must be positive, got: %d", n))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
