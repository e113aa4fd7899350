package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
)

// EnvPrefix prefixes environment variables that provide flag defaults.
const EnvPrefix = "SWATCH_"

// envName returns the environment variable for a flag, e.g. seed-mode -> SWATCH_SEED_MODE.
func envName(flag string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv sets every flag not given on the command line from its
// environment variable, if present. Flags set this way count as changed.
func applyEnv(flags *pflag.FlagSet) error {
	var errs []string
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			return
		}
		value, ok := os.LookupEnv(envName(f.Name))
		if !ok || value == "" {
			return
		}
		if err := flags.Set(f.Name, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", envName(f.Name), err))
		}
	})

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
