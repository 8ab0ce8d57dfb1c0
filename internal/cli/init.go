package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/tabview/internal/paths"
	"github.com/mesh-intelligence/tabview/pkg/types"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Driver    string `yaml:"driver"`
	DSN       string `yaml:"dsn,omitempty"`
	StateFile string `yaml:"state_file,omitempty"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

func newInitCmd() *cobra.Command {
	var (
		driver string
		dsn    string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration and state directories",
		Long: `Init creates the configuration directory with a config.yaml and the
directory that holds the view state file. An existing config.yaml is left
untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !types.KnownDriver(driver) {
				return fmt.Errorf("%w %q (valid: sqlite, mysql, pgx, postgres)", types.ErrDriverUnknown, driver)
			}

			configDir, err := paths.ResolveConfigDir(flags.configDir)
			if err != nil {
				return fmt.Errorf("resolve config dir: %w", err)
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return fmt.Errorf("create config directory: %w", err)
			}

			configPath := filepath.Join(configDir, configFileExt)
			written, err := writeConfigIfMissing(configPath, configFile{
				Driver:    driver,
				DSN:       dsn,
				StateFile: flags.stateFile,
				LogLevel:  "warn",
				LogFormat: types.LogFormatText,
			})
			if err != nil {
				return fmt.Errorf("write config: %w", err)
			}

			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.StateFile), 0o755); err != nil {
				return fmt.Errorf("create state directory: %w", err)
			}

			out := cmd.OutOrStdout()
			if written {
				fmt.Fprintln(out, "wrote", configPath)
			} else {
				fmt.Fprintln(out, "kept", configPath)
			}
			fmt.Fprintln(out, "state file:", cfg.StateFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&driver, "driver", types.DriverSQLite, "relational driver stored in config.yaml")
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name stored in config.yaml")
	return cmd
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist. It reports whether it wrote the file.
func writeConfigIfMissing(path string, cfg configFile) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}
