// Package command implements the jsonvalue command line.
package command

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config keys.
const (
	keyDialect     = "dialect"
	keyConcurrency = "concurrency"
	keyLogLevel    = "log_level"
	keyDSN         = "dsn"
)

// JSONValueCommand holds the state shared by the jsonvalue commands.
type JSONValueCommand struct {
	v      *viper.Viper
	fs     afero.Fs
	logger *slog.Logger
}

// GetRootCommand creates and returns the root command with all subcommands.
func GetRootCommand() *cobra.Command {
	return newRootCommand(afero.NewOsFs())
}

// newRootCommand creates the root command reading request, config and
// .env files from fs.
func newRootCommand(fs afero.Fs) *cobra.Command {
	jc := &JSONValueCommand{v: viper.New(), fs: fs, logger: slog.Default()}
	var configFile string
	root := &cobra.Command{
		Use:   "jsonvalue",
		Short: "Compile json_value calls into dialect specific SQL",
		Long: `jsonvalue renders portable json_value calls for cockroachdb, postgres,
mysql, mariadb, sqlite and sqlserver, and refuses calls a dialect cannot
express faithfully.

Configuration is read from .jsonvalue.yaml in the working directory or the
home directory, or from the file given by --config. Every setting can be
overridden by a JSONVALUE_ prefixed environment variable, which may also be
set in a .env file in the working directory.`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flag errors have been reported by now.
			cmd.SilenceUsage = true
			return jc.init(configFile)
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (default .jsonvalue.yaml)")
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
	_ = jc.v.BindPFlag(keyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(
		jc.parseCommand(),
		jc.profilesCommand(),
		jc.renderCommand(),
		jc.execCommand(),
	)
	return root
}

// Execute runs the root command and reports the exit code.
func Execute() int {
	root := GetRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return 1
	}
	return 0
}

func (jc *JSONValueCommand) init(configFile string) error {
	if err := jc.loadDotEnv(".env"); err != nil {
		return err
	}
	v := jc.v
	v.SetFs(jc.fs)
	v.SetEnvPrefix("JSONVALUE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault(keyConcurrency, 4)
	v.SetDefault(keyLogLevel, "warn")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".jsonvalue")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(keyLogLevel))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", v.GetString(keyLogLevel), err)
	}
	jc.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if used := v.ConfigFileUsed(); used != "" {
		jc.logger.Debug("loaded config", "file", used)
	}
	return nil
}

// loadDotEnv sets the variables of the given .env file that are not
// already set in the environment.
func (jc *JSONValueCommand) loadDotEnv(name string) error {
	f, err := jc.fs.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()
	env, err := godotenv.Parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	for k, val := range env {
		if os.Getenv(k) == "" {
			if err := os.Setenv(k, val); err != nil {
				return err
			}
		}
	}
	return nil
}
