package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	configfile "github.com/bnema/toolrental/internal/adapters/config/file"
	"github.com/bnema/toolrental/internal/adapters/random"
	summaryadapter "github.com/bnema/toolrental/internal/adapters/render/summary"
	tomlreport "github.com/bnema/toolrental/internal/adapters/report/toml"
	"github.com/bnema/toolrental/internal/application"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix        = "TOOLSIM"
	settingsName     = "settings"
	settingsType     = "toml"
	settingsDir      = "toolsim"
	logLevelKey      = "log.level"
	logFormatKey     = "log.format"
	defaultLogLevel  = "warn"
	defaultLogFormat = "text"
)

type reportWriter interface {
	Write(ctx context.Context, report application.Report) error
}

type app struct {
	settings        *viper.Viper
	service         *application.Service
	configPath      string
	summaryRenderer func(application.Report, summaryadapter.RenderOptions) (string, error)
	newReportWriter func(path string) (reportWriter, error)
}

func newApp() *app {
	return &app{
		settings:        newSettings(),
		summaryRenderer: summaryadapter.Render,
		newReportWriter: func(path string) (reportWriter, error) {
			return tomlreport.NewWriter(path)
		},
	}
}

func newSettings() *viper.Viper {
	settings := viper.New()
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	settings.AutomaticEnv()
	_ = settings.BindEnv(configfile.ConfigPathKey, envPrefix+"_CONFIG")

	settings.SetDefault(logLevelKey, defaultLogLevel)
	settings.SetDefault(logFormatKey, defaultLogFormat)

	return settings
}

func (a *app) bindPersistentFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("config", "", "Store configuration file (.toml or .json, default ./toolsim.toml)")
	flags.String("log-level", defaultLogLevel, "Log level: debug, info, warn, error")
	flags.String("log-format", defaultLogFormat, "Log format: text or json")

	_ = a.settings.BindPFlag(configfile.ConfigPathKey, flags.Lookup("config"))
	_ = a.settings.BindPFlag(logLevelKey, flags.Lookup("log-level"))
	_ = a.settings.BindPFlag(logFormatKey, flags.Lookup("log-format"))
}

// wire builds the service from the resolved settings. It runs once flags are
// parsed so that flag values take part in resolution.
func (a *app) wire(cmd *cobra.Command) error {
	if a.service != nil {
		return nil
	}

	if err := readSettingsFile(a.settings); err != nil {
		return err
	}

	logger, err := newLogger(cmd.ErrOrStderr(), a.settings.GetString(logLevelKey), a.settings.GetString(logFormatKey))
	if err != nil {
		return err
	}

	repo, err := configfile.NewRepository(a.settings)
	if err != nil {
		return fmt.Errorf("wire config repository: %w", err)
	}

	a.configPath = repo.Path()
	a.service = application.NewService(repo, random.Factory{}, logger)

	return nil
}

func readSettingsFile(settings *viper.Viper) error {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}

	settings.SetConfigName(settingsName)
	settings.SetConfigType(settingsType)
	settings.AddConfigPath(filepath.Join(configDir, settingsDir))

	if err := settings.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return fmt.Errorf("read settings file: %w", err)
		}
	}

	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}
