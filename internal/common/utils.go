package common

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dtnitsch/taxi-report/models"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const configKey = "config"

// NewLogger builds the JSON diagnostic logger on the app's error writer
// (stderr). --quiet drops everything below Error.
func NewLogger(c *cli.Context) *slog.Logger {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}

	var w io.Writer = os.Stderr
	if c.App != nil && c.App.ErrWriter != nil {
		w = c.App.ErrWriter
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

// LoadConfig reads the config named by --config (required to exist) or the
// default path (optional), and stores it on the app for the actions.
func LoadConfig(c *cli.Context) error {
	path := models.DefaultConfigPath
	required := false
	if c.IsSet("config") {
		path = c.String("config")
		required = true
	}

	cfg, err := models.LoadConfig(path, required)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %s", err), 1)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = make(map[string]interface{})
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

// Config returns the loaded config, or defaults if none was loaded.
func Config(c *cli.Context) *models.Config {
	if c.App != nil && c.App.Metadata != nil {
		if cfg, ok := c.App.Metadata[configKey].(*models.Config); ok {
			return cfg
		}
	}
	return models.NewConfig()
}

// StringOr returns the flag value when set, otherwise fallback.
func StringOr(c *cli.Context, flag, fallback string) string {
	if c.IsSet(flag) || fallback == "" {
		return c.String(flag)
	}
	return fallback
}

// WriteStructured marshals v as YAML or indented JSON.
func WriteStructured(w io.Writer, format models.OutputFormat, v interface{}) error {
	switch format {
	case models.OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	case models.OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return fmt.Errorf("unsupported structured format: %s", format)
}
