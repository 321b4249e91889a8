package config

import (
	"os"
	"strings"

	"bigcompany-analysis/internal/apperror"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"

	FormatText = "text"
	FormatJSON = "json"

	DefaultFile = "employees.csv"
	DefaultPort = "8080"
)

type Config struct {
	Source      string
	FilePath    string
	DatabaseURL string
	Format      string
	Port        string
	Verbose     bool
}

func Load() (Config, error) {
	source := strings.ToLower(strings.TrimSpace(os.Getenv("ANALYZER_SOURCE")))
	if source == "" {
		source = SourceCSV
	}

	filePath := os.Getenv("ANALYZER_FILE")
	if filePath == "" {
		filePath = DefaultFile
	}

	format := strings.ToLower(strings.TrimSpace(os.Getenv("ANALYZER_FORMAT")))
	if format == "" {
		format = FormatText
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = DefaultPort
	}

	cfg := Config{
		Source:      source,
		FilePath:    filePath,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Format:      format,
		Port:        port,
	}
	if err := cfg.validateChoices(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the final configuration after command-line overrides.
func (c Config) Validate() error {
	if err := c.validateChoices(); err != nil {
		return err
	}

	switch c.Source {
	case SourceCSV:
		if strings.TrimSpace(c.FilePath) == "" {
			return apperror.New(apperror.CodeConfig, "data file path required")
		}
	case SourcePostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return apperror.New(apperror.CodeConfig, "DATABASE_URL required when source is postgres")
		}
	}

	if strings.TrimSpace(c.Port) == "" {
		return apperror.New(apperror.CodeConfig, "port must not be empty")
	}
	return nil
}

func (c Config) validateChoices() error {
	if c.Source != SourceCSV && c.Source != SourcePostgres {
		return apperror.Newf(apperror.CodeConfig, "source must be one of: %s, %s (got %q)", SourceCSV, SourcePostgres, c.Source)
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		return apperror.Newf(apperror.CodeConfig, "format must be one of: %s, %s (got %q)", FormatText, FormatJSON, c.Format)
	}
	return nil
}
