package config

import (
	"fmt"
	"strings"

	"ncbi/fetcher/internal/domain"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Download DownloadConfig `mapstructure:"download"`
}

// TaxonomyConfig selects the taxonomic scope of a run. Exactly one of TaxID
// and TaxName must be set.
type TaxonomyConfig struct {
	TaxID      string `mapstructure:"tax_id"`
	TaxName    string `mapstructure:"tax_name"`
	NoChildren bool   `mapstructure:"no_children"`
	DumpDir    string `mapstructure:"dump_dir"`
}

// CatalogConfig selects the assembly summary and the row filter.
type CatalogConfig struct {
	Source         string   `mapstructure:"source"`
	SummaryPath    string   `mapstructure:"summary_path"`
	AssemblyLevels []string `mapstructure:"assembly_levels"`
}

// DownloadConfig holds output and transport configuration.
type DownloadConfig struct {
	Format               string `mapstructure:"format"`
	OutDir               string `mapstructure:"out_dir"`
	Parallel             int    `mapstructure:"parallel"`
	DryRun               bool   `mapstructure:"dry_run"`
	NoCache              bool   `mapstructure:"no_cache"`
	Timeout              int    `mapstructure:"timeout"`
	MaxRequestsPerSecond int    `mapstructure:"max_requests_per_second"`
	Proxy                string `mapstructure:"proxy"`
}

// Load loads configuration from YAML file with environment variable overrides
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("taxonomy.tax_id", "")
	viper.SetDefault("taxonomy.tax_name", "")
	viper.SetDefault("taxonomy.no_children", false)
	viper.SetDefault("taxonomy.dump_dir", "taxdump")

	viper.SetDefault("catalog.source", "refseq")
	viper.SetDefault("catalog.summary_path", "")
	viper.SetDefault("catalog.assembly_levels", []string{})

	viper.SetDefault("download.format", "fna")
	viper.SetDefault("download.out_dir", ".")
	viper.SetDefault("download.parallel", 1)
	viper.SetDefault("download.dry_run", false)
	viper.SetDefault("download.no_cache", false)
	viper.SetDefault("download.timeout", 60)
	viper.SetDefault("download.max_requests_per_second", 3)
	viper.SetDefault("download.proxy", "")
}

func (c *Config) validate() error {
	hasID := c.Taxonomy.TaxID != ""
	hasName := c.Taxonomy.TaxName != ""
	if hasID == hasName {
		return fmt.Errorf("exactly one of taxonomy.tax_id and taxonomy.tax_name must be set")
	}

	if c.Download.Parallel < 1 {
		return fmt.Errorf("download.parallel must be at least 1, got %d", c.Download.Parallel)
	}

	if _, err := domain.ParseFormat(c.Download.Format); err != nil {
		return err
	}

	source, err := domain.ParseSource(c.Catalog.Source)
	if err != nil {
		return err
	}
	if c.Catalog.SummaryPath != "" && source != domain.SourceNone {
		return fmt.Errorf("catalog.source and catalog.summary_path are mutually exclusive")
	}
	if c.Catalog.SummaryPath == "" && source == domain.SourceNone {
		return fmt.Errorf("catalog.summary_path is required when catalog.source is none")
	}

	return nil
}

// Format returns the validated output format.
func (c *Config) Format() domain.AssemblyFormat {
	format, _ := domain.ParseFormat(c.Download.Format)
	return format
}

// Source returns the validated assembly source.
func (c *Config) Source() domain.AssemblySource {
	source, _ := domain.ParseSource(c.Catalog.Source)
	return source
}
