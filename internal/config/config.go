package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Pipeline is the full pipeline configuration. Column mappings are
// explicit {canonical_field: source_label} pairs supplied here rather than
// literals buried in logic, so a new dataset shape is a config edit.
type Pipeline struct {
	// Input files.
	CrimeFile string `mapstructure:"crime_file" yaml:"crime_file"`
	GeoFile   string `mapstructure:"geo_file" yaml:"geo_file"`

	// Candidate text encodings, tried in order.
	Encodings []string `mapstructure:"encodings" yaml:"encodings"`

	// WideLayout marks a crime table whose non-identifier columns are
	// region names (one column per region) needing a wide→long reshape.
	WideLayout bool `mapstructure:"wide_layout" yaml:"wide_layout"`

	// CrimeColumns maps canonical crime fields to source labels. Wide
	// layout needs category_major and category_minor; long layout also
	// needs region and count, with population optional.
	CrimeColumns map[string]string `mapstructure:"crime_columns" yaml:"crime_columns"`

	// GeoColumns maps canonical coordinate fields (jurisdiction, region,
	// latitude, longitude) to source labels. jurisdiction may be omitted
	// when the file is already scoped.
	GeoColumns map[string]string `mapstructure:"geo_columns" yaml:"geo_columns"`

	// Jurisdiction scoping for the coordinate table.
	Jurisdiction      string `mapstructure:"jurisdiction" yaml:"jurisdiction"`
	JurisdictionExact bool   `mapstructure:"jurisdiction_exact" yaml:"jurisdiction_exact"`

	// RegionPrefix is the administrative qualifier stripped from region
	// keys on both tables, e.g. "서울특별시".
	RegionPrefix string `mapstructure:"region_prefix" yaml:"region_prefix"`
}

// Load reads configuration from file, env, and defaults.
// Precedence: env > config file > defaults.
func Load(cfgFile string) (*Pipeline, error) {
	v := viper.New()
	v.SetEnvPrefix("SAFEMAP")
	v.AutomaticEnv()

	v.SetDefault("crime_file", "seoul_crime_data.csv")
	v.SetDefault("geo_file", "region_coords.csv")
	v.SetDefault("encodings", []string{"utf-8", "euc-kr", "windows-949"})
	v.SetDefault("wide_layout", true)
	v.SetDefault("crime_columns", map[string]string{
		"category_major": "범죄대분류",
		"category_minor": "범죄중분류",
	})
	v.SetDefault("geo_columns", map[string]string{
		"jurisdiction": "시도",
		"region":       "시군구",
		"latitude":     "위도",
		"longitude":    "경도",
	})
	v.SetDefault("jurisdiction", "서울")
	v.SetDefault("jurisdiction_exact", true)
	v.SetDefault("region_prefix", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".safemap")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Pipeline
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

// Save writes the configuration to cfgFile, or to ~/.safemap/config.yaml
// when cfgFile is empty. The write is atomic: temp file then rename.
func Save(c *Pipeline, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".safemap")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}
