package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/UnknownOlympus/meridian/internal/geocoding"
	"github.com/UnknownOlympus/meridian/internal/mst"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DatasetKind names one of the supported disaster datasets.
type DatasetKind string

const (
	Earthquake   DatasetKind = "earthquake"
	FloodCyclone DatasetKind = "flood_cyclone"
)

// Source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// ErrUnknownDataset is returned when the dataset choice is not one of the known kinds.
var ErrUnknownDataset = errors.New("unknown dataset")

// ParseDataset resolves a dataset name case-insensitively.
func ParseDataset(name string) (DatasetKind, error) {
	kind := DatasetKind(strings.ToLower(strings.TrimSpace(name)))
	switch kind {
	case Earthquake, FloodCyclone:
		return kind, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownDataset, name, Earthquake, FloodCyclone)
	}
}

// Config holds the configuration settings for a map build.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Dataset: The dataset to render.
// - Datasets: The file path of every dataset kind.
// - Source: Where records come from (csv, postgres).
// - Table: The Postgres table read by the postgres source.
// - OutputDir, OutputFormat: Where and how the map artifact is written.
// - Zoom: Initial map zoom.
// - MSTMethod: Spanning tree algorithm (kruskal, prim).
// - Workers: Number of goroutines computing edge weights.
// - ServePort: Port for serving the artifact and metrics after the run, 0 disables it.
// - Geocoder: Optional coordinate backfill for rows without coordinates.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env          string
	Dataset      DatasetKind
	Datasets     map[DatasetKind]string
	Source       string
	Table        string
	OutputDir    string
	OutputFormat string
	Zoom         int
	MSTMethod    string
	Workers      int
	ServePort    int
	Geocoder     GeocoderConfig
	Database     PostgresConfig
}

// GeocoderConfig selects the provider used to backfill missing coordinates.
type GeocoderConfig struct {
	Type       string // none, google, nominatim
	APIKey     string // required by google
	RateLimit  int    // requests per second, 0 keeps the provider default
	Region     string // region bias, e.g. "in"
	AddrPrefix string // prepended to every place label for more accurate geocoding
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// DatasetPath returns the file of the selected dataset.
func (c *Config) DatasetPath() string {
	return c.Datasets[c.Dataset]
}

// TableName returns the Postgres table of the selected dataset.
func (c *Config) TableName() string {
	if c.Table != "" {
		return c.Table
	}

	return string(c.Dataset)
}

// Load builds the configuration from the command line, the environment and an optional dotenv
// file. Flags take precedence over MERIDIAN_* variables, which take precedence over defaults.
// Variables from the dotenv file never override the environment.
func Load(args []string) (*Config, error) {
	flags := pflag.NewFlagSet("meridian", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.String("dataset", "", "dataset to render: earthquake or flood_cyclone")
	flags.String("output", "", "directory for the map artifact")
	flags.String("format", "", "map artifact format: html or geojson")
	flags.Int("serve", 0, "serve the artifact and metrics on this port after the run")
	envFile := flags.String("env-file", ".env", "dotenv file with MERIDIAN_* and DB_* variables")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if err := loadDotEnv(*envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetEnvPrefix("MERIDIAN")
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("dataset", string(Earthquake))
	v.SetDefault("earthquake_path", "dataset/Earthquake_India_2023.csv")
	v.SetDefault("flood_cyclone_path", "dataset/Floods_Cyclones_India_2023.csv")
	v.SetDefault("source", SourceCSV)
	v.SetDefault("output_dir", ".")
	v.SetDefault("output_format", "html")
	v.SetDefault("zoom", "5")
	v.SetDefault("mst_method", "kruskal")
	v.SetDefault("workers", "1")
	v.SetDefault("serve_port", "0")
	v.SetDefault("geocoder", "none")
	v.SetDefault("geocoder_rate", "0")
	v.SetDefault("geocoder_region", "in")
	v.SetDefault("db.port", "5432")

	for key, env := range map[string]string{
		"db.host":     "DB_HOST",
		"db.port":     "DB_PORT",
		"db.username": "DB_USERNAME",
		"db.password": "DB_PASSWORD",
		"db.name":     "DB_NAME",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	for key, flag := range map[string]string{
		"dataset":       "dataset",
		"output_dir":    "output",
		"output_format": "format",
		"serve_port":    "serve",
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	dataset, err := ParseDataset(v.GetString("dataset"))
	if err != nil {
		return nil, err
	}

	zoom, err := intValue(v, "zoom")
	if err != nil {
		return nil, err
	}
	workers, err := intValue(v, "workers")
	if err != nil {
		return nil, err
	}
	servePort, err := intValue(v, "serve_port")
	if err != nil {
		return nil, err
	}
	rateLimit, err := intValue(v, "geocoder_rate")
	if err != nil {
		return nil, err
	}

	source := strings.ToLower(v.GetString("source"))
	if source != SourceCSV && source != SourcePostgres {
		return nil, fmt.Errorf("unknown source %q, must be %s or %s", source, SourceCSV, SourcePostgres)
	}

	method := strings.ToLower(v.GetString("mst_method"))
	switch mst.Method(method) {
	case mst.MethodKruskal, mst.MethodPrim:
	default:
		return nil, fmt.Errorf("%w: %q, must be %s or %s", mst.ErrUnknownMethod, method, mst.MethodKruskal, mst.MethodPrim)
	}

	geocoder := strings.ToLower(v.GetString("geocoder"))
	switch geocoding.ProviderType(geocoder) {
	case geocoding.ProviderTypeNone, geocoding.ProviderTypeGoogle, geocoding.ProviderTypeNominatim:
	default:
		return nil, fmt.Errorf("unknown geocoder %q, must be %s, %s or %s", geocoder,
			geocoding.ProviderTypeNone, geocoding.ProviderTypeGoogle, geocoding.ProviderTypeNominatim)
	}

	return &Config{
		Env:     v.GetString("env"),
		Dataset: dataset,
		Datasets: map[DatasetKind]string{
			Earthquake:   v.GetString("earthquake_path"),
			FloodCyclone: v.GetString("flood_cyclone_path"),
		},
		Source:       source,
		Table:        v.GetString("table"),
		OutputDir:    v.GetString("output_dir"),
		OutputFormat: strings.ToLower(v.GetString("output_format")),
		Zoom:         zoom,
		MSTMethod:    method,
		Workers:      workers,
		ServePort:    servePort,
		Geocoder: GeocoderConfig{
			Type:       geocoder,
			APIKey:     v.GetString("geocoder_key"),
			RateLimit:  rateLimit,
			Region:     v.GetString("geocoder_region"),
			AddrPrefix: v.GetString("address_prefix"),
		},
		Database: PostgresConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetString("db.port"),
			User:     v.GetString("db.username"),
			Password: v.GetString("db.password"),
			Name:     v.GetString("db.name"),
		},
	}, nil
}

// intValue parses an integer key strictly; viper's GetInt would turn garbage into zero.
func intValue(v *viper.Viper, key string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s from configuration, must be an integer", key)
	}

	return value, nil
}

// loadDotEnv exports the variables of a dotenv file that are not already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	dotenv := viper.New()
	dotenv.SetConfigFile(path)
	dotenv.SetConfigType("env")
	if err := dotenv.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	for _, key := range dotenv.AllKeys() {
		name := strings.ToUpper(key)
		if _, exists := os.LookupEnv(name); exists {
			continue
		}
		if err := os.Setenv(name, dotenv.GetString(key)); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
	}

	return nil
}
