package config

import (
	"courier-map-service/internal/domain"
	"courier-map-service/internal/services"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration of the courier map service.
type Config struct {
	Port         string        `validate:"required,numeric"`
	DBPath       string        `validate:"required_without=DatabaseURL"`
	DatabaseURL  string
	SeedPath     string
	RouteID      int           `validate:"gt=0"`
	PollInterval time.Duration `validate:"gte=30s,lte=120s"`
	FetchTimeout time.Duration `validate:"gt=0"`
	LogLevel     string        `validate:"oneof=trace debug info warn error"`
	LogFormat    string        `validate:"oneof=json console"`
	Engine       EngineFile
}

// EngineFile holds the engine tunables, optionally read from YAML.
type EngineFile struct {
	GroupSize     int         `yaml:"group_size" validate:"gte=1"`
	MinZones      int         `yaml:"min_zones" validate:"gte=1"`
	MaxZones      int         `yaml:"max_zones" validate:"gtefield=MinZones"`
	Iterations    int         `yaml:"iterations" validate:"gte=1,lte=100"`
	Palette       []string    `yaml:"palette" validate:"min=1,dive,hexcolor"`
	StableSeeding bool        `yaml:"stable_seeding"`
	Bounds        *BoundsFile `yaml:"bounds" validate:"omitempty"`
}

type BoundsFile struct {
	MinLat float64 `yaml:"min_lat" validate:"gte=-90,lte=90"`
	MaxLat float64 `yaml:"max_lat" validate:"gte=-90,lte=90,gtefield=MinLat"`
	MinLon float64 `yaml:"min_lon" validate:"gte=-180,lte=180"`
	MaxLon float64 `yaml:"max_lon" validate:"gte=-180,lte=180,gtefield=MinLon"`
}

var validate = validator.New()

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func DefaultEngineFile() EngineFile {
	d := services.DefaultZoneConfig()
	return EngineFile{
		GroupSize:  d.GroupSize,
		MinZones:   d.MinZones,
		MaxZones:   d.MaxZones,
		Iterations: d.Iterations,
		Palette:    append([]string(nil), d.Palette...),
	}
}

// Load builds the configuration from the environment and the optional
// engine file named by ENGINE_CONFIG_PATH.
func Load() (Config, error) {
	cfg := Config{
		Port:        Get("PORT", "8080"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: Get("DATABASE_URL", ""),
		SeedPath:    Get("SEED_PATH", "data/seeds/packages.json"),
		LogLevel:    strings.ToLower(Get("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(Get("LOG_FORMAT", "json")),
		Engine:      DefaultEngineFile(),
	}

	var err error
	if cfg.RouteID, err = strconv.Atoi(Get("ROUTE_ID", "1")); err != nil {
		return Config{}, fmt.Errorf("load config: ROUTE_ID: %w", err)
	}
	if cfg.PollInterval, err = time.ParseDuration(Get("POLL_INTERVAL", "60s")); err != nil {
		return Config{}, fmt.Errorf("load config: POLL_INTERVAL: %w", err)
	}
	if cfg.FetchTimeout, err = time.ParseDuration(Get("FETCH_TIMEOUT", "10s")); err != nil {
		return Config{}, fmt.Errorf("load config: FETCH_TIMEOUT: %w", err)
	}

	if path := Get("ENGINE_CONFIG_PATH", ""); path != "" {
		if cfg.Engine, err = LoadEngineFile(path); err != nil {
			return Config{}, fmt.Errorf("load config: %w", err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// LoadEngineFile reads engine tunables from YAML; omitted keys keep defaults.
func LoadEngineFile(path string) (EngineFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return EngineFile{}, fmt.Errorf("load engine file %q: %w", path, err)
	}

	ef := DefaultEngineFile()
	if err := yaml.Unmarshal(b, &ef); err != nil {
		return EngineFile{}, fmt.Errorf("load engine file %q: parse yaml: %w", path, err)
	}
	if len(ef.Palette) == 0 {
		return EngineFile{}, errors.New("load engine file: palette must not be empty")
	}

	if err := validate.Struct(ef); err != nil {
		return EngineFile{}, fmt.Errorf("load engine file %q: %w", path, err)
	}

	return ef, nil
}

// EngineConfig converts the file form into the engine's configuration.
func (c Config) EngineConfig() services.EngineConfig {
	return c.Engine.EngineConfig()
}

func (e EngineFile) EngineConfig() services.EngineConfig {
	cfg := services.EngineConfig{
		Zones: services.ZoneConfig{
			GroupSize:     e.GroupSize,
			MinZones:      e.MinZones,
			MaxZones:      e.MaxZones,
			Iterations:    e.Iterations,
			Palette:       e.Palette,
			StableSeeding: e.StableSeeding,
		},
	}
	if e.Bounds != nil {
		cfg.Bounds = domain.CoordinateBounds{
			MinLat: e.Bounds.MinLat,
			MaxLat: e.Bounds.MaxLat,
			MinLon: e.Bounds.MinLon,
			MaxLon: e.Bounds.MaxLon,
		}
	}
	return cfg
}
