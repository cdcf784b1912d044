package config

import (
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Store    StoreConfig    `yaml:"store" mapstructure:"store"`
	Pull     PullConfig     `yaml:"pull" mapstructure:"pull"`
	Clean    CleanConfig    `yaml:"clean" mapstructure:"clean"`
	Validate ValidateConfig `yaml:"validate" mapstructure:"validate"`
	Policy   Policy         `yaml:"policy" mapstructure:"policy"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// PullConfig configures the Outscraper data pull.
type PullConfig struct {
	APIKey      string   `yaml:"api_key" mapstructure:"api_key"`
	BaseURL     string   `yaml:"base_url" mapstructure:"base_url"`
	ResultsURL  string   `yaml:"results_url" mapstructure:"results_url"`
	Queries     []string `yaml:"queries" mapstructure:"queries"`
	Limit       int      `yaml:"limit" mapstructure:"limit"`
	PollSecs    int      `yaml:"poll_secs" mapstructure:"poll_secs"`
	MaxWaitSecs int      `yaml:"max_wait_secs" mapstructure:"max_wait_secs"`
}

// CleanConfig configures the cleaning phase directories.
type CleanConfig struct {
	RawDir string `yaml:"raw_dir" mapstructure:"raw_dir"`
	OutDir string `yaml:"out_dir" mapstructure:"out_dir"`
}

// ValidateConfig configures the website validation phase.
type ValidateConfig struct {
	OutDir      string `yaml:"out_dir" mapstructure:"out_dir"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// Timeout returns the per-probe timeout as a duration.
func (v ValidateConfig) Timeout() time.Duration {
	return time.Duration(v.TimeoutSecs) * time.Second
}

// Policy holds the keyword lists driving classification and the platform
// domains excluded from domain-based dedup. Lists are data, not logic: an
// empty list simply disables its rule.
type Policy struct {
	BigBoxRetailers     []string `yaml:"big_box_retailers" mapstructure:"big_box_retailers"`
	NationalChains      []string `yaml:"national_chains" mapstructure:"national_chains"`
	JunkRemovalBrands   []string `yaml:"junk_removal_brands" mapstructure:"junk_removal_brands"`
	NonDumpsterKeywords []string `yaml:"non_dumpster_keywords" mapstructure:"non_dumpster_keywords"`
	PlatformDomains     []string `yaml:"platform_domains" mapstructure:"platform_domains"`
}

// ServerConfig configures the read-only API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LISTINGS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "listings.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("pull.base_url", "https://api.outscraper.com/maps/search-v3")
	v.SetDefault("pull.results_url", "https://api.outscraper.cloud/requests")
	v.SetDefault("pull.limit", 400)
	v.SetDefault("pull.poll_secs", 15)
	v.SetDefault("pull.max_wait_secs", 600)
	v.SetDefault("pull.queries", []string{
		"dumpster rental",
		"roll off dumpster",
		"roll off container rental",
		"construction dumpster rental",
		"waste container rental",
	})
	v.SetDefault("clean.raw_dir", "data/raw")
	v.SetDefault("clean.out_dir", "data/cleaned")
	v.SetDefault("validate.out_dir", "data/validated")
	v.SetDefault("validate.concurrency", 50)
	v.SetDefault("validate.timeout_secs", 10)
	v.SetDefault("policy.big_box_retailers", []string{
		"home depot", "lowe's", "lowes", "menards", "ace hardware",
		"true value", "harbor freight", "northern tool",
	})
	v.SetDefault("policy.national_chains", []string{
		"waste management", "republic services", "waste connections",
		"advanced disposal", "casella", "gfl environmental",
		"waste industries", "rumpke", "waste pro",
	})
	v.SetDefault("policy.junk_removal_brands", []string{
		"junk removal", "junk hauling", "1-800-got-junk",
		"college hunks", "junkluggers", "junk king",
	})
	v.SetDefault("policy.non_dumpster_keywords", []string{
		"portable toilet", "porta potty", "porta-potty", "portaloo",
		"storage unit", "self storage", "mini storage",
		"moving company", "movers", "u-haul", "penske",
		"septic", "grease trap", "portable restroom",
	})
	v.SetDefault("policy.platform_domains", []string{
		"facebook.com", "yelp.com", "google.com",
	})

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// LoadPolicyFile replaces the policy lists with the contents of an external
// YAML file, so a different business vertical can run without code changes.
func LoadPolicyFile(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: read policy file %s", path)
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, eris.Wrapf(err, "config: parse policy file %s", path)
	}

	return &p, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
