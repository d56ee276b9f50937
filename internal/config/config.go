package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/model"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. COMPS_COLUMNS_SOLD_PRICE.
const EnvPrefix = "COMPS"

// ErrConfigExists is returned when WriteDefault would overwrite a file.
var ErrConfigExists = errors.New("config file already exists")

// Config is the complete application configuration.
type Config struct {
	Company   string              `mapstructure:"company" validate:"required"`
	Delimiter string              `mapstructure:"delimiter" validate:"required,delimiter"`
	Output    Output              `mapstructure:"output"`
	Logging   Logging             `mapstructure:"logging"`
	Columns   model.ColumnMapping `mapstructure:"columns"`
}

// Output controls where reports are written.
type Output struct {
	Dir    string `mapstructure:"dir"`
	Format string `mapstructure:"format" validate:"oneof=csv xlsx"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// DelimiterRune returns the configured field delimiter.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// OutputDir returns the output directory with ~ and $VARS expanded.
func (c *Config) OutputDir() string {
	return ExpandPath(c.Output.Dir)
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Company:   "MyCompany",
		Delimiter: ",",
		Columns:   model.DefaultColumnMapping(),
		Output:    Output{Dir: ".", Format: "csv"},
		Logging:   Logging{Level: "info", Format: "console"},
	}
}

// SetDefaults registers every key with its default so that viper resolves
// environment overrides for all of them.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("company", d.Company)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("output.dir", d.Output.Dir)
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	c := d.Columns
	v.SetDefault("columns.listing_company", c.ListingCompany)
	v.SetDefault("columns.property_type", c.PropertyType)
	v.SetDefault("columns.days_on_market", c.DaysOnMarket)
	v.SetDefault("columns.sold_date", c.SoldDate)
	v.SetDefault("columns.list_price", c.ListPrice)
	v.SetDefault("columns.sold_price", c.SoldPrice)
	v.SetDefault("columns.municipality", c.Municipality)
	v.SetDefault("columns.county", c.County)
	v.SetDefault("columns.zip_code", c.ZipCode)
	v.SetDefault("columns.selling_company", c.SellingCompany)
	v.SetDefault("columns.body_of_water", c.BodyOfWater)
	v.SetDefault("columns.condo_name", c.CondoName)
}

// BindEnv makes viper read COMPS_* variables, mapping dots to underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	v := validator.New()
	if err := v.RegisterValidation("delimiter", isDelimiter); err != nil {
		return fmt.Errorf("failed to register validator: %w", err)
	}

	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidConfig, strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "delimiter":
		return fmt.Sprintf("%s must be a single character other than a quote", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// isDelimiter accepts exactly one rune that is not a quote or line break.
func isDelimiter(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && r != '"' && r != '\n' && r != '\r'
}

// DefaultPath returns $HOME/.config/comps/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "comps", "config.yaml"), nil
}

// WriteDefault writes the default configuration as YAML to path. An existing
// file is only replaced when overwrite is set.
func WriteDefault(path string, overwrite bool) error {
	if _, err := os.Stat(path); err == nil && !overwrite {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
