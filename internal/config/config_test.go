package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/comps/internal/common"
	"github.com/Veraticus/comps/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "MyCompany", cfg.Company)
	assert.Equal(t, ',', cfg.DelimiterRune())
	assert.Equal(t, model.DefaultColumnMapping(), cfg.Columns)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `company: Lakeside Realty
delimiter: "|"
columns:
  sold_price: 7
output:
  format: xlsx
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("COMPS_COLUMNS_COUNTY", "3")

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "Lakeside Realty", cfg.Company)
	assert.Equal(t, '|', cfg.DelimiterRune())
	assert.Equal(t, 7, cfg.Columns.SoldPrice)
	assert.Equal(t, 3, cfg.Columns.County)
	assert.Equal(t, 14, cfg.Columns.SoldDate, "unset keys keep their defaults")
	assert.Equal(t, "xlsx", cfg.Output.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate  func(c *Config)
		name    string
		message string
	}{
		{
			name:    "empty company",
			mutate:  func(c *Config) { c.Company = "" },
			message: "Config.Company is required",
		},
		{
			name:    "negative column",
			mutate:  func(c *Config) { c.Columns.ZipCode = -1 },
			message: "Config.Columns.ZipCode must be greater than or equal to 0",
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Output.Format = "pdf" },
			message: "Config.Output.Format must be one of: csv, xlsx",
		},
		{
			name:    "multi-character delimiter",
			mutate:  func(c *Config) { c.Delimiter = ";;" },
			message: "Config.Delimiter must be a single character other than a quote",
		},
		{
			name:    "quote delimiter",
			mutate:  func(c *Config) { c.Delimiter = `"` },
			message: "Config.Delimiter must be a single character",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "trace" },
			message: "Config.Logging.Level must be one of: debug, info, warn, error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := Validate(&cfg)
			require.ErrorIs(t, err, common.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.message)
		})
	}

	cfg := Default()
	cfg.Delimiter = "\t"
	assert.NoError(t, Validate(&cfg))
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path, false))

	err := WriteDefault(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)
	require.NoError(t, WriteDefault(path, true))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())
	cfg, err := Load(v)
	require.NoError(t, err)

	want := Default()
	assert.Equal(t, &want, cfg)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("COMPS_TEST_DIR", "/data/mls")

	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "reports"), ExpandPath("~/reports"))
	assert.Equal(t, "/data/mls/sold.csv", ExpandPath("$COMPS_TEST_DIR/sold.csv"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("COMPS_DOTENV_PROBE=lake\n"), 0o600))
	t.Setenv("COMPS_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("COMPS_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "lake", os.Getenv("COMPS_DOTENV_PROBE"))
}
