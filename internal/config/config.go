// Package config loads the settings of the statemod tool from defaults,
// an optional YAML file, STATEMOD_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iudanet/statemod/internal/fixedformat"
	"github.com/iudanet/statemod/internal/listfile"
	"github.com/iudanet/statemod/internal/models"
	"github.com/iudanet/statemod/internal/statemod"
)

// EnvPrefix is the prefix of environment overrides, e.g. STATEMOD_LOG_LEVEL.
const EnvPrefix = "STATEMOD"

// ErrInvalidSettings is returned when loaded settings fail validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds all configuration.
type Settings struct {
	Comments    CommentSettings    `mapstructure:"comments" yaml:"comments"`
	Encoding    string             `mapstructure:"encoding" yaml:"encoding"`
	DelayTables DelayTableSettings `mapstructure:"delaytables" yaml:"delaytables"`
	Diversions  DiversionSettings  `mapstructure:"diversions" yaml:"diversions"`
	ListFile    ListFileSettings   `mapstructure:"listfile" yaml:"listfile"`
	Workspace   WorkspaceSettings  `mapstructure:"workspace" yaml:"workspace"`
	Manifest    ManifestSettings   `mapstructure:"manifest" yaml:"manifest"`
	Log         LogSettings        `mapstructure:"log" yaml:"log"`
}

// CommentSettings are the comment and header markers of data files.
type CommentSettings struct {
	Marker string `mapstructure:"marker" yaml:"marker"`
	Header string `mapstructure:"header" yaml:"header"`
}

// DelayTableSettings control reading and writing delay tables.
type DelayTableSettings struct {
	// Interv is the values count: negative means per record, -100 means fractions
	Interv    int  `mapstructure:"interv" yaml:"interv"`
	Monthly   bool `mapstructure:"monthly" yaml:"monthly"`
	Precision int  `mapstructure:"precision" yaml:"precision"`
}

// DiversionSettings control reading and writing diversion stations.
type DiversionSettings struct {
	YearType string `mapstructure:"yeartype" yaml:"yeartype"`
	DailyID  bool   `mapstructure:"dailyid" yaml:"dailyid"`
}

// ListFileSettings control delimited list files.
type ListFileSettings struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// WorkspaceSettings locate the workspace databases.
type WorkspaceSettings struct {
	Bolt    string `mapstructure:"bolt" yaml:"bolt"`
	Catalog string `mapstructure:"catalog" yaml:"catalog"`
}

// ManifestSettings control manifest signing.
type ManifestSettings struct {
	Secret string        `mapstructure:"secret" yaml:"secret"`
	TTL    time.Duration `mapstructure:"ttl" yaml:"ttl"`
}

// LogSettings control diagnostics.
type LogSettings struct {
	Level string `mapstructure:"level" yaml:"level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("comments.marker", fixedformat.DefaultCommentMarker)
	v.SetDefault("comments.header", fixedformat.DefaultHeaderMarker)
	v.SetDefault("encoding", "utf-8")
	v.SetDefault("delaytables.interv", -1)
	v.SetDefault("delaytables.monthly", true)
	v.SetDefault("delaytables.precision", 2)
	v.SetDefault("diversions.yeartype", models.YearCalendar.String())
	v.SetDefault("diversions.dailyid", true)
	v.SetDefault("listfile.delimiter", listfile.DefaultDelimiter)
	v.SetDefault("workspace.bolt", "statemod-workspace.db")
	v.SetDefault("workspace.catalog", "statemod-catalog.db")
	v.SetDefault("manifest.secret", "")
	v.SetDefault("manifest.ttl", time.Duration(0))
	v.SetDefault("log.level", "info")
}

// Load reads settings. An empty path skips the config file; a path that
// does not exist is an error. Flags, when given, take precedence over the
// file and the environment.
func Load(path string, flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"log-level": "log.level",
	"encoding":  "encoding",
	"delimiter": "listfile.delimiter",
	"interv":    "delaytables.interv",
	"monthly":   "delaytables.monthly",
	"precision": "delaytables.precision",
	"bolt":      "workspace.bolt",
	"catalog":   "workspace.catalog",
	"secret":    "manifest.secret",
	"ttl":       "manifest.ttl",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("error binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Validate checks values that could not be checked by type.
func (s *Settings) Validate() error {
	var errs []error

	if s.Comments.Marker == "" {
		errs = append(errs, errors.New("comments.marker cannot be empty"))
	}
	if _, err := fixedformat.LookupEncoding(s.Encoding); err != nil {
		errs = append(errs, fmt.Errorf("encoding: %w", err))
	}
	if s.DelayTables.Precision < 0 {
		errs = append(errs, errors.New("delaytables.precision cannot be negative"))
	}
	if _, err := models.ParseYearType(s.Diversions.YearType); err != nil {
		errs = append(errs, fmt.Errorf("diversions.yeartype: %w", err))
	}
	if len([]rune(s.ListFile.Delimiter)) != 1 {
		errs = append(errs, fmt.Errorf("listfile.delimiter must be one character, got %q", s.ListFile.Delimiter))
	}
	if _, err := s.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, errors.Join(errs...))
	}
	return nil
}

// LogLevel parses log.level.
func (s *Settings) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.Log.Level)); err != nil {
		return level, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// YearType parses diversions.yeartype.
func (s *Settings) YearType() models.YearType {
	yt, _ := models.ParseYearType(s.Diversions.YearType)
	return yt
}

// ReaderOptions returns the codec options shared by every reader and writer.
func (s *Settings) ReaderOptions(logger *slog.Logger) fixedformat.Options {
	opts := fixedformat.Options{
		Logger:         logger,
		Encoding:       s.Encoding,
		CommentMarkers: []string{s.Comments.Marker},
	}
	if s.Comments.Header != "" {
		opts.HeaderMarkers = []string{s.Comments.Header}
	}
	return opts
}

// CodecOptions returns StateMod codec options bound to ds.
func (s *Settings) CodecOptions(ds *models.DataSet, logger *slog.Logger) statemod.Options {
	return statemod.Options{
		DataSet:    ds,
		Options:    s.ReaderOptions(logger),
		UseDailyID: s.Diversions.DailyID,
	}
}

// DelayTableOptions returns delay table codec options bound to ds.
func (s *Settings) DelayTableOptions(ds *models.DataSet, logger *slog.Logger) statemod.DelayTableOptions {
	return statemod.DelayTableOptions{
		Options:   s.CodecOptions(ds, logger),
		Monthly:   s.DelayTables.Monthly,
		Interv:    s.DelayTables.Interv,
		Precision: s.DelayTables.Precision,
	}
}

// ListOptions returns list file options.
func (s *Settings) ListOptions(logger *slog.Logger) statemod.ListOptions {
	return statemod.ListOptions{
		Options:   s.ReaderOptions(logger),
		Delimiter: s.ListFile.Delimiter,
	}
}

// Marshal encodes the settings as YAML.
func (s *Settings) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	return data, nil
}

// WriteDefault writes a config file with the default settings. An existing
// file is not overwritten.
func WriteDefault(path string) error {
	v := viper.New()
	setDefaults(v)

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return fmt.Errorf("failed to unmarshal defaults: %w", err)
	}

	data, err := settings.Marshal()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return f.Close()
}
