package config

import (
	_ "embed"
	"errors"
	"os"
	"strings"

	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	werrors "github.com/arthur-debert/waylandify/pkg/errors"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "WAYLANDIFY_"

//go:embed embedded/defaults.toml
var defaultConfig []byte

//go:embed embedded/config.toml
var userConfigTemplate []byte

// envSettings are the keys that may be set from the environment. Other
// WAYLANDIFY_ variables (directory overrides) are not configuration keys.
var envSettings = map[string]bool{
	"backup": true,
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// DefaultContent returns the commented configuration written by init.
func DefaultContent() string {
	return string(userConfigTemplate)
}

// Load reads the configuration file at path and validates it.
//
// Sources are layered in order: embedded defaults, the file, WAYLANDIFY_
// environment variables, then overrides (typically from command-line flags).
// A missing file is an ErrConfigLoad error, invalid TOML is ErrConfigParse and
// a configuration that decodes but does not make sense is ErrConfigInvalid.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrInternal, "failed to load embedded defaults")
	}

	// 2. User config file, read straight from disk by koanf's file provider
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, werrors.Newf(werrors.ErrConfigLoad,
				"configuration file not found at %s (run `waylandify init` to create one)", path).
				WithDetail("path", path)
		}
		return nil, werrors.Wrapf(err, werrors.ErrConfigLoad, "cannot access configuration file %s", path).
			WithDetail("path", path)
	}
	content, err := file.Provider(path).ReadBytes()
	if err != nil {
		return nil, werrors.Wrapf(err, werrors.ErrConfigLoad, "failed to read configuration file %s", path).
			WithDetail("path", path)
	}
	if err := k.Load(&rawBytesProvider{bytes: content}, toml.Parser()); err != nil {
		return nil, werrors.Wrapf(err, werrors.ErrConfigParse, "failed to parse configuration file %s", path).
			WithDetail("path", path)
	}

	// 3. Environment
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !envSettings[key] {
			return ""
		}
		return key
	}), nil)
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrConfigLoad, "failed to load environment variables")
	}

	// 4. Overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, werrors.Wrap(err, werrors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, werrors.Wrapf(err, werrors.ErrConfigParse, "failed to decode configuration file %s", path).
			WithDetail("path", path)
	}

	// 6. Validate
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("programs", len(cfg.Programs)).
		Int("flagSets", len(cfg.FlagSets)).
		Bool("backup", cfg.Backup).
		Msg("Configuration loaded")

	return &cfg, nil
}
