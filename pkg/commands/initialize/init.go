// Package initialize creates the default waylandify configuration.
package initialize

import (
	"path/filepath"

	"github.com/arthur-debert/waylandify/pkg/config"
	"github.com/arthur-debert/waylandify/pkg/errors"
	"github.com/arthur-debert/waylandify/pkg/logging"
	"github.com/arthur-debert/waylandify/pkg/types"
)

// Options defines the options for the Init command.
type Options struct {
	FS types.FS
	// ConfigPath is where the configuration file is written.
	ConfigPath string
}

// Init writes the default configuration to ConfigPath unless a file is
// already there. An existing file is left untouched and reported with
// Created set to false.
func Init(opts Options) (*types.InitResult, error) {
	log := logging.GetLogger("commands.initialize")
	log.Debug().Str("command", "Init").Str("path", opts.ConfigPath).Msg("Executing command")

	if opts.ConfigPath == "" {
		return nil, errors.New(errors.ErrInvalidInput, "config path cannot be empty")
	}

	result := &types.InitResult{ConfigPath: opts.ConfigPath}

	if _, err := opts.FS.Stat(opts.ConfigPath); err == nil {
		log.Warn().Str("path", opts.ConfigPath).Msg("Config file already exists, skipping")
		return result, nil
	}

	dir := filepath.Dir(opts.ConfigPath)
	if err := opts.FS.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}

	if err := opts.FS.WriteFile(opts.ConfigPath, []byte(config.DefaultContent()), 0644); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", opts.ConfigPath).
			WithDetail("path", opts.ConfigPath)
	}

	log.Info().Str("path", opts.ConfigPath).Msg("Written config file")
	result.Created = true
	return result, nil
}
