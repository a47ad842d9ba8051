// Package config holds the appshell settings, which come from defaults, an optional TOML file and then the command line
package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	// DefaultMountID is the id of the host document element the application is attached to
	DefaultMountID = "app"
	// DefaultRoot is the name the root component definition is registered under
	DefaultRoot = "App"
	// DefaultAddr is where serve listens
	DefaultAddr = ":3000"
)

// Config is the appshell runtime configuration
type Config struct {
	MountID  string
	Root     string
	Manifest string
	Host     string
	Addr     string
	Title    string
}

type fileConfig struct {
	MountID  string `toml:"mount_id"`
	Root     string `toml:"root"`
	Manifest string `toml:"manifest"`
	Host     string `toml:"host"`
	Addr     string `toml:"addr"`
	Title    string `toml:"title"`
}

// Default returns the built in configuration
func Default() Config {
	return Config{
		MountID: DefaultMountID,
		Root:    DefaultRoot,
		Addr:    DefaultAddr,
		Title:   "appshell",
	}
}

// Load applies the keys set in a TOML file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrapf(err, "load config %v", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) != 0 {
		return Config{}, errors.Errorf("unknown config key %q in %v", undecoded[0].String(), path)
	}
	if meta.IsDefined("mount_id") {
		cfg.MountID = strings.TrimPrefix(strings.TrimSpace(raw.MountID), "#")
	}
	if meta.IsDefined("root") {
		cfg.Root = strings.TrimSpace(raw.Root)
	}
	if meta.IsDefined("manifest") {
		cfg.Manifest = strings.TrimSpace(raw.Manifest)
	}
	if meta.IsDefined("host") {
		cfg.Host = strings.TrimSpace(raw.Host)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("title") {
		cfg.Title = raw.Title
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid config %v", path)
	}
	return cfg, nil
}

// Validate checks the fields the bootstrap sequence depends on
func (Config Config) Validate() error {
	if Config.MountID == "" {
		return errors.New("mount id is empty")
	}
	if strings.ContainsAny(Config.MountID, " \t\n#") {
		return errors.Errorf("mount id %q is not a valid element id", Config.MountID)
	}
	if Config.Root == "" {
		return errors.New("root component name is empty")
	}
	return nil
}
