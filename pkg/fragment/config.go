package fragment

import (
	"errors"
	"io"
	"maps"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk layout of a pool file.
type Config struct {
	Template Template        `yaml:"template"`
	Pools    map[string]Pool `yaml:"pools"`
}

// Decode reads a YAML pool file.
func Decode(r io.Reader) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Config{}, errors.Join(ErrInvalidConfig, errors.New("empty document"))
		}
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Merge returns a new Config whose pools contain base entries followed by
// the extra entries. A non-empty extra template replaces the base template.
func Merge(base, extra Config) Config {
	out := Config{
		Template: base.Template,
		Pools:    make(map[string]Pool, len(base.Pools)+len(extra.Pools)),
	}
	if len(extra.Template) > 0 {
		out.Template = extra.Template
	}
	maps.Copy(out.Pools, base.Pools)
	for name, entries := range extra.Pools {
		if len(entries) == 0 {
			continue
		}
		merged := make(Pool, 0, len(out.Pools[name])+len(entries))
		merged = append(merged, out.Pools[name]...)
		merged = append(merged, entries...)
		out.Pools[name] = merged
	}
	return out
}

// NewFromConfig builds a Generator from a decoded Config.
func NewFromConfig(cfg Config, opts ...Option) (*Generator, error) {
	return New(cfg.Template, cfg.Pools, opts...)
}
