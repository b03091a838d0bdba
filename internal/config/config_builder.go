package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects partial configs and merges them in priority order:
// defaults, file, env, flags. A later non-zero field overrides an earlier one.
type configBuilder struct {
	base     *StructuredConfig
	file     *StructuredConfig
	sources  []*StructuredConfig
	err      error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		sources: make([]*StructuredConfig, 0, 3),
	}
}

func (b *configBuilder) withDefaults() *configBuilder {
	b.base = defaults()
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	if err := loadDotEnv(); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	envCfg := &StructuredConfig{}
	if err := parseEnv(envCfg); err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.sources = append(b.sources, envCfg)
	return b
}

func (b *configBuilder) withServerFlags(args []string) *configBuilder {
	flags, err := ParseServerFlags(args)
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("error parsing flags: %w", err))
		return b
	}

	b.sources = append(b.sources, flags)
	return b
}

// withOverrides adds a config produced by another flag parser (the CLI).
func (b *configBuilder) withOverrides(cfg *StructuredConfig) *configBuilder {
	if cfg != nil {
		b.sources = append(b.sources, cfg)
	}
	return b
}

// withFile parses the config file named by the last source that sets one.
// It must run after the sources that may name the file.
func (b *configBuilder) withFile() *configBuilder {
	var path string
	for _, cfg := range b.sources {
		if cfg.ConfigFilePath != "" {
			path = cfg.ConfigFilePath
		}
	}

	if path == "" {
		return b
	}

	fileCfg, err := parseFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}
	b.file = fileCfg

	return b
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	ordered := make([]*StructuredConfig, 0, len(b.sources)+2)
	if b.base != nil {
		ordered = append(ordered, b.base)
	}
	if b.file != nil {
		ordered = append(ordered, b.file)
	}
	ordered = append(ordered, b.sources...)

	config := new(StructuredConfig)
	for _, cfg := range ordered {
		if err := mergo.Merge(config, cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return config, nil
}
