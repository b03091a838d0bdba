package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors [StructuredConfig] for JSON and YAML files. Durations
// are written as strings such as "30s".
type fileConfig struct {
	App struct {
		Version        string `json:"version" yaml:"version"`
		ServerKey      string `json:"server_key" yaml:"server_key"`
		ArgonTime      uint32 `json:"argon_time" yaml:"argon_time"`
		ArgonMemoryKiB uint32 `json:"argon_memory_kib" yaml:"argon_memory_kib"`
		ArgonThreads   uint8  `json:"argon_threads" yaml:"argon_threads"`
		BackupDir      string `json:"backup_dir" yaml:"backup_dir"`
		LogDir         string `json:"log_dir" yaml:"log_dir"`
		LogLevel       string `json:"log_level" yaml:"log_level"`
	} `json:"app" yaml:"app"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db" yaml:"db"`
		Registry struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"registry" yaml:"registry"`
	} `json:"storage" yaml:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
		RateLimit      float64  `json:"rate_limit" yaml:"rate_limit"`
		RateBurst      int      `json:"rate_burst" yaml:"rate_burst"`
		PublicURL      string   `json:"public_url" yaml:"public_url"`
	} `json:"server" yaml:"server"`

	Adapter struct {
		BaseURL        string   `json:"base_url" yaml:"base_url"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter" yaml:"adapter"`

	SMTP struct {
		Host           string `json:"host" yaml:"host"`
		Port           int    `json:"port" yaml:"port"`
		SenderEmail    string `json:"sender_email" yaml:"sender_email"`
		SenderPassword string `json:"sender_password" yaml:"sender_password"`
	} `json:"smtp" yaml:"smtp"`
}

// parseFile reads a JSON or YAML config file, chosen by extension.
func parseFile(path string) (*StructuredConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &fc)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedConfigFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return fc.toStructured(), nil
}

func (fc *fileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:        fc.App.Version,
			ServerKey:      fc.App.ServerKey,
			ArgonTime:      fc.App.ArgonTime,
			ArgonMemoryKiB: fc.App.ArgonMemoryKiB,
			ArgonThreads:   fc.App.ArgonThreads,
			BackupDir:      fc.App.BackupDir,
			LogDir:         fc.App.LogDir,
			LogLevel:       fc.App.LogLevel,
		},
		Storage: Storage{
			DB:       DB{DSN: fc.Storage.DB.DSN},
			Registry: DB{DSN: fc.Storage.Registry.DSN},
		},
		Server: Server{
			HTTPAddress:    fc.Server.HTTPAddress,
			RequestTimeout: time.Duration(fc.Server.RequestTimeout),
			RateLimit:      fc.Server.RateLimit,
			RateBurst:      fc.Server.RateBurst,
			PublicURL:      fc.Server.PublicURL,
		},
		Adapter: Adapter{
			BaseURL:        fc.Adapter.BaseURL,
			RequestTimeout: time.Duration(fc.Adapter.RequestTimeout),
		},
		SMTP: SMTP{
			Host:           fc.SMTP.Host,
			Port:           fc.SMTP.Port,
			SenderEmail:    fc.SMTP.SenderEmail,
			SenderPassword: fc.SMTP.SenderPassword,
		},
	}
}

// Duration is a wrapper around time.Duration that unmarshals from strings
// like "1h" or "30s" in both JSON and YAML. Bare numbers are nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	if tmp, err := time.ParseDuration(s); err == nil {
		*d = Duration(tmp)
		return nil
	}

	var n int64
	if err := node.Decode(&n); err != nil {
		return fmt.Errorf("invalid duration %q", s)
	}
	*d = Duration(time.Duration(n))
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
