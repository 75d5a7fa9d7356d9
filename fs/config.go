// Package fs provides file-based storage for source configurations and
// downloaded chapters.
package fs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/novelsrc"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
type Format string

// Supported configuration formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf returns the format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", novelsrc.Errorf(novelsrc.EINVALID, "unsupported config format %q: use .json, .yaml or .yml", filepath.Ext(path))
}

// LoadConfig reads and validates a configuration file. The format follows
// the file extension; unknown fields are rejected in both formats.
func LoadConfig(path string) (*novelsrc.SourceConfig, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, novelsrc.Errorf(novelsrc.ENOTFOUND, "config file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}

	return DecodeConfig(data, format)
}

// DecodeConfig parses and validates a configuration in the given format.
func DecodeConfig(data []byte, format Format) (*novelsrc.SourceConfig, error) {
	if format == FormatJSON {
		return novelsrc.DecodeSourceConfig(data)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg novelsrc.SourceConfig
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, novelsrc.Errorf(novelsrc.EINVALID, "invalid source config: empty document")
		}
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "invalid source config: %v", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EncodeConfig serializes a configuration in the given format.
func EncodeConfig(cfg *novelsrc.SourceConfig, format Format) ([]byte, error) {
	if format == FormatJSON {
		return novelsrc.EncodeSourceConfig(cfg)
	}
	if cfg == nil {
		return nil, novelsrc.Errorf(novelsrc.EINVALID, "nil source config")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveConfig validates cfg and writes it to path, creating parent
// directories as needed.
func SaveConfig(path string, cfg *novelsrc.SourceConfig) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if cfg == nil {
		return novelsrc.Errorf(novelsrc.EINVALID, "nil source config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := EncodeConfig(cfg, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
