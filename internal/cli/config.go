package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"cardsmith/internal/content"
)

// FileConfig is the optional yaml config file. Set fields override the
// project's persisted settings for this invocation; zero fields leave the
// stored value in place.
type FileConfig struct {
	ExportTargetID   string `yaml:"export_target_id"`
	DownloadFileName string `yaml:"download_file_name"`
	SaveDelay        int    `yaml:"save_delay"`
	ExportDelay      int    `yaml:"export_delay"`
}

// LoadConfig reads a yaml config file. An empty path returns nil config.
func LoadConfig(path string) (*FileConfig, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyTo overlays the config's set fields onto settings.
func (c *FileConfig) ApplyTo(s content.Settings) content.Settings {
	if c == nil {
		return s
	}
	if c.ExportTargetID != "" {
		s.ExportTargetID = c.ExportTargetID
	}
	if c.DownloadFileName != "" {
		s.DownloadFileName = c.DownloadFileName
	}
	if c.SaveDelay > 0 {
		s.SaveDelay = c.SaveDelay
	}
	if c.ExportDelay > 0 {
		s.ExportDelay = c.ExportDelay
	}
	return s
}
