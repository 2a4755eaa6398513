package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DatasetFile is the full vehicle dataset written by gen_vehicles.
	DatasetFile = "vehicles_dataset.json"
	// ImageSearchFile is the photo sourcing worklist written by gen_vehicles.
	ImageSearchFile = "image_searches.json"
	// LeanFile is the reduced-field dataset.
	LeanFile = "vehicles_lean.json"
	// ImageMapFile maps image basenames to VINs.
	ImageMapFile = "image_map.json"
	// InventoryDBFile is the SQLite snapshot written by build_inventory_db.
	InventoryDBFile = "inventory.db"

	SourceDir = "image_sources/raw"
	PublicDir = "public/images"

	// ImageURLPrefix is prepended to derivative paths in the lean dataset.
	ImageURLPrefix = "/images"

	DetailWidth   = 1200
	ThumbWidth    = 320
	DetailQuality = 85
	ThumbQuality  = 80

	// DefaultConfigFile is read when present and --config is not given.
	DefaultConfigFile = "inventory.yaml"
)

// B2 credentials come from the environment; uploads are disabled when any is empty.
var (
	B2MasterKeyID = os.Getenv("B2_MASTER_KEY_ID")
	B2KeyID       = os.Getenv("B2_KEY_ID")
	B2AppKey      = os.Getenv("B2_APP_KEY")
	B2BucketName  = os.Getenv("B2_BUCKET_NAME")
)

// Settings holds the file locations and image parameters shared by the tools.
type Settings struct {
	Dataset     string `yaml:"dataset"`
	ImageSearch string `yaml:"image_searches"`
	Lean        string `yaml:"lean"`
	ImageMap    string `yaml:"image_map"`
	InventoryDB string `yaml:"inventory_db"`

	Images ImageSettings `yaml:"images"`
}

type ImageSettings struct {
	Source        string  `yaml:"source"`
	Public        string  `yaml:"public"`
	URLPrefix     string  `yaml:"url_prefix"`
	DetailWidth   int     `yaml:"detail_width"`
	ThumbWidth    int     `yaml:"thumb_width"`
	DetailQuality float32 `yaml:"detail_quality"`
	ThumbQuality  float32 `yaml:"thumb_quality"`
}

// Defaults returns the settings used when no config file overrides them.
func Defaults() Settings {
	return Settings{
		Dataset:     DatasetFile,
		ImageSearch: ImageSearchFile,
		Lean:        LeanFile,
		ImageMap:    ImageMapFile,
		InventoryDB: InventoryDBFile,
		Images: ImageSettings{
			Source:        SourceDir,
			Public:        PublicDir,
			URLPrefix:     ImageURLPrefix,
			DetailWidth:   DetailWidth,
			ThumbWidth:    ThumbWidth,
			DetailQuality: DetailQuality,
			ThumbQuality:  ThumbQuality,
		},
	}
}

// Load reads YAML overrides from path on top of Defaults. A missing file is
// only an error when explicit is true.
func Load(path string, explicit bool) (Settings, error) {
	s := Defaults()
	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return s, nil
		}
		return s, fmt.Errorf("failed to read config file at '%s': %w", path, err)
	}

	// Unmarshal into the defaults so absent keys keep their default value.
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := s.validate(); err != nil {
		return s, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return s, nil
}

func (s Settings) validate() error {
	if s.Images.DetailWidth <= 0 || s.Images.ThumbWidth <= 0 {
		return fmt.Errorf("image widths must be positive")
	}
	if q := s.Images.DetailQuality; q <= 0 || q > 100 {
		return fmt.Errorf("detail_quality must be in (0,100], got %v", q)
	}
	if q := s.Images.ThumbQuality; q <= 0 || q > 100 {
		return fmt.Errorf("thumb_quality must be in (0,100], got %v", q)
	}
	return nil
}

// B2Configured reports whether all credentials needed for uploads are set.
func B2Configured() bool {
	return B2MasterKeyID != "" && B2KeyID != "" && B2AppKey != "" && B2BucketName != ""
}
