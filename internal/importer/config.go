package importer

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds bulk import settings.
type Config struct {
	DataDir   string `yaml:"data_dir"   env:"IMPORT_DATA_DIR"   env-default:"./Datas"`
	BatchSize int    `yaml:"batch_size" env:"IMPORT_BATCH_SIZE" env-default:"500"`
	Truncate  bool   `yaml:"truncate"   env:"IMPORT_TRUNCATE"   env-default:"true"`
	DryRun    bool   `yaml:"dry_run"    env:"IMPORT_DRY_RUN"`
}

// LoadConfig reads import configuration from a YAML file and environment
// variables. Priority: ENV > YAML > defaults (via env-default tags).
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("import config: file %s not found", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("import config: read %s: %w", path, err)
		}
		return &cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("import config: read env: %w", err)
	}
	return &cfg, nil
}
