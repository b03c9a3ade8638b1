package breakdown

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds batch breakdown pipeline settings.
type Config struct {
	ProjectID string `yaml:"project_id"  env:"BREAKDOWN_PROJECT_ID"`
	// ScriptID narrows the run to one script. Empty means every script in
	// the project.
	ScriptID  string `yaml:"script_id"   env:"BREAKDOWN_SCRIPT_ID"`
	OutputDir string `yaml:"output_dir"  env:"BREAKDOWN_OUTPUT_DIR" env-default:"./breakdown-output"`
	APIKey    string `yaml:"api_key"     env:"BREAKDOWN_API_KEY"`
	Model     string `yaml:"model"       env:"BREAKDOWN_MODEL"      env-default:"claude-sonnet-4-5"`
	MaxTokens int    `yaml:"max_tokens"  env:"BREAKDOWN_MAX_TOKENS" env-default:"4096"`
	// MaxChars bounds the script excerpt embedded in each prompt. Batch
	// runs afford a larger excerpt than the interactive quick action.
	MaxChars int `yaml:"max_chars" env:"BREAKDOWN_MAX_CHARS" env-default:"12000"`
}

// LoadConfig reads breakdown config from YAML or environment variables.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, fmt.Errorf("breakdown config: %w", err)
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("breakdown config: file %s not found", path)
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("breakdown config: read env: %w", err)
	}
	return &cfg, nil
}
