package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/nftdeploy/internal/domain/config"
)

// ProjectFileName is the optional per-project configuration file
const ProjectFileName = "nftdeploy.toml"

// loadDotEnv loads .env files from the project root. Variables already set in
// the environment are not overridden.
func loadDotEnv(projectRoot string) error {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return nil
}

// LoadProjectFile loads .env files and decodes nftdeploy.toml. A missing
// file yields an empty configuration.
func LoadProjectFile(projectRoot string) (*config.ProjectFile, error) {
	if err := loadDotEnv(projectRoot); err != nil {
		return nil, err
	}

	file := &config.ProjectFile{}
	path := filepath.Join(projectRoot, ProjectFileName)
	if _, err := toml.DecodeFile(path, file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	file.PrivateKey = os.ExpandEnv(file.PrivateKey)
	for i, dir := range file.ArtifactsDir {
		file.ArtifactsDir[i] = os.ExpandEnv(dir)
	}
	return file, nil
}
