package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/ChizhovVadim/connect4data/internal/dataset"
)

func mapPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		curUser, err := user.Current()
		if err != nil {
			return path
		}
		return filepath.Join(curUser.HomeDir, strings.TrimPrefix(path, "~/"))
	}
	return path
}

// FileConfig is read from config.json, flags override it.
type FileConfig struct {
	DataFolder string `json:"data_folder"`
	Weak       bool   `json:"weak"`
	Threads    int    `json:"threads"`
}

func findConfigPath() (string, bool) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	var dir = cwd
	for {
		var path = filepath.Join(dir, "config.json")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		var parent = filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func loadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, err
	}
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("parse %v: %w", path, err)
	}
	return cfg, nil
}

func splitPath(paths dataset.SplitPaths, split string) (string, error) {
	switch split {
	case splitTraining:
		return paths.Training, nil
	case splitValidation:
		return paths.Validation, nil
	case splitTest:
		return paths.Test, nil
	default:
		return "", fmt.Errorf("unknown split %q", split)
	}
}
