package store

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config resolves where the timer keeps its data.
type Config interface {
	BasePath() string
	HistoryPath() string
}

// LoadConfig reads the .pomo config (current directory or POMO_CONFIG_PATH)
// and falls back to defaults under the home directory.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.pomo.db")
	viper.SetConfigName(".pomo") // .yaml is implicit
	viper.SetEnvPrefix("POMO")
	viper.AutomaticEnv()

	if override := os.Getenv("POMO_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	path := viper.GetString("path")
	if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}

	history := viper.GetString("history")
	if history == "" {
		history = filepath.Join(path, "history.sqlite")
	} else if expanded, err := homedir.Expand(history); err == nil {
		history = expanded
	}

	return &fileConfig{Path: path, History: history}, nil
}

type fileConfig struct {
	Path    string `json:"path"`
	History string `json:"history"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) HistoryPath() string {
	return f.History
}
