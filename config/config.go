package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Bind        string           `json:"bind"`
	LogInfo     logger.LogConfig `json:"log_info"`
	Root        string           `json:"root"`
	BaseURL     string           `json:"base_url"`
	Prefix      string           `json:"prefix"`
	AtomicWrite bool             `json:"atomic_write"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Bind: ":8080",
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode json failed, err:%w", err)
	}
	return c, nil
}
