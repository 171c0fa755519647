package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	DatabasePath     string `json:"databasePath"`
	ExportFolderPath string `json:"exportFolderPath"`
	LogFilePath      string `json:"logFilePath"`
	ListenAddr       string `json:"listenAddr"`
	DisableWindow    bool   `json:"disableWindow"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./bsm_config.json"

func defaults() Config {
	return Config{
		DatabasePath:     "./data.db",
		ExportFolderPath: "./exports",
		LogFilePath:      "./process.log",
		ListenAddr:       "127.0.0.1:8601",
	}
}

func applyDefaults(c *Config) {
	d := defaults()
	if c.DatabasePath == "" {
		c.DatabasePath = d.DatabasePath
	}
	if c.ExportFolderPath == "" {
		c.ExportFolderPath = d.ExportFolderPath
	}
	if c.LogFilePath == "" {
		c.LogFilePath = d.LogFilePath
	}
	if c.ListenAddr == "" {
		c.ListenAddr = d.ListenAddr
	}
}

func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg = defaults()
			return cfg, nil
		}
		return Config{}, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&tempCfg)
	cfg = tempCfg

	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	applyDefaults(&newCfg)

	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
