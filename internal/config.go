package internal

import (
	"fmt"

	"github.com/spf13/viper"
)

type CfsqlConfig struct {
	AppName string `mapstructure:"app_name"`

	Repl struct {
		Prompt      string `mapstructure:"prompt"`
		HistoryPath string `mapstructure:"history_path"`
		HistoryMax  int    `mapstructure:"history_max"`
	} `mapstructure:"repl"`
}

func LoadConfig(path string) (*CfsqlConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "cfsql")
	v.SetDefault("repl.prompt", "cfsql> ")
	v.SetDefault("repl.history_max", 2000)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg CfsqlConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}
