package config

import (
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/timovate/internal"
)

type Config struct {
	Move struct {
		Days    string
		Exclude []string
	}
	Performance struct {
		Workers int
	}
	Journal struct {
		Enabled bool
		Path    string
	}
	Logging struct {
		Level string
		File  string
	}
}

var cfg Config

// setDefaults 默认配置
func setDefaults(v *viper.Viper) {
	v.SetDefault("move.days", internal.DefaultDays)
	v.SetDefault("move.exclude", []string{})
	v.SetDefault("performance.workers", runtime.NumCPU())
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.path", internal.DefaultJournalPath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("$HOME/.timovate")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/timovate")

	return load(v)
}

// LoadFile 从指定文件加载配置
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	// TIMOVATE_MOVE_DAYS、TIMOVATE_LOGGING_LEVEL 等环境变量覆盖配置
	v.SetEnvPrefix("timovate")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg = Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Get() *Config {
	return &cfg
}
