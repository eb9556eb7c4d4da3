package configs

import (
	"log"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config struct
type Config struct {
	App      `mapstructure:"app"`
	Postgres `mapstructure:"postgres"`
	Session  `mapstructure:"session"`
}

// App struct
type App struct {
	Debug bool   `mapstructure:"debug"`
	Env   string `mapstructure:"env"`
	Port  string `mapstructure:"port"`
}

// Postgres struct
type Postgres struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"database"`
	SSLMode  bool   `mapstructure:"sslmode"`
}

// Session struct
type Session struct {
	// CleanupLimit bounds how many expired rows a single set may purge;
	// zero disables cleanup entirely
	CleanupLimit int `mapstructure:"cleanup_limit"`
	// LimitSubquery selects the purge strategy (embedded subquery when
	// true, enumerated id list otherwise)
	LimitSubquery bool `mapstructure:"limit_subquery"`
	// TTL is a fixed session lifetime in seconds; zero derives the
	// lifetime from the payload's cookie metadata
	TTL int `mapstructure:"ttl"`
}

var config Config

// InitViper func
func InitViper(path, env string) {
	getConfig(path, env)
}

// GetViper func
func GetViper() *Config {
	return &config
}

func getConfig(path, env string) {
	viper.SetConfigName("config")
	viper.AddConfigPath(path)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("session.limit_subquery", true)
	err := viper.ReadInConfig()
	if err != nil {
		log.Println("No config file found, relying on environment: ", err)
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Println("Config file has changed: ", e.Name)
	})
	err = viper.Unmarshal(&config)
	if err != nil {
		log.Fatalln(err)
	}
}
