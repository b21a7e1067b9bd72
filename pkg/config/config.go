// Package config loads calllog settings from .calllog.yaml, the environment,
// and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// EnvConfigPath names an extra directory searched for the config file.
const EnvConfigPath = "CALLLOG_CONFIG_PATH"

const (
	DefaultAPIURL       = "https://frontend-test-api.aircall.dev"
	DefaultPusherKey    = "d44e3d910d38a928e0be"
	DefaultAuthEndpoint = DefaultAPIURL + "/pusher/auth"
)

type API struct {
	URL           string
	Token         string
	Timeout       time.Duration
	ArchiveMethod string
}

type Pusher struct {
	Key          string
	Cluster      string
	Host         string
	AuthEndpoint string
	Channel      string
	Event        string
}

type Log struct {
	File   string
	Level  string
	Format string
}

// Config is a resolved view of every setting.
type Config struct {
	API        API
	Pusher     Pusher
	PageSize   int
	DraftsPath string
	Log        Log

	v *viper.Viper
}

func defaults(v *viper.Viper) {
	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.token", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("api.archive_method", "POST")
	v.SetDefault("pusher.key", DefaultPusherKey)
	v.SetDefault("pusher.cluster", "eu")
	v.SetDefault("pusher.host", "")
	v.SetDefault("pusher.auth_endpoint", DefaultAuthEndpoint)
	v.SetDefault("pusher.channel", "private-aircall")
	v.SetDefault("pusher.event", "update-call")
	v.SetDefault("page_size", 10)
	v.SetDefault("drafts.path", "~/.calllog/drafts")
	v.SetDefault("log.file", "~/.calllog/calllog.log")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads the config file if one exists. A missing file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	defaults(v)
	v.SetConfigName(".calllog") // .yaml is implicit
	v.SetEnvPrefix("CALLLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv(EnvConfigPath); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return resolve(v)
}

func resolve(v *viper.Viper) (*Config, error) {
	drafts, err := homedir.Expand(v.GetString("drafts.path"))
	if err != nil {
		return nil, fmt.Errorf("config: drafts.path: %w", err)
	}
	logFile, err := homedir.Expand(v.GetString("log.file"))
	if err != nil {
		return nil, fmt.Errorf("config: log.file: %w", err)
	}
	c := &Config{
		API: API{
			URL:           strings.TrimRight(v.GetString("api.url"), "/"),
			Token:         v.GetString("api.token"),
			Timeout:       v.GetDuration("api.timeout"),
			ArchiveMethod: strings.ToUpper(v.GetString("api.archive_method")),
		},
		Pusher: Pusher{
			Key:          v.GetString("pusher.key"),
			Cluster:      v.GetString("pusher.cluster"),
			Host:         v.GetString("pusher.host"),
			AuthEndpoint: v.GetString("pusher.auth_endpoint"),
			Channel:      v.GetString("pusher.channel"),
			Event:        v.GetString("pusher.event"),
		},
		PageSize:   v.GetInt("page_size"),
		DraftsPath: drafts,
		Log: Log{
			File:   logFile,
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		v: v,
	}
	if c.PageSize < 1 {
		return nil, fmt.Errorf("config: page_size must be positive, got %d", c.PageSize)
	}
	switch c.API.ArchiveMethod {
	case "PUT", "POST":
	default:
		return nil, fmt.Errorf("config: api.archive_method must be PUT or POST, got %q", c.API.ArchiveMethod)
	}
	return c, nil
}

// File is the config file in use, or "" when running on defaults.
func (c *Config) File() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// Watch calls fn with the re-resolved config each time the config file
// changes. Invalid edits are reported through onErr and otherwise ignored.
// It does nothing when no config file was found.
func (c *Config) Watch(fn func(*Config), onErr func(error)) {
	if c.v == nil || c.File() == "" {
		return
	}
	c.v.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		next, err := resolve(c.v)
		if err != nil {
			if onErr != nil {
				onErr(err)
			}
			return
		}
		fn(next)
	})
	c.v.WatchConfig()
}
