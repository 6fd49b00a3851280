// Package config loads installmart settings from viper.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/installmart/internal/common"
	"github.com/spf13/viper"
)

// Defaults applied when a key is absent from the config file and environment.
const (
	DefaultBaseURL     = "https://api.installmart.pk/api"
	DefaultMediaOrigin = "https://api.installmart.pk/"
	DefaultTimeout     = 30 * time.Second
	DefaultDBPath      = "$HOME/.local/share/installmart/installmart.db"

	// DefaultUserAgent mimics a mobile browser. The edge proxy in front of the
	// backend challenges requests carrying library default user agents.
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Mobile Safari/537.36"
)

// Settings holds everything the client layer needs to talk to the backend.
type Settings struct {
	BaseURL     string
	MediaOrigin string
	UserAgent   string
	DBPath      string
	LogLevel    string
	LogFormat   string
	Timeout     time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.media_origin", DefaultMediaOrigin)
	v.SetDefault("api.timeout", DefaultTimeout)
	v.SetDefault("api.user_agent", DefaultUserAgent)
	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load reads settings from v and validates them.
// Precedence is the usual viper order: flags, INSTALLMART_ env vars, config file, defaults.
func Load(v *viper.Viper) (*Settings, error) {
	SetDefaults(v)

	s := &Settings{
		BaseURL:     strings.TrimRight(strings.TrimSpace(v.GetString("api.base_url")), "/"),
		MediaOrigin: strings.TrimSpace(v.GetString("api.media_origin")),
		UserAgent:   v.GetString("api.user_agent"),
		Timeout:     v.GetDuration("api.timeout"),
		DBPath:      ExpandPath(v.GetString("database.path")),
		LogLevel:    v.GetString("logging.level"),
		LogFormat:   v.GetString("logging.format"),
	}

	if s.MediaOrigin != "" && !strings.HasSuffix(s.MediaOrigin, "/") {
		s.MediaOrigin += "/"
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate ensures the settings can be used to build a client.
func (s *Settings) Validate() error {
	if s.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url", common.ErrMissingConfig)
	}
	if err := validateHTTPURL("api.base_url", s.BaseURL); err != nil {
		return err
	}
	if s.MediaOrigin == "" {
		return fmt.Errorf("%w: api.media_origin", common.ErrMissingConfig)
	}
	if err := validateHTTPURL("api.media_origin", s.MediaOrigin); err != nil {
		return err
	}
	if s.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive, got %s", common.ErrInvalidConfig, s.Timeout)
	}
	return nil
}

func validateHTTPURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", common.ErrInvalidConfig, key, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an absolute http(s) URL, got %q", common.ErrInvalidConfig, key, raw)
	}
	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
