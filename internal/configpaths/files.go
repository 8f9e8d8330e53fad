// Package configpaths locates ColorHoster's configuration file across the
// working directory, the user config home, and (on Unix) /etc.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// DefaultConfigDir returns the platform-specific configuration directory for ColorHoster.
func DefaultConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("AppData"); appdata != "" {
			return filepath.Join(appdata, "ColorHoster"), nil
		}
		return "", errors.New("AppData not set")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "colorhoster"), nil
		}
		if home := os.Getenv("HOME"); home != "" {
			return filepath.Join(home, ".config", "colorhoster"), nil
		}
		return "", errors.New("HOME not set")
	}
}

// DefaultConfigPath returns the default config file path for the given format.
func DefaultConfigPath(format string) (string, error) {
	dir, err := DefaultConfigDir()
	if err != nil {
		return "", err
	}
	ext := "json"
	switch format {
	case "yaml", "yml":
		ext = "yaml"
	case "toml":
		ext = "toml"
	}
	return filepath.Join(dir, "config."+ext), nil
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0o755)
}

// ConfigCandidatePaths builds candidate config file paths per format,
// in priority order: an explicit userPath, the working directory, the
// config home, and (on Unix) /etc/colorhoster.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	add := func(slice *[]string, p string) { *slice = append(*slice, p) }

	if userPath != "" {
		switch ext := filepath.Ext(userPath); ext {
		case ".json":
			add(&jsonPaths, userPath)
		case ".yaml", ".yml":
			add(&yamlPaths, userPath)
		case ".toml":
			add(&tomlPaths, userPath)
		default:
			add(&jsonPaths, userPath)
		}
	}

	wd, _ := os.Getwd()
	add(&jsonPaths, filepath.Join(wd, "colorhoster.json"))
	add(&yamlPaths, filepath.Join(wd, "colorhoster.yaml"))
	add(&yamlPaths, filepath.Join(wd, "colorhoster.yml"))
	add(&tomlPaths, filepath.Join(wd, "colorhoster.toml"))

	if dir, err := DefaultConfigDir(); err == nil {
		add(&jsonPaths, filepath.Join(dir, "config.json"))
		add(&yamlPaths, filepath.Join(dir, "config.yaml"))
		add(&yamlPaths, filepath.Join(dir, "config.yml"))
		add(&tomlPaths, filepath.Join(dir, "config.toml"))
	}

	if runtime.GOOS != "windows" {
		add(&jsonPaths, filepath.Join("/etc/colorhoster", "config.json"))
		add(&yamlPaths, filepath.Join("/etc/colorhoster", "config.yaml"))
		add(&yamlPaths, filepath.Join("/etc/colorhoster", "config.yml"))
		add(&tomlPaths, filepath.Join("/etc/colorhoster", "config.toml"))
	}

	return
}
