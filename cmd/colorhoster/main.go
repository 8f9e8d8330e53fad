package main

import (
	"os"
	"strings"

	"github.com/Azarattum/ColorHoster/internal/cmd"
	"github.com/Azarattum/ColorHoster/internal/configpaths"
	"github.com/Azarattum/ColorHoster/internal/logging"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

// CLI is the top-level command surface: running with no subcommand starts
// the OpenRGB SDK server directly.
type CLI struct {
	Server cmd.Server        `cmd:"" default:"1" help:"Run the OpenRGB SDK server (default)"`
	Config cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration file tools"`

	ConfigPath string   `name:"config-file" help:"Path to a config file (json/yaml/toml)"`
	Log        LogFlags `embed:"" prefix:"log-"`
}

// LogFlags configures the structured and raw loggers.
type LogFlags struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" env:"COLORHOSTER_LOG_LEVEL"`
	File    string `help:"Mirror logs to this file" env:"COLORHOSTER_LOG_FILE"`
	RawFile string `help:"Write raw OpenRGB wire traffic to this file" env:"COLORHOSTER_RAW_LOG_FILE"`
}

func main() {
	userCfg := findUserConfig(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userCfg)

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("colorhoster"),
		kong.Description("OpenRGB-compatible SDK server for QMK/VIA keyboards"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := logging.Setup(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	var rawLogger logging.RawLogger
	if cli.Log.RawFile != "" {
		f, err := os.OpenFile(cli.Log.RawFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Error("failed to open raw log file", "file", cli.Log.RawFile, "error", err)
			rawLogger = logging.NewRaw(nil)
		} else {
			rawLogger = logging.NewRaw(f)
			closeFiles = append(closeFiles, f)
		}
	} else if cli.Log.Level == "trace" {
		rawLogger = logging.NewRaw(os.Stdout)
	} else {
		rawLogger = logging.NewRaw(nil)
	}

	ctx.Bind(logger)
	ctx.BindTo(rawLogger, (*logging.RawLogger)(nil))

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config-file=") {
			return a[len("--config-file="):]
		}
		if a == "--config-file" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("COLORHOSTER_CONFIG"); v != "" {
		return v
	}
	return ""
}
