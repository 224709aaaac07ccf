package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/signcfg/internal/application"
	"github.com/eugenenazirov/signcfg/internal/config"
	"github.com/eugenenazirov/signcfg/internal/logging"
	"github.com/eugenenazirov/signcfg/internal/signing"
)

var newLogger = logging.New

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "signcfg: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("signcfg", "Resolves Android signing configuration from key.properties for the packaging plugin")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	projectRoot := kingpinApp.Flag("project-root", "Android project root containing key.properties").String()
	appDir := kingpinApp.Flag("app-dir", "App module directory, relative to the project root").String()
	format := kingpinApp.Flag("format", "Output format (json or yaml)").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	resolveCmd := kingpinApp.Command("resolve", "Print the build plan for a variant")
	variantArg := resolveCmd.Arg("variant", "Build variant (debug or release)").Required().Enum("debug", "release")

	checkCmd := kingpinApp.Command("check", "Report whether every variant can be signed")

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(&config.CLIOverrides{
		ConfigFile:  *configFile,
		ProjectRoot: projectRoot,
		AppDir:      appDir,
		Format:      format,
		LogLevel:    logLevel,
	})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize application", zap.Error(err))
		return err
	}

	switch command {
	case resolveCmd.FullCommand():
		variant, err := signing.ParseVariant(*variantArg)
		if err != nil {
			return err
		}
		plan, err := app.Resolve(variant)
		if err != nil {
			logger.Error("cannot configure build", zap.Stringer("variant", variant), zap.Error(err))
			return err
		}
		return app.Write(stdout, plan)

	case checkCmd.FullCommand():
		report, checkErr := app.Check()
		if err := app.Write(stdout, report); err != nil {
			return err
		}
		return checkErr
	}

	return fmt.Errorf("unknown command %q", command)
}
