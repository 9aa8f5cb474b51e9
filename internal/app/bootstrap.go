package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/netcfgtools/fgt-dup-detector/internal/adapters/fortios"
	"github.com/netcfgtools/fgt-dup-detector/internal/config"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/ports"
	"github.com/netcfgtools/fgt-dup-detector/internal/core/service"
	"github.com/netcfgtools/fgt-dup-detector/internal/errors"
	"github.com/netcfgtools/fgt-dup-detector/internal/log"
	jsonreport "github.com/netcfgtools/fgt-dup-detector/internal/reporting/json"
	"github.com/netcfgtools/fgt-dup-detector/internal/reporting/text"
	yamlreport "github.com/netcfgtools/fgt-dup-detector/internal/reporting/yaml"
	"github.com/netcfgtools/fgt-dup-detector/internal/resources/objects"
)

// BuildApplicationFromViper wires the whole pipeline from the layered viper
// configuration (defaults < file < env < flags).
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Debugf(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)
	if v.ConfigFileUsed() != "" {
		logger.Debugf(ctx, "Using configuration file: %s", v.ConfigFileUsed())
	}

	if err := validateConfig(ctx, cfg); err != nil {
		logger.Errorf(ctx, err, "Configuration validation failed")
		return nil, err
	}

	registry := service.NewComponentRegistry()

	parser := fortios.NewParser(cfg.Parser.FortiOS, logger)
	if err := registry.RegisterParser(parser); err != nil {
		return nil, err
	}

	if err := registerReporters(cfg, logger, registry); err != nil {
		return nil, err
	}

	selectedParser, err := registry.GetParser(cfg.Parser.Format)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("unsupported input format: %s", cfg.Parser.Format), "Supported: fortios")
	}
	selectedReporter, err := registry.GetReporter(cfg.Settings.ReporterType)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.ReporterType), "Supported: text, json, yaml")
	}
	logger.Debugf(ctx, "Using %s parser and %s reporter", selectedParser.Type(), selectedReporter.Type())

	comparer := objects.NewGroupComparer(cfg.Compare)

	engine, err := service.NewDuplicateAnalysisEngine(
		selectedParser,
		comparer,
		selectedReporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		cfg.Settings.Concurrency,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize analysis engine")
	}

	logger.Debugf(ctx, "Application bootstrap complete")
	return &Application{Engine: engine, Logger: logger, Config: cfg}, nil
}

func validateConfig(ctx context.Context, cfg *config.Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(ctx, cfg)
	if err == nil {
		return nil
	}

	var details strings.Builder
	details.WriteString("Configuration validation failed:")
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range validationErrors {
			details.WriteString(fmt.Sprintf("\n - Field '%s': failed '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	} else {
		details.WriteString(" " + err.Error())
	}
	return errors.NewUserFacing(errors.CodeConfigValidation, details.String(), "Please check your configuration file or flags.")
}

func registerReporters(cfg *config.Config, logger ports.Logger, registry *service.ComponentRegistry) error {
	textCfg := text.Config{}
	if cfg.Settings.Reporter.Text != nil {
		textCfg = *cfg.Settings.Reporter.Text
	}
	textReporter, err := text.NewReporter(textCfg, logger)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize text reporter")
	}
	if err := registry.RegisterReporter(textReporter); err != nil {
		return err
	}

	jsonReporter, err := jsonreport.NewReporter(jsonreport.Config{}, logger)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
	}
	if err := registry.RegisterReporter(jsonReporter); err != nil {
		return err
	}

	yamlReporter, err := yamlreport.NewReporter(yamlreport.Config{}, logger)
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to initialize YAML reporter")
	}
	return registry.RegisterReporter(yamlReporter)
}
