package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/otpfield/internal/bindings"
	"github.com/unkn0wn-root/otpfield/internal/config"
	"github.com/unkn0wn-root/otpfield/internal/logging"
	"github.com/unkn0wn-root/otpfield/internal/prompt"
	"github.com/unkn0wn-root/otpfield/internal/telemetry"
	"github.com/unkn0wn-root/otpfield/internal/theme"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

const (
	exitOK        = 0
	exitCancelled = 1
	exitUsage     = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdout, stderr io.Writer, getenv func(string) string) int {
	opts, err := parseFlags(args, getenv, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "otpfield: %v\n", err)
		return exitUsage
	}

	if opts.showVersion {
		_, _ = fmt.Fprintf(stdout, "otpfield %s\n", version)
		_, _ = fmt.Fprintf(stdout, "  commit: %s\n", commit)
		_, _ = fmt.Fprintf(stdout, "  built:  %s\n", date)
		return exitOK
	}

	logger, logCloser, err := logging.New(opts.logFile, opts.logLevel)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "otpfield: %v\n", err)
	}
	defer func() {
		_ = logCloser.Close()
	}()

	settings, settingsHandle, err := config.LoadSettings()
	if err != nil {
		logger.WithError(err).Warn("settings load failed, using defaults")
		settings = config.Settings{Field: config.DefaultFieldSettings()}
		settingsHandle = config.SettingsHandle{
			Path:   filepath.Join(config.Dir(), "settings.toml"),
			Format: config.SettingsFormatTOML,
		}
	}

	bindingMap, bindingSource, err := bindings.Load(config.Dir())
	if err != nil {
		logger.WithError(err).Warn("bindings load failed, using defaults")
		bindingMap = bindings.DefaultMap()
	} else {
		logger.WithField("path", bindingSource.Path).Debug("bindings loaded")
	}

	catalog, err := theme.LoadCatalog([]string{config.ThemeDir()})
	if err != nil {
		logger.WithError(err).Warn("theme load failed")
	}
	requested := opts.themeKey(settings.DefaultTheme)
	def, found := catalog.Resolve(requested)
	if !found {
		logger.WithField("theme", requested).Warn("theme not found, using default")
	}
	th := def.Theme

	field := opts.fieldSettings(settings.Field)
	if opts.save {
		settings.Field = field
		settings.DefaultTheme = def.Key
		if err := config.SaveSettings(settings, settingsHandle); err != nil {
			logger.WithError(err).Error("settings save failed")
			_, _ = fmt.Fprintf(stderr, "otpfield: %v\n", err)
		}
	}

	opts.telemetry.Version = version
	inst, err := telemetry.New(opts.telemetry)
	if err != nil {
		logger.WithError(err).Warn("telemetry init failed")
		inst = telemetry.Noop()
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := inst.Shutdown(ctx); err != nil {
			logger.WithError(err).Warn("telemetry shutdown failed")
		}
	}()

	_, span := inst.Start(context.Background(), telemetry.SessionStart{
		Digits: field.Digits,
		Style:  field.Style,
		Masked: field.Mask,
		Theme:  def.Key,
	})

	// stdout may be a pipe capturing the code; colours follow the tty we draw on
	lipgloss.SetColorProfile(termenv.NewOutput(stderr).EnvColorProfile())

	model := prompt.New(prompt.Config{
		Title:     opts.title,
		Subtitle:  opts.subtitle,
		Digits:    field.Digits,
		Style:     field.FieldStyle(),
		Mask:      field.Mask,
		MaskGlyph: field.MaskGlyph,
		Theme:     &th,
		Bindings:  bindingMap,
		Span:      span,
		Logger:    logger,
	})

	logger.WithFields(logrus.Fields{
		"digits": field.Digits,
		"style":  field.Style,
		"mask":   field.Mask,
		"theme":  def.Key,
	}).Debug("prompt starting")

	program := tea.NewProgram(model, tea.WithOutput(stderr), tea.WithInputTTY())
	final, err := program.Run()
	if err != nil {
		span.End(telemetry.SessionResult{Outcome: telemetry.OutcomeCancelled, Err: err})
		logger.WithError(err).Error("prompt failed")
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return exitCancelled
	}

	result := final.(prompt.Model).Result()
	if !result.Submitted {
		span.End(telemetry.SessionResult{Outcome: telemetry.OutcomeCancelled})
		return exitCancelled
	}
	span.End(telemetry.SessionResult{Outcome: telemetry.OutcomeSubmitted})
	_, _ = fmt.Fprintln(stdout, result.Code)
	return exitOK
}
