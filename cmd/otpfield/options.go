package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc"

	"github.com/unkn0wn-root/otpfield"
	"github.com/unkn0wn-root/otpfield/internal/config"
	"github.com/unkn0wn-root/otpfield/internal/logging"
	"github.com/unkn0wn-root/otpfield/internal/telemetry"
)

var usageHeader = heredoc.Doc(`
	Usage: otpfield [flags]

	Prompts for a one-time code and prints it on stdout once all digits are
	entered. The prompt is drawn on stderr, so the code can be captured:

	    code=$(otpfield -digits 6)

	Exits 1 when the prompt is cancelled.

	Flags:
`)

type options struct {
	digits      int
	style       otpfield.Style
	mask        bool
	maskGlyph   string
	theme       string
	title       string
	subtitle    string
	save        bool
	logFile     string
	logLevel    string
	telemetry   telemetry.Config
	showVersion bool

	// names of flags given on the command line; only these override settings
	set map[string]bool
}

func parseFlags(args []string, getenv func(string) string, stderr io.Writer) (options, error) {
	opts := options{
		style:     otpfield.StyleBorderedBox,
		logFile:   logging.PathFromEnv(getenv),
		logLevel:  "info",
		telemetry: telemetry.ConfigFromEnv(getenv),
	}

	fs := flag.NewFlagSet("otpfield", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprint(fs.Output(), usageHeader)
		fs.PrintDefaults()
	}

	fs.IntVar(
		&opts.digits,
		"digits",
		otpfield.DefaultMaxDigits,
		fmt.Sprintf("Number of digits (%d-%d)", otpfield.MinDigits, otpfield.MaxDigits),
	)
	fs.TextVar(&opts.style, "style", otpfield.StyleBorderedBox, "Slot style: bordered_box or underline")
	fs.BoolVar(&opts.mask, "mask", false, "Hide entered digits behind a mask glyph")
	fs.StringVar(&opts.maskGlyph, "mask-glyph", "", "Single-cell glyph used when -mask is set")
	fs.StringVar(&opts.theme, "theme", "", "Theme key from the theme directory")
	fs.StringVar(&opts.title, "title", "", "Prompt title")
	fs.StringVar(&opts.subtitle, "subtitle", "", "Line shown under the title")
	fs.BoolVar(&opts.save, "save", false, "Persist the field flags and theme as defaults")
	fs.StringVar(&opts.logFile, "log-file", opts.logFile, "Write JSON debug logs to this file")
	fs.StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(
		&opts.telemetry.Endpoint,
		"trace-otel-endpoint",
		opts.telemetry.Endpoint,
		"OTLP collector endpoint for prompt session spans",
	)
	fs.BoolVar(
		&opts.telemetry.Insecure,
		"trace-otel-insecure",
		opts.telemetry.Insecure,
		"Disable TLS for OTLP trace export",
	)
	fs.StringVar(
		&opts.telemetry.ServiceName,
		"trace-otel-service",
		opts.telemetry.ServiceName,
		"Override service.name resource attribute for exported spans",
	)
	fs.BoolVar(&opts.showVersion, "version", false, "Show otpfield version")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	opts.telemetry.Endpoint = strings.TrimSpace(opts.telemetry.Endpoint)
	opts.telemetry.ServiceName = strings.TrimSpace(opts.telemetry.ServiceName)
	opts.theme = strings.TrimSpace(opts.theme)
	return opts, nil
}

// fieldSettings layers explicitly given flags over the saved settings.
func (o options) fieldSettings(saved config.FieldSettings) config.FieldSettings {
	field := config.NormaliseFieldSettings(saved)
	if o.set["digits"] {
		field.Digits = o.digits
	}
	if o.set["style"] {
		field.Style = o.style.String()
	}
	if o.set["mask"] {
		field.Mask = o.mask
	}
	if o.set["mask-glyph"] {
		field.MaskGlyph = o.maskGlyph
	}
	return config.NormaliseFieldSettings(field)
}

func (o options) themeKey(saved string) string {
	if o.theme != "" {
		return o.theme
	}
	return saved
}
