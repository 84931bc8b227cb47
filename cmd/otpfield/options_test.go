package main

import (
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"

	"github.com/unkn0wn-root/otpfield"
	"github.com/unkn0wn-root/otpfield/internal/config"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil, envMap(nil), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.digits != otpfield.DefaultMaxDigits || opts.style != otpfield.StyleBorderedBox {
		t.Fatalf("unexpected defaults %+v", opts)
	}
	if len(opts.set) != 0 {
		t.Fatalf("expected no flags marked as set, got %v", opts.set)
	}
	if opts.telemetry.Enabled() {
		t.Fatalf("expected telemetry disabled without endpoint")
	}
}

func TestParseFlagsValues(t *testing.T) {
	args := []string{
		"-digits", "4",
		"-style", "underline",
		"-mask",
		"-theme", " Dusk ",
		"-trace-otel-endpoint", " collector:4317 ",
	}
	opts, err := parseFlags(args, envMap(nil), &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.digits != 4 || opts.style != otpfield.StyleUnderline || !opts.mask {
		t.Fatalf("unexpected field flags %+v", opts)
	}
	if opts.theme != "Dusk" {
		t.Fatalf("expected trimmed theme, got %q", opts.theme)
	}
	if opts.telemetry.Endpoint != "collector:4317" {
		t.Fatalf("expected trimmed endpoint, got %q", opts.telemetry.Endpoint)
	}
	for _, name := range []string{"digits", "style", "mask", "theme"} {
		if !opts.set[name] {
			t.Fatalf("expected %q to be marked set", name)
		}
	}
}

func TestParseFlagsEnvironment(t *testing.T) {
	env := envMap(map[string]string{
		"OTPFIELD_LOG":           "/tmp/otp.log",
		"OTPFIELD_OTEL_ENDPOINT": "otel:4317",
	})
	opts, err := parseFlags(nil, env, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if opts.logFile != "/tmp/otp.log" || opts.telemetry.Endpoint != "otel:4317" {
		t.Fatalf("expected env defaults, got %+v", opts)
	}
}

func TestParseFlagsRejectsBadStyle(t *testing.T) {
	if _, err := parseFlags([]string{"-style", "dotted"}, envMap(nil), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown style")
	}
}

func TestParseFlagsRejectsArguments(t *testing.T) {
	if _, err := parseFlags([]string{"123456"}, envMap(nil), &bytes.Buffer{}); err == nil {
		t.Fatalf("expected positional arguments to be rejected")
	}
}

func TestParseFlagsHelp(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags([]string{"-h"}, envMap(nil), &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "code=$(otpfield -digits 6)") {
		t.Fatalf("expected usage header, got %q", out.String())
	}
	if !strings.Contains(out.String(), "-trace-otel-endpoint") {
		t.Fatalf("expected flag defaults in usage, got %q", out.String())
	}
}

func TestFieldSettingsLayering(t *testing.T) {
	saved := config.FieldSettings{Digits: 4, Style: "underline", Mask: true}

	cases := []struct {
		name string
		args []string
		want config.FieldSettings
	}{
		{
			name: "settings win when no flags",
			want: config.FieldSettings{Digits: 4, Style: "underline", Mask: true},
		},
		{
			name: "flags override",
			args: []string{"-digits", "6", "-style", "box", "-mask=false"},
			want: config.FieldSettings{Digits: 6, Style: "bordered_box"},
		},
		{
			name: "digits are clamped",
			args: []string{"-digits", "9"},
			want: config.FieldSettings{Digits: 6, Style: "underline", Mask: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts, err := parseFlags(tc.args, envMap(nil), &bytes.Buffer{})
			if err != nil {
				t.Fatalf("parseFlags: %v", err)
			}
			if got := opts.fieldSettings(saved); got != tc.want {
				t.Fatalf("fieldSettings() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestThemeKeyPrefersFlag(t *testing.T) {
	opts := options{}
	if opts.themeKey("saved") != "saved" {
		t.Fatalf("expected saved theme without flag")
	}
	opts.theme = "flag"
	if opts.themeKey("saved") != "flag" {
		t.Fatalf("expected flag theme to win")
	}
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-version"}, &stdout, &stderr, envMap(nil))
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "otpfield dev") {
		t.Fatalf("unexpected version output %q", stdout.String())
	}
}

func TestRunUsageError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-digits", "x"}, &stdout, &stderr, envMap(nil)); code != exitUsage {
		t.Fatalf("expected usage exit, got %d", code)
	}
}
