package config

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	o, err := Load("test", nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if o.Spec != "character.yaml" || o.TPS != 60 || o.Step != 100*time.Millisecond || !o.Watch {
		t.Fatalf("unexpected defaults %+v", o)
	}
}

func TestLoadEnvThenFlags(t *testing.T) {
	t.Setenv("ECHOFORM_SCENARIO", "base_roll")
	t.Setenv("ECHOFORM_TPS", "30")
	t.Setenv("ECHOFORM_COMBAT", "combo")

	o, err := Load("test", []string{"-tps", "120", "-watch=false"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if o.Scenario != "base_roll" {
		t.Fatalf("scenario = %q", o.Scenario)
	}
	if o.TPS != 120 {
		t.Fatalf("flag should override env, tps = %d", o.TPS)
	}
	if o.Watch || o.Combat != "combo" {
		t.Fatalf("options = %+v", o)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name   string
		env    map[string]string
		args   []string
		prefix string
	}{
		{"bad_env", map[string]string{"ECHOFORM_TPS": "fast"}, nil, "parse env:"},
		{"bad_flag", nil, []string{"-nope"}, "parse flags:"},
		{"bad_combat", nil, []string{"-combat", "brawl"}, "unknown combat mode"},
		{"zero_tps", nil, []string{"-tps", "0"}, "tps must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load("test", tc.args)
			if err == nil || !strings.Contains(err.Error(), tc.prefix) {
				t.Fatalf("err = %v, want %q", err, tc.prefix)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, c := range cases {
		if got := ParseLevel(c.in); got != c.want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", "json")
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("output = %q", out)
	}
}
