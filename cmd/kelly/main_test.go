package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mode    string
		reps    int
		wantErr bool
	}{
		{name: "multi", args: []string{"multi", "10"}, mode: "multi", reps: 10},
		{name: "single", args: []string{"single", "1"}, mode: "single", reps: 1},
		{name: "missing repetitions", args: []string{"multi"}, wantErr: true},
		{name: "unknown mode", args: []string{"parallel", "10"}, wantErr: true},
		{name: "non numeric", args: []string{"multi", "ten"}, wantErr: true},
		{name: "zero repetitions", args: []string{"multi", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, reps, err := parseArgs(tt.args)
			if tt.wantErr {
				require.ErrorIs(t, err, errUsage)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.mode, mode)
			require.Equal(t, tt.reps, reps)
		})
	}
}

func TestRun_PrintsOneRowPerProportion(t *testing.T) {
	for _, mode := range []string{"single", "multi"} {
		t.Run(mode, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run([]string{"-steps", "4", "-seed", "3", "-workers", "2", mode, "20"}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())

			lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
			require.Len(t, lines, 6)
			require.True(t, strings.HasPrefix(lines[0], "bet%"))

			for i, want := range []string{"0", "25", "50", "75", "100"} {
				require.Equal(t, want, strings.Fields(lines[i+1])[0])
			}
		})
	}
}

func TestRun_SameOutputSingleAndMulti(t *testing.T) {
	var single, multi, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-steps", "10", "-seed", "11", "single", "30"}, &single, &stderr))
	require.Equal(t, 0, run([]string{"-steps", "10", "-seed", "11", "-workers", "4", "multi", "30"}, &multi, &stderr))
	require.Equal(t, single.String(), multi.String())
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "bad repetitions", args: []string{"multi", "x"}},
		{name: "bad steps", args: []string{"-steps", "-1", "multi", "5"}},
		{name: "unknown flag", args: []string{"-nope", "multi", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			require.Equal(t, 2, run(tt.args, &stdout, &stderr))
			require.Empty(t, stdout.String())
			require.Contains(t, stderr.String(), "Usage: kelly")
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kelly.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
game:
  money_start: 10
  chance_of_winning: 0.55
  max_bets: 50
  money_max: 100
steps: 5
seed: 9
workers: 3
log:
  level: debug
  format: json
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 10.0, cfg.Game.MoneyStart)
	require.Equal(t, 0.55, cfg.Game.ChanceOfWinning)
	require.Equal(t, 50, cfg.Game.MaxBets)
	require.Equal(t, 5, cfg.Steps)
	require.Equal(t, uint64(9), cfg.Seed)
	require.Equal(t, uint(3), cfg.Workers)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 50, cfg.Log.Rotation.MaxSizeMB, "unset fields keep defaults")

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	def, err := LoadConfig("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), def)
}

func TestRun_WithConfigAndLogFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "kelly.yaml")
	logPath := filepath.Join(dir, "logs", "kelly.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte("steps: 2\nlog:\n  level: info\n  format: json\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", cfgPath, "-log-file", logPath, "multi", "5"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	require.Len(t, strings.Split(strings.TrimSpace(stdout.String()), "\n"), 4)

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(logs), `"msg":"batch finished"`)
	require.Contains(t, string(logs), `"msg":"sweep complete"`)
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	_, err := newLogger(LogConfig{Level: "loud"})
	require.Error(t, err)
}
