package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/griffithind/termout/internal/config"
	terrors "github.com/griffithind/termout/internal/errors"
	"github.com/griffithind/termout/internal/formatter"
	"github.com/griffithind/termout/internal/output"
	"github.com/griffithind/termout/internal/termcap"
	"github.com/griffithind/termout/internal/ui"
)

// setFlag sets a flag variable for the duration of the test.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

func configureUI(t *testing.T, v output.Verbosity, decorated bool) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	prev := ui.Config{Out: ui.Out(), Err: ui.Err()}
	t.Cleanup(func() { ui.Configure(prev) })

	var out, errOut bytes.Buffer
	ui.Configure(ui.Config{
		Out: output.NewStreamOutput(&out, output.WithDecorated(decorated), output.WithVerbosity(v)),
		Err: output.NewStreamOutput(&errOut, output.WithDecorated(decorated), output.WithVerbosity(v)),
	})
	return &out, &errOut
}

type latin1Stream struct {
	bytes.Buffer
}

func (*latin1Stream) Encoding() string { return "latin-1" }

func TestRunWrite(t *testing.T) {
	tests := []struct {
		name      string
		verbosity string
		typ       string
		stderr    bool
		noNewline bool
		args      []string
		wantOut   string
		wantErr   string
	}{
		{
			name:      "tags removed when undecorated",
			verbosity: "normal", typ: "normal",
			args:    []string{"<info>a</info>", "b"},
			wantOut: "a\nb\n",
		},
		{
			name:      "raw keeps markup",
			verbosity: "normal", typ: "raw",
			args:    []string{"<info>a</info>"},
			wantOut: "<info>a</info>\n",
		},
		{
			name:      "above output verbosity is dropped",
			verbosity: "verbose", typ: "normal",
			args: []string{"detail"},
		},
		{
			name:      "stderr",
			verbosity: "normal", typ: "plain", stderr: true,
			args:    []string{"<error>bad</error>"},
			wantErr: "bad\n",
		},
		{
			name:      "no newline",
			verbosity: "quiet", typ: "normal", noNewline: true,
			args:    []string{"a", "b"},
			wantOut: "ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut := configureUI(t, output.VerbosityNormal, false)
			setFlag(t, &writeVerbosity, tt.verbosity)
			setFlag(t, &writeType, tt.typ)
			setFlag(t, &writeStderr, tt.stderr)
			setFlag(t, &writeNoNewline, tt.noNewline)

			require.NoError(t, runWrite(writeCmd, tt.args))
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}

func TestRunWrite_Decorated(t *testing.T) {
	out, _ := configureUI(t, output.VerbosityNormal, true)
	setFlag(t, &writeVerbosity, "normal")
	setFlag(t, &writeType, "normal")

	require.NoError(t, runWrite(writeCmd, []string{"<info>ok</info>"}))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "ok")
	assert.NotContains(t, out.String(), "<info>")
}

func TestRunWrite_Encoding(t *testing.T) {
	tests := []struct {
		encoding string
		args     []string
		want     string
	}{
		{"latin-1", []string{"café"}, "caf\xe9\n"},
		{"cp437", []string{"─"}, "\xc4\n"},
		{"ascii", []string{"naïve", "ok"}, "na\xefve\nok\n"},
		{"utf-8", []string{"café"}, "café\n"},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			out, _ := configureUI(t, output.VerbosityNormal, false)
			setFlag(t, &writeVerbosity, "normal")
			setFlag(t, &writeType, "normal")
			setFlag(t, &writeEncoding, tt.encoding)

			require.NoError(t, runWrite(writeCmd, tt.args))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRunWrite_EncodingKeepsOutputSettings(t *testing.T) {
	out, _ := configureUI(t, output.VerbosityQuiet, true)
	setFlag(t, &writeVerbosity, "normal")
	setFlag(t, &writeType, "normal")
	setFlag(t, &writeEncoding, "latin-1")

	require.NoError(t, runWrite(writeCmd, []string{"dropped"}))
	assert.Empty(t, out.String())

	writeVerbosity = "quiet"
	require.NoError(t, runWrite(writeCmd, []string{"<info>kept</info>"}))
	assert.Contains(t, out.String(), "\x1b[")
	assert.Contains(t, out.String(), "kept")
}

func TestRunWrite_UnknownEncoding(t *testing.T) {
	configureUI(t, output.VerbosityNormal, false)
	setFlag(t, &writeVerbosity, "normal")
	setFlag(t, &writeType, "normal")
	setFlag(t, &writeEncoding, "klingon")

	err := runWrite(writeCmd, []string{"x"})
	assert.True(t, terrors.Is(err, terrors.CodeEncodingUnknown))
}

func TestRunWrite_InvalidFlags(t *testing.T) {
	configureUI(t, output.VerbosityNormal, false)

	setFlag(t, &writeVerbosity, "loud")
	setFlag(t, &writeType, "normal")
	err := runWrite(writeCmd, []string{"x"})
	assert.True(t, terrors.Is(err, terrors.CodeVerbosityInvalid))

	writeVerbosity = "normal"
	writeType = "fancy"
	err = runWrite(writeCmd, []string{"x"})
	assert.True(t, terrors.Is(err, terrors.CodeTypeInvalid))
}

func TestProbeEnvironment(t *testing.T) {
	t.Run("process", func(t *testing.T) {
		setFlag(t, &probeEnv, nil)
		setFlag(t, &probeOS, "")

		env, simulated, err := probeEnvironment()
		require.NoError(t, err)
		assert.False(t, simulated)
		assert.IsType(t, termcap.OSEnvironment{}, env)
	})

	t.Run("env replaces the process environment", func(t *testing.T) {
		t.Setenv("TERMOUT_PROBE_TEST", "1")
		setFlag(t, &probeEnv, []string{"TERM_PROGRAM=Hyper"})
		setFlag(t, &probeOS, "windows")

		env, simulated, err := probeEnvironment()
		require.NoError(t, err)
		assert.True(t, simulated)
		assert.Equal(t, "windows", env.GOOS())
		v, ok := env.LookupEnv("TERM_PROGRAM")
		assert.True(t, ok)
		assert.Equal(t, "Hyper", v)
		_, ok = env.LookupEnv("TERMOUT_PROBE_TEST")
		assert.False(t, ok)
	})

	t.Run("os alone inherits", func(t *testing.T) {
		t.Setenv("TERMOUT_PROBE_TEST", "1")
		setFlag(t, &probeEnv, nil)
		setFlag(t, &probeOS, "windows")

		env, simulated, err := probeEnvironment()
		require.NoError(t, err)
		assert.True(t, simulated)
		v, ok := env.LookupEnv("TERMOUT_PROBE_TEST")
		assert.True(t, ok)
		assert.Equal(t, "1", v)
	})

	t.Run("invalid entry", func(t *testing.T) {
		setFlag(t, &probeEnv, []string{"=x"})
		setFlag(t, &probeOS, "")

		_, _, err := probeEnvironment()
		assert.Error(t, err)
	})
}

func TestBuildProbeReport(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "probe")
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	env := termcap.MapEnvironment{
		Vars: map[string]string{"LANG": "en_US.UTF-8", "COLUMNS": "120"},
		OS:   "linux",
	}
	report := buildProbeReport(env, true, simulatedOutputs(env, []namedStream{
		{name: "file", stream: f},
		{name: "latin1", stream: &latin1Stream{}},
	}))

	assert.Equal(t, "linux", report.OS)
	assert.True(t, report.Simulated)
	require.Len(t, report.Streams, 2)

	file := report.Streams[0]
	assert.Equal(t, "file", file.Stream)
	assert.False(t, file.Decorated)
	assert.Equal(t, string(termcap.ReasonNotTerminal), file.Reason)
	assert.True(t, file.UTF8)
	assert.Empty(t, file.DeclaredEncoding)
	assert.Equal(t, "UTF-8", file.PreferredEncoding)
	assert.Equal(t, 120, file.Width)

	latin1 := report.Streams[1]
	assert.False(t, latin1.Decorated)
	assert.Equal(t, string(termcap.ReasonNoDescriptor), latin1.Reason)
	assert.False(t, latin1.UTF8)
	assert.Equal(t, "latin-1", latin1.DeclaredEncoding)
}

func TestBuildProbeReport_NoColor(t *testing.T) {
	env := termcap.MapEnvironment{Vars: map[string]string{"NO_COLOR": "", "TERM_PROGRAM": "Hyper"}, OS: "linux"}
	report := buildProbeReport(env, true, simulatedOutputs(env, []namedStream{{name: "stdout", stream: &bytes.Buffer{}}}))

	require.Len(t, report.Streams, 1)
	assert.False(t, report.Streams[0].Decorated)
	assert.Equal(t, string(termcap.ReasonNoColor), report.Streams[0].Reason)
	assert.Equal(t, termcap.DefaultWidth, report.Streams[0].Width)
}

func TestBuildProbeReport_ProcessOutputs(t *testing.T) {
	configureUI(t, output.VerbosityNormal, true)

	env := termcap.MapEnvironment{OS: "linux"}
	report := buildProbeReport(env, false, processOutputs())

	assert.False(t, report.Simulated)
	require.Len(t, report.Streams, 2)
	for _, s := range report.Streams {
		assert.True(t, s.Decorated, s.Stream)
		assert.Equal(t, string(termcap.ReasonExplicit), s.Reason, s.Stream)
	}
	assert.Equal(t, "stdout", report.Streams[0].Stream)
	assert.Equal(t, "stderr", report.Streams[1].Stream)
}

func TestPrintProbeReport(t *testing.T) {
	out, _ := configureUI(t, output.VerbosityNormal, false)

	report := ProbeReport{OS: "windows", Simulated: true, Streams: []StreamReport{
		{Stream: "stdout", Decorated: true, Reason: string(termcap.ReasonConEmu), UTF8: true, PreferredEncoding: "cp65001", Width: 80},
		{Stream: "stderr", Reason: string(termcap.ReasonNoDescriptor), DeclaredEncoding: "latin-1", Width: 100},
	}}
	require.NoError(t, printProbeReport(report))

	got := out.String()
	assert.Contains(t, got, "os=windows")
	assert.Contains(t, got, "cp65001 (locale)")
	assert.Contains(t, got, "latin-1")
	assert.Contains(t, got, "stdout: ANSI decoration (ConEmuANSI is ON)")
	assert.Contains(t, got, "stderr: UTF-8")
	assert.NotContains(t, got, "\x1b[")
}

func TestEncodingLabel(t *testing.T) {
	assert.Equal(t, "latin-1", encodingLabel(StreamReport{DeclaredEncoding: "latin-1", PreferredEncoding: "UTF-8"}))
	assert.Equal(t, "UTF-8 (locale)", encodingLabel(StreamReport{PreferredEncoding: "UTF-8"}))
	assert.Equal(t, "-", encodingLabel(StreamReport{}))
}

func TestPlaySections_Undecorated(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewStreamOutput(&buf, output.WithDecorated(false))

	require.NoError(t, playSections(context.Background(), out, 2, 0))
	assert.Equal(t, "starting\n2 steps, one every 0s\nstep 1/2\nstep 2/2\ndone\n", buf.String())
}

func TestPlaySections_Decorated(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewStreamOutput(&buf, output.WithDecorated(true))

	require.NoError(t, playSections(context.Background(), out, 1, 0))

	got := buf.String()
	// Overwriting the first section erases both sections' rows.
	assert.Contains(t, got, "\x1b[2A\x1b[0J")
	assert.Contains(t, got, "\x1b[1A\x1b[0J")
	assert.Contains(t, got, "done")
	require.Len(t, out.Sections(), 2)
	assert.Contains(t, out.Sections()[0].Content(), "step")
}

func TestPlaySections_Canceled(t *testing.T) {
	var buf bytes.Buffer
	out := output.NewStreamOutput(&buf, output.WithDecorated(false))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := playSections(ctx, out, 3, time.Hour)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, buf.String(), "step")
}

func TestResolveVerbosity(t *testing.T) {
	cfg := config.Default()
	cfg.Verbosity = "debug"

	setFlag(t, &quiet, false)
	setFlag(t, &verbose, 0)
	v, err := resolveVerbosity(cfg)
	require.NoError(t, err)
	assert.Equal(t, output.VerbosityDebug, v)

	verbose = 1
	v, err = resolveVerbosity(cfg)
	require.NoError(t, err)
	assert.Equal(t, output.VerbosityVerbose, v)

	quiet = true
	v, err = resolveVerbosity(cfg)
	require.NoError(t, err)
	assert.Equal(t, output.VerbosityQuiet, v)

	quiet, verbose = false, 0
	cfg.Verbosity = "loud"
	_, err = resolveVerbosity(cfg)
	assert.Error(t, err)
}

func TestDecorationOverride(t *testing.T) {
	on := true
	cfg := config.Default()

	setFlag(t, &forceANSI, false)
	setFlag(t, &noANSI, false)
	assert.Nil(t, decorationOverride(cfg))

	cfg.Decorated = &on
	require.NotNil(t, decorationOverride(cfg))
	assert.True(t, *decorationOverride(cfg))

	noANSI = true
	assert.False(t, *decorationOverride(cfg))

	forceANSI = true
	assert.False(t, *decorationOverride(cfg), "--no-ansi wins")

	noANSI = false
	cfg.Decorated = nil
	assert.True(t, *decorationOverride(cfg))
}

func TestNewStreamOutput(t *testing.T) {
	setFlag(t, &forceANSI, true)
	setFlag(t, &noANSI, false)

	cfg := config.Default()
	cfg.Styles = map[string]formatter.StyleSpec{"fire": {FG: "red", Options: []string{"bold"}}}

	var buf bytes.Buffer
	o, err := newStreamOutput(&buf, cfg, output.VerbosityVerbose)
	require.NoError(t, err)
	assert.True(t, o.IsDecorated())
	assert.Equal(t, termcap.ReasonExplicit, o.DecorationReason())
	assert.Equal(t, output.VerbosityVerbose, o.Verbosity())
	assert.True(t, o.Formatter().HasStyle("fire"))

	cfg.Styles = map[string]formatter.StyleSpec{"bad": {FG: "mauve"}}
	_, err = newStreamOutput(&buf, cfg, output.VerbosityNormal)
	assert.True(t, terrors.Is(err, terrors.CodeConfigInvalid))
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbosity: verbose\n"), 0o644))

	setFlag(t, &configPath, path)
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "verbose", cfg.Verbosity)
	assert.Equal(t, path, cfg.Path())

	configPath = filepath.Join(dir, "missing.yaml")
	_, err = loadConfig()
	assert.True(t, terrors.Is(err, terrors.CodeConfigNotFound))
}

func TestLoggerOptions(t *testing.T) {
	setFlag(t, &logFile, "")

	cfg := config.Default()
	cfg.Log.File = "/tmp/termout.log"
	stderr := output.NewStreamOutput(&bytes.Buffer{}, output.WithDecorated(false))

	opts := loggerOptions(cfg, output.VerbosityQuiet, stderr)
	assert.Equal(t, 0, opts.Verbosity)
	assert.True(t, opts.NoColor)
	assert.Equal(t, "/tmp/termout.log", opts.File)
	assert.Equal(t, 5, opts.MaxSizeMB)

	assert.Equal(t, 0, loggerOptions(cfg, output.VerbosityNormal, stderr).Verbosity)
	assert.Equal(t, 1, loggerOptions(cfg, output.VerbosityVerbose, stderr).Verbosity)
	assert.Equal(t, 3, loggerOptions(cfg, output.VerbosityDebug, stderr).Verbosity)

	logFile = "/var/log/override.log"
	assert.Equal(t, "/var/log/override.log", loggerOptions(cfg, output.VerbosityNormal, stderr).File)
}

func TestRunConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Verbosity = "verbose"
	setFlag(t, &loadedConfig, cfg)

	t.Run("yaml", func(t *testing.T) {
		out, _ := configureUI(t, output.VerbosityNormal, false)
		setFlag(t, &configJSON, false)
		setFlag(t, &configValidateOnly, false)

		require.NoError(t, runConfig(configCmd, nil))
		assert.Contains(t, out.String(), "verbosity: verbose")
	})

	t.Run("json", func(t *testing.T) {
		out, _ := configureUI(t, output.VerbosityQuiet, false)
		setFlag(t, &configJSON, true)
		setFlag(t, &configValidateOnly, false)

		require.NoError(t, runConfig(configCmd, nil))
		assert.Contains(t, out.String(), `"verbosity": "verbose"`)
	})

	t.Run("validate", func(t *testing.T) {
		out, _ := configureUI(t, output.VerbosityNormal, false)
		setFlag(t, &configJSON, false)
		setFlag(t, &configValidateOnly, true)

		require.NoError(t, runConfig(configCmd, nil))
		assert.Contains(t, out.String(), "using defaults")
	})

	t.Run("invalid", func(t *testing.T) {
		configureUI(t, output.VerbosityNormal, false)
		bad := config.Default()
		bad.Verbosity = "loud"
		setFlag(t, &loadedConfig, bad)

		err := runConfig(configCmd, nil)
		assert.True(t, terrors.Is(err, terrors.CodeConfigInvalid))
	})
}

func TestCompletion(t *testing.T) {
	var buf bytes.Buffer
	completionCmd.SetOut(&buf)
	t.Cleanup(func() { completionCmd.SetOut(nil) })

	require.NoError(t, completionCmd.RunE(completionCmd, []string{"bash"}))
	assert.Contains(t, buf.String(), "termout")
}
