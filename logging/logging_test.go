package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DebugLevel},
		{"WARN", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"fatal", FatalLevel},
		{"info", InfoLevel},
		{"bogus", InfoLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), tt.in)
	}
}

func TestDefaultLoggerRoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerTo(&out, &errOut, false)
	l.SetLevel(DebugLevel)

	l.Debug("slice", Fields{"start": 0, "end": 256})
	l.Warn("clamped", Fields{"parameter": "freq_bins"})
	l.Error(errors.New("boom"), "failed")

	assert.Contains(t, out.String(), "[DEBUG] slice end=256 start=0")
	assert.Contains(t, errOut.String(), "[WARN] clamped parameter=freq_bins")
	assert.Contains(t, errOut.String(), "[ERROR] failed: boom")
}

func TestDefaultLoggerLevelFilterSharedWithChildren(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerTo(&out, &errOut, false)
	child := l.WithFields(Fields{"component": "sfft"})

	child.Debug("hidden")
	assert.Empty(t, out.String())

	l.SetLevel(DebugLevel)
	child.Debug("shown")
	assert.Contains(t, out.String(), "component=sfft")
}

func TestDefaultLoggerFatalExits(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewDefaultLoggerTo(&out, &errOut, false)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(errors.New("dead"), "stop")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut.String(), "[FATAL] stop: dead")
}

func TestRecorderCapturesFieldsAndContext(t *testing.T) {
	r := NewRecorder()
	ctx := ContextWithFields(context.Background(), Fields{"request": "abc"})

	r.WithContext(ctx).WithFields(Fields{"slice": 3}).Debug("evaluating")
	r.Warn("clamped")

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc", entries[0].Fields["request"])
	assert.Equal(t, 3, entries[0].Fields["slice"])
	assert.Len(t, r.Filter(WarnLevel), 1)

	r.SetLevel(WarnLevel)
	r.Info("dropped")
	assert.Len(t, r.Entries(), 2)

	r.Reset()
	assert.Empty(t, r.Entries())
}

func TestZerologLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf))

	l.Debug("not shown")
	assert.Empty(t, buf.String())

	l.WithFields(Fields{"freq_bins": 256}).Info("done")
	assert.Contains(t, buf.String(), `"freq_bins":256`)
	assert.Contains(t, buf.String(), `"message":"done"`)

	buf.Reset()
	l.SetLevel(DebugLevel)
	l.Debug("slice")
	assert.Contains(t, buf.String(), `"level":"debug"`)
}

func TestOrNop(t *testing.T) {
	assert.IsType(t, &NoOpLogger{}, OrNop(nil))
	r := NewRecorder()
	assert.Same(t, r, OrNop(r))
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{
		"":        FormatConsole,
		"console": FormatConsole,
		" JSON ":  FormatJSON,
		"text":    FormatText,
	} {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestNewByFormat(t *testing.T) {
	var text bytes.Buffer
	l, err := New(FormatText, &text)
	require.NoError(t, err)
	assert.IsType(t, &DefaultLogger{}, l)
	l.Info("result of sfft", Fields{"freq_bins": 256})
	assert.Contains(t, text.String(), "[INFO] result of sfft freq_bins=256")

	var js bytes.Buffer
	l, err = New(FormatJSON, &js)
	require.NoError(t, err)
	l.Warn("clamped", Fields{"parameter": "freq_bins"})
	assert.Contains(t, js.String(), `"level":"warn"`)
	assert.Contains(t, js.String(), `"parameter":"freq_bins"`)

	l, err = New(FormatConsole, &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &ZerologLogger{}, l)

	_, err = New("xml", &bytes.Buffer{})
	assert.Error(t, err)
}
