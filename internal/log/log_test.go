// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// no-cloc
package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"trace", log.DebugLevel},
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestHandleLog(t *testing.T) {
	tests := []struct {
		name   string
		level  log.Level
		msg    string
		fields log.Fields
		want   string
	}{
		{"debug", log.DebugLevel, "hello", nil, " D hello\n"},
		{"warn", log.WarnLevel, "careful", nil, " W careful\n"},
		{"trace", log.DebugLevel, "TRACE: deep", nil, " T deep\n"},
		{"error field", log.ErrorLevel, "load failed", log.Fields{"error": errors.New("boom")}, " E load failed: boom\n"},
		{"fields", log.InfoLevel, "loaded", log.Fields{"size": 3, "error": errors.New("x"), "name": "a.yaml"}, " I loaded: x name=a.yaml size=3\n"},
		{"unknown level", log.Level(42), "odd", nil, " ? odd\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &CustomHandler{Writer: &buf}
			require.NoError(t, h.HandleLog(&log.Entry{Level: tt.level, Message: tt.msg, Fields: tt.fields}))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestWriter(t *testing.T) {
	assert.Equal(t, os.Stderr, writer(""))
	assert.Equal(t, os.Stderr, writer("   "))

	path := filepath.Join(t.TempDir(), "yd.log")
	w := writer(path)
	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	assert.Equal(t, path, lj.Filename)
	assert.Positive(t, lj.MaxSize)
}

func TestInitLoggerTrace(t *testing.T) {
	t.Setenv("YD_LOG", "TRACE")
	t.Setenv("YD_LOG_FILE", "")
	InitLogger()
	assert.True(t, traceEnabled)

	t.Setenv("YD_LOG", "")
	InitLogger()
	assert.False(t, traceEnabled)
}
