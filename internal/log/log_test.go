// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
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
		{"bogus", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLevel(tt.in))
		})
	}
}

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)

	h := &CustomHandler{}

	_ = h.HandleLog(&log.Entry{Level: log.WarnLevel, Message: "careful"})
	assert.Contains(t, buf.String(), " W careful\n")

	buf.Reset()
	_ = h.HandleLog(&log.Entry{Level: log.DebugLevel, Message: "TRACE: deep"})
	assert.Contains(t, buf.String(), " T deep\n")

	buf.Reset()
	_ = h.HandleLog(&log.Entry{
		Level:   log.ErrorLevel,
		Message: "failed",
		Fields:  log.Fields{"error": errors.New("boom")},
	})
	assert.Contains(t, buf.String(), " E failed: boom\n")
}

func TestApplyFlags(t *testing.T) {
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	defer SetOutput(prev)
	log.SetHandler(&CustomHandler{})

	log.SetLevel(log.WarnLevel)
	ApplyFlags(false, false, true)
	Warnf("hidden %d", 1)
	assert.Empty(t, buf.String())

	ApplyFlags(true, true, true)
	Debugf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	log.SetLevel(log.WarnLevel)
}
