package main

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	// newLogger replaces the default logger, so subtests run sequentially.
	defer slog.SetDefault(slog.Default())

	tests := map[string]struct {
		debug     bool
		wantDebug bool
	}{
		"debug records shown with -d": {debug: true, wantDebug: true},
		"debug records hidden":        {debug: false, wantDebug: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tc.debug)

			logger.Debug("producing value")
			logger.Info("starting server")

			assert.Contains(t, buf.String(), "starting server")
			if tc.wantDebug {
				assert.Contains(t, buf.String(), "producing value")
			} else {
				assert.NotContains(t, buf.String(), "producing value")
			}
			assert.Same(t, logger, slog.Default())
		})
	}
}
