package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalDeviceNames(t *testing.T) {
	in, out := terminalDeviceNames("windows")
	assert.Equal(t, "CONIN$", in)
	assert.Equal(t, "CONOUT$", out)

	in, out = terminalDeviceNames("linux")
	assert.Equal(t, "/dev/tty", in)
	assert.Equal(t, "/dev/tty", out)
}

func TestResolveSnapshotSize(t *testing.T) {
	tests := []struct {
		name                     string
		flagW, flagH, detW, detH int
		want                     snapshotSize
	}{
		{"flags win", 60, 10, 120, 40, snapshotSize{60, 10}},
		{"detected fills gaps", 0, 10, 120, 40, snapshotSize{120, 10}},
		{"fallback", 0, 0, 0, 0, snapshotSize{80, 24}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveSnapshotSize(tt.flagW, tt.flagH, tt.detW, tt.detH))
		})
	}
}
