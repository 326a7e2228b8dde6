package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"release", Info{Version: "1.4.0", CommitHash: "0123456789abcdef"}, "1.4.0"},
		{"dev build", Info{Version: "dev", CommitHash: "0123456789abcdef"}, "0123456"},
		{"short hash", Info{Version: "dev", CommitHash: "dev"}, "dev"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}

func TestString(t *testing.T) {
	info := Info{Version: "1.4.0", CommitHash: "abc1234", BuildTime: "2026-01-02"}
	assert.Equal(t, "dtsgen 1.4.0 (commit abc1234, built 2026-01-02)", info.String())

	info.Version = "dev"
	assert.Contains(t, info.String(), "dtsgen dev")
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v1.2.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-03-04T05:06:07Z"},
		},
	}

	tests := []struct {
		name string
		info Info
		want Info
	}{
		{
			"defaults filled",
			Info{Version: "dev", CommitHash: "dev", BuildTime: "unknown"},
			Info{Version: "1.2.0", CommitHash: "0123456789abcdef", BuildTime: "2026-03-04T05:06:07Z"},
		},
		{
			"ldflags win",
			Info{Version: "2.0.0", CommitHash: "feedbee", BuildTime: "today"},
			Info{Version: "2.0.0", CommitHash: "feedbee", BuildTime: "today"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fromBuildInfo(tt.info, bi))
		})
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	assert.Equal(t, "dev", fromBuildInfo(Info{Version: "dev"}, devel).Version)
}
