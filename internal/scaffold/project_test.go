package scaffold

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectName(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
		wantErr  bool
	}{
		{name: "bare name", path: "myapp", expected: "myapp"},
		{name: "nested relative", path: "projects/demo", expected: "demo"},
		{name: "absolute", path: "/tmp/work/demo", expected: "demo"},
		{name: "trailing separator", path: "demo/", expected: "demo"},
		{name: "dotted component", path: "./demo", expected: "demo"},
		{name: "empty", path: "", wantErr: true},
		{name: "blank", path: "   ", wantErr: true},
		{name: "current dir", path: ".", wantErr: true},
		{name: "parent dir", path: "..", wantErr: true},
		{name: "collapses to dot", path: "demo/..", wantErr: true},
		{name: "root", path: "/", wantErr: true},
		{name: "invalid utf8", path: "demo\xff", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ProjectName(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProjectName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
