package audio

import (
	"go/parser"
	"go/token"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToneCapturerLifecycle(t *testing.T) {
	c := NewToneCapturer(256, 48000, 440, 0.5)

	_, err := c.GetBuffer()
	assert.ErrorIs(t, err, ErrNotCapturing)
	assert.ErrorIs(t, c.Stop(), ErrNotCapturing)

	require.NoError(t, c.Start())
	assert.True(t, c.IsCapturing())
	assert.ErrorIs(t, c.Start(), ErrAlreadyCapturing)

	require.NoError(t, c.Stop())
	assert.False(t, c.IsCapturing())
}

func TestToneCapturerWindowsAreContinuous(t *testing.T) {
	c := NewToneCapturer(100, 48000, 480, 1)
	require.NoError(t, c.Start())

	first, err := c.GetBuffer()
	require.NoError(t, err)
	second, err := c.GetBuffer()
	require.NoError(t, err)

	assert.Len(t, first.Samples, 100)
	assert.Equal(t, 48000, first.SampleRate)

	// 480 Hz at 48 kHz has a 100 sample period
	for i := range first.Samples {
		assert.InDelta(t, first.Samples[i], second.Samples[i], 1e-5)
	}
	assert.InDelta(t, math.Sin(2*math.Pi*25/100), first.Samples[25], 1e-6)
}

func TestToneCapturerMute(t *testing.T) {
	now := time.Unix(0, 0)
	c := NewToneCapturer(64, 48000, 440, 1)
	c.now = func() time.Time { return now }
	require.NoError(t, c.Start())

	c.Mute(5 * time.Second)
	buf, err := c.GetBuffer()
	require.NoError(t, err)
	for _, s := range buf.Samples {
		assert.Equal(t, float32(0), s)
	}

	now = now.Add(5 * time.Second)
	buf, err = c.GetBuffer()
	require.NoError(t, err)
	assert.NotEqual(t, make([]float32, 64), buf.Samples)
}

func TestMuteTimer(t *testing.T) {
	now := time.Unix(100, 0)
	m := &MuteTimer{now: func() time.Time { return now }}
	assert.False(t, m.IsMuted())

	m.Mute(time.Second)
	assert.True(t, m.IsMuted())

	now = now.Add(999 * time.Millisecond)
	assert.True(t, m.IsMuted())

	now = now.Add(time.Millisecond)
	assert.False(t, m.IsMuted())
}

// The analysis and UI packages import audio, so it has to build without cgo
func TestPackageHasNoCgoImports(t *testing.T) {
	files, err := filepath.Glob("*.go")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		require.NoError(t, err)
		for _, imp := range f.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			require.NoError(t, err)
			assert.NotEqual(t, "C", path, name)
			assert.NotContains(t, path, "portaudio", name)
		}
	}
}
