package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brachisto/brachisto-go/internal/infrastructure/config"
)

func TestLoggingWriter_StandardStreams(t *testing.T) {
	out, err := (&config.LoggingConfig{Output: "stdout"}).Writer()
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, out)

	out, err = (&config.LoggingConfig{Output: "stderr"}).Writer()
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, out)
}

func TestLoggingWriter_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.log")
	cfg := &config.LoggingConfig{Output: "file", FilePath: path}

	out, err := cfg.Writer()
	require.NoError(t, err)
	t.Cleanup(func() {
		if f, ok := out.(*os.File); ok {
			f.Close()
		}
	})

	_, err = out.Write([]byte("hello\n"))
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}

func TestLoggingWriter_FileWithoutPath(t *testing.T) {
	_, err := (&config.LoggingConfig{Output: "file"}).Writer()
	assert.Error(t, err)
}
