package config

import (
	"io"
	"log"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := Initialize(fs, "/etc/minish", log.New(io.Discard, "", 0)); err != nil {
		t.Fatal(err)
	}

	// Check that the config is valid
	cfg, err := Load(fs, "/etc/minish")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, defaultConfig().DefaultPath, cfg.DefaultPath)

	t.Run("keeps existing", func(t *testing.T) {
		afero.WriteFile(fs, "/etc/minish/config.yaml", []byte("default_path: /opt\ncolor: never\n"), 0600)
		assert.Nil(t, Initialize(fs, "/etc/minish", log.New(io.Discard, "", 0)))

		cfg, err := Load(fs, "/etc/minish")
		assert.Nil(t, err)
		assert.Equal(t, "/opt", cfg.DefaultPath)
	})
}
