package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := defaultConfig()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Empty(t, cfg.SearchPath)
}

func TestValidate(t *testing.T) {
	cases := map[string]struct {
		mutate  func(c *Configuration)
		wantErr string
	}{
		"valid": {
			mutate: func(c *Configuration) {},
		},
		"bad-color": {
			mutate:  func(c *Configuration) { c.Color = "sometimes" },
			wantErr: "color",
		},
		"missing-default-path": {
			mutate:  func(c *Configuration) { c.DefaultPath = "" },
			wantErr: "default_path",
		},
		"empty-search-dir": {
			mutate:  func(c *Configuration) { c.SearchPath = []string{"/bin", ""} },
			wantErr: "search_path",
		},
		"event-log-outside-dir": {
			mutate:  func(c *Configuration) { c.EventLog = "/var/log/events" },
			wantErr: "event_log",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	memFs := afero.NewMemMapFs()

	t.Run("missing", func(t *testing.T) {
		_, err := Load(memFs, "/nothing")
		assert.True(t, errors.Is(err, fs.ErrNotExist))
	})

	t.Run("strict", func(t *testing.T) {
		afero.WriteFile(memFs, "/strict/config.yaml", []byte("colour: never\n"), 0600)
		_, err := Load(memFs, "/strict")
		assert.Error(t, err)
	})

	t.Run("invalid", func(t *testing.T) {
		afero.WriteFile(memFs, "/invalid/config.yaml", []byte("color: purple\ndefault_path: /bin\n"), 0600)
		_, err := Load(memFs, "/invalid")
		assert.Error(t, err)
	})

	t.Run("config-file-path", func(t *testing.T) {
		contents := "search_path: [/opt/bin]\ndefault_path: /bin\ncolor: never\nevent_log: events.jsonl\n"
		afero.WriteFile(memFs, "/valid/config.yaml", []byte(contents), 0600)

		cfg, err := Load(memFs, "/valid/config.yaml")
		assert.NoError(t, err)
		assert.Equal(t, []string{"/opt/bin"}, cfg.SearchPath)
		assert.Equal(t, ColorNever, cfg.Color)

		fd, err := cfg.OpenEventLog()
		assert.NoError(t, err)
		fd.WriteString("{}\n")
		fd.Close()

		exists, _ := afero.Exists(memFs, "/valid/events.jsonl")
		assert.True(t, exists)
	})

	t.Run("relative-dir", func(t *testing.T) {
		relFs := afero.NewMemMapFs()
		contents := "default_path: /bin\ncolor: never\nevent_log: events.jsonl\n"
		require.NoError(t, afero.WriteFile(relFs, ConfigurationName, []byte(contents), 0600))

		cfg, err := Load(relFs, ".")
		require.NoError(t, err)

		fd, err := cfg.OpenEventLog()
		require.NoError(t, err)
		fd.WriteString("{}\n")
		require.NoError(t, fd.Close())

		wd, err := os.Getwd()
		require.NoError(t, err)
		exists, _ := afero.Exists(relFs, filepath.Join(wd, "events.jsonl"))
		assert.True(t, exists)

		rd, err := cfg.ReadEventLog()
		require.NoError(t, err)
		rd.Close()
	})
}

func TestOpenEventLogDisabled(t *testing.T) {
	fd, err := Default(afero.NewMemMapFs()).OpenEventLog()
	assert.NoError(t, err)
	assert.Nil(t, fd)
}

func TestReadEventLog(t *testing.T) {
	cfg := Default(afero.NewMemMapFs())

	_, err := cfg.ReadEventLog()
	assert.Error(t, err)

	cfg.EventLog = "events.log"
	w, err := cfg.OpenEventLog()
	require.NoError(t, err)
	_, err = w.Write([]byte("{}\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := cfg.ReadEventLog()
	require.NoError(t, err)
	defer r.Close()
	contents, err := afero.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(contents))
}
