/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetFilepath(filepath.Join(t.TempDir(), "nope", ConfigFile))
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := NewDefaultConfig()
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	data := []byte(`
device: /dev/uio1
samples: 16
registers:
  AADC2: 0x1c2
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	cfg := NewDefaultConfig()
	cfg.SetFilepath(path)
	if err := cfg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := NewDefaultConfig()
	want.Device = "/dev/uio1"
	want.Samples = 16
	want.Registers = map[string]uint32{"AADC2": 0x1c2}
	if diff := cmp.Diff(want, cfg, cmpopts.IgnoreUnexported(Config{})); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("samples: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg := NewDefaultConfig()
	cfg.SetFilepath(path)
	var invalid ErrInvalidConfig
	if err := cfg.Load(); !errors.As(err, &invalid) {
		t.Fatalf("Load = %v, want ErrInvalidConfig", err)
	}
}

func TestValidateSamples(t *testing.T) {
	for _, tc := range []struct {
		samples int
		valid   bool
	}{
		{samples: 0},
		{samples: -1},
		{samples: 1, valid: true},
		{samples: DefaultSamples, valid: true},
		{samples: MaxSamples, valid: true},
		{samples: MaxSamples + 1},
		{samples: 64 * MaxSamples},
	} {
		cfg := NewDefaultConfig()
		cfg.Samples = tc.samples
		err := cfg.Validate()
		var invalid ErrInvalidConfig
		if tc.valid && err != nil {
			t.Errorf("Validate(samples=%d) = %v, want nil", tc.samples, err)
		}
		if !tc.valid && !errors.As(err, &invalid) {
			t.Errorf("Validate(samples=%d) = %v, want ErrInvalidConfig", tc.samples, err)
		}
	}
}

func TestPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigDir, ConfigFile)
	cfg := NewDefaultConfig()
	cfg.SetFilepath(path)
	cfg.DBPath = "/var/lib/go-pixie/state.db"
	if err := cfg.Persist(false); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	var exists ErrConfigFileExists
	if err := cfg.Persist(false); !errors.As(err, &exists) {
		t.Fatalf("second Persist = %v, want ErrConfigFileExists", err)
	}
	if err := cfg.Persist(true); err != nil {
		t.Fatalf("Persist(overwrite): %v", err)
	}

	loaded := NewDefaultConfig()
	loaded.SetFilepath(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DBPath != cfg.DBPath {
		t.Errorf("DBPath = %q, want %q", loaded.DBPath, cfg.DBPath)
	}
}
