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
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"sigs.k8s.io/yaml"
)

type Config struct {
	Device   string `json:"device,omitempty"`
	MapSize  int    `json:"mapSize,omitempty"`
	Output   string `json:"output,omitempty"`
	Samples  int    `json:"samples,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`
	// Registers overrides the hardware register map by name (AOUTBLOCK, OB_EVREG, AADC0..AADC3)
	Registers  map[string]uint32 `json:"registers,omitempty"`
	DBPath     string            `json:"dbPath,omitempty"`
	ApiAddress string            `json:"apiAddress,omitempty"`
	filepath   string
}

func (c *Config) Filepath() string {
	return c.filepath
}

func (c *Config) SetFilepath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(c.filepath)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

func (c *Config) LoadConfig() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Load reads the config file over the current values. A missing file is not an error.
func (c *Config) Load() error {
	err := c.LoadConfig()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.Validate()
}

func (c *Config) Validate() error {
	if c.Device == "" {
		return ErrInvalidConfig{What: "device path is empty"}
	}
	if c.Output == "" {
		return ErrInvalidConfig{What: "output path is empty"}
	}
	if c.Samples <= 0 {
		return ErrInvalidConfig{What: "samples must be positive"}
	}
	if c.Samples > MaxSamples {
		return ErrInvalidConfig{What: fmt.Sprintf("samples must not exceed %d", MaxSamples)}
	}
	if c.MapSize < 4 || c.MapSize%4 != 0 {
		return ErrInvalidConfig{What: "mapSize must be a positive multiple of 4"}
	}
	return nil
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		Device:     DefaultDevice,
		MapSize:    DefaultMapSize,
		Output:     DefaultOutput,
		Samples:    DefaultSamples,
		LogLevel:   DefaultLogLevel,
		ApiAddress: DefaultApiAddress,
		filepath:   DefaultConfigPath(),
	}
}
