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

package trace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ADC.csv")
	const n = 100
	tr := NewTrace(n)
	for k := 0; k < n; k++ {
		tr.ADC[1][k] = uint16(k * 3)
	}

	if err := Save(path, tr); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != n+1 {
		t.Fatalf("%d lines, want %d", len(lines), n+1)
	}
	if lines[0] != "sample,adc0,adc1,adc2,adc3" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[n] != "99,0,297,0,0" {
		t.Errorf("last row = %q", lines[n])
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d entries, want only ADC.csv", len(entries))
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ADC.csv")
	if err := os.WriteFile(path, []byte("stale\nstale\nstale\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Save(path, NewTrace(1)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "sample,adc0,adc1,adc2,adc3\n0,0,0,0,0\n"; string(data) != want {
		t.Errorf("file = %q, want %q", data, want)
	}
}

func TestSaveUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "ADC.csv")
	err := Save(path, NewTrace(4))
	var writeErr ErrOutputWrite
	if !errors.As(err, &writeErr) {
		t.Fatalf("Save = %v, want ErrOutputWrite", err)
	}
	if writeErr.Path != path {
		t.Errorf("Path = %q, want %q", writeErr.Path, path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("output exists after failed Save")
	}
}

func TestWriterAbortLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ADC.csv")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("sample,adc0\n0,1\n")); err != nil {
		t.Fatal(err)
	}
	w.Abort()
	w.Abort()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory holds %d entries after Abort, want 0", len(entries))
	}
}
