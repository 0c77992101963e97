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
	"bufio"
	"os"
	"path/filepath"

	"xia.com/pixienet/go-pixie/pkg/log"
)

// Writer collects output in a temporary file next to path. The file appears
// at path only after Commit; nothing is left behind after Abort.
type Writer struct {
	path string
	file *os.File
	done bool
}

func NewWriter(path string) (*Writer, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		log.Error("Error while creating file: %s", path)
		return nil, err
	}
	return &Writer{
		path: path,
		file: file,
	}, nil
}

func (w *Writer) Write(buf []byte) (int, error) {
	return w.file.Write(buf)
}

// Commit flushes the temporary file to disk and renames it to the target path
func (w *Writer) Commit() error {
	if err := w.file.Chmod(0644); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Sync(); err != nil {
		w.Abort()
		return err
	}
	if err := w.file.Close(); err != nil {
		w.Abort()
		return err
	}
	if err := os.Rename(w.file.Name(), w.path); err != nil {
		w.Abort()
		return err
	}
	w.done = true
	return nil
}

// Abort drops the temporary file. It is a no-op after Commit.
func (w *Writer) Abort() {
	if w.done {
		return
	}
	w.done = true
	w.file.Close()
	if err := os.Remove(w.file.Name()); err != nil && !os.IsNotExist(err) {
		log.Warning("Error while removing %s: %s", w.file.Name(), err)
	}
}

// Save writes t as CSV to path. On error path is left untouched.
func Save(path string, t *Trace) error {
	w, err := NewWriter(path)
	if err != nil {
		return ErrOutputWrite{Path: path, Err: err}
	}
	defer w.Abort()

	buf := bufio.NewWriter(w)
	if err := WriteCSV(buf, t); err != nil {
		return ErrOutputWrite{Path: path, Err: err}
	}
	if err := buf.Flush(); err != nil {
		return ErrOutputWrite{Path: path, Err: err}
	}
	if err := w.Commit(); err != nil {
		return ErrOutputWrite{Path: path, Err: err}
	}
	log.Debug("Wrote %d samples to %s", t.Len(), path)
	return nil
}
