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

package device

import (
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"xia.com/pixienet/go-pixie/pkg/log"
)

const (
	// MapOffset is the start of the register block in the uio mapping region
	MapOffset = 0
)

// Registers is a 32-bit register file addressed by cell index
type Registers interface {
	ReadReg(offset uint32) uint32
	WriteReg(offset uint32, value uint32)
}

var (
	openFunc   = unix.Open
	mmapFunc   = unix.Mmap
	munmapFunc = unix.Munmap
	closeFunc  = unix.Close
)

// Window is the register block of a uio device mapped into the process.
// It must not be used after Close.
type Window struct {
	path string
	fd   int
	mem  []byte
}

var _ Registers = &Window{}

// Open opens the device node read/write and maps size bytes of it shared.
// The device is closed again if mapping fails.
func Open(path string, size int) (*Window, error) {
	log.Debug("Opening register device: %s", path)
	fd, err := openFunc(path, unix.O_RDWR|unix.O_SYNC|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, ErrDeviceOpen{Path: path, Err: err}
	}

	log.Debug("Mapping %d bytes of %s at offset %d", size, path, MapOffset)
	mem, err := mmapFunc(fd, MapOffset, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		if closeErr := closeFunc(fd); closeErr != nil {
			log.Warning("Error while closing %s: %s", path, closeErr)
		}
		return nil, ErrMapping{Path: path, Size: size, Err: err}
	}

	return &Window{
		path: path,
		fd:   fd,
		mem:  mem,
	}, nil
}

func (w *Window) Path() string {
	return w.path
}

func (w *Window) Size() int {
	return len(w.mem)
}

// cell indexes in uint64 so offsets of 1<<30 and above cannot wrap into the window.
func (w *Window) cell(offset uint32) *uint32 {
	i := uint64(offset) * 4
	b := w.mem[i : i+4 : i+4]
	return (*uint32)(unsafe.Pointer(&b[0]))
}

// ReadReg loads one register. Every call reaches the hardware.
func (w *Window) ReadReg(offset uint32) uint32 {
	return atomic.LoadUint32(w.cell(offset))
}

// WriteReg stores one register. Every call reaches the hardware.
func (w *Window) WriteReg(offset uint32, value uint32) {
	atomic.StoreUint32(w.cell(offset), value)
}

// Close unmaps the window and then closes the device. Repeated calls are no-ops.
func (w *Window) Close() error {
	var firstErr error
	if w.mem != nil {
		log.Debug("Unmapping %s", w.path)
		if err := munmapFunc(w.mem); err != nil {
			firstErr = err
		}
		w.mem = nil
	}
	if w.fd >= 0 {
		log.Debug("Closing %s", w.path)
		if err := closeFunc(w.fd); err != nil && firstErr == nil {
			firstErr = err
		}
		w.fd = -1
	}
	return firstErr
}
