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
	"fmt"
)

// ErrDeviceOpen returned when the register device node can not be opened
type ErrDeviceOpen struct {
	Path string
	Err  error
}

func (e ErrDeviceOpen) Error() string {
	return fmt.Sprintf("Failed to open devfile %s: %s", e.Path, e.Err)
}

func (e ErrDeviceOpen) Unwrap() error {
	return e.Err
}

// ErrMapping returned when the register window of an opened device can not be mapped
type ErrMapping struct {
	Path string
	Size int
	Err  error
}

func (e ErrMapping) Error() string {
	return fmt.Sprintf("Failed to mmap %d bytes of %s: %s", e.Size, e.Path, e.Err)
}

func (e ErrMapping) Unwrap() error {
	return e.Err
}

type ErrUnknownRegister struct {
	Name string
}

func (e ErrUnknownRegister) Error() string {
	return fmt.Sprintf("Unknown register: %s", e.Name)
}

type ErrRegisterOutOfWindow struct {
	Name   string
	Offset uint32
	Size   int
}

func (e ErrRegisterOutOfWindow) Error() string {
	return fmt.Sprintf("Register %s at offset 0x%x is outside of %d byte window", e.Name, e.Offset, e.Size)
}
