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

package capture

import (
	"errors"

	"xia.com/pixienet/go-pixie/pkg/device"
	"xia.com/pixienet/go-pixie/pkg/trace"
)

const (
	ExitOK = iota
	// ExitDevice means the register window could not be established
	ExitDevice
	ExitOutput
	ExitFailure
)

// ExitCode maps an error returned by Run onto the process exit status
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var openErr device.ErrDeviceOpen
	var mapErr device.ErrMapping
	var writeErr trace.ErrOutputWrite
	switch {
	case errors.As(err, &openErr), errors.As(err, &mapErr):
		return ExitDevice
	case errors.As(err, &writeErr):
		return ExitOutput
	default:
		return ExitFailure
	}
}
