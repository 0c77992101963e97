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
	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/device"
	"xia.com/pixienet/go-pixie/pkg/log"
	"xia.com/pixienet/go-pixie/pkg/state"
	"xia.com/pixienet/go-pixie/pkg/trace"
)

// Window is a mapped register block that must be closed exactly once
type Window interface {
	device.Registers
	Close() error
}

type Opener func(path string, size int) (Window, error)

// OpenDevice binds the uio device register block
func OpenDevice(path string, size int) (Window, error) {
	w, err := device.Open(path, size)
	if err != nil {
		return nil, err
	}
	return w, nil
}

type Capture struct {
	*config.Config
	Open Opener
}

func NewCapture(cfg *config.Config) *Capture {
	return &Capture{
		Config: cfg,
		Open:   OpenDevice,
	}
}

// Run performs one capture: bind the device, acquire the trace, write it out.
// The register window is released on every return path.
func (c *Capture) Run() error {
	regMap, err := device.NewRegMap(c.Registers, c.MapSize)
	if err != nil {
		return err
	}

	win, err := c.Open(c.Device, c.MapSize)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := win.Close(); closeErr != nil {
			log.Warning("Error while releasing %s: %s", c.Device, closeErr)
		}
	}()

	log.Info("Reading %d samples from %d channels of %s", c.Samples, device.NChannels, c.Device)
	t := trace.Acquire(win, regMap, c.Samples)

	if err := trace.Save(c.Output, t); err != nil {
		return err
	}
	log.Info("Trace written to %s", c.Output)

	c.record(t)
	return nil
}

// record keeps a history entry. Failing to do so does not fail the capture.
func (c *Capture) record(t *trace.Trace) {
	if c.DBPath == "" {
		return
	}
	s, err := state.NewCaptureState(c.DBPath)
	if err != nil {
		log.Warning("Capture not recorded, can not open %s: %s", c.DBPath, err)
		return
	}
	defer s.Close()
	rec := state.NewCaptureRecord(c.Device, c.Output, t)
	if err := s.Add(rec); err != nil {
		log.Warning("Capture not recorded: %s", err)
		return
	}
	log.Debug("Capture recorded with id %d", rec.ID)
}
