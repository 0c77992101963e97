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

// Package trace reads ADC waveforms out of the event data block and stores them.
//
// Channels are read one after another: all samples of AADC0, then all of
// AADC1 and so on. Row k of a Trace therefore holds the k-th read of every
// channel, not samples latched at the same instant; there is a skew of one
// full burst between neighbouring channels.
package trace

import (
	"xia.com/pixienet/go-pixie/pkg/device"
	"xia.com/pixienet/go-pixie/pkg/log"
)

type Trace struct {
	ADC [device.NChannels][]uint16
}

func NewTrace(samples int) *Trace {
	t := &Trace{}
	for ch := range t.ADC {
		t.ADC[ch] = make([]uint16, samples)
	}
	return t
}

// Len is the number of samples per channel
func (t *Trace) Len() int {
	return len(t.ADC[0])
}

func readSample(regs device.Registers, offset uint32) uint16 {
	return uint16(regs.ReadReg(offset) & device.SampleMask)
}

// Acquire selects the event data block, discards one sample per channel and
// then reads the given number of samples from each channel in turn.
// At this point there is no guarantee that sampling is truly periodic.
func Acquire(regs device.Registers, regMap *device.RegMap, samples int) *Trace {
	log.Debug("Selecting event data block: AOUTBLOCK(0x%x) <- 0x%x", regMap.OutBlock(), regMap.BlockSelect)
	regs.WriteReg(regMap.OutBlock(), regMap.BlockSelect)

	// dummy reads for sampling update
	for ch := 0; ch < device.NChannels; ch++ {
		_ = readSample(regs, regMap.Adc(ch))
	}

	t := NewTrace(samples)
	for ch := 0; ch < device.NChannels; ch++ {
		offset := regMap.Adc(ch)
		buf := t.ADC[ch]
		for k := range buf {
			buf[k] = readSample(regs, offset)
		}
		log.Debug("Read %d samples from %s", samples, device.AdcAlias(ch))
	}
	return t
}

type ChannelStats struct {
	Min uint16 `json:"min"`
	Max uint16 `json:"max"`
}

func (t *Trace) Stats() [device.NChannels]ChannelStats {
	var stats [device.NChannels]ChannelStats
	for ch, buf := range t.ADC {
		if len(buf) == 0 {
			continue
		}
		s := ChannelStats{Min: buf[0], Max: buf[0]}
		for _, v := range buf[1:] {
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
		}
		stats[ch] = s
	}
	return stats
}
