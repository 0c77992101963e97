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
	"sort"
)

type RegAlias int

const (
	RegOutBlock RegAlias = iota
	RegAdc0
	RegAdc1
	RegAdc2
	RegAdc3
	RegAliasLimit
)

const (
	NChannels = 4
	// SampleMask keeps the ADC value carried in the low half of a readout register
	SampleMask = 0xFFFF

	BlockSelectName = "OB_EVREG"
	// DefaultBlockSelect switches AADCn reads to the event data block
	DefaultBlockSelect uint32 = 0x3
)

// Offsets are 32-bit cell indexes into the register window, as in PixieNetDefs.h
var DefaultRegMap = map[RegAlias]uint32{
	RegOutBlock: 0x003,
	RegAdc0:     0x0C0,
	RegAdc1:     0x0C1,
	RegAdc2:     0x0C2,
	RegAdc3:     0x0C3,
}

var RegNames = map[RegAlias]string{
	RegOutBlock: "AOUTBLOCK",
	RegAdc0:     "AADC0",
	RegAdc1:     "AADC1",
	RegAdc2:     "AADC2",
	RegAdc3:     "AADC3",
}

func (a RegAlias) String() string {
	if name, ok := RegNames[a]; ok {
		return name
	}
	return fmt.Sprintf("RegAlias(%d)", int(a))
}

// AdcAlias returns the readout register alias of channel ch
func AdcAlias(ch int) RegAlias {
	return RegAdc0 + RegAlias(ch)
}

// RegMap is the register map in effect for one capture
type RegMap struct {
	Offsets     map[RegAlias]uint32
	BlockSelect uint32
}

type RegEntry struct {
	Name   string
	Offset uint32
}

// NewRegMap applies named overrides to DefaultRegMap and checks that every
// register fits into a window of mapSize bytes.
func NewRegMap(overrides map[string]uint32, mapSize int) (*RegMap, error) {
	m := &RegMap{
		Offsets:     make(map[RegAlias]uint32, len(DefaultRegMap)),
		BlockSelect: DefaultBlockSelect,
	}
	for alias, offset := range DefaultRegMap {
		m.Offsets[alias] = offset
	}

	byName := make(map[string]RegAlias, len(RegNames))
	for alias, name := range RegNames {
		byName[name] = alias
	}
	for name, value := range overrides {
		if name == BlockSelectName {
			m.BlockSelect = value
			continue
		}
		alias, ok := byName[name]
		if !ok {
			return nil, ErrUnknownRegister{Name: name}
		}
		m.Offsets[alias] = value
	}

	for alias, offset := range m.Offsets {
		if uint64(offset)*4+4 > uint64(mapSize) {
			return nil, ErrRegisterOutOfWindow{Name: alias.String(), Offset: offset, Size: mapSize}
		}
	}
	return m, nil
}

// Adc returns the readout register offset of channel ch
func (m *RegMap) Adc(ch int) uint32 {
	return m.Offsets[AdcAlias(ch)]
}

func (m *RegMap) OutBlock() uint32 {
	return m.Offsets[RegOutBlock]
}

// Lookup resolves a register name to its offset
func (m *RegMap) Lookup(name string) (uint32, error) {
	for alias, regName := range RegNames {
		if regName == name {
			return m.Offsets[alias], nil
		}
	}
	return 0, ErrUnknownRegister{Name: name}
}

// Entries lists registers sorted by offset
func (m *RegMap) Entries() []RegEntry {
	entries := make([]RegEntry, 0, len(m.Offsets))
	for alias, offset := range m.Offsets {
		entries = append(entries, RegEntry{Name: alias.String(), Offset: offset})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Offset < entries[j].Offset
	})
	return entries
}
