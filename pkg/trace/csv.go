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
	"encoding/csv"
	"io"
	"strconv"

	"xia.com/pixienet/go-pixie/pkg/device"
)

var Header = []string{"sample", "adc0", "adc1", "adc2", "adc3"}

// WriteCSV writes the header row and one row per sample index
func WriteCSV(w io.Writer, t *Trace) error {
	out := csv.NewWriter(w)
	if err := out.Write(Header); err != nil {
		return err
	}
	rec := make([]string, 1+device.NChannels)
	for k := 0; k < t.Len(); k++ {
		rec[0] = strconv.Itoa(k)
		for ch := 0; ch < device.NChannels; ch++ {
			rec[1+ch] = strconv.FormatUint(uint64(t.ADC[ch][k]), 10)
		}
		if err := out.Write(rec); err != nil {
			return err
		}
	}
	out.Flush()
	return out.Error()
}
