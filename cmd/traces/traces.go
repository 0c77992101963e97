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

package traces

import (
	"fmt"

	"github.com/spf13/cobra"

	"xia.com/pixienet/go-pixie/pkg/capture"
	"xia.com/pixienet/go-pixie/pkg/config"
)

const (
	DeviceOptionName  = "device"
	OutputOptionName  = "output"
	SamplesOptionName = "samples"

	tracesLong = `
Select the event data block, discard one stale sample per channel and read
a fixed number of samples from AADC0..AADC3 into a CSV file.

Channels are read one after another, so row k holds the k-th read of each
channel rather than samples taken at the same instant.

Exit status: 0 success, 1 device open or mapping failure, 2 output failure.
`
)

// Run validates the config and performs one capture with it.
func Run(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return capture.NewCapture(cfg).Run()
}

func NewCommand(cfg *config.Config) *cobra.Command {
	var device, output string
	var samples int
	cmd := &cobra.Command{
		Use:   "traces",
		Short: "Read one ADC trace burst from all channels into a CSV file",
		Long:  tracesLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if device != "" {
				cfg.Device = device
			}
			if output != "" {
				cfg.Output = output
			}
			if cmd.Flags().Changed(SamplesOptionName) {
				cfg.Samples = samples
			}
			return Run(cfg)
		},
	}
	cmd.Flags().StringVar(&device, DeviceOptionName, "", fmt.Sprintf("Register device node. Default: %s", config.DefaultDevice))
	cmd.Flags().StringVar(&output, OutputOptionName, "", fmt.Sprintf("Output file. Default: %s", config.DefaultOutput))
	cmd.Flags().IntVar(&samples, SamplesOptionName, 0, fmt.Sprintf("Samples per channel. Default: %d", config.DefaultSamples))

	return cmd
}
