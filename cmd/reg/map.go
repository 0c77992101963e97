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

package reg

import (
	"fmt"

	"github.com/spf13/cobra"

	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/device"
)

func NewMapCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regmap",
		Short: "Print the register map in effect",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			regMap, err := device.NewRegMap(cfg.Registers, cfg.MapSize)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, entry := range regMap.Entries() {
				fmt.Fprintf(out, "%-10s 0x%03x\n", entry.Name, entry.Offset)
			}
			fmt.Fprintf(out, "%-10s 0x%x\n", device.BlockSelectName, regMap.BlockSelect)
			return nil
		},
	}
	return cmd
}
