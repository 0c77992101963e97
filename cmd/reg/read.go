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
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/device"
)

// resolveRegister accepts either a register name or a hexadecimal cell offset
func resolveRegister(regMap *device.RegMap, arg string, mapSize int) (string, uint32, error) {
	var offset uint32
	name := arg
	if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") {
		parsed, err := strconv.ParseUint(arg, 0, 32)
		if err != nil {
			return "", 0, err
		}
		offset = uint32(parsed)
	} else {
		var err error
		name = strings.ToUpper(arg)
		offset, err = regMap.Lookup(name)
		if err != nil {
			return "", 0, err
		}
	}
	if uint64(offset)*4+4 > uint64(mapSize) {
		return "", 0, device.ErrRegisterOutOfWindow{Name: name, Offset: offset, Size: mapSize}
	}
	return name, offset, nil
}

func NewReadCommand(cfg *config.Config) *cobra.Command {
	var devicePath string
	cmd := &cobra.Command{
		Use:   "read <name|0xOFFSET>",
		Short: "Read value from register",
		Long: `Read one 32-bit register of the mapped block. Reading an AADCn register
consumes a sample of that channel.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if devicePath != "" {
				cfg.Device = devicePath
			}
			regMap, err := device.NewRegMap(cfg.Registers, cfg.MapSize)
			if err != nil {
				return err
			}
			name, offset, err := resolveRegister(regMap, args[0], cfg.MapSize)
			if err != nil {
				return err
			}

			win, err := device.Open(cfg.Device, cfg.MapSize)
			if err != nil {
				return err
			}
			defer win.Close()

			value := win.ReadReg(offset)
			fmt.Fprintf(cmd.OutOrStdout(), "Register state: %s = 0x%08x\n", name, value)
			return nil
		},
	}
	cmd.Flags().StringVar(&devicePath, DeviceOptionName, "", fmt.Sprintf("Register device node. Default: %s", config.DefaultDevice))

	return cmd
}
