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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"xia.com/pixienet/go-pixie/cmd/completion"
	"xia.com/pixienet/go-pixie/cmd/config"
	"xia.com/pixienet/go-pixie/cmd/history"
	"xia.com/pixienet/go-pixie/cmd/reg"
	"xia.com/pixienet/go-pixie/cmd/traces"
	pkgconfig "xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
	ConfigOptionName   = "config"

	rootLong = `
Without a subcommand, capture one ADC trace burst from the configured device
into the configured output file, same as "go-pixie traces" with no flags.
`
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel, configPath string
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:           "go-pixie",
		Short:         "Tool to read ADC traces from Pixie-Net devices",
		Long:          rootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg.SetFilepath(configPath)
			}
			if err := cfg.Load(); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return traces.Run(cfg)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(traces.NewCommand(cfg))
	cmd.AddCommand(reg.NewCommand(cfg))
	cmd.AddCommand(reg.NewMapCommand(cfg))
	cmd.AddCommand(history.NewCommand(cfg))
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	cmd.PersistentFlags().StringVar(&configPath, ConfigOptionName, "", fmt.Sprintf("Config file. Default: %s", pkgconfig.DefaultConfigPath()))
	return cmd
}
