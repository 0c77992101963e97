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

package history

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"xia.com/pixienet/go-pixie/pkg/command"
	"xia.com/pixienet/go-pixie/pkg/config"
	"xia.com/pixienet/go-pixie/pkg/srv"
	"xia.com/pixienet/go-pixie/pkg/state"
)

const (
	RemoteOptionName  = "remote"
	AddressOptionName = "address"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect recorded trace captures",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewServeCommand(cfg))
	return cmd
}

func printRecords(out io.Writer, recs []*state.CaptureRecord) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDEVICE\tOUTPUT\tSAMPLES\tADC0\tADC1\tADC2\tADC3")
	for _, rec := range recs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d", rec.ID, rec.Time.Format(time.RFC3339), rec.Device, rec.Output, rec.Samples)
		for _, ch := range rec.Channels {
			fmt.Fprintf(w, "\t%d..%d", ch.Min, ch.Max)
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func localRecords(cfg *config.Config) ([]*state.CaptureRecord, error) {
	if cfg.DBPath == "" {
		return nil, srv.ErrNoCaptureStore{}
	}
	if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
		return []*state.CaptureRecord{}, nil
	}
	st, err := state.OpenCaptureState(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	return st.List()
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	var remote string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded captures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var recs []*state.CaptureRecord
			var err error
			if remote != "" {
				recs, err = command.NewApiClient(remote).Captures()
			} else {
				recs, err = localRecords(cfg)
			}
			if err != nil {
				return err
			}
			return printRecords(cmd.OutOrStdout(), recs)
		},
	}
	cmd.Flags().StringVar(&remote, RemoteOptionName, "", "Address of a history server. E.g. 192.168.1.2:8003")

	return cmd
}

func NewServeCommand(cfg *config.Config) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recorded captures over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				cfg.ApiAddress = address
			}
			if cfg.DBPath == "" {
				return srv.ErrNoCaptureStore{}
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return srv.NewApiServer(ctx, cfg).Run()
		},
	}
	cmd.Flags().StringVar(&address, AddressOptionName, "", fmt.Sprintf("Address to bind. Default: %s", config.DefaultApiAddress))

	return cmd
}
