package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := openRuntime(cmd, "cli")
			if err != nil {
				return err
			}
			defer runtime.Close()

			resp, err := runtime.Module.Handler.DashboardStatsHandler(cmd.Context())
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "EXECUTIVE\tCLIENTS\tPROPOSALS\tPENDING\tCONVERSION")
			for _, executive := range resp.Executives {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f%%\n",
					executive.Name,
					executive.ClientCount,
					executive.ProposalCount,
					executive.PendingCount,
					executive.ConversionRate,
				)
			}
			fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t%.1f%%\n",
				resp.TotalClients,
				resp.TotalProposals,
				resp.TotalClients-resp.TotalProposals,
				resp.ConversionRate,
			)
			return w.Flush()
		},
	}
}
