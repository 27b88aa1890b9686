package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"roster/contexts/sales-ops/client-distribution/application/queries"
)

func NewNextCommand(opts *RootOptions) *cobra.Command {
	var cursor int64
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the executive after the cursor in the rotation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := openRuntime(cmd, "cli")
			if err != nil {
				return err
			}
			defer runtime.Close()

			query := queries.NextExecutiveQuery{}
			if cmd.Flags().Changed("cursor") {
				query.Cursor = &cursor
			}
			result, err := runtime.Module.Handler.NextExecutive.Execute(cmd.Context(), query)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"id":    result.Executive.ID,
					"name":  result.Executive.Name,
					"color": result.Executive.Color,
				})
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", result.Executive.ID, result.Executive.Name)
			return err
		},
	}
	cmd.Flags().Int64Var(&cursor, "cursor", 0, "id of the executive that received the last client")
	return cmd
}
