package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewMigrateCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the store schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runtime, err := openRuntime(cmd, "cli")
			if err != nil {
				return err
			}
			defer runtime.Close()
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schema up to date (%s)\n", runtime.Config.StoreDriver)
			return err
		},
	}
}
