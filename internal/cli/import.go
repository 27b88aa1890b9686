package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"roster/contexts/sales-ops/client-distribution/application/commands"
)

type importReport struct {
	BatchID  string   `json:"batch_id"`
	Message  string   `json:"message"`
	Created  []string `json:"created"`
	Rejected []string `json:"rejected"`
}

func NewImportCommand(opts *RootOptions) *cobra.Command {
	var (
		file        string
		executiveID int64
	)
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Assign every new name in a .txt, .csv or .xlsx file to one executive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer body.Close()

			runtime, err := openRuntime(cmd, "cli")
			if err != nil {
				return err
			}
			defer runtime.Close()

			result, err := runtime.Module.Handler.ImportFile.Execute(cmd.Context(), commands.ImportFileCommand{
				Filename:    filepath.Base(file),
				Body:        body,
				ExecutiveID: executiveID,
			})
			if err != nil {
				return err
			}

			report := importReport{
				BatchID:  result.BatchID,
				Message:  result.Message,
				Created:  make([]string, 0, len(result.Created)),
				Rejected: append([]string{}, result.Rejected...),
			}
			for _, client := range result.Created {
				report.Created = append(report.Created, client.Name)
			}
			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}

			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, report.Message); err != nil {
				return err
			}
			for _, reason := range report.Rejected {
				if _, err := fmt.Fprintf(out, "  rejected: %s\n", reason); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "file to import (required)")
	cmd.Flags().Int64Var(&executiveID, "executive", 0, "executive id receiving the clients (required)")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("executive")
	return cmd
}
