package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"roster/contexts/sales-ops/client-distribution/application/commands"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
)

// SeedFile is the YAML layout accepted by `rosterctl seed`.
type SeedFile struct {
	Executives []SeedExecutive `yaml:"executives"`
}

type SeedExecutive struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type seedReport struct {
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

func NewSeedCommand(opts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create executives from a YAML file, skipping existing names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := readSeedFile(file)
			if err != nil {
				return err
			}
			runtime, err := openRuntime(cmd, "cli")
			if err != nil {
				return err
			}
			defer runtime.Close()

			report := seedReport{Created: []string{}, Skipped: []string{}}
			for _, executive := range seed.Executives {
				result, err := runtime.Module.Handler.CreateExecutive.Execute(cmd.Context(), commands.CreateExecutiveCommand{
					Name:  executive.Name,
					Color: executive.Color,
				})
				if errors.Is(err, domainerrors.ErrExecutiveExists) {
					report.Skipped = append(report.Skipped, executive.Name)
					continue
				}
				if err != nil {
					return fmt.Errorf("seed executive %q: %w", executive.Name, err)
				}
				report.Created = append(report.Created, result.Executive.Name)
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%d executive(s) created, %d skipped\n", len(report.Created), len(report.Skipped))
			return err
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "YAML file with an executives list (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func readSeedFile(path string) (SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedFile{}, fmt.Errorf("read seed file: %w", err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return SeedFile{}, fmt.Errorf("parse seed file: %w", err)
	}
	return seed, nil
}
