package routinescmder

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
)

const allRoutinesFileName = "routines.json"

func newExportCmd() *cobra.Command {
	var (
		all    bool
		output string
	)

	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "Export a routine, or every routine, to JSON",
		Long: `Export one routine as a signed JSON document, or every routine with --all.

A single routine is written to <slug of its name>.json and --all writes
routines.json, both in the current directory. Use --output - to write to
stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return errors.New("pass either a routine id or --all")
			}

			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				if all {
					doc, err := routines.ExportAll()
					if err != nil {
						return err
					}
					return writeDocument(cmd, doc, pick(output, allRoutinesFileName))
				}

				routine, err := routines.Get(routineID(args[0]))
				if err != nil {
					return err
				}
				doc, err := routines.Export(routine.ID)
				if err != nil {
					return err
				}
				return writeDocument(cmd, doc, pick(output, collection.RoutineFileName(routine.Name)))
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Export every routine")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (- for stdout)")

	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge exported routines",
		Long: `Merge a single-routine or all-routines export.

A routine whose id already exists gets the imported items appended; any
other routine is added. Routines without a name and invalid or repeated
items are skipped and counted. Documents of another kind, such as a My
Skills export, are rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := collection.ParseDocument(data)
			if err != nil {
				return err
			}

			return withRoutines(cmd, func(_ *app.Env, routines *collection.Routines) error {
				result, err := routines.Import(doc)
				if err != nil {
					return fmt.Errorf("importing %s: %w", args[0], err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d routines (%d routines or items skipped)\n",
					result.Imported, result.Total, result.Skipped)
				return nil
			})
		},
	}
}

func writeDocument(cmd *cobra.Command, doc collection.Document, output string) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}

	if output == "-" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	if err := os.WriteFile(output, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", output)
	return nil
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
