package myskillscmder

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rocksolid/rocksolid/pkg/app"
	"github.com/rocksolid/rocksolid/pkg/collection"
)

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export My Skills to a JSON file",
		Long: `Export My Skills as a signed JSON document.

The file defaults to my-skills-<date>.json in the current
directory. Use --output - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.NewEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			mySkills, err := env.MySkills()
			if err != nil {
				return err
			}

			doc, err := mySkills.Export()
			if err != nil {
				return err
			}

			if output == "" {
				output = collection.MySkillsFileName(time.Now())
			}
			return writeDocument(cmd, doc, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (- for stdout)")

	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge an exported My Skills file",
		Long: `Merge the skills of an exported My Skills document into My Skills.

Invalid entries are skipped. A document with another signature, such as a
routine export, is rejected without changing anything.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := app.NewEnv(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			doc, err := collection.ParseDocument(data)
			if err != nil {
				return err
			}

			mySkills, err := env.MySkills()
			if err != nil {
				return err
			}

			result, err := mySkills.Import(doc)
			if err != nil {
				return fmt.Errorf("importing %s: %w", args[0], err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d skills (%d skipped)\n",
				result.Imported, result.Total, result.Skipped)
			return nil
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
