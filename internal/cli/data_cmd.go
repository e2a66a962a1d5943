package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/brdtrack/internal/cli/formatter"
	"github.com/alexanderramin/brdtrack/internal/domain"
	"github.com/alexanderramin/brdtrack/internal/export"
	"github.com/alexanderramin/brdtrack/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var mode, sheet string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import projects from an Excel workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := app.Imports.Import(cmd.Context(), f, service.ImportOptions{Mode: mode, Sheet: sheet})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d projects (%s)\n", res.Imported, res.Mode)
			if res.Backup != "" {
				fmt.Fprintf(out, "Previous dataset saved as %s\n", res.Backup)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(domain.ImportAppend), "append or replace")
	cmd.Flags().StringVar(&sheet, "sheet", "", "Sheet name or index (default first sheet)")
	return cmd
}

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dataset",
	}

	cmd.AddCommand(
		newExportFormatCmd(app, "excel", "projects.xlsx", export.WriteExcel),
		newExportFormatCmd(app, "pdf", "projects.pdf", export.WritePDF),
	)
	return cmd
}

type exportFunc func(w io.Writer, records []*domain.Project) error

func newExportFormatCmd(app *App, format, defaultName string, write exportFunc) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   format,
		Short: fmt.Sprintf("Export projects as %s", format),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if err := writeFile(output, func(w io.Writer) error { return write(w, records) }); err != nil {
				return fmt.Errorf("exporting %s: %w", format, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(records), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", defaultName, "Output file")
	return cmd
}

// writeFile creates path and removes it again when fill fails.
func writeFile(path string, fill func(w io.Writer) error) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "List or create dataset snapshots",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List backups, newest first",
			RunE: func(cmd *cobra.Command, args []string) error {
				names, err := app.Backups.List(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatBackups(names))
				return nil
			},
		},
		&cobra.Command{
			Use:   "create",
			Short: "Snapshot the current dataset",
			RunE: func(cmd *cobra.Command, args []string) error {
				name, err := app.Backups.Create(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created backup %s\n", name)
				return nil
			},
		},
	)
	return cmd
}
