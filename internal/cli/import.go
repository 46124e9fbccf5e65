package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardsmith/internal/fileio"
)

// ImportResult holds the import command's output payload.
type ImportResult struct {
	Database   string `json:"database"`
	Images     int    `json:"images"`
	Parameters int    `json:"parameters"`
	Cards      int    `json:"cards"`
	Events     int    `json:"events"`
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var rows bool

	cmd := &cobra.Command{
		Use:   "import <project.db> <file>",
		Short: "Import a content bundle or spreadsheet card rows",
		Long: `Replace the project's content with an imported file.

By default the file is a JSON content bundle (the save format produced by
'cardsmith export --bundle' and the editor's download). With --rows the file
is CSV card rows, one card per row with flat left/right columns; only the
card collection is replaced in that case.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, args[0], args[1], rows, cmd)
		},
	}

	cmd.Flags().BoolVar(&rows, "rows", false, "treat the file as CSV card rows")
	return cmd
}

func runImport(opts *RootOptions, dbPath, filePath string, rows bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	blobs, proj, err := openProject(ctx, opts, formatter, dbPath)
	if err != nil {
		formatter.Error(ErrCodeOpenProject, err.Error(), nil)
		return err
	}
	defer blobs.Close()
	defer proj.Close()

	if rows {
		f, err := os.Open(filePath)
		if err != nil {
			formatter.Error(ErrCodeFile, "failed to load file", err.Error())
			return WrapExitError(ExitCommandError, "failed to load file", err)
		}
		cards, err := fileio.ParseCardRows(f)
		f.Close()
		if err != nil {
			formatter.Error(ErrCodeFile, "failed to parse card rows", err.Error())
			return WrapExitError(ExitFailure, "failed to parse card rows", err)
		}
		proj.Cards.Load(cards)
	} else {
		bundle, err := fileio.LoadBundle(filePath)
		if err != nil {
			var fe *fileio.FileError
			if errors.As(err, &fe) && fe.Violations != nil {
				formatter.Error(ErrCodeInvalid, fe.Message, fe.Violations)
				return WrapExitError(ExitFailure, "file does not match the content format", err)
			}
			formatter.Error(ErrCodeFile, "failed to load file", err.Error())
			return WrapExitError(ExitCommandError, "failed to load file", err)
		}
		proj.LoadBundle(bundle)
	}

	if err := proj.SaveContent(ctx); err != nil {
		formatter.Error(ErrCodeSave, "failed to persist imported content", err.Error())
		return WrapExitError(ExitCommandError, "failed to persist imported content", err)
	}
	if _, _, err := proj.ExportNow(ctx); err != nil {
		formatter.Error(ErrCodeExport, "failed to export imported content", err.Error())
		return WrapExitError(ExitCommandError, "failed to export imported content", err)
	}

	result := ImportResult{
		Database:   dbPath,
		Images:     proj.Images.Len(),
		Parameters: proj.Parameters.Len(),
		Cards:      proj.Cards.Len(),
		Events:     proj.Events.Len(),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("imported %s: %d cards, %d events, %d images, %d parameters",
		filePath, result.Cards, result.Events, result.Images, result.Parameters))
}
