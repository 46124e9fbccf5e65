package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardsmith/internal/blob"
	"cardsmith/internal/fileio"
)

// ExportResult holds the export command's output payload.
type ExportResult struct {
	Target     string `json:"target"`
	Key        string `json:"key"`
	Cards      int    `json:"cards"`
	Events     int    `json:"events"`
	EventCards int    `json:"eventCards"`
	Skipped    bool   `json:"skipped"`
	OutputFile string `json:"outputFile,omitempty"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var outPath string
	var bundle bool

	cmd := &cobra.Command{
		Use:   "export <project.db>",
		Short: "Export the game-world document",
		Long: `Run the export pipeline over the project's content.

The game-world document is written to the project database under
game_world:<target id>. With -o the document is also written to a JSON
file; with --bundle the editor save format (the full content bundle) is
written instead of the game-world document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, args[0], outPath, bundle, cmd)
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "also write the document to a file")
	cmd.Flags().BoolVar(&bundle, "bundle", false, "write the content bundle save format instead")
	return cmd
}

func runExport(opts *RootOptions, dbPath, outPath string, asBundle bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	blobs, proj, err := openProject(ctx, opts, formatter, dbPath)
	if err != nil {
		formatter.Error(ErrCodeOpenProject, err.Error(), nil)
		return err
	}
	defer blobs.Close()
	defer proj.Close()

	if asBundle {
		name := outPath
		if name == "" {
			name = proj.Settings().DownloadFileName
		}
		if err := fileio.SaveBundle(name, proj.Snapshot()); err != nil {
			formatter.Error(ErrCodeFile, "failed to store file", err.Error())
			return WrapExitError(ExitCommandError, "failed to store file", err)
		}
		if opts.Format == "json" {
			return formatter.Success(map[string]string{"outputFile": name})
		}
		return formatter.Success(fmt.Sprintf("wrote content bundle %s", name))
	}

	world, skipped, err := proj.ExportNow(ctx)
	if err != nil {
		formatter.Error(ErrCodeExport, "export failed", err.Error())
		return WrapExitError(ExitCommandError, "export failed", err)
	}

	if outPath != "" {
		data, err := json.MarshalIndent(world, "", "    ")
		if err != nil {
			formatter.Error(ErrCodeExport, "failed to encode game world", err.Error())
			return WrapExitError(ExitCommandError, "failed to encode game world", err)
		}
		if err := os.WriteFile(outPath, data, 0o644); err != nil {
			formatter.Error(ErrCodeFile, "failed to store file", err.Error())
			return WrapExitError(ExitCommandError, "failed to store file", err)
		}
	}

	target := proj.Settings().ExportTargetID
	result := ExportResult{
		Target:     target,
		Key:        blob.GameWorldKey(target),
		Cards:      len(world.Cards),
		Events:     len(world.Events),
		EventCards: len(world.EventCards),
		Skipped:    skipped,
		OutputFile: outPath,
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("exported %s: %d cards, %d events, %d event cards",
		result.Key, result.Cards, result.Events, result.EventCards))
}
