package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cardsmith/internal/project"
)

// InspectResult holds the inspect command's output payload.
type InspectResult struct {
	Database   string                      `json:"database"`
	Images     int                         `json:"images"`
	Parameters int                         `json:"parameters"`
	Cards      int                         `json:"cards"`
	Events     int                         `json:"events"`
	BlobKeys   []string                    `json:"blobKeys"`
	Dangling   []project.DanglingReference `json:"dangling,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "inspect <project.db>",
		Short:         "Summarize a project's content and report dangling references",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runInspect(opts *RootOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	blobs, proj, err := openProject(ctx, opts, formatter, dbPath)
	if err != nil {
		formatter.Error(ErrCodeOpenProject, err.Error(), nil)
		return err
	}
	defer blobs.Close()
	defer proj.Close()

	keys, err := blobs.Keys(ctx)
	if err != nil {
		formatter.Error(ErrCodeLoadContent, "failed to list stored documents", err.Error())
		return WrapExitError(ExitCommandError, "failed to list stored documents", err)
	}

	result := InspectResult{
		Database:   dbPath,
		Images:     proj.Images.Len(),
		Parameters: proj.Parameters.Len(),
		Cards:      proj.Cards.Len(),
		Events:     proj.Events.Len(),
		BlobKeys:   keys,
		Dangling:   proj.DanglingReferences(),
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cards, %d events, %d images, %d parameters\n",
		result.Database, result.Cards, result.Events, result.Images, result.Parameters)
	fmt.Fprintf(cmd.OutOrStdout(), "documents: %v\n", result.BlobKeys)
	if len(result.Dangling) > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "dangling references:\n")
		for _, d := range result.Dangling {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", d)
		}
	}
	return nil
}
