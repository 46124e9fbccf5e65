package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardsmith/internal/schema"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []schema.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a document against the content schemas",
		Long: `Validate a JSON document without touching any project database.

--kind selects the schema: "bundle" for the editor save format (default)
or "gameworld" for the exported engine document.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], kind, cmd)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "bundle", "document kind (bundle|gameworld)")
	return cmd
}

func runValidate(opts *RootOptions, filePath, kind string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	var schemaKind schema.Kind
	switch kind {
	case "bundle":
		schemaKind = schema.KindContentBundle
	case "gameworld":
		schemaKind = schema.KindGameWorld
	default:
		formatter.Error(ErrCodeGeneric, fmt.Sprintf("unknown kind %q: must be bundle or gameworld", kind), nil)
		return NewExitError(ExitCommandError, "unknown document kind")
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		formatter.Error(ErrCodeFile, "failed to load file", err.Error())
		return WrapExitError(ExitCommandError, "failed to load file", err)
	}

	violations := schema.Validate(schemaKind, data)
	result := ValidationResult{Valid: violations == nil, Errors: violations}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else if result.Valid {
		formatter.Success(fmt.Sprintf("%s is a valid %s document", filePath, kind))
	} else {
		formatter.Error(ErrCodeInvalid, fmt.Sprintf("%s: %d problems", filePath, len(violations)), nil)
		for _, v := range violations {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", v.Error())
		}
	}

	if !result.Valid {
		return NewExitError(ExitFailure, "document failed validation")
	}
	return nil
}
