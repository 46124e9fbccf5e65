package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cardsmith/internal/blob"
	"cardsmith/internal/content"
	"cardsmith/internal/project"
)

// InitResult holds the init command's output payload.
type InitResult struct {
	Database   string `json:"database"`
	Parameters int    `json:"parameters"`
	Actions    int    `json:"actions"`
}

// NewInitCommand creates the init command.
func NewInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init <project.db>",
		Short: "Create a project database seeded with default content",
		Long: `Create a new project database at the given path.

The database is seeded with the built-in parameter set (the four standard
world values plus the introduction flag), the left/right action slots, and
default settings. Refuses to overwrite an existing file unless --force.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(rootOpts, args[0], force, cmd)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "reinitialize an existing database")
	return cmd
}

func runInit(opts *RootOptions, dbPath string, force bool, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	if _, err := os.Stat(dbPath); err == nil && !force {
		formatter.Error(ErrCodeOpenProject, fmt.Sprintf("%s already exists (use --force to reinitialize)", dbPath), nil)
		return NewExitError(ExitCommandError, "database already exists")
	}

	blobs, err := blob.Open(dbPath)
	if err != nil {
		formatter.Error(ErrCodeOpenProject, "failed to create project database", err.Error())
		return WrapExitError(ExitCommandError, "failed to create project database", err)
	}
	defer blobs.Close()

	proj := project.New(blobs, project.WithLogf(formatter.VerboseLog))
	defer proj.Close()

	proj.Parameters.Load(content.DefaultParameters())
	proj.Actions.Load(content.DefaultActions())

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		formatter.Error(ErrCodeConfig, "failed to load config", err.Error())
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	proj.UpdateSettings(cfg.ApplyTo(proj.Settings()))

	if err := proj.SaveContent(ctx); err != nil {
		formatter.Error(ErrCodeSave, "failed to write initial content", err.Error())
		return WrapExitError(ExitCommandError, "failed to write initial content", err)
	}

	result := InitResult{
		Database:   dbPath,
		Parameters: proj.Parameters.Len(),
		Actions:    proj.Actions.Len(),
	}
	if opts.Format == "json" {
		return formatter.Success(result)
	}
	return formatter.Success(fmt.Sprintf("initialized %s (%d parameters, %d actions)",
		result.Database, result.Parameters, result.Actions))
}
