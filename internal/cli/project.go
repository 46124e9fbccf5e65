package cli

import (
	"context"

	"cardsmith/internal/blob"
	"cardsmith/internal/project"
)

// openProject opens the project database and loads its content into a fresh
// project, applying any --config overrides to the loaded settings.
// The caller owns both returned handles and must Close them.
func openProject(ctx context.Context, opts *RootOptions, formatter *OutputFormatter, dbPath string) (*blob.Store, *project.Project, error) {
	blobs, err := blob.Open(dbPath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to open project database", err)
	}

	proj := project.New(blobs, project.WithLogf(formatter.VerboseLog))
	if err := proj.LoadContent(ctx); err != nil {
		proj.Close()
		blobs.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to load project content", err)
	}

	cfg, err := LoadConfig(opts.ConfigPath)
	if err != nil {
		proj.Close()
		blobs.Close()
		return nil, nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if cfg != nil {
		proj.UpdateSettings(cfg.ApplyTo(proj.Settings()))
	}

	return blobs, proj, nil
}
