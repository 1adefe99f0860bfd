package app

import (
	"context"
	"fmt"

	"github.com/aolshev/rigscene/internal/ctxlog"
	"github.com/aolshev/rigscene/internal/graph"
)

// Run executes the main application logic based on the provided
// configuration: compile the loaded workspace (through the variant catalog
// when one is selected) and dispatch on the run mode.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	compiled, err := a.compile(ctx, cfg)
	if err != nil {
		return err
	}

	switch cfg.Mode {
	case ModeValidate:
		a.logger.Info("Scene graph is valid.",
			"bodies", compiled.NumBodies(),
			"geoms", compiled.NumGeoms(),
			"sensors", len(compiled.Sensors),
			"nqpos", compiled.NqPos)
		fmt.Fprintf(a.outW, "OK: %d bodies, %d geoms, %d sensors, digest %016x\n",
			compiled.NumBodies(), compiled.NumGeoms(), len(compiled.Sensors), compiled.Digest())
	case ModeInspect:
		if err := a.inspect(compiled, cfg.Output); err != nil {
			return fmt.Errorf("failed to render scene summary: %w", err)
		}
	case ModeDigest:
		fmt.Fprintf(a.outW, "%016x\n", compiled.Digest())
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// compile produces the scene graph, going through the catalog when a
// variant is selected so its overrides apply before compilation.
func (a *App) compile(ctx context.Context, cfg *Config) (*graph.Graph, error) {
	if cfg.Variant != "" {
		instance, err := a.catalog.Instantiate(ctx, cfg.Variant, a.workspace, a.registry)
		if err != nil {
			return nil, err
		}
		a.logger.Info("Variant instantiated.", "variant", cfg.Variant, "instance_id", instance.ID)
		return instance.Graph, nil
	}

	compiled, diags := graph.Compile(ctx, a.workspace, a.registry)
	if diags.HasErrors() {
		return nil, fmt.Errorf("scene graph compilation failed: %w", diags)
	}
	return compiled, nil
}
