package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/chazu/fidgo/pkg/design"
	"github.com/chazu/fidgo/pkg/engine"
	"github.com/chazu/fidgo/pkg/kernel"
	"github.com/chazu/fidgo/pkg/tessellate"
)

// ScriptError reports the evaluation or validation errors of one script.
type ScriptError struct {
	Path   string
	Errors []error
}

func (e *ScriptError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, strings.Join(msgs, "; "))
}

// loadDesign reads a script and evaluates it into a validated design.
// Each call builds its own engine, so loads may run concurrently without
// superseding each other.
func loadDesign(cfg *RootOptions, path string) (*design.Design, string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, "", WrapExitError(ExitCommandError, "read script", err)
	}
	source := string(src)

	eng := engine.NewEngine(engine.WithTimeout(cfg.Config.EvalTimeout))
	d, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		return nil, "", WrapExitError(ExitFailure, "evaluate "+path, err)
	}
	if len(evalErrs) > 0 {
		se := &ScriptError{Path: path}
		for _, e := range evalErrs {
			se.Errors = append(se.Errors, e)
		}
		return nil, "", WrapExitError(ExitFailure, "script errors", se)
	}

	errs, warnings := d.Validate()
	for _, w := range warnings {
		slog.Warn("design warning", "script", path, "code", w.Code, "part", w.Part, "message", w.Message)
	}
	if len(errs) > 0 {
		se := &ScriptError{Path: path}
		for _, e := range errs {
			se.Errors = append(se.Errors, e)
		}
		return nil, "", WrapExitError(ExitFailure, "invalid design", se)
	}
	if d.PartCount() == 0 {
		return nil, "", WrapExitError(ExitFailure, "empty design",
			errors.New(path+": script defines no parts and does not end in a shape"))
	}
	slog.Debug("script evaluated", "script", path, "parts", d.PartCount())
	return d, source, nil
}

// meshDesign tessellates d and logs any bounds warnings.
func meshDesign(ctx context.Context, d *design.Design, m kernel.Mesher, depth int) ([]*kernel.Mesh, error) {
	res, err := tessellate.Tessellate(ctx, d, m, depth)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "tessellation failed", err)
	}
	for _, w := range res.Warnings {
		slog.Warn("part meshed inside substituted bounds", "part", w.Part, "bounds", w.Original.String(), "substituted", w.Substituted.String())
	}
	return res.Meshes, nil
}
