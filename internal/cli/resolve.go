package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/blueprint/internal/domain"
)

// resolveBlueprintID turns a full ID, an ID prefix or a blueprint name into
// a stored blueprint ID. With no input, a lone stored blueprint is used.
func resolveBlueprintID(ctx context.Context, app *App, input string) (string, error) {
	blueprints, err := app.Blueprints.List(ctx)
	if err != nil {
		return "", fmt.Errorf("listing blueprints: %w", err)
	}

	if input == "" {
		switch len(blueprints) {
		case 0:
			return "", fmt.Errorf("no blueprints stored; import one with `blueprint import blueprint <file>`")
		case 1:
			return blueprints[0].ID, nil
		}
		if app.interactive() {
			return pickBlueprint(blueprints)
		}
		return "", fmt.Errorf("%d blueprints stored; pass an id or name (see `blueprint list`)", len(blueprints))
	}

	var matches []*domain.Blueprint
	for _, bp := range blueprints {
		if bp.ID == input {
			return bp.ID, nil
		}
		if strings.HasPrefix(bp.ID, input) || strings.EqualFold(bp.Name, input) {
			matches = append(matches, bp)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no blueprint matches %q", input)
	case 1:
		return matches[0].ID, nil
	default:
		return "", fmt.Errorf("%q is ambiguous: matches %d blueprints", input, len(matches))
	}
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
