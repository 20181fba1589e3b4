package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/spf13/pflag"
)

// overlayValue is a --overlay flag holding a parsed overlay selection.
type overlayValue struct {
	overlays []domain.Overlay
}

var _ pflag.Value = (*overlayValue)(nil)

func newOverlayValue(defaults ...domain.Overlay) *overlayValue {
	return &overlayValue{overlays: defaults}
}

func (v *overlayValue) String() string { return contract.OverlayLabel(v.overlays) }
func (v *overlayValue) Type() string   { return "overlays" }

func (v *overlayValue) Set(s string) error {
	overlays, err := contract.ParseOverlays(s)
	if err != nil {
		return err
	}
	v.overlays = overlays
	return nil
}

// viewValue is a --view flag restricted to the known bucket views.
type viewValue struct {
	view calendar.View
}

var _ pflag.Value = (*viewValue)(nil)

func (v *viewValue) String() string { return string(v.view) }
func (v *viewValue) Type() string   { return "view" }

func (v *viewValue) Set(s string) error {
	if !calendar.ValidViews[s] {
		return fmt.Errorf("must be one of %s", strings.Join(validViewNames(), ", "))
	}
	v.view = calendar.View(s)
	return nil
}

func validViewNames() []string {
	names := make([]string, 0, len(calendar.ValidViews))
	for name := range calendar.ValidViews {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func addOverlayFlag(fs *pflag.FlagSet, v *overlayValue) {
	fs.Var(v, "overlay", "Overlay selection: base, plan, actual, or a combination such as base+plan")
}

func addViewFlag(fs *pflag.FlagSet, v *viewValue, usage string) {
	fs.Var(v, "view", usage+" ("+strings.Join(validViewNames(), ", ")+")")
}
