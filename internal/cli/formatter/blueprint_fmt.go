package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
)

// FormatBlueprintList renders stored blueprints as a table.
func FormatBlueprintList(blueprints []*domain.Blueprint) string {
	if len(blueprints) == 0 {
		return Dim("No blueprints yet. Import one with `blueprint import blueprint <file>`.") + "\n"
	}
	headers := []string{"ID", "NAME", "VER", "HORIZON", "LINES", "UPDATED"}
	rows := make([][]string, 0, len(blueprints))
	for _, bp := range blueprints {
		rows = append(rows, []string{
			TruncID(bp.ID),
			Bold(bp.Name),
			strconv.Itoa(bp.Version),
			HorizonLabel(bp.Horizon()),
			strconv.Itoa(len(bp.Lines)),
			Dim(HumanTimestamp(bp.UpdatedAt)),
		})
	}
	return RenderAlignedTable(headers, rows, []Align{AlignLeft, AlignLeft, AlignRight, AlignLeft, AlignRight})
}

// FormatInitiativeList renders stored initiatives with their active stage.
func FormatInitiativeList(initiatives []domain.Initiative) string {
	if len(initiatives) == 0 {
		return Dim("No initiatives yet. Import them with `blueprint import initiatives <file>`.") + "\n"
	}
	headers := []string{"ID", "NAME", "STAGE", "ENTRIES", "KPIS", "VER"}
	rows := make([][]string, 0, len(initiatives))
	for i := range initiatives {
		ini := &initiatives[i]
		stage, entries, kpis := Dim("--"), 0, 0
		if st := ini.Active(); st != nil {
			stage = StylePurple.Render(st.Name)
			entries, kpis = len(st.Financials), len(st.KPIs)
		}
		rows = append(rows, []string{
			TruncID(ini.ID),
			Bold(ini.Name),
			stage + Dim(fmt.Sprintf(" (%d of %d)", stageIndex(ini)+1, len(ini.Stages))),
			strconv.Itoa(entries),
			strconv.Itoa(kpis),
			strconv.Itoa(ini.Version),
		})
	}
	return RenderAlignedTable(headers, rows, []Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight})
}

func stageIndex(ini *domain.Initiative) int {
	for i, st := range ini.Stages {
		if st.Name == ini.ActiveStage {
			return i
		}
	}
	return len(ini.Stages) - 1
}

func FormatBlueprintImport(res *contract.BlueprintImportResult) string {
	var b strings.Builder
	verb := "Imported"
	if res.Replaced {
		verb = "Replaced"
	}
	fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔ "+verb), Bold(res.Blueprint.Name), Dim(fmt.Sprintf("(v%d)", res.Blueprint.Version)))
	fmt.Fprintf(&b, "  %s %s\n", Dim("id:     "), res.Blueprint.ID)
	fmt.Fprintf(&b, "  %s %d lines, %d ratios\n", Dim("content:"), res.LineCount, res.RatioCount)
	fmt.Fprintf(&b, "  %s %s\n", Dim("horizon:"), HorizonLabel(res.Blueprint.Horizon()))
	if res.NonFinite > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  %d non-numeric cells were read as 0", res.NonFinite)) + "\n")
	}
	return b.String()
}

func FormatInitiativeImport(res *contract.InitiativeImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d created, %d updated %s\n",
		StyleGreen.Render("✔ Initiatives imported:"), res.Created, res.Updated,
		Dim(fmt.Sprintf("(set v%d)", res.SetVersion)))
	if res.NonFinite > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  %d non-numeric cells were read as 0", res.NonFinite)) + "\n")
	}
	return b.String()
}
