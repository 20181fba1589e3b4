package service

import (
	"bytes"
	"database/sql"
	"testing"

	"github.com/alexanderramin/blueprint/internal/importer"
	"github.com/alexanderramin/blueprint/internal/repository"
	"github.com/alexanderramin/blueprint/internal/testutil"
)

type testServices struct {
	db          *sql.DB
	log         *bytes.Buffer
	blueprints  BlueprintService
	initiatives InitiativeService
	settings    SettingsService
	analytics   AnalyticsService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	var log bytes.Buffer
	obs := NewLogUseCaseObserver(&log)

	bpRepo := repository.NewSQLiteBlueprintRepo(database)
	iniRepo := repository.NewSQLiteInitiativeRepo(database)
	versions := repository.NewSQLiteCollectionVersionRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	return &testServices{
		db:          database,
		log:         &log,
		blueprints:  NewBlueprintService(bpRepo, uow, obs),
		initiatives: NewInitiativeService(iniRepo, uow, obs),
		settings:    NewSettingsService(settingsRepo),
		analytics:   NewAnalyticsService(bpRepo, iniRepo, versions, settingsRepo, nil, obs),
	}
}

func intPtr(i int) *int { return &i }

// planSchema is a small P&L over Jan-Jun 2025: a revenue roll-up over two
// products, one cost line and a gross-profit subtotal.
func planSchema() *importer.BlueprintSchema {
	return &importer.BlueprintSchema{
		ID:         "bp-plan",
		Name:       "Operating plan",
		StartMonth: "2025-01",
		MonthCount: 6,
		Lines: []importer.LineImport{
			{ID: "rev", Code: "REV", Name: "Revenue", Mode: "children"},
			{ID: "subs", Code: "SUBS", Name: "Subscriptions", Indent: 1, Months: importer.MonthAmounts{"2025-01": 100, "2025-02": 100, "2025-03": 100}},
			{ID: "serv", Code: "SERV", Name: "Services", Indent: 1, Months: importer.MonthAmounts{"2025-01": 20}},
			{ID: "cogs", Code: "COGS", Name: "Cost of sales", Nature: "cost", Months: importer.MonthAmounts{"2025-01": 40, "2025-02": 40}},
			{ID: "gp", Code: "GP", Name: "Gross profit", Mode: "cumulative"},
		},
		Ratios: []importer.RatioImport{
			{ID: "gm", Label: "Gross margin", Numerator: "GP", Denominator: "REV", Precision: intPtr(1)},
			{ID: "broken", Label: "Broken", Numerator: "GP", Denominator: "NOPE"},
		},
	}
}

func initiativeSchema() *importer.InitiativeFileSchema {
	return &importer.InitiativeFileSchema{Initiatives: []importer.InitiativeImport{
		{
			ID:   "ini-upsell",
			Name: "Upsell",
			Stages: []importer.StageImport{{
				Name: "L1",
				Financials: []importer.EntryImport{{
					LineCode:     "SUBS",
					Distribution: importer.MonthAmounts{"2025-02": 15, "2025-03": 25},
					Actuals:      importer.MonthAmounts{"2025-02": 12},
				}},
				KPIs: []importer.KPIImport{{Name: "Seats", Unit: "seats", Distribution: importer.MonthAmounts{"2025-02": 10}, Actuals: importer.MonthAmounts{"2025-02": 5}}},
			}},
		},
		{
			ID:   "ini-vendor",
			Name: "Vendor swap",
			Stages: []importer.StageImport{{
				Name: "L1",
				Financials: []importer.EntryImport{
					{LineCode: "COGS", Distribution: importer.MonthAmounts{"2025-03": 10}},
					{LineCode: "GHOST", Distribution: importer.MonthAmounts{"2025-03": 1}},
				},
			}},
		},
	}}
}
