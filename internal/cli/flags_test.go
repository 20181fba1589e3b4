package cli

import (
	"testing"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayValue(t *testing.T) {
	v := newOverlayValue(domain.OverlayBase)
	assert.Equal(t, "base", v.String())
	assert.Equal(t, "overlays", v.Type())

	require.NoError(t, v.Set("Base+Actual"))
	assert.Equal(t, []domain.Overlay{domain.OverlayBase, domain.OverlayActual}, v.overlays)
	assert.Equal(t, "base+actual", v.String())

	err := v.Set("plan+plan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_OVERLAY")
	assert.Equal(t, "base+actual", v.String(), "failed Set keeps the previous selection")
}

func TestViewValue(t *testing.T) {
	v := &viewValue{view: calendar.ViewMonths}
	require.NoError(t, v.Set("fiscal"))
	assert.Equal(t, calendar.ViewFiscal, v.view)

	err := v.Set("weeks")
	require.Error(t, err)
	assert.Equal(t, "must be one of calendar, fiscal, months, quarters", err.Error())
	assert.Equal(t, "fiscal", v.String())
}

func TestChartCmd_InvalidViewFlag(t *testing.T) {
	_, err := executeCmd(t, seededApp(t), "chart", "--line", "SUBS", "--view", "weeks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}
