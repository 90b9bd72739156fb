package zilien

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormName(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		column   string
		wantName string
		wantUnit string
		wantStd  string
	}{
		{
			name:     "MassChannel",
			label:    "C1M44",
			column:   "M44-CO2 [A]",
			wantName: "M44 [A]",
			wantUnit: "A",
			wantStd:  "M44",
		},
		{
			name:     "SetpointLabel",
			label:    "MFC1 setpoint",
			column:   "Flow [ml/min]",
			wantName: "MFC1 setpoint [ml/min]",
			wantUnit: "ml/min",
		},
		{
			name:     "ValueLabel",
			label:    "iongauge value",
			column:   "Pressure [mbar]",
			wantName: "iongauge value [mbar]",
			wantUnit: "mbar",
		},
		{
			name:     "SlashUnit",
			label:    "EC-lab",
			column:   "Ewe/V",
			wantName: "Ewe/V",
			wantUnit: "V",
		},
		{
			name:     "SlashUnitKeepsLastSegment",
			label:    "EC-lab",
			column:   "P/W/mA",
			wantName: "P/W/mA",
			wantUnit: "mA",
		},
		{
			name:     "NoUnit",
			label:    "EC-lab",
			column:   "cycle number",
			wantName: "cycle number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, unit, stdName := formName(tt.label, tt.column)
			require.Equal(t, tt.wantName, name)
			require.Equal(t, tt.wantUnit, unit)
			require.Equal(t, tt.wantStd, stdName)
		})
	}
}

func TestTimeName(t *testing.T) {
	t.Run("Potentiostat", func(t *testing.T) {
		require.Equal(t, "Potential time [s]", timeName("pot", "Time [s]"))
	})

	t.Run("Biologic", func(t *testing.T) {
		require.Equal(t, "Biologic time/s", timeName("EC-lab", "time/s"))
	})

	t.Run("Device", func(t *testing.T) {
		require.Equal(t, "C0M18 time [s]", timeName("C0M18", "Time [s]"))
	})
}

func TestToMass(t *testing.T) {
	require.Equal(t, "18", toMass("C0M18"))
	require.Equal(t, "196", toMass("C10M196"))
	require.Empty(t, toMass("pot"))
	require.Empty(t, toMass("C0M18 extra"))
}

func TestIsTimeColumn(t *testing.T) {
	require.True(t, isTimeColumn("Time [s]"))
	require.True(t, isTimeColumn("time/s"))
	require.False(t, isTimeColumn("time [s]"))
	require.False(t, isTimeColumn("Pressure [mbar]"))
}
