package stockcard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stockcard/internal/core/apperror"
	"stockcard/internal/core/id"
)

func TestWizardValidate(t *testing.T) {
	warehouseID := id.New()
	locationID := id.New()

	tests := []struct {
		name     string
		wizard   Wizard
		wantCode string
	}{
		{
			name: "valid with warehouse",
			wizard: Wizard{
				DateFrom:    day(1),
				DateTo:      day(31),
				WarehouseID: &warehouseID,
			},
		},
		{
			name: "valid with location only",
			wizard: Wizard{
				DateFrom:   day(1),
				DateTo:     day(31),
				LocationID: &locationID,
			},
		},
		{
			name: "single-day window is allowed",
			wizard: Wizard{
				DateFrom:    day(5),
				DateTo:      day(5),
				WarehouseID: &warehouseID,
			},
		},
		{
			name: "inverted range rejected",
			wizard: Wizard{
				DateFrom:    day(31),
				DateTo:      day(1),
				WarehouseID: &warehouseID,
			},
			wantCode: apperror.CodeInvalidDateRange,
		},
		{
			name: "zero dates rejected",
			wizard: Wizard{
				WarehouseID: &warehouseID,
			},
			wantCode: apperror.CodeInvalidDateRange,
		},
		{
			name: "neither warehouse nor location",
			wizard: Wizard{
				DateFrom: day(1),
				DateTo:   day(31),
			},
			wantCode: apperror.CodeInvalidWarehouse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.wizard.Validate(context.Background())
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperror.IsCode(err, tt.wantCode),
				"want code %s, got %v", tt.wantCode, err)
		})
	}
}

func TestWizardApplyDefaults(t *testing.T) {
	defaultWH := id.New()
	chosenWH := id.New()
	locationID := id.New()
	defaults := ReportDefaults{WarehouseID: &defaultWH}

	t.Run("fills warehouse when nothing selected", func(t *testing.T) {
		w := Wizard{DateFrom: day(1), DateTo: day(2)}
		w.ApplyDefaults(defaults)
		if assert.NotNil(t, w.WarehouseID) {
			assert.Equal(t, defaultWH, *w.WarehouseID)
		}
	})

	t.Run("keeps explicit warehouse", func(t *testing.T) {
		w := Wizard{WarehouseID: &chosenWH}
		w.ApplyDefaults(defaults)
		assert.Equal(t, chosenWH, *w.WarehouseID)
	})

	t.Run("explicit location suppresses default warehouse", func(t *testing.T) {
		w := Wizard{LocationID: &locationID}
		w.ApplyDefaults(defaults)
		assert.Nil(t, w.WarehouseID)
	})

	t.Run("no defaults configured", func(t *testing.T) {
		w := Wizard{}
		w.ApplyDefaults(ReportDefaults{})
		assert.Nil(t, w.WarehouseID)
	})
}

func TestFormatReportDate(t *testing.T) {
	d := time.Date(2026, time.January, 9, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "09/01/2026", FormatReportDate(d))
}
