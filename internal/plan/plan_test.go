package plan

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(name string, pct any) map[string]any {
	return map[string]any{"name": name, "percentage": pct}
}

func TestLoadValidPlan(t *testing.T) {
	raw := []any{entry("A", 0.6), entry("B", 0.4)}

	result, err := Load(raw)
	require.NoError(t, err)

	require.Len(t, result.Plan, 2)
	assert.Equal(t, AssetEntry{Name: "A", Percentage: 0.6}, result.Plan[0])
	assert.Equal(t, AssetEntry{Name: "B", Percentage: 0.4}, result.Plan[1])
	assert.Empty(t, result.Warnings)
	assert.InDelta(t, 1.0, result.Sum(), 1e-12)
}

func TestLoadOptionalFields(t *testing.T) {
	raw := []any{
		map[string]any{"name": "沪深300ETF", "percentage": 0.5, "id": "510300", "memo": "core"},
		map[string]any{"name": "黄金", "percentage": json.Number("0.5"), "id": json.Number("518880"), "memo": nil},
		map[string]any{"name": "Cash", "percentage": 0, "id": 42},
	}

	result, err := Load(raw)
	require.NoError(t, err)

	assert.Equal(t, "510300", result.Plan[0].ID)
	assert.Equal(t, "core", result.Plan[0].Memo)
	assert.Equal(t, "518880", result.Plan[1].ID)
	assert.Equal(t, "", result.Plan[1].Memo)
	assert.Equal(t, "42", result.Plan[2].ID)
	assert.Equal(t, 0.0, result.Plan[2].Percentage)
}

func TestLoadSumMismatchWarning(t *testing.T) {
	raw := []any{entry("A", 0.5), entry("B", 0.45)}

	result, err := Load(raw)
	require.NoError(t, err)

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, WarnSumMismatch, result.Warnings[0].Code)
	assert.InDelta(t, 0.95, result.Warnings[0].Sum, 1e-9)
	assert.Contains(t, result.Warnings[0].Message, "0.950")
	assert.True(t, result.HasWarning(WarnSumMismatch))
	assert.Len(t, result.Plan, 2, "plan must stay usable despite the warning")
}

func TestLoadSumWithinTolerance(t *testing.T) {
	raw := []any{entry("A", 0.3333), entry("B", 0.3333), entry("C", 0.3333)}

	result, err := Load(raw)
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestPlanSumIsRunningTotal(t *testing.T) {
	p := make(Plan, 10)
	for i := range p {
		p[i] = AssetEntry{Name: "A", Percentage: 0.1}
	}

	assert.Equal(t, 0.9999999999999999, p.Sum(), "entries are added left to right without compensation")

	result, err := Load([]any{entry("A", 0.5), entry("B", 0.4995)})
	require.NoError(t, err)
	assert.Empty(t, result.Warnings)
}

func TestLoadEmptyPlanWarns(t *testing.T) {
	result, err := Load([]any{})
	require.NoError(t, err)
	assert.Empty(t, result.Plan)
	assert.True(t, result.HasWarning(WarnSumMismatch))
}

func TestLoadSchemaErrors(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		reason string
		index  int
		field  string
	}{
		{"object instead of sequence", map[string]any{"name": "A"}, ReasonNotSequence, -1, ""},
		{"nil input", nil, ReasonNotSequence, -1, ""},
		{"scalar entry", []any{entry("A", 0.5), "B"}, ReasonEntryNotObject, 1, ""},
		{"missing name", []any{map[string]any{"percentage": 1.0}}, ReasonMissingField, 0, FieldName},
		{"missing percentage", []any{entry("A", 0.5), map[string]any{"name": "B"}}, ReasonMissingField, 1, FieldPercentage},
		{"string percentage", []any{entry("A", "0.5")}, ReasonNotNumeric, 0, FieldPercentage},
		{"bool percentage", []any{entry("A", true)}, ReasonNotNumeric, 0, FieldPercentage},
		{"negative percentage", []any{entry("A", -0.1)}, ReasonOutOfRange, 0, FieldPercentage},
		{"percentage above one", []any{entry("A", 1.5)}, ReasonOutOfRange, 0, FieldPercentage},
		{"NaN percentage", []any{entry("A", math.NaN())}, ReasonOutOfRange, 0, FieldPercentage},
		{"overflowing JSON number", []any{entry("A", json.Number("1e400"))}, ReasonOutOfRange, 0, FieldPercentage},
		{"overflowing negative JSON number", []any{entry("A", json.Number("-1e400"))}, ReasonOutOfRange, 0, FieldPercentage},
		{"malformed JSON number", []any{entry("A", json.Number("0.5x"))}, ReasonNotNumeric, 0, FieldPercentage},
		{"numeric name", []any{entry("A", 0.5), map[string]any{"name": 7, "percentage": 0.5}}, ReasonNameNotString, 1, FieldName},
		{"blank name", []any{entry("  ", 0.5)}, ReasonEmptyName, 0, FieldName},
		{"list memo", []any{map[string]any{"name": "A", "percentage": 1.0, "memo": []any{"x"}}}, ReasonFieldNotString, 0, FieldMemo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Load(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSchema))
			assert.Empty(t, result.Plan, "no partial plan may be returned")

			var schemaErr *SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, tt.reason, schemaErr.Reason)
			assert.Equal(t, tt.index, schemaErr.Index)
			if tt.field != "" {
				assert.Equal(t, tt.field, schemaErr.Field)
			}
		})
	}
}

func TestLoadStopsAtFirstError(t *testing.T) {
	raw := []any{entry("A", 2.0), map[string]any{"name": "B"}}

	_, err := Load(raw)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, 0, schemaErr.Index)
	assert.Equal(t, ReasonOutOfRange, schemaErr.Reason)
}

func TestLoadAcceptsYAMLStyleMaps(t *testing.T) {
	raw := []any{map[any]any{"name": "A", "percentage": 1}}

	result, err := Load(raw)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Plan[0].Percentage)
}

func TestLoadNormalizesNames(t *testing.T) {
	// "e" followed by a combining acute accent
	raw := []any{entry("Fonds e\u0301pargne", 1.0)}

	result, err := Load(raw)
	require.NoError(t, err)
	assert.Equal(t, "Fonds \u00e9pargne", result.Plan[0].Name)
}

func TestSchemaErrorMessages(t *testing.T) {
	assert.Equal(t, "plan not a sequence", (&SchemaError{Reason: ReasonNotSequence, Index: -1}).Error())
	assert.Equal(t, "plan entry 2: missing field: percentage",
		(&SchemaError{Reason: ReasonMissingField, Index: 2, Field: FieldPercentage}).Error())
	assert.Equal(t, "plan entry 0: entry not an object", (&SchemaError{Reason: ReasonEntryNotObject}).Error())
}
