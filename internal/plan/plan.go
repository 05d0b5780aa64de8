// Package plan parses and validates asset-allocation plans.
//
// A plan is an ordered list of named target percentages. Load turns an
// already decoded structure (as produced by encoding/json or yaml.v3) into
// typed entries, rejecting the whole plan on the first structural problem.
// A percentage sum that drifts from 1.0 is reported as a Warning only.
package plan

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/iwvelando/asset-allocation/pkg/mathutil"
)

// Field names of the plan schema.
const (
	FieldName       = "name"
	FieldPercentage = "percentage"
	FieldID         = "id"
	FieldMemo       = "memo"
)

// WarnSumMismatch flags a plan whose percentages do not add up to 1.0.
const WarnSumMismatch = "W_SUM_MISMATCH"

// AssetEntry is one line of a plan.
type AssetEntry struct {
	Name       string  `json:"name" yaml:"name"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	ID         string  `json:"id,omitempty" yaml:"id,omitempty"`
	Memo       string  `json:"memo,omitempty" yaml:"memo,omitempty"`
}

// Plan is an ordered sequence of entries.
type Plan []AssetEntry

// Sum returns the sum of all percentages.
func (p Plan) Sum() float64 {
	var sum float64
	for _, entry := range p {
		sum += entry.Percentage
	}
	return sum
}

// Warning is a non-fatal finding attached to a successfully loaded plan.
type Warning struct {
	Code    string  `json:"code"`
	Message string  `json:"message"`
	Sum     float64 `json:"sum"`
}

func (w Warning) String() string {
	return w.Message
}

// Result is a validated plan together with its advisory warnings.
type Result struct {
	Plan     Plan      `json:"plan"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Sum returns the plan's percentage sum.
func (r Result) Sum() float64 {
	return r.Plan.Sum()
}

// HasWarning reports whether a warning with the given code was raised.
func (r Result) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Load validates raw and converts it into a Plan. raw must be a sequence of
// keyed records; the first violation aborts with a *SchemaError.
func Load(raw any) (Result, error) {
	items, ok := raw.([]any)
	if !ok {
		return Result{}, &SchemaError{Reason: ReasonNotSequence, Index: -1}
	}

	p := make(Plan, 0, len(items))
	for i, item := range items {
		record, ok := asRecord(item)
		if !ok {
			return Result{}, &SchemaError{Reason: ReasonEntryNotObject, Index: i}
		}
		entry, err := parseEntry(i, record)
		if err != nil {
			return Result{}, err
		}
		p = append(p, entry)
	}

	result := Result{Plan: p}
	if sum := p.Sum(); !mathutil.SumMatches(sum) {
		result.Warnings = append(result.Warnings, Warning{
			Code:    WarnSumMismatch,
			Message: fmt.Sprintf("total percentage is %.3f, not 1.0", sum),
			Sum:     sum,
		})
	}
	return result, nil
}

func parseEntry(i int, record map[string]any) (AssetEntry, error) {
	for _, field := range []string{FieldName, FieldPercentage} {
		if _, ok := record[field]; !ok {
			return AssetEntry{}, &SchemaError{Reason: ReasonMissingField, Index: i, Field: field}
		}
	}

	name, ok := record[FieldName].(string)
	if !ok {
		return AssetEntry{}, &SchemaError{Reason: ReasonNameNotString, Index: i, Field: FieldName}
	}
	if strings.TrimSpace(name) == "" {
		return AssetEntry{}, &SchemaError{Reason: ReasonEmptyName, Index: i, Field: FieldName}
	}

	pct, ok := asNumber(record[FieldPercentage])
	if !ok {
		return AssetEntry{}, &SchemaError{Reason: ReasonNotNumeric, Index: i, Field: FieldPercentage}
	}
	// NaN fails both comparisons, so test for the in-range case.
	if !(pct >= 0 && pct <= 1) {
		return AssetEntry{}, &SchemaError{Reason: ReasonOutOfRange, Index: i, Field: FieldPercentage}
	}

	id, err := optionalString(i, record, FieldID)
	if err != nil {
		return AssetEntry{}, err
	}
	memo, err := optionalString(i, record, FieldMemo)
	if err != nil {
		return AssetEntry{}, err
	}

	return AssetEntry{
		Name:       norm.NFC.String(name),
		Percentage: pct,
		ID:         id,
		Memo:       memo,
	}, nil
}

// asRecord accepts the map shapes produced by encoding/json and yaml decoders.
func asRecord(item any) (map[string]any, bool) {
	switch v := item.(type) {
	case map[string]any:
		return v, true
	case map[any]any:
		record := make(map[string]any, len(v))
		for key, value := range v {
			s, ok := key.(string)
			if !ok {
				s = fmt.Sprint(key)
			}
			record[s] = value
		}
		return record, true
	}
	return nil, false
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			// out-of-range literals come back as ±Inf and fail the range check
			if math.IsInf(f, 0) {
				return f, true
			}
			return math.NaN(), false
		}
		return f, true
	}
	return 0, false
}

func optionalString(i int, record map[string]any, field string) (string, error) {
	switch v := record[field].(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", &SchemaError{Reason: ReasonFieldNotString, Index: i, Field: field}
}
