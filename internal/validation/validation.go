package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"

	"github.com/sohipren/dashboard/types"
)

// Persisted field names of a maintenance record, in the order they are checked
const (
	FieldPart        = "peca"
	FieldType        = "tipo_manutencao"
	FieldDescription = "descricao"
	FieldCost        = "custo"
	FieldDifference  = "diferenca"
)

// RequiredMaintenanceFields lists the keys a maintenance form must supply
var RequiredMaintenanceFields = []string{FieldPart, FieldType, FieldDescription, FieldCost}

// English names accepted from callers that build records as maps
var fieldAliases = map[string]string{
	"part":             FieldPart,
	"maintenance_type": FieldType,
	"description":      FieldDescription,
	"cost":             FieldCost,
}

// Number converts v to float64 if it is numeric.
// Strings are rejected even when they look like numbers; bools too.
func Number(field string, v interface{}) (float64, error) {
	if v == nil {
		return 0, types.NewNotNumericError(field, v)
	}

	var f float64
	if n, ok := v.(json.Number); ok {
		parsed, err := n.Float64()
		if err != nil {
			return 0, types.NewNotNumericError(field, v)
		}
		f = parsed
	} else {
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			f = float64(rv.Int())
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			f = float64(rv.Uint())
		case reflect.Float32, reflect.Float64:
			f = rv.Float()
		case reflect.Ptr:
			if rv.IsNil() {
				return 0, types.NewNotNumericError(field, v)
			}
			return Number(field, rv.Elem().Interface())
		default:
			return 0, types.NewNotNumericError(field, v)
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &types.ValidationError{Field: field, Reason: "must be a finite number", Value: v}
	}
	return f, nil
}

// RequireFields checks that every key in required is present in fields.
// The first missing key is reported.
func RequireFields(fields map[string]interface{}, required ...string) error {
	for _, name := range required {
		if _, ok := fields[name]; !ok {
			return types.NewMissingFieldError(name)
		}
	}
	return nil
}

// MaintenanceFromFields builds a record from a loosely typed form submission.
// Keys may use the persisted names or their English aliases.
func MaintenanceFromFields(fields map[string]interface{}) (types.MaintenanceRecord, error) {
	normalized := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if canonical, ok := fieldAliases[k]; ok {
			k = canonical
		}
		normalized[k] = v
	}

	if err := RequireFields(normalized, RequiredMaintenanceFields...); err != nil {
		return types.MaintenanceRecord{}, err
	}

	cost, err := Number(FieldCost, normalized[FieldCost])
	if err != nil {
		return types.MaintenanceRecord{}, err
	}

	mtype, err := types.ParseMaintenanceType(fmt.Sprint(normalized[FieldType]))
	if err != nil {
		return types.MaintenanceRecord{}, &types.ValidationError{
			Field:  FieldType,
			Reason: err.Error(),
			Value:  normalized[FieldType],
		}
	}

	rec := types.MaintenanceRecord{
		Part:            text(normalized[FieldPart]),
		MaintenanceType: mtype,
		Description:     text(normalized[FieldDescription]),
		Cost:            cost,
	}
	return rec, ValidateMaintenance(rec)
}

// ValidateMaintenance checks a typed record before it is stored.
// Part and description are free text and may be empty; whether a form
// supplied them at all is checked by MaintenanceFromFields.
func ValidateMaintenance(rec types.MaintenanceRecord) error {
	if !rec.MaintenanceType.Valid() {
		return &types.ValidationError{
			Field:  FieldType,
			Reason: fmt.Sprintf("must be one of %v", types.MaintenanceTypes),
			Value:  rec.MaintenanceType,
		}
	}
	if _, err := Number(FieldCost, rec.Cost); err != nil {
		return err
	}
	if rec.Cost < 0 {
		return &types.ValidationError{Field: FieldCost, Reason: "must not be negative", Value: rec.Cost}
	}
	return nil
}

// text renders a submitted value; an explicit nil is empty text
func text(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
