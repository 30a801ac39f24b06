// Package columnar exposes the comparison history as an Apache Arrow record,
// the typed in-memory form analytics and charting consumers read.
package columnar

import (
	"fmt"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/sohipren/dashboard/types"
)

// ComparisonSchema mirrors types.ComparisonColumns
var ComparisonSchema = arrow.NewSchema([]arrow.Field{
	{Name: "data", Type: arrow.FixedWidthTypes.Timestamp_ns},
	{Name: "item1", Type: arrow.BinaryTypes.String},
	{Name: "item2", Type: arrow.BinaryTypes.String},
	{Name: "diferenca", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// FromComparisons builds a record holding every row of table. A table without
// rows still yields a record with the full schema. The caller owns the record
// and must Release it. A nil pool means memory.DefaultAllocator.
func FromComparisons(table types.ComparisonTable, pool memory.Allocator) arrow.Record {
	if pool == nil {
		pool = memory.DefaultAllocator
	}

	builder := array.NewRecordBuilder(pool, ComparisonSchema)
	defer builder.Release()

	ts := builder.Field(0).(*array.TimestampBuilder)
	item1 := builder.Field(1).(*array.StringBuilder)
	item2 := builder.Field(2).(*array.StringBuilder)
	diff := builder.Field(3).(*array.Float64Builder)

	n := len(table.Rows)
	ts.Reserve(n)
	item1.Reserve(n)
	item2.Reserve(n)
	diff.Reserve(n)

	for _, row := range table.Rows {
		ts.Append(arrow.Timestamp(row.Timestamp.UnixNano()))
		item1.Append(row.Item1)
		item2.Append(row.Item2)
		diff.Append(row.Difference)
	}
	return builder.NewRecord()
}

// ToComparisons converts a record with ComparisonSchema back into a table.
// Timestamps come back in UTC.
func ToComparisons(rec arrow.Record) (types.ComparisonTable, error) {
	table := types.NewComparisonTable()
	if !rec.Schema().Equal(ComparisonSchema) {
		return table, fmt.Errorf("unexpected schema: %s", rec.Schema())
	}

	ts, ok1 := rec.Column(0).(*array.Timestamp)
	item1, ok2 := rec.Column(1).(*array.String)
	item2, ok3 := rec.Column(2).(*array.String)
	diff, ok4 := rec.Column(3).(*array.Float64)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return table, fmt.Errorf("unexpected column types in record")
	}

	for i := 0; i < int(rec.NumRows()); i++ {
		row := types.ComparisonRecord{
			Item1:      item1.Value(i),
			Item2:      item2.Value(i),
			Difference: diff.Value(i),
		}
		if !ts.IsNull(i) {
			row.Timestamp = ts.Value(i).ToTime(arrow.Nanosecond)
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
