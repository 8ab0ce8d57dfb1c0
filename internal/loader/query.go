package loader

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"modernc.org/sqlite"

	"github.com/mesh-intelligence/tabview/pkg/types"
)

// LoadQuery runs query against db and converts every result row into cells.
// The whole result is read before returning; on any error no rows are
// returned.
//
// Errors: ErrConnectionFailed if db cannot be reached, ErrQueryFailed if the
// statement is rejected or fails while reading, ErrUnsupportedType if a
// column value has no cell mapping.
func LoadQuery(ctx context.Context, db *sql.DB, query string) (types.Rows, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConnectionFailed, err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}
	defer rows.Close()

	colTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("%w: reading column types: %v", types.ErrQueryFailed, err)
	}

	valueTyped := valueTypedDriver(db)
	values := make([]any, len(colTypes))
	dest := make([]any, len(colTypes))
	for i := range values {
		dest[i] = &values[i]
	}

	out := types.Rows{}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("%w: scanning row %d: %v", types.ErrQueryFailed, len(out), err)
		}
		row := make(types.Row, len(values))
		for i, v := range values {
			c, err := toCell(v, colTypes[i].DatabaseTypeName(), valueTyped)
			if err != nil {
				return nil, fmt.Errorf("column %q: %w", colTypes[i].Name(), err)
			}
			row[i] = c
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrQueryFailed, err)
	}
	return out, nil
}

// toCell maps one driver value to a cell. dbType is the column's database
// type name. When valueTyped is set the driver types each value rather than
// each column, so raw bytes are always a blob whatever the column declares.
func toCell(v any, dbType string, valueTyped bool) (types.CellValue, error) {
	switch x := v.(type) {
	case nil:
		return types.Null(), nil
	case int64:
		return types.Integer(x), nil
	case int:
		return types.Integer(int64(x)), nil
	case int32:
		return types.Integer(int64(x)), nil
	case int16:
		return types.Integer(int64(x)), nil
	case int8:
		return types.Integer(int64(x)), nil
	case uint32:
		return types.Integer(int64(x)), nil
	case uint16:
		return types.Integer(int64(x)), nil
	case uint8:
		return types.Integer(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return types.CellValue{}, fmt.Errorf("%w: uint64 value %d overflows int64", types.ErrUnsupportedType, x)
		}
		return types.Integer(int64(x)), nil
	case bool:
		if x {
			return types.Integer(1), nil
		}
		return types.Integer(0), nil
	case float64:
		return types.Real(x), nil
	case float32:
		return types.Real(float64(x)), nil
	case string:
		return types.Text(x), nil
	case []byte:
		if valueTyped {
			return types.Blob(x), nil
		}
		return bytesToCell(x, dbType)
	case time.Time:
		return types.Text(x.Format(time.RFC3339Nano)), nil
	default:
		return types.CellValue{}, fmt.Errorf("%w: %s value of Go type %T", types.ErrUnsupportedType, dbType, v)
	}
}

// bytesToCell maps the raw bytes of a text-protocol driver by the column's
// type name. MySQL returns numbers this way as their decimal text.
func bytesToCell(b []byte, dbType string) (types.CellValue, error) {
	name := strings.ToUpper(strings.TrimSpace(dbType))
	unsigned := strings.HasPrefix(name, "UNSIGNED ")
	base := strings.TrimPrefix(name, "UNSIGNED ")

	switch {
	case integerTypes[base]:
		if unsigned {
			u, err := strconv.ParseUint(string(b), 10, 64)
			if err != nil || u > math.MaxInt64 {
				return types.CellValue{}, fmt.Errorf("%w: %s value %q", types.ErrUnsupportedType, dbType, b)
			}
			return types.Integer(int64(u)), nil
		}
		i, err := strconv.ParseInt(string(b), 10, 64)
		if err != nil {
			return types.CellValue{}, fmt.Errorf("%w: %s value %q", types.ErrUnsupportedType, dbType, b)
		}
		return types.Integer(i), nil
	case floatTypes[base]:
		f, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return types.CellValue{}, fmt.Errorf("%w: %s value %q", types.ErrUnsupportedType, dbType, b)
		}
		return types.Real(f), nil
	case isTextualType(name) && utf8.Valid(b):
		return types.Text(string(b)), nil
	default:
		return types.Blob(b), nil
	}
}

var integerTypes = map[string]bool{
	"TINYINT": true, "SMALLINT": true, "MEDIUMINT": true, "INT": true,
	"INTEGER": true, "BIGINT": true, "YEAR": true,
	"INT2": true, "INT4": true, "INT8": true,
}

var floatTypes = map[string]bool{
	"FLOAT": true, "DOUBLE": true, "REAL": true, "DOUBLE PRECISION": true,
	"FLOAT4": true, "FLOAT8": true,
}

// textualTypeMarkers are substrings of database type names whose raw byte
// values are character data.
var textualTypeMarkers = []string{
	"CHAR", "TEXT", "CLOB", "JSON", "XML", "UUID",
	"DECIMAL", "NUMERIC", "ENUM", "SET",
	"DATE", "TIME",
}

func isTextualType(name string) bool {
	for _, marker := range textualTypeMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// valueTypedDriver reports whether db's driver types values individually.
// SQLite does: a column declared TEXT may hold a BLOB, and only BLOB values
// come back as []byte.
func valueTypedDriver(db *sql.DB) bool {
	_, ok := db.Driver().(*sqlite.Driver)
	return ok
}
