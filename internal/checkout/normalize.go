package checkout

import (
	"bytes"
	"encoding"
	"encoding/json"
	"fmt"
	"github.com/google/uuid"
	"github.com/nikolayk812/vertex-pos/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Normalize reduces v to the plain values a JSON backend accepts:
// nil, bool, int64, float64, string, []any and map[string]any.
//
// Values that cannot be coerced are returned unchanged and reported, so the
// caller can log them and still attempt the insert.
func Normalize(v any) (any, []*domain.SerializationError) {
	var errs []*domain.SerializationError
	out := normalize("$", v, &errs)
	return out, errs
}

// NormalizeMap is Normalize for a top-level record.
func NormalizeMap(m map[string]any) (map[string]any, []*domain.SerializationError) {
	var errs []*domain.SerializationError

	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = normalize(k, v, &errs)
	}

	return out, errs
}

func normalize(path string, v any, errs *[]*domain.SerializationError) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string, bool, int64:
		return x
	case float64:
		return checkFloat(path, x, errs)
	case decimal.Decimal:
		return x.InexactFloat64()
	case *decimal.Decimal:
		if x == nil {
			return nil
		}
		return x.InexactFloat64()
	case decimal.NullDecimal:
		if !x.Valid {
			return nil
		}
		return x.Decimal.InexactFloat64()
	case uuid.UUID:
		return x.String()
	case uuid.NullUUID:
		if !x.Valid {
			return nil
		}
		return x.UUID.String()
	case currency.Unit:
		return x.String()
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return checkFloat(path, f, errs)
		}
		return fail(path, v, errs)
	case *big.Int:
		if x == nil {
			return nil
		}
		if x.IsInt64() {
			return x.Int64()
		}
		f, _ := new(big.Float).SetInt(x).Float64()
		return checkFloat(path, f, errs)
	case *big.Float:
		if x == nil {
			return nil
		}
		f, _ := x.Float64()
		return checkFloat(path, f, errs)
	case *big.Rat:
		if x == nil {
			return nil
		}
		f, _ := x.Float64()
		return checkFloat(path, f, errs)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case []byte:
		return string(x)
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return fail(path, v, errs)
		}
		return int64(u)
	case reflect.Float32:
		// via the shortest float32 text so 0.1 stays 0.1
		f, _ := strconv.ParseFloat(strconv.FormatFloat(rv.Float(), 'g', -1, 32), 64)
		return checkFloat(path, f, errs)
	case reflect.Float64:
		return checkFloat(path, rv.Float(), errs)
	case reflect.String:
		return rv.String()
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return normalize(path, rv.Elem().Interface(), errs)
	}

	if out, ok := normalizeMarshaler(path, v, errs); ok {
		return out
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := range rv.Len() {
			out[i] = normalize(fmt.Sprintf("%s[%d]", path, i), rv.Index(i).Interface(), errs)
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			out[key] = normalize(path+"."+key, iter.Value().Interface(), errs)
		}
		return out
	case reflect.Struct:
		return normalizeStruct(path, rv, errs)
	}

	return fail(path, v, errs)
}

// normalizeMarshaler handles library types that know how to encode themselves.
func normalizeMarshaler(path string, v any, errs *[]*domain.SerializationError) (any, bool) {
	switch m := v.(type) {
	case json.Marshaler:
		raw, err := m.MarshalJSON()
		if err != nil {
			return fail(path, v, errs), true
		}

		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		var generic any
		if err := dec.Decode(&generic); err != nil {
			return fail(path, v, errs), true
		}
		return normalize(path, generic, errs), true
	case encoding.TextMarshaler:
		text, err := m.MarshalText()
		if err != nil {
			return fail(path, v, errs), true
		}
		return string(text), true
	}

	return nil, false
}

func normalizeStruct(path string, rv reflect.Value, errs *[]*domain.SerializationError) any {
	rt := rv.Type()
	out := make(map[string]any, rt.NumField())

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		name, omitEmpty, skip := jsonFieldName(field)
		if skip {
			continue
		}

		fv := rv.Field(i)
		if omitEmpty && fv.IsZero() {
			continue
		}

		out[name] = normalize(path+"."+name, fv.Interface(), errs)
	}

	return out
}

func jsonFieldName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}

	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}

	return name, strings.Contains(opts, "omitempty"), false
}

func checkFloat(path string, f float64, errs *[]*domain.SerializationError) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fail(path, f, errs)
	}
	return f
}

func fail(path string, v any, errs *[]*domain.SerializationError) any {
	*errs = append(*errs, &domain.SerializationError{Path: path, Value: v})
	return v
}
