package firestore

import (
	"encoding/base64"
	"fmt"
	"math"
	"time"

	firestoreapi "google.golang.org/api/firestore/v1"
)

// DecodeFields converts Firestore typed values into plain Go values.
//
// The generated REST types do not mark which member of a Value is set, so a
// value holding "", false or 0 cannot be told apart from an unset one and
// decodes to nil.
func DecodeFields(fields map[string]firestoreapi.Value) map[string]any {
	out := make(map[string]any, len(fields))
	for name, v := range fields {
		out[name] = DecodeValue(&v)
	}
	return out
}

// DecodeValue converts one Firestore typed value.
func DecodeValue(v *firestoreapi.Value) any {
	switch {
	case v == nil:
		return nil
	case v.NullValue != "":
		return nil
	case v.StringValue != "":
		return v.StringValue
	case v.MapValue != nil:
		return DecodeFields(v.MapValue.Fields)
	case v.ArrayValue != nil:
		out := make([]any, len(v.ArrayValue.Values))
		for i, item := range v.ArrayValue.Values {
			out[i] = DecodeValue(item)
		}
		return out
	case v.TimestampValue != "":
		if ts, err := time.Parse(time.RFC3339Nano, v.TimestampValue); err == nil {
			return ts
		}
		return v.TimestampValue
	case v.ReferenceValue != "":
		return v.ReferenceValue
	case v.BytesValue != "":
		if b, err := base64.StdEncoding.DecodeString(v.BytesValue); err == nil {
			return b
		}
		return v.BytesValue
	case v.GeoPointValue != nil:
		return map[string]any{"latitude": v.GeoPointValue.Latitude, "longitude": v.GeoPointValue.Longitude}
	case v.IntegerValue != 0:
		return v.IntegerValue
	case v.DoubleValue != 0:
		return v.DoubleValue
	case v.BooleanValue:
		return true
	default:
		return nil
	}
}

// EncodeFields converts plain Go values into Firestore typed values.
func EncodeFields(fields map[string]any) (map[string]firestoreapi.Value, error) {
	out := make(map[string]firestoreapi.Value, len(fields))
	for name, raw := range fields {
		v, err := EncodeValue(raw)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		out[name] = *v
	}
	return out, nil
}

// EncodeValue converts one Go value. Zero values are force-sent so the
// value type survives JSON encoding.
func EncodeValue(raw any) (*firestoreapi.Value, error) {
	switch x := raw.(type) {
	case nil:
		return &firestoreapi.Value{NullValue: "NULL_VALUE"}, nil
	case string:
		return &firestoreapi.Value{StringValue: x, ForceSendFields: []string{"StringValue"}}, nil
	case bool:
		return &firestoreapi.Value{BooleanValue: x, ForceSendFields: []string{"BooleanValue"}}, nil
	case int:
		return encodeInt(int64(x)), nil
	case int64:
		return encodeInt(x), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return encodeInt(int64(x)), nil
		}
		return &firestoreapi.Value{DoubleValue: x, ForceSendFields: []string{"DoubleValue"}}, nil
	case time.Time:
		return &firestoreapi.Value{TimestampValue: x.UTC().Format(time.RFC3339Nano)}, nil
	case []byte:
		return &firestoreapi.Value{BytesValue: base64.StdEncoding.EncodeToString(x)}, nil
	case []any:
		values := make([]*firestoreapi.Value, len(x))
		for i, item := range x {
			v, err := EncodeValue(item)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return &firestoreapi.Value{ArrayValue: &firestoreapi.ArrayValue{Values: values}}, nil
	case map[string]any:
		nested, err := EncodeFields(x)
		if err != nil {
			return nil, err
		}
		return &firestoreapi.Value{MapValue: &firestoreapi.MapValue{Fields: nested}}, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", raw)
	}
}

func encodeInt(n int64) *firestoreapi.Value {
	return &firestoreapi.Value{IntegerValue: n, ForceSendFields: []string{"IntegerValue"}}
}
