package formatter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rowforge/rowforge/internal/cdc"
)

// roundedScale is the fixed decimal scale applied to numeric/double values.
const roundedScale = 16

type coercion func(raw string) (any, error)

// coercions is a closed lookup table from declared type class to coercion.
// Types without an entry pass the raw string through unchanged.
var coercions = map[cdc.DataType]coercion{
	cdc.TypeNumeric:  coerceRounded,
	cdc.TypeDouble:   coerceRounded,
	cdc.TypeBit:      coerceInt32,
	cdc.TypeTinyInt:  coerceInt32,
	cdc.TypeSmallInt: coerceInt32,
	cdc.TypeInteger:  coerceInt32,
	cdc.TypeBigInt:   coerceInt64,
	cdc.TypeFloat:    coerceFloat32,
	cdc.TypeReal:     coerceFloat32,
	cdc.TypeBoolean:  coerceBool,
}

// coerceValue maps a raw captured string to its typed output value. With
// asStrings set, every value passes through untouched regardless of type.
func coerceValue(dt cdc.DataType, raw string, asStrings bool) (any, error) {
	if asStrings {
		return raw, nil
	}
	fn, ok := coercions[dt]
	if !ok {
		return raw, nil
	}
	return fn(raw)
}

// coerceRounded parses a 64-bit float and rounds it to exactly 16 fractional
// decimal digits, half away from zero. The lossy rounding is intentional and
// must stay bit-compatible with existing downstream consumers.
func coerceRounded(raw string) (any, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, newError(ErrCoerce, "numeric value %q: %v", raw, err)
	}
	return decimal.NewFromFloat(f).Round(roundedScale).InexactFloat64(), nil
}

func coerceInt32(raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, newError(ErrCoerce, "integer value %q: %v", raw, err)
	}
	return int32(v), nil
}

func coerceInt64(raw string) (any, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, newError(ErrCoerce, "bigint value %q: %v", raw, err)
	}
	return v, nil
}

func coerceFloat32(raw string) (any, error) {
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return nil, newError(ErrCoerce, "float value %q: %v", raw, err)
	}
	return float32(v), nil
}

func coerceBool(raw string) (any, error) {
	if strings.EqualFold(raw, "true") {
		return true, nil
	}
	if strings.EqualFold(raw, "false") {
		return false, nil
	}
	return nil, newError(ErrCoerce, "boolean value %q", raw)
}
