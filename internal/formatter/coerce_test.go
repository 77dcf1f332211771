package formatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowforge/rowforge/internal/cdc"
)

func TestCoerceValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		dataType  cdc.DataType
		raw       string
		asStrings bool
		want      any
		wantErr   bool
	}{
		"numeric rounds to 16 fractional digits half-up": {
			dataType: cdc.TypeNumeric,
			raw:      "3.14159265358979323846",
			want:     3.1415926535897931,
		},
		"double uses the same rounding": {
			dataType: cdc.TypeDouble,
			raw:      "2.5",
			want:     2.5,
		},
		"malformed numeric": {
			dataType: cdc.TypeNumeric,
			raw:      "12,5",
			wantErr:  true,
		},
		"integer": {
			dataType: cdc.TypeInteger,
			raw:      "42",
			want:     int32(42),
		},
		"bit": {
			dataType: cdc.TypeBit,
			raw:      "1",
			want:     int32(1),
		},
		"smallint negative": {
			dataType: cdc.TypeSmallInt,
			raw:      "-7",
			want:     int32(-7),
		},
		"integer overflow": {
			dataType: cdc.TypeInteger,
			raw:      "3000000000",
			wantErr:  true,
		},
		"bigint": {
			dataType: cdc.TypeBigInt,
			raw:      "9223372036854775807",
			want:     int64(9223372036854775807),
		},
		"float": {
			dataType: cdc.TypeFloat,
			raw:      "1.5",
			want:     float32(1.5),
		},
		"real": {
			dataType: cdc.TypeReal,
			raw:      "-0.25",
			want:     float32(-0.25),
		},
		"boolean true case-insensitive": {
			dataType: cdc.TypeBoolean,
			raw:      "TRUE",
			want:     true,
		},
		"boolean false": {
			dataType: cdc.TypeBoolean,
			raw:      "false",
			want:     false,
		},
		"boolean malformed": {
			dataType: cdc.TypeBoolean,
			raw:      "yes",
			wantErr:  true,
		},
		"varchar passes through": {
			dataType: cdc.TypeVarchar,
			raw:      "hello",
			want:     "hello",
		},
		"treat all as strings bypasses coercion": {
			dataType:  cdc.TypeInteger,
			raw:       "not a number",
			asStrings: true,
			want:      "not a number",
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			req := require.New(t)

			got, err := coerceValue(tc.dataType, tc.raw, tc.asStrings)
			if tc.wantErr {
				req.Error(err)
				req.True(errors.Is(err, ErrCoerce))
				req.Nil(got)
				return
			}
			req.NoError(err)
			req.Equal(tc.want, got)
		})
	}
}
