package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValue(t *testing.T) {
	createdAt := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		name     string
		src      any
		expected Value
		wantErr  bool
	}{
		{name: "nil vira null", src: nil, expected: NullValue()},
		{name: "int64", src: int64(42), expected: IntegerValue(42)},
		{name: "int negativo", src: -7, expected: IntegerValue(-7)},
		{name: "bool verdadeiro", src: true, expected: IntegerValue(1)},
		{name: "bool falso", src: false, expected: IntegerValue(0)},
		{name: "float64", src: 15000.5, expected: RealValue(15000.5)},
		{name: "float32", src: float32(0.5), expected: RealValue(0.5)},
		{name: "string", src: "North", expected: TextValue("North")},
		{name: "string vazia", src: "", expected: TextValue("")},
		{name: "time.Time vira texto", src: createdAt, expected: TextValue("2024-03-05 14:07:09")},
		{
			name:     "time.Time com fuso mantém o deslocamento",
			src:      createdAt.In(time.FixedZone("BRT", -3*3600)),
			expected: TextValue("2024-03-05 11:07:09-03:00"),
		},
		{
			name:     "time.Time com milissegundos",
			src:      createdAt.Add(123 * time.Millisecond),
			expected: TextValue("2024-03-05 14:07:09.123"),
		},
		{
			name:     "time.Time com nanossegundos e fuso",
			src:      time.Date(2024, 1, 1, 10, 0, 0, 5, time.FixedZone("", 2*3600)),
			expected: TextValue("2024-01-01 10:00:00.000000005+02:00"),
		},
		{name: "blob", src: []byte{0x01, 0x02}, expected: BlobValue([]byte{0x01, 0x02})},
		{name: "uint64 acima do limite", src: uint64(math.MaxUint64), expected: NullValue(), wantErr: true},
		{name: "NaN", src: math.NaN(), expected: NullValue(), wantErr: true},
		{name: "infinito", src: math.Inf(1), expected: NullValue(), wantErr: true},
		{name: "tipo desconhecido", src: struct{}{}, expected: NullValue(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := NewValue(tt.src)

			if tt.wantErr {
				var unsupported *UnsupportedValueError
				assert.ErrorAs(t, err, &unsupported)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestNewColumnValue(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		src      any
		declType string
		expected Value
	}{
		{name: "DATE à meia-noite vira só a data", src: day, declType: "DATE", expected: TextValue("2024-01-01")},
		{name: "tipo declarado em minúsculas", src: day, declType: "date", expected: TextValue("2024-01-01")},
		{
			name:     "DATE com horário mantém o horário",
			src:      day.Add(8*time.Hour + 30*time.Minute),
			declType: "DATE",
			expected: TextValue("2024-01-01 08:30:00"),
		},
		{
			name:     "DATE com fuso mantém o texto completo",
			src:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("", 3600)),
			declType: "DATE",
			expected: TextValue("2024-01-01 00:00:00+01:00"),
		},
		{name: "DATETIME à meia-noite mantém o horário", src: day, declType: "DATETIME", expected: TextValue("2024-01-01 00:00:00")},
		{name: "texto em coluna DATE não muda", src: "amanhã", declType: "DATE", expected: TextValue("amanhã")},
		{name: "inteiro sem tipo declarado", src: int64(7), declType: "", expected: IntegerValue(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := NewColumnValue(tt.src, tt.declType)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{name: "null", value: NullValue(), expected: `null`},
		{name: "inteiro", value: IntegerValue(1), expected: `1`},
		{name: "inteiro grande", value: IntegerValue(math.MaxInt64), expected: `9223372036854775807`},
		{name: "real sem parte decimal", value: RealValue(15000), expected: `15000`},
		{name: "real com parte decimal", value: RealValue(0.25), expected: `0.25`},
		{name: "real pequeno usa expoente", value: RealValue(1e-9), expected: `1e-9`},
		{name: "real grande usa expoente", value: RealValue(1e21), expected: `1e+21`},
		{name: "texto", value: TextValue("Product A"), expected: `"Product A"`},
		{name: "texto com aspas", value: TextValue(`a "b"`), expected: `"a \"b\""`},
		{name: "blob nunca é exposto", value: BlobValue([]byte("segredo")), expected: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.value.MarshalJSON()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(data))
		})
	}
}

func TestValue_Interface(t *testing.T) {
	assert.Nil(t, NullValue().Interface())
	assert.Nil(t, BlobValue([]byte{1}).Interface())
	assert.Equal(t, int64(3), IntegerValue(3).Interface())
	assert.Equal(t, 1.5, RealValue(1.5).Interface())
	assert.Equal(t, "x", TextValue("x").Interface())

	assert.True(t, BlobValue(nil).IsNull())
	assert.False(t, IntegerValue(0).IsNull())
}

func TestValueKind_String(t *testing.T) {
	assert.Equal(t, "integer", KindInteger.String())
	assert.Equal(t, "blob", KindBlob.String())
	assert.Equal(t, "ValueKind(9)", ValueKind(9).String())
}
