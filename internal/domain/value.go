package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ValueKind identifica o tipo de armazenamento de uma célula do SQLite
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
)

const (
	// SQLiteTimestampLayout é o formato gravado por CURRENT_TIMESTAMP. Frações de
	// segundo só aparecem quando existem.
	SQLiteTimestampLayout = "2006-01-02 15:04:05.999999999"
	// SQLiteZonedTimestampLayout é usado quando o texto gravado tinha fuso
	SQLiteZonedTimestampLayout = SQLiteTimestampLayout + "-07:00"
	SQLiteDateLayout           = "2006-01-02"
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// Value é uma célula de resultado já convertida para um dos tipos do SQLite.
// Blobs são guardados mas sempre serializados como null: o conteúdo binário
// nunca é exposto pela API.
type Value struct {
	Kind    ValueKind
	Integer int64
	Real    float64
	Text    string
	Blob    []byte
}

// UnsupportedValueError indica um valor do driver que não tem representação JSON
type UnsupportedValueError struct {
	Value any
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("valor não suportado: %T (%v)", e.Value, e.Value)
}

func NullValue() Value {
	return Value{Kind: KindNull}
}

func IntegerValue(n int64) Value {
	return Value{Kind: KindInteger, Integer: n}
}

func RealValue(f float64) Value {
	return Value{Kind: KindReal, Real: f}
}

func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func BlobValue(b []byte) Value {
	return Value{Kind: KindBlob, Blob: b}
}

// NewValue converte um valor devolvido pelo driver em um Value. Em caso de
// erro o Value retornado é sempre Null, de modo que quem chama pode ignorar o
// erro e seguir com a linha.
func NewValue(src any) (Value, error) {
	switch v := src.(type) {
	case nil:
		return NullValue(), nil
	case int64:
		return IntegerValue(v), nil
	case int:
		return IntegerValue(int64(v)), nil
	case int32:
		return IntegerValue(int64(v)), nil
	case int16:
		return IntegerValue(int64(v)), nil
	case int8:
		return IntegerValue(int64(v)), nil
	case uint32:
		return IntegerValue(int64(v)), nil
	case uint16:
		return IntegerValue(int64(v)), nil
	case uint8:
		return IntegerValue(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return NullValue(), &UnsupportedValueError{Value: src}
		}
		return IntegerValue(int64(v)), nil
	case bool:
		if v {
			return IntegerValue(1), nil
		}
		return IntegerValue(0), nil
	case float64:
		return newReal(v, src)
	case float32:
		return newReal(float64(v), src)
	case string:
		return TextValue(v), nil
	case time.Time:
		// o driver devolve colunas DATE/DATETIME/TIMESTAMP como time.Time;
		// voltamos ao texto gravado
		return TextValue(formatTimestamp(v)), nil
	case []byte:
		return BlobValue(v), nil
	default:
		return NullValue(), &UnsupportedValueError{Value: src}
	}
}

// NewColumnValue é NewValue sabendo o tipo declarado da coluna. Em colunas DATE
// o driver completa a data com meia-noite, que aqui é removida.
func NewColumnValue(src any, declType string) (Value, error) {
	if t, ok := src.(time.Time); ok && strings.EqualFold(declType, "DATE") && isMidnightUTC(t) {
		return TextValue(t.Format(SQLiteDateLayout)), nil
	}
	return NewValue(src)
}

func formatTimestamp(t time.Time) string {
	if t.Location() == time.UTC {
		return t.Format(SQLiteTimestampLayout)
	}
	return t.Format(SQLiteZonedTimestampLayout)
}

func isMidnightUTC(t time.Time) bool {
	return t.Location() == time.UTC &&
		t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

func newReal(f float64, src any) (Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NullValue(), &UnsupportedValueError{Value: src}
	}
	return RealValue(f), nil
}

// IsNull informa se o valor é serializado como null
func (v Value) IsNull() bool {
	return v.Kind == KindNull || v.Kind == KindBlob
}

// Interface devolve o valor Go equivalente ao JSON produzido
func (v Value) Interface() any {
	switch v.Kind {
	case KindInteger:
		return v.Integer
	case KindReal:
		return v.Real
	case KindText:
		return v.Text
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindInteger:
		return json.Marshal(v.Integer)
	case KindReal:
		return json.Marshal(v.Real)
	case KindText:
		return json.Marshal(v.Text)
	default:
		return []byte("null"), nil
	}
}
