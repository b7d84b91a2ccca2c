package numfmt

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ValueKind distinguishes the two numeric representations the engine accepts.
type ValueKind int

const (
	// KindFloating values carry an IEEE-754 double.
	KindFloating ValueKind = iota
	// KindIntegral values carry an exact big integer.
	KindIntegral
)

func (k ValueKind) String() string {
	switch k {
	case KindIntegral:
		return "integral"
	default:
		return "floating"
	}
}

// Value is a number that is either a double or an exact integer.
// The zero Value is Float(0).
type Value struct {
	kind ValueKind
	f    float64
	i    *big.Int
}

// Float wraps a double.
func Float(f float64) Value {
	return Value{kind: KindFloating, f: f}
}

// Int wraps an int64 as an exact integral value.
func Int(i int64) Value {
	return Value{kind: KindIntegral, i: big.NewInt(i)}
}

// BigInt wraps a copy of i. A nil pointer is treated as zero.
func BigInt(i *big.Int) Value {
	if i == nil {
		return Int(0)
	}
	return Value{kind: KindIntegral, i: new(big.Int).Set(i)}
}

// ValueOf converts common Go numeric types and numeric strings into a Value.
// Machine integers become floating values so decimals still apply; use Int or
// BigInt for exact integral formatting.
func ValueOf(v any) (Value, error) {
	switch n := v.(type) {
	case Value:
		return n, nil
	case float64:
		return Float(n), nil
	case float32:
		return Float(float64(n)), nil
	case int:
		return Float(float64(n)), nil
	case int8:
		return Float(float64(n)), nil
	case int16:
		return Float(float64(n)), nil
	case int32:
		return Float(float64(n)), nil
	case int64:
		return Float(float64(n)), nil
	case uint:
		return Float(float64(n)), nil
	case uint8:
		return Float(float64(n)), nil
	case uint16:
		return Float(float64(n)), nil
	case uint32:
		return Float(float64(n)), nil
	case uint64:
		return Float(float64(n)), nil
	case *big.Int:
		return BigInt(n), nil
	case big.Int:
		return BigInt(&n), nil
	case string:
		s := strings.TrimSpace(n)
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f), nil
		}
		if i, ok := new(big.Int).SetString(s, 10); ok {
			return BigInt(i), nil
		}
		return Value{}, invalidInput("cannot convert %q to a number", n)
	default:
		return Value{}, invalidInput("unsupported numeric type %T", v)
	}
}

// Kind reports which representation v carries.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Float64 returns v as a double. Integral values may lose precision.
func (v Value) Float64() float64 {
	if v.kind == KindIntegral {
		if v.i == nil {
			return 0
		}
		f, _ := new(big.Float).SetInt(v.i).Float64()
		return f
	}
	return v.f
}

// Big returns a copy of the integer for integral values.
func (v Value) Big() (*big.Int, bool) {
	if v.kind != KindIntegral {
		return nil, false
	}
	if v.i == nil {
		return new(big.Int), true
	}
	return new(big.Int).Set(v.i), true
}

// Sign returns -1, 0 or +1. NaN reports 0.
func (v Value) Sign() int {
	if v.kind == KindIntegral {
		if v.i == nil {
			return 0
		}
		return v.i.Sign()
	}
	switch {
	case v.f > 0:
		return 1
	case v.f < 0:
		return -1
	default:
		return 0
	}
}

// IsZero reports whether v is zero in either representation.
func (v Value) IsZero() bool {
	if v.kind == KindIntegral {
		return v.i == nil || v.i.Sign() == 0
	}
	return v.f == 0
}

// IsNaN reports whether v is a floating NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindFloating && math.IsNaN(v.f)
}

// Abs returns the magnitude of v, preserving its kind.
func (v Value) Abs() Value {
	if v.kind == KindIntegral {
		if v.i == nil {
			return Int(0)
		}
		return Value{kind: KindIntegral, i: new(big.Int).Abs(v.i)}
	}
	return Float(math.Abs(v.f))
}

func (v Value) String() string {
	if v.kind == KindIntegral {
		if v.i == nil {
			return "0"
		}
		return v.i.String()
	}
	return strconv.FormatFloat(v.f, 'f', -1, 64)
}

// RoundingMode selects the tie-breaking rule used by Round.
type RoundingMode string

const (
	RoundUp       RoundingMode = "UP"
	RoundDown     RoundingMode = "DOWN"
	RoundCeil     RoundingMode = "CEIL"
	RoundFloor    RoundingMode = "FLOOR"
	RoundHalfUp   RoundingMode = "HALF_UP"
	RoundHalfDown RoundingMode = "HALF_DOWN"
	RoundHalfEven RoundingMode = "HALF_EVEN"
)

// RoundingModes lists every supported mode in declaration order.
var RoundingModes = []RoundingMode{
	RoundUp, RoundDown, RoundCeil, RoundFloor, RoundHalfUp, RoundHalfDown, RoundHalfEven,
}

// ParseRoundingMode accepts the canonical names case-insensitively, with '-' or '_'.
func ParseRoundingMode(s string) (RoundingMode, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if normalized == "" {
		return RoundHalfUp, nil
	}
	for _, mode := range RoundingModes {
		if string(mode) == normalized {
			return mode, nil
		}
	}
	names := make([]string, len(RoundingModes))
	for i, mode := range RoundingModes {
		names[i] = string(mode)
	}
	return "", invalidInput("unknown rounding mode %q (available: %s)", s, strings.Join(names, ", "))
}

// Valid reports whether m is one of the declared modes.
func (m RoundingMode) Valid() bool {
	for _, mode := range RoundingModes {
		if mode == m {
			return true
		}
	}
	return false
}

// PartKind labels a segment produced by ToParts.
type PartKind string

const (
	PartInteger          PartKind = "integer"
	PartDecimalSeparator PartKind = "decimal"
	PartFraction         PartKind = "fraction"
	PartGroupSeparator   PartKind = "group"
	PartCurrency         PartKind = "currency"
	PartPercentSign      PartKind = "percentSign"
	PartUnit             PartKind = "unit"
	PartMinusSign        PartKind = "minusSign"
	PartPlusSign         PartKind = "plusSign"
	PartLiteral          PartKind = "literal"
)

// NumberPart is one typed segment of a formatted number.
type NumberPart struct {
	Kind PartKind `json:"type"`
	Text string   `json:"value"`
}

func (p NumberPart) String() string {
	return fmt.Sprintf("%s(%q)", p.Kind, p.Text)
}

// JoinParts concatenates the text of every part.
func JoinParts(parts []NumberPart) string {
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.Text)
	}
	return b.String()
}
