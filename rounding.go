package numfmt

import (
	"math"
	"strconv"
	"strings"
)

// maxDecimals bounds every decimals argument. float64 carries about 17
// significant digits, so larger counts only pad zeros.
const maxDecimals = 20

// Round rounds v to decimals places under mode. Integral values are returned
// unchanged. Empty mode means RoundHalfUp.
func Round(v Value, decimals int, mode RoundingMode) (Value, error) {
	if v.Kind() == KindIntegral {
		if err := checkRoundingArgs(decimals, mode); err != nil {
			return Value{}, err
		}
		return v, nil
	}
	f, err := RoundFloat(v.f, decimals, mode)
	if err != nil {
		return Value{}, err
	}
	return Float(f), nil
}

// RoundFloat is Round for a bare float64.
//
// Rounding works on the shortest decimal that reads back as x, so 1.005 is
// treated as 1.005 and not as the binary 1.00499999999999989. UP and DOWN act
// on the magnitude (away from and toward zero), CEIL and FLOOR on the signed
// value (toward +Inf and -Inf). HALF_EVEN sends exact halves to the even
// neighbour.
func RoundFloat(x float64, decimals int, mode RoundingMode) (float64, error) {
	if math.IsNaN(x) {
		return 0, invalidInput("cannot round NaN")
	}
	if err := checkRoundingArgs(decimals, mode); err != nil {
		return 0, err
	}
	if mode == "" {
		mode = RoundHalfUp
	}
	if math.IsInf(x, 0) || x == 0 {
		return x, nil
	}

	negative := x < 0
	intPart, fracPart, _ := strings.Cut(strconv.FormatFloat(math.Abs(x), 'f', -1, 64), ".")
	if len(fracPart) <= decimals {
		return x, nil
	}

	kept := intPart + fracPart[:decimals]
	dropped := fracPart[decimals:]

	nonZero := strings.Trim(dropped, "0") != ""
	isHalf := dropped[0] == '5' && strings.Trim(dropped[1:], "0") == ""
	isAbove := dropped[0] > '5' || (dropped[0] == '5' && !isHalf)

	var up bool
	switch mode {
	case RoundUp:
		up = nonZero
	case RoundDown:
		up = false
	case RoundCeil:
		up = nonZero && !negative
	case RoundFloor:
		up = nonZero && negative
	case RoundHalfUp:
		up = isHalf || isAbove
	case RoundHalfDown:
		up = isAbove
	case RoundHalfEven:
		odd := (kept[len(kept)-1]-'0')%2 == 1
		up = isAbove || (isHalf && odd)
	}

	if up {
		kept = incrementDigits(kept)
	}

	split := len(kept) - decimals
	literal := kept[:split]
	if decimals > 0 {
		literal += "." + kept[split:]
	}
	result, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return 0, invalidInput("cannot round %v: %v", x, err)
	}
	if result == 0 {
		return 0, nil
	}
	if negative {
		result = -result
	}
	return result, nil
}

// incrementDigits adds one to a non-empty decimal digit string.
func incrementDigits(digits string) string {
	b := []byte(digits)
	for i := len(b) - 1; i >= 0; i-- {
		if b[i] < '9' {
			b[i]++
			return string(b)
		}
		b[i] = '0'
	}
	return "1" + string(b)
}

func checkRoundingArgs(decimals int, mode RoundingMode) error {
	if decimals < 0 || decimals > maxDecimals {
		return invalidInput("decimals must be between 0 and %d, got %d", maxDecimals, decimals)
	}
	if mode != "" && !mode.Valid() {
		_, err := ParseRoundingMode(string(mode))
		return err
	}
	return nil
}
