package numfmt

import "math"

const abbreviationDecimals = 2

// abbreviate rescales v by the largest power of 1000 the locale has a unit for
// and appends that unit. Values below 1000, zero, orders with an empty label
// and magnitudes beyond the unit table return formatted untouched.
func abbreviate(v Value, formatted string, cfg *LocaleConfig) string {
	if v.IsZero() || v.IsNaN() {
		return formatted
	}
	f := v.Float64()
	abs := math.Abs(f)
	if math.IsInf(abs, 0) {
		return formatted
	}

	order := magnitudeOrder(abs, 1000)
	if order == 0 || order >= len(cfg.Units) || cfg.Units[order].IsZero() {
		return formatted
	}

	scaled, err := RoundFloat(f/math.Pow(1000, float64(order)), abbreviationDecimals, RoundHalfUp)
	if err != nil {
		return formatted
	}
	// 999_999 rounds to 1000k; move it to the next unit when one exists.
	if math.Abs(scaled) >= 1000 && order+1 < len(cfg.Units) && !cfg.Units[order+1].IsZero() {
		order++
		scaled, _ = RoundFloat(f/math.Pow(1000, float64(order)), abbreviationDecimals, RoundHalfUp)
	}

	number := formatFloat(scaled, abbreviationDecimals, cfg, true)
	label := cfg.Units[order].Label(math.Abs(scaled) == 1)
	if cfg.Compact {
		return number + label
	}
	return number + " " + label
}

// magnitudeOrder returns floor(log_base(abs)) for abs >= 1, computed by
// repeated comparison so exact powers land on the right order.
func magnitudeOrder(abs, base float64) int {
	order := 0
	for threshold := base; abs >= threshold && !math.IsInf(threshold, 0); threshold *= base {
		order++
	}
	return order
}
