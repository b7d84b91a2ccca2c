package numfmt

import (
	"math"
	"strings"
)

// BytesOptions control FormatBytes. Start from BytesDefaults.
type BytesOptions struct {
	// Binary selects 1024-based IEC units (KiB); otherwise 1000-based SI units (KB).
	Binary     bool
	Decimals   int
	StripZeros bool
	// LongForm spells units out ("Kibibytes") instead of the symbol ("KiB").
	LongForm bool
	Mode     RoundingMode
}

// BytesDefaults returns binary units with two decimals.
func BytesDefaults() BytesOptions {
	return BytesOptions{Binary: true, Decimals: 2, Mode: RoundHalfUp}
}

var (
	binaryByteUnits  = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	decimalByteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
	binaryByteNames  = []string{"Bytes", "Kibibytes", "Mebibytes", "Gibibytes", "Tebibytes", "Pebibytes", "Exbibytes"}
	decimalByteNames = []string{"Bytes", "Kilobytes", "Megabytes", "Gigabytes", "Terabytes", "Petabytes", "Exabytes"}
)

// FormatBytes renders a byte count with the largest unit that keeps the
// magnitude at or above one, up to exbibytes.
func (e *Engine) FormatBytes(v Value, locale string, opts BytesOptions) (string, error) {
	cfg, err := e.locale(locale)
	if err != nil {
		return "", err
	}
	return formatBytes(v, cfg, opts)
}

func formatBytes(v Value, cfg *LocaleConfig, opts BytesOptions) (string, error) {
	if v.IsNaN() {
		return "", invalidInput("cannot format NaN as bytes")
	}
	if err := checkRoundingArgs(opts.Decimals, opts.Mode); err != nil {
		return "", err
	}

	units, base := decimalByteUnits, 1000.0
	if opts.LongForm {
		units = decimalByteNames
	}
	if opts.Binary {
		units, base = binaryByteUnits, 1024.0
		if opts.LongForm {
			units = binaryByteNames
		}
	}

	if v.IsZero() {
		return "0 " + units[0], nil
	}

	f := v.Float64()
	exp := magnitudeOrder(math.Abs(f), base)
	if exp >= len(units) {
		exp = len(units) - 1
	}

	scaled, err := RoundFloat(f/math.Pow(base, float64(exp)), opts.Decimals, opts.Mode)
	if err != nil {
		return "", err
	}
	number := formatFloat(scaled, opts.Decimals, cfg, opts.StripZeros)

	unit := units[exp]
	if opts.LongForm && exp > 0 && math.Abs(scaled) == 1 {
		unit = strings.TrimSuffix(unit, "s")
	}
	return number + " " + unit, nil
}
