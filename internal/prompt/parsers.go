package prompt

import (
	"math"
	"strconv"
	"strings"
)

// Float accepts finite numbers >= min.
func Float(min float64) Parser[float64] {
	return func(raw string) (float64, error) {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, Invalid("%q is not a number.", raw)
		}
		if v < min {
			return 0, Invalid("Value must be at least %g.", min)
		}
		return v, nil
	}
}

// PositiveFloat accepts finite numbers > 0.
func PositiveFloat(raw string) (float64, error) {
	v, err := Float(0)(raw)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, Invalid("Value must be greater than 0.")
	}
	return v, nil
}

// PositiveInt accepts whole numbers > 0.
func PositiveInt(raw string) (int, error) {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, Invalid("%q is not a whole number.", raw)
	}
	if v <= 0 {
		return 0, Invalid("Please enter a positive integer.")
	}
	return v, nil
}

// NonEmpty accepts any non-blank answer.
func NonEmpty(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", Invalid("This field cannot be empty.")
	}
	return strings.TrimSpace(raw), nil
}

// Choice accepts a menu number between 1 and n.
func Choice(n int) Parser[int] {
	return func(raw string) (int, error) {
		v, err := PositiveInt(raw)
		if err != nil {
			return 0, err
		}
		if v > n {
			return 0, Invalid("Choose a number between 1 and %d.", n)
		}
		return v, nil
	}
}

// YesNo accepts yes/y and no/n in any case.
func YesNo(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	default:
		return false, Invalid("Please answer yes or no.")
	}
}
