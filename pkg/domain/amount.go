package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount reads a decimal number. Both 1.23 and 1,23 are accepted.
func ParseAmount(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidAmount, s)
	}
	f, _ := d.Float64()
	return f, nil
}

// FormatAmount renders v with exactly two decimals.
func FormatAmount(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// Amount is a money value that is always written with two decimals.
type Amount float64

func (a Amount) String() string {
	return FormatAmount(float64(a))
}

// MarshalYAML emits a plain float scalar such as 30.00 rather than 30.
func (a Amount) MarshalYAML() (interface{}, error) {
	return &yaml.Node{
		Kind:  yaml.ScalarNode,
		Tag:   "!!float",
		Value: a.String(),
	}, nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}
