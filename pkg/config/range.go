package config

import (
	"cmp"
	"fmt"
)

// ValidateRange checks lo <= v <= hi for any ordered setting.
// Durations print in their String form ("1m30s").
func ValidateRange[T cmp.Ordered](v, lo, hi T) error {
	switch {
	case lo > hi:
		return fmt.Errorf("invalid range: min (%v) cannot be greater than max (%v)", lo, hi)
	case v < lo:
		return fmt.Errorf("value %v is below minimum %v", v, lo)
	case v > hi:
		return fmt.Errorf("value %v exceeds maximum %v", v, hi)
	}
	return nil
}
