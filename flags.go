package trkhits

import (
	"fmt"
	"strings"
)

// StringArrayFlags is a repeatable string flag. The first Set replaces the
// default; later ones append. Comma separated values are split.
type StringArrayFlags struct {
	Array   []string
	beenSet bool
}

func (f *StringArrayFlags) Set(valueStr string) error {
	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	for _, value := range strings.Split(valueStr, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			return fmt.Errorf("empty value in %q", valueStr)
		}
		f.Array = append(f.Array, value)
	}
	return nil
}

func (f *StringArrayFlags) String() string {
	if f == nil {
		return ""
	}
	return strings.Join(f.Array, ",")
}
