// Helpers for the flag package.
package flagutils

import "strings"

// SliceFlag collects the values of a string flag given multiple times.
type SliceFlag []string

func (f *SliceFlag) String() string {
	if f == nil {
		return ""
	}

	return strings.Join(*f, ",")
}

func (f *SliceFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}
