package format_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/git-credit/git-credit/internal/format"
)

func TestAbbrev(t *testing.T) {
	require.Equal(t, "hello", format.Abbrev("hello", 10))
	require.Equal(t, "hell…", format.Abbrev("hello world", 5))
}

func TestNumber(t *testing.T) {
	require.Equal(t, "0", format.Number(0))
	require.Equal(t, "999", format.Number(999))
	require.Equal(t, "1,234", format.Number(1234))
	require.Equal(t, "1,234,567", format.Number(1234567))
}

func TestGitEmail(t *testing.T) {
	require.Equal(t, "<bob@mail.com>", format.GitEmail("bob@mail.com"))
}

func TestRelativeTime(t *testing.T) {
	now, err := time.Parse(time.DateTime, "2024-12-30 10:13:00")
	require.NoError(t, err)

	tests := []struct {
		name     string
		then     string
		expected string
	}{
		{"just now", "2024-12-30 10:12:45", "just now"},
		{"minutes", "2024-12-30 10:03:00", "10 min. ago"},
		{"hours", "2024-12-30 04:13:00", "6 hr. ago"},
		{"one day", "2024-12-29 04:13:00", "1 day ago"},
		{"days", "2024-12-27 10:13:00", "3 days ago"},
		{"months", "2024-10-01 00:00:00", "3 months ago"},
		{"one year", "2023-10-16 17:16:05", "1 year ago"},
		{"years", "2021-01-04 00:00:00", "3 years ago"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			then, err := time.Parse(time.DateTime, test.then)
			require.NoError(t, err)
			require.Equal(t, test.expected, format.RelativeTime(now, then))
		})
	}
}

func TestRelativeTimeZero(t *testing.T) {
	require.Equal(t, "", format.RelativeTime(time.Now(), time.Time{}))
}
