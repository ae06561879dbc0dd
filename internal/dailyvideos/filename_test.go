package dailyvideos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestResolveFilename(t *testing.T) {
	testCases := []struct {
		name     string
		moment   time.Time
		expected string
	}{
		{
			name:     "UTCMoment",
			moment:   time.Date(2024, time.May, 1, 12, 0, 0, 0, time.UTC),
			expected: "videos_2024-05-01.json",
		},
		{
			name:     "LocalEveningIsNextUTCDay",
			moment:   time.Date(2024, time.May, 1, 20, 30, 0, 0, time.FixedZone("UTC-5", -5*60*60)),
			expected: "videos_2024-05-02.json",
		},
		{
			name:     "LocalMorningIsPreviousUTCDay",
			moment:   time.Date(2024, time.January, 1, 3, 0, 0, 0, time.FixedZone("UTC+9", 9*60*60)),
			expected: "videos_2023-12-31.json",
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, ResolveFilename(testCase.moment))
		})
	}
}
