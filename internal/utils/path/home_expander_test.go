package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/dailyvideos/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/publisher"

func TestHomeExpanderExpand(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})

	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "bare_tilde", input: "~", expectedPath: testHomeDirectoryConstant},
		{name: "tilde_slash", input: "~/youtube-auto/data/daily_videos", expectedPath: filepath.Join(testHomeDirectoryConstant, "youtube-auto/data/daily_videos")},
		{name: "other_user", input: "~operator/tools", expectedPath: "~operator/tools"},
		{name: "absolute", input: "/srv/tools", expectedPath: "/srv/tools"},
		{name: "relative", input: "daily_videos", expectedPath: "daily_videos"},
		{name: "empty", input: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderKeepsPathWhenHomeUnavailable(testInstance *testing.T) {
	expander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "", errors.New("no home")
	})
	require.Equal(testInstance, "~/tools", expander.Expand("~/tools"))
}
