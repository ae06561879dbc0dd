package dailyvideos

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustEntry(t *testing.T, data string) Entry {
	t.Helper()
	entry, entryError := NewEntry([]byte(data))
	require.NoError(t, entryError)
	return entry
}

func rawEntries(entries []Entry) []string {
	raw := make([]string, 0, len(entries))
	for _, entry := range entries {
		raw = append(raw, string(entry.Raw()))
	}
	return raw
}

func TestEntryIdentifier(t *testing.T) {
	testCases := []struct {
		name               string
		data               string
		expectedIdentifier string
		expectedPresent    bool
	}{
		{name: "StringIdentifier", data: `{"id":"dQw4w9WgXcQ","title":"x"}`, expectedIdentifier: "dQw4w9WgXcQ", expectedPresent: true},
		{name: "NumericIdentifier", data: `{"id":42}`, expectedIdentifier: "42", expectedPresent: true},
		{name: "NegativeNumericIdentifier", data: `{"id":-7}`, expectedIdentifier: "-7", expectedPresent: true},
		{name: "FractionalSpelling", data: `{"id":1.0}`, expectedIdentifier: "1.0", expectedPresent: true},
		{name: "ExponentSpelling", data: `{"id":25e-1}`, expectedIdentifier: "25e-1", expectedPresent: true},
		{name: "MissingIdentifier", data: `{"title":"no id"}`},
		{name: "NullIdentifier", data: `{"id":null}`},
		{name: "EmptyIdentifier", data: `{"id":""}`},
		{name: "BooleanIdentifier", data: `{"id":true}`},
		{name: "StructuredIdentifier", data: `{"id":{"value":"a"}}`},
		{name: "NonObjectEntry", data: `"just a string"`},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			entry := mustEntry(t, testCase.data)
			identifier, present := entry.Identifier()
			require.Equal(t, testCase.expectedPresent, present)
			require.Equal(t, testCase.expectedIdentifier, identifier)
		})
	}
}

func TestEntryPreservesFieldOrder(t *testing.T) {
	entry := mustEntry(t, "{\n  \"title\": \"z first\",\n  \"id\": \"a\",\n  \"channel\": \"c\"\n}")
	require.Equal(t, `{"title":"z first","id":"a","channel":"c"}`, string(entry.Raw()))
}

func TestDecodePayloadShapes(t *testing.T) {
	threeDays := 3

	testCases := []struct {
		name            string
		data            string
		expectedRecord  bool
		expectedDays    *int
		expectedEntries []string
	}{
		{
			name:            "BareSequence",
			data:            `[{"id":"a"},{"id":"b"}]`,
			expectedEntries: []string{`{"id":"a"}`, `{"id":"b"}`},
		},
		{
			name:            "Record",
			data:            `{"updated_at":"2024-04-30","days":3,"count":1,"videos":[{"id":"a","title":"old"}]}`,
			expectedRecord:  true,
			expectedDays:    &threeDays,
			expectedEntries: []string{`{"id":"a","title":"old"}`},
		},
		{
			name:           "RecordWithoutVideos",
			data:           `{"days":3}`,
			expectedRecord: true,
			expectedDays:   &threeDays,
		},
		{
			name:           "RecordWithNullFields",
			data:           `{"days":null,"videos":null}`,
			expectedRecord: true,
		},
		{
			name:            "SequenceKeepsEntriesWithoutIdentifier",
			data:            `[{"title":"anonymous"},{"id":"a"}]`,
			expectedEntries: []string{`{"title":"anonymous"}`, `{"id":"a"}`},
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			payload, decodeError := DecodePayload([]byte(testCase.data))
			require.NoError(t, decodeError)
			require.Equal(t, testCase.expectedRecord, payload.Record)
			require.Equal(t, testCase.expectedDays, payload.Days)
			if testCase.expectedEntries == nil {
				require.Empty(t, ExtractEntries(payload))
				return
			}
			require.Equal(t, testCase.expectedEntries, rawEntries(ExtractEntries(payload)))
		})
	}
}

func TestDecodePayloadRejectsMalformedContent(t *testing.T) {
	testCases := []struct {
		name          string
		data          string
		expectedError error
	}{
		{name: "Empty", data: ""},
		{name: "Truncated", data: `{"videos":[{"id":"a"}`},
		{name: "Scalar", data: `42`, expectedError: ErrUnsupportedPayloadShape},
		{name: "String", data: `"videos"`, expectedError: ErrUnsupportedPayloadShape},
		{name: "VideosNotArray", data: `{"videos":{"id":"a"}}`},
		{name: "DaysNotInteger", data: `{"days":"three","videos":[]}`},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			_, decodeError := DecodePayload([]byte(testCase.data))
			require.Error(t, decodeError)
			if testCase.expectedError != nil {
				require.ErrorIs(t, decodeError, testCase.expectedError)
			}
		})
	}
}

func TestCarriedDays(t *testing.T) {
	sevenDays := 7

	require.Equal(t, 7, Payload{Record: true, Days: &sevenDays}.CarriedDays())
	require.Equal(t, 1, Payload{Record: true}.CarriedDays())
	require.Equal(t, 1, Payload{Record: false, Days: &sevenDays}.CarriedDays())
	require.Equal(t, 1, EmptyPayload().CarriedDays())
}

func TestPublishedPayloadEncode(t *testing.T) {
	entries := []Entry{
		mustEntry(t, `{"id":"a","title":"日本語のタイトル","url":"https://example.com/watch?v=a&t=1"}`),
		mustEntry(t, `{"id":"b","title":"<b>bold</b>"}`),
	}
	published := NewPublishedPayload(entries, EmptyPayload(), "2024-05-01")

	encoded, encodeError := published.Encode()
	require.NoError(t, encodeError)

	expected := `{
  "updated_at": "2024-05-01",
  "days": 1,
  "count": 2,
  "videos": [
    {
      "id": "a",
      "title": "日本語のタイトル",
      "url": "https://example.com/watch?v=a&t=1"
    },
    {
      "id": "b",
      "title": "<b>bold</b>"
    }
  ]
}`
	require.Equal(t, expected, string(encoded))
}

func TestEntryWritesEscapedTextLiterally(t *testing.T) {
	testCases := []struct {
		name     string
		data     string
		expected string
	}{
		{
			name:     "UnicodeEscapes",
			data:     `{"id":"a","title":"\u3042\u3044 \u003cb\u003e"}`,
			expected: `{"id":"a","title":"あい <b>"}`,
		},
		{
			name:     "EscapedIdentifier",
			data:     `{"id":"\u00e9t\u00e9","n":1}`,
			expected: `{"id":"été","n":1}`,
		},
		{
			name:     "EscapesThatMustRemain",
			data:     `{"id":"a","quote":"say \"hi\"","path":"C:\\videos","lines":"one\ntwo","mixed":"\u00e9\"\u00e9"}`,
			expected: `{"id":"a","quote":"say \"hi\"","path":"C:\\videos","lines":"one\ntwo","mixed":"é\"é"}`,
		},
		{
			name:     "NestedValues",
			data:     `{"id":"a","tags":["\u65e5\u672c"],"meta":{"k\u00fc":"v"}}`,
			expected: `{"id":"a","tags":["日本"],"meta":{"kü":"v"}}`,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			entry := mustEntry(t, testCase.data)
			require.Equal(t, testCase.expected, string(entry.Raw()))
		})
	}

	escapedIdentifier := mustEntry(t, `{"id":"\u00e9t\u00e9"}`)
	identifier, present := escapedIdentifier.Identifier()
	require.True(t, present)
	require.Equal(t, "été", identifier)
}

func TestPublishedPayloadWritesEscapedSourceLiterally(t *testing.T) {
	payload, decodeError := DecodePayload([]byte(`[{"id":"a","title":"\u3042\u3044 <b>"}]`))
	require.NoError(t, decodeError)

	merged := MergeByIdentifier(nil, ExtractEntries(payload))
	encoded, encodeError := NewPublishedPayload(merged, EmptyPayload(), "2024-05-01").Encode()
	require.NoError(t, encodeError)

	require.Contains(t, string(encoded), `"title": "あい <b>"`)
	require.NotContains(t, string(encoded), `\u`)
}

func TestPublishedPayloadEncodesEmptyVideosAsArray(t *testing.T) {
	encoded, encodeError := NewPublishedPayload(nil, EmptyPayload(), "2024-05-01").Encode()
	require.NoError(t, encodeError)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, []any{}, decoded["videos"])
	require.Equal(t, float64(0), decoded["count"])
}

func TestParseErrorUnwraps(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")
	parseError := ParseError{Path: "/data/videos_2024-05-01.json", Cause: cause}
	require.ErrorIs(t, parseError, cause)
	require.Contains(t, parseError.Error(), "/data/videos_2024-05-01.json")
}
