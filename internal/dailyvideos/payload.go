package dailyvideos

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

const (
	identifierFieldNameConstant            = "id"
	unsupportedPayloadShapeMessageConstant = "payload must be a JSON array or object"
	invalidVideosFieldTemplateConstant     = "videos field must be an array: %w"
	invalidDaysFieldTemplateConstant       = "days field must be an integer: %w"
	parseErrorTemplateConstant             = "failed to parse payload %s: %v"
	jsonIndentConstant                     = "  "
	jsonNullLiteralConstant                = "null"
	jsonArrayOpeningConstant               = '['
	jsonObjectOpeningConstant              = '{'
	jsonStringOpeningConstant              = '"'
	jsonEscapeCharacterConstant            = '\\'
	numericIdentifierKeyPrefixConstant     = "#"
	defaultDaysConstant                    = 1
)

// ErrUnsupportedPayloadShape indicates a top-level JSON value that is neither an array nor an object.
var ErrUnsupportedPayloadShape = errors.New(unsupportedPayloadShapeMessageConstant)

// ParseError reports a payload file whose content could not be decoded.
type ParseError struct {
	Path  string
	Cause error
}

// Error describes the parse failure.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseErrorTemplateConstant, parseError.Path, parseError.Cause)
}

// Unwrap exposes the decoding failure.
func (parseError ParseError) Unwrap() error {
	return parseError.Cause
}

// Entry is one video record. The raw JSON is carried verbatim so fields the
// tool does not know about survive a merge in their original order.
type Entry struct {
	raw           json.RawMessage
	identifier    string
	identifierKey string
}

// NewEntry decodes a single video record.
func NewEntry(data []byte) (Entry, error) {
	var entry Entry
	if decodeError := json.Unmarshal(data, &entry); decodeError != nil {
		return Entry{}, decodeError
	}
	return entry, nil
}

// Identifier returns the entry id and whether the entry has a usable one.
func (entry Entry) Identifier() (string, bool) {
	return entry.identifier, len(entry.identifierKey) > 0
}

// Raw returns the entry's JSON text.
func (entry Entry) Raw() json.RawMessage {
	return entry.raw
}

// MarshalJSON implements json.Marshaler.
func (entry Entry) MarshalJSON() ([]byte, error) {
	if len(entry.raw) == 0 {
		return []byte(jsonNullLiteralConstant), nil
	}
	return entry.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler. Entries that are not objects,
// or whose id is missing, null, empty, boolean or structured, decode without
// an identifier.
func (entry *Entry) UnmarshalJSON(data []byte) error {
	compacted := &bytes.Buffer{}
	if compactError := json.Compact(compacted, data); compactError != nil {
		return compactError
	}
	literal, unescapeError := unescapeStrings(compacted.Bytes())
	if unescapeError != nil {
		return unescapeError
	}
	*entry = Entry{raw: json.RawMessage(literal)}

	var fields map[string]json.RawMessage
	if json.Unmarshal(data, &fields) != nil {
		return nil
	}
	identifierValue, present := fields[identifierFieldNameConstant]
	if !present {
		return nil
	}
	entry.identifier, entry.identifierKey = resolveIdentifier(identifierValue)
	return nil
}

// unescapeStrings rewrites every string literal of compacted JSON that
// contains an escape sequence so non-ASCII and HTML characters appear
// literally. Everything outside string literals is copied unchanged.
func unescapeStrings(compacted []byte) ([]byte, error) {
	if bytes.IndexByte(compacted, jsonEscapeCharacterConstant) < 0 {
		return compacted, nil
	}

	output := make([]byte, 0, len(compacted))
	for index := 0; index < len(compacted); {
		if compacted[index] != jsonStringOpeningConstant {
			output = append(output, compacted[index])
			index++
			continue
		}

		end := index + 1
		escaped := false
		for ; end < len(compacted); end++ {
			if compacted[end] == jsonEscapeCharacterConstant {
				end++
				escaped = true
				continue
			}
			if compacted[end] == jsonStringOpeningConstant {
				break
			}
		}
		literal := compacted[index : end+1]
		index = end + 1

		if !escaped {
			output = append(output, literal...)
			continue
		}
		var decoded string
		if decodeError := json.Unmarshal(literal, &decoded); decodeError != nil {
			return nil, decodeError
		}
		encoded, encodeError := encodeString(decoded)
		if encodeError != nil {
			return nil, encodeError
		}
		output = append(output, encoded...)
	}
	return output, nil
}

func encodeString(value string) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if encodeError := encoder.Encode(value); encodeError != nil {
		return nil, encodeError
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

// resolveIdentifier returns the display form and the merge key of an id value.
// String keys are quoted and numeric keys carry a prefix, so the string "1"
// and the number 1 stay distinct while 1, 1.0 and 1e0 share a key.
func resolveIdentifier(value json.RawMessage) (string, string) {
	trimmedValue := bytes.TrimSpace(value)
	if len(trimmedValue) == 0 {
		return "", ""
	}

	switch trimmedValue[0] {
	case jsonStringOpeningConstant:
		var identifier string
		if json.Unmarshal(trimmedValue, &identifier) != nil || len(identifier) == 0 {
			return "", ""
		}
		return identifier, strconv.Quote(identifier)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		numericValue, parsed := new(big.Rat).SetString(string(trimmedValue))
		if !parsed {
			return "", ""
		}
		return string(trimmedValue), numericIdentifierKeyPrefixConstant + numericValue.RatString()
	default:
		return "", ""
	}
}

// Payload is the normalized form of a payload file, whether it was written as
// a bare array of entries or as a record with metadata.
type Payload struct {
	Record    bool
	UpdatedAt string
	Days      *int
	Entries   []Entry
}

// EmptyPayload is the payload of a file that does not exist yet.
func EmptyPayload() Payload {
	return Payload{Record: true}
}

// CarriedDays returns the days value to publish: the record's own value, or 1.
func (payload Payload) CarriedDays() int {
	if !payload.Record || payload.Days == nil {
		return defaultDaysConstant
	}
	return *payload.Days
}

type payloadRecord struct {
	UpdatedAt json.RawMessage `json:"updated_at"`
	Days      json.RawMessage `json:"days"`
	Videos    json.RawMessage `json:"videos"`
}

// DecodePayload parses payload file content.
func DecodePayload(data []byte) (Payload, error) {
	trimmedData := bytes.TrimSpace(data)
	if !json.Valid(trimmedData) {
		var syntaxProbe any
		return Payload{}, json.Unmarshal(trimmedData, &syntaxProbe)
	}

	switch trimmedData[0] {
	case jsonArrayOpeningConstant:
		var entries []Entry
		if decodeError := json.Unmarshal(trimmedData, &entries); decodeError != nil {
			return Payload{}, decodeError
		}
		return Payload{Entries: entries}, nil
	case jsonObjectOpeningConstant:
		return decodeRecord(trimmedData)
	default:
		return Payload{}, ErrUnsupportedPayloadShape
	}
}

func decodeRecord(data []byte) (Payload, error) {
	var record payloadRecord
	if decodeError := json.Unmarshal(data, &record); decodeError != nil {
		return Payload{}, decodeError
	}

	payload := Payload{Record: true}

	var updatedAt string
	if json.Unmarshal(record.UpdatedAt, &updatedAt) == nil {
		payload.UpdatedAt = updatedAt
	}

	if isPresent(record.Days) {
		var days int
		if decodeError := json.Unmarshal(record.Days, &days); decodeError != nil {
			return Payload{}, fmt.Errorf(invalidDaysFieldTemplateConstant, decodeError)
		}
		payload.Days = &days
	}

	if isPresent(record.Videos) {
		if decodeError := json.Unmarshal(record.Videos, &payload.Entries); decodeError != nil {
			return Payload{}, fmt.Errorf(invalidVideosFieldTemplateConstant, decodeError)
		}
	}

	return payload, nil
}

func isPresent(value json.RawMessage) bool {
	trimmedValue := bytes.TrimSpace(value)
	return len(trimmedValue) > 0 && !bytes.Equal(trimmedValue, []byte(jsonNullLiteralConstant))
}

// ExtractEntries returns the payload's entries, never nil.
func ExtractEntries(payload Payload) []Entry {
	if payload.Entries == nil {
		return []Entry{}
	}
	return payload.Entries
}

// PublishedPayload is the record written to the destination file.
type PublishedPayload struct {
	UpdatedAt string  `json:"updated_at"`
	Days      int     `json:"days"`
	Count     int     `json:"count"`
	Videos    []Entry `json:"videos"`
}

// NewPublishedPayload builds the destination record for the merged entries,
// carrying days forward from the existing payload.
func NewPublishedPayload(mergedEntries []Entry, existing Payload, updatedAt string) PublishedPayload {
	videos := mergedEntries
	if videos == nil {
		videos = []Entry{}
	}
	return PublishedPayload{
		UpdatedAt: updatedAt,
		Days:      existing.CarriedDays(),
		Count:     len(videos),
		Videos:    videos,
	}
}

// Encode renders the record with two-space indentation. Non-ASCII and HTML
// characters are written literally and no trailing newline is emitted.
func (published PublishedPayload) Encode() ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", jsonIndentConstant)
	if encodeError := encoder.Encode(published); encodeError != nil {
		return nil, encodeError
	}
	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}
