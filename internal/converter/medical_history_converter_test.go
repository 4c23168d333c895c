package converter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMedicalHistory_ArrayOfPairs(t *testing.T) {
	raw := json.RawMessage(`[{"Key":"notes","Value":"penicillin allergy"}]`)

	assert.Equal(t, "penicillin allergy", ParseMedicalHistory(raw))
}

func TestParseMedicalHistory_PairKeyCaseInsensitive(t *testing.T) {
	raw := json.RawMessage(`[{"key":"Notes","value":"asthma"}]`)

	assert.Equal(t, "asthma", ParseMedicalHistory(raw))
}

func TestParseMedicalHistory_PairFallbackToFirstValue(t *testing.T) {
	raw := json.RawMessage(`[{"Key":"allergy","Value":"latex"},{"Key":"notes"}]`)

	assert.Equal(t, "latex", ParseMedicalHistory(raw))
}

func TestParseMedicalHistory_FlatObject(t *testing.T) {
	assert.Equal(t, "diabetic", ParseMedicalHistory(json.RawMessage(`{"notes":"diabetic"}`)))
	assert.Equal(t, "diabetic", ParseMedicalHistory(json.RawMessage(`{"Notes":"diabetic"}`)))
}

func TestParseMedicalHistory_FlatObjectFirstStringProperty(t *testing.T) {
	raw := json.RawMessage(`{"count":3,"summary":"hypertension"}`)

	assert.Equal(t, "hypertension", ParseMedicalHistory(raw))
}

func TestParseMedicalHistory_PlainString(t *testing.T) {
	assert.Equal(t, "no known allergies", ParseMedicalHistory(json.RawMessage(`"no known allergies"`)))
}

func TestParseMedicalHistory_DoublyEncoded(t *testing.T) {
	inner := `[{"Key":"notes","Value":"smoker"}]`
	raw, err := json.Marshal(inner)
	assert.NoError(t, err)

	assert.Equal(t, "smoker", ParseMedicalHistory(raw))
}

func TestParseMedicalHistory_MalformedJSONStringReturnedAsIs(t *testing.T) {
	// Looks like JSON but is not parseable; raw string comes back unchanged.
	raw, err := json.Marshal("[not json")
	assert.NoError(t, err)

	assert.Equal(t, "[not json", ParseMedicalHistory(raw))
}

func TestParseMedicalHistory_Empty(t *testing.T) {
	assert.Equal(t, "", ParseMedicalHistory(nil))
	assert.Equal(t, "", ParseMedicalHistory(json.RawMessage(`null`)))
	assert.Equal(t, "", ParseMedicalHistory(json.RawMessage(`""`)))
	assert.Equal(t, "", ParseMedicalHistory(json.RawMessage(`[]`)))
}

func TestParseMedicalHistory_IdempotentOnDecodedText(t *testing.T) {
	decoded := ParseMedicalHistory(json.RawMessage(`[{"Key":"notes","Value":"penicillin allergy"}]`))

	again := ParseMedicalHistory(json.RawMessage(decoded))
	assert.Equal(t, decoded, again)
}

func TestEncodeMedicalHistory_CanonicalShape(t *testing.T) {
	raw := EncodeMedicalHistory("penicillin allergy")

	var pairs []map[string]string
	assert.NoError(t, json.Unmarshal(raw, &pairs))
	assert.Len(t, pairs, 1)
	assert.Equal(t, "notes", pairs[0]["Key"])
	assert.Equal(t, "penicillin allergy", pairs[0]["Value"])
}

func TestEncodeMedicalHistory_RoundTrip(t *testing.T) {
	assert.Equal(t, "seasonal rhinitis", ParseMedicalHistory(EncodeMedicalHistory("seasonal rhinitis")))
}

func TestEncodeMedicalHistory_EmptyTextOmitsField(t *testing.T) {
	assert.Nil(t, EncodeMedicalHistory(""))
	assert.Nil(t, EncodeMedicalHistory("   "))
}
