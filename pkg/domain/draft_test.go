package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/semtoken/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeDraft_Defaults(t *testing.T) {
	d, err := domain.DecodeDraft([]byte(`{}`))
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultTokenName, d.Name)
	assert.Equal(t, domain.DefaultTokenTicker, d.Ticker)
	assert.Equal(t, domain.DefaultTokenDecimals, d.Decimals)
	assert.Equal(t, domain.DefaultOntologies(), d.SelectedOntologies)
	assert.NotNil(t, d.Properties)
	assert.Empty(t, d.Properties)
	assert.Empty(t, d.Shapes)
	assert.Empty(t, d.Prefixes)
	assert.Empty(t, d.SameAs)
}

func TestDecodeDraft_ExplicitZeroDecimalsKept(t *testing.T) {
	d, err := domain.DecodeDraft([]byte(`{"tokenDecimals": 0}`))
	require.NoError(t, err)
	assert.Equal(t, 0, d.Decimals)
}

func TestDecodeDraft_UnparsableDecimalsFallBackToDefault(t *testing.T) {
	for _, value := range []string{`"2.5"`, `"eight"`, `[8]`, `{"n": 8}`} {
		d, err := domain.DecodeDraft([]byte(`{"tokenName": "Foo", "tokenDecimals": ` + value + `, "properties": [{"key": "ex:k", "value": "v"}]}`))
		require.NoError(t, err, value)
		assert.Equal(t, domain.DefaultTokenDecimals, d.Decimals, value)
		assert.Equal(t, "Foo", d.Name, value)
		assert.Len(t, d.Properties, 1, value)
	}

	d, err := domain.DecodeDraft([]byte(`{"tokenDecimals": " 6 "}`))
	require.NoError(t, err)
	assert.Equal(t, 6, d.Decimals)
}

func TestDecodeDraft_LegacyEditorState(t *testing.T) {
	// Shape of the state blob written by the browser editor.
	blob := `{
		"tokenName": "Foo",
		"tokenTicker": "FOO",
		"tokenDecimals": "8",
		"properties": [{"id": 1, "key": "foaf:maker", "value": "https://x.example", "type": "uri"}],
		"shapes": [{"id": 1700000000000, "name": "PersonShape", "targetClass": "foaf:Person",
			"constraints": [{"id": 1700000000001, "path": "foaf:name", "datatype": "", "minCount": 1, "maxCount": ""}]}],
		"selectedOntologies": ["foaf"],
		"prefixes": [{"id": "foaf", "prefix": "foaf", "uri": "http://xmlns.com/foaf/0.1/"}],
		"sameAsRelations": [{"id": 5, "termA": "ex:a", "termB": "ex:b"}]
	}`

	d, err := domain.DecodeDraft([]byte(blob))
	require.NoError(t, err)

	assert.Equal(t, "Foo", d.Name)
	assert.Equal(t, 8, d.Decimals)
	require.Len(t, d.Properties, 1)
	assert.Equal(t, domain.KindURI, d.Properties[0].Kind)
	assert.Equal(t, "1", d.Properties[0].ID)
	require.Len(t, d.Shapes, 1)
	require.Len(t, d.Shapes[0].Constraints, 1)
	assert.Equal(t, domain.Count("1"), d.Shapes[0].Constraints[0].MinCount)
	assert.False(t, d.Shapes[0].Constraints[0].MaxCount.IsSet())
	assert.Equal(t, []string{"foaf"}, d.SelectedOntologies)
	require.Len(t, d.SameAs, 1)
	assert.Equal(t, "ex:b", d.SameAs[0].TermB)
}

func TestDecodeDraft_Invalid(t *testing.T) {
	_, err := domain.DecodeDraft([]byte(`not json`))
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)

	_, err = domain.DecodeDraft([]byte(`{"properties": "nope"}`))
	assert.ErrorIs(t, err, domain.ErrInvalidDraft)
}

func TestEncodeDraft_RoundTrip(t *testing.T) {
	original := domain.NewDescriptor()
	original, shapeID, err := domain.AddShape(original, "PersonShape")
	require.NoError(t, err)
	original, err = domain.AddConstraint(original, shapeID, domain.Constraint{Path: "foaf:name", MaxCount: "3"})
	require.NoError(t, err)

	blob, err := domain.EncodeDraft(original)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(blob, &fields))
	for _, key := range []string{"tokenName", "tokenTicker", "tokenDecimals", "properties", "shapes", "selectedOntologies", "prefixes", "sameAs"} {
		assert.Contains(t, fields, key)
	}

	decoded, err := domain.DecodeDraft(blob)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestEncodeDraft_NilListsBecomeArrays(t *testing.T) {
	blob, err := domain.EncodeDraft(domain.TokenDescriptor{Name: "X"})
	require.NoError(t, err)
	assert.Contains(t, string(blob), `"properties":[]`)
	assert.Contains(t, string(blob), `"sameAs":[]`)
}

func TestDraftID(t *testing.T) {
	id, err := domain.DraftID("  My Token/v2 ")
	require.NoError(t, err)
	assert.Equal(t, "My%20Token%2Fv2", id)

	_, err = domain.DraftID(" ")
	assert.ErrorIs(t, err, domain.ErrDraftNameRequired)
}

func TestCount_UnmarshalJSON(t *testing.T) {
	var c struct {
		A domain.Count `json:"a"`
		B domain.Count `json:"b"`
		C domain.Count `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 2, "b": "5", "c": null}`), &c))
	assert.Equal(t, domain.Count("2"), c.A)
	assert.Equal(t, domain.Count("5"), c.B)
	assert.False(t, c.C.IsSet())
}
