package grammar

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rezi"
)

// EncodeJSON renders a Grammar as the reference textual format: every
// variant tag (Rule.Kind, MatchToken.Kind, Parameter.Kind, Command.Kind) is
// preserved as a plain string field, so DecodeJSON(EncodeJSON(g)) always
// reproduces g exactly.
func EncodeJSON(g *Grammar) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// DecodeJSON parses a Grammar previously produced by EncodeJSON.
func DecodeJSON(data []byte) (*Grammar, error) {
	g := &Grammar{}
	if err := json.Unmarshal(data, g); err != nil {
		return nil, err
	}
	return g, nil
}

// SaveTOML renders a Grammar as hand-editable TOML, for grammar authors who
// want to write a grammar directly instead of using the builder functions
// or generating JSON.
func SaveTOML(g *Grammar) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadTOML parses a Grammar from TOML previously produced by SaveTOML (or
// hand-written in the same shape).
func LoadTOML(data []byte) (*Grammar, error) {
	g := &Grammar{}
	if err := toml.Unmarshal(data, g); err != nil {
		return nil, err
	}
	return g, nil
}

// EncodeBinary renders a Grammar as a compact binary blob, for embedding a
// frozen, validated grammar into a host binary without shipping JSON/TOML
// text.
func EncodeBinary(g *Grammar) []byte {
	return rezi.EncBinary(g)
}

// DecodeBinary parses a Grammar from a blob produced by EncodeBinary.
func DecodeBinary(data []byte) (*Grammar, error) {
	g := &Grammar{}
	if _, err := rezi.DecBinary(data, g); err != nil {
		return nil, err
	}
	return g, nil
}
