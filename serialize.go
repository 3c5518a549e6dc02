package ruda

import (
	"bytes"
	"encoding/json"

	"github.com/BurntSushi/toml"
	"github.com/dekarrin/rezi"
)

// SaveJSON renders the Parser (lexer alphabet + grammar) as a self-
// describing JSON document that round-trips exactly through LoadJSON.
func (p *Parser) SaveJSON() ([]byte, error) {
	return json.MarshalIndent(p.toDocument(), "", "  ")
}

// LoadJSON parses a Parser previously produced by SaveJSON.
func LoadJSON(data []byte) (*Parser, error) {
	d := &document{}
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return fromDocument(d), nil
}

// SaveTOML renders the Parser as hand-editable TOML.
func (p *Parser) SaveTOML() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p.toDocument()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// LoadTOML parses a Parser from TOML previously produced by SaveTOML.
func LoadTOML(data []byte) (*Parser, error) {
	d := &document{}
	if err := toml.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return fromDocument(d), nil
}

// SaveBinary renders the Parser as a compact binary blob via rezi, for
// embedding a frozen, validated grammar into a host binary.
func (p *Parser) SaveBinary() []byte {
	return rezi.EncBinary(p.toDocument())
}

// LoadBinary parses a Parser from a blob produced by SaveBinary.
func LoadBinary(data []byte) (*Parser, error) {
	d := &document{}
	if _, err := rezi.DecBinary(data, d); err != nil {
		return nil, err
	}
	return fromDocument(d), nil
}
