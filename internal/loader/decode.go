package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/go-json-experiment/json/jsontext"
)

// decoderOptions relax jsontext defaults to accept what Python's json module
// accepts: repeated object keys and invalid UTF-8 inside strings.
var decoderOptions = []jsontext.Options{
	jsontext.AllowDuplicateNames(true),
	jsontext.AllowInvalidUTF8(true),
}

// Parse decodes data as exactly one JSON value.
// Empty input and trailing data after the first value are syntax errors.
func Parse(data []byte) (Value, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data), decoderOptions...)

	v, err := decodeValue(dec)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, &syntaxError{err: err}
	}

	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("%w at offset %d", errTrailingData, dec.InputOffset())
		}
		return Value{}, &syntaxError{err: err}
	}

	return v, nil
}

// decodeValue reads one complete JSON value from dec.
func decodeValue(dec *jsontext.Decoder) (Value, error) {
	tok, err := dec.ReadToken()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind() {
	case 'n':
		return Null(), nil
	case 't', 'f':
		return Bool(tok.Bool()), nil
	case '"':
		return String(tok.String()), nil
	case '0':
		return Number(tok.String()), nil
	case '[':
		return decodeArray(dec)
	case '{':
		return decodeObject(dec)
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeArray(dec *jsontext.Decoder) (Value, error) {
	elems := make([]Value, 0)
	for dec.PeekKind() != ']' {
		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}
	if _, err := dec.ReadToken(); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}

// decodeObject keeps the first position of a repeated key and the last value
// assigned to it.
func decodeObject(dec *jsontext.Decoder) (Value, error) {
	members := make([]Member, 0)
	index := make(map[string]int)
	for dec.PeekKind() != '}' {
		keyTok, err := dec.ReadToken()
		if err != nil {
			return Value{}, err
		}
		key := keyTok.String()

		v, err := decodeValue(dec)
		if err != nil {
			return Value{}, err
		}

		if i, ok := index[key]; ok {
			members[i].Value = v
			continue
		}
		index[key] = len(members)
		members = append(members, Member{Key: key, Value: v})
	}
	if _, err := dec.ReadToken(); err != nil {
		return Value{}, err
	}
	return Object(members...), nil
}
