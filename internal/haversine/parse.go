package haversine

import (
	"fmt"
	"strconv"
)

// The scanner below is deliberately hand-written: parsing the generated
// document is the workload being measured, so it avoids reflection and
// interface boxing. It covers the JSON subset the generator emits (no string
// escapes, no exponents).

// Kind identifies the type held by a Value.
type Kind uint8

const (
	NullValue Kind = iota
	BoolValue
	NumberValue
	StringValue
	ArrayValue
	ObjectValue
)

// Member is a key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is one parsed JSON value.
type Value struct {
	Kind    Kind
	Num     float64
	Str     string
	Flag    bool
	Items   []Value
	Members []Member
}

// Member returns the value for key in an object.
func (v Value) Member(key string) (Value, bool) {
	if v.Kind != ObjectValue {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Float returns the numeric value.
func (v Value) Float() (float64, error) {
	if v.Kind != NumberValue {
		return 0, fmt.Errorf("haversine: value is not a number")
	}
	return v.Num, nil
}

// Parse reads a single JSON value from data.
func Parse(data []byte) (Value, error) {
	s := &scanner{data: data}
	v, err := s.value()
	if err != nil {
		return Value{}, err
	}
	return v, nil
}

type scanner struct {
	data []byte
	pos  int
}

func (s *scanner) errf(format string, args ...any) error {
	return fmt.Errorf("haversine: offset %d: %s", s.pos, fmt.Sprintf(format, args...))
}

// skip advances past whitespace and commas. Treating commas as padding keeps
// the grammar loop-free, matching the shape the generator produces.
func (s *scanner) skip() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) value() (Value, error) {
	s.skip()
	if s.pos >= len(s.data) {
		return Value{}, s.errf("unexpected end of input")
	}

	switch c := s.data[s.pos]; {
	case c == '{':
		return s.object()
	case c == '[':
		return s.array()
	case c == '"':
		str, err := s.string()
		return Value{Kind: StringValue, Str: str}, err
	case c == '-' || (c >= '0' && c <= '9'):
		return s.number()
	case c == 't':
		return s.literal("true", Value{Kind: BoolValue, Flag: true})
	case c == 'f':
		return s.literal("false", Value{Kind: BoolValue})
	case c == 'n':
		return s.literal("null", Value{Kind: NullValue})
	default:
		return Value{}, s.errf("unexpected character %q", c)
	}
}

func (s *scanner) object() (Value, error) {
	s.pos++ // consume '{'
	v := Value{Kind: ObjectValue}

	for {
		s.skip()
		if s.pos >= len(s.data) {
			return Value{}, s.errf("unterminated object")
		}
		if s.data[s.pos] == '}' {
			s.pos++
			return v, nil
		}

		if s.data[s.pos] != '"' {
			return Value{}, s.errf("object key must be a string")
		}
		key, err := s.string()
		if err != nil {
			return Value{}, err
		}

		s.skip()
		if s.pos >= len(s.data) || s.data[s.pos] != ':' {
			return Value{}, s.errf("expected ':' after object key %q", key)
		}
		s.pos++

		val, err := s.value()
		if err != nil {
			return Value{}, err
		}
		v.Members = append(v.Members, Member{Key: key, Value: val})
	}
}

func (s *scanner) array() (Value, error) {
	s.pos++ // consume '['
	v := Value{Kind: ArrayValue}

	for {
		s.skip()
		if s.pos >= len(s.data) {
			return Value{}, s.errf("unterminated array")
		}
		if s.data[s.pos] == ']' {
			s.pos++
			return v, nil
		}

		elem, err := s.value()
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, elem)
	}
}

func (s *scanner) string() (string, error) {
	s.pos++ // consume opening quote
	start := s.pos
	for s.pos < len(s.data) {
		if s.data[s.pos] == '"' {
			str := string(s.data[start:s.pos])
			s.pos++
			return str, nil
		}
		s.pos++
	}
	return "", s.errf("unterminated string")
}

func (s *scanner) number() (Value, error) {
	start := s.pos
	if s.data[s.pos] == '-' {
		s.pos++
	}
	digits := 0
	for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
		s.pos++
		digits++
	}
	if s.pos < len(s.data) && s.data[s.pos] == '.' {
		s.pos++
		for s.pos < len(s.data) && s.data[s.pos] >= '0' && s.data[s.pos] <= '9' {
			s.pos++
			digits++
		}
	}
	if digits == 0 {
		return Value{}, s.errf("malformed number")
	}

	num, err := strconv.ParseFloat(string(s.data[start:s.pos]), 64)
	if err != nil {
		return Value{}, s.errf("malformed number %q", s.data[start:s.pos])
	}
	return Value{Kind: NumberValue, Num: num}, nil
}

func (s *scanner) literal(lit string, v Value) (Value, error) {
	if s.pos+len(lit) > len(s.data) || string(s.data[s.pos:s.pos+len(lit)]) != lit {
		return Value{}, s.errf("expected %q", lit)
	}
	s.pos += len(lit)
	return v, nil
}
