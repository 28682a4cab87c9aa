package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Answer is the value of one survey question: either a single string or a
// multi-select list. The zero value is an empty scalar.
type Answer struct {
	multi  bool
	scalar string
	values []string
}

// Scalar builds a single-value answer.
func Scalar(s string) Answer { return Answer{scalar: s} }

// MultiSelect builds a multi-select answer. The slice is copied.
func MultiSelect(vs ...string) Answer {
	return Answer{multi: true, values: append([]string(nil), vs...)}
}

// IsMulti reports whether a is a multi-select answer.
func (a Answer) IsMulti() bool { return a.multi }

// Scalar returns the single value and true, or "" and false for multi-select answers.
func (a Answer) Scalar() (string, bool) {
	if a.multi {
		return "", false
	}
	return a.scalar, true
}

// Values returns every selected option: one element for a non-empty scalar,
// the list for multi-select.
func (a Answer) Values() []string {
	if a.multi {
		return append([]string(nil), a.values...)
	}
	if a.scalar == "" {
		return nil
	}
	return []string{a.scalar}
}

// Text renders the answer as display text; lists are joined with ", ".
func (a Answer) Text() string {
	if a.multi {
		return strings.Join(a.values, ", ")
	}
	return a.scalar
}

// Empty reports whether the answer carries no value.
func (a Answer) Empty() bool {
	if a.multi {
		return len(a.values) == 0
	}
	return a.scalar == ""
}

// MarshalJSON writes a string for scalars and an array for multi-select answers.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.multi {
		if a.values == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(a.values)
	}
	return json.Marshal(a.scalar)
}

// UnmarshalJSON accepts a string, number, boolean, null or a flat array of those.
func (a *Answer) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = Answer{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Scalar(s)
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		vs := make([]string, 0, len(raw))
		for _, r := range raw {
			var item Answer
			if err := item.UnmarshalJSON(r); err != nil {
				return err
			}
			if item.multi {
				return fmt.Errorf("answer: nested lists are not supported")
			}
			vs = append(vs, item.scalar)
		}
		*a = MultiSelect(vs...)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*a = Scalar(strconv.FormatBool(v))
	case '{':
		return fmt.Errorf("answer: objects are not supported")
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
		*a = Scalar(n.String())
	}
	return nil
}

// MarshalBSONValue stores the answer as a BSON string or string array.
func (a Answer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if a.multi {
		vs := a.values
		if vs == nil {
			vs = []string{}
		}
		return bson.MarshalValue(vs)
	}
	return bson.MarshalValue(a.scalar)
}

// UnmarshalBSONValue reads strings, string arrays and numeric or boolean values.
func (a *Answer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Null, bsontype.Undefined:
		*a = Answer{}
	case bsontype.String:
		*a = Scalar(rv.StringValue())
	case bsontype.Array:
		var vs []string
		if err := rv.Unmarshal(&vs); err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		*a = MultiSelect(vs...)
	case bsontype.Double:
		*a = Scalar(strconv.FormatFloat(rv.Double(), 'f', -1, 64))
	case bsontype.Int32:
		*a = Scalar(strconv.FormatInt(int64(rv.Int32()), 10))
	case bsontype.Int64:
		*a = Scalar(strconv.FormatInt(rv.Int64(), 10))
	case bsontype.Boolean:
		*a = Scalar(strconv.FormatBool(rv.Boolean()))
	default:
		return fmt.Errorf("answer: unsupported bson type %s", t)
	}
	return nil
}

// Answers maps question keys (q1..q10) to answers.
type Answers map[string]Answer

// Get returns the answer for key, or the zero Answer.
func (as Answers) Get(key string) Answer {
	if as == nil {
		return Answer{}
	}
	return as[key]
}

// Keys returns the question keys in catalogue order, unknown keys last and sorted.
func (as Answers) Keys() []string {
	keys := make([]string, 0, len(as))
	for k := range as {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		oi, oj := questionOrder(keys[i]), questionOrder(keys[j])
		if oi != oj {
			return oi < oj
		}
		return keys[i] < keys[j]
	})
	return keys
}
