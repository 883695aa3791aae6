package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of v. It covers the subset our payloads
// need (maps, vectors, strings, numbers, booleans, nil). Structs are routed
// through JSON first so the existing json tags decide the key names, which
// then become EDN keywords (:id, :status, ...).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(b, &x); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty}
	enc.value(&buf, x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
}

func (e ednEncoder) pad(buf *bytes.Buffer, level int) {
	buf.WriteString(strings.Repeat("  ", level))
}

func (e ednEncoder) value(buf *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case float64:
		// interface{} JSON numbers arrive as float64; keep whole
		// numbers integral.
		if float64(int64(t)) == t {
			buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.vector(buf, t, level)
	case map[string]any:
		e.mapping(buf, t, level)
	default:
		buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func (e ednEncoder) vector(buf *bytes.Buffer, xs []any, level int) {
	if len(xs) == 0 {
		buf.WriteString("[]")
		return
	}
	buf.WriteByte('[')
	for i, it := range xs {
		if e.pretty {
			buf.WriteByte('\n')
			e.pad(buf, level+1)
		} else if i > 0 {
			buf.WriteByte(' ')
		}
		e.value(buf, it, level+1)
	}
	if e.pretty {
		buf.WriteByte('\n')
		e.pad(buf, level)
	}
	buf.WriteByte(']')
}

func (e ednEncoder) mapping(buf *bytes.Buffer, m map[string]any, level int) {
	if len(m) == 0 {
		buf.WriteString("{}")
		return
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte('{')
	for i, k := range keys {
		if e.pretty {
			buf.WriteByte('\n')
			e.pad(buf, level+1)
		} else if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(keyword(k))
		buf.WriteByte(' ')
		e.value(buf, m[k], level+1)
	}
	if e.pretty {
		buf.WriteByte('\n')
		e.pad(buf, level)
	}
	buf.WriteByte('}')
}

// keyword turns a JSON field name into an EDN keyword. Names that would not
// survive as a bare keyword stay quoted strings.
func keyword(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '*' || r == '+' || r == '!' || r == '?':
		default:
			return strconv.Quote(k)
		}
	}
	return ":" + k
}
