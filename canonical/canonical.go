// Package canonical provides the sort-keyed, whitespace-free byte form of
// structured values used to hash models, blocks, and other consensus
// artifacts identically across platforms.
package canonical

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Marshal renders v as canonical JSON: object keys sorted ascending, no
// insignificant whitespace, integers (including *big.Int) as bare
// literals, and []byte fields as lowercase hex strings. A struct field
// whose canonical (or, failing that, json) tag carries omitempty is left
// out when it holds its zero value. Marshal never fails: unsupported types render
// as their Go %v form inside a string, so the function stays total the
// way the deterministic layers of the consensus core require.
func Marshal(v any) []byte {
	var sb strings.Builder
	writeValue(&sb, reflect.ValueOf(v))
	return []byte(sb.String())
}

// Hash returns Blake3(Marshal(v)).
func Hash(v any) [32]byte {
	return blake3.Sum256(Marshal(v))
}

func writeValue(sb *strings.Builder, v reflect.Value) {
	if !v.IsValid() {
		sb.WriteString("null")
		return
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			sb.WriteString("null")
			return
		}
		if bi, ok := v.Interface().(*big.Int); ok {
			sb.WriteString(bi.String())
			return
		}
		writeValue(sb, v.Elem())
	case reflect.String:
		writeString(sb, v.String())
	case reflect.Bool:
		if v.Bool() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		sb.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		sb.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Slice, reflect.Array:
		writeSliceOrArray(sb, v)
	case reflect.Map:
		writeMap(sb, v)
	case reflect.Struct:
		writeStruct(sb, v)
	default:
		writeString(sb, fmt.Sprintf("%v", v.Interface()))
	}
}

func writeSliceOrArray(sb *strings.Builder, v reflect.Value) {
	elemKind := v.Type().Elem().Kind()
	if elemKind == reflect.Uint8 {
		buf := make([]byte, v.Len())
		reflect.Copy(reflect.ValueOf(buf), v)
		writeString(sb, hex.EncodeToString(buf))
		return
	}
	sb.WriteByte('[')
	for i := 0; i < v.Len(); i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeValue(sb, v.Index(i))
	}
	sb.WriteByte(']')
}

func writeMap(sb *strings.Builder, v reflect.Value) {
	keys := v.MapKeys()
	type kv struct {
		key string
		val reflect.Value
	}
	pairs := make([]kv, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, kv{key: fmt.Sprintf("%v", k.Interface()), val: v.MapIndex(k)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	sb.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeString(sb, p.key)
		sb.WriteByte(':')
		writeValue(sb, p.val)
	}
	sb.WriteByte('}')
}

func writeStruct(sb *strings.Builder, v reflect.Value) {
	t := v.Type()
	type kv struct {
		key string
		val reflect.Value
	}
	pairs := make([]kv, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue // unexported
		}
		tag := field.Tag.Get("canonical")
		if tag == "" {
			tag = field.Tag.Get("json")
		}
		name, opts, _ := strings.Cut(tag, ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = field.Name
		}
		if strings.Contains(","+opts+",", ",omitempty,") && v.Field(i).IsZero() {
			continue
		}
		pairs = append(pairs, kv{key: name, val: v.Field(i)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].key < pairs[j].key })

	sb.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			sb.WriteByte(',')
		}
		writeString(sb, p.key)
		sb.WriteByte(':')
		writeValue(sb, p.val)
	}
	sb.WriteByte('}')
}

func writeString(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
}
