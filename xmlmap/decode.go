package xmlmap

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/wilkmaciej/xml-streamer/xmldom"
)

// Options configures a decode pass.
type Options struct {
	// Registry resolves interface-typed fields to a concrete variant
	// by the matched start tag's name.
	Registry *Registry
}

// DOM decodes el into v, which must be a non-nil pointer to a struct.
// Both Stream and DOM funnel through this walker (see decodeStruct);
// Stream builds the full tree first and delegates here, so the two
// entry points are guaranteed to produce identical results (there is
// exactly one decoder, not two kept in sync by hand).
func DOM(el *xmldom.Element, v any, opts *Options) error {
	if opts == nil {
		opts = &Options{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return deErr(el.BytePosition, "", fmt.Errorf("xmlmap: Decode target must be a non-nil pointer, got %T", v))
	}
	return decodeValue(rv.Elem(), el, opts, el.LocalName)
}

// decodeValue dispatches on rv's kind: structs walk their tagged
// fields against el's attributes/children, everything else is parsed
// from el's own text content (the element matched a leaf field).
func decodeValue(rv reflect.Value, el *xmldom.Element, opts *Options, path string) error {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return decodeValue(rv.Elem(), el, opts, path)
	}
	if rv.Kind() == reflect.Struct && !isTextUnmarshalTarget(rv.Type()) {
		return decodeStruct(rv, el, opts, path)
	}
	return setPrimitive(rv, el.InnerText(), path, el.BytePosition)
}

func decodeStruct(rv reflect.Value, el *xmldom.Element, opts *Options, path string) error {
	t := rv.Type()

	// Index children by local name once, preserving order, so
	// sequence fields can collect every match in document order.
	childrenByName := map[string][]*xmldom.Element{}
	var directText strings.Builder
	for _, c := range el.Children {
		switch n := c.(type) {
		case *xmldom.Element:
			childrenByName[n.LocalName] = append(childrenByName[n.LocalName], n)
		case *xmldom.Text:
			directText.WriteString(n.Value)
		case *xmldom.Space:
			directText.WriteString(n.Value)
		}
	}
	consumed := map[string]bool{}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}
		ft := parseFieldTag(field.Tag.Get("xml"))
		if ft.skip {
			continue
		}
		fv := rv.Field(i)
		fieldPath := path + "." + field.Name

		switch {
		case ft.attr:
			name := field.Name
			if len(ft.names) > 0 {
				name = ft.names[0]
			}
			if val, ok := lookupAttr(el, name); ok {
				if err := setPrimitive(fv, val, fieldPath, el.BytePosition); err != nil {
					return err
				}
			}

		case ft.chardata:
			if err := setPrimitive(fv, directText.String(), fieldPath, el.BytePosition); err != nil {
				return err
			}

		case ft.any:
			if err := decodeAny(fv, el, childrenByName, consumed, opts, fieldPath); err != nil {
				return err
			}

		default:
			if err := decodeElementField(fv, field, ft, childrenByName, consumed, opts, fieldPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func decodeElementField(fv reflect.Value, field reflect.StructField, ft fieldTag, childrenByName map[string][]*xmldom.Element, consumed map[string]bool, opts *Options, path string) error {
	name, matches := findMatches(childrenByName, ft, field.Name)
	if name != "" {
		consumed[name] = true
	}

	switch fv.Kind() {
	case reflect.Slice:
		elemType := fv.Type().Elem()
		if len(matches) == 0 {
			return nil
		}
		if len(matches) == 1 && elemType.Kind() != reflect.Struct && elemType.Kind() != reflect.Pointer {
			// xs:list: one element whose text is a whitespace-separated
			// list, decoded onto a slice of primitives.
			text := strings.TrimSpace(matches[0].InnerText())
			if text == "" {
				return nil
			}
			parts := strings.Fields(text)
			out := reflect.MakeSlice(fv.Type(), len(parts), len(parts))
			for i, p := range parts {
				if err := setPrimitive(out.Index(i), p, fmt.Sprintf("%s[%d]", path, i), matches[0].BytePosition); err != nil {
					return err
				}
			}
			fv.Set(out)
			return nil
		}
		out := reflect.MakeSlice(fv.Type(), len(matches), len(matches))
		for i, m := range matches {
			elem := out.Index(i)
			if elemType.Kind() == reflect.Pointer {
				elem.Set(reflect.New(elemType.Elem()))
				if err := decodeValue(elem.Elem(), m, opts, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			} else {
				if err := decodeValue(elem, m, opts, fmt.Sprintf("%s[%d]", path, i)); err != nil {
					return err
				}
			}
		}
		fv.Set(out)
		return nil

	case reflect.Interface:
		if len(matches) == 0 {
			return nil
		}
		return decodeVariant(fv, matches[0], opts, path)

	default:
		if len(matches) == 0 {
			return nil
		}
		return decodeValue(fv, matches[0], opts, path)
	}
}

// findMatches returns a child-name key that satisfied ft along with
// every child under it, in document order. Names are compared
// case-insensitively against ft's aliases, so several keys can match;
// which of them is returned then follows map iteration order and is
// not defined.
func findMatches(childrenByName map[string][]*xmldom.Element, ft fieldTag, fallback string) (string, []*xmldom.Element) {
	for name, kids := range childrenByName {
		if ft.matches(name, fallback) {
			return name, kids
		}
	}
	return "", nil
}

// decodeAny fills a `,any` ($value) field with whatever children were
// not claimed by a more specific field, matching the sentinel's role
// as a catch-all.
func decodeAny(fv reflect.Value, el *xmldom.Element, childrenByName map[string][]*xmldom.Element, consumed map[string]bool, opts *Options, path string) error {
	var leftover []*xmldom.Element
	for name, kids := range childrenByName {
		if consumed[name] {
			continue
		}
		leftover = append(leftover, kids...)
	}
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(el.InnerText())
		return nil
	case reflect.Slice:
		if fv.Type().Elem().Kind() != reflect.Interface {
			return nil
		}
		out := reflect.MakeSlice(fv.Type(), 0, len(leftover))
		for _, c := range leftover {
			out = reflect.Append(out, reflect.ValueOf(any(c)))
		}
		fv.Set(out)
		return nil
	default:
		if len(leftover) > 0 {
			fv.Set(reflect.ValueOf(any(leftover[0])))
		}
		return nil
	}
}

// decodeVariant resolves an interface-typed field via opts.Registry,
// keyed by the matched element's local name.
func decodeVariant(fv reflect.Value, el *xmldom.Element, opts *Options, path string) error {
	ctor, ok := opts.Registry.lookup(fv.Type(), el.LocalName)
	if !ok {
		return deErr(el.BytePosition, path, fmt.Errorf("xmlmap: no registered variant for <%s> on %s", el.LocalName, fv.Type()))
	}
	instance := ctor()
	iv := reflect.ValueOf(instance)
	target := iv
	if iv.Kind() == reflect.Pointer {
		target = iv.Elem()
	}
	if err := decodeValue(target, el, opts, path); err != nil {
		return err
	}
	fv.Set(iv)
	return nil
}

func lookupAttr(el *xmldom.Element, name string) (string, bool) {
	for _, a := range el.Attributes {
		local := a.Name
		if idx := strings.IndexByte(local, ':'); idx != -1 {
			local = local[idx+1:]
		}
		if strings.EqualFold(local, name) {
			return a.Value, true
		}
	}
	return "", false
}

// isTextUnmarshalTarget reports whether t is a struct type that
// should nonetheless be treated as a text leaf (none currently
// special-cased; kept as the extension point a newtype struct
// wrapping a raw Node would hook into).
func isTextUnmarshalTarget(t reflect.Type) bool { return false }

func setPrimitive(fv reflect.Value, text string, path string, pos int64) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(text)
		return nil
	case reflect.Bool:
		b, err := parseBool(text)
		if err != nil {
			return deErr(pos, path, err)
		}
		fv.SetBool(b)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return deErr(pos, path, fmt.Errorf("xmlmap: invalid integer %q: %w", text, err))
		}
		fv.SetInt(n)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return deErr(pos, path, fmt.Errorf("xmlmap: invalid unsigned integer %q: %w", text, err))
		}
		fv.SetUint(n)
		return nil
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return deErr(pos, path, fmt.Errorf("xmlmap: invalid float %q: %w", text, err))
		}
		fv.SetFloat(f)
		return nil
	case reflect.Interface:
		if fv.NumMethod() == 0 {
			fv.Set(reflect.ValueOf(text))
			return nil
		}
		return deErr(pos, path, fmt.Errorf("xmlmap: cannot decode text into interface type %s", fv.Type()))
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			fv.SetBytes([]byte(text))
			return nil
		}
		return deErr(pos, path, fmt.Errorf("xmlmap: cannot decode text into slice type %s", fv.Type()))
	default:
		return deErr(pos, path, fmt.Errorf("xmlmap: unsupported field kind %s", fv.Kind()))
	}
}

// parseBool follows the XML Schema xs:boolean lexical space
// ("true"/"false"/"1"/"0") rather than strconv.ParseBool's broader
// set, since that's what XML documents actually contain.
func parseBool(text string) (bool, error) {
	switch strings.TrimSpace(text) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("xmlmap: invalid boolean %q", text)
	}
}
