package escape

import (
	"bytes"
	"fmt"
	"strconv"
	"unicode/utf8"
)

// Resolver maps a named entity (without the surrounding '&'/';') to its
// replacement bytes. Ok is false when the name is not recognized.
type Resolver interface {
	Resolve(name []byte) (replacement []byte, ok bool)
}

// PredefinedResolver recognizes exactly lt, gt, amp, apos, quot, the
// five entities XML 1.0 guarantees without a DTD.
type PredefinedResolver struct{}

func (PredefinedResolver) Resolve(name []byte) ([]byte, bool) {
	switch string(name) {
	case "lt":
		return []byte("<"), true
	case "gt":
		return []byte(">"), true
	case "amp":
		return []byte("&"), true
	case "apos":
		return []byte("'"), true
	case "quot":
		return []byte(`"`), true
	default:
		return nil, false
	}
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(name []byte) ([]byte, bool)

func (f ResolverFunc) Resolve(name []byte) ([]byte, bool) { return f(name) }

// Unescape scans text for "&...;" references, expanding numeric
// character references itself (bounded to six hex / seven decimal
// digits, rejecting NUL and non-Char code points per XML's Char
// production) and delegating named entities to resolver. It returns
// text unchanged when there is nothing to unescape.
func Unescape(text []byte, resolver Resolver) ([]byte, error) {
	if bytes.IndexByte(text, '&') < 0 {
		return text, nil
	}
	var buf bytes.Buffer
	buf.Grow(len(text))
	i := 0
	for i < len(text) {
		amp := bytes.IndexByte(text[i:], '&')
		if amp < 0 {
			buf.Write(text[i:])
			break
		}
		buf.Write(text[i : i+amp])
		start := i + amp
		semi := bytes.IndexByte(text[start:], ';')
		if semi < 0 {
			return nil, fmt.Errorf("escape: unterminated reference at byte %d", start)
		}
		name := text[start+1 : start+semi]
		repl, err := resolve(name, resolver)
		if err != nil {
			return nil, err
		}
		buf.Write(repl)
		i = start + semi + 1
	}
	return buf.Bytes(), nil
}

func resolve(name []byte, resolver Resolver) ([]byte, error) {
	if len(name) > 0 && name[0] == '#' {
		return resolveCharRef(name[1:])
	}
	if resolver != nil {
		if repl, ok := resolver.Resolve(name); ok {
			return repl, nil
		}
	}
	if repl, ok := (PredefinedResolver{}).Resolve(name); ok {
		return repl, nil
	}
	return nil, fmt.Errorf("escape: unrecognized entity %q", name)
}

func resolveCharRef(digits []byte) ([]byte, error) {
	var (
		value uint64
		err   error
	)
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		hex := digits[1:]
		if len(hex) == 0 || len(hex) > 6 {
			return nil, fmt.Errorf("escape: invalid hex character reference &#%s;", digits)
		}
		value, err = strconv.ParseUint(string(hex), 16, 32)
	} else {
		if len(digits) == 0 || len(digits) > 7 {
			return nil, fmt.Errorf("escape: invalid decimal character reference &#%s;", digits)
		}
		value, err = strconv.ParseUint(string(digits), 10, 32)
	}
	if err != nil {
		return nil, fmt.Errorf("escape: invalid character reference &#%s;: %w", digits, err)
	}
	r := rune(value)
	if !isValidChar(r) {
		return nil, fmt.Errorf("escape: character reference &#%s; is not a valid XML Char", digits)
	}
	out := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(out, r)
	return out, nil
}

// isValidChar implements XML's Char production: rejects NUL and the
// other code points XML 1.0/1.1 exclude from character data.
func isValidChar(r rune) bool {
	switch {
	case r == 0x9 || r == 0xA || r == 0xD:
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	default:
		return false
	}
}
