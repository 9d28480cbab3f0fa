package xmlent

import "bytes"

// EntityTable is the default DocTypeResolver: it parses internal-subset
// `<!ENTITY name "value">` declarations out of a DocType event's raw
// bytes and falls back to the five predefined entities.
type EntityTable struct {
	entities map[string][]byte
}

// NewEntityTable returns an EntityTable with no captured declarations
// yet; Resolve still answers the five predefined entities.
func NewEntityTable() *EntityTable {
	return &EntityTable{entities: map[string][]byte{}}
}

// Capture scans doctype for `<!ENTITY name "value">` (or '...')
// declarations in the internal subset and records them. Parameter
// entities ("<!ENTITY % name ...>") are recognized and skipped: they
// may only appear inside the DOCTYPE itself, never in document
// content, so this reader has no use for their replacement text.
func (t *EntityTable) Capture(doctype []byte) error {
	subset := internalSubset(doctype)
	if subset == nil {
		return nil
	}
	rest := subset
	for {
		i := bytes.Index(rest, []byte("<!ENTITY"))
		if i < 0 {
			return nil
		}
		rest = rest[i+len("<!ENTITY"):]
		name, value, tail, ok := parseEntityDecl(rest)
		rest = tail
		if !ok {
			continue
		}
		t.entities[name] = value
	}
}

// internalSubset returns the bytes between the DOCTYPE's '[' and ']',
// or nil if there is no internal subset.
func internalSubset(doctype []byte) []byte {
	open := bytes.IndexByte(doctype, '[')
	if open < 0 {
		return nil
	}
	closeAt := bytes.LastIndexByte(doctype, ']')
	if closeAt < 0 || closeAt <= open {
		return nil
	}
	return doctype[open+1 : closeAt]
}

// parseEntityDecl parses the remainder of an `<!ENTITY ...>` declaration
// starting just after the "<!ENTITY" keyword, returning the entity's
// name and literal value bytes, the unconsumed remainder, and whether
// a well-formed declaration was found. Parameter entities (a leading
// '%') are recognized and rejected (ok=false) since they never need
// resolving against document content.
func parseEntityDecl(rest []byte) (name string, value []byte, tail []byte, ok bool) {
	end := bytes.IndexByte(rest, '>')
	if end < 0 {
		return "", nil, nil, false
	}
	decl := rest[:end]
	tail = rest[end+1:]

	decl = bytes.TrimSpace(decl)
	if len(decl) == 0 {
		return "", nil, tail, false
	}
	if decl[0] == '%' {
		return "", nil, tail, false // parameter entity, not resolved here
	}

	nameEnd := bytes.IndexFunc(decl, isEntitySpace)
	if nameEnd < 0 {
		return "", nil, tail, false
	}
	name = string(decl[:nameEnd])
	rest2 := bytes.TrimLeftFunc(decl[nameEnd:], isEntitySpace)
	if len(rest2) == 0 {
		return "", nil, tail, false
	}
	quote := rest2[0]
	if quote != '"' && quote != '\'' {
		return "", nil, tail, false // SYSTEM/PUBLIC external entity, unsupported
	}
	rest2 = rest2[1:]
	closeQuote := bytes.IndexByte(rest2, quote)
	if closeQuote < 0 {
		return "", nil, tail, false
	}
	value = append([]byte(nil), rest2[:closeQuote]...)
	return name, value, tail, true
}

func isEntitySpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}

// Resolve answers a captured internal entity, or one of the five
// predefined entities if nothing was captured under that name.
func (t *EntityTable) Resolve(name string) (Replacement, bool) {
	if v, ok := t.entities[name]; ok {
		return Replacement{Internal: v}, true
	}
	if v, ok := predefinedReplacement(name); ok {
		return Replacement{Internal: v}, true
	}
	return Replacement{}, false
}

// predefinedReplacement mirrors the original's PredefinedEntityResolver
// table: lt and amp deliberately resolve to character references
// rather than literal '<'/'&' so the outer reader re-classifies them
// as markup-safe text rather than accidentally reopening a tag.
func predefinedReplacement(name string) ([]byte, bool) {
	switch name {
	case "lt":
		return []byte("&#60;"), true
	case "gt":
		return []byte(">"), true
	case "amp":
		return []byte("&#38;"), true
	case "apos":
		return []byte("'"), true
	case "quot":
		return []byte(`"`), true
	default:
		return nil, false
	}
}
