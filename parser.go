package xmlstreamer

import (
	"context"
	"io"
	"sync"

	"github.com/wilkmaciej/xml-streamer/xmlcore"
	"github.com/wilkmaciej/xml-streamer/xmlent"
	"github.com/wilkmaciej/xml-streamer/xmlns"
	"github.com/wilkmaciej/xml-streamer/xmlsrc"
	"github.com/wilkmaciej/xpath"
)

// Parser provides streaming XML parsing with XPath support, running on
// the xmlsrc/xmlcore/xmlns/xmlent engine underneath.
type Parser struct {
	ctx         context.Context
	reader      io.Reader
	streamNames map[string]bool // Optional: specific element names to stream
	bufferSize  int
	once        sync.Once
	ch          chan *XMLElement
}

// NewParser creates a new XML parser
// streamNames: specific element names to stream (pass nil or empty slice to stream nothing)
// bufferSize: channel buffer size for streaming (pass 0 to use default of 8)
func NewParser(ctx context.Context, reader io.Reader, streamNames []string, bufferSize int) *Parser {
	if bufferSize <= 0 {
		bufferSize = 8
	}

	p := &Parser{
		ctx:        ctx,
		reader:     reader,
		bufferSize: bufferSize,
	}

	if len(streamNames) > 0 {
		p.streamNames = make(map[string]bool)
		for _, name := range streamNames {
			p.streamNames[name] = true
		}
	}

	return p
}

// Stream returns a channel of XMLElements as they are parsed.
// It is safe to call multiple times — subsequent calls return the same channel.
func (p *Parser) Stream() <-chan *XMLElement {
	p.once.Do(func() {
		p.ch = make(chan *XMLElement, p.bufferSize)
		go func() {
			defer close(p.ch)
			p.parse(p.ch)
		}()
	})
	return p.ch
}

type parseState struct {
	stack []*XMLElement
	depth int
}

// newReader builds the engine stack Parser.parse pulls events from:
// an entity-aware reader wrapping a namespace resolver wrapping the
// event parser proper.
func (p *Parser) newReader() *xmlent.Reader {
	core := xmlcore.NewReader(xmlsrc.NewBufferedSource(p.reader, nil), xmlcore.NewConfig())
	return xmlent.NewReader(xmlns.NewReader(core))
}

func (p *Parser) parse(ch chan<- *XMLElement) {
	state := &parseState{
		stack: make([]*XMLElement, 0, 32),
	}

	r := p.newReader()

	for {
		if p.ctx.Err() != nil {
			return
		}
		ev, err := r.Read()
		if err != nil || ev.Kind == xmlcore.EventEOF {
			return
		}

		switch ev.Kind {
		case xmlcore.EventStart:
			p.handleStartElement(state, ch, r, ev.Start(), false)

		case xmlcore.EventEmpty:
			p.handleStartElement(state, ch, r, ev.Start(), true)

		case xmlcore.EventEnd:
			p.handleEndElement(state, ch)

		case xmlcore.EventText, xmlcore.EventCData:
			if len(state.stack) > 0 && len(ev.Content) > 0 {
				p.appendContent(state, ev.Content, xpath.TextNode)
			}

		case xmlcore.EventComment:
			if len(state.stack) > 0 {
				p.appendContent(state, ev.Content, xpath.CommentNode)
			}
		}
	}
}

func (p *Parser) appendContent(state *parseState, content []byte, nodeType xpath.NodeType) {
	parent := state.stack[len(state.stack)-1]
	node := getContentNodeFromPool()
	node.start = len(parent.rawContent)
	parent.rawContent = append(parent.rawContent, content...)
	node.end = len(parent.rawContent)
	node.nodeType = nodeType
	node.parent = parent
	node.siblingIndex = len(parent.children)
	parent.children = append(parent.children, node)
}

func (p *Parser) handleStartElement(state *parseState, ch chan<- *XMLElement, r *xmlent.Reader, start xmlcore.Start, selfClosing bool) {
	name := start.Name()
	nameStr := string(name.Full())
	localName := string(name.Local())
	prefix := string(name.Prefix())

	namespaceURI := ""
	if res := r.ResolveElement(name); res.Kind == xmlns.Bound {
		namespaceURI = string(res.URI)
	}

	elem := getElementFromPool()
	elem.Name = nameStr
	elem.localName = localName
	elem.prefix = prefix
	elem.namespaceURI = namespaceURI
	elem.BytePosition = r.Position()
	if bindings := r.CurrentBindings(); len(bindings) > 0 {
		ns := make(map[string]string, len(bindings))
		for _, b := range bindings {
			ns[string(b.Prefix)] = string(b.URI)
		}
		elem.namespaces = ns
	}

	it := start.Attributes()
	for {
		a, ok, err := it.Next()
		if err != nil || !ok {
			break
		}
		elem.Attributes = append(elem.Attributes, XMLAttribute{Name: string(a.Name.Full()), Value: string(a.Value)})
	}

	if len(state.stack) > 0 {
		parent := state.stack[len(state.stack)-1]
		elem.parent = parent
		elem.siblingIndex = len(parent.children)
		parent.children = append(parent.children, elem)
	}

	if selfClosing {
		p.checkAndStreamElement(ch, elem)
	} else {
		state.stack = append(state.stack, elem)
		state.depth++
	}
}

func (p *Parser) handleEndElement(state *parseState, ch chan<- *XMLElement) {
	if len(state.stack) == 0 {
		return
	}

	elem := state.stack[len(state.stack)-1]
	state.stack = state.stack[:len(state.stack)-1]

	p.checkAndStreamElement(ch, elem)

	state.depth--
}

func (p *Parser) checkAndStreamElement(ch chan<- *XMLElement, elem *XMLElement) {
	shouldStream := false

	if len(p.streamNames) > 0 {
		if p.streamNames[elem.Name] {
			shouldStream = true
		}
	}

	if shouldStream {
		// Detach from parent for streaming; children keep their parent
		// pointers, set correctly during parsing.
		elem.parent = nil
		ch <- elem
	}
	// Non-streamed elements are not automatically returned to the pool.
	// They remain in memory as children of their parent and are
	// returned when the parent is released via Release().
}
