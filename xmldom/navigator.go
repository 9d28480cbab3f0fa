package xmldom

import (
	"strings"

	"github.com/wilkmaciej/xpath"
)

// domNavigator implements wilkmaciej/xpath.NodeNavigator over an
// Element tree, walking this package's Element/Text/Space node split.
type domNavigator struct {
	root *Element
	// currNode can be *Element, *Text, or *Space.
	currNode Node
	// Cached *Element for attribute access; nil when currNode is a
	// text/space leaf.
	currElement *Element
	// Index of the current attribute, -1 when not positioned on one.
	attributeIndex int
}

// NewNavigator returns an xpath.NodeNavigator positioned at root,
// letting root.Evaluate (or any caller holding the xpath package
// directly) query the tree Build produced.
func NewNavigator(root *Element) xpath.NodeNavigator {
	return &domNavigator{root: root, currNode: root, currElement: root, attributeIndex: -1}
}

func (n *domNavigator) NodeType() xpath.NodeType {
	if n.attributeIndex != -1 {
		return xpath.AttributeNode
	}
	switch node := n.currNode.(type) {
	case *Element:
		if node == n.root && node.parent == nil {
			return xpath.RootNode
		}
		return xpath.ElementNode
	default:
		// Text and Space both surface as XPath text nodes.
		return xpath.TextNode
	}
}

func (n *domNavigator) LocalName() string {
	if n.attributeIndex != -1 {
		name := n.currElement.Attributes[n.attributeIndex].Name
		if idx := strings.IndexByte(name, ':'); idx != -1 {
			return name[idx+1:]
		}
		return name
	}
	if n.currElement != nil {
		return n.currElement.LocalName
	}
	return ""
}

func (n *domNavigator) Prefix() string {
	if n.attributeIndex != -1 {
		name := n.currElement.Attributes[n.attributeIndex].Name
		if idx := strings.IndexByte(name, ':'); idx != -1 {
			return name[:idx]
		}
		return ""
	}
	if n.currElement != nil {
		return n.currElement.Prefix
	}
	return ""
}

func (n *domNavigator) NamespaceURL() string {
	if n.attributeIndex != -1 {
		attrName := n.currElement.Attributes[n.attributeIndex].Name
		if idx := strings.IndexByte(attrName, ':'); idx != -1 {
			if n.currElement.namespaces != nil {
				return n.currElement.namespaces[attrName[:idx]]
			}
		}
		return ""
	}
	if n.currElement != nil {
		return n.currElement.NamespaceURI
	}
	return ""
}

func (n *domNavigator) Value() string {
	if n.attributeIndex != -1 {
		return n.currElement.Attributes[n.attributeIndex].Value
	}
	return n.currNode.InnerText()
}

func (n *domNavigator) Copy() xpath.NodeNavigator {
	cp := *n
	return &cp
}

func (n *domNavigator) MoveToRoot() {
	n.currNode = n.root
	n.currElement = n.root
	n.attributeIndex = -1
}

func (n *domNavigator) MoveToParent() bool {
	if n.attributeIndex != -1 {
		n.attributeIndex = -1
		return true
	}
	parent := n.currNode.Parent()
	if parent == nil {
		return false
	}
	n.currNode = parent
	n.currElement = parent
	n.attributeIndex = -1
	return true
}

func (n *domNavigator) MoveToNextAttribute() bool {
	if n.currElement == nil {
		return false
	}
	if n.attributeIndex >= len(n.currElement.Attributes)-1 {
		return false
	}
	n.attributeIndex++
	return true
}

func (n *domNavigator) MoveToChild() bool {
	if n.attributeIndex != -1 {
		return false
	}
	if n.currElement == nil || len(n.currElement.Children) == 0 {
		return false
	}
	child := n.currElement.Children[0]
	n.setCurrent(child)
	return true
}

func (n *domNavigator) MoveToFirst() bool {
	if n.attributeIndex != -1 {
		return false
	}
	parent := n.currNode.Parent()
	if parent == nil {
		return false
	}
	if n.currNode.siblingIndex() == 0 {
		return false
	}
	if len(parent.Children) == 0 {
		return false
	}
	n.setCurrent(parent.Children[0])
	return true
}

func (n *domNavigator) MoveToNext() bool {
	if n.attributeIndex != -1 {
		return false
	}
	parent := n.currNode.Parent()
	if parent == nil {
		return false
	}
	idx := n.currNode.siblingIndex()
	if idx+1 >= len(parent.Children) {
		return false
	}
	n.setCurrent(parent.Children[idx+1])
	return true
}

func (n *domNavigator) MoveToPrevious() bool {
	if n.attributeIndex != -1 {
		return false
	}
	parent := n.currNode.Parent()
	if parent == nil {
		return false
	}
	idx := n.currNode.siblingIndex()
	if idx <= 0 {
		return false
	}
	n.setCurrent(parent.Children[idx-1])
	return true
}

func (n *domNavigator) MoveTo(other xpath.NodeNavigator) bool {
	o, ok := other.(*domNavigator)
	if !ok || o.root != n.root {
		return false
	}
	n.currNode = o.currNode
	n.currElement = o.currElement
	n.attributeIndex = o.attributeIndex
	return true
}

func (n *domNavigator) String() string { return n.Value() }

func (n *domNavigator) setCurrent(node Node) {
	n.currNode = node
	if el, ok := node.(*Element); ok {
		n.currElement = el
	} else {
		n.currElement = nil
	}
}
