package xmldom

import "github.com/wilkmaciej/xpath"

// Evaluate runs an XPath expression rooted at e. Node-set results come
// back as []any of *Element, *Text, *Space, or *Attribute;
// string/numeric/boolean results pass through as their native Go
// type.
func (e *Element) Evaluate(expr *xpath.Expr) any {
	nav := &domNavigator{root: e, currNode: e, currElement: e, attributeIndex: -1}
	result := expr.Evaluate(nav)

	iter, ok := result.(*xpath.NodeIterator)
	if !ok {
		return result
	}
	nodes := make([]any, 0, 1)
	for iter.MoveNext() {
		cur, ok := iter.Current().(*domNavigator)
		if !ok {
			continue
		}
		if cur.attributeIndex != -1 {
			nodes = append(nodes, &cur.currElement.Attributes[cur.attributeIndex])
		} else {
			nodes = append(nodes, cur.currNode)
		}
	}
	return nodes
}
