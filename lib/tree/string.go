package tree

import (
	"fmt"
	"strings"
)

func describeElement(e any) string {
	return fmt.Sprintf("%v", e)
}

/*
String renders the tree one node per line, e.g.

	4
	├─›2
	│  ├─›1
	│  └─»3
	└─»6

A single child is drawn with └─› when it is the left one.
*/
func (t *bsTree[E]) String() string {
	if t.root == nilID {
		return ""
	}
	sb := &strings.Builder{}
	open := make([]bool, t.Height()+1)
	t.writeNode(sb, t.root, 0, open)
	return sb.String()
}

func (t *bsTree[E]) writeNode(sb *strings.Builder, x nodeID, depth int, open []bool) {
	sb.WriteString(t.policy.describe(t, x))
	sb.WriteByte('\n')
	open[depth] = true
	l, r := t.left(x), t.right(x)
	switch {
	case l != nilID && r != nilID:
		writeIndent(sb, depth, open)
		sb.WriteString("├─›")
		t.writeNode(sb, l, depth+1, open)
		writeIndent(sb, depth, open)
		sb.WriteString("└─»")
		open[depth] = false
		t.writeNode(sb, r, depth+1, open)
	case l != nilID:
		writeIndent(sb, depth, open)
		sb.WriteString("└─›")
		open[depth] = false
		t.writeNode(sb, l, depth+1, open)
	case r != nilID:
		writeIndent(sb, depth, open)
		sb.WriteString("└─»")
		open[depth] = false
		t.writeNode(sb, r, depth+1, open)
	default:
	}
}

func writeIndent(sb *strings.Builder, depth int, open []bool) {
	for i := 0; i < depth; i++ {
		if open[i] {
			sb.WriteString("│  ")
		} else {
			sb.WriteString("   ")
		}
	}
}

// Equal compares the shape, the elements and the policy attributes
// (AVL heights, red black colors) of both trees.
func (t *bsTree[E]) Equal(other BSTree[E]) bool {
	o, ok := unwrapTree[E](other)
	if !ok || o.policy.name() != t.policy.name() || o.count != t.count {
		return false
	}
	return t.equalFrom(t.root, o, o.root)
}

func (t *bsTree[E]) equalFrom(x nodeID, o *bsTree[E], y nodeID) bool {
	if x == nilID || y == nilID {
		return x == y
	}
	nx, ny := t.node(x), o.node(y)
	if !t.eq(nx.elem, ny.elem) || nx.height != ny.height || nx.color != ny.color {
		return false
	}
	return t.equalFrom(nx.left, o, ny.left) && t.equalFrom(nx.right, o, ny.right)
}

func unwrapTree[E any](tree BSTree[E]) (*bsTree[E], bool) {
	var t *bsTree[E]
	switch v := tree.(type) {
	case *bsTree[E]:
		t = v
	case *avlTree[E]:
		if v != nil {
			t = v.bsTree
		}
	case *rbTree[E]:
		if v != nil {
			t = v.bsTree
		}
	default:
	}
	return t, t != nil
}
