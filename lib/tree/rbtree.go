package tree

import (
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.

var _ balancer[int] = rbBalancer[int]{}

type rbBalancer[E any] struct{}

func (rbBalancer[E]) name() string {
	return "rbtree"
}

func isRed[E any](t *bsTree[E], x nodeID) bool {
	return x != nilID && t.node(x).color == Red
}

func isBlack[E any](t *bsTree[E], x nodeID) bool {
	return !isRed[E](t, x)
}

func setColor[E any](t *bsTree[E], x nodeID, color RBColor) {
	if x == nilID {
		// impossible run to here
		panic( /* debug assertion */ "[tree] paint a nil leaf")
	}
	t.node(x).color = color
}

// rotateToward rotates p so that its child x moves one level down.
func rotateToward[E any](t *bsTree[E], p nodeID, dir RBDirection) {
	switch dir {
	case Left:
		t.rotateLeft(p)
	case Right:
		t.rotateRight(p)
	default:
		// impossible run to here
		panic( /* debug assertion */ "[tree] rotate toward the root direction")
	}
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

i1: X is the root, repaint X into black.

i2: X's parent P is black, nothing to fix.

i3: If both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainted G into red may be still red-violation.
Recursive to fix grandpa.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

i4: The parent P is red but the uncle U is black. (red-violation)
X is opposite direction to P. Rotate P to opposite direction.
After rotation still red-violation. Here must enter i5 to fix.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

i5: Handle i4 scenario, current node is the same direction as parent.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (rbBalancer[E]) onAfterInsert(t *bsTree[E], x nodeID) {
	setColor[E](t, x, Red)
	for {
		t.stats.IncreaseFixupCount()
		p := t.parent(x)
		if /* i1 */ p == nilID {
			setColor[E](t, x, Black)
			return
		}
		if /* i2 */ isBlack[E](t, p) {
			return
		}

		// The red parent is never the root, so the grandpa exists.
		g := t.parent(p)
		if g == nilID {
			// impossible run to here
			panic( /* debug assertion */ "[tree] rbtree insert violate (i3), red root")
		}
		if u := t.sibling(p); /* i3 */ isRed[E](t, u) {
			setColor[E](t, p, Black)
			setColor[E](t, u, Black)
			setColor[E](t, g, Red)
			x = g
			continue
		}

		if dir := t.direction(x); /* i4 */ dir != t.direction(p) {
			// Left child of a right parent rotates the parent right.
			rotateToward[E](t, p, -dir)
			x, p = p, x
		}

		/* i5 */
		setColor[E](t, p, Black)
		setColor[E](t, g, Red)
		rotateToward[E](t, g, -t.direction(x))
		return
	}
}

/*
y has at most one child. If y is a leaf, a black placeholder is hung under it
so the fix-up always starts from a concrete replacement X. The placeholder is
detached after the fix-up.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the same direction to X and it X's sibling's child node (near nephew).
Sd is the opposite direction to X and it X's sibling's child node (far nephew).

rm1: X is the root, repaint X into black.

rm2: X's sibling S is red, so the parent P, nephew node Sc and Sd
must be black. (Otherwise, red-violation)
Repaint S into black, P into red and rotate P toward X.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm3: All of X's parent P, the sibling S, nephew node Sc and Sd
are black. Paint the S into red to satisfy p4 locally.
Then recursive to handle P.

	  [P]             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: X's parent P is red, the sibling S, nephew node Sc and Sd
are black. Repaint S into red and P into black.

	  <P>             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm5: X's sibling S is black, nephew node Sc is red and Sd is black.
Repaint Sc into black, S into red and rotate S away from X.
Enter into rm6 to fix.

	  {P}                   {P}
	  / \    r-rotate(S)    / \
	[X] [S]  ==========>  [X] [Sc]
	    / \                     \
	  <Sc> [Sd]                 <S>
	                              \
	                              [Sd]

rm6: X's sibling S is black and nephew node Sd is red.
Paint S with P's color, P and Sd into black, rotate P toward X.

	  {P}                   {S}
	  / \    l-rotate(P)    / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	 [Sc] <Sd>          [X] [Sc]
*/
func (b rbBalancer[E]) onRemove(t *bsTree[E], y nodeID) {
	placeholder := nilID
	if t.left(y) == nilID && t.right(y) == nilID {
		var zero E
		placeholder = t.arena.alloc(zero)
		setColor[E](t, placeholder, Black)
		t.node(placeholder).parent = y
		t.node(y).left = placeholder
	}

	removedColor := t.node(y).color
	x, _ := t.spliceOut(y)
	if removedColor == Red || isRed[E](t, x) {
		setColor[E](t, x, Black)
	} else {
		b.removeRebalance(t, x)
	}

	if placeholder != nilID {
		t.replaceChild(t.parent(placeholder), placeholder, nilID)
		t.arena.release(placeholder)
	}
}

func (rbBalancer[E]) removeRebalance(t *bsTree[E], x nodeID) {
	for {
		t.stats.IncreaseFixupCount()
		p := t.parent(x)
		if /* rm1 */ p == nilID {
			setColor[E](t, x, Black)
			return
		}

		dir := t.direction(x)
		s := t.sibling(x)
		if s == nilID {
			// impossible run to here
			panic( /* debug assertion */ "[tree] rbtree remove violate (rm2), black node without sibling")
		}
		if /* rm2 */ isRed[E](t, s) {
			setColor[E](t, s, Black)
			setColor[E](t, p, Red)
			rotateToward[E](t, p, dir)
			s = t.sibling(x)
		}

		sc, sd := t.left(s), t.right(s)
		if dir == Right {
			sc, sd = sd, sc
		}
		if isBlack[E](t, sc) && isBlack[E](t, sd) {
			if /* rm3 */ isBlack[E](t, p) {
				setColor[E](t, s, Red)
				x = p
				continue
			}
			/* rm4 */
			setColor[E](t, s, Red)
			setColor[E](t, p, Black)
			return
		}

		if /* rm5 */ isBlack[E](t, sd) {
			setColor[E](t, sc, Black)
			setColor[E](t, s, Red)
			rotateToward[E](t, s, -dir)
			s = t.sibling(x)
			sd = t.right(s)
			if dir == Right {
				sd = t.left(s)
			}
		}

		/* rm6 */
		setColor[E](t, s, t.node(p).color)
		setColor[E](t, p, Black)
		setColor[E](t, sd, Black)
		rotateToward[E](t, p, dir)
		return
	}
}

func (rbBalancer[E]) onRotate(*bsTree[E], nodeID, nodeID) {}

func (rbBalancer[E]) externalRotation() bool {
	return false
}

func (rbBalancer[E]) describe(t *bsTree[E], x nodeID) string {
	if t.node(x).color == Black {
		return fmt.Sprintf("B{%v}", t.elem(x))
	}
	return fmt.Sprintf("R{%v}", t.elem(x))
}

var _ RBTree[int] = (*rbTree[int])(nil)

type rbTree[E any] struct {
	*bsTree[E]
}

func (t *rbTree[E]) Color(n Node[E]) (RBColor, error) {
	x, err := t.resolve(n)
	if err != nil {
		return Black, err
	}
	return t.node(x).color, nil
}

// NewRBTree returns a color balanced ordered tree.
func NewRBTree[E any](cmp infra.Comparator[E], opts ...BSTreeOpt[E]) RBTree[E] {
	return &rbTree[E]{
		bsTree: newBSTree[E](cmp, rbBalancer[E]{}, opts...),
	}
}

func NewOrderedRBTree[K infra.OrderedKey](opts ...BSTreeOpt[K]) RBTree[K] {
	return NewRBTree[K](infra.OrderedKeyCmp[K](), opts...)
}
