package tree

import (
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/infra"
	"github.com/benz9527/xtree/lib/xlog"
)

// balancer is the rebalance policy plugged into the ordered tree core.
type balancer[E any] interface {
	name() string
	// onAfterInsert repairs the tree from the new leaf x.
	onAfterInsert(t *bsTree[E], x nodeID)
	// onRemove detaches y, which has at most one child, and repairs the tree.
	onRemove(t *bsTree[E], y nodeID)
	// onRotate is called after x lost its subtree root position to y.
	onRotate(t *bsTree[E], x, y nodeID)
	// externalRotation reports whether callers may rotate the tree.
	externalRotation() bool
	// describe renders a node for String.
	describe(t *bsTree[E], x nodeID) string
}

var _ BSTree[int] = (*bsTree[int])(nil)

type bsTree[E any] struct {
	arena        arena[E]
	root         nodeID
	lastInserted nodeID
	count        int64
	cmp          infra.Comparator[E]
	eq           func(a, b E) bool
	policy       balancer[E]
	logger       xlog.XLogger
	stats        *treeStats
	statsName    string
}

func (t *bsTree[E]) node(id nodeID) *node[E] {
	return t.arena.at(id)
}

func (t *bsTree[E]) elem(id nodeID) E {
	return t.arena.at(id).elem
}

func (t *bsTree[E]) parent(id nodeID) nodeID {
	if id == nilID {
		return nilID
	}
	return t.arena.at(id).parent
}

func (t *bsTree[E]) left(id nodeID) nodeID {
	if id == nilID {
		return nilID
	}
	return t.arena.at(id).left
}

func (t *bsTree[E]) right(id nodeID) nodeID {
	if id == nilID {
		return nilID
	}
	return t.arena.at(id).right
}

func (t *bsTree[E]) direction(id nodeID) RBDirection {
	p := t.parent(id)
	if p == nilID {
		return Root
	}
	if t.node(p).left == id {
		return Left
	}
	return Right
}

func (t *bsTree[E]) sibling(id nodeID) nodeID {
	switch t.direction(id) {
	case Left:
		return t.right(t.parent(id))
	case Right:
		return t.left(t.parent(id))
	default:
	}
	return nilID
}

func (t *bsTree[E]) maximum(id nodeID) nodeID {
	aux := id
	for ; aux != nilID && t.right(aux) != nilID; aux = t.right(aux) {
	}
	return aux
}

func (t *bsTree[E]) subtreeHeight(id nodeID) int {
	if id == nilID {
		return -1
	}
	return 1 + max(t.subtreeHeight(t.left(id)), t.subtreeHeight(t.right(id)))
}

// replaceChild links newChild into the position of oldChild under parent.
func (t *bsTree[E]) replaceChild(parent, oldChild, newChild nodeID) {
	if parent == nilID {
		t.root = newChild
	} else if p := t.node(parent); p.left == oldChild {
		p.left = newChild
	} else if p.right == oldChild {
		p.right = newChild
	} else {
		// impossible run to here
		panic( /* debug assertion */ "[tree] replace a child that is not linked to its parent")
	}
	if newChild != nilID {
		t.node(newChild).parent = parent
	}
}

// spliceOut detaches y, which has at most one child, and promotes that child
// into the position of y.
func (t *bsTree[E]) spliceOut(y nodeID) (child, parent nodeID) {
	ny := t.node(y)
	if ny.left != nilID && ny.right != nilID {
		// impossible run to here
		panic( /* debug assertion */ "[tree] splice out a node with two children")
	}
	child, parent = ny.left, ny.parent
	if child == nilID {
		child = ny.right
	}
	t.replaceChild(parent, y, child)
	ny = t.node(y)
	ny.parent, ny.left, ny.right = nilID, nilID, nilID
	return child, parent
}

/*
		 |                         |
		 X                         Y
		/ \     rotateLeft(X)     / \
	   L   Y    ============>    X   Yr
		  / \                   / \
		Yl   Yr                L   Yl
*/
func (t *bsTree[E]) rotateLeft(x nodeID) nodeID {
	if x == nilID || t.right(x) == nilID {
		// impossible run to here
		panic( /* debug assertion */ "[tree] left rotate node x is nil or x.right is nil")
	}

	p, y := t.parent(x), t.right(x)
	yl := t.left(y)
	t.replaceChild(p, x, y)
	t.node(x).right = yl
	if yl != nilID {
		t.node(yl).parent = x
	}
	t.node(y).left = x
	t.node(x).parent = y

	t.policy.onRotate(t, x, y)
	t.stats.IncreaseRotationCount(Left)
	return y
}

/*
		   |                         |
		   X                         Y
		  / \     rotateRight(X)    / \
		 Y   R    ============>   Yl   X
		/ \                           / \
	  Yl   Yr                       Yr   R
*/
func (t *bsTree[E]) rotateRight(x nodeID) nodeID {
	if x == nilID || t.left(x) == nilID {
		// impossible run to here
		panic( /* debug assertion */ "[tree] right rotate node x is nil or x.left is nil")
	}

	p, y := t.parent(x), t.left(x)
	yr := t.right(y)
	t.replaceChild(p, x, y)
	t.node(x).left = yr
	if yr != nilID {
		t.node(yr).parent = x
	}
	t.node(y).right = x
	t.node(x).parent = y

	t.policy.onRotate(t, x, y)
	t.stats.IncreaseRotationCount(Right)
	return y
}

func (t *bsTree[E]) Len() int64 {
	return t.count
}

func (t *bsTree[E]) IsEmpty() bool {
	return t.count == 0
}

func (t *bsTree[E]) Height() int {
	return t.subtreeHeight(t.root)
}

func (t *bsTree[E]) Root() (Node[E], error) {
	if t.root == nilID {
		return nil, infra.WrapErrorStack(ErrEmptyStructure)
	}
	return t.view(t.root), nil
}

func (t *bsTree[E]) LastInserted() Node[E] {
	return t.view(t.lastInserted)
}

func (t *bsTree[E]) Insert(e E) error {
	if lo.IsNil(e) {
		return infra.WrapErrorStack(ErrNilElement)
	}

	z := t.arena.alloc(e)
	if t.root == nilID {
		t.root = z
	} else {
		var x, y nodeID = t.root, nilID
		less := false
		for x != nilID {
			y = x
			if less = t.cmp(e, t.elem(x)) < 0; less {
				x = t.left(x)
			} else {
				x = t.right(x)
			}
		}
		t.node(z).parent = y
		if less {
			t.node(y).left = z
		} else {
			t.node(y).right = z
		}
	}

	t.count++
	t.stats.RecordElementCount(1)
	t.policy.onAfterInsert(t, z)
	t.lastInserted = z
	return nil
}

// search descends by ordering and matches by equality. Duplicates by
// ordering may sit on both sides of a node after rotations, so both
// subtrees are explored on a tie.
func (t *bsTree[E]) search(x nodeID, e E) nodeID {
	for x != nilID {
		res := t.cmp(e, t.elem(x))
		if res == 0 {
			if t.eq(e, t.elem(x)) {
				return x
			}
			if found := t.search(t.left(x), e); found != nilID {
				return found
			}
			x = t.right(x)
		} else if res < 0 {
			x = t.left(x)
		} else {
			x = t.right(x)
		}
	}
	return nilID
}

func (t *bsTree[E]) Search(e E) (Node[E], error) {
	if lo.IsNil(e) {
		return nil, infra.WrapErrorStack(ErrNilElement)
	}
	x := t.search(t.root, e)
	if x == nilID {
		return nil, infra.WrapErrorStack(ErrNotFound)
	}
	return t.view(x), nil
}

func (t *bsTree[E]) Contains(e E) bool {
	if lo.IsNil(e) {
		return false
	}
	return t.search(t.root, e) != nilID
}

/*
Node Z has a left child, swap the elements with its in-order predecessor Y
and remove Y instead. Y has no right child.

	  |                    |
	  Z                    Y
	 / \                  / \
	L  ..   swap(Z, Y)   L  ..
	 \      =========>    \
	  Y                    Z
*/
func (t *bsTree[E]) Delete(e E) bool {
	if lo.IsNil(e) {
		return false
	}
	z := t.search(t.root, e)
	if z == nilID {
		return false
	}

	y := z
	if t.left(z) != nilID {
		y = t.maximum(t.left(z))
		nz, ny := t.node(z), t.node(y)
		nz.elem, ny.elem = ny.elem, nz.elem
	}

	t.lastInserted = nilID
	t.policy.onRemove(t, y)
	t.arena.release(y)
	t.count--
	t.stats.RecordElementCount(-1)
	return true
}

func (t *bsTree[E]) Clear() {
	t.stats.RecordElementCount(-t.count)
	t.arena.reset()
	t.root = nilID
	t.lastInserted = nilID
	t.count = 0
}

func (t *bsTree[E]) RotateLeft(n Node[E]) error {
	return t.externalRotate(n, Left)
}

func (t *bsTree[E]) RotateRight(n Node[E]) error {
	return t.externalRotate(n, Right)
}

func (t *bsTree[E]) externalRotate(n Node[E], dir RBDirection) error {
	if !t.policy.externalRotation() {
		err := infra.WrapErrorStackWithMessage(ErrUnsupportedOperation, "external rotation refused")
		t.logger.ErrorStack(err, "[tree] rotation breaks the balance invariants",
			zap.String("policy", t.policy.name()),
			zap.String("direction", dir.String()),
		)
		return err
	}

	x, err := t.resolve(n)
	if err != nil {
		return err
	}
	switch dir {
	case Left:
		if t.right(x) == nilID {
			return infra.WrapErrorStackWithMessage(ErrUnsupportedOperation, "left rotation without right child")
		}
		t.rotateLeft(x)
	case Right:
		if t.left(x) == nilID {
			return infra.WrapErrorStackWithMessage(ErrUnsupportedOperation, "right rotation without left child")
		}
		t.rotateRight(x)
	default:
	}
	t.lastInserted = nilID
	return nil
}

type BSTreeOpt[E any] func(*bsTree[E])

// WithTreeEqual sets the equality used to match elements once the
// comparator has located the candidates. Defaults to cmp(a, b) == 0.
func WithTreeEqual[E any](eq func(a, b E) bool) BSTreeOpt[E] {
	return func(t *bsTree[E]) {
		if eq != nil {
			t.eq = eq
		}
	}
}

func WithTreeLogger[E any](logger xlog.XLogger) BSTreeOpt[E] {
	return func(t *bsTree[E]) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTreeStats enables the otel instruments registered under the name.
func WithTreeStats[E any](name string) BSTreeOpt[E] {
	return func(t *bsTree[E]) {
		t.statsName = name
	}
}

func newBSTree[E any](cmp infra.Comparator[E], policy balancer[E], opts ...BSTreeOpt[E]) *bsTree[E] {
	if cmp == nil {
		panic("[tree] nil comparator")
	}
	t := &bsTree[E]{
		root:         nilID,
		lastInserted: nilID,
		cmp:          cmp,
		policy:       policy,
	}
	for _, o := range opts {
		o(t)
	}
	if t.eq == nil {
		t.eq = func(a, b E) bool {
			return cmp(a, b) == 0
		}
	}
	if t.logger == nil {
		t.logger = xlog.Default()
	}
	t.logger = t.logger.Named(policy.name())
	if len(t.statsName) > 0 {
		t.stats = newTreeStats(t.statsName, policy.name())
	}
	return t
}

var _ balancer[int] = plainBalancer[int]{}

// plainBalancer never rebalances, the tree shape follows the insertion order.
type plainBalancer[E any] struct{}

func (plainBalancer[E]) name() string {
	return "bst"
}

func (plainBalancer[E]) onAfterInsert(*bsTree[E], nodeID) {}

func (plainBalancer[E]) onRemove(t *bsTree[E], y nodeID) {
	t.spliceOut(y)
}

func (plainBalancer[E]) onRotate(*bsTree[E], nodeID, nodeID) {}

func (plainBalancer[E]) externalRotation() bool {
	return true
}

func (plainBalancer[E]) describe(t *bsTree[E], x nodeID) string {
	return describeElement(t.elem(x))
}

// NewBSTree returns an unbalanced ordered tree. It is the only variant
// that accepts external rotations.
func NewBSTree[E any](cmp infra.Comparator[E], opts ...BSTreeOpt[E]) BSTree[E] {
	return newBSTree[E](cmp, plainBalancer[E]{}, opts...)
}

func NewOrderedBSTree[K infra.OrderedKey](opts ...BSTreeOpt[K]) BSTree[K] {
	return NewBSTree[K](infra.OrderedKeyCmp[K](), opts...)
}
