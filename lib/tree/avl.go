package tree

import (
	"fmt"

	"github.com/benz9527/xtree/lib/infra"
)

// References:
// https://en.wikipedia.org/wiki/AVL_tree
// avl properties:
// p1. height(nil) = -1, height(leaf) = 0.
// p2. height(x) = 1 + max(height(x.left), height(x.right)).
// p3. For every node, |height(x.left) - height(x.right)| <= 1.

var _ balancer[int] = avlBalancer[int]{}

type avlBalancer[E any] struct{}

func (avlBalancer[E]) name() string {
	return "avl"
}

func (avlBalancer[E]) height(t *bsTree[E], x nodeID) int32 {
	if x == nilID {
		return -1
	}
	return t.node(x).height
}

func (b avlBalancer[E]) updateHeight(t *bsTree[E], x nodeID) {
	t.node(x).height = 1 + max(b.height(t, t.left(x)), b.height(t, t.right(x)))
}

func (b avlBalancer[E]) balance(t *bsTree[E], x nodeID) int32 {
	return b.height(t, t.left(x)) - b.height(t, t.right(x))
}

// The new leaf height is 0 already.
func (b avlBalancer[E]) onAfterInsert(t *bsTree[E], x nodeID) {
	b.rebalance(t, x)
}

func (b avlBalancer[E]) onRemove(t *bsTree[E], y nodeID) {
	_, p := t.spliceOut(y)
	b.rebalance(t, p)
}

// Only x and y changed their subtrees, x is the child of y now.
func (b avlBalancer[E]) onRotate(t *bsTree[E], x, y nodeID) {
	b.updateHeight(t, x)
	b.updateHeight(t, y)
}

func (avlBalancer[E]) externalRotation() bool {
	return false
}

func (b avlBalancer[E]) describe(t *bsTree[E], x nodeID) string {
	return fmt.Sprintf("%v %d/%d", t.elem(x), t.node(x).height, b.balance(t, x))
}

/*
rebalance walks from x up to the root.

bal == -2, the right subtree is too high.

(1) RR: the right child R is not left heavy, rotate X left.

	  X                      R
	 / \                    / \
	L   R   rotateLeft(X)  X   Rr
	   / \  ===========>  / \
	 Rl   Rr             L   Rl

(2) RL: the right child R is left heavy (+1), rotate R right first and then
rotate X left.

	  X                    X                        Rl
	 / \                  / \                      /  \
	L   R  rotateRight(R) L  Rl   rotateLeft(X)   X    R
	   /   ============>      \   ===========>   /
	 Rl                        R                L

bal == +2 is the mirror of the above (LL, LR).
*/
func (b avlBalancer[E]) rebalance(t *bsTree[E], x nodeID) {
	for x != nilID {
		b.updateHeight(t, x)
		switch bal := b.balance(t, x); bal {
		case -2:
			if r := t.right(x); /* RL */ b.balance(t, r) == 1 {
				t.rotateRight(r)
			}
			x = t.rotateLeft(x)
			t.stats.IncreaseFixupCount()
		case 2:
			if l := t.left(x); /* LR */ b.balance(t, l) == -1 {
				t.rotateLeft(l)
			}
			x = t.rotateRight(x)
			t.stats.IncreaseFixupCount()
		default:
			if bal < -2 || bal > 2 {
				// impossible run to here
				panic( /* debug assertion */ "[tree] avl balance factor out of range")
			}
		}
		x = t.parent(x)
	}
}

var _ AVLTree[int] = (*avlTree[int])(nil)

type avlTree[E any] struct {
	*bsTree[E]
}

func (t *avlTree[E]) Balance(n Node[E]) (int, error) {
	x, err := t.resolve(n)
	if err != nil {
		return 0, err
	}
	return int(avlBalancer[E]{}.balance(t.bsTree, x)), nil
}

// NewAVLTree returns a height balanced ordered tree.
func NewAVLTree[E any](cmp infra.Comparator[E], opts ...BSTreeOpt[E]) AVLTree[E] {
	return &avlTree[E]{
		bsTree: newBSTree[E](cmp, avlBalancer[E]{}, opts...),
	}
}

func NewOrderedAVLTree[K infra.OrderedKey](opts ...BSTreeOpt[K]) AVLTree[K] {
	return NewAVLTree[K](infra.OrderedKeyCmp[K](), opts...)
}
