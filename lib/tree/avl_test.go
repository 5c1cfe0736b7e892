package tree

import (
	randv2 "math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

func avlTreeOf(t *testing.T, elements ...int) AVLTree[int] {
	tree := NewOrderedAVLTree[int]()
	for _, e := range elements {
		require.NoError(t, tree.Insert(e))
		require.NoError(t, AVLViolationValidate[int](tree))
	}
	return tree
}

func TestAVLTree_IncreasingInsert(t *testing.T) {
	tree := avlTreeOf(t, 1, 2, 3, 4, 5, 6, 7)
	require.Equal(t, 2, tree.Height())
	require.Equal(t, []int{4, 2, 1, 3, 6, 5, 7}, slices.Collect(tree.PreOrder()))
	tree.ForeachBreadthFirst(func(idx int64, e int) bool {
		n, err := tree.Search(e)
		require.NoError(t, err)
		bal, err := tree.Balance(n)
		require.NoError(t, err)
		require.True(t, bal >= -1 && bal <= 1)
		return true
	})
	expected := "4 2/0\n" +
		"├─›2 1/0\n" +
		"│  ├─›1 0/0\n" +
		"│  └─»3 0/0\n" +
		"└─»6 1/0\n" +
		"   ├─›5 0/0\n" +
		"   └─»7 0/0\n"
	require.Equal(t, expected, tree.String())
}

func TestAVLTree_DoubleRotations(t *testing.T) {
	testcases := []struct {
		name     string
		elements []int
		preOrder []int
	}{
		{name: "LL", elements: []int{3, 2, 1}, preOrder: []int{2, 1, 3}},
		{name: "RR", elements: []int{1, 2, 3}, preOrder: []int{2, 1, 3}},
		{name: "LR", elements: []int{3, 1, 2}, preOrder: []int{2, 1, 3}},
		{name: "RL", elements: []int{1, 3, 2}, preOrder: []int{2, 1, 3}},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := avlTreeOf(tt, tc.elements...)
			require.Equal(tt, tc.preOrder, slices.Collect(tree.PreOrder()))
			require.Equal(tt, 1, tree.Height())
			last := tree.LastInserted()
			require.NotNil(tt, last)
			require.Equal(tt, tc.elements[2], last.Element())
		})
	}
}

func TestAVLTree_DeleteRoot(t *testing.T) {
	tree := avlTreeOf(t, 1, 2, 3, 4, 5, 6, 7)
	root, err := tree.Root()
	require.NoError(t, err)
	require.True(t, tree.Delete(root.Element()))
	require.NoError(t, AVLViolationValidate[int](tree))
	require.Equal(t, int64(6), tree.Len())
	require.Equal(t, []int{1, 2, 3, 5, 6, 7}, slices.Collect(tree.All()))

	root, err = tree.Root()
	require.NoError(t, err)
	require.Equal(t, 3, root.Element())
}

func TestAVLTree_DeleteTriggersRotation(t *testing.T) {
	tree := avlTreeOf(t, 2, 1, 3, 4)
	require.True(t, tree.Delete(1))
	require.NoError(t, AVLViolationValidate[int](tree))
	require.Equal(t, []int{3, 2, 4}, slices.Collect(tree.PreOrder()))

	// RL after delete.
	tree = avlTreeOf(t, 5, 2, 8, 1, 7)
	require.True(t, tree.Delete(1))
	require.True(t, tree.Delete(2))
	require.NoError(t, AVLViolationValidate[int](tree))
	require.Equal(t, []int{7, 5, 8}, slices.Collect(tree.PreOrder()))
}

func TestAVLTree_RebalanceIsIdempotent(t *testing.T) {
	tree := avlTreeOf(t, 8, 3, 10, 1, 6, 14, 4, 7, 13)
	before := tree.String()
	impl := tree.(*avlTree[int])
	impl.ForeachPreOrder(func(idx int64, e int) bool {
		n, err := impl.Search(e)
		require.NoError(t, err)
		x, err := impl.resolve(n)
		require.NoError(t, err)
		avlBalancer[int]{}.rebalance(impl.bsTree, x)
		return true
	})
	require.Equal(t, before, tree.String())

	require.False(t, tree.Delete(100))
	require.True(t, tree.Contains(13))
	require.Equal(t, before, tree.String())
}

func TestAVLTree_UnsupportedRotation(t *testing.T) {
	logger, buf := newBufferedLogger()
	tree := NewOrderedAVLTree[int](WithTreeLogger[int](logger))
	for e := 1; e <= 3; e++ {
		require.NoError(t, tree.Insert(e))
	}
	before := tree.String()
	root, err := tree.Root()
	require.NoError(t, err)
	require.ErrorIs(t, tree.RotateLeft(root), ErrUnsupportedOperation)
	require.ErrorIs(t, tree.RotateRight(root), ErrUnsupportedOperation)
	require.Equal(t, before, tree.String())
	require.Contains(t, buf.String(), "external rotation refused")
	require.Contains(t, buf.String(), `"policy":"avl"`)
	require.Contains(t, buf.String(), `"component":"avl"`)
}

func TestAVLTree_Balance(t *testing.T) {
	tree := avlTreeOf(t, 2, 1)
	root, err := tree.Root()
	require.NoError(t, err)
	bal, err := tree.Balance(root)
	require.NoError(t, err)
	require.Equal(t, 1, bal)

	other := avlTreeOf(t, 2)
	foreign, err := other.Root()
	require.NoError(t, err)
	_, err = tree.Balance(foreign)
	require.ErrorIs(t, err, ErrNotFound)

	// The view is stale once its slot is released.
	leaf, err := tree.Search(1)
	require.NoError(t, err)
	require.True(t, tree.Delete(1))
	_, err = tree.Balance(leaf)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAVLTree_Equal(t *testing.T) {
	a := avlTreeOf(t, 1, 2, 3, 4, 5)
	b := avlTreeOf(t, 2, 1, 4, 3, 5)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(avlTreeOf(t, 1, 2, 3, 4, 6)))
}

func avlRandomInsertAndDeleteRunCore(t *testing.T, total int) {
	tree := NewOrderedAVLTree[int]()
	elements := randv2.Perm(total)
	for _, e := range elements {
		require.NoError(t, tree.Insert(e))
		require.NoError(t, AVLViolationValidate[int](tree))
	}
	require.NoError(t, OrderViolationValidate[int](tree, infra.OrderedKeyCmp[int]()))
	tree.ForeachInOrder(func(idx int64, e int) bool {
		require.Equal(t, int(idx), e)
		return true
	})

	randv2.Shuffle(len(elements), func(i, j int) {
		elements[i], elements[j] = elements[j], elements[i]
	})
	removed := elements[:total/2]
	for _, e := range removed {
		require.True(t, tree.Delete(e))
		require.False(t, tree.Contains(e))
		require.NoError(t, AVLViolationValidate[int](tree))
	}

	rest := slices.Clone(elements[total/2:])
	sort.Ints(rest)
	require.Equal(t, rest, slices.Collect(tree.All()))
	require.Equal(t, int64(len(rest)), tree.Len())
}

func TestAVLTreeRandomInsertAndDelete(t *testing.T) {
	testcases := []struct {
		name  string
		total int
	}{
		{name: "16", total: 16},
		{name: "128", total: 128},
		{name: "300", total: 300},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			avlRandomInsertAndDeleteRunCore(tt, tc.total)
		})
	}
}

func BenchmarkAVLTree_Random(b *testing.B) {
	b.StopTimer()
	tree := NewOrderedAVLTree[int]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		if err := tree.Insert(rngArr[i]); err != nil {
			panic(err)
		}
	}
}

func BenchmarkAVLTree_Serial(b *testing.B) {
	tree := NewOrderedAVLTree[int]()
	for i := 0; i < b.N; i++ {
		_ = tree.Insert(i)
	}
}
