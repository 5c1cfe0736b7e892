package tree

import (
	randv2 "math/rand/v2"
	"slices"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benz9527/xtree/lib/infra"
)

type checkData struct {
	color RBColor
	key   uint64
}

func requireColors(t *testing.T, tree RBTree[uint64], expected []checkData) {
	require.Equal(t, int64(len(expected)), tree.Len())
	tree.ForeachInOrder(func(idx int64, key uint64) bool {
		n, err := tree.Search(key)
		require.NoError(t, err)
		color, err := tree.Color(n)
		require.NoError(t, err)
		require.Equal(t, expected[idx].color, color)
		require.Equal(t, expected[idx].key, key)
		return true
	})
	require.NoError(t, RedViolationValidate[uint64](tree))
	require.NoError(t, BlackViolationValidate[uint64](tree))
}

func TestNilNode(t *testing.T) {
	var nilNode Node[uint64] = nil
	require.True(t, nilNode == nil)

	var nilNode2 *nodeRef[uint64] = nil
	nilNode = nilNode2
	require.True(t, nilNode != nil)
	require.Nil(t, nilNode)

	tree := NewOrderedRBTree[uint64]()
	_, err := tree.Color(nilNode)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestRbtreeLeftAndRightRotate_Pred(t *testing.T) {
	tree := NewOrderedRBTree[uint64]()

	require.NoError(t, tree.Insert(52))
	requireColors(t, tree, []checkData{
		{Black, 52},
	})

	require.NoError(t, tree.Insert(47))
	requireColors(t, tree, []checkData{
		{Red, 47}, {Black, 52},
	})

	require.NoError(t, tree.Insert(3))
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 47}, {Red, 52},
	})

	require.NoError(t, tree.Insert(35))
	requireColors(t, tree, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	require.NoError(t, tree.Insert(24))
	requireColors(t, tree, []checkData{
		{Red, 3},
		{Black, 24},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	// remove

	require.True(t, tree.Delete(24))
	requireColors(t, tree, []checkData{
		{Black, 3},
		{Red, 35},
		{Black, 47},
		{Black, 52},
	})

	require.True(t, tree.Delete(47))
	requireColors(t, tree, []checkData{
		{Black, 3},
		{Black, 35},
		{Black, 52},
	})

	require.True(t, tree.Delete(52))
	requireColors(t, tree, []checkData{
		{Red, 3}, {Black, 35},
	})

	require.True(t, tree.Delete(3))
	requireColors(t, tree, []checkData{
		{Black, 35},
	})

	require.True(t, tree.Delete(35))
	require.Equal(t, int64(0), tree.Len())
	_, err := tree.Root()
	require.ErrorIs(t, err, ErrEmptyStructure)

	// The placeholder slots are released after every removal.
	impl := tree.(*rbTree[uint64])
	require.Len(t, impl.arena.free, len(impl.arena.nodes))
}

func TestRbtree_InsertFixupCases(t *testing.T) {
	tree := NewOrderedRBTree[uint64]()
	for _, e := range []uint64{10, 20, 30, 15} {
		require.NoError(t, tree.Insert(e))
	}
	root, err := tree.Root()
	require.NoError(t, err)
	require.Equal(t, uint64(20), root.Element())
	color, err := tree.Color(root)
	require.NoError(t, err)
	require.Equal(t, Black, color)
	require.Equal(t, uint64(10), root.Left().Element())
	require.Equal(t, uint64(30), root.Right().Element())
	require.Equal(t, uint64(15), root.Left().Right().Element())

	requireColors(t, tree, []checkData{
		{Black, 10},
		{Red, 15},
		{Black, 20},
		{Black, 30},
	})
	require.Equal(t, "B{20}\n├─›B{10}\n│  └─»R{15}\n└─»B{30}\n", tree.String())
}

func TestRbtree_DeleteFixupCases(t *testing.T) {
	testcases := []struct {
		name     string
		elements []uint64
		prune    []uint64
		target   uint64
		expected []checkData
	}{
		{
			// Red sibling, rotate the parent toward the removed side.
			// Then the red parent absorbs the missing black.
			name:     "red sibling",
			elements: []uint64{10, 5, 20, 15, 30, 25},
			target:   5,
			expected: []checkData{
				{Black, 10}, {Red, 15}, {Black, 20}, {Red, 25}, {Black, 30},
			},
		},
		{
			name:     "black sibling with black nephews under a black parent",
			elements: []uint64{10, 5, 20, 1},
			prune:    []uint64{1},
			target:   20,
			expected: []checkData{
				{Red, 5}, {Black, 10},
			},
		},
		{
			name:     "both nephews red",
			elements: []uint64{10, 5, 20, 1, 2},
			target:   20,
			expected: []checkData{
				{Black, 1}, {Black, 2}, {Red, 5}, {Black, 10},
			},
		},
		{
			name:     "near nephew red",
			elements: []uint64{10, 5, 20, 15},
			target:   5,
			expected: []checkData{
				{Black, 10}, {Black, 15}, {Black, 20},
			},
		},
		{
			name:     "far nephew red",
			elements: []uint64{10, 5, 20, 30},
			target:   5,
			expected: []checkData{
				{Black, 10}, {Black, 20}, {Black, 30},
			},
		},
		{
			name:     "red leaf",
			elements: []uint64{10, 5, 20, 30},
			target:   30,
			expected: []checkData{
				{Black, 5}, {Black, 10}, {Black, 20},
			},
		},
		{
			name:     "absent",
			elements: []uint64{10, 5},
			target:   7,
			expected: []checkData{
				{Red, 5}, {Black, 10},
			},
		},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			tree := NewOrderedRBTree[uint64]()
			for _, e := range tc.elements {
				require.NoError(tt, tree.Insert(e))
				require.NoError(tt, RedViolationValidate[uint64](tree))
				require.NoError(tt, BlackViolationValidate[uint64](tree))
			}
			for _, e := range tc.prune {
				require.True(tt, tree.Delete(e))
			}
			require.Equal(tt, tc.target != 7, tree.Delete(tc.target))
			requireColors(tt, tree, tc.expected)
		})
	}
}

func TestRbtree_UnsupportedRotation(t *testing.T) {
	logger, buf := newBufferedLogger()
	tree := NewOrderedRBTree[uint64](WithTreeLogger[uint64](logger))
	for _, e := range []uint64{2, 1, 3} {
		require.NoError(t, tree.Insert(e))
	}
	root, err := tree.Root()
	require.NoError(t, err)
	before := tree.String()
	require.ErrorIs(t, tree.RotateLeft(root), ErrUnsupportedOperation)
	require.ErrorIs(t, tree.RotateRight(root), ErrUnsupportedOperation)
	require.Equal(t, before, tree.String())
	require.Contains(t, buf.String(), `"policy":"rbtree"`)
}

func TestRbtree_NoStructuralChangeKeepsColors(t *testing.T) {
	tree := NewOrderedRBTree[uint64]()
	snapshot := NewOrderedRBTree[uint64]()
	for i := uint64(0); i < 64; i++ {
		require.NoError(t, tree.Insert(i))
		require.NoError(t, snapshot.Insert(i))
	}
	require.True(t, tree.Equal(snapshot))
	require.False(t, tree.Delete(1000))
	_, err := tree.Search(1000)
	require.ErrorIs(t, err, ErrNotFound)
	require.True(t, tree.Contains(63))
	require.True(t, tree.Equal(snapshot))

	require.True(t, tree.Delete(0))
	require.False(t, tree.Equal(snapshot))
}

func rbtreeRandomInsertAndRemoveSequentialNumberRunCore(t *testing.T, total uint64) {
	insertTotal := uint64(float64(total) * 0.8)
	removeTotal := uint64(float64(total) * 0.2)

	tree := NewOrderedRBTree[uint64]()

	for i := uint64(0); i < insertTotal; i++ {
		require.NoError(t, tree.Insert(i))
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}
	tree.ForeachInOrder(func(idx int64, key uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		require.NoError(t, tree.Insert(i))
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}

	for i := insertTotal; i < removeTotal+insertTotal; i++ {
		if i == 92 {
			x, err := tree.Search(i)
			require.NoError(t, err)
			require.Equal(t, uint64(92), x.Element())
		}
		require.True(t, tree.Delete(i))
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}
	tree.ForeachInOrder(func(idx int64, key uint64) bool {
		require.Equal(t, uint64(idx), key)
		return true
	})
	require.Equal(t, int64(insertTotal), tree.Len())
}

func TestRbtreeRandomInsertAndRemove_SequentialNumber(t *testing.T) {
	rbtreeRandomInsertAndRemoveSequentialNumberRunCore(t, 500)
}

func TestRbtreeRandomInsertAndRemove_ReverseSequentialNumber(t *testing.T) {
	total := uint64(300)
	tree := NewOrderedRBTree[uint64]()
	for i := total; i > 0; i-- {
		require.NoError(t, tree.Insert(i))
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}
	for i := total; i > total/2; i-- {
		require.True(t, tree.Delete(i))
		require.NoError(t, RedViolationValidate[uint64](tree))
		require.NoError(t, BlackViolationValidate[uint64](tree))
	}
	tree.ForeachInOrder(func(idx int64, key uint64) bool {
		require.Equal(t, uint64(idx+1), key)
		return true
	})
}

func rbtreeRandomInsertAndRemove_RandomNumberRunCore(t *testing.T, total int, violationCheck bool) {
	tree := NewOrderedRBTree[uint64]()
	elements := make([]uint64, 0, total)
	for i := 0; i < total; i++ {
		// Duplicates are allowed.
		e := randv2.Uint64N(uint64(total))
		elements = append(elements, e)
		require.NoError(t, tree.Insert(e))
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64](tree))
		}
	}
	require.NoError(t, OrderViolationValidate[uint64](tree, infra.OrderedKeyCmp[uint64]()))

	randv2.Shuffle(len(elements), func(i, j int) {
		elements[i], elements[j] = elements[j], elements[i]
	})
	for _, e := range elements[:total/2] {
		require.True(t, tree.Delete(e))
		if violationCheck {
			require.NoError(t, RedViolationValidate[uint64](tree))
			require.NoError(t, BlackViolationValidate[uint64](tree))
		}
	}
	require.NoError(t, RedViolationValidate[uint64](tree))
	require.NoError(t, BlackViolationValidate[uint64](tree))

	rest := slices.Clone(elements[total/2:])
	sort.Slice(rest, func(i, j int) bool {
		return rest[i] < rest[j]
	})
	require.Equal(t, rest, slices.Collect(tree.All()))
}

func TestRbtreeRandomInsertAndRemove_RandomNumber(t *testing.T) {
	type testcase struct {
		name           string
		total          int
		violationCheck bool
	}
	testcases := []testcase{
		{
			name:           "rand 100",
			total:          100,
			violationCheck: true,
		},
		{
			name:           "rand 500",
			total:          500,
			violationCheck: true,
		},
		{
			name:  "rand 10000",
			total: 10000,
		},
	}
	t.Parallel()
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			rbtreeRandomInsertAndRemove_RandomNumberRunCore(tt, tc.total, tc.violationCheck)
		})
	}
}

func BenchmarkRBTree_Random(b *testing.B) {
	b.StopTimer()
	tree := NewOrderedRBTree[int]()

	rngArr := make([]int, 0, b.N)
	for i := 0; i < b.N; i++ {
		rngArr = append(rngArr, randv2.Int())
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		err := tree.Insert(rngArr[i])
		if err != nil {
			panic(err)
		}
	}
}

func BenchmarkRBTree_Serial(b *testing.B) {
	tree := NewOrderedRBTree[int]()
	for i := 0; i < b.N; i++ {
		_ = tree.Insert(i)
	}
}
