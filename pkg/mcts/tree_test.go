package mcts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTreeNavigation(t *testing.T) {
	s, err := newTestSession[int, nimBoard](newNim(6), WithRandom(NewLCG(DefaultLCGSeed)))
	require.NoError(t, err)
	require.NoError(t, s.Run(100))
	tree := s.Tree()

	t.Run("lookup", func(t *testing.T) {
		root, err := tree.Get(tree.Root())
		require.NoError(t, err)
		require.Equal(t, s.Root(), root)

		_, err = tree.Get(NodeID(tree.Len()))
		require.ErrorIs(t, err, ErrInvalidState)
		require.Nil(t, tree.Node(-1))
		require.Nil(t, tree.Children(NoNode))

		_, ok := tree.Parent(tree.Root())
		require.False(t, ok, "Root should have no parent")
		_, ok = root.Move()
		require.False(t, ok, "Root should have no move")
	})

	t.Run("children", func(t *testing.T) {
		for _, id := range tree.Children(tree.Root()) {
			node := tree.Node(id)
			move, ok := node.Move()
			require.True(t, ok)
			require.Equal(t, id, tree.Child(tree.Root(), move))

			parent, ok := tree.Parent(id)
			require.True(t, ok)
			require.Equal(t, tree.Root(), parent)
		}
		require.Equal(t, NoNode, tree.Child(tree.Root(), 7))
	})

	t.Run("walk", func(t *testing.T) {
		visited := 0
		tree.Walk(tree.Root(), func(*Node[int, nimBoard]) bool {
			visited++
			return true
		})
		require.Equal(t, tree.Len(), visited, "Every node should be reachable from the root")

		visited = 0
		tree.Walk(tree.Root(), func(node *Node[int, nimBoard]) bool {
			visited++
			return node.Depth() < 1
		})
		require.Equal(t, 1+len(tree.Children(tree.Root())), visited, "Walk should not descend when told so")
	})
}

func TestTreeDigest(t *testing.T) {
	s, err := newTestSession[int, nimBoard](newNim(6), WithRandom(NewLCG(DefaultLCGSeed)))
	require.NoError(t, err)

	fresh := s.Tree().Digest()
	require.Len(t, fresh, 32)
	require.NoError(t, s.Run(1))
	require.NotEqual(t, fresh, s.Tree().Digest(), "Digest should change with the statistics")

	before := s.Tree().Digest()
	s.Root().draws++
	require.NotEqual(t, before, s.Tree().Digest(), "Digest should cover draw counts")

	require.Empty(t, newTree[int, nimBoard](0).Digest())
}

func TestSubtree(t *testing.T) {
	s, err := newTestSession[int, nimBoard](newNim(8), WithRandom(NewLCG(DefaultLCGSeed)))
	require.NoError(t, err)
	require.NoError(t, s.Run(200))

	tree := s.Tree()
	id := tree.Children(tree.Root())[0]
	origin := tree.Node(id)
	origin.setDominated(true)
	sub := tree.subtree(id, 0)

	root := sub.Node(sub.Root())
	require.Equal(t, NodeID(0), sub.Root())
	require.Equal(t, origin.Visits(), root.Visits())
	require.Equal(t, origin.Perspective(), root.Perspective())
	require.False(t, root.Dominated(), "New root should never be dominated")
	require.True(t, origin.Dominated())
	require.Equal(t, id, origin.ID(), "Source tree should be left untouched")

	copied := sub.Node(sub.Children(sub.Root())[0])
	copied.untried = append(copied.untried, 99)
	require.NotContains(t, tree.Node(tree.Child(id, copied.move)).Untried(), 99, "Untried moves should not be shared")
}

func TestNodeAccessorsReturnCopies(t *testing.T) {
	s, err := newTestSession[int, nimBoard](newNim(6), WithRandom(NewLCG(DefaultLCGSeed)))
	require.NoError(t, err)
	require.NoError(t, s.Run(1))
	digest := s.Tree().Digest()

	root := s.Root()
	children := root.Children()
	require.Len(t, children, 1)
	children[0] = NoNode
	_ = append(children, 42)

	untried := root.Untried()
	require.Len(t, untried, 1)
	untried[0] = 99

	treeChildren := s.Tree().Children(s.Tree().Root())
	treeChildren[0] = NoNode

	require.NotEqual(t, NoNode, root.Children()[0])
	require.NotContains(t, root.Untried(), 99)
	require.Equal(t, digest, s.Tree().Digest(), "Editing returned slices should not touch the tree")
}
