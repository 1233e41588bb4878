package mcts

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spaolacci/murmur3"
)

// Tree is the arena holding every node of one search session,
// nodes are addressed by their NodeID which is the index in the arena
type Tree[M MoveLike, B Board[M, B]] struct {
	nodes []*Node[M, B]
	root  NodeID
}

func newTree[M MoveLike, B Board[M, B]](capacity int) *Tree[M, B] {
	return &Tree[M, B]{
		nodes: make([]*Node[M, B], 0, capacity),
		root:  NoNode,
	}
}

// Creates the tree with a single root node for given board
func newRootedTree[M MoveLike, B Board[M, B]](board B, capacity int) (*Tree[M, B], error) {
	tree := newTree[M, B](capacity)
	var none M
	root, err := newNode[M, B](0, NoNode, none, board, board.CurrentPlayer(), 0)
	if err != nil {
		return nil, err
	}
	tree.root = tree.add(root)
	return tree, nil
}

func (tree *Tree[M, B]) add(node *Node[M, B]) NodeID {
	node.id = NodeID(len(tree.nodes))
	tree.nodes = append(tree.nodes, node)
	return node.id
}

func (tree *Tree[M, B]) Root() NodeID {
	return tree.root
}

// Number of nodes in the tree
func (tree *Tree[M, B]) Len() int {
	return len(tree.nodes)
}

// Node with given id, nil if there is no such node
func (tree *Tree[M, B]) Node(id NodeID) *Node[M, B] {
	if id < 0 || int(id) >= len(tree.nodes) {
		return nil
	}
	return tree.nodes[id]
}

func (tree *Tree[M, B]) Get(id NodeID) (*Node[M, B], error) {
	node := tree.Node(id)
	if node == nil {
		return nil, errors.Wrapf(ErrInvalidState, "node %d is not in the tree", id)
	}
	return node, nil
}

func (tree *Tree[M, B]) Parent(id NodeID) (NodeID, bool) {
	if node := tree.Node(id); node != nil {
		return node.Parent()
	}
	return NoNode, false
}

func (tree *Tree[M, B]) Children(id NodeID) []NodeID {
	if node := tree.Node(id); node != nil {
		return node.Children()
	}
	return nil
}

// Child of 'id' reached by 'move', NoNode if it wasn't expanded
func (tree *Tree[M, B]) Child(id NodeID, move M) NodeID {
	node := tree.Node(id)
	if node == nil {
		return NoNode
	}
	for _, child := range node.children {
		if tree.nodes[child].move == move {
			return child
		}
	}
	return NoNode
}

// Visit the subtree of 'id' in pre-order, stops descending into a node when fn returns false
func (tree *Tree[M, B]) Walk(id NodeID, fn func(*Node[M, B]) bool) {
	node := tree.Node(id)
	if node == nil || !fn(node) {
		return
	}
	for _, child := range node.children {
		tree.Walk(child, fn)
	}
}

// Copies the subtree of 'id' into a new tree, with 'id' as the root.
// Ids are re-issued, the old tree is left untouched
func (tree *Tree[M, B]) subtree(id NodeID, capacity int) *Tree[M, B] {
	fresh := newTree[M, B](capacity)
	origin := tree.nodes[id]

	var copyNode func(src *Node[M, B], parent NodeID) NodeID
	copyNode = func(src *Node[M, B], parent NodeID) NodeID {
		dst := *src
		dst.parent = parent
		dst.depth = src.depth - origin.depth
		dst.children = make([]NodeID, 0, len(src.children))
		dst.untried = append([]M(nil), src.untried...)
		newID := fresh.add(&dst)
		for _, child := range src.children {
			dst.children = append(dst.children, copyNode(tree.nodes[child], newID))
		}
		return newID
	}

	fresh.root = copyNode(origin, NoNode)
	// statistics and perspective of the new root are kept as they were
	fresh.nodes[fresh.root].setDominated(false)
	return fresh
}

// Fingerprint of the whole tree shape and statistics, two trees built by
// the same search have equal digests
func (tree *Tree[M, B]) Digest() string {
	if tree.root == NoNode {
		return ""
	}
	return tree.digest(tree.root)
}

func (tree *Tree[M, B]) digest(id NodeID) string {
	node := tree.nodes[id]
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%d/%d/%v/%d/%d/%.6f/%v/%d;", node.id, node.depth, node.move,
		node.visits, node.draws, node.reward, node.outcome, node.flags)
	for _, child := range node.children {
		sb.WriteString(tree.digest(child))
	}
	sb.WriteString("]")

	h1, h2 := murmur3.Sum128([]byte(sb.String()))
	var u uuid.UUID
	binary.LittleEndian.PutUint64(u[:8], h1)
	binary.LittleEndian.PutUint64(u[8:], h2)
	return strings.ReplaceAll(u.String(), "-", "")
}
