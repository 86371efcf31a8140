package sat2d

// AABBTree is a BroadPhase that inserts every body into a bounding volume
// hierarchy and queries each leaf against the tree.
//
// The tree is rebuilt on every call; nodes are pooled between calls.
type AABBTree struct {
	root  *treeNode
	nodes []treeNode
	used  int
}

type treeNode struct {
	bb     AABB
	parent *treeNode
	a, b   *treeNode

	// leaves only
	body  *Body
	index int
}

func (node *treeNode) isLeaf() bool {
	return node.body != nil
}

func nodeSetA(node, value *treeNode) {
	node.a = value
	value.parent = node
}

func nodeSetB(node, value *treeNode) {
	node.b = value
	value.parent = node
}

// Pairs implements BroadPhase.
func (tree *AABBTree) Pairs(dst []BodyPair, bodies []*Body) []BodyPair {
	tree.reset(len(bodies))
	leaves := make([]*treeNode, len(bodies))
	for i, body := range bodies {
		leaf := tree.newLeaf(body, i)
		leaves[i] = leaf
		tree.root = tree.subtreeInsert(tree.root, leaf)
	}

	for _, leaf := range leaves {
		dst = tree.root.subtreeQuery(leaf, dst)
	}
	return dst
}

// reset recycles every node. A leaf count of n needs at most 2n-1 nodes.
func (tree *AABBTree) reset(n int) {
	if need := 2 * n; cap(tree.nodes) < need {
		tree.nodes = make([]treeNode, need)
	}
	tree.nodes = tree.nodes[:cap(tree.nodes)]
	tree.used = 0
	tree.root = nil
}

func (tree *AABBTree) nodeFromPool() *treeNode {
	node := &tree.nodes[tree.used]
	tree.used++
	*node = treeNode{}
	return node
}

func (tree *AABBTree) newLeaf(body *Body, index int) *treeNode {
	node := tree.nodeFromPool()
	node.body = body
	node.index = index
	node.bb = body.AABB()
	return node
}

func (tree *AABBTree) newNode(a, b *treeNode) *treeNode {
	node := tree.nodeFromPool()
	node.bb = a.bb.Merge(b.bb)
	nodeSetA(node, a)
	nodeSetB(node, b)
	return node
}

// subtreeInsert descends into the child whose bounds grow the least.
func (tree *AABBTree) subtreeInsert(subtree, leaf *treeNode) *treeNode {
	if subtree == nil {
		return leaf
	}
	if subtree.isLeaf() {
		return tree.newNode(leaf, subtree)
	}

	costA := subtree.b.bb.Area() + subtree.a.bb.MergedArea(leaf.bb)
	costB := subtree.a.bb.Area() + subtree.b.bb.MergedArea(leaf.bb)

	if costA == costB {
		costA = subtree.a.bb.Proximity(leaf.bb)
		costB = subtree.b.bb.Proximity(leaf.bb)
	}

	if costB < costA {
		nodeSetB(subtree, tree.subtreeInsert(subtree.b, leaf))
	} else {
		nodeSetA(subtree, tree.subtreeInsert(subtree.a, leaf))
	}

	subtree.bb = subtree.bb.Merge(leaf.bb)
	return subtree
}

// subtreeQuery appends the pairs of leaf with every later leaf it overlaps.
func (subtree *treeNode) subtreeQuery(leaf *treeNode, dst []BodyPair) []BodyPair {
	if subtree == nil || !subtree.bb.Intersects(leaf.bb) {
		return dst
	}
	if !subtree.isLeaf() {
		dst = subtree.a.subtreeQuery(leaf, dst)
		return subtree.b.subtreeQuery(leaf, dst)
	}
	if subtree.index <= leaf.index {
		return dst
	}
	if subtree.body.static && leaf.body.static {
		return dst
	}
	return append(dst, BodyPair{A: leaf.body, B: subtree.body})
}
