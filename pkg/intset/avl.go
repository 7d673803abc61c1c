package intset

func height(n *node) int {
	if n == nil {
		return -1
	}
	return n.height
}

func balance(n *node) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func (n *node) fixHeight() {
	n.height = 1 + max(height(n.left), height(n.right))
}

// rotateLL lifts the left child:
//
//	    x          y
//	   / \        / \
//	  y   z  ->  u   x
//	 / \            / \
//	u   v          v   z
func rotateLL(x *node) *node {
	y := x.left
	x.left = y.right
	x.fixHeight()
	y.right = x
	y.fixHeight()
	return y
}

// rotateRR is the mirror of rotateLL.
func rotateRR(x *node) *node {
	z := x.right
	x.right = z.left
	x.fixHeight()
	z.left = x
	z.fixHeight()
	return z
}

// rotateLR lifts the right child of the left child:
//
//	    x             v
//	   / \          /   \
//	  y   z  ->    y     x
//	 / \          / \   / \
//	u   v        u   1 2   z
//	   / \
//	  1   2
func rotateLR(x *node) *node {
	y := x.left
	v := y.right
	y.right = v.left
	y.fixHeight()
	x.left = v.right
	x.fixHeight()
	v.left = y
	v.right = x
	v.fixHeight()
	return v
}

// rotateRL is the mirror of rotateLR.
func rotateRL(x *node) *node {
	z := x.right
	v := z.left
	z.left = v.right
	z.fixHeight()
	x.right = v.left
	x.fixHeight()
	v.right = z
	v.left = x
	v.fixHeight()
	return v
}

// insert adds v below n and returns the new subtree root. The single vs.
// double rotation case is picked by comparing v with the heavy child's key.
func insert(n *node, v int, added *bool) *node {
	if n == nil {
		*added = true
		return &node{value: v}
	}
	switch {
	case v < n.value:
		n.left = insert(n.left, v, added)
	case v > n.value:
		n.right = insert(n.right, v, added)
	default:
		return n
	}
	if !*added {
		return n
	}

	switch bf := balance(n); {
	case bf > 1:
		if v < n.left.value {
			return rotateLL(n)
		}
		return rotateLR(n)
	case bf < -1:
		if v > n.right.value {
			return rotateRR(n)
		}
		return rotateRL(n)
	}
	n.fixHeight()
	return n
}

// remove deletes v below n and returns the rebalanced subtree root.
func remove(n *node, v int, removed *bool) *node {
	if n == nil {
		return nil
	}
	switch {
	case v < n.value:
		n.left = remove(n.left, v, removed)
	case v > n.value:
		n.right = remove(n.right, v, removed)
	default:
		*removed = true
		if n.left == nil {
			return n.right
		}
		if n.right == nil {
			return n.left
		}
		// Two children: take the successor's value and excise the successor.
		n.value = minNode(n.right).value
		n.right = removeMin(n.right)
	}
	if !*removed {
		return n
	}
	return rebalance(n)
}

// removeMin excises the leftmost node of n, rebalancing every ancestor.
func removeMin(n *node) *node {
	if n.left == nil {
		return n.right
	}
	n.left = removeMin(n.left)
	return rebalance(n)
}

// rebalance restores the AVL property at n after a deletion below it.
// Without an inserted key to compare, the child's own balance decides
// between the single and double rotation.
func rebalance(n *node) *node {
	switch bf := balance(n); {
	case bf > 1:
		if balance(n.left) >= 0 {
			return rotateLL(n)
		}
		return rotateLR(n)
	case bf < -1:
		if balance(n.right) <= 0 {
			return rotateRR(n)
		}
		return rotateRL(n)
	}
	n.fixHeight()
	return n
}

func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}
