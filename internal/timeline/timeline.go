// Package timeline stores a single user's posts in a height-balanced
// (AVL) binary search tree keyed by sequence number.
//
// Nodes live in an arena slice and refer to their children by index, so no
// node reference ever escapes the Timeline. Dropping the Timeline releases
// every node at once.
//
// Ordering:
//   - In-order traversal yields posts in increasing sequence order.
//   - Reverse in-order traversal yields posts most-recent-first.
//
// Insertion is O(log k) for k posts. Recent(n) is O(log k + n).
package timeline

import "fmt"

// Unbounded is the Recent argument meaning "every post".
const Unbounded = -1

// Post is a single immutable timeline entry.
type Post struct {
	Content string `json:"content"`
	Seq     int64  `json:"seq"`
}

// nilNode marks an absent child.
const nilNode int32 = -1

type node struct {
	post   Post
	left   int32
	right  int32
	height int32
}

// Timeline is an append-only, balanced, per-user post store.
//
// Timeline is not safe for concurrent use.
type Timeline struct {
	nodes []node
	root  int32
	clock *Clock
}

// New creates an empty timeline whose first post receives sequence 0.
func New() *Timeline {
	return &Timeline{root: nilNode, clock: NewClock()}
}

// Append stores content as the newest post and returns it.
func (t *Timeline) Append(content string) Post {
	p := Post{Content: content, Seq: t.clock.Next()}
	t.insertPost(p)
	return p
}

// insertPost places p in the arena and rebalances along the insertion path.
// The key comparison is general: equal keys descend to the right.
func (t *Timeline) insertPost(p Post) {
	idx := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{post: p, left: nilNode, right: nilNode, height: 1})
	t.root = t.insert(t.root, idx)
}

// Len returns the number of posts.
func (t *Timeline) Len() int {
	return len(t.nodes)
}

// Height returns the height of the tree (0 when empty).
func (t *Timeline) Height() int {
	return int(t.heightOf(t.root))
}

// Recent returns up to n posts, most recent first.
//
//   - n == Unbounded: every post
//   - n <= 0: no posts
//   - n >= Len(): every post
func (t *Timeline) Recent(n int) []Post {
	total := len(t.nodes)
	switch {
	case n == Unbounded || n >= total:
		n = total
	case n <= 0:
		return []Post{}
	}

	out := make([]Post, 0, n)
	stack := make([]int32, 0, t.Height())
	cur := t.root
	for len(out) < n && (cur != nilNode || len(stack) > 0) {
		for cur != nilNode {
			stack = append(stack, cur)
			cur = t.nodes[cur].right
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, t.nodes[cur].post)
		cur = t.nodes[cur].left
	}
	return out
}

// InOrder returns every post in ascending sequence order.
func (t *Timeline) InOrder() []Post {
	out := make([]Post, 0, len(t.nodes))
	stack := make([]int32, 0, t.Height())
	cur := t.root
	for cur != nilNode || len(stack) > 0 {
		for cur != nilNode {
			stack = append(stack, cur)
			cur = t.nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, t.nodes[cur].post)
		cur = t.nodes[cur].right
	}
	return out
}

// Validate checks the search-tree ordering, the stored heights and the AVL
// balance factor of every node.
func (t *Timeline) Validate() error {
	_, err := t.validate(t.root, nil, nil)
	return err
}

func (t *Timeline) validate(n int32, lo, hi *int64) (int32, error) {
	if n == nilNode {
		return 0, nil
	}
	nd := t.nodes[n]
	key := nd.post.Seq
	if lo != nil && key < *lo {
		return 0, fmt.Errorf("node seq=%d below lower bound %d", key, *lo)
	}
	if hi != nil && key > *hi {
		return 0, fmt.Errorf("node seq=%d above upper bound %d", key, *hi)
	}

	lh, err := t.validate(nd.left, lo, &key)
	if err != nil {
		return 0, err
	}
	rh, err := t.validate(nd.right, &key, hi)
	if err != nil {
		return 0, err
	}

	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, fmt.Errorf("node seq=%d unbalanced: balance factor %d", key, bf)
	}
	h := 1 + max(lh, rh)
	if h != nd.height {
		return 0, fmt.Errorf("node seq=%d stored height %d, actual %d", key, nd.height, h)
	}
	return h, nil
}

func (t *Timeline) insert(n, idx int32) int32 {
	if n == nilNode {
		return idx
	}

	key := t.nodes[idx].post.Seq
	if key < t.nodes[n].post.Seq {
		left := t.insert(t.nodes[n].left, idx)
		t.nodes[n].left = left
	} else {
		right := t.insert(t.nodes[n].right, idx)
		t.nodes[n].right = right
	}

	t.updateHeight(n)
	bf := t.balance(n)

	switch {
	case bf > 1 && key < t.key(t.nodes[n].left):
		// left-left
		return t.rotateRight(n)
	case bf < -1 && key >= t.key(t.nodes[n].right):
		// right-right
		return t.rotateLeft(n)
	case bf > 1:
		// left-right
		t.nodes[n].left = t.rotateLeft(t.nodes[n].left)
		return t.rotateRight(n)
	case bf < -1:
		// right-left
		t.nodes[n].right = t.rotateRight(t.nodes[n].right)
		return t.rotateLeft(n)
	}
	return n
}

func (t *Timeline) rotateRight(y int32) int32 {
	x := t.nodes[y].left
	t2 := t.nodes[x].right

	t.nodes[x].right = y
	t.nodes[y].left = t2

	t.updateHeight(y)
	t.updateHeight(x)
	return x
}

func (t *Timeline) rotateLeft(x int32) int32 {
	y := t.nodes[x].right
	t2 := t.nodes[y].left

	t.nodes[y].left = x
	t.nodes[x].right = t2

	t.updateHeight(x)
	t.updateHeight(y)
	return y
}

func (t *Timeline) key(n int32) int64 {
	return t.nodes[n].post.Seq
}

func (t *Timeline) heightOf(n int32) int32 {
	if n == nilNode {
		return 0
	}
	return t.nodes[n].height
}

func (t *Timeline) balance(n int32) int32 {
	if n == nilNode {
		return 0
	}
	return t.heightOf(t.nodes[n].left) - t.heightOf(t.nodes[n].right)
}

func (t *Timeline) updateHeight(n int32) {
	t.nodes[n].height = 1 + max(t.heightOf(t.nodes[n].left), t.heightOf(t.nodes[n].right))
}
