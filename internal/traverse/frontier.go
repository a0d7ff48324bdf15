package traverse

import "container/heap"

// frontier is a min-heap of traversal nodes ordered by the earliest
// position at which downstream work becomes unblocked. Supplanted nodes are
// not removed eagerly; Memo discards them lazily at the head.
type frontier []*Node

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool { return f[i].Priority() < f[j].Priority() }

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x interface{}) {
	*f = append(*f, x.(*Node))
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	tn := old[n-1]
	old[n-1] = nil
	*f = old[:n-1]
	return tn
}

func (f *frontier) push(tn *Node) {
	heap.Push(f, tn)
}

func (f *frontier) pop() *Node {
	if len(*f) == 0 {
		return nil
	}
	return heap.Pop(f).(*Node)
}

func (f frontier) peek() *Node {
	if len(f) == 0 {
		return nil
	}
	return f[0]
}
