package heap

// listPrepend inserts pr at the head of a doubly-linked list (sizebases,
// complete_pages, large_pages). pr must not already belong to a list.
func listPrepend(head **PageRef, pr *PageRef) {
	pr.Prev = nil
	pr.Next = *head
	if *head != nil {
		(*head).Prev = pr
	}
	*head = pr
}

// listDetach removes pr from the doubly-linked list rooted at head.
func listDetach(head **PageRef, pr *PageRef) {
	if pr.Prev != nil {
		pr.Prev.Next = pr.Next
	} else {
		*head = pr.Next
	}
	if pr.Next != nil {
		pr.Next.Prev = pr.Prev
	}
	pr.Next, pr.Prev = nil, nil
}

// freelistPush pushes pr onto a singly-linked free_pages list (prev is
// always nulled, matching the original allocator's free-page list, which
// only ever has its head touched).
func freelistPush(head **PageRef, pr *PageRef) {
	pr.Prev = nil
	pr.Next = *head
	*head = pr
}

// freelistPop pops the head of a singly-linked free_pages list, or
// returns nil if empty.
func freelistPop(head **PageRef) *PageRef {
	pr := *head
	if pr != nil {
		*head = pr.Next
		pr.Next = nil
	}
	return pr
}
