package quickhull

// faceList maintains a singly-linked list of faces threaded through their
// next fields. It holds the faces created during one iteration of the main
// loop; the next field carries no meaning outside that iteration.
type faceList struct {
	head *Face
	tail *Face
}

func (l *faceList) clear() {
	l.head = nil
	l.tail = nil
}

// add appends f to the end of the list.
func (l *faceList) add(f *Face) {
	if l.head == nil {
		l.head = f
	} else {
		l.tail.next = f
	}
	f.next = nil
	l.tail = f
}

func (l *faceList) first() *Face {
	return l.head
}

func (l *faceList) isEmpty() bool {
	return l.head == nil
}
