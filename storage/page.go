package storage

// page is one fixed-size window of the backing file, the unit of mapping and
// dirtiness. Pages live in PagedStorage's bounded table and are linked into
// an LRU list for eviction.
type page struct {
	index      int64 // page number, file offset = index * pageSize
	buf        []byte
	dirty      bool
	prev, next *page
}

// lruList is an intrusive doubly-linked list of pages, most recently used
// first. Not safe for concurrent use; PagedStorage serializes access.
type lruList struct {
	head, tail *page
}

func (l *lruList) pushFront(p *page) {
	p.prev = nil
	p.next = l.head
	if l.head != nil {
		l.head.prev = p
	}
	l.head = p
	if l.tail == nil {
		l.tail = p
	}
}

func (l *lruList) remove(p *page) {
	if p.prev != nil {
		p.prev.next = p.next
	} else {
		l.head = p.next
	}
	if p.next != nil {
		p.next.prev = p.prev
	} else {
		l.tail = p.prev
	}
	p.prev, p.next = nil, nil
}

func (l *lruList) touch(p *page) {
	if l.head == p {
		return
	}
	l.remove(p)
	l.pushFront(p)
}

func (l *lruList) reset() {
	l.head, l.tail = nil, nil
}
