/*
Package intset provides an ordered set of small integers backed by an AVL tree.

It is the building block for transition targets and state closures in the
converter: membership, insertion and removal are O(log n), iteration is in
increasing order, and Overlaps walks the smaller of two sets while probing
the larger one.

	s := intset.Of(3, 1, 2)
	s.Insert(5)
	s.Remove(1)
	fmt.Println(s) // {2,3,5}

The zero value of Set is an empty set. Sets are not safe for concurrent
mutation; the converter owns each one exclusively.
*/
package intset
