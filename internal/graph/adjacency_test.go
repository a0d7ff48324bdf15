package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestAdjacency_Successors(t *testing.T) {
	a := NewNode(1, 10, 20, 3, 5, false, nil)
	b := NewNode(2, 13, 18, 1, 2, false, nil)
	c := NewNode(3, 22, 30, 2, 1, true, nil)

	adj, err := NewAdjacency([]*Node{a, b, c})
	if err != nil {
		t.Fatal(err)
	}
	if err := adj.Connect(a, b); err != nil {
		t.Fatal(err)
	}
	if err := adj.Connect(a, c); err != nil {
		t.Fatal(err)
	}

	// a[10,20] shifts by length 3 to [13,23]: clipped to b's [13,18] and
	// c's [22,23]
	got, err := adj.Successors(Whole(a))
	if err != nil {
		t.Fatal(err)
	}
	want := []Subnode{
		{Node: b, Start: 13, End: 18},
		{Node: c, Start: 22, End: 23},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Successors() = %v, want %v", got, want)
	}

	// narrowing the query narrows the reachable sub-intervals
	got, err = adj.Successors(Subnode{Node: a, Start: 10, End: 12})
	if err != nil {
		t.Fatal(err)
	}
	want = []Subnode{{Node: b, Start: 13, End: 15}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Successors(narrow) = %v, want %v", got, want)
	}
}

func TestAdjacency_Predecessors(t *testing.T) {
	a := NewNode(1, 10, 20, 3, 5, false, nil)
	b := NewNode(2, 13, 18, 1, 2, false, nil)

	adj, err := NewAdjacency([]*Node{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if err := adj.Connect(a, b); err != nil {
		t.Fatal(err)
	}

	got, err := adj.Predecessors(Whole(b))
	if err != nil {
		t.Fatal(err)
	}
	want := []Subnode{{Node: a, Start: 10, End: 15}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Predecessors() = %v, want %v", got, want)
	}
}

func TestAdjacency_Connect_faults(t *testing.T) {
	a := NewNode(1, 10, 20, 3, 5, false, nil)
	far := NewNode(2, 100, 110, 1, 2, false, nil)

	adj, err := NewAdjacency([]*Node{a, far})
	if err != nil {
		t.Fatal(err)
	}

	var fault *FaultError
	if err := adj.Connect(a, far); !errors.As(err, &fault) {
		t.Fatalf("Connect(unreachable) error = %v, want FaultError", err)
	}
	if fault.Kmer != far.Kmer {
		t.Errorf("FaultError.Kmer = %d, want %d", fault.Kmer, far.Kmer)
	}

	if err := adj.Connect(a, a); err == nil {
		t.Errorf("Connect(self) should fail")
	}
}

func TestSanityCheck(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []*Node
		wantErr error
	}{
		{
			"valid ordered nodes",
			[]*Node{
				{Kmer: 1, Start: 10, End: 20, Length: 1},
				{Kmer: 2, Start: 10, End: 15, Length: 2},
				{Kmer: 3, Start: 12, End: 12, Length: 1},
			},
			nil,
		},
		{
			"empty interval",
			[]*Node{{Kmer: 1, Start: 20, End: 10, Length: 1}},
			ErrEmptyInterval,
		},
		{
			"zero length",
			[]*Node{{Kmer: 1, Start: 10, End: 20, Length: 0}},
			ErrBadLength,
		},
		{
			"negative weight",
			[]*Node{{Kmer: 1, Start: 10, End: 20, Length: 1, Weight: -1}},
			ErrNegativeWeight,
		},
		{
			"out of order",
			[]*Node{
				{Kmer: 1, Start: 20, End: 25, Length: 1},
				{Kmer: 2, Start: 10, End: 15, Length: 1},
			},
			ErrUnordered,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SanityCheck(tt.nodes)
			if tt.wantErr == nil && err != nil {
				t.Errorf("SanityCheck() = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("SanityCheck() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
