// Package hashing provides position hashing, repetition counting and
// duplicate detection for hex chess games.
package hashing

// PositionCounter counts how often each position hash has occurred.
type PositionCounter struct {
	counts map[uint64]int
}

// NewPositionCounter creates an empty counter.
func NewPositionCounter() *PositionCounter {
	return &PositionCounter{counts: make(map[uint64]int)}
}

// Add records one occurrence of h and returns its new count.
func (pc *PositionCounter) Add(h uint64) int {
	pc.counts[h]++
	return pc.counts[h]
}

// Remove forgets one occurrence of h.
func (pc *PositionCounter) Remove(h uint64) {
	if pc.counts[h] <= 1 {
		delete(pc.counts, h)
		return
	}
	pc.counts[h]--
}

// Count returns how often h has occurred.
func (pc *PositionCounter) Count(h uint64) int {
	return pc.counts[h]
}

// Len returns the number of distinct positions seen.
func (pc *PositionCounter) Len() int {
	return len(pc.counts)
}

// Clone returns an independent copy.
func (pc *PositionCounter) Clone() *PositionCounter {
	out := &PositionCounter{counts: make(map[uint64]int, len(pc.counts))}
	for h, n := range pc.counts {
		out.counts[h] = n
	}
	return out
}

// GameSignature identifies a replayed game by its final position.
type GameSignature struct {
	// Variant the game was played in; positions of different variants never match.
	Variant string
	// Hash is the Zobrist hash of the final position.
	Hash uint64
	// WeakHash is a second, cheaper checksum of the final position.
	WeakHash uint32
	// Plies is the number of half-moves played.
	Plies int
}

// DuplicateDetector tracks final positions to spot duplicate games.
type DuplicateDetector struct {
	hashTable map[uint64][]GameSignature
	// useExactMatch also requires the same number of plies.
	useExactMatch  bool
	maxCapacity    int
	size           int
	duplicateCount int
}

// NewDuplicateDetector creates a new duplicate detector.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd reports whether sig duplicates a game already seen, and records
// it if not. Once the detector is full new games are checked but not stored.
func (d *DuplicateDetector) CheckAndAdd(sig GameSignature) bool {
	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return false
}

func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash || a.WeakHash != b.WeakHash || a.Variant != b.Variant {
		return false
	}
	if d.useExactMatch && a.Plies != b.Plies {
		return false
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games stored.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// Reset clears the hash table.
func (d *DuplicateDetector) Reset() {
	d.hashTable = make(map[uint64][]GameSignature)
	d.size = 0
	d.duplicateCount = 0
}
