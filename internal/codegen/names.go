package codegen

import "tacgen/internal/tac"

// NameAllocator hands out temporaries and labels. The two sequences are
// independent, strictly increasing and start at 1.
type NameAllocator struct {
	temps  int
	labels int
}

func (na *NameAllocator) NewTemp() tac.Temp {
	na.temps++
	return tac.Temp(na.temps)
}

func (na *NameAllocator) NewLabel() tac.Label {
	na.labels++
	return tac.Label(na.labels)
}

// Reset restarts both sequences at 1.
func (na *NameAllocator) Reset() {
	na.temps = 0
	na.labels = 0
}

// Temps reports how many temporaries have been issued since the last Reset.
func (na *NameAllocator) Temps() int { return na.temps }

// Labels reports how many labels have been issued since the last Reset.
func (na *NameAllocator) Labels() int { return na.labels }
