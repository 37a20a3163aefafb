package dqbf

import "fmt"

// NameTable is the append-only bidirectional name<->id mapping described
// in spec.md §3. It starts from the name/id maps the dqcir parser built
// and is extended with synthetic names for rule-chain and expansion
// variables as the solver runs.
type NameTable struct {
	nameToID map[string]int
	idToName map[int]string
}

// NewNameTable copies the given seed maps (typically produced by
// dqcir.Formula) into a fresh, independently-owned NameTable.
func NewNameTable(nameToID map[string]int, idToName map[int]string) *NameTable {
	nt := &NameTable{
		nameToID: make(map[string]int, len(nameToID)),
		idToName: make(map[int]string, len(idToName)),
	}
	for name, id := range nameToID {
		nt.nameToID[name] = id
	}
	for id, name := range idToName {
		nt.idToName[id] = name
	}
	return nt
}

// Register adds a synthetic name for a freshly allocated id. Panics on a
// duplicate id, since the mapping is append-only by construction (INV-4).
func (nt *NameTable) Register(id int, name string) {
	if existing, ok := nt.idToName[id]; ok {
		panic(fmt.Sprintf("dqbf: id %d already named %q, cannot register %q", id, existing, name))
	}
	nt.idToName[id] = name
	nt.nameToID[name] = id
}

// Name returns the name for id, or a synthetic "v<id>" placeholder if
// none was ever registered.
func (nt *NameTable) Name(id int) string {
	if name, ok := nt.idToName[id]; ok {
		return name
	}
	return fmt.Sprintf("v%d", id)
}

// ID looks up the id registered for name.
func (nt *NameTable) ID(name string) (int, bool) {
	id, ok := nt.nameToID[name]
	return id, ok
}
