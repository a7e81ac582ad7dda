package palette

import "sync"

// AllocationEntry is one color in the round-robin allocation palette, with a
// short description of the role it conventionally signals.
type AllocationEntry struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
	Desc string `json:"desc"`
}

// Allocation is the seven-entry palette used for elements that do not suggest
// a color of their own. Order matters: it is the round-robin order.
var Allocation = []AllocationEntry{
	{Name: "critical", Hex: "#C00000", Desc: "Primary action"},
	{Name: "info", Hex: "#2E74B5", Desc: "Informational"},
	{Name: "warning", Hex: "#FFC000", Desc: "Caution"},
	{Name: "success", Hex: "#548235", Desc: "Confirmation"},
	{Name: "primary", Hex: "#154747", Desc: "Navigation"},
	{Name: "purple", Hex: "#7030A0", Desc: "Optional"},
	{Name: "orange", Hex: "#ED7D31", Desc: "Alternative"},
}

// Assigned is the color record held for one annotation element.
type Assigned struct {
	ElementID string `json:"element_id"`
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Text      string `json:"text"`
}

// LegendEntry is one row of a figure legend, numbered in assignment order.
type LegendEntry struct {
	Number    int    `json:"number"`
	ElementID string `json:"element_id"`
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Text      string `json:"text"`
}

// Manager assigns a stable palette entry to each distinct element identifier.
//
// If a suggested color name exists in the allocation palette it is used;
// otherwise entries are allocated round-robin. The same identifier always
// receives its first-assigned color on repeat lookups.
//
// Manager is safe for concurrent use; the batch pipeline shares one instance
// across its image workers.
type Manager struct {
	mu        sync.Mutex
	assigned  map[string]Assigned
	order     []string
	nextIndex int
}

// NewManager creates an empty color manager.
func NewManager() *Manager {
	return &Manager{assigned: make(map[string]Assigned)}
}

// Assign returns the color for elementID, allocating one on first sight.
//
// suggested is a preferred allocation-palette name ("critical", "info", ...);
// an empty or unknown suggestion falls through to round-robin allocation.
// description is carried into legend entries.
func (m *Manager) Assign(elementID, suggested, description string) Assigned {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.assigned[elementID]; ok {
		return a
	}

	var entry *AllocationEntry
	if suggested != "" {
		for i := range Allocation {
			if Allocation[i].Name == suggested {
				entry = &Allocation[i]
				break
			}
		}
	}
	if entry == nil {
		entry = &Allocation[m.nextIndex%len(Allocation)]
		m.nextIndex++
	}

	a := Assigned{
		ElementID: elementID,
		Name:      entry.Name,
		Hex:       entry.Hex,
		Text:      description,
	}
	m.assigned[elementID] = a
	m.order = append(m.order, elementID)
	return a
}

// Color returns the previously assigned color for elementID, if any.
func (m *Manager) Color(elementID string) (Assigned, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.assigned[elementID]
	return a, ok
}

// LegendEntries returns all assignments as legend rows, numbered 1-based in
// assignment order.
func (m *Manager) LegendEntries() []LegendEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entries := make([]LegendEntry, 0, len(m.order))
	for i, id := range m.order {
		a := m.assigned[id]
		entries = append(entries, LegendEntry{
			Number:    i + 1,
			ElementID: a.ElementID,
			Name:      a.Name,
			Hex:       a.Hex,
			Text:      a.Text,
		})
	}
	return entries
}

// Reset clears all assignments. Call between independent document runs; the
// manager keeps no implicit cross-run memory beyond this map.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assigned = make(map[string]Assigned)
	m.order = nil
	m.nextIndex = 0
}
