package nav

// Menu is the mobile navigation sheet state.
type Menu struct {
	Open bool
}

// Toggle flips the open state. It is bound to the menu trigger.
func (m *Menu) Toggle() {
	m.Open = !m.Open
}

// Close forces the menu shut. It is bound to every link inside the open menu; route
// changes alone never close it.
func (m *Menu) Close() {
	m.Open = false
}
