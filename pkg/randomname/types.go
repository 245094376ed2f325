package randomname

// Slot names in the built-in template.
const (
	SlotSurname = "surname"
	SlotGiven   = "given"
	SlotMiddle  = "middle"
	SlotEpithet = "epithet"
)

// Options configures a single name.
type Options struct {
	// Middle appends a second given-name syllable.
	Middle bool
	// Epithet appends an epithet after the name.
	Epithet bool
}

func (o Options) include() map[string]bool {
	return map[string]bool{
		SlotMiddle:  o.Middle,
		SlotEpithet: o.Epithet,
	}
}
