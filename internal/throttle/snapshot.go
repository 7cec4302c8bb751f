package throttle

// Snapshot is a serializable view of the table, used by the REST api and the
// table export.
type Snapshot struct {
	Entries   []Entry `json:"entries"`
	MaxLevel  uint    `json:"maxLevel"`
	Direction string  `json:"direction"`
}

func (t *Table) Snapshot() (Snapshot, error) {
	maxLevel, err := t.MaxLevel()
	if err != nil {
		return Snapshot{}, err
	}

	direction, err := t.Direction()
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		Entries:   t.Entries(),
		MaxLevel:  maxLevel,
		Direction: direction.String(),
	}, nil
}
