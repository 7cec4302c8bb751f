package throttle

// Direction describes how frame rates evolve along the table order.
type Direction int

const (
	DirectionAscending Direction = iota
	DirectionDescending
)

func (d Direction) String() string {
	if d == DirectionDescending {
		return "descending"
	}
	return "ascending"
}

type property int

const (
	propertyMaxLevel property = iota
	propertyLevel
	propertyFps
)

// resolve is the single shared translation routine answering all three query
// kinds. Sharing one walk keeps level<->fps translation symmetric.
//
// The first pass counts distinct valid entries and infers the table direction
// once, from the first pair of distinct frame rates. The direction is never
// reevaluated, the table is assumed globally monotonic after deduplication.
// A table with a single distinct entry never assigns a direction and keeps
// the descending default, so its sole entry is level 0 in both directions.
func (t *Table) resolve(input uint, prop property) (uint, error) {
	if t == nil {
		return 0, ErrInvalidTable
	}

	maxLevel := 0
	descend := -1
	fps := FpsEntryInvalid

	for _, pos := range t.entries {
		if pos.Fps == FpsTableEnd {
			break
		}
		if pos.Fps == FpsEntryInvalid {
			continue
		}

		// ignore duplicate entry
		if fps == pos.Fps {
			continue
		}

		// get the fps order
		if fps != FpsEntryInvalid && descend == -1 {
			if fps > pos.Fps {
				descend = 1
			} else {
				descend = 0
			}
		}

		fps = pos.Fps
		maxLevel++
	}

	// no valid fps entry
	if maxLevel == 0 {
		return 0, ErrInvalidTable
	}

	// maxLevel is an index, not a counter
	maxLevel--

	if prop == propertyMaxLevel {
		return uint(maxLevel), nil
	}

	i := uint(0)
	fps = FpsEntryInvalid

	for _, pos := range t.entries {
		if pos.Fps == FpsTableEnd {
			break
		}
		if pos.Fps == FpsEntryInvalid {
			continue
		}

		// ignore duplicate entry
		if fps == pos.Fps {
			continue
		}

		// now we have a valid fps entry
		fps = pos.Fps

		// level 0 is always the least throttled state,
		// regardless of the calibration order
		level := i
		if descend == 0 {
			level = uint(maxLevel) - i
		}

		if prop == propertyLevel && input == fps {
			return level, nil
		}
		if prop == propertyFps && input == level {
			return fps, nil
		}

		i++
	}

	return 0, ErrNotFound
}

// MaxLevel returns the highest cooling level of the table.
func (t *Table) MaxLevel() (uint, error) {
	return t.resolve(0, propertyMaxLevel)
}

// LevelForFps translates a frame rate ceiling into its cooling level.
func (t *Table) LevelForFps(fps uint) (uint, error) {
	return t.resolve(fps, propertyLevel)
}

// FpsForLevel translates a cooling level into its frame rate ceiling.
func (t *Table) FpsForLevel(level uint) (uint, error) {
	return t.resolve(level, propertyFps)
}

// Direction returns the calibration order of the table.
func (t *Table) Direction() (Direction, error) {
	if t == nil {
		return DirectionDescending, ErrInvalidTable
	}

	descend := -1
	fps := FpsEntryInvalid
	count := 0

	for _, pos := range t.entries {
		if pos.Fps == FpsTableEnd {
			break
		}
		if pos.Fps == FpsEntryInvalid || fps == pos.Fps {
			continue
		}

		if fps != FpsEntryInvalid && descend == -1 {
			if fps > pos.Fps {
				descend = 1
			} else {
				descend = 0
			}
		}

		fps = pos.Fps
		count++
	}

	if count == 0 {
		return DirectionDescending, ErrInvalidTable
	}

	// single entry tables keep the descending default
	if descend == 0 {
		return DirectionAscending, nil
	}
	return DirectionDescending, nil
}
