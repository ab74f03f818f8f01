package vector

import "strings"

// ShortcutNames are the coordinate names readable through Attr, in index
// order.
const ShortcutNames = "xyzt"

// Attr reads a coordinate shortcut. It succeeds only for x, y, z and t
// when the vector is long enough to have that coordinate.
func (v *Vector) Attr(name string) (float64, error) {
	if len(name) == 1 {
		pos := strings.Index(ShortcutNames, name)
		if pos >= 0 && pos < v.Len() {
			return v.comps()[pos], nil
		}
	}
	return 0, &AttributeError{Name: name, Kind: AttrMissing}
}

// SetAttr rejects every write. Vectors are immutable, so there is nothing a
// write could update; the error kind tells a caller why the name was
// refused.
func (v *Vector) SetAttr(name string, _ any) error {
	if len(name) == 1 {
		switch {
		case strings.Contains(ShortcutNames, name):
			return &AttributeError{Name: name, Kind: AttrReadOnly}
		case name[0] >= 'a' && name[0] <= 'z':
			return &AttributeError{Name: name, Kind: AttrReserved}
		}
	}
	return &AttributeError{Name: name, Kind: AttrMissing}
}

func (v *Vector) shortcut(pos int) (float64, bool) {
	c := v.comps()
	if pos >= len(c) {
		return 0, false
	}
	return c[pos], true
}

// X returns the first component, if present.
func (v *Vector) X() (float64, bool) { return v.shortcut(0) }

// Y returns the second component, if present.
func (v *Vector) Y() (float64, bool) { return v.shortcut(1) }

// Z returns the third component, if present.
func (v *Vector) Z() (float64, bool) { return v.shortcut(2) }

// T returns the fourth component, if present.
func (v *Vector) T() (float64, bool) { return v.shortcut(3) }
