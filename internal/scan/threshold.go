package scan

// DefaultKeepLimit is the number of archives the game can have loaded at
// once. Automatic threshold selection trims the inventory down to this
// many.
const DefaultKeepLimit = 235

// AutoThreshold returns the size of the archive at the trim boundary of a
// size-sorted inventory: extracting everything at or below it leaves the
// keep largest archives in place. The second return is false when the
// inventory already fits under keep and there is nothing to trim.
//
// Archives sharing the exact boundary size may push the extracted count
// past len(entries)-keep; no tie-breaking is attempted.
func AutoThreshold(entries []Entry, keep int) (int64, bool) {
	if len(entries) <= keep {
		return 0, false
	}
	return entries[len(entries)-keep].Size, true
}

// FilterAtOrBelow returns the entries no larger than threshold, preserving
// sorted order. A negative threshold (the invalid sentinel) selects
// nothing.
func FilterAtOrBelow(entries []Entry, threshold int64) []Entry {
	if threshold < 0 {
		return nil
	}
	var out []Entry
	for _, e := range entries {
		if e.Size <= threshold {
			out = append(out, e)
		}
	}
	return out
}
