package dailyvideos

// MergeByIdentifier combines existing and new entries keyed by id. Existing
// entries are inserted first, then new ones; a repeated id keeps the slot of
// its first occurrence and takes the later value. Entries without an id are
// dropped.
func MergeByIdentifier(existingEntries []Entry, newEntries []Entry) []Entry {
	slotByIdentifier := make(map[string]int, len(existingEntries)+len(newEntries))
	merged := make([]Entry, 0, len(existingEntries)+len(newEntries))

	insert := func(entry Entry) {
		if len(entry.identifierKey) == 0 {
			return
		}
		if slot, exists := slotByIdentifier[entry.identifierKey]; exists {
			merged[slot] = entry
			return
		}
		slotByIdentifier[entry.identifierKey] = len(merged)
		merged = append(merged, entry)
	}

	for _, entry := range existingEntries {
		insert(entry)
	}
	for _, entry := range newEntries {
		insert(entry)
	}

	return merged
}
