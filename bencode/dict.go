package bencode

import "bytes"

// Entry is a single key-value pair in a Dictionary.
type Entry struct {
	Key   []byte
	Value Value
}

// Dictionary is an insertion-ordered map with unique byte-string keys.
// The decoder records keys in the order they first appear in the input;
// re-serializing a decoded dictionary without sorting reproduces that
// order. Lookup goes through an index map and is O(1).
type Dictionary struct {
	entries []Entry
	index   map[string]int
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// Len returns the number of entries. A nil dictionary has length 0.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Get looks up a key.
func (d *Dictionary) Get(key []byte) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[string(key)]
	if !ok {
		return Value{}, false
	}
	return d.entries[i].Value, true
}

// GetString looks up a key given as a Go string.
func (d *Dictionary) GetString(key string) (Value, bool) {
	if d == nil {
		return Value{}, false
	}
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.entries[i].Value, true
}

// Set inserts a key or replaces the value of an existing one. A
// replaced key keeps its original position. The key is copied.
func (d *Dictionary) Set(key []byte, v Value) {
	d.put(append([]byte(nil), key...), v)
}

// SetString inserts or replaces a key given as a Go string.
func (d *Dictionary) SetString(key string, v Value) {
	d.put([]byte(key), v)
}

// put is Set without the key copy. The decoder hands it keys it
// already owns.
func (d *Dictionary) put(key []byte, v Value) {
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[string(key)]; ok {
		d.entries[i].Value = v
		return
	}
	d.index[string(key)] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: key, Value: v})
}

// Entries returns the entries in insertion order. The slice is the
// dictionary's backing store; callers must not modify it.
func (d *Dictionary) Entries() []Entry {
	if d == nil {
		return nil
	}
	return d.entries
}

func (d *Dictionary) equal(o *Dictionary) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i := range d.Entries() {
		a, b := d.entries[i], o.entries[i]
		if !bytes.Equal(a.Key, b.Key) || !a.Value.Equal(b.Value) {
			return false
		}
	}
	return true
}
