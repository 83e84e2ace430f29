// Package typeenc implements comparison and hashing of Objective-C-style
// type encodings for selector interning.
//
// Two type encodings are considered equal for dispatch purposes once a
// skip-set of qualifier characters has been stripped from both, and once the
// `*` / `^C` / `^c` C-string shorthand has been normalised. This mirrors
// `selector_types_equal` and `skip_irrelevant_type_info` in the original
// selector table, reshaped as allocation-free string walks instead of
// pointer-advancing C loops.
//
// © 2025 msgdispatch authors. MIT License.
package typeenc

// isSkippable matches the qualifier characters that carry no dispatch-relevant
// information: the `r,n,N,o,O,R,V,!` type qualifiers and ASCII digits (stack
// frame offsets embedded in the encoding).
func isSkippable(c byte) bool {
	switch c {
	case 'r', 'n', 'N', 'o', 'O', 'R', 'V', '!':
		return true
	}
	return c >= '0' && c <= '9'
}

// skipIrrelevant advances past every leading qualifier character in t,
// returning the index of the first dispatch-relevant byte (or len(t)).
func skipIrrelevant(t string, i int) int {
	for i < len(t) && isSkippable(t[i]) {
		i++
	}
	return i
}

// isCStringPointer reports whether t[i:] begins with the `^C` or `^c`
// encoding GCC and Clang use for `char *` / `BOOL *`.
func isCStringPointer(t string, i int) bool {
	return i+1 < len(t) && t[i] == '^' && (t[i+1] == 'C' || t[i+1] == 'c')
}

// Equal reports whether two type encodings are equivalent for selector
// identity purposes. A nil/empty encoding (the untyped peer) only equals
// another nil/empty encoding — callers that want "untyped matches anything"
// semantics (type-dependent dispatch's relaxed mode) should check for empty
// strings themselves before calling Equal.
//
// The `*` shorthand for a C string pointer is treated as equivalent to
// `^C`/`^c`, exactly as FSF GCC vs. Clang/Apple GCC disagree on which to
// emit for `@encode(BOOL*)`.
func Equal(t1, t2 string) bool {
	if t1 == "" || t2 == "" {
		return t1 == t2
	}

	i, j := 0, 0
	for i < len(t1) || j < len(t2) {
		i = skipIrrelevant(t1, i)
		j = skipIrrelevant(t2, j)

		c1, atEnd1 := byteAt(t1, i)
		c2, atEnd2 := byteAt(t2, j)

		if atEnd1 && atEnd2 {
			return true
		}
		if atEnd1 != atEnd2 {
			return false
		}

		if c1 == '*' && c2 != '*' {
			if !isCStringPointer(t2, j) {
				return false
			}
			j++
		} else if c2 == '*' && c1 != '*' {
			if !isCStringPointer(t1, i) {
				return false
			}
			i++
		} else if c1 != c2 {
			return false
		}

		i++
		j++
	}
	return true
}

// FirstRelevantChar returns the first dispatch-relevant byte of a type
// encoding after stripping leading qualifiers, used to pick the nil-receiver
// sentinel slot by return type (§4.3 step 1: D/d/f get a float-shaped zero,
// everything else an integer zero).
func FirstRelevantChar(t string) (byte, bool) {
	i := skipIrrelevant(t, 0)
	c, atEnd := byteAt(t, i)
	return c, !atEnd
}

func byteAt(s string, i int) (byte, bool) {
	if i >= len(s) {
		return 0, true
	}
	return s[i], false
}

// isHashRelevant is the whitelist consulted in type-dependent-dispatch
// mode: only these characters are mixed into the selector hash, because the
// equality test above treats the rest (and the `*`/`^C` distinction) as
// interchangeable.
func isHashRelevant(c byte) bool {
	switch c {
	case '@', 'i', 'I', 'l', 'L', 'q', 'Q', 's', 'S':
		return true
	}
	return false
}

// HashName computes the djb2 hash of a selector name, matching
// `hash_selector`'s name-only hashing used when type-dependent dispatch is
// disabled (the default): all typed variants of a name collide into the
// same bucket chain, and full equality resolves the chain walk.
func HashName(name string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(name); i++ {
		h = h*33 + uint32(name[i])
	}
	return h
}

// HashNameAndTypes extends HashName by mixing in the type-dependent-dispatch
// whitelist of type characters, for installations that enable
// type-dependent dispatch (selectors with different argument/return types
// hash to different buckets rather than colliding on name alone).
func HashNameAndTypes(name, types string) uint32 {
	h := HashName(name)
	for i := 0; i < len(types); i++ {
		if c := types[i]; isHashRelevant(c) {
			h = h*33 + uint32(c)
		}
	}
	return h
}
