package domain

import (
	"testing"
)

// FuzzParsePetID checks that parsing arbitrary path input never panics and
// never returns both a usable ID and an error.
func FuzzParsePetID(f *testing.F) {
	f.Add("")
	f.Add("550e8400-e29b-41d4-a716-446655440000")
	f.Add("00000000-0000-0000-0000-000000000000")
	f.Add("not-a-uuid")
	f.Add("'; DROP TABLE dogs;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))
	f.Add("550e8400-e29b-41d4-a716-446655440000\x00suffix")

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParsePetID(input)
		if err == nil && id.IsNil() {
			t.Errorf("ParsePetID(%q) returned a nil ID without an error", input)
		}
		if err != nil && !id.IsNil() {
			t.Errorf("ParsePetID(%q) returned both an ID and an error", input)
		}
	})
}
