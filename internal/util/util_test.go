package util

import "testing"

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name   string
		items  []string
		expect string
	}{
		{name: "empty", items: []string{}, expect: ""},
		{name: "one", items: []string{"abs"}, expect: "abs"},
		{name: "two", items: []string{"abs", "id"}, expect: "abs and id"},
		{name: "three", items: []string{"abs", "id", "fact"}, expect: "abs, id, and fact"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := MakeTextList(tc.items)
			if got != tc.expect {
				t.Errorf("MakeTextList(%v) = %q, want %q", tc.items, got, tc.expect)
			}
		})
	}
}
