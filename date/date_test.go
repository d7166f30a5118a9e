package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{in: "2025-01-31", want: New(2025, time.January, 31)},
		{in: "2025-7-1", want: New(2025, time.July, 1)},
		{in: "31/01/2025", wantErr: true},
		{in: "", wantErr: true},
		{in: "2025-02-30", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2025, time.January, 32), New(2025, time.February, 1); got != want {
		t.Errorf("New(2025-01-32) = %v, want %v", got, want)
	}
}

func TestZero(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Error("zero Date should report IsZero")
	}
	if d.String() != "" {
		t.Errorf("zero Date String() = %q, want empty", d.String())
	}
	if New(2025, 1, 1).IsZero() {
		t.Error("2025-01-01 should not be zero")
	}
}

func TestJSON(t *testing.T) {
	d := New(2025, time.March, 5)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"2025-03-05"` {
		t.Errorf("Marshal = %s", b)
	}
	var got Date
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if got != d {
		t.Errorf("Unmarshal = %v, want %v", got, d)
	}
}
