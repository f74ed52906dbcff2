package schedule

import (
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	// 2026-08-29 is a Saturday.
	if got := FormatDate("2026-08-29"); got != "שבת, 29 באוגוסט" {
		t.Fatalf("FormatDate = %q, want Hebrew Saturday label", got)
	}
	if got := FormatDate("2026-01-04"); got != "יום ראשון, 4 בינואר" {
		t.Fatalf("FormatDate = %q, want Hebrew Sunday label", got)
	}
	if got := FormatDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("FormatDate passthrough = %q, want input unchanged", got)
	}
}

func TestFormatTime(t *testing.T) {
	cases := []struct{ in, want string }{
		{"09:00:00", "09:00"},
		{"14:30", "14:30"},
		{"garbage", "garbage"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := FormatTime(tc.in); got != tc.want {
			t.Fatalf("FormatTime(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestToday(t *testing.T) {
	if got, want := Today(), time.Now().Format("2006-01-02"); got != want {
		t.Fatalf("Today = %q, want %q", got, want)
	}
}

func TestDateRange(t *testing.T) {
	got := DateRange("2026-08-29", 3)
	want := []string{"2026-08-29", "2026-08-30", "2026-08-31"}
	if len(got) != len(want) {
		t.Fatalf("DateRange = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("DateRange[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if DateRange("bad", 3) != nil {
		t.Fatalf("DateRange with bad input should be nil")
	}
	if DateRange("2026-08-29", 0) != nil {
		t.Fatalf("DateRange with n=0 should be nil")
	}
}
