package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		want  int64
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{50, 50, 1},
	}

	for _, tc := range cases {
		if got := TotalPages(tc.total, tc.limit); got != tc.want {
			t.Fatalf("TotalPages(%d, %d) = %d; want %d", tc.total, tc.limit, got, tc.want)
		}
	}
}

func TestSkip(t *testing.T) {
	if got := Skip(1, 10); got != 0 {
		t.Fatalf("Skip(1,10) = %d", got)
	}
	if got := Skip(3, 10); got != 20 {
		t.Fatalf("Skip(3,10) = %d", got)
	}
}

func TestNewPageEmptyDataEncodesArray(t *testing.T) {
	b, err := json.Marshal(NewPage[Todo](nil, 1, 10, 0))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"data":[],"pagination":{"current_page":1,"per_page":10,"total":0,"total_pages":1}}`
	if string(b) != want {
		t.Fatalf("got %s\nwant %s", b, want)
	}
}

func TestSkipDoesNotOverflow(t *testing.T) {
	cases := []struct {
		page, limit, want int
	}{
		{math.MaxInt, 10, math.MaxInt},
		{math.MaxInt/10 + 2, 10, math.MaxInt},
		{math.MaxInt/10 + 1, 10, math.MaxInt / 10 * 10},
		{5, 0, 0},
		{0, 10, 0},
	}
	for _, tc := range cases {
		if got := Skip(tc.page, tc.limit); got != tc.want {
			t.Fatalf("Skip(%d, %d) = %d; want %d", tc.page, tc.limit, got, tc.want)
		}
	}
}
