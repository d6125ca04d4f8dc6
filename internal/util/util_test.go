package util_test

import (
	"testing"

	"github.com/stackslip/stackslip/internal/util"
)

func TestGroupThousands(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{28396, "28,396"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
		{-999, "-999"},
	}
	for _, tc := range cases {
		if got := util.GroupThousands(tc.in); got != tc.want {
			t.Errorf("GroupThousands(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatEpoch(t *testing.T) {
	if got := util.FormatEpoch(1577836800); got != "Jan 1, 2020" {
		t.Errorf("FormatEpoch(1577836800) = %q, want Jan 1, 2020", got)
	}
	if got := util.FormatEpoch(0); got != "N/A" {
		t.Errorf("FormatEpoch(0) = %q, want N/A", got)
	}
}

func TestFormatEpochLong(t *testing.T) {
	if got := util.FormatEpochLong(1577836800); got != "Wednesday, January 1, 2020" {
		t.Errorf("FormatEpochLong(1577836800) = %q", got)
	}
	if got := util.FormatEpochLong(0); got != "N/A" {
		t.Errorf("FormatEpochLong(0) = %q, want N/A", got)
	}
}
