package cmd

import (
	"testing"
	"time"
)

func TestDetectExportFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		path string
		want string
	}{
		{"./report.csv", "csv"},
		{"./report.CSV", "csv"},
		{"./report.xlsx", "excel"},
		{"./report.xlsm", "excel"},
		{"./report.xls", "excel"},
		{"./report.out", "csv"},
		{"", "csv"},
	}

	for _, tc := range cases {
		if got := detectExportFormat(tc.path); got != tc.want {
			t.Fatalf("detectExportFormat(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestResolveExportPeriod(t *testing.T) {
	t.Parallel()

	year, month, err := resolveExportPeriod(2026, 3)
	if err != nil {
		t.Fatalf("resolve valid period: %v", err)
	}
	if year != 2026 || month != time.March {
		t.Fatalf("unexpected period: %d-%v", year, month)
	}

	if _, _, err := resolveExportPeriod(2026, 0); err == nil {
		t.Fatal("expected error for month 0")
	}
	if _, _, err := resolveExportPeriod(2026, 13); err == nil {
		t.Fatal("expected error for month 13")
	}
	if _, _, err := resolveExportPeriod(199, 3); err == nil {
		t.Fatal("expected error for implausible year")
	}
}
