package web

import (
	"testing"
	"time"

	"github.com/hooprank/hooprank/model"
)

func TestHeightFormatter(t *testing.T) {
	tests := []struct {
		h    int
		want string
	}{
		{h: 72, want: "6'0\""},
		{h: 75, want: "6'3\""},
		{h: 83, want: "6'11\""},
		{h: 84, want: "7'0\""},
		{h: 88, want: "7'4\""},
		{h: 70, want: "5'10\""},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := heightFormatter(tc.h)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func TestDateFormatter(t *testing.T) {
	tests := []struct {
		d    time.Time
		want string
	}{
		{d: getDate(2025, 6, 10), want: "2025-06-10"},
		{d: getDate(2024, 7, 2), want: "2024-07-02"},
		{d: time.Time{}, want: "Never"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := dateFormatter(tc.d)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func TestYearFormatter(t *testing.T) {
	tests := []struct {
		d    time.Time
		want string
	}{
		{d: getDate(2018, 6, 21), want: "2018"},
		{d: getDate(2014, 6, 26), want: "2014"},
		{d: time.Time{}, want: "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := yearFormatter(tc.d)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func TestMovementFormatter(t *testing.T) {
	up := int32(5)
	down := int32(-3)
	zero := int32(0)

	tests := []struct {
		m    *int32
		want string
	}{
		{m: &up, want: "+5"},
		{m: &down, want: "-3"},
		{m: &zero, want: "—"},
		{m: nil, want: "—"},
	}

	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			got := movementFormatter(tc.m)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func TestTrendFormatter(t *testing.T) {
	tests := []struct {
		trend model.Trend
		want  string
	}{
		{trend: model.TrendRising, want: "▲"},
		{trend: model.TrendFalling, want: "▼"},
		{trend: model.TrendSteady, want: "—"},
	}

	for _, tc := range tests {
		t.Run(string(tc.trend), func(t *testing.T) {
			got := trendFormatter(tc.trend)
			if tc.want != got {
				t.Errorf("expected: '%v', got: '%v'", tc.want, got)
			}
		})
	}
}

func getDate(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
