package model

import (
	"reflect"
	"testing"
)

func TestWatchlistTickers(t *testing.T) {
	tests := []struct {
		name      string
		watchlist string
		want      []string
	}{
		{"empty", "", []string{}},
		{"single", "AAPL", []string{"AAPL"}},
		{"normalizes_case_and_space", " aapl , msft ", []string{"AAPL", "MSFT"}},
		{"dedupes", "AAPL,aapl,AAPL", []string{"AAPL"}},
		{"drops_empty_segments", "AAPL,,MSFT,", []string{"AAPL", "MSFT"}},
		{"sorted", "MSFT,AAPL,GOOG", []string{"AAPL", "GOOG", "MSFT"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			u := &User{Watchlist: test.watchlist}
			got := u.WatchlistTickers()
			if !reflect.DeepEqual(got, test.want) {
				t.Fatalf("expected %v, got %v", test.want, got)
			}
		})
	}
}

func TestAddTicker(t *testing.T) {
	u := &User{Watchlist: "AAPL,MSFT"}

	if !u.AddTicker("goog") {
		t.Fatal("expected add of new ticker to succeed")
	}
	if u.Watchlist != "AAPL,GOOG,MSFT" {
		t.Fatalf("unexpected watchlist: %q", u.Watchlist)
	}

	// Adding a present ticker is a no-op.
	if u.AddTicker("AAPL") {
		t.Fatal("expected add of existing ticker to be a no-op")
	}
	if u.Watchlist != "AAPL,GOOG,MSFT" {
		t.Fatalf("watchlist mutated by no-op add: %q", u.Watchlist)
	}

	if u.AddTicker("  ") {
		t.Fatal("expected add of blank ticker to be rejected")
	}
}

func TestRemoveTicker(t *testing.T) {
	u := &User{Watchlist: "AAPL,GOOG,MSFT"}

	if !u.RemoveTicker("goog") {
		t.Fatal("expected remove of present ticker to succeed")
	}
	if u.Watchlist != "AAPL,MSFT" {
		t.Fatalf("unexpected watchlist: %q", u.Watchlist)
	}

	// Removing an absent ticker is a no-op.
	if u.RemoveTicker("TSLA") {
		t.Fatal("expected remove of absent ticker to be a no-op")
	}
	if u.Watchlist != "AAPL,MSFT" {
		t.Fatalf("watchlist mutated by no-op remove: %q", u.Watchlist)
	}
}

func TestAddThenRemoveRestoresSet(t *testing.T) {
	u := &User{Watchlist: "AAPL,MSFT"}
	before := u.WatchlistTickers()

	if !u.AddTicker("TSLA") {
		t.Fatal("add failed")
	}
	if !u.RemoveTicker("TSLA") {
		t.Fatal("remove failed")
	}

	after := u.WatchlistTickers()
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected %v, got %v", before, after)
	}
}
