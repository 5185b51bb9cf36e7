package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/appengine-ltd/starbuild/internal/build"
)

func wikiServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wiki/Special:CargoExport" || r.URL.Query().Get("format") != "json" {
			http.NotFound(w, r)
			return
		}
		if r.URL.Query().Get("offset") != "0" {
			fmt.Fprint(w, `[]`)
			return
		}
		switch r.URL.Query().Get("tables") {
		case "Infobox":
			fmt.Fprint(w, `[{"name":"Photon Torpedo","type":"Ship Fore Weapon","rarity":"Common","text1":"Kinetic &amp; more"}]`)
		case "Modifiers":
			fmt.Fprint(w, `[{"modifier":"[Acc]","type":["Ship Weapon"],"isepic":0}]`)
		case "Ships":
			fmt.Fprint(w, `[{"name":"Defiant","tier":"6","fore":4,"aft":3,"consolestac":5}]`)
		default:
			http.Error(w, "no table", http.StatusBadRequest)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchSnapshotFromWiki(t *testing.T) {
	srv := wikiServer(t)
	var progress []Progress
	snap, err := FetchSnapshot(context.Background(), srv.URL, FetchOptions{
		Client:     srv.Client(),
		ExtraHosts: []string{"127.0.0.1"},
		OnProgress: func(p Progress) { progress = append(progress, p) },
	})
	if err != nil {
		t.Fatalf("FetchSnapshot: %v", err)
	}
	item, ok := snap.Lookup(build.ForeWeapons, "Photon Torpedo")
	if !ok || item.Tooltip != "Kinetic & more" {
		t.Fatalf("item=%+v ok=%v", item, ok)
	}
	if !snap.ModifierValid(build.ShipWeapon, "[Acc]") {
		t.Fatalf("modifier missing")
	}
	if ship, ok := snap.Ship("Defiant"); !ok || ship.Tier != "T6" || ship.Tac != 5 {
		t.Fatalf("ship=%+v", ship)
	}
	if len(progress) != 3 || progress[0].Table != "Infobox" || progress[0].Rows != 1 {
		t.Fatalf("progress=%+v", progress)
	}
}

func TestFetchRefusesUnsafeURLs(t *testing.T) {
	srv := wikiServer(t)
	ctx := context.Background()
	for _, raw := range []string{
		"http://stowiki.net/wiki/Special:CargoExport",
		"https://example.com/data.json",
		srv.URL + "/wiki/Special:CargoExport",
	} {
		if _, err := Fetch(ctx, raw, FetchOptions{Client: srv.Client()}); err == nil {
			t.Fatalf("Fetch(%q) succeeded", raw)
		}
	}
}

func TestFetchEnforcesSizeCap(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 128))
	}))
	defer srv.Close()
	_, err := Fetch(context.Background(), srv.URL, FetchOptions{Client: srv.Client(), ExtraHosts: []string{"127.0.0.1"}, MaxBytes: 64})
	if err == nil || !strings.Contains(err.Error(), "exceeded") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestCargoURL(t *testing.T) {
	got := CargoURL("https://stowiki.net/", ShipsQuery, 50, 100)
	for _, want := range []string{"https://stowiki.net/wiki/Special:CargoExport?", "tables=Ships", "limit=50", "offset=100", "format=json"} {
		if !strings.Contains(got, want) {
			t.Fatalf("CargoURL=%q missing %q", got, want)
		}
	}
}
