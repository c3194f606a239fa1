package tracks

import (
	"testing"

	"vidscribe/internal/videourl"
)

func TestSelectPinnedPrefersManual(t *testing.T) {
	catalog := Catalog{Manual: []string{"en"}, Auto: []string{"en", "zh-Hans"}}
	sel, ok := Select(catalog, "en", Priority(videourl.PlatformYouTube))
	if !ok || sel.Language != "en" || sel.Automatic {
		t.Fatalf("got %+v ok=%v", sel, ok)
	}
}

func TestSelectPinnedFallsToAuto(t *testing.T) {
	catalog := Catalog{Auto: []string{"ja"}}
	sel, ok := Select(catalog, "ja", nil)
	if !ok || sel.Language != "ja" || !sel.Automatic {
		t.Fatalf("got %+v ok=%v", sel, ok)
	}
}

func TestSelectPinnedMissingFallsThrough(t *testing.T) {
	catalog := Catalog{Manual: []string{"en"}}
	sel, ok := Select(catalog, "fr", Priority(videourl.PlatformYouTube))
	if !ok || sel.Language != "en" || sel.Automatic {
		t.Fatalf("missing pin should fall through to normal selection, got %+v ok=%v", sel, ok)
	}
	if catalog.Contains("fr") {
		t.Fatal("catalog should not contain the pinned language")
	}
}

func TestSelectManualBeatsAuto(t *testing.T) {
	catalog := Catalog{Manual: []string{"ko"}, Auto: []string{"en"}}
	sel, ok := Select(catalog, "", Priority(videourl.PlatformYouTube))
	if !ok || sel.Language != "ko" || sel.Automatic {
		t.Fatalf("manual tier must win even off-priority, got %+v", sel)
	}
}

func TestSelectWalksPriorityWithinTier(t *testing.T) {
	catalog := Catalog{Auto: []string{"fr", "zh-Hans", "en"}}
	sel, ok := Select(catalog, "", Priority(videourl.PlatformYouTube))
	if !ok || sel.Language != "en" || !sel.Automatic {
		t.Fatalf("priority order should pick en, got %+v", sel)
	}
}

func TestSelectTieBreaksByCatalogOrder(t *testing.T) {
	catalog := Catalog{Auto: []string{"de", "fr"}}
	sel, ok := Select(catalog, "", Priority(videourl.PlatformYouTube))
	if !ok || sel.Language != "de" {
		t.Fatalf("expected first catalog entry, got %+v", sel)
	}
}

func TestSelectEmptyCatalogFails(t *testing.T) {
	if sel, ok := Select(Catalog{}, "", nil); ok {
		t.Fatalf("empty catalog must fail, got %+v", sel)
	}
	if !(Catalog{}).Empty() {
		t.Fatal("Empty() should report true")
	}
}

func TestSelectNeverInventsLanguages(t *testing.T) {
	catalog := Catalog{Manual: []string{"pt"}, Auto: []string{"es"}}
	for _, pinned := range []string{"", "pt", "es", "xx"} {
		sel, ok := Select(catalog, pinned, []string{"zz", "yy"})
		if !ok {
			t.Fatalf("selection should succeed with a non-empty catalog")
		}
		if !catalog.Contains(sel.Language) {
			t.Fatalf("selected %q which is absent from the catalog", sel.Language)
		}
	}
}

func TestPriorityPerPlatform(t *testing.T) {
	if Priority(videourl.PlatformBilibili)[0] != "zh-Hans" {
		t.Fatal("bilibili should prefer simplified Chinese first")
	}
	if Priority(videourl.PlatformYouTube)[0] != "en" {
		t.Fatal("youtube should prefer English first")
	}
	if got := Priority(videourl.PlatformUnknown); len(got) == 0 {
		t.Fatal("unknown platform needs a generic default")
	}
}
