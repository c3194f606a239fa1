package videourl

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		url  string
		want Platform
	}{
		{"https://www.bilibili.com/video/BV1LTUvBLEnA/?spm_id_from=333.788", PlatformBilibili},
		{"https://b23.tv/abc123", PlatformBilibili},
		{"https://www.youtube.com/watch?v=n2to2wIKgDA&si=xQnapfIW6ezQk", PlatformYouTube},
		{"https://youtu.be/n2to2wIKgDA", PlatformYouTube},
		{"https://example.com/video/123", PlatformUnknown},
	}
	for _, tc := range cases {
		if got := Detect(tc.url); got != tc.want {
			t.Fatalf("Detect(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestClean(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{
			"https://www.bilibili.com/video/BV1LTUvBLEnA/?spm_id_from=333.788",
			"https://www.bilibili.com/video/BV1LTUvBLEnA",
		},
		{
			"https://www.bilibili.com/video/av12345678?from=search",
			"https://www.bilibili.com/video/av12345678",
		},
		{
			"https://www.youtube.com/watch?v=n2to2wIKgDA&si=xQnapfIW6ezQk",
			"https://www.youtube.com/watch?v=n2to2wIKgDA",
		},
		{
			"https://youtu.be/n2to2wIKgDA?si=xQnapfIW6ezQk",
			"https://www.youtube.com/watch?v=n2to2wIKgDA",
		},
		{
			"https://example.com/video/123",
			"https://example.com/video/123",
		},
	}
	for _, tc := range cases {
		if got := Clean(tc.url); got != tc.want {
			t.Fatalf("Clean(%q) = %q, want %q", tc.url, got, tc.want)
		}
	}
}

func TestExtractID(t *testing.T) {
	platform, id := ExtractID("https://www.bilibili.com/video/BV1Z6SEBrE1H")
	if platform != PlatformBilibili || id != "BV1Z6SEBrE1H" {
		t.Fatalf("got %q %q", platform, id)
	}
	platform, id = ExtractID("https://youtu.be/n2to2wIKgDA?si=zz")
	if platform != PlatformYouTube || id != "n2to2wIKgDA" {
		t.Fatalf("got %q %q", platform, id)
	}
	platform, id = ExtractID("https://example.com/watch/9")
	if platform != PlatformUnknown || id != "" {
		t.Fatalf("got %q %q", platform, id)
	}
}
