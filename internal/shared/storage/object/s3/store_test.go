package s3

import "testing"

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "originals/lease.pdf", want: "originals/lease.pdf"},
		{name: "simple prefix", prefix: "docs", key: "originals/lease.pdf", want: "docs/originals/lease.pdf"},
		{name: "prefix trailing slash", prefix: "docs/", key: "originals/lease.pdf", want: "docs/originals/lease.pdf"},
		{name: "prefix and key slashes", prefix: "/docs/", key: "/originals/lease.pdf", want: "docs/originals/lease.pdf"},
		{name: "nested prefix", prefix: "docs/prod", key: "originals/lease.pdf", want: "docs/prod/originals/lease.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

func TestPublicURL(t *testing.T) {
	t.Parallel()

	store := &Store{bucket: "lawdocs", prefix: "docs", region: "eu-west-1"}
	got := store.PublicURL("converted/1-lease agreement.txt")
	want := "https://lawdocs.s3.eu-west-1.amazonaws.com/docs/converted/1-lease%20agreement.txt"
	if got != want {
		t.Fatalf("PublicURL = %q, want %q", got, want)
	}

	noRegion := &Store{bucket: "lawdocs"}
	if got := noRegion.PublicURL("a/b.txt"); got != "https://lawdocs.s3.amazonaws.com/a/b.txt" {
		t.Fatalf("PublicURL without region = %q", got)
	}
}
