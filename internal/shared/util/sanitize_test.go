package util

import "testing"

func TestSanitizeFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "lease.pdf", want: "lease.pdf"},
		{name: "spaces kept", in: "lease agreement.pdf", want: "lease agreement.pdf"},
		{name: "slashes replaced", in: "a/b\\c.pdf", want: "a_b_c.pdf"},
		{name: "traversal rejected", in: "../etc/passwd", wantErr: true},
		{name: "blank rejected", in: "   ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := SanitizeFileName(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("SanitizeFileName(%q): expected error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizeFileName(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
