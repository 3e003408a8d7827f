package app

import "testing"

func TestOriginHost(t *testing.T) {
	tests := []struct {
		origin string
		want   string
	}{
		{"https://blog.example.com", "blog.example.com"},
		{"http://localhost:3000", "localhost:3000"},
		{"blog.example.com", "blog.example.com"},
	}
	for _, tt := range tests {
		if got := originHost(tt.origin); got != tt.want {
			t.Errorf("originHost(%q) = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestOriginMatches(t *testing.T) {
	tests := []struct {
		pattern string
		host    string
		want    bool
	}{
		{"blog.example.com", "blog.example.com", true},
		{"blog.example.com", "evil.example.com", false},
		{"*.example.com", "blog.example.com", true},
		{"*.example.com", "example.org", false},
		{"localhost:*", "localhost:3000", true},
		{"localhost:*", "remotehost:3000", false},
	}
	for _, tt := range tests {
		if got := originMatches(tt.pattern, tt.host); got != tt.want {
			t.Errorf("originMatches(%q, %q) = %v, want %v", tt.pattern, tt.host, got, tt.want)
		}
	}
}
