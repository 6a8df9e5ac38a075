package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		region string
		want   string
	}{
		{
			name:   "national number with default region",
			input:  "9876543210",
			region: "IN",
			want:   "+919876543210",
		},
		{
			name:   "national number with spaces",
			input:  "98765 43210",
			region: "IN",
			want:   "+919876543210",
		},
		{
			name:   "already E.164",
			input:  "+919876543210",
			region: "IN",
			want:   "+919876543210",
		},
		{
			name:   "foreign number keeps its country code",
			input:  "+1 (212) 555-1234",
			region: "IN",
			want:   "+12125551234",
		},
		{
			name:   "lower case region",
			input:  "9876543210",
			region: "in",
			want:   "+919876543210",
		},
		{
			name:   "unparseable kept trimmed",
			input:  "  not-a-phone  ",
			region: "IN",
			want:   "not-a-phone",
		},
		{
			name:   "too short kept trimmed",
			input:  " 12345 ",
			region: "IN",
			want:   "12345",
		},
		{
			name:   "empty string",
			input:  "   ",
			region: "IN",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.region)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q, %q) = %q, want %q", tt.input, tt.region, got, tt.want)
			}
			if again := NormalizePhone(got, tt.region); again != got {
				t.Errorf("NormalizePhone is not idempotent: %q -> %q", got, again)
			}
		})
	}
}
