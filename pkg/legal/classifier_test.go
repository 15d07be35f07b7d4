package legal

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "stalking maps to harassment",
			text:     "I was stalked and harassed at work",
			expected: CategoryHarassment,
		},
		{
			name:     "case insensitive",
			text:     "Someone keeps HARASSING me on my commute",
			expected: CategoryHarassment,
		},
		{
			name:     "dowry maps to domestic violence",
			text:     "my in-laws keep demanding dowry",
			expected: CategoryDomesticViolence,
		},
		{
			name:     "stolen maps to theft",
			text:     "my phone was stolen from my bag",
			expected: CategoryTheft,
		},
		{
			name:     "scam maps to fraud",
			text:     "I lost money in an investment scam",
			expected: CategoryFraud,
		},
		{
			name:     "otp maps to cybercrime",
			text:     "someone asked for my OTP and emptied my account",
			expected: CategoryCybercrime,
		},
		{
			name:     "harassment wins over later categories",
			text:     "he harassed me and also stole my wallet",
			expected: CategoryHarassment,
		},
		{
			name:     "unmatched text falls back to general",
			text:     "I have a dispute with my landlord about rent",
			expected: CategoryGeneral,
		},
		{
			name:     "empty message falls back to general",
			text:     "",
			expected: CategoryGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text)
			if got != tt.expected {
				t.Errorf("Classify(%q) = %q, want %q", tt.text, got, tt.expected)
			}
		})
	}
}

func TestClassifyIsStable(t *testing.T) {
	text := "I was stalked and harassed at work"
	first := Classify(text)
	for i := 0; i < 5; i++ {
		if got := Classify(text); got != first {
			t.Fatalf("Classify changed answer on repeat call: %q then %q", first, got)
		}
	}
}
