package textnorm

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims edges", in: "  Paracetamol price 50 birr  ", want: "Paracetamol price 50 birr"},
		{name: "keeps interior runs", in: "call  09 12  345 678", want: "call  09 12  345 678"},
		{name: "trims newlines", in: "\n\tstethoscope\n", want: "stethoscope"},
		{name: "empty stays empty", in: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "strips emoji", in: "Glucometer 💉 price 1200 birr", want: "Glucometer  price 1200 birr"},
		{name: "keeps punctuation", in: "BP monitor, price: 900 birr!", want: "BP monitor, price: 900 birr!"},
		{name: "keeps amharic letters", in: "የደም ግፊት መለኪያ price 900 birr", want: "የደም ግፊት መለኪያ price 900 birr"},
		{name: "keeps whitespace inside phone", in: "call 09 12 345 678", want: "call 09 12 345 678"},
		{name: "strips decorative symbols", in: "★Thermometer★ price 150 birr", want: "Thermometer price 150 birr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
