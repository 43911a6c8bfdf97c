package mdrender

import (
	"errors"
	"strings"
	"testing"
)

func TestBuiltinVariants_Valid(t *testing.T) {
	t.Parallel()

	for _, v := range BuiltinVariants() {
		if err := v.Validate(); err != nil {
			t.Errorf("%s: Validate() error = %v", v.Name, err)
		}
	}
}

func TestVariantValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		variant *Variant
		wantErr bool
	}{
		{"nil", nil, true},
		{"minimal", &Variant{Name: "a"}, false},
		{"digits and separators", &Variant{Name: "blog_v2-dark"}, false},
		{"empty name", &Variant{}, true},
		{"uppercase", &Variant{Name: "Docs"}, true},
		{"path", &Variant{Name: "../x"}, true},
		{"too long", &Variant{Name: strings.Repeat("a", MaxVariantNameLength+1)}, true},
		{"highlight style", &Variant{Name: "a", HighlightStyle: "Monokai"}, false},
		{"unknown style", &Variant{Name: "a", HighlightStyle: "nope"}, true},
		{"https server", &Variant{Name: "a", DiagramServer: "https://uml.local/svg/"}, false},
		{"relative server", &Variant{Name: "a", DiagramServer: "/svg/"}, true},
		{"ftp server", &Variant{Name: "a", DiagramServer: "ftp://uml.local/"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.variant.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidVariant) {
				t.Errorf("Validate() error = %v, want ErrInvalidVariant", err)
			}
		})
	}
}
