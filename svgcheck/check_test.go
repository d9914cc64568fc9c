package svgcheck

import "testing"

func TestValidateValid(t *testing.T) {
	for _, s := range []string{
		"<svg></svg>",
		`<svg width="10" height="20"></svg>`,
		`<svg><rect/><circle r="2"/></svg>`,
		`<svg><g><custom-element data-x="1"><inner/></custom-element></g></svg>`,
		`<svg title="a > b"><rect fill="url(#g)"/></svg>`,
		`  <svg></svg>  `,
		`<svg width="4"/>`,
		`<svg><!-- <unclosed --><rect/></svg>`,
		`<svg><style><![CDATA[ a < b > c ]]></style></svg>`,
	} {
		if v := Validate(s); !v.Valid {
			t.Errorf("Validate(%q) = %v, want valid", s, v.Reason)
		}
	}
}

func TestValidateInvalid(t *testing.T) {
	cases := []struct {
		in   string
		want Reason
	}{
		{"<svg><rect></svg>", UnmatchedClosingTag},
		{"<rect></rect>", BoundaryMismatch},
		{"<svg><rect/>", BoundaryMismatch},
		{"svg is great", BoundaryMismatch},
		{`<svg width="10></svg>`, UnterminatedQuote},
		{`<svg><g></svg>`, UnmatchedClosingTag},
	}
	for _, c := range cases {
		v := Validate(c.in)
		if v.Valid {
			t.Errorf("Validate(%q) valid, want %v", c.in, c.want)
			continue
		}
		if v.Reason != c.want {
			t.Errorf("Validate(%q) = %v, want %v", c.in, v.Reason, c.want)
		}
	}
}

func TestValidateUnmatchedAtEmptyStack(t *testing.T) {
	// the second closing root arrives when nothing is open
	v := Validate("<svg></svg></svg>")
	if v.Valid || v.Reason != UnmatchedClosingTag {
		t.Errorf("got %+v, want UnmatchedClosingTag", v)
	}
}

func TestValidateUnbalanced(t *testing.T) {
	// closing tags pair with the innermost open tag, so an unclosed
	// wrapper only surfaces at the end of the scan
	v := Validate("<svg><g><rect/></g><g></g></svg>")
	if !v.Valid {
		t.Fatalf("got %v, want valid", v.Reason)
	}
}

func TestReasonStrings(t *testing.T) {
	for r, want := range map[Reason]string{
		None:                "none",
		BoundaryMismatch:    "boundary mismatch",
		UnmatchedClosingTag: "unmatched closing tag",
		UnbalancedDepth:     "unbalanced depth",
		UnterminatedQuote:   "unterminated quote",
	} {
		if r.String() != want {
			t.Errorf("Reason(%d).String() = %q, want %q", r, r.String(), want)
		}
	}
}
