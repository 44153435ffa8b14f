package sanitize

import "testing"

func TestStripHTMLRemovesEncodedTags(t *testing.T) {
	got := StripHTML(" <b>Window</b> seat &lt;script&gt;alert(1)&lt;/script&gt; ")
	if got != "Window seat alert(1)" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestStringsDropsEmptyEntries(t *testing.T) {
	got := Strings([]string{"Bali", " <i></i> ", "Lombok"})
	if len(got) != 2 || got[0] != "Bali" || got[1] != "Lombok" {
		t.Fatalf("unexpected %v", got)
	}
}

func TestTextPtrNil(t *testing.T) {
	if TextPtr(nil) != nil {
		t.Fatal("expected nil")
	}
}
