package paste

import "testing"

func TestMapPayload(t *testing.T) {
	p := NewPayload().
		Set(MIMEPlain, "one").
		Set(MIMEHTML, "<b>one</b>").
		Set(MIMEPlain, "two")

	types := p.Types()
	if len(types) != 2 || types[0] != MIMEPlain || types[1] != MIMEHTML {
		t.Errorf("Types() = %v", types)
	}
	if got := p.GetData(MIMEPlain); got != "two" {
		t.Errorf("GetData(text/plain) = %q, want %q", got, "two")
	}
	if got := p.GetData(MIMELinkPreview); got != "" {
		t.Errorf("GetData(missing) = %q, want empty", got)
	}
	if !HasType(p, MIMEHTML) || HasType(p, MIMELinkPreview) {
		t.Error("HasType mismatch")
	}

	types[0] = "mutated"
	if p.Types()[0] != MIMEPlain {
		t.Error("Types() exposes internal slice")
	}
}

func TestPathString(t *testing.T) {
	if PathLinkPreview.String() != "link-preview" || PathAnchors.String() != "anchors" || PathNone.String() != "none" {
		t.Error("unexpected Path strings")
	}
}
