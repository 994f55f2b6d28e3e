// ABOUTME: Tests for inline formatting, escaping, fragment splitting and MED marker stripping

package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bold", "**hi** there", "<strong>hi</strong> there"},
		{"italic", "take *twice* daily", "take <em>twice</em> daily"},
		{"newline", "line one\nline two", "line one<br>line two"},
		{"combined", "**hi** there\nfriend", "<strong>hi</strong> there<br>friend"},
		{"plain", "no markers here", "no markers here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatInline(tt.in))
		})
	}
}

func TestEscape(t *testing.T) {
	assert.Equal(t, "1 &lt; 2 &amp;&amp; 3 &gt; 2", Escape("1 < 2 && 3 > 2"))
	// Ampersand is escaped first so entities are not double-mangled.
	assert.Equal(t, "&amp;lt;", Escape("&lt;"))
}

func TestUnescape_RoundTrip(t *testing.T) {
	in := "dosage < 2 tablets & > 0"
	assert.Equal(t, in, Unescape(Escape(in)))
}

func TestFragments_TagsStayAtomic(t *testing.T) {
	got := Fragments("<strong>hi</strong> there<br>friend")
	want := []string{"<strong>", "hi", "</strong>", " there", "<br>", "friend"}
	assert.Equal(t, want, got)
}

func TestFragments_PlainText(t *testing.T) {
	assert.Equal(t, []string{"just words"}, Fragments("just words"))
}

func TestStripMedMarkers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"single", "Try [MED:Paracetamol] for the fever", "Try Paracetamol for the fever"},
		{"multiple", "[MED:Aspirin] or [MED:Ibuprofen]", "Aspirin or Ibuprofen"},
		{"none", "rest and fluids", "rest and fluids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripMedMarkers(tt.in))
		})
	}
}

func TestIsMarkup(t *testing.T) {
	assert.True(t, IsMarkup("<hr><h6>card</h6>"))
	assert.True(t, IsMarkup("  <li>padded"))
	assert.False(t, IsMarkup("plain text"))
	assert.False(t, IsMarkup("1 < 2"))
}
