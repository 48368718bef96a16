package organizations

import "testing"

func TestNormalizeNameKey(t *testing.T) {
	// 合成済み/結合文字/大文字小文字の揺れを同一キーに畳む
	composed := "Café Sales"
	decomposed := "Café Sales"
	upper := "CAFÉ SALES"

	key := NormalizeNameKey(composed)
	if got := NormalizeNameKey(decomposed); got != key {
		t.Errorf("decomposed key = %q, want %q", got, key)
	}
	if got := NormalizeNameKey(upper); got != key {
		t.Errorf("upper key = %q, want %q", got, key)
	}
	if got := NormalizeNameKey("  " + composed + "  "); got != key {
		t.Errorf("untrimmed key = %q, want %q", got, key)
	}
	if NormalizeNameKey("Support Desk") == key {
		t.Error("distinct names collapsed to the same key")
	}
}
