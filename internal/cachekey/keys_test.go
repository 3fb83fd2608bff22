package cachekey

import (
	"strings"
	"testing"
)

func TestVerification_Deterministic(t *testing.T) {
	k1 := Verification("研究表明该药物有效", "zh-CN")
	k2 := Verification("研究表明该药物有效", "zh-CN")
	if k1 != k2 {
		t.Errorf("repeated calls yielded different keys: %q vs %q", k1, k2)
	}
}

func TestVerification_LanguageChangesKey(t *testing.T) {
	zh := Verification("the study shows efficacy", "zh-CN")
	en := Verification("the study shows efficacy", "en")
	if zh == en {
		t.Errorf("expected different keys for different languages, both %q", zh)
	}
}

func TestVerification_NormalizedVariantsShareKey(t *testing.T) {
	a := Verification("The drug WORKS, really!", "en")
	b := Verification("the   drug works really", "en")
	if a != b {
		t.Errorf("normalized variants should share a key: %q vs %q", a, b)
	}
}

func TestDerive_NamespacesNeverCollide(t *testing.T) {
	text := "identical input text"
	keys := map[Kind]string{
		KindVerify:    Derive(KindVerify, text),
		KindSearch:    Derive(KindSearch, text),
		KindTranslate: Derive(KindTranslate, text),
		KindEmbed:     Derive(KindEmbed, text),
	}

	seen := make(map[string]Kind)
	for kind, key := range keys {
		if !strings.HasPrefix(key, string(kind)+":") {
			t.Errorf("key %q missing %q namespace prefix", key, kind)
		}
		if prev, dup := seen[key]; dup {
			t.Errorf("kinds %q and %q produced the same key %q", prev, kind, key)
		}
		seen[key] = kind
	}
}

func TestDerive_PrefixLength(t *testing.T) {
	key := Derive(KindVerify, "some text", "en")
	parts := strings.SplitN(key, ":", 2)
	if len(parts) != 2 {
		t.Fatalf("key %q not in namespace:hash form", key)
	}
	if len(parts[1]) != hashPrefixLen {
		t.Errorf("hash portion is %d chars, want %d", len(parts[1]), hashPrefixLen)
	}
}

func TestSearch_SourceOrderIrrelevant(t *testing.T) {
	a := Search("climate data", []string{"reuters", "xinhua", "bbc"})
	b := Search("climate data", []string{"bbc", "reuters", "xinhua"})
	if a != b {
		t.Errorf("source order changed the key: %q vs %q", a, b)
	}
}
