package creative

import (
	"strings"
	"testing"

	"adforge/internal/domain"
)

func TestBuildHooksPromptIncludesContext(t *testing.T) {
	prompt := BuildHooksPrompt(sampleBrief(), sampleConfig())

	for _, want := range []string{"Glow Serum", "Lumi", "TikTok", "pain_point", "AVOID: medical claims"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("hooks prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildScriptsPromptCarriesHooksAndDuration(t *testing.T) {
	prompt := BuildScriptsPrompt(sampleBrief(), sampleConfig(), []string{"Hook one", "Hook two"})

	if !strings.Contains(prompt, "1. Hook one") || !strings.Contains(prompt, "2. Hook two") {
		t.Fatalf("scripts prompt missing numbered hooks:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Total duration must be 30 seconds") {
		t.Fatalf("scripts prompt missing duration constraint")
	}
}

func TestBuildAdCopyPromptLimitsHooks(t *testing.T) {
	hooks := []string{"one", "two", "three", "four", "five"}
	prompt := BuildAdCopyPrompt(sampleBrief(), sampleConfig(), hooks, []CTA{{ID: "c1", Text: "Buy now", Type: CTAPrimary}})

	if strings.Contains(prompt, "four") {
		t.Fatalf("ad copy prompt should only carry the top 3 hooks")
	}
	if !strings.Contains(prompt, "Buy now") {
		t.Fatalf("ad copy prompt missing CTA text")
	}
}

func TestLanguageName(t *testing.T) {
	cases := map[string]string{
		"en": "English",
		"de": "German",
	}
	for tag, want := range cases {
		if got := LanguageName(tag); got != want {
			t.Fatalf("LanguageName(%q) = %q, want %q", tag, got, want)
		}
	}
	if got := LanguageName("not-a-tag!"); got != "not-a-tag!" {
		t.Fatalf("unparseable tag should fall back to raw value, got %q", got)
	}
}

func TestBuildBriefPrefersStoredProduct(t *testing.T) {
	brand := &domain.Brand{Name: "Lumi", TargetAudience: "women 20-35", Industry: "cosmetics"}
	product := &domain.Product{Name: "Stored", Description: "stored description"}
	input := &domain.GenerationInput{ProductName: "Fallback", ProductPrice: "9.99"}

	brief := BuildBrief(brand, product, input)
	if brief.ProductName != "Stored" {
		t.Fatalf("expected stored product name, got %q", brief.ProductName)
	}
	// Price missing on product falls back to the request field.
	if brief.ProductPrice != "9.99" {
		t.Fatalf("expected fallback price, got %q", brief.ProductPrice)
	}
}
