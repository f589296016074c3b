package creative

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"adforge/internal/domain"
)

var platformNames = map[domain.Platform]string{
	domain.PlatformTikTok:         "TikTok",
	domain.PlatformInstagramReels: "Instagram Reels",
	domain.PlatformYouTubeShorts:  "YouTube Shorts",
}

var goalDescriptions = map[domain.Goal]string{
	domain.GoalSales:      "direct sales and conversions",
	domain.GoalLeads:      "lead generation and contact requests",
	domain.GoalAppInstall: "app downloads and installs",
	domain.GoalAwareness:  "brand awareness and reach",
	domain.GoalEngagement: "interaction and community building",
}

var styleDescriptions = map[domain.Style]string{
	domain.StyleCasual:       "casual, authentic, like a friend recommending something",
	domain.StyleProfessional: "serious, trustworthy, expert positioning",
	domain.StyleGenZ:         "trendy, meme-worthy, slang, very fast paced",
	domain.StyleHumorous:     "funny, entertaining, self-deprecating",
	domain.StyleEmotional:    "touching, story-driven, problem and resolution",
	domain.StyleEducational:  "informative, value-focused, tutorial-like",
}

// LanguageName resolves a BCP 47 tag to its English display name for use in
// prompts. Unparseable tags fall back to the raw value.
func LanguageName(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return tag
	}
	if name := display.English.Languages().Name(t); name != "" {
		return name
	}
	return tag
}

func platformName(p domain.Platform) string {
	if name, ok := platformNames[p]; ok {
		return name
	}
	return string(p)
}

func joinOr(values []string, fallback string) string {
	if len(values) == 0 {
		return fallback
	}
	return strings.Join(values, ", ")
}

func orUnset(v string) string {
	if v == "" {
		return "not specified"
	}
	return v
}

func avoidLine(noGos []string) string {
	if len(noGos) == 0 {
		return ""
	}
	return "- AVOID: " + strings.Join(noGos, ", ") + "\n"
}

func numbered(items []string) string {
	var b strings.Builder
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item)
	}
	return strings.TrimRight(b.String(), "\n")
}

func asJSON(v any) string {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(raw)
}

// BuildHooksPrompt asks for 10 hook variants across the pattern vocabulary.
func BuildHooksPrompt(brief ProductBrief, cfg GenerationConfig) string {
	return fmt.Sprintf(`Create 10 distinct hook variants for a %s ad.

PRODUCT/SERVICE:
- Name: %s
- Description: %s
- Price: %s
- Benefits: %s

BRAND:
- Name: %s
- Target audience: %s
- Tonality: %s
- USPs: %s

CONFIGURATION:
- Platform: %s
- Goal: %s
- Style: %s
- Language: %s

HOOK CATEGORIES (use a mix):
1. question - a question that sparks curiosity
2. statistic - a surprising number or statistic
3. controversy - a controversial or unexpected statement
4. story - a mini-story opener ("When I...")
5. pain_point - directly naming a problem
6. benefit - an immediate payoff
7. curiosity - a curiosity gap
8. social_proof - social evidence
9. urgency - time pressure
10. comparison - before/after comparison

IMPORTANT:
- Every hook must be speakable in 2-3 seconds
- Sound authentic, not like an ad
%s
Respond as a JSON array.`,
		platformName(cfg.Platform),
		brief.ProductName,
		brief.ProductDescription,
		orUnset(brief.ProductPrice),
		joinOr(brief.Benefits, "not specified"),
		brief.BrandName,
		brief.TargetAudience,
		joinOr(brief.Tonality, "not specified"),
		joinOr(brief.USPs, "not specified"),
		platformName(cfg.Platform),
		goalDescriptions[cfg.Goal],
		styleDescriptions[cfg.Style],
		LanguageName(cfg.Language),
		avoidLine(brief.NoGos),
	)
}

// BuildScriptsPrompt asks for exactly 3 script variants built on the hooks.
func BuildScriptsPrompt(brief ProductBrief, cfg GenerationConfig, hooks []string) string {
	reviews := brief.Reviews
	if len(reviews) > 3 {
		reviews = reviews[:3]
	}
	return fmt.Sprintf(`Create 3 complete video scripts (A, B, C) for a %s ad.

PRODUCT/SERVICE:
- Name: %s
- Description: %s
- Price: %s
- Benefits: %s
- Common objections: %s
- Customer reviews: %s

BRAND:
- Name: %s
- Target audience: %s
- Tonality: %s

CONFIGURATION:
- Platform: %s
- Goal: %s
- Style: %s
- Duration: %d seconds
- Language: %s

AVAILABLE HOOKS (pick the strongest):
%s

STRUCTURE FOR EVERY SCRIPT:
1. Hook (2-3 sec) - grab attention
2. Problem (3-5 sec) - amplify the pain point
3. Solution (5-8 sec) - the product as the answer
4. Proof (5-8 sec) - social proof or result
5. CTA (3-5 sec) - a clear call to action

Every scene needs:
- sceneNumber: number
- duration: seconds
- visual: what is on screen
- audio: what is spoken
- text: on-screen text (optional)
- bRoll: b-roll suggestions (optional)

IMPORTANT:
- Total duration must be %d seconds
- Authentic, not salesy
%s
Respond as a JSON array.`,
		platformName(cfg.Platform),
		brief.ProductName,
		brief.ProductDescription,
		orUnset(brief.ProductPrice),
		joinOr(brief.Benefits, "not specified"),
		joinOr(brief.Objections, "not specified"),
		joinOr(reviews, "not specified"),
		brief.BrandName,
		brief.TargetAudience,
		joinOr(brief.Tonality, "not specified"),
		platformName(cfg.Platform),
		goalDescriptions[cfg.Goal],
		styleDescriptions[cfg.Style],
		cfg.Duration,
		LanguageName(cfg.Language),
		numbered(hooks),
		cfg.Duration,
		avoidLine(brief.NoGos),
	)
}

// BuildShotlistPrompt derives concrete shots from the finished scripts.
func BuildShotlistPrompt(brief ProductBrief, cfg GenerationConfig, scripts []Script) string {
	return fmt.Sprintf(`Create a detailed shotlist / filming guide for UGC content.

PRODUCT: %s
BRAND: %s
PLATFORM: %s
STYLE: %s
DURATION: %d seconds

SCRIPTS:
%s

For every shot needed provide:
- shotNumber: number
- type: talking_head | product_shot | b_roll | screen_recording | lifestyle
- description: exactly what to film
- duration: seconds
- notes: filming tips
- equipment: required equipment

Include tips for:
- Lighting (natural vs. ring light)
- Camera angles
- Audio quality
- Authenticity

Respond as a JSON array.`,
		brief.ProductName,
		brief.BrandName,
		platformName(cfg.Platform),
		styleDescriptions[cfg.Style],
		cfg.Duration,
		asJSON(scripts),
	)
}

// BuildVoiceoverPrompt asks for speakable renditions of the scripts.
func BuildVoiceoverPrompt(brief ProductBrief, scripts []Script) string {
	return fmt.Sprintf(`Create ready-to-record voiceover text based on the scripts.

PRODUCT: %s
BRAND: %s
TONALITY: %s

SCRIPTS:
%s

For every script variant provide:
- variant: A, B or C
- fullText: the complete voiceover text in one piece
- segments: array of { timestamp, text } per passage
- speakingNotes: tips for emphasis, pauses, pacing

The text must:
- Sound natural when spoken
- Match the timing
- Carry emotional accents

Respond as JSON.`,
		brief.ProductName,
		brief.BrandName,
		joinOr(brief.Tonality, "not specified"),
		asJSON(scripts),
	)
}

// BuildCaptionsPrompt derives SRT subtitles from the voiceover.
func BuildCaptionsPrompt(voiceover VoiceoverSet, cfg GenerationConfig) string {
	return fmt.Sprintf(`Create subtitles in SRT format based on the voiceover.

VOICEOVER:
%s

PLATFORM: %s
DURATION: %d seconds

Provide:
- srt: full SRT-format text
- plain: the text only, without timestamps
- highlighted: array of { start, end, text, emphasis } for highlight words

RULES:
- Max 2 lines per subtitle block
- Max 42 characters per line
- Mark important words with emphasis
- Align timing precisely with the spoken words

Respond as JSON.`,
		asJSON(voiceover),
		platformName(cfg.Platform),
		cfg.Duration,
	)
}

// BuildCTAsPrompt asks for call-to-action variants across the type set.
func BuildCTAsPrompt(brief ProductBrief, cfg GenerationConfig) string {
	return fmt.Sprintf(`Create 8 CTA (call-to-action) variants.

PRODUCT: %s
BRAND: %s
PRICE: %s
GOAL: %s

Create CTAs across these categories:
1. primary - direct, clear CTA
2. soft - gentle, low-threshold CTA
3. urgency - with time pressure
4. benefit - payoff-focused
5. social_proof - with social evidence

Every CTA needs:
- id: unique id
- text: the CTA line
- type: category

%sRespond as a JSON array.`,
		brief.ProductName,
		brief.BrandName,
		orUnset(brief.ProductPrice),
		goalDescriptions[cfg.Goal],
		avoidLine(brief.NoGos),
	)
}

// BuildObjectionHandlingPrompt covers the fixed standard objection list.
func BuildObjectionHandlingPrompt(brief ProductBrief) string {
	reviews := brief.Reviews
	if len(reviews) > 3 {
		reviews = reviews[:3]
	}
	return fmt.Sprintf(`Create objection-handling lines for common customer concerns.

PRODUCT: %s
PRICE: %s
KNOWN OBJECTIONS: %s
CUSTOMER REVIEWS: %s

Handle these standard objections:
1. Price too high
2. I don't need it
3. It won't work
4. Too complicated
5. Trust / legitimacy
6. Shipping / delivery
7. Returns / guarantee
8. Compared to alternatives

For every objection provide:
- objection: the concern
- response: a short, convincing answer (max 2 sentences)
- tone: empathetic | confident | factual

Respond as a JSON array.`,
		brief.ProductName,
		orUnset(brief.ProductPrice),
		joinOr(brief.Objections, "not specified"),
		joinOr(reviews, "not specified"),
	)
}

// BuildAdCopyPrompt builds the two platform copy blocks from hooks and CTAs.
func BuildAdCopyPrompt(brief ProductBrief, cfg GenerationConfig, hooks []string, ctas []CTA) string {
	top := hooks
	if len(top) > 3 {
		top = top[:3]
	}
	return fmt.Sprintf(`Create ad copy for Meta and TikTok ads.

PRODUCT: %s
DESCRIPTION: %s
BENEFITS: %s
PRICE: %s
TARGET AUDIENCE: %s

BEST HOOKS:
%s

CTAS:
%s

Create for each platform:
1. Meta (Facebook/Instagram):
   - primaryText: main text (max 125 characters for best performance)
   - headline: headline (max 40 characters)
   - description: link description (max 30 characters)

2. TikTok:
   - primaryText: spark ad text (max 150 characters)
   - headline: short headline
   - description: optional

STYLE: %s
%s
Respond as a JSON array with 2 objects (Meta, TikTok).`,
		brief.ProductName,
		brief.ProductDescription,
		joinOr(brief.Benefits, "not specified"),
		orUnset(brief.ProductPrice),
		brief.TargetAudience,
		numbered(top),
		asJSON(ctas),
		styleDescriptions[cfg.Style],
		avoidLine(brief.NoGos),
	)
}

// Schema descriptions handed to the generator so it returns parseable JSON.
const (
	HooksSchema = `[{
  "id": "string",
  "text": "string (the hook line)",
  "pattern": "question|statistic|controversy|story|pain_point|benefit|curiosity|social_proof|urgency|comparison",
  "reasoning": "string (why this hook works)"
}]`

	ScriptsSchema = `[{
  "id": "string",
  "variant": "A|B|C",
  "hook": "string",
  "scenes": [{
    "sceneNumber": number,
    "duration": number,
    "visual": "string",
    "audio": "string",
    "text": "string (optional)",
    "bRoll": "string (optional)"
  }],
  "cta": "string",
  "totalDuration": number
}]`

	ShotlistSchema = `[{
  "shotNumber": number,
  "type": "talking_head|product_shot|b_roll|screen_recording|lifestyle",
  "description": "string",
  "duration": number,
  "notes": "string (optional)",
  "equipment": ["string"] (optional)
}]`

	VoiceoverSchema = `{
  "variants": [{
    "variant": "A|B|C",
    "fullText": "string",
    "segments": [{ "timestamp": "00:00", "text": "string" }],
    "speakingNotes": "string"
  }]
}`

	CaptionsSchema = `{
  "variants": [{
    "variant": "A|B|C",
    "srt": "string (SRT format)",
    "plain": "string",
    "highlighted": [{ "start": number, "end": number, "text": "string", "emphasis": boolean }]
  }]
}`

	CTAsSchema = `[{
  "id": "string",
  "text": "string",
  "type": "primary|soft|urgency|benefit|social_proof"
}]`

	ObjectionHandlingSchema = `[{
  "objection": "string",
  "response": "string",
  "tone": "empathetic|confident|factual"
}]`

	AdCopySchema = `[{
  "platform": "Meta|TikTok",
  "primaryText": "string",
  "headline": "string",
  "description": "string (optional)"
}]`
)
