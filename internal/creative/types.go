package creative

// HookPattern is the fixed vocabulary of attention patterns.
type HookPattern string

const (
	PatternQuestion    HookPattern = "question"
	PatternStatistic   HookPattern = "statistic"
	PatternControversy HookPattern = "controversy"
	PatternStory       HookPattern = "story"
	PatternPainPoint   HookPattern = "pain_point"
	PatternBenefit     HookPattern = "benefit"
	PatternCuriosity   HookPattern = "curiosity"
	PatternSocialProof HookPattern = "social_proof"
	PatternUrgency     HookPattern = "urgency"
	PatternComparison  HookPattern = "comparison"
)

// Hook is one short attention-grabbing opening line.
type Hook struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Pattern   HookPattern `json:"pattern"`
	Reasoning string      `json:"reasoning"`
}

// Scene is one beat of a video script.
type Scene struct {
	SceneNumber int    `json:"sceneNumber"`
	Duration    int    `json:"duration"`
	Visual      string `json:"visual"`
	Audio       string `json:"audio"`
	Text        string `json:"text,omitempty"`
	BRoll       string `json:"bRoll,omitempty"`
}

// Script is one full video script variant (A, B or C).
type Script struct {
	ID            string  `json:"id"`
	Variant       string  `json:"variant"`
	Hook          string  `json:"hook"`
	Scenes        []Scene `json:"scenes"`
	CTA           string  `json:"cta"`
	TotalDuration int     `json:"totalDuration"`
}

// ShotType enumerates concrete shot categories.
type ShotType string

const (
	ShotTalkingHead     ShotType = "talking_head"
	ShotProduct         ShotType = "product_shot"
	ShotBRoll           ShotType = "b_roll"
	ShotScreenRecording ShotType = "screen_recording"
	ShotLifestyle       ShotType = "lifestyle"
)

// ShotlistItem is one concrete shot derived from the scripts.
type ShotlistItem struct {
	ShotNumber  int      `json:"shotNumber"`
	Type        ShotType `json:"type"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	Notes       string   `json:"notes,omitempty"`
	Equipment   []string `json:"equipment,omitempty"`
}

// VoiceoverSegment is a timestamped slice of spoken text.
type VoiceoverSegment struct {
	Timestamp string `json:"timestamp"`
	Text      string `json:"text"`
}

// VoiceoverVariant is the spoken-text rendition of one script variant.
type VoiceoverVariant struct {
	Variant       string             `json:"variant"`
	FullText      string             `json:"fullText"`
	Segments      []VoiceoverSegment `json:"segments"`
	SpeakingNotes string             `json:"speakingNotes"`
}

// VoiceoverSet holds voiceovers for all script variants.
type VoiceoverSet struct {
	Variants []VoiceoverVariant `json:"variants"`
}

// CaptionHighlight marks an emphasis span in the caption text.
type CaptionHighlight struct {
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Text     string  `json:"text"`
	Emphasis bool    `json:"emphasis"`
}

// CaptionVariant is the timed-subtitle rendition of one voiceover variant.
type CaptionVariant struct {
	Variant     string             `json:"variant"`
	SRT         string             `json:"srt"`
	Plain       string             `json:"plain"`
	Highlighted []CaptionHighlight `json:"highlighted"`
}

// CaptionSet holds captions for all variants.
type CaptionSet struct {
	Variants []CaptionVariant `json:"variants"`
}

// CTAType enumerates call-to-action categories.
type CTAType string

const (
	CTAPrimary     CTAType = "primary"
	CTASoft        CTAType = "soft"
	CTAUrgency     CTAType = "urgency"
	CTABenefit     CTAType = "benefit"
	CTASocialProof CTAType = "social_proof"
)

// CTA is one call-to-action line.
type CTA struct {
	ID   string  `json:"id"`
	Text string  `json:"text"`
	Type CTAType `json:"type"`
}

// ObjectionTone enumerates response delivery tones.
type ObjectionTone string

const (
	ToneEmpathetic ObjectionTone = "empathetic"
	ToneConfident  ObjectionTone = "confident"
	ToneFactual    ObjectionTone = "factual"
)

// ObjectionResponse answers one standard customer objection.
type ObjectionResponse struct {
	Objection string        `json:"objection"`
	Response  string        `json:"response"`
	Tone      ObjectionTone `json:"tone"`
}

// AdCopy is one platform-specific paid-ads copy block.
type AdCopy struct {
	Platform    string `json:"platform"`
	PrimaryText string `json:"primaryText"`
	Headline    string `json:"headline"`
	Description string `json:"description,omitempty"`
}

// Bundle is the full eight-field result of a generation, as cached and as
// written onto the generation record.
type Bundle struct {
	Hooks             []Hook              `json:"hooks"`
	Scripts           []Script            `json:"scripts"`
	Shotlist          []ShotlistItem      `json:"shotlist"`
	Voiceover         VoiceoverSet        `json:"voiceover"`
	Captions          CaptionSet          `json:"captions"`
	CTAs              []CTA               `json:"ctas"`
	ObjectionHandling []ObjectionResponse `json:"objectionHandling"`
	AdCopy            []AdCopy            `json:"adCopy"`
}
