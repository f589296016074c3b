package domain

import (
	"encoding/json"
	"time"
)

// Platform enumerates supported short-video ad platforms.
type Platform string

const (
	PlatformTikTok         Platform = "TIKTOK"
	PlatformInstagramReels Platform = "INSTAGRAM_REELS"
	PlatformYouTubeShorts  Platform = "YOUTUBE_SHORTS"
)

// Goal enumerates campaign objectives.
type Goal string

const (
	GoalSales      Goal = "SALES"
	GoalLeads      Goal = "LEADS"
	GoalAppInstall Goal = "APP_INSTALL"
	GoalAwareness  Goal = "AWARENESS"
	GoalEngagement Goal = "ENGAGEMENT"
)

// Style enumerates creative delivery styles.
type Style string

const (
	StyleCasual       Style = "CASUAL"
	StyleProfessional Style = "PROFESSIONAL"
	StyleGenZ         Style = "GENZ"
	StyleHumorous     Style = "HUMOROUS"
	StyleEmotional    Style = "EMOTIONAL"
	StyleEducational  Style = "EDUCATIONAL"
)

// GenerationStatus enumerates the generation record lifecycle.
type GenerationStatus string

const (
	GenerationPending    GenerationStatus = "PENDING"
	GenerationProcessing GenerationStatus = "PROCESSING"
	GenerationCompleted  GenerationStatus = "COMPLETED"
	GenerationFailed     GenerationStatus = "FAILED"
)

// Section identifies one of the eight output fields of a generation.
type Section string

const (
	SectionHooks             Section = "hooks"
	SectionScripts           Section = "scripts"
	SectionShotlist          Section = "shotlist"
	SectionVoiceover         Section = "voiceover"
	SectionCaptions          Section = "captions"
	SectionCTAs              Section = "ctas"
	SectionObjectionHandling Section = "objectionHandling"
	SectionAdCopy            Section = "adCopy"
)

// Sections lists all output sections in pipeline order.
var Sections = []Section{
	SectionHooks,
	SectionScripts,
	SectionShotlist,
	SectionVoiceover,
	SectionCaptions,
	SectionCTAs,
	SectionObjectionHandling,
	SectionAdCopy,
}

// ParseSection validates a client-supplied section name.
func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", ErrUnknownSection
}

// Generation is the durable record of one creative pack request. The eight
// output fields are stored as raw JSON and populated one by one as the
// pipeline advances, so readers always observe a monotonically growing set.
type Generation struct {
	ID         string
	TeamID     string
	UserID     string
	BrandID    string
	ProductID  string
	TemplateID string

	Platform Platform
	Goal     Goal
	Style    Style
	Duration int
	Language string

	Status GenerationStatus

	Hooks             json.RawMessage
	Scripts           json.RawMessage
	Shotlist          json.RawMessage
	Voiceover         json.RawMessage
	Captions          json.RawMessage
	CTAs              json.RawMessage
	ObjectionHandling json.RawMessage
	AdCopy            json.RawMessage

	CreditsUsed  int
	ErrorMessage string
	JobID        string

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// SectionData returns the stored raw JSON for a section.
func (g *Generation) SectionData(s Section) json.RawMessage {
	switch s {
	case SectionHooks:
		return g.Hooks
	case SectionScripts:
		return g.Scripts
	case SectionShotlist:
		return g.Shotlist
	case SectionVoiceover:
		return g.Voiceover
	case SectionCaptions:
		return g.Captions
	case SectionCTAs:
		return g.CTAs
	case SectionObjectionHandling:
		return g.ObjectionHandling
	case SectionAdCopy:
		return g.AdCopy
	}
	return nil
}

// SetSectionData stores raw JSON for a section on the in-memory record.
func (g *Generation) SetSectionData(s Section, data json.RawMessage) {
	switch s {
	case SectionHooks:
		g.Hooks = data
	case SectionScripts:
		g.Scripts = data
	case SectionShotlist:
		g.Shotlist = data
	case SectionVoiceover:
		g.Voiceover = data
	case SectionCaptions:
		g.Captions = data
	case SectionCTAs:
		g.CTAs = data
	case SectionObjectionHandling:
		g.ObjectionHandling = data
	case SectionAdCopy:
		g.AdCopy = data
	}
}

// GenerationInput carries the request payload for a new generation. Product
// fields are fallbacks used when the generation has no stored product.
type GenerationInput struct {
	BrandID    string `json:"brandId"`
	ProductID  string `json:"productId,omitempty"`
	TemplateID string `json:"templateId,omitempty"`

	Platform Platform `json:"platform"`
	Goal     Goal     `json:"goal"`
	Style    Style    `json:"style"`
	Duration int      `json:"duration"`
	Language string   `json:"language"`

	ProductName        string   `json:"productName,omitempty"`
	ProductDescription string   `json:"productDescription,omitempty"`
	ProductPrice       string   `json:"productPrice,omitempty"`
	ProductBenefits    []string `json:"productBenefits,omitempty"`
	ProductObjections  []string `json:"productObjections,omitempty"`
}

// Normalize applies request defaults and clamps the duration to the
// supported 15-60 second window.
func (in *GenerationInput) Normalize() {
	if in.Platform == "" {
		in.Platform = PlatformTikTok
	}
	if in.Goal == "" {
		in.Goal = GoalSales
	}
	if in.Style == "" {
		in.Style = StyleCasual
	}
	if in.Duration == 0 {
		in.Duration = 30
	}
	if in.Duration < 15 {
		in.Duration = 15
	}
	if in.Duration > 60 {
		in.Duration = 60
	}
	if in.Language == "" {
		in.Language = "en"
	}
}
