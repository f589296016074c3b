// Package pipeline orchestrates the eight sequential content-generation
// stages of a creative pack. Every stage persists its output before the next
// begins, so a crash mid-run leaves partial, inspectable results.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"adforge/internal/cache"
	"adforge/internal/creative"
	"adforge/internal/domain"
	"adforge/internal/genai"
)

// Generator is the external structured text-generation contract.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt, schema string, out any) error
}

// ProgressFunc receives step-level progress updates during a run.
type ProgressFunc func(step string, percent int)

// Runner drives full pipeline runs and single-section regenerations.
type Runner struct {
	gens    domain.GenerationRepository
	brands  domain.BrandRepository
	gen     Generator
	cache   cache.ResultCache
	retrier *genai.Retrier
	logger  zerolog.Logger
}

func NewRunner(
	gens domain.GenerationRepository,
	brands domain.BrandRepository,
	gen Generator,
	resultCache cache.ResultCache,
	retrier *genai.Retrier,
	logger zerolog.Logger,
) *Runner {
	return &Runner{
		gens:    gens,
		brands:  brands,
		gen:     gen,
		cache:   resultCache,
		retrier: retrier,
		logger:  logger,
	}
}

// Run executes the full eight-stage pipeline for a generation. On a cache
// hit all eight fields are written at once and no stage executes; cost was
// already charged by the caller either way. On failure the generation is
// marked FAILED with the error message here, and the error propagates so the
// caller can reconcile credits.
func (r *Runner) Run(ctx context.Context, generationID string, brief creative.ProductBrief, cfg creative.GenerationConfig, onProgress ProgressFunc) (*creative.Bundle, error) {
	fingerprint := creative.Fingerprint(brief, cfg)

	if cached, ok := r.cache.Get(ctx, fingerprint); ok {
		r.logger.Info().Str("generation_id", generationID).Msg("pipeline: cache hit, skipping all stages")
		if err := r.complete(ctx, generationID, cached); err != nil {
			return nil, err
		}
		report(onProgress, "Done", 100)
		return cached, nil
	}

	bundle, err := r.runStages(ctx, generationID, brief, cfg, onProgress)
	if err != nil {
		if markErr := r.gens.MarkFailed(ctx, generationID, err.Error()); markErr != nil {
			r.logger.Error().Err(markErr).Str("generation_id", generationID).Msg("pipeline: failed to record error state")
		}
		return nil, err
	}

	r.cache.Set(ctx, fingerprint, bundle, cache.DefaultTTL)
	if err := r.complete(ctx, generationID, bundle); err != nil {
		return nil, err
	}
	report(onProgress, "Done", 100)
	return bundle, nil
}

// runStages executes the stages strictly in order, persisting each output
// field before the next stage starts.
func (r *Runner) runStages(ctx context.Context, generationID string, brief creative.ProductBrief, cfg creative.GenerationConfig, onProgress ProgressFunc) (*creative.Bundle, error) {
	bundle := &creative.Bundle{}

	report(onProgress, "Generating hooks", 10)
	hooks, err := r.stageHooks(ctx, brief, cfg, "")
	if err != nil {
		return nil, fmt.Errorf("hooks stage: %w", err)
	}
	bundle.Hooks = hooks
	if err := r.persist(ctx, generationID, domain.SectionHooks, hooks); err != nil {
		return nil, err
	}

	report(onProgress, "Writing scripts", 30)
	scripts, err := r.stageScripts(ctx, brief, cfg, hookTexts(hooks), "")
	if err != nil {
		return nil, fmt.Errorf("scripts stage: %w", err)
	}
	bundle.Scripts = scripts
	if err := r.persist(ctx, generationID, domain.SectionScripts, scripts); err != nil {
		return nil, err
	}

	report(onProgress, "Building shotlist", 45)
	shotlist, err := r.stageShotlist(ctx, brief, cfg, scripts, "")
	if err != nil {
		return nil, fmt.Errorf("shotlist stage: %w", err)
	}
	bundle.Shotlist = shotlist
	if err := r.persist(ctx, generationID, domain.SectionShotlist, shotlist); err != nil {
		return nil, err
	}

	report(onProgress, "Generating voiceover", 55)
	voiceover, err := r.stageVoiceover(ctx, brief, scripts, "")
	if err != nil {
		return nil, fmt.Errorf("voiceover stage: %w", err)
	}
	bundle.Voiceover = voiceover
	if err := r.persist(ctx, generationID, domain.SectionVoiceover, voiceover); err != nil {
		return nil, err
	}

	report(onProgress, "Creating captions", 65)
	captions, err := r.stageCaptions(ctx, voiceover, cfg, "")
	if err != nil {
		return nil, fmt.Errorf("captions stage: %w", err)
	}
	bundle.Captions = captions
	if err := r.persist(ctx, generationID, domain.SectionCaptions, captions); err != nil {
		return nil, err
	}

	report(onProgress, "Generating CTAs", 75)
	ctas, err := r.stageCTAs(ctx, brief, cfg, "")
	if err != nil {
		return nil, fmt.Errorf("ctas stage: %w", err)
	}
	bundle.CTAs = ctas
	if err := r.persist(ctx, generationID, domain.SectionCTAs, ctas); err != nil {
		return nil, err
	}

	report(onProgress, "Handling objections", 85)
	objections, err := r.stageObjectionHandling(ctx, brief, "")
	if err != nil {
		return nil, fmt.Errorf("objection handling stage: %w", err)
	}
	bundle.ObjectionHandling = objections
	if err := r.persist(ctx, generationID, domain.SectionObjectionHandling, objections); err != nil {
		return nil, err
	}

	report(onProgress, "Writing ad copy", 95)
	adCopy, err := r.stageAdCopy(ctx, brief, cfg, hookTexts(hooks), ctas, "")
	if err != nil {
		return nil, fmt.Errorf("ad copy stage: %w", err)
	}
	bundle.AdCopy = adCopy

	return bundle, nil
}

// RegenerateSection rebuilds exactly one section of an existing generation
// using the stored brief context plus the upstream sections it structurally
// depends on. Only the targeted field and updated_at change; the overall
// status is untouched.
func (r *Runner) RegenerateSection(ctx context.Context, generationID string, section domain.Section, instructions string) error {
	g, err := r.gens.GetByID(ctx, generationID)
	if err != nil {
		return err
	}
	brand, err := r.brands.GetByID(ctx, g.BrandID)
	if err != nil {
		return err
	}
	var product *domain.Product
	if g.ProductID != "" {
		product, err = r.brands.GetProduct(ctx, g.ProductID)
		if err != nil {
			return err
		}
	}
	brief := creative.BuildBrief(brand, product, nil)
	cfg := creative.ConfigFromGeneration(g)

	handler, ok := sectionHandlers[section]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSection, section)
	}
	result, err := handler(r, ctx, g, brief, cfg, instructions)
	if err != nil {
		return err
	}
	return r.gens.SaveSection(ctx, generationID, section, result)
}

// sectionHandlers maps each section to its regeneration path. The map covers
// every section, so an unknown name can only come from outside input.
var sectionHandlers = map[domain.Section]func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error){
	domain.SectionHooks: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		hooks, err := r.stageHooks(ctx, brief, cfg, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(hooks)
	},
	domain.SectionScripts: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		var hooks []creative.Hook
		if err := decodeStored(g, domain.SectionHooks, &hooks); err != nil {
			return nil, err
		}
		scripts, err := r.stageScripts(ctx, brief, cfg, hookTexts(hooks), instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(scripts)
	},
	domain.SectionShotlist: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		var scripts []creative.Script
		if err := decodeStored(g, domain.SectionScripts, &scripts); err != nil {
			return nil, err
		}
		shotlist, err := r.stageShotlist(ctx, brief, cfg, scripts, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(shotlist)
	},
	domain.SectionVoiceover: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		var scripts []creative.Script
		if err := decodeStored(g, domain.SectionScripts, &scripts); err != nil {
			return nil, err
		}
		voiceover, err := r.stageVoiceover(ctx, brief, scripts, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(voiceover)
	},
	domain.SectionCaptions: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		var voiceover creative.VoiceoverSet
		if err := decodeStored(g, domain.SectionVoiceover, &voiceover); err != nil {
			return nil, err
		}
		captions, err := r.stageCaptions(ctx, voiceover, cfg, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(captions)
	},
	domain.SectionCTAs: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		ctas, err := r.stageCTAs(ctx, brief, cfg, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(ctas)
	},
	domain.SectionObjectionHandling: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		objections, err := r.stageObjectionHandling(ctx, brief, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(objections)
	},
	domain.SectionAdCopy: func(r *Runner, ctx context.Context, g *domain.Generation, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) (json.RawMessage, error) {
		var hooks []creative.Hook
		if err := decodeStored(g, domain.SectionHooks, &hooks); err != nil {
			return nil, err
		}
		var ctas []creative.CTA
		if err := decodeStored(g, domain.SectionCTAs, &ctas); err != nil {
			return nil, err
		}
		adCopy, err := r.stageAdCopy(ctx, brief, cfg, hookTexts(hooks), ctas, instructions)
		if err != nil {
			return nil, err
		}
		return json.Marshal(adCopy)
	},
}

func (r *Runner) stageHooks(ctx context.Context, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) ([]creative.Hook, error) {
	prompt := creative.BuildHooksPrompt(brief, cfg) + instructionsSuffix(instructions)
	var hooks []creative.Hook
	err := r.retrier.Do(ctx, func() error {
		hooks = nil
		if err := r.gen.GenerateJSON(ctx, prompt, creative.HooksSchema, &hooks); err != nil {
			return err
		}
		if len(hooks) == 0 {
			return fmt.Errorf("%w: no hooks returned", domain.ErrInvalidResponse)
		}
		return nil
	})
	return hooks, err
}

func (r *Runner) stageScripts(ctx context.Context, brief creative.ProductBrief, cfg creative.GenerationConfig, hooks []string, instructions string) ([]creative.Script, error) {
	prompt := creative.BuildScriptsPrompt(brief, cfg, hooks) + instructionsSuffix(instructions)
	var scripts []creative.Script
	err := r.retrier.Do(ctx, func() error {
		scripts = nil
		if err := r.gen.GenerateJSON(ctx, prompt, creative.ScriptsSchema, &scripts); err != nil {
			return err
		}
		if len(scripts) != 3 {
			return fmt.Errorf("%w: expected 3 script variants, got %d", domain.ErrInvalidResponse, len(scripts))
		}
		return nil
	})
	return scripts, err
}

func (r *Runner) stageShotlist(ctx context.Context, brief creative.ProductBrief, cfg creative.GenerationConfig, scripts []creative.Script, instructions string) ([]creative.ShotlistItem, error) {
	prompt := creative.BuildShotlistPrompt(brief, cfg, scripts) + instructionsSuffix(instructions)
	var shotlist []creative.ShotlistItem
	err := r.retrier.Do(ctx, func() error {
		shotlist = nil
		if err := r.gen.GenerateJSON(ctx, prompt, creative.ShotlistSchema, &shotlist); err != nil {
			return err
		}
		if len(shotlist) == 0 {
			return fmt.Errorf("%w: empty shotlist", domain.ErrInvalidResponse)
		}
		return nil
	})
	return shotlist, err
}

func (r *Runner) stageVoiceover(ctx context.Context, brief creative.ProductBrief, scripts []creative.Script, instructions string) (creative.VoiceoverSet, error) {
	prompt := creative.BuildVoiceoverPrompt(brief, scripts) + instructionsSuffix(instructions)
	var voiceover creative.VoiceoverSet
	err := r.retrier.Do(ctx, func() error {
		voiceover = creative.VoiceoverSet{}
		if err := r.gen.GenerateJSON(ctx, prompt, creative.VoiceoverSchema, &voiceover); err != nil {
			return err
		}
		if len(voiceover.Variants) == 0 {
			return fmt.Errorf("%w: no voiceover variants", domain.ErrInvalidResponse)
		}
		return nil
	})
	return voiceover, err
}

func (r *Runner) stageCaptions(ctx context.Context, voiceover creative.VoiceoverSet, cfg creative.GenerationConfig, instructions string) (creative.CaptionSet, error) {
	prompt := creative.BuildCaptionsPrompt(voiceover, cfg) + instructionsSuffix(instructions)
	var captions creative.CaptionSet
	err := r.retrier.Do(ctx, func() error {
		captions = creative.CaptionSet{}
		if err := r.gen.GenerateJSON(ctx, prompt, creative.CaptionsSchema, &captions); err != nil {
			return err
		}
		if len(captions.Variants) == 0 {
			return fmt.Errorf("%w: no caption variants", domain.ErrInvalidResponse)
		}
		return nil
	})
	return captions, err
}

func (r *Runner) stageCTAs(ctx context.Context, brief creative.ProductBrief, cfg creative.GenerationConfig, instructions string) ([]creative.CTA, error) {
	prompt := creative.BuildCTAsPrompt(brief, cfg) + instructionsSuffix(instructions)
	var ctas []creative.CTA
	err := r.retrier.Do(ctx, func() error {
		ctas = nil
		if err := r.gen.GenerateJSON(ctx, prompt, creative.CTAsSchema, &ctas); err != nil {
			return err
		}
		if len(ctas) == 0 {
			return fmt.Errorf("%w: no ctas returned", domain.ErrInvalidResponse)
		}
		return nil
	})
	return ctas, err
}

func (r *Runner) stageObjectionHandling(ctx context.Context, brief creative.ProductBrief, instructions string) ([]creative.ObjectionResponse, error) {
	prompt := creative.BuildObjectionHandlingPrompt(brief) + instructionsSuffix(instructions)
	var objections []creative.ObjectionResponse
	err := r.retrier.Do(ctx, func() error {
		objections = nil
		if err := r.gen.GenerateJSON(ctx, prompt, creative.ObjectionHandlingSchema, &objections); err != nil {
			return err
		}
		if len(objections) == 0 {
			return fmt.Errorf("%w: no objection responses", domain.ErrInvalidResponse)
		}
		return nil
	})
	return objections, err
}

func (r *Runner) stageAdCopy(ctx context.Context, brief creative.ProductBrief, cfg creative.GenerationConfig, hooks []string, ctas []creative.CTA, instructions string) ([]creative.AdCopy, error) {
	prompt := creative.BuildAdCopyPrompt(brief, cfg, hooks, ctas) + instructionsSuffix(instructions)
	var adCopy []creative.AdCopy
	err := r.retrier.Do(ctx, func() error {
		adCopy = nil
		if err := r.gen.GenerateJSON(ctx, prompt, creative.AdCopySchema, &adCopy); err != nil {
			return err
		}
		if len(adCopy) != 2 {
			return fmt.Errorf("%w: expected 2 ad copy blocks, got %d", domain.ErrInvalidResponse, len(adCopy))
		}
		return nil
	})
	return adCopy, err
}

// persist durably commits one stage's output field.
func (r *Runner) persist(ctx context.Context, generationID string, section domain.Section, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", section, err)
	}
	if err := r.gens.SaveSection(ctx, generationID, section, data); err != nil {
		return fmt.Errorf("persist %s: %w", section, err)
	}
	return nil
}

// complete writes all eight fields and flips the record to COMPLETED.
func (r *Runner) complete(ctx context.Context, generationID string, bundle *creative.Bundle) error {
	sections := map[domain.Section]json.RawMessage{}
	for section, value := range map[domain.Section]any{
		domain.SectionHooks:             bundle.Hooks,
		domain.SectionScripts:           bundle.Scripts,
		domain.SectionShotlist:          bundle.Shotlist,
		domain.SectionVoiceover:         bundle.Voiceover,
		domain.SectionCaptions:          bundle.Captions,
		domain.SectionCTAs:              bundle.CTAs,
		domain.SectionObjectionHandling: bundle.ObjectionHandling,
		domain.SectionAdCopy:            bundle.AdCopy,
	} {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", section, err)
		}
		sections[section] = data
	}
	return r.gens.Complete(ctx, generationID, sections)
}

func decodeStored(g *domain.Generation, section domain.Section, out any) error {
	data := g.SectionData(section)
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: stored %s: %v", domain.ErrInvalidResponse, section, err)
	}
	return nil
}

func hookTexts(hooks []creative.Hook) []string {
	texts := make([]string, 0, len(hooks))
	for _, h := range hooks {
		texts = append(texts, h.Text)
	}
	return texts
}

func instructionsSuffix(instructions string) string {
	if instructions == "" {
		return ""
	}
	return "\n\nAdditional instructions: " + instructions
}

func report(onProgress ProgressFunc, step string, percent int) {
	if onProgress != nil {
		onProgress(step, percent)
	}
}
