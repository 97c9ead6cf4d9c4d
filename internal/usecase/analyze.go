// Package usecase contains application business logic services.
package usecase

import (
	"context"
	"html"
	"log/slog"
	"math"
	"sort"

	adapterobs "github.com/fairyhunter13/ats-matcher/internal/adapter/observability"
	"github.com/fairyhunter13/ats-matcher/internal/config"
	"github.com/fairyhunter13/ats-matcher/internal/domain"
	"github.com/fairyhunter13/ats-matcher/internal/match"
	"github.com/fairyhunter13/ats-matcher/internal/observability"
	"github.com/fairyhunter13/ats-matcher/internal/taxonomy"
	"github.com/fairyhunter13/ats-matcher/pkg/textx"
)

// previewWords caps the resume preview snippet length.
const previewWords = 120

// AnalyzeInput carries one resume/JD pair plus analysis options.
type AnalyzeInput struct {
	ResumeText string
	JDText     string
	Lenient    bool

	IncludeHighlights bool
	IncludePreview    bool
}

// AnalyzeService orchestrates the scoring pipeline: normalization, skill
// extraction, chunking, embedding similarity, weighted coverage, calibration,
// and mention highlighting.
type AnalyzeService struct {
	reg         *taxonomy.Registry
	params      match.Params
	extractor   *match.Extractor
	scorer      *match.Scorer
	highlighter *match.Highlighter
	engine      *match.Engine
	chunker     *match.TokenChunker
}

// NewAnalyzeService wires the pipeline. engine may be nil-client (degraded
// mode); chunker may be nil to fall back to word chunking.
func NewAnalyzeService(reg *taxonomy.Registry, params match.Params, engine *match.Engine, chunker *match.TokenChunker) *AnalyzeService {
	return &AnalyzeService{
		reg:         reg,
		params:      params,
		extractor:   match.NewExtractor(reg, params),
		scorer:      match.NewScorer(reg, params),
		highlighter: match.NewHighlighter(reg),
		engine:      engine,
		chunker:     chunker,
	}
}

// ParamsFromConfig maps the configured scoring knobs onto pipeline params.
func ParamsFromConfig(cfg config.Config) match.Params {
	return match.Params{
		FuzzyShortThreshold:  cfg.FuzzyShortThreshold,
		FuzzyMediumThreshold: cfg.FuzzyMediumThreshold,
		FuzzyLongThreshold:   cfg.FuzzyLongThreshold,
		MaxSkillsPerCategory: cfg.MaxSkillsPerCategory,
		LenientCutoff:        cfg.LenientCutoff,
		BlendSimilarity:      cfg.BlendSimilarity,
		BlendCoverage:        cfg.BlendCoverage,
		CalibrationScale:     cfg.CalibrationScale,
		CalibrationOffset:    cfg.CalibrationOffset,
		LenientBonus:         cfg.LenientBonus,
		ChunkWords:           cfg.ChunkWords,
		ChunkWordOverlap:     cfg.ChunkWordOverlap,
		ChunkTokens:          cfg.ChunkTokens,
		ChunkTokenOverlap:    cfg.ChunkTokenOverlap,
		ChunkByTokens:        cfg.ChunkByTokens,
		EmbedMaxTokens:       cfg.EmbedMaxTokens,
	}
}

// Analyze scores one resume against one job description. Unusable inputs
// yield a failed result rather than an error; embedding failures degrade to
// coverage-only scoring; highlight failures drop highlights silently. Only
// internal defects surface as errors.
func (s *AnalyzeService) Analyze(ctx context.Context, in AnalyzeInput) (domain.MatchResult, error) {
	lg := observability.LoggerFromContext(ctx)
	if rid := observability.RequestIDFromContext(ctx); rid != "" {
		lg = lg.With(slog.String("request_id", rid))
	}

	resumeRaw := textx.SanitizeText(in.ResumeText)
	jdRaw := textx.SanitizeText(in.JDText)
	resume := match.Normalize(resumeRaw)
	jd := match.Normalize(jdRaw)

	if resume == "" || jd == "" {
		msg := "resume text is empty"
		if resume != "" {
			msg = "job description text is empty"
		}
		adapterobs.ObserveAnalysis(string(domain.AnalysisFailed), 0, 0)
		return domain.MatchResult{Status: domain.AnalysisFailed, Message: msg}, nil
	}

	resumeSkills := s.extractor.ExtractSkills(resume)
	jdSkills := s.extractor.ExtractJDSkills(jdRaw)

	status := domain.AnalysisCompleted
	simPct := 0.0
	if sim, err := s.similarity(ctx, resume, jd); err != nil {
		lg.Warn("similarity unavailable, falling back to coverage-only scoring", slog.Any("error", err))
		status = domain.AnalysisDegraded
	} else {
		simPct = round2(sim * 100)
	}

	covPct, detail := s.scorer.Coverage(resumeSkills, jdSkills)
	if in.Lenient {
		detail = s.applyLenient(resumeSkills, jdSkills, detail)
	}

	final := match.Calibrate(simPct, covPct, in.Lenient, s.params)

	res := domain.MatchResult{
		Status:          status,
		FinalScore:      final,
		Label:           match.Label(final),
		SimilarityPct:   simPct,
		CoveragePct:     covPct,
		Lenient:         in.Lenient,
		ResumeSkills:    resumeSkills,
		JDSkills:        jdSkills,
		Coverage:        detail,
		ResumeWordCount: textx.WordCount(resume),
		JDWordCount:     textx.WordCount(jd),
	}
	if status == domain.AnalysisDegraded {
		res.Message = "semantic similarity unavailable; score reflects skill coverage only"
	}

	if in.IncludeHighlights {
		s.highlight(lg, resumeRaw, jdRaw, resumeSkills, jdSkills, &res)
	}
	if in.IncludePreview {
		res.ResumePreview = html.EscapeString(textx.Preview(resumeRaw, previewWords))
	}

	lg.Info("analysis completed",
		slog.String("status", string(status)),
		slog.Float64("final_score", final),
		slog.Float64("similarity_pct", simPct),
		slog.Float64("coverage_pct", covPct),
		slog.Bool("lenient", in.Lenient),
		slog.Int("resume_skills", len(resumeSkills)),
		slog.Int("jd_skills", len(jdSkills)))
	adapterobs.ObserveAnalysis(string(status), final, covPct)
	return res, nil
}

// similarity chunks both texts and asks the engine for the cross-chunk score.
func (s *AnalyzeService) similarity(ctx context.Context, resume, jd string) (float64, error) {
	if s.engine == nil || !s.engine.Available() {
		return 0, domain.ErrEmbeddingUnavailable
	}
	var resumeChunks, jdChunks []domain.Chunk
	if s.params.ChunkByTokens && s.chunker != nil {
		resumeChunks = s.chunker.Chunk(resume, s.params.ChunkTokens, s.params.ChunkTokenOverlap)
		jdChunks = s.chunker.Chunk(jd, s.params.ChunkTokens, s.params.ChunkTokenOverlap)
	} else {
		resumeChunks = match.ChunkWords(resume, s.params.ChunkWords, s.params.ChunkWordOverlap)
		jdChunks = match.ChunkWords(jd, s.params.ChunkWords, s.params.ChunkWordOverlap)
	}
	resumeTexts := match.ChunkTexts(resumeChunks)
	jdTexts := match.ChunkTexts(jdChunks)
	// Word-windowed chunks can exceed the embedding endpoint's token budget;
	// trim each one when a token encoder is available.
	if s.chunker != nil && s.params.EmbedMaxTokens > 0 {
		for i, t := range resumeTexts {
			resumeTexts[i] = s.chunker.Truncate(t, s.params.EmbedMaxTokens)
		}
		for i, t := range jdTexts {
			jdTexts[i] = s.chunker.Truncate(t, s.params.EmbedMaxTokens)
		}
	}
	sim, _, err := s.engine.SectionSimilarity(ctx, resumeTexts, jdTexts)
	return sim, err
}

// applyLenient rewrites the matched/missing lists using near-spelling
// unification. The coverage percentage is left untouched; leniency is
// reflected in the lists and in the calibration bonus.
func (s *AnalyzeService) applyLenient(resumeSkills, jdSkills []string, detail domain.CoverageDetail) domain.CoverageDetail {
	matched, satisfied := s.scorer.LenientUnify(resumeSkills, jdSkills)

	merged := make(map[string]struct{}, len(detail.Matched)+len(matched))
	for _, skill := range detail.Matched {
		merged[skill] = struct{}{}
	}
	for _, skill := range matched {
		merged[skill] = struct{}{}
	}
	detail.Matched = make([]string, 0, len(merged))
	for skill := range merged {
		detail.Matched = append(detail.Matched, skill)
	}
	sort.Strings(detail.Matched)

	missing := detail.Missing[:0]
	for _, skill := range detail.Missing {
		if _, ok := satisfied[skill]; !ok {
			missing = append(missing, skill)
		}
	}
	detail.Missing = missing
	return detail
}

// highlight renders both texts with skill marks, restricted to the extracted
// skills. A render failure drops highlights without failing the analysis.
func (s *AnalyzeService) highlight(lg *slog.Logger, resumeRaw, jdRaw string, resumeSkills, jdSkills []string, res *domain.MatchResult) {
	resumeOnly := skillSet(resumeSkills)
	jdOnly := skillSet(jdSkills)

	resumeSpans := s.highlighter.FindMentions(resumeRaw, resumeOnly)
	jdSpans := s.highlighter.FindMentions(jdRaw, jdOnly)

	resumeHTML, err := match.Render(resumeRaw, resumeSpans)
	if err != nil {
		lg.Warn("resume highlighting failed", slog.Any("error", err))
		return
	}
	jdHTML, err := match.Render(jdRaw, jdSpans)
	if err != nil {
		lg.Warn("jd highlighting failed", slog.Any("error", err))
		return
	}
	res.ResumeHighlighted = resumeHTML
	res.JDHighlighted = jdHTML
	res.ResumeMentions = resumeSpans
	res.JDMentions = jdSpans
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		set[s] = struct{}{}
	}
	return set
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
