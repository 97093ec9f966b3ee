package recommend

import (
	"sort"
	"time"

	"github.com/gemma3n-site/backend/internal/metrics"
)

// UserInput is one form submission. It is scored and discarded.
type UserInput struct {
	RAM        float64    `json:"ram"`
	GPU        string     `json:"gpu"`
	CPU        string     `json:"cpu"`
	UseCase    string     `json:"use_case"`
	Priority   Priority   `json:"priority"`
	Experience Experience `json:"experience"`
}

type Breakdown struct {
	Hardware    float64 `json:"hardware"`
	UseCase     float64 `json:"use_case"`
	Performance float64 `json:"performance"`
	Experience  float64 `json:"experience"`
}

// Score is one ranked result with its per-dimension breakdown and the
// human-readable reasoning that produced it.
type Score struct {
	Model      Model     `json:"model"`
	TotalScore float64   `json:"total_score"`
	Breakdown  Breakdown `json:"breakdown"`
	Reasoning  []string  `json:"reasoning"`
}

// Engine ranks the catalog against user input. It holds only read-only state
// and is safe for concurrent use.
type Engine struct {
	catalog  Catalog
	gpuTiers []KeywordTier
	cpuTiers []KeywordTier
}

type Option func(*Engine)

func WithGPUTiers(tiers []KeywordTier) Option {
	return func(e *Engine) { e.gpuTiers = tiers }
}

func WithCPUTiers(tiers []KeywordTier) Option {
	return func(e *Engine) { e.cpuTiers = tiers }
}

func NewEngine(catalog Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:  catalog,
		gpuTiers: DefaultGPUTiers(),
		cpuTiers: DefaultCPUTiers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend scores every catalog model and returns them sorted descending by
// total score. The sort is stable: equal scores keep catalog order.
func (e *Engine) Recommend(input UserInput) []Score {
	start := time.Now()

	scores := make([]Score, 0, len(e.catalog.Models))
	for i := range e.catalog.Models {
		scores = append(scores, e.score(input, &e.catalog.Models[i]))
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].TotalScore > scores[j].TotalScore
	})

	metrics.RecommendationsTotal.WithLabelValues(input.UseCase).Inc()
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	return scores
}

// TopRecommendation returns the best match, or nil for an empty catalog.
func (e *Engine) TopRecommendation(input UserInput) *Score {
	scores := e.Recommend(input)
	if len(scores) == 0 {
		return nil
	}
	return &scores[0]
}

func (e *Engine) score(input UserInput, model *Model) Score {
	hardware := e.hardwareScore(input, model)
	useCase := e.useCaseScore(input.UseCase, model)
	performance := performanceScore(input.Priority, model)
	experience := experienceScore(input.Experience, model)

	total := hardware.score*weightHardware +
		useCase.score*weightUseCase +
		performance.score*weightPerformance +
		experience.score*weightExperience

	reasoning := make([]string, 0,
		len(hardware.reasoning)+len(useCase.reasoning)+len(performance.reasoning)+len(experience.reasoning))
	reasoning = append(reasoning, hardware.reasoning...)
	reasoning = append(reasoning, useCase.reasoning...)
	reasoning = append(reasoning, performance.reasoning...)
	reasoning = append(reasoning, experience.reasoning...)

	return Score{
		Model:      *model,
		TotalScore: total,
		Breakdown: Breakdown{
			Hardware:    hardware.score,
			UseCase:     useCase.score,
			Performance: performance.score,
			Experience:  experience.score,
		},
		Reasoning: reasoning,
	}
}

// Read-only catalog accessors for UI population.

func (e *Engine) Models() []Model {
	return e.catalog.Models
}

func (e *Engine) HardwareProfiles() []HardwareProfile {
	return e.catalog.HardwareProfiles
}

func (e *Engine) UseCaseProfiles() []UseCaseProfile {
	return e.catalog.UseCaseProfiles
}

func (e *Engine) ModelByID(id string) (*Model, bool) {
	for i := range e.catalog.Models {
		if e.catalog.Models[i].ID == id {
			return &e.catalog.Models[i], true
		}
	}
	return nil, false
}

func (e *Engine) ModelsByUseCase(useCaseID string) []Model {
	var models []Model
	for i := range e.catalog.Models {
		if e.catalog.Models[i].SupportsUseCase(useCaseID) {
			models = append(models, e.catalog.Models[i])
		}
	}
	return models
}
