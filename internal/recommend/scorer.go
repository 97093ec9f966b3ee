package recommend

import (
	"fmt"
	"strings"
)

// Sub-score weights. Bonuses are additive with no clamp, so an exceptional
// match can push a sub-score past 100 and dominate the ranking.
const (
	weightHardware    = 0.35
	weightUseCase     = 0.35
	weightPerformance = 0.20
	weightExperience  = 0.10

	weightRAM = 0.4
	weightGPU = 0.3
	weightCPU = 0.3
)

// KeywordTier maps free-text hardware descriptions to a score. Tiers are
// evaluated in order; the first keyword hit wins.
type KeywordTier struct {
	Keywords []string
	Score    float64
	Reason   string
}

func DefaultGPUTiers() []KeywordTier {
	return []KeywordTier{
		{Keywords: []string{"rtx", "gtx"}, Score: 95, Reason: "Dedicated NVIDIA GPU detected - excellent for AI inference"},
		{Keywords: []string{"amd", "radeon"}, Score: 85, Reason: "Dedicated AMD GPU detected - good for AI inference"},
		{Keywords: []string{"integrated", "intel"}, Score: 60, Reason: "Integrated graphics detected - CPU-based inference will be used"},
		{Keywords: []string{"mobile", "mali"}, Score: 50, Reason: "Mobile GPU detected - limited AI acceleration"},
	}
}

func DefaultCPUTiers() []KeywordTier {
	return []KeywordTier{
		{Keywords: []string{"i9", "ryzen 9"}, Score: 95, Reason: "High-end CPU detected - excellent performance"},
		{Keywords: []string{"i7", "ryzen 7"}, Score: 85, Reason: "Mid-high CPU detected - good performance"},
		{Keywords: []string{"i5", "ryzen 5"}, Score: 75, Reason: "Mid-range CPU detected - moderate performance"},
		{Keywords: []string{"i3", "ryzen 3"}, Score: 60, Reason: "Entry-level CPU detected - limited performance"},
		{Keywords: []string{"mobile", "m"}, Score: 50, Reason: "Mobile CPU detected - power-efficient but slower"},
	}
}

type subScore struct {
	score     float64
	reasoning []string
}

func classifyKeyword(text string, tiers []KeywordTier, fallbackReason string) subScore {
	lower := strings.ToLower(text)
	for _, tier := range tiers {
		for _, kw := range tier.Keywords {
			if strings.Contains(lower, kw) {
				return subScore{score: tier.Score, reasoning: []string{tier.Reason}}
			}
		}
	}
	return subScore{score: 70, reasoning: []string{fallbackReason}}
}

func (e *Engine) hardwareScore(input UserInput, model *Model) subScore {
	ram := ramScore(input.RAM, model.Memory)
	gpu := e.gpuScore(input.GPU, model)
	cpu := e.cpuScore(input.CPU)

	score := ram.score*weightRAM + gpu.score*weightGPU + cpu.score*weightCPU

	reasoning := make([]string, 0, len(ram.reasoning)+len(gpu.reasoning)+len(cpu.reasoning))
	reasoning = append(reasoning, ram.reasoning...)
	reasoning = append(reasoning, gpu.reasoning...)
	reasoning = append(reasoning, cpu.reasoning...)

	return subScore{score: score, reasoning: reasoning}
}

func ramScore(userRAM float64, memory MemorySpec) subScore {
	switch {
	case userRAM >= memory.Optimal:
		return subScore{score: 100, reasoning: []string{
			fmt.Sprintf("Your %gGB RAM exceeds optimal requirements (%gGB)", userRAM, memory.Optimal),
		}}
	case userRAM >= memory.Recommended:
		return subScore{score: 85, reasoning: []string{
			fmt.Sprintf("Your %gGB RAM meets recommended requirements (%gGB)", userRAM, memory.Recommended),
		}}
	case userRAM >= memory.Min:
		return subScore{score: 60, reasoning: []string{
			fmt.Sprintf("Your %gGB RAM meets minimum requirements (%gGB)", userRAM, memory.Min),
		}}
	default:
		return subScore{score: 20, reasoning: []string{
			fmt.Sprintf("Your %gGB RAM is below minimum requirements (%gGB)", userRAM, memory.Min),
		}}
	}
}

func (e *Engine) gpuScore(userGPU string, model *Model) subScore {
	result := classifyKeyword(userGPU, e.gpuTiers, "Unknown GPU type - moderate performance expected")

	// Big models strain weak GPUs disproportionately.
	if model.Params > 4 && result.score < 80 {
		result.score -= 10
		result.reasoning = append(result.reasoning, "Large model may be slow on this GPU")
	}

	return result
}

func (e *Engine) cpuScore(userCPU string) subScore {
	return classifyKeyword(userCPU, e.cpuTiers, "Unknown CPU type - moderate performance expected")
}

func (e *Engine) useCaseScore(useCaseID string, model *Model) subScore {
	score := 50.0
	var reasoning []string

	profile, ok := e.catalog.useCaseProfile(useCaseID)
	if !ok {
		return subScore{score: score, reasoning: []string{"Unknown use case - moderate compatibility"}}
	}

	if model.SupportsUseCase(useCaseID) {
		score += 30
		reasoning = append(reasoning, fmt.Sprintf("Model explicitly supports %s", profile.Name))
	} else if isRelatedModel(model, profile) {
		score += 20
		reasoning = append(reasoning, fmt.Sprintf("Model has related capabilities for %s", profile.Name))
	}

	if profile.Requirements.Accuracy == LevelHigh && model.Params >= 4 {
		score += 15
		reasoning = append(reasoning, "Large model suitable for high-accuracy requirements")
	} else if profile.Requirements.Accuracy == LevelLow && model.Params <= 2.5 {
		score += 15
		reasoning = append(reasoning, "Small model suitable for basic accuracy requirements")
	}

	if profile.Requirements.Memory == LevelLow && model.Memory.Recommended <= 8 {
		score += 10
		reasoning = append(reasoning, "Low memory footprint suitable for resource-constrained use")
	} else if profile.Requirements.Memory == LevelHigh && model.Memory.Recommended >= 16 {
		score += 10
		reasoning = append(reasoning, "High memory capacity suitable for complex tasks")
	}

	if len(reasoning) == 0 {
		reasoning = append(reasoning, fmt.Sprintf("Moderate compatibility with %s", profile.Name))
	}

	return subScore{score: score, reasoning: reasoning}
}

func isRelatedModel(model *Model, profile *UseCaseProfile) bool {
	for _, related := range profile.Related {
		if related == model.ID {
			return true
		}
	}
	return false
}

func performanceScore(priority Priority, model *Model) subScore {
	switch priority {
	case PrioritySpeed:
		return subScore{score: model.Performance.Speed, reasoning: []string{
			fmt.Sprintf("Speed priority: %g/100", model.Performance.Speed),
		}}
	case PriorityAccuracy:
		return subScore{score: model.Performance.Accuracy, reasoning: []string{
			fmt.Sprintf("Accuracy priority: %g/100", model.Performance.Accuracy),
		}}
	case PriorityEfficiency:
		return subScore{score: model.Performance.Efficiency, reasoning: []string{
			fmt.Sprintf("Efficiency priority: %g/100", model.Performance.Efficiency),
		}}
	default:
		return subScore{score: 0, reasoning: []string{
			fmt.Sprintf("Unknown priority %q - no performance weighting applied", priority),
		}}
	}
}

func experienceScore(experience Experience, model *Model) subScore {
	score := 70.0
	var reasoning []string

	switch experience {
	case ExperienceBeginner:
		if model.InstructionTuned() {
			score += 20
			reasoning = append(reasoning, "Instruction-tuned model is beginner-friendly")
		} else {
			score -= 20
			reasoning = append(reasoning, "Base model requires fine-tuning knowledge")
		}
	case ExperienceIntermediate:
		score += 10
		reasoning = append(reasoning, "Intermediate users can handle any model type")
	case ExperienceAdvanced:
		if model.BaseVariant() {
			score += 15
			reasoning = append(reasoning, "Base model suitable for advanced customization")
		}
		reasoning = append(reasoning, "Advanced users can optimize any model")
	default:
		reasoning = append(reasoning, "Unknown experience level - neutral weighting")
	}

	return subScore{score: score, reasoning: reasoning}
}
