package recommend

import "strings"

type Priority string

const (
	PrioritySpeed      Priority = "speed"
	PriorityAccuracy   Priority = "accuracy"
	PriorityEfficiency Priority = "efficiency"
)

type Experience string

const (
	ExperienceBeginner     Experience = "beginner"
	ExperienceIntermediate Experience = "intermediate"
	ExperienceAdvanced     Experience = "advanced"
)

// Level grades a use-case requirement dimension.
type Level string

const (
	LevelLow    Level = "low"
	LevelMedium Level = "medium"
	LevelHigh   Level = "high"
)

// MemorySpec holds a model's three memory tiers in GB.
type MemorySpec struct {
	Min         float64 `json:"min"`
	Recommended float64 `json:"recommended"`
	Optimal     float64 `json:"optimal"`
}

// PerformanceSpec holds the 0-100 performance dimensions.
type PerformanceSpec struct {
	Speed      float64 `json:"speed"`
	Accuracy   float64 `json:"accuracy"`
	Efficiency float64 `json:"efficiency"`
}

type DownloadLinks struct {
	Ollama      string `json:"ollama"`
	HuggingFace string `json:"huggingface"`
	Direct      string `json:"direct,omitempty"`
}

// Model is one immutable catalog record. Params is the parameter count in
// billions.
type Model struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	DisplayName  string          `json:"display_name"`
	Description  string          `json:"description"`
	Params       float64         `json:"params"`
	Memory       MemorySpec      `json:"memory"`
	Performance  PerformanceSpec `json:"performance"`
	UseCases     []string        `json:"use_cases"`
	Quantization []string        `json:"quantization"`
	Downloads    DownloadLinks   `json:"downloads"`
	Features     []string        `json:"features"`
	Limitations  []string        `json:"limitations"`
	ReleaseDate  string          `json:"release_date"`
}

func (m *Model) InstructionTuned() bool {
	return strings.Contains(m.ID, "it")
}

func (m *Model) BaseVariant() bool {
	return strings.Contains(m.ID, "base")
}

func (m *Model) SupportsUseCase(useCaseID string) bool {
	for _, uc := range m.UseCases {
		if uc == useCaseID {
			return true
		}
	}
	return false
}

type RAMRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// HardwareProfile is a descriptive reference record for UI grouping; the
// scoring algorithm works from raw user input, not from these profiles.
type HardwareProfile struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	RAM         RAMRange `json:"ram"`
	GPU         string   `json:"gpu"`
	CPU         string   `json:"cpu"`
	UseCases    []string `json:"use_cases"`
	Priority    Priority `json:"priority"`
}

type Requirements struct {
	Accuracy Level `json:"accuracy"`
	Speed    Level `json:"speed"`
	Memory   Level `json:"memory"`
}

type UseCaseProfile struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Requirements Requirements `json:"requirements"`
	Examples     []string     `json:"examples"`
	Related      []string     `json:"related"`
}

// Catalog is loaded once at startup and never mutated.
type Catalog struct {
	Models           []Model
	HardwareProfiles []HardwareProfile
	UseCaseProfiles  []UseCaseProfile
}

func (c *Catalog) useCaseProfile(id string) (*UseCaseProfile, bool) {
	for i := range c.UseCaseProfiles {
		if c.UseCaseProfiles[i].ID == id {
			return &c.UseCaseProfiles[i], true
		}
	}
	return nil, false
}
