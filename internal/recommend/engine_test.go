package recommend

import (
	"reflect"
	"testing"
)

func TestRecommendHighEndCodingSetup(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	input := UserInput{
		RAM:        16,
		GPU:        "NVIDIA RTX 3060",
		CPU:        "Intel i7-12700",
		UseCase:    "coding",
		Priority:   PriorityAccuracy,
		Experience: ExperienceBeginner,
	}

	scores := engine.Recommend(input)
	if len(scores) != 4 {
		t.Fatalf("got %d scores, want 4", len(scores))
	}

	wantOrder := []string{
		"gemma-3n-e4b-it",
		"gemma-3n-e2b-it",
		"gemma-3n-e4b-base",
		"gemma-3n-e2b-base",
	}
	for i, want := range wantOrder {
		if scores[i].Model.ID != want {
			t.Errorf("rank %d = %s, want %s", i, scores[i].Model.ID, want)
		}
	}

	// e4b-it: hardware 88, use case 85, accuracy 85, experience 90.
	top := scores[0]
	if !almostEqual(top.TotalScore, 86.55) {
		t.Errorf("top score = %g, want 86.55", top.TotalScore)
	}
	if !almostEqual(top.Breakdown.Hardware, 88) {
		t.Errorf("hardware breakdown = %g, want 88", top.Breakdown.Hardware)
	}
	if !almostEqual(top.Breakdown.UseCase, 85) {
		t.Errorf("use case breakdown = %g, want 85", top.Breakdown.UseCase)
	}
}

func TestRecommendConstrainedChatSetup(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	input := UserInput{
		RAM:        4,
		GPU:        "Integrated Graphics",
		CPU:        "Intel i3-10100",
		UseCase:    "chat",
		Priority:   PriorityEfficiency,
		Experience: ExperienceBeginner,
	}

	scores := engine.Recommend(input)

	if scores[0].Model.ID != "gemma-3n-e2b-it" {
		t.Errorf("top = %s, want gemma-3n-e2b-it", scores[0].Model.ID)
	}
	if !almostEqual(scores[0].TotalScore, 80.5) {
		t.Errorf("top score = %g, want 80.5", scores[0].TotalScore)
	}

	// The large instruction-tuned model should sink: RAM below minimum
	// plus the weak-GPU penalty.
	for _, s := range scores {
		if s.Model.ID == "gemma-3n-e4b-it" && !almostEqual(s.Breakdown.Hardware, 41) {
			t.Errorf("e4b-it hardware = %g, want 41", s.Breakdown.Hardware)
		}
	}
}

func TestRecommendDeterministic(t *testing.T) {
	engine := NewEngine(DefaultCatalog())
	input := UserInput{
		RAM:        8,
		GPU:        "RTX 2060",
		CPU:        "Ryzen 5 3600",
		UseCase:    "fine-tuning",
		Priority:   PrioritySpeed,
		Experience: ExperienceAdvanced,
	}

	first := engine.Recommend(input)
	for i := 0; i < 10; i++ {
		if got := engine.Recommend(input); !reflect.DeepEqual(first, got) {
			t.Fatalf("run %d differs from first run", i)
		}
	}
}

func TestRecommendStableTies(t *testing.T) {
	catalog := Catalog{
		Models: []Model{
			{ID: "twin-a", Params: 2, Memory: MemorySpec{Min: 4, Recommended: 8, Optimal: 16}},
			{ID: "twin-b", Params: 2, Memory: MemorySpec{Min: 4, Recommended: 8, Optimal: 16}},
		},
	}
	engine := NewEngine(catalog)

	scores := engine.Recommend(UserInput{RAM: 8, UseCase: "chat"})
	if scores[0].Model.ID != "twin-a" || scores[1].Model.ID != "twin-b" {
		t.Errorf("tie broke catalog order: %s, %s", scores[0].Model.ID, scores[1].Model.ID)
	}
	if !almostEqual(scores[0].TotalScore, scores[1].TotalScore) {
		t.Errorf("twins scored differently: %g vs %g", scores[0].TotalScore, scores[1].TotalScore)
	}
}

func TestRecommendReasoningNeverEmpty(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	inputs := []UserInput{
		{},
		{RAM: 64, GPU: "RTX 4090", CPU: "i9", UseCase: "analysis", Priority: PriorityAccuracy, Experience: ExperienceAdvanced},
		{RAM: 2, GPU: "unknown", CPU: "unknown", UseCase: "nonsense", Priority: Priority("nope"), Experience: Experience("nope")},
	}

	for _, input := range inputs {
		for _, s := range engine.Recommend(input) {
			if len(s.Reasoning) == 0 {
				t.Errorf("model %s scored with empty reasoning for input %+v", s.Model.ID, input)
			}
		}
	}
}

func TestTopRecommendation(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	top := engine.TopRecommendation(UserInput{RAM: 16, UseCase: "chat"})
	if top == nil {
		t.Fatal("expected a recommendation")
	}

	empty := NewEngine(Catalog{})
	if got := empty.TopRecommendation(UserInput{UseCase: "chat"}); got != nil {
		t.Errorf("empty catalog returned %v, want nil", got)
	}
}

func TestModelAccessors(t *testing.T) {
	engine := NewEngine(DefaultCatalog())

	if _, ok := engine.ModelByID("gemma-3n-e4b-it"); !ok {
		t.Error("known model not found")
	}
	if _, ok := engine.ModelByID("gemma-7b"); ok {
		t.Error("unknown model found")
	}

	chat := engine.ModelsByUseCase("chat")
	if len(chat) != 1 || chat[0].ID != "gemma-3n-e2b-it" {
		t.Errorf("ModelsByUseCase(chat) = %v", chat)
	}

	if len(engine.Models()) != 4 {
		t.Errorf("Models() = %d entries, want 4", len(engine.Models()))
	}
	if len(engine.HardwareProfiles()) != 4 {
		t.Errorf("HardwareProfiles() = %d entries, want 4", len(engine.HardwareProfiles()))
	}
	if len(engine.UseCaseProfiles()) != 5 {
		t.Errorf("UseCaseProfiles() = %d entries, want 5", len(engine.UseCaseProfiles()))
	}
}
