package recommend

// DefaultCatalog returns the bundled Gemma 3n model catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Models: []Model{
			{
				ID:          "gemma-3n-e2b-it",
				Name:        "Gemma 3n E2B (Instruction Tuned)",
				DisplayName: "Gemma 3n E2B",
				Description: "2.1B parameter instruction-tuned model optimized for chat and coding tasks",
				Params:      2.1,
				Memory:      MemorySpec{Min: 4, Recommended: 8, Optimal: 16},
				Performance: PerformanceSpec{Speed: 85, Accuracy: 72, Efficiency: 95},
				UseCases:    []string{"chat", "basic-coding", "translation", "summarization"},
				Quantization: []string{"q4_k_m", "q5_k_m", "q8_0"},
				Downloads: DownloadLinks{
					Ollama:      "ollama pull gemma3n:e2b-it",
					HuggingFace: "https://huggingface.co/google/gemma-3n-E2B-it",
				},
				Features: []string{
					"Fast inference speed",
					"Low memory footprint",
					"Good for basic tasks",
					"Mobile-friendly",
				},
				Limitations: []string{
					"Limited reasoning capability",
					"Basic coding only",
					"Shorter context window",
				},
				ReleaseDate: "2024-12-01",
			},
			{
				ID:          "gemma-3n-e4b-it",
				Name:        "Gemma 3n E4B (Instruction Tuned)",
				DisplayName: "Gemma 3n E4B",
				Description: "4.1B parameter instruction-tuned model with enhanced reasoning and coding capabilities",
				Params:      4.1,
				Memory:      MemorySpec{Min: 8, Recommended: 16, Optimal: 32},
				Performance: PerformanceSpec{Speed: 70, Accuracy: 85, Efficiency: 80},
				UseCases:    []string{"advanced-coding", "reasoning", "analysis", "content-generation"},
				Quantization: []string{"q4_k_m", "q5_k_m", "q8_0"},
				Downloads: DownloadLinks{
					Ollama:      "ollama pull gemma3n:e4b-it",
					HuggingFace: "https://huggingface.co/google/gemma-3n-E4B-it",
				},
				Features: []string{
					"Enhanced reasoning",
					"Advanced coding capabilities",
					"Better content generation",
					"Longer context handling",
				},
				Limitations: []string{
					"Higher memory requirements",
					"Slower inference",
					"More computational resources needed",
				},
				ReleaseDate: "2024-12-01",
			},
			{
				ID:          "gemma-3n-e2b-base",
				Name:        "Gemma 3n E2B (Base)",
				DisplayName: "Gemma 3n E2B Base",
				Description: "2.1B parameter base model for fine-tuning and custom applications",
				Params:      2.1,
				Memory:      MemorySpec{Min: 4, Recommended: 8, Optimal: 16},
				Performance: PerformanceSpec{Speed: 90, Accuracy: 65, Efficiency: 98},
				UseCases:    []string{"fine-tuning", "custom-applications", "research"},
				Quantization: []string{"q4_k_m", "q5_k_m", "q8_0"},
				Downloads: DownloadLinks{
					Ollama:      "ollama pull gemma3n:e2b-base",
					HuggingFace: "https://huggingface.co/google/gemma-3n-E2B-base",
				},
				Features: []string{
					"Fastest inference",
					"Lowest memory usage",
					"Ideal for fine-tuning",
					"Research-friendly",
				},
				Limitations: []string{
					"No instruction following",
					"Requires fine-tuning",
					"Basic capabilities only",
				},
				ReleaseDate: "2024-12-01",
			},
			{
				ID:          "gemma-3n-e4b-base",
				Name:        "Gemma 3n E4B (Base)",
				DisplayName: "Gemma 3n E4B Base",
				Description: "4.1B parameter base model for advanced fine-tuning and research",
				Params:      4.1,
				Memory:      MemorySpec{Min: 8, Recommended: 16, Optimal: 32},
				Performance: PerformanceSpec{Speed: 75, Accuracy: 78, Efficiency: 85},
				UseCases:    []string{"advanced-fine-tuning", "research", "custom-applications"},
				Quantization: []string{"q4_k_m", "q5_k_m", "q8_0"},
				Downloads: DownloadLinks{
					Ollama:      "ollama pull gemma3n:e4b-base",
					HuggingFace: "https://huggingface.co/google/gemma-3n-E4B-base",
				},
				Features: []string{
					"Larger parameter count",
					"Better base capabilities",
					"Advanced fine-tuning",
					"Research applications",
				},
				Limitations: []string{
					"No instruction following",
					"Higher resource requirements",
					"Requires expertise to use",
				},
				ReleaseDate: "2024-12-01",
			},
		},
		HardwareProfiles: []HardwareProfile{
			{
				ID:          "low-end",
				Name:        "Low-End Device",
				Description: "Basic hardware with limited resources",
				RAM:         RAMRange{Min: 4, Max: 8},
				GPU:         "Integrated Graphics",
				CPU:         "Basic CPU",
				UseCases:    []string{"basic-chat", "simple-tasks", "learning"},
				Priority:    PriorityEfficiency,
			},
			{
				ID:          "mid-range",
				Name:        "Mid-Range Device",
				Description: "Standard hardware with moderate resources",
				RAM:         RAMRange{Min: 8, Max: 16},
				GPU:         "Entry-level GPU",
				CPU:         "Mid-range CPU",
				UseCases:    []string{"chat", "coding", "content-creation"},
				Priority:    PrioritySpeed,
			},
			{
				ID:          "high-end",
				Name:        "High-End Device",
				Description: "Powerful hardware with abundant resources",
				RAM:         RAMRange{Min: 16, Max: 64},
				GPU:         "Dedicated GPU",
				CPU:         "High-end CPU",
				UseCases:    []string{"advanced-coding", "research", "production"},
				Priority:    PriorityAccuracy,
			},
			{
				ID:          "mobile",
				Name:        "Mobile Device",
				Description: "Smartphone or tablet with limited resources",
				RAM:         RAMRange{Min: 4, Max: 8},
				GPU:         "Mobile GPU",
				CPU:         "Mobile CPU",
				UseCases:    []string{"basic-chat", "simple-tasks"},
				Priority:    PriorityEfficiency,
			},
		},
		UseCaseProfiles: []UseCaseProfile{
			{
				ID:          "chat",
				Name:        "Chat & Conversation",
				Description: "General conversation, customer support, and casual interactions",
				Requirements: Requirements{
					Accuracy: LevelMedium,
					Speed:    LevelHigh,
					Memory:   LevelLow,
				},
				Examples: []string{"Customer support chatbot", "Personal assistant", "Casual conversation"},
				Related:  []string{"gemma-3n-e2b-it", "gemma-3n-e4b-it"},
			},
			{
				ID:          "coding",
				Name:        "Programming & Development",
				Description: "Code generation, debugging, and software development tasks",
				Requirements: Requirements{
					Accuracy: LevelHigh,
					Speed:    LevelMedium,
					Memory:   LevelMedium,
				},
				Examples: []string{"Code generation", "Bug fixing", "Code review", "Documentation"},
				Related:  []string{"gemma-3n-e2b-it", "gemma-3n-e4b-it"},
			},
			{
				ID:          "content-generation",
				Name:        "Content Creation",
				Description: "Writing articles, creative content, and text generation",
				Requirements: Requirements{
					Accuracy: LevelHigh,
					Speed:    LevelMedium,
					Memory:   LevelMedium,
				},
				Examples: []string{"Article writing", "Creative stories", "Marketing copy", "Technical writing"},
				Related:  []string{"gemma-3n-e4b-it"},
			},
			{
				ID:          "analysis",
				Name:        "Data Analysis & Research",
				Description: "Data analysis, research tasks, and complex reasoning",
				Requirements: Requirements{
					Accuracy: LevelHigh,
					Speed:    LevelLow,
					Memory:   LevelHigh,
				},
				Examples: []string{"Data analysis", "Research summaries", "Complex reasoning", "Academic work"},
				Related:  []string{"gemma-3n-e4b-it"},
			},
			{
				ID:          "fine-tuning",
				Name:        "Fine-tuning & Customization",
				Description: "Training custom models for specific applications",
				Requirements: Requirements{
					Accuracy: LevelMedium,
					Speed:    LevelLow,
					Memory:   LevelHigh,
				},
				Examples: []string{"Custom chatbot", "Domain-specific model", "Specialized applications"},
				Related:  []string{"gemma-3n-e2b-base", "gemma-3n-e4b-base"},
			},
		},
	}
}
