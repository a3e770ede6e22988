package domain

// Category shapes how the model is told to answer. The set is closed;
// CategoryNone means no shaping instruction is appended.
type Category string

const (
	CategoryNone           Category = ""
	CategoryFact           Category = "FACT"
	CategoryMultiList      Category = "MULTI_LIST"
	CategorySummary        Category = "SUMMARY"
	CategoryRecommendation Category = "RECOMMENDATION"
)

var categoryInstructions = map[Category]string{
	CategoryFact: "Return a single TED talk that matches the criteria. " +
		"Provide only the required factual fields explicitly requested. " +
		"Be concise and direct.",
	CategoryMultiList: "Return multiple distinct TED talks as requested. " +
		"Provide ONLY the list in the exact format requested (e.g., numbered list, bullet points). " +
		"Do NOT include explanations, justifications, or additional commentary. " +
		"Return only the talk titles or information explicitly requested. " +
		"Ensure each result is a different talk.",
	CategorySummary: "Identify one relevant TED talk and provide a concise summary of its key idea " +
		"based only on the retrieved transcript content.",
	CategoryRecommendation: "Recommend one TED talk and justify the recommendation " +
		"using evidence from the retrieved context.",
}

// ParseCategory maps a label to a known category. ok is false for
// anything outside the closed set, including the empty string.
func ParseCategory(label string) (Category, bool) {
	c := Category(label)
	_, ok := categoryInstructions[c]
	if !ok {
		return CategoryNone, false
	}
	return c, true
}

// Instruction returns the answer-shaping text appended to the system
// prompt, or "" for CategoryNone.
func (c Category) Instruction() string {
	return categoryInstructions[c]
}
