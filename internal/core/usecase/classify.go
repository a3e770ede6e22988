package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/nkovalenko/ted-talk-rag/internal/core/domain"
	"github.com/nkovalenko/ted-talk-rag/internal/core/ports"
)

// ClassifyUseCase picks the answer-shaping category for a question:
// deterministic keyword rules first, a single chat-model call only when
// no rule matched.
type ClassifyUseCase struct {
	chat ports.ChatModel
}

func NewClassifyUseCase(chat ports.ChatModel) *ClassifyUseCase {
	return &ClassifyUseCase{chat: chat}
}

// Rule order is fixed: list-style phrasings win over summary keywords,
// which win over recommendation keywords.
var multiListPattern = regexp.MustCompile(`\b(which talks|which ted talk|list of exactly|return a list)\b`)

var summaryKeywords = []string{"summary of", "summarize"}

var recommendationKeywords = []string{"would you recommend", "recommend a ted talk", "suggest a ted talk"}

const classifierSystemPrompt = "You are a categorization assistant. " +
	"Classify the user question into one of these categories based on TED data tasks:\n" +
	"1. FACT: Precise Fact Retrieval\n" +
	"2. MULTI_LIST: Multi-Result Topic Listing (up to 3 results)\n" +
	"3. SUMMARY: Key Idea Summary Extraction\n" +
	"4. RECOMMENDATION: Recommendation with Evidence-Based Justification\n" +
	"Respond only with the category key: FACT, MULTI_LIST, SUMMARY, or RECOMMENDATION. " +
	"Do not explain your choice."

func (uc *ClassifyUseCase) Classify(ctx context.Context, question string) (domain.Category, error) {
	if category, ok := matchCategoryRules(question); ok {
		return category, nil
	}
	return uc.classifyWithModel(ctx, question)
}

func matchCategoryRules(question string) (domain.Category, bool) {
	q := strings.ToLower(question)

	if multiListPattern.MatchString(q) {
		return domain.CategoryMultiList, true
	}
	for _, kw := range summaryKeywords {
		if strings.Contains(q, kw) {
			return domain.CategorySummary, true
		}
	}
	for _, kw := range recommendationKeywords {
		if strings.Contains(q, kw) {
			return domain.CategoryRecommendation, true
		}
	}
	return domain.CategoryNone, false
}

// classifyWithModel asks the chat model for one of the four labels. An
// unrecognized reply degrades to CategoryNone; a transport failure
// propagates.
func (uc *ClassifyUseCase) classifyWithModel(ctx context.Context, question string) (domain.Category, error) {
	reply, err := uc.chat.Complete(ctx, classifierSystemPrompt, "Question: "+question)
	if err != nil {
		return domain.CategoryNone, fmt.Errorf("classify question: %w", err)
	}

	category, ok := domain.ParseCategory(strings.ToUpper(strings.TrimSpace(reply)))
	if !ok {
		return domain.CategoryNone, nil
	}
	return category, nil
}
