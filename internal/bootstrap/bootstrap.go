package bootstrap

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/time/rate"

	"github.com/nkovalenko/ted-talk-rag/internal/config"
	"github.com/nkovalenko/ted-talk-rag/internal/core/ports"
	"github.com/nkovalenko/ted-talk-rag/internal/core/usecase"
	"github.com/nkovalenko/ted-talk-rag/internal/infrastructure/chunking"
	"github.com/nkovalenko/ted-talk-rag/internal/infrastructure/dataset"
	"github.com/nkovalenko/ted-talk-rag/internal/infrastructure/llm/llmod"
	"github.com/nkovalenko/ted-talk-rag/internal/infrastructure/resilience"
	"github.com/nkovalenko/ted-talk-rag/internal/infrastructure/vector/pinecone"
)

type App struct {
	Config config.Config

	VectorIndex ports.VectorIndex
	AnswerUC    ports.QuestionAnswerer
	IndexUC     ports.CorpusIndexer
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	chunker, err := chunking.NewSplitter(cfg.ChunkSize, cfg.OverlapRatio)
	if err != nil {
		return nil, fmt.Errorf("init chunker: %w", err)
	}

	llmodClient := llmod.New(llmod.Config{
		BaseURL:    cfg.LLModBaseURL,
		APIKey:     cfg.LLModAPIKey,
		ChatModel:  cfg.LLModChatModel,
		EmbedModel: cfg.LLModEmbedModel,
	})
	executor := resilience.NewExecutor(resilience.DefaultConfig())
	embedder := llmod.NewEmbedder(llmodClient, executor)

	vectorIndex := pinecone.New(pinecone.Config{
		IndexHost: cfg.PineconeIndexHost,
		APIKey:    cfg.PineconeAPIKey,
		Namespace: cfg.PineconeNamespace,
	})

	classifier := usecase.NewClassifyUseCase(llmodClient)
	answerUC := usecase.NewAnswerUseCase(classifier, embedder, vectorIndex, llmodClient, cfg.TopK)

	var limiter *rate.Limiter
	if cfg.EmbedRatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.EmbedRatePerSec), 1)
	}
	indexUC := usecase.NewBuildIndexUseCase(
		talkSource(cfg),
		chunker,
		embedder,
		vectorIndex,
		cfg.EmbedBatchSize,
		limiter,
		logger,
	)

	return &App{
		Config:      cfg,
		VectorIndex: vectorIndex,
		AnswerUC:    answerUC,
		IndexUC:     indexUC,
	}, nil
}

func talkSource(cfg config.Config) ports.TalkSource {
	if strings.EqualFold(filepath.Ext(cfg.DatasetPath), ".xlsx") {
		return dataset.NewXLSXSource(cfg.DatasetPath, cfg.DatasetLimit)
	}
	return dataset.NewCSVSource(cfg.DatasetPath, cfg.DatasetLimit)
}
