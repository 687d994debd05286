// internal/services/plan_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/jamelna-apps/plangen/internal/errors"
	"github.com/jamelna-apps/plangen/internal/extract"
	"github.com/jamelna-apps/plangen/internal/llm"
	"github.com/jamelna-apps/plangen/internal/models"
	"github.com/jamelna-apps/plangen/internal/storage"
)

// PlansCollection is the document store collection holding generated plans.
const PlansCollection = "plans"

const persistTimeout = 15 * time.Second

// EventSink receives stream events in order. A non-nil error means the
// caller's transport is gone; the pipeline must cancel upstream work.
type EventSink func(models.StreamEvent) error

// PlanService runs the plan-generation pipeline: retrieve reference text,
// compose prompts, stream the model call while relaying deltas, extract
// structure from the finished text, and persist the result.
type PlanService struct {
	provider        llm.Provider
	retriever       Retriever
	store           storage.DocumentStore
	logger          *zap.Logger
	streamTimeout   time.Duration
	maxOutputTokens int
}

// NewPlanService wires the pipeline. retriever may be nil, in which case
// generation always runs without reference text.
func NewPlanService(
	provider llm.Provider,
	retriever Retriever,
	store storage.DocumentStore,
	logger *zap.Logger,
	streamTimeout time.Duration,
	maxOutputTokens int,
) *PlanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		provider:        provider,
		retriever:       retriever,
		store:           store,
		logger:          logger,
		streamTimeout:   streamTimeout,
		maxOutputTokens: maxOutputTokens,
	}
}

// GeneratePlan executes one generation request, emitting exactly one start
// event, content events in model arrival order, and exactly one terminal
// event. Admission (validation, rate limiting) happens before this is
// called. ctx must be the caller's request context so a dropped connection
// cancels the in-flight model call.
func (s *PlanService) GeneratePlan(ctx context.Context, req models.GenerationRequest, emit EventSink) {
	if err := emit(models.StartEvent()); err != nil {
		return
	}

	// Generation may run far longer than an ordinary request, but not
	// unboundedly.
	ctx, cancel := context.WithTimeout(ctx, s.streamTimeout)
	defer cancel()

	reference := s.retrieveReference(ctx, req.Profile)
	systemPrompt, userPrompt := ComposePrompts(req.Profile, req.EffectiveLocale(), reference)

	stream, err := s.provider.StreamCompletion(ctx, llm.CompletionRequest{
		Prompt:       userPrompt,
		SystemPrompt: systemPrompt,
		MaxTokens:    s.maxOutputTokens,
	})
	if err != nil {
		s.logger.Error("failed to open model stream", zap.Error(err))
		emit(models.ErrorEvent(string(apperrors.ErrorTypeModelStream), "model call failed"))
		return
	}

	var buf strings.Builder
	var finished, failed bool

	for resp := range stream {
		if resp.FinishReason == "error" {
			failed = true
			break
		}
		if resp.Text != "" {
			if err := emit(models.ContentEvent(resp.Text)); err != nil {
				s.logger.Warn("caller disconnected mid-stream, cancelling model call",
					zap.Int("bytes_relayed", buf.Len()))
				cancel()
				drain(stream)
				return
			}
			buf.WriteString(resp.Text)
		}
		if resp.Done {
			finished = true
			break
		}
	}
	drain(stream)

	if failed || !finished {
		message := "model stream failed"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			message = "model stream exceeded the time limit"
		}
		s.logger.Error("model stream did not complete",
			zap.Bool("provider_error", failed),
			zap.Int("bytes_relayed", buf.Len()))
		emit(models.ErrorEvent(string(apperrors.ErrorTypeModelStream), message))
		return
	}

	raw := buf.String()
	plan := &models.GeneratedPlan{
		Title:          fmt.Sprintf("%s Computer Science Education Plan", req.Profile.SchoolName),
		Version:        1,
		Locale:         req.EffectiveLocale(),
		ConversationID: req.ConversationID,
		RawContent:     raw,
		ExtractedPlan:  extract.Plan(raw),
	}

	// Persistence gets its own deadline: the stream budget may be spent,
	// and the text has already reached the caller either way.
	persistCtx, persistCancel := context.WithTimeout(context.Background(), persistTimeout)
	defer persistCancel()

	id, err := s.store.Create(persistCtx, PlansCollection, plan)
	if err != nil {
		s.logger.Error("failed to persist generated plan", zap.Error(err))
		emit(models.ErrorEvent(string(apperrors.ErrorTypePersistence), "plan was generated but could not be saved"))
		return
	}
	plan.ID = id

	s.logger.Info("plan generated",
		zap.String("plan_id", id),
		zap.String("locale", plan.Locale),
		zap.Int("raw_bytes", len(raw)),
		zap.Int("grade_bands", len(plan.ScopeSequence)))

	emit(models.CompleteEvent(id, plan.Summary()))
}

// retrieveReference is the pipeline's single degrade point: any retrieval
// failure collapses to empty reference text and a warning log.
func (s *PlanService) retrieveReference(ctx context.Context, profile models.DistrictProfile) string {
	if s.retriever == nil {
		return ""
	}

	query := fmt.Sprintf("K-12 computer science education standards %s grades %s",
		profile.State, strings.Join(profile.GradeLevels, " "))

	text, err := s.retriever.Retrieve(ctx, query, profile.State)
	if err != nil {
		degraded := apperrors.NewRetrievalDegradedError("reference retrieval failed", err)
		s.logger.Warn("continuing without reference text", zap.Error(degraded))
		return ""
	}

	return text
}

// GetPlan loads one persisted plan.
func (s *PlanService) GetPlan(ctx context.Context, id string) (*models.GeneratedPlan, error) {
	var plan models.GeneratedPlan
	if err := s.store.Get(ctx, PlansCollection, id, &plan); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("plan not found", err)
		}
		return nil, apperrors.NewPersistenceError("failed to load plan", err)
	}
	return &plan, nil
}

// ListPlans returns summaries of every persisted plan.
func (s *PlanService) ListPlans(ctx context.Context) ([]models.PlanSummary, error) {
	ids, err := s.store.List(ctx, PlansCollection)
	if err != nil {
		return nil, apperrors.NewPersistenceError("failed to list plans", err)
	}

	summaries := make([]models.PlanSummary, 0, len(ids))
	for _, id := range ids {
		var plan models.GeneratedPlan
		if err := s.store.Get(ctx, PlansCollection, id, &plan); err != nil {
			s.logger.Warn("skipping unreadable plan document", zap.String("plan_id", id), zap.Error(err))
			continue
		}
		summaries = append(summaries, plan.Summary())
	}

	return summaries, nil
}

// drain consumes any remaining stream elements so the provider goroutine
// can exit. The channel closes once the provider observes cancellation or
// reaches end of stream.
func drain(stream <-chan llm.StreamResponse) {
	for range stream {
	}
}
