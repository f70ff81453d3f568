package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"resume-builder-be/internal/constant"
	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/contract"
	"resume-builder-be/internal/repository/memory"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/embedding"
	"resume-builder-be/pkg/entitlement"
	"resume-builder-be/pkg/events"
	"resume-builder-be/pkg/llm"
	pktNats "resume-builder-be/pkg/nats"
	"resume-builder-be/pkg/store"

	"github.com/google/uuid"
)

// ErrResumeNotIndexed is returned when matching is requested before
// the background embedding worker has processed the resume.
var ErrResumeNotIndexed = errors.New("resume not indexed yet, try again shortly")

const aiCreditCost = 1

// creditsLowThreshold is the remaining-fraction below which the
// CREDITS_LOW event fires.
const creditsLowThreshold = 0.1

type IAiService interface {
	EnhanceText(ctx context.Context, userId uuid.UUID, req *dto.EnhanceTextRequest) (*dto.EnhanceTextResponse, error)
	AnalyzeResume(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeResumeRequest) (*dto.AnalyzeResumeResponse, error)
	Chat(ctx context.Context, userId uuid.UUID, req *dto.AiChatRequest) (*dto.AiChatResponse, error)
	MatchJob(ctx context.Context, userId uuid.UUID, req *dto.MatchJobRequest) (*dto.MatchJobResponse, error)
	History(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) (*dto.AiHistoryResponse, error)
}

type aiService struct {
	uowFactory        unitofwork.RepositoryFactory
	llmProvider       llm.LLMProvider
	embeddingProvider embedding.EmbeddingProvider
	sessionRepo       *memory.SessionRepository
	eventPublisher    *pktNats.Publisher
}

func NewAiService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	embeddingProvider embedding.EmbeddingProvider,
	sessionRepo *memory.SessionRepository,
	eventPublisher *pktNats.Publisher,
) IAiService {
	return &aiService{
		uowFactory:        uowFactory,
		llmProvider:       llmProvider,
		embeddingProvider: embeddingProvider,
		sessionRepo:       sessionRepo,
		eventPublisher:    eventPublisher,
	}
}

func (s *aiService) EnhanceText(ctx context.Context, userId uuid.UUID, req *dto.EnhanceTextRequest) (*dto.EnhanceTextResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, ledger, err := s.consumeCredit(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	prompt := fmt.Sprintf(constant.EnhanceTextPrompt, req.Section, tone, req.Text)

	reply, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return nil, err
	}
	enhanced := strings.TrimSpace(reply)

	s.recordInteraction(ctx, uow, userId, req.ResumeId, entity.AiKindEnhance, req.Text, enhanced)
	s.maybePublishCreditsLow(ctx, user, ledger)

	return &dto.EnhanceTextResponse{
		Enhanced:      enhanced,
		CreditsUsed:   aiCreditCost,
		CreditsRemain: entitlement.RemainingAICredits(ledger),
	}, nil
}

func (s *aiService) AnalyzeResume(ctx context.Context, userId uuid.UUID, req *dto.AnalyzeResumeRequest) (*dto.AnalyzeResumeResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: req.ResumeId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	user, ledger, err := s.consumeCredit(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	content := resumeToPlainText(resume.Title, resume.Data)
	prompt := fmt.Sprintf(constant.AnalyzeResumePrompt, content)

	reply, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Score       int      `json:"score"`
		Strengths   []string `json:"strengths"`
		Weaknesses  []string `json:"weaknesses"`
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("model returned unparseable analysis: %w", err)
	}

	s.recordInteraction(ctx, uow, userId, &resume.Id, entity.AiKindAnalyze, resume.Title, reply)
	s.maybePublishCreditsLow(ctx, user, ledger)

	return &dto.AnalyzeResumeResponse{
		Score:         parsed.Score,
		Strengths:     parsed.Strengths,
		Weaknesses:    parsed.Weaknesses,
		Suggestions:   parsed.Suggestions,
		CreditsUsed:   aiCreditCost,
		CreditsRemain: entitlement.RemainingAICredits(ledger),
	}, nil
}

func (s *aiService) Chat(ctx context.Context, userId uuid.UUID, req *dto.AiChatRequest) (*dto.AiChatResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var session *store.Session
	if req.SessionId != nil {
		if existing, found := s.sessionRepo.Get(*req.SessionId); found && existing.UserId == userId {
			session = existing
		}
	}
	if session == nil {
		session = store.NewSession(userId, req.ResumeId)
	}

	user, ledger, err := s.consumeCredit(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	resumeContent := "(no resume attached)"
	if session.ResumeId != nil {
		resume, err := uow.ResumeRepository().FindOne(ctx,
			specification.ByID{ID: *session.ResumeId},
			specification.OwnedBy{UserID: userId},
		)
		if err != nil {
			return nil, err
		}
		if resume != nil {
			resumeContent = resumeToPlainText(resume.Title, resume.Data)
		}
	}

	history := []llm.Message{
		{Role: "system", Content: fmt.Sprintf(constant.ChatSystemPrompt, resumeContent)},
	}
	for _, turn := range session.Turns {
		history = append(history, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	history = append(history, llm.Message{Role: "user", Content: req.Message})

	reply, err := s.llmProvider.Chat(ctx, history, llm.WithTemperature(0.7))
	if err != nil {
		return nil, err
	}

	session.Append("user", req.Message)
	session.Append("assistant", reply)
	s.sessionRepo.Save(session)

	s.recordInteraction(ctx, uow, userId, session.ResumeId, entity.AiKindChat, req.Message, reply)
	s.maybePublishCreditsLow(ctx, user, ledger)

	return &dto.AiChatResponse{
		SessionId:     session.ID,
		Reply:         reply,
		CreditsUsed:   aiCreditCost,
		CreditsRemain: entitlement.RemainingAICredits(ledger),
	}, nil
}

func (s *aiService) MatchJob(ctx context.Context, userId uuid.UUID, req *dto.MatchJobRequest) (*dto.MatchJobResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}
	if !entitlement.CanUseATSOptimization(user.Plan) {
		return nil, &dto.LimitExceededError{
			LimitType: dto.LimitTypeATS,
			Plan:      string(user.Plan),
		}
	}

	resume, err := uow.ResumeRepository().FindOne(ctx,
		specification.ByID{ID: req.ResumeId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if resume == nil {
		return nil, ErrResumeNotFound
	}

	_, ledger, err := s.consumeCredit(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	probe, err := s.embeddingProvider.Generate(req.JobDescription, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, err
	}

	score, found, err := uow.ResumeEmbeddingRepository().CosineSimilarity(ctx, resume.Id, probe.Embedding.Values)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrResumeNotIndexed
	}

	prompt := fmt.Sprintf(constant.MatchJobPrompt, req.JobDescription, resumeToPlainText(resume.Title, resume.Data))
	reply, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.2))
	if err != nil {
		return nil, err
	}

	var parsed struct {
		MissingKeywords []string `json:"missing_keywords"`
		Suggestions     []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFences(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("model returned unparseable match report: %w", err)
	}

	s.recordInteraction(ctx, uow, userId, &resume.Id, entity.AiKindMatch, req.JobDescription, reply)
	s.maybePublishCreditsLow(ctx, user, ledger)

	return &dto.MatchJobResponse{
		MatchScore:      math.Round(score*1000) / 10,
		MissingKeywords: parsed.MissingKeywords,
		Suggestions:     parsed.Suggestions,
		CreditsUsed:     aiCreditCost,
		CreditsRemain:   entitlement.RemainingAICredits(ledger),
	}, nil
}

func (s *aiService) History(ctx context.Context, userId uuid.UUID, query *dto.ListQuery) (*dto.AiHistoryResponse, error) {
	query.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.OwnedBy{UserID: userId}}
	total, err := uow.AiInteractionRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: query.PageSize, Offset: query.Offset()},
	)
	interactions, err := uow.AiInteractionRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AiHistoryItem, 0, len(interactions))
	for _, it := range interactions {
		items = append(items, dto.AiHistoryItem{
			Id:          it.Id,
			ResumeId:    it.ResumeId,
			Kind:        string(it.Kind),
			Prompt:      it.Prompt,
			Response:    it.Response,
			CreditsUsed: it.CreditsUsed,
			CreatedAt:   it.CreatedAt,
		})
	}

	return &dto.AiHistoryResponse{Items: items, Total: total}, nil
}

// consumeCredit spends one credit through the conditional UPDATE and
// returns the post-spend ledger. Missing ledgers are seeded once and
// the spend retried; a refused spend becomes the typed denial.
func (s *aiService) consumeCredit(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, *entity.UsageLedger, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, errors.New("user not found")
	}

	err = uow.UsageLedgerRepository().ConsumeAICredits(ctx, userId, aiCreditCost)
	if errors.Is(err, contract.ErrLedgerNotFound) {
		if _, seedErr := ensureLedger(ctx, uow, user); seedErr != nil {
			return nil, nil, seedErr
		}
		err = uow.UsageLedgerRepository().ConsumeAICredits(ctx, userId, aiCreditCost)
	}
	if errors.Is(err, contract.ErrLimitReached) {
		ledger, readErr := uow.UsageLedgerRepository().FindByUserId(ctx, userId)
		if readErr != nil {
			return nil, nil, readErr
		}
		return nil, nil, limitExceeded(dto.LimitTypeAiCredits, ledger, user)
	}
	if err != nil {
		return nil, nil, err
	}

	ledger, err := uow.UsageLedgerRepository().FindByUserId(ctx, userId)
	if err != nil {
		return nil, nil, err
	}
	if ledger == nil {
		return nil, nil, contract.ErrLedgerNotFound
	}
	return user, ledger, nil
}

func (s *aiService) recordInteraction(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, resumeId *uuid.UUID, kind entity.AiInteractionKind, prompt, response string) {
	interaction := &entity.AiInteraction{
		Id:          uuid.New(),
		UserId:      userId,
		ResumeId:    resumeId,
		Kind:        kind,
		Prompt:      truncate(prompt, 4000),
		Response:    truncate(response, 8000),
		CreditsUsed: aiCreditCost,
		CreatedAt:   time.Now(),
	}
	if err := uow.AiInteractionRepository().Create(ctx, interaction); err != nil {
		fmt.Printf("[WARN] Failed to record AI interaction for %s: %v\n", userId, err)
	}
}

func (s *aiService) maybePublishCreditsLow(ctx context.Context, user *entity.User, ledger *entity.UsageLedger) {
	if s.eventPublisher == nil || ledger.AiCreditsLimit <= 0 {
		return
	}
	remaining := entitlement.RemainingAICredits(ledger)
	if float64(remaining) > float64(ledger.AiCreditsLimit)*creditsLowThreshold {
		return
	}
	evt := events.New(events.TypeCreditsLow, map[string]interface{}{
		"user_id":   user.Id,
		"remaining": remaining,
		"limit":     ledger.AiCreditsLimit,
		"plan":      string(user.Plan),
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish CREDITS_LOW event: %v\n", err)
	}
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}

// truncate cuts at a rune boundary; a byte-index slice could split a
// multi-byte rune and produce invalid UTF-8.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
