package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"resume-builder-be/internal/dto"
	"resume-builder-be/internal/entity"
	"resume-builder-be/internal/repository/specification"
	"resume-builder-be/internal/repository/unitofwork"
	"resume-builder-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub            *gochannel.GoChannel
	embedTopicName    string
	analyticsTopic    string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	embedTopicName string,
	analyticsTopic string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		embedTopicName:    embedTopicName,
		analyticsTopic:    analyticsTopic,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	embedMessages, err := cs.pubSub.Subscribe(ctx, cs.embedTopicName)
	if err != nil {
		return err
	}
	analyticsMessages, err := cs.pubSub.Subscribe(ctx, cs.analyticsTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range embedMessages {
			cs.processEmbedMessage(ctx, msg)
		}
	}()
	go func() {
		for msg := range analyticsMessages {
			cs.processAnalyticsMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processEmbedMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishEmbedResumeMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal embed message: %v", err)
		msg.Ack() // malformed messages must not be retried forever
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	resume, err := uow.ResumeRepository().FindOne(ctx, specification.ByID{ID: payload.ResumeId})
	if err != nil {
		log.Printf("[ERROR] Failed to get resume %s: %v", payload.ResumeId, err)
		msg.Nack()
		return
	}
	if resume == nil {
		// Deleted before the worker got to it.
		msg.Ack()
		return
	}

	content := resumeToPlainText(resume.Title, resume.Data)
	if strings.TrimSpace(content) == "" {
		msg.Ack()
		return
	}

	res, err := cs.embeddingProvider.Generate(content, "RETRIEVAL_DOCUMENT")
	if err != nil {
		log.Printf("[ERROR] Failed to generate embedding for resume %s: %v", payload.ResumeId, err)
		msg.Nack()
		return
	}

	if err := uow.Begin(ctx); err != nil {
		log.Printf("[ERROR] Failed to begin transaction: %v", err)
		msg.Nack()
		return
	}
	defer uow.Rollback()

	emb := &entity.ResumeEmbedding{
		Id:        uuid.New(),
		ResumeId:  resume.Id,
		Embedding: res.Embedding.Values,
		UpdatedAt: time.Now(),
	}
	if err := uow.ResumeEmbeddingRepository().Upsert(ctx, emb); err != nil {
		log.Printf("[ERROR] Failed to store embedding for resume %s: %v", payload.ResumeId, err)
		msg.Nack()
		return
	}

	if err := uow.Commit(); err != nil {
		log.Printf("[ERROR] Failed to commit embedding for resume %s: %v", payload.ResumeId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) processAnalyticsMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishAnalyticsMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal analytics message: %v", err)
		msg.Ack()
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	event := &entity.AnalyticsEvent{
		Id:        uuid.New(),
		UserId:    payload.UserId,
		ResumeId:  payload.ResumeId,
		EventType: entity.AnalyticsEventType(payload.EventType),
		Referrer:  payload.Referrer,
		UserAgent: payload.UserAgent,
		CreatedAt: time.Now(),
	}
	if err := uow.AnalyticsRepository().Create(ctx, event); err != nil {
		log.Printf("[ERROR] Failed to record analytics event for resume %s: %v", payload.ResumeId, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

// resumeToPlainText flattens the opaque document body into one text
// blob for the embedding model. Keys are sorted so the same document
// always produces the same input.
func resumeToPlainText(title string, data json.RawMessage) string {
	var sb strings.Builder
	sb.WriteString("Resume Title: ")
	sb.WriteString(title)
	sb.WriteString("\n\n")

	var doc interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err == nil {
			collectText(&sb, doc)
		}
	}
	return sb.String()
}

func collectText(sb *strings.Builder, node interface{}) {
	switch v := node.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			sb.WriteString(v)
			sb.WriteString("\n")
		}
	case float64:
		sb.WriteString(fmt.Sprintf("%v\n", v))
	case []interface{}:
		for _, item := range v {
			collectText(sb, item)
		}
	case map[string]interface{}:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			collectText(sb, v[k])
		}
	}
}
