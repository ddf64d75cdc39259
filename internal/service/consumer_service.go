package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-faq-generator-be/internal/dto"
	"ai-faq-generator-be/internal/entity"
	"ai-faq-generator-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the credit topic and writes one audit row per
// consumed credit. The counter on the user row is authoritative; these
// rows only exist for the admin transaction views.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.CreditSpentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal credit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	var relatedId *uuid.UUID
	if payload.DocumentId != uuid.Nil {
		relatedId = &payload.DocumentId
	}

	tx := entity.CreditTransaction{
		Id:        uuid.New(),
		UserId:    payload.UserId,
		Service:   payload.Service,
		Amount:    payload.Amount,
		RelatedId: relatedId,
		CreatedAt: payload.SpentAt,
	}

	if err := uow.CreditTransactionRepository().Create(ctx, &tx); err != nil {
		log.Printf("[ERROR] Failed to record credit transaction for user %s: %v", payload.UserId, err)
		msg.Nack() // Nack for retriable errors
		return
	}

	msg.Ack()
}
