package service

import (
	"context"
	"time"

	"ai-legalaid-be/internal/dto"
	"ai-legalaid-be/internal/pkg/logger"
	"ai-legalaid-be/pkg/dialog"
	"ai-legalaid-be/pkg/emotion"

	"golang.org/x/sync/errgroup"
)

type IChatService interface {
	Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	machine    *dialog.Machine
	classifier emotion.Classifier
	publisher  IPublisherService
	logger     logger.ILogger
}

func NewChatService(
	machine *dialog.Machine,
	classifier emotion.Classifier,
	publisher IPublisherService,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		machine:    machine,
		classifier: classifier,
		publisher:  publisher,
		logger:     logger,
	}
}

// Chat runs emotion classification and the dialog stage machine concurrently,
// then merges both into the response. A failed emotion call degrades to
// neutral without touching the reply.
func (s *chatService) Chat(ctx context.Context, req dto.ChatRequest) (*dto.ChatResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = "default"
	}

	var (
		label  string
		result *dialog.Result
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		detected, err := s.classifier.Classify(gCtx, req.Message)
		if err != nil {
			s.logger.Warn("chat", "emotion gateway failed, falling back to neutral", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
			label = emotion.LabelNeutral
			return nil
		}
		label = detected
		return nil
	})

	g.Go(func() error {
		var err error
		result, err = s.machine.HandleMessage(gCtx, sessionID, req.Message)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &dto.ChatResponse{
		Reply:        result.Reply,
		Emotion:      label,
		LegalSummary: result.LegalSummary,
	}
	if result.Degraded {
		res.Error = "generation_unavailable"
		return res, nil
	}

	if err := s.publisher.PublishTurnRecorded(dto.TurnRecordedMessage{
		SessionId:  sessionID,
		Stage:      result.Stage,
		Category:   result.Category,
		Emotion:    label,
		UserText:   req.Message,
		ReplyText:  result.Reply,
		RecordedAt: time.Now(),
	}); err != nil {
		s.logger.Error("chat", "failed to publish turn event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	return res, nil
}
