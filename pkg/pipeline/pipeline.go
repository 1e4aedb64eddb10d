// Package pipeline orchestrates message intake: validation, crisis
// classification and reply generation.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mindmate/pkg/crisis"
	"mindmate/pkg/generator"
	"mindmate/pkg/metrics"
	"mindmate/pkg/models"
)

// ErrInvalidInput marks a structurally invalid message (missing or empty
// text). Maps to a 400 at the HTTP boundary.
var ErrInvalidInput = errors.New("pipeline: message is required and must be a non-empty string")

// CrisisReply is the fixed acknowledgment returned when a crisis is detected.
// Deterministic on purpose: the generative provider is never consulted during
// a sensitive moment.
const CrisisReply = "It seems like you're going through a really difficult time. " +
	"Please consider reaching out to the following crisis hotline for immediate support:"

// Generator is the completion capability the pipeline depends on.
type Generator interface {
	Generate(ctx context.Context, text string) (string, error)
}

// Pipeline is stateless and request-scoped; a single instance serves
// concurrent requests.
type Pipeline struct {
	classifier *crisis.Classifier
	generator  Generator
	logger     *logrus.Logger
	metrics    *metrics.Metrics
}

func New(classifier *crisis.Classifier, generator Generator, logger *logrus.Logger, m *metrics.Metrics) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		generator:  generator,
		logger:     logger,
		metrics:    m,
	}
}

// Handle runs one message through the intake pipeline.
//
// Crisis verdicts short-circuit hard: once the classifier flags a message,
// the generator must not be invoked, whatever its availability.
func (p *Pipeline) Handle(ctx context.Context, msg models.IncomingMessage) (models.PipelineResponse, error) {
	if strings.TrimSpace(msg.Text) == "" {
		p.metrics.ChatRequestsTotal.WithLabelValues("invalid").Inc()
		return models.PipelineResponse{}, ErrInvalidInput
	}

	verdict := p.classifier.Classify(msg.Text)
	if verdict.IsCrisis {
		p.logger.WithFields(logrus.Fields{
			"message": msg.Text,
			"user_id": msg.UserID,
		}).Warn("Crisis detected in incoming message")

		p.metrics.CrisisDetectionsTotal.Inc()
		p.metrics.ChatRequestsTotal.WithLabelValues("crisis").Inc()

		return models.PipelineResponse{
			Reply:   CrisisReply,
			Crisis:  true,
			Hotline: verdict.Hotline,
		}, nil
	}

	start := time.Now()
	reply, err := p.generator.Generate(ctx, msg.Text)
	p.metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		p.metrics.GenerationFailures.WithLabelValues(failureKind(err)).Inc()
		p.metrics.ChatRequestsTotal.WithLabelValues("error").Inc()
		p.logger.WithError(err).WithField("user_id", msg.UserID).Error("Reply generation failed")
		return models.PipelineResponse{}, err
	}

	p.metrics.ChatRequestsTotal.WithLabelValues("generated").Inc()

	return models.PipelineResponse{
		Reply:   reply,
		Crisis:  false,
		Hotline: nil,
	}, nil
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, generator.ErrUnconfigured):
		return "unconfigured"
	case errors.Is(err, generator.ErrInvalidRequest):
		return "invalid_request"
	default:
		return "provider_unavailable"
	}
}
