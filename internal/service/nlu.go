package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"nlu/internal/metrics"
	"nlu/internal/model"

	"go.uber.org/zap"
)

// timestampLayout matches ISO-8601 UTC with microseconds and a trailing Z
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// ErrLoggingDisabled is returned by log lookups when no request log is configured
var ErrLoggingDisabled = errors.New("nlu request logging is disabled")

// RequestLog persists NLU requests and reviewer feedback
type RequestLog interface {
	LogRequest(ctx context.Context, entry *model.NLULog) error
	GetLog(ctx context.Context, requestID string) (*model.NLULog, error)
	RecordFeedback(ctx context.Context, requestID, correctIntent string) error
}

// NLUService runs the classifier and extractor and assembles the response envelope
type NLUService struct {
	classifier *IntentClassifier
	extractor  *EntityExtractor
	requestLog RequestLog // nil disables logging
	logTimeout time.Duration
	logger     *zap.Logger
	now        func() time.Time
}

// NewNLUService creates a new NLU service. requestLog may be nil.
func NewNLUService(
	classifier *IntentClassifier,
	extractor *EntityExtractor,
	requestLog RequestLog,
	logTimeout time.Duration,
	logger *zap.Logger,
) *NLUService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NLUService{
		classifier: classifier,
		extractor:  extractor,
		requestLog: requestLog,
		logTimeout: logTimeout,
		logger:     logger,
		now:        time.Now,
	}
}

// Process classifies the utterance, extracts entities and builds the response
func (s *NLUService) Process(req *model.NLURequest) *model.NLUResponse {
	startTime := s.now()

	utterance := ""
	if req.Utterance != nil {
		utterance = *req.Utterance
	}

	scores := s.classifier.Scores(utterance)
	intent := ResultFromScores(scores)
	entities := s.extractor.Extract(utterance, intent.Name)

	elapsed := s.now().Sub(startTime)
	s.observe(intent, entities, elapsed)

	resp := &model.NLUResponse{
		RequestID: req.RequestID,
		Timestamp: s.now().UTC().Format(timestampLayout),
		NLUOutput: model.NLUOutput{
			Intent:           intent,
			Entities:         entities,
			Locale:           req.Locale,
			ProcessingTimeMs: elapsed.Milliseconds(),
		},
	}

	s.logger.Info("utterance classified",
		zap.String("request_id", req.RequestID),
		zap.String("tenant_id", req.TenantID),
		zap.String("intent", intent.Name),
		zap.Float64("confidence", intent.Confidence),
		zap.Int("entities", len(entities)),
	)

	if s.requestLog != nil {
		entry := &model.NLULog{
			RequestID:        req.RequestID,
			TenantID:         req.TenantID,
			Locale:           req.Locale,
			Utterance:        utterance,
			Intent:           intent.Name,
			Confidence:       intent.Confidence,
			IntentScores:     ScoreVector(scores),
			Entities:         model.EntityList(entities),
			ProcessingTimeMs: resp.NLUOutput.ProcessingTimeMs,
		}
		// Log request (non-blocking)
		go s.writeLog(entry)
	}

	return resp
}

// GetLog returns the stored log for a request
func (s *NLUService) GetLog(ctx context.Context, requestID string) (*model.NLULog, error) {
	if s.requestLog == nil {
		return nil, ErrLoggingDisabled
	}
	return s.requestLog.GetLog(ctx, requestID)
}

// RecordFeedback stores the correct intent for a logged request
func (s *NLUService) RecordFeedback(ctx context.Context, requestID, correctIntent string) error {
	if s.requestLog == nil {
		return ErrLoggingDisabled
	}

	entry, err := s.requestLog.GetLog(ctx, requestID)
	if err != nil {
		return err
	}
	if err := s.requestLog.RecordFeedback(ctx, requestID, correctIntent); err != nil {
		return err
	}

	correct := entry.Intent == correctIntent
	metrics.FeedbackTotal.WithLabelValues(strconv.FormatBool(correct)).Inc()
	s.logger.Info("intent feedback recorded",
		zap.String("request_id", requestID),
		zap.String("predicted", entry.Intent),
		zap.String("correct_intent", correctIntent),
	)
	return nil
}

func (s *NLUService) writeLog(entry *model.NLULog) {
	ctx, cancel := context.WithTimeout(context.Background(), s.logTimeout)
	defer cancel()

	if err := s.requestLog.LogRequest(ctx, entry); err != nil {
		s.logger.Warn("failed to log nlu request",
			zap.String("request_id", entry.RequestID),
			zap.Error(err),
		)
	}
}

func (s *NLUService) observe(intent model.IntentResult, entities []model.Entity, elapsed time.Duration) {
	metrics.RequestsTotal.WithLabelValues(intent.Name).Inc()
	if intent.Name == model.IntentFAQGeneric && intent.Confidence == fallbackConfidence {
		metrics.FallbackTotal.Inc()
	}
	for _, e := range entities {
		metrics.ObserveEntity(e.Name, e.Estimated)
	}
	metrics.RequestDuration.Observe(elapsed.Seconds())
}
