package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"chirpify/internal/domain"
	"chirpify/internal/integrations/huggingface"
)

const defaultMaxSentence = 1000

// Generator is the inference gateway. *huggingface.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, req huggingface.ChatRequest) (string, error)
}

// credentialChecker is implemented by gateways that know up front whether
// they hold a credential.
type credentialChecker interface {
	Configured() bool
}

// Notifier receives the lifecycle of a request that reached the gateway.
// Implementations drive placeholders and result rendering.
type Notifier interface {
	Started(model string)
	Succeeded(model, text string)
	Failed(model string, err *Error)
}

type nopNotifier struct{}

func (nopNotifier) Started(string)           {}
func (nopNotifier) Succeeded(string, string) {}
func (nopNotifier) Failed(string, *Error)    {}

// Settings are the fixed generation parameters, read once at startup.
type Settings struct {
	Temperature    float32
	MaxTokens      int
	MaxSentenceLen int
}

type CorrectService struct {
	gen            Generator
	temperature    float32
	maxTokens      int
	maxSentenceLen int
	notifier       Notifier
	logger         *slog.Logger
}

type Option func(*CorrectService)

func WithNotifier(n Notifier) Option {
	return func(s *CorrectService) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *CorrectService) {
		if l != nil {
			s.logger = l
		}
	}
}

type CorrectInput struct {
	Model    string
	Sentence string
}

type CorrectOutput struct {
	Text    string
	Model   domain.Model
	Chirp   domain.Chirp
	Elapsed time.Duration
}

func NewCorrectService(gen Generator, settings Settings, opts ...Option) (*CorrectService, error) {
	if gen == nil {
		return nil, errors.New("usecase: generator must not be nil")
	}
	if settings.Temperature <= 0 {
		settings.Temperature = huggingface.DefaultTemperature
	}
	if settings.MaxTokens <= 0 {
		settings.MaxTokens = huggingface.DefaultMaxTokens
	}
	if settings.MaxSentenceLen <= 0 {
		settings.MaxSentenceLen = defaultMaxSentence
	}
	s := &CorrectService{
		gen:            gen,
		temperature:    settings.Temperature,
		maxTokens:      settings.MaxTokens,
		maxSentenceLen: settings.MaxSentenceLen,
		notifier:       nopNotifier{},
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Correct validates the input, sends the composed prompt to the selected
// model and returns its reply verbatim. Validation failures never reach the
// gateway or the notifier.
func (s *CorrectService) Correct(ctx context.Context, in CorrectInput) (CorrectOutput, error) {
	model := domain.DefaultModel()
	if id := strings.TrimSpace(in.Model); id != "" {
		m, ok := domain.LookupModel(id)
		if !ok {
			return CorrectOutput{}, newError(ErrorUnknownModel, "unknown_model", nil).
				withMessage(fmt.Sprintf("Unknown model %q.", id))
		}
		model = m
	}

	sentence := strings.TrimSpace(in.Sentence)
	if sentence == "" {
		return CorrectOutput{}, newError(ErrorInvalidInput, "empty_sentence", nil).withMessage(msgEmptySentence)
	}
	if utf8.RuneCountInString(sentence) > s.maxSentenceLen {
		return CorrectOutput{}, newError(ErrorInvalidInput, "sentence_too_long", nil).
			withMessage(fmt.Sprintf(msgSentenceTooLongFmt, s.maxSentenceLen))
	}

	if cc, ok := s.gen.(credentialChecker); ok && !cc.Configured() {
		uerr := classifyGatewayError(huggingface.ErrMissingCredential)
		s.logger.Warn("correction skipped", "model", model.ID, "code", uerr.Code)
		s.notifier.Failed(model.ID, uerr)
		return CorrectOutput{}, uerr
	}

	s.notifier.Started(model.ID)
	start := time.Now()
	text, err := s.gen.Generate(ctx, huggingface.ChatRequest{
		Model:       model.ID,
		Prompt:      composePrompt(sentence),
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
	})
	elapsed := time.Since(start)
	if err != nil {
		uerr := classifyGatewayError(err)
		s.logger.Warn("correction failed",
			"model", model.ID,
			"code", uerr.Code,
			"status", uerr.StatusCode,
			"duration_ms", elapsed.Milliseconds(),
			"err", err,
		)
		s.notifier.Failed(model.ID, uerr)
		return CorrectOutput{}, uerr
	}

	chirp := domain.ParseChirp(text)
	s.logger.Info("correction complete",
		"model", model.ID,
		"duration_ms", elapsed.Milliseconds(),
		"three_line_reply", chirp.Complete(),
	)
	s.notifier.Succeeded(model.ID, text)
	return CorrectOutput{
		Text:    text,
		Model:   model,
		Chirp:   chirp,
		Elapsed: elapsed,
	}, nil
}

func classifyGatewayError(err error) *Error {
	if errors.Is(err, huggingface.ErrMissingCredential) {
		return newError(ErrorConfiguration, "missing_credential", err)
	}
	var statusErr *huggingface.HTTPStatusError
	if errors.As(err, &statusErr) {
		e := newError(ErrorUpstream, "upstream_http_error", err)
		e.StatusCode = statusErr.HTTPStatusCode()
		e.Body = statusErr.Body
		return e
	}
	return newError(ErrorInference, "inference_error", err)
}
