package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"chirpify/internal/domain"
	"chirpify/internal/usecase"
)

const (
	headerCorrelationID = "X-Correlation-Id"
	errorBadRequest     = "INVALID_INPUT"
	errorNotFound       = "NOT_FOUND"
	errorMethod         = "METHOD_NOT_ALLOWED"
	errorInternal       = "INTERNAL_ERROR"
)

type Corrector interface {
	Correct(ctx context.Context, in usecase.CorrectInput) (usecase.CorrectOutput, error)
}

type correctRequest struct {
	Model    string `json:"model"`
	Sentence string `json:"sentence"`
}

type correctResponse struct {
	Model     string       `json:"model"`
	Text      string       `json:"text"`
	Lines     []string     `json:"lines"`
	Chirp     domain.Chirp `json:"chirp"`
	Complete  bool         `json:"complete"`
	ElapsedMs int64        `json:"elapsedMs"`
}

type modelEntry struct {
	domain.Model
	Default bool `json:"default"`
}

type modelsResponse struct {
	Models []modelEntry `json:"models"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Handler struct {
	corrector Corrector
	logger    *slog.Logger
}

func NewHandler(c Corrector) (*Handler, error) {
	if c == nil {
		return nil, errors.New("handler: corrector must not be nil")
	}
	return &Handler{corrector: c, logger: slog.Default()}, nil
}

// Handle serves API Gateway proxy events. Failures are always expressed as
// HTTP responses; the returned error is reserved for encoding faults.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	corrID := correlationID(req.Headers)
	logger := h.logger.With("correlation_id", corrID)

	route := strings.TrimRight(req.Path, "/")
	switch route {
	case "/correct":
		if req.HTTPMethod != http.MethodPost {
			return respond(corrID, http.StatusMethodNotAllowed, errorResponse{Error: errorMethod, Message: "use POST"})
		}
		return h.correct(ctx, logger, corrID, req)
	case "/models":
		if req.HTTPMethod != http.MethodGet {
			return respond(corrID, http.StatusMethodNotAllowed, errorResponse{Error: errorMethod, Message: "use GET"})
		}
		return respond(corrID, http.StatusOK, listModels())
	default:
		return respond(corrID, http.StatusNotFound, errorResponse{Error: errorNotFound, Message: "no route for " + req.Path})
	}
}

func (h *Handler) correct(ctx context.Context, logger *slog.Logger, corrID string, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return respond(corrID, http.StatusBadRequest, errorResponse{Error: errorBadRequest, Message: "invalid request body encoding"})
		}
		body = string(raw)
	}

	var in correctRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return respond(corrID, http.StatusBadRequest, errorResponse{Error: errorBadRequest, Message: "invalid JSON body"})
	}

	out, err := h.corrector.Correct(ctx, usecase.CorrectInput{Model: in.Model, Sentence: in.Sentence})
	if err != nil {
		status, resp := mapError(err)
		if status >= http.StatusInternalServerError {
			logger.Error("correct request failed", "status", status, "code", resp.Error, "err", err)
		} else {
			logger.Info("correct request rejected", "status", status, "code", resp.Error)
		}
		return respond(corrID, status, resp)
	}

	return respond(corrID, http.StatusOK, correctResponse{
		Model:     out.Model.ID,
		Text:      out.Text,
		Lines:     strings.Split(out.Text, "\n"),
		Chirp:     out.Chirp,
		Complete:  out.Chirp.Complete(),
		ElapsedMs: out.Elapsed.Milliseconds(),
	})
}

func listModels() modelsResponse {
	def := domain.DefaultModel().ID
	out := modelsResponse{Models: make([]modelEntry, 0, len(domain.Models))}
	for _, m := range domain.Models {
		out.Models = append(out.Models, modelEntry{Model: m, Default: m.ID == def})
	}
	return out
}

func mapError(err error) (int, errorResponse) {
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return http.StatusInternalServerError, errorResponse{Error: errorInternal, Message: "internal error"}
	}
	resp := errorResponse{Error: string(ue.Code), Message: ue.Display()}
	switch ue.Code {
	case usecase.ErrorInvalidInput, usecase.ErrorUnknownModel:
		return http.StatusBadRequest, resp
	case usecase.ErrorConfiguration:
		return http.StatusServiceUnavailable, resp
	case usecase.ErrorUpstream, usecase.ErrorInference:
		return http.StatusBadGateway, resp
	default:
		return http.StatusInternalServerError, errorResponse{Error: errorInternal, Message: "internal error"}
	}
}

func correlationID(headers map[string]string) string {
	for k, v := range headers {
		if strings.EqualFold(k, headerCorrelationID) && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return newUUID()
}

func respond(corrID string, status int, payload any) (events.APIGatewayProxyResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers: map[string]string{
			"Content-Type":      "application/json",
			headerCorrelationID: corrID,
		},
		Body: string(body),
	}, nil
}

var newUUID = func() string {
	return uuid.NewString()
}
