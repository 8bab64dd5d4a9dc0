package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jusunglee/romanize/internal/db"
	"github.com/jusunglee/romanize/internal/romanization"
	"github.com/jusunglee/romanize/internal/romanize"
)

const (
	MaxTextLength = 2048
	MaxBatchSize  = 100
	batchWorkers  = 4
)

type RomanizeHandler struct {
	svc  *romanization.Service
	repo db.Repository
	log  *slog.Logger
}

// NewRomanizeHandler builds the handler. repo is only used for listing and may be nil.
func NewRomanizeHandler(svc *romanization.Service, repo db.Repository, log *slog.Logger) *RomanizeHandler {
	return &RomanizeHandler{svc: svc, repo: repo, log: log}
}

type romanizeRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

type batchRequest struct {
	Texts    []string `json:"texts"`
	Language string   `json:"language"`
}

type batchResponse struct {
	Data []romanization.Result `json:"data"`
}

type romanizationResponse struct {
	ID         int64  `json:"id"`
	Input      string `json:"input"`
	Output     string `json:"output"`
	Language   string `json:"language"`
	Dictionary string `json:"dictionary"`
	Hits       int64  `json:"hits"`
	CreatedAt  string `json:"created_at"`
	LastUsedAt string `json:"last_used_at"`
}

type listResponse struct {
	Data []romanizationResponse `json:"data"`
}

func (h *RomanizeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req romanizeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	h.romanize(w, r, req.Text, req.Language)
}

func (h *RomanizeHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.romanize(w, r, q.Get("text"), q.Get("language"))
}

func (h *RomanizeHandler) romanize(w http.ResponseWriter, r *http.Request, text, language string) {
	if msg := validateText(text); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	lang, err := romanization.ParseLanguage(language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.svc.Romanize(r.Context(), text, lang)
	if err != nil {
		h.writeRomanizeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *RomanizeHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Texts) == 0 {
		writeError(w, http.StatusBadRequest, "texts is required")
		return
	}
	if len(req.Texts) > MaxBatchSize {
		writeError(w, http.StatusBadRequest, "too many texts (max "+strconv.Itoa(MaxBatchSize)+")")
		return
	}
	for i, text := range req.Texts {
		if msg := validateText(text); msg != "" {
			writeError(w, http.StatusBadRequest, "texts["+strconv.Itoa(i)+"]: "+msg)
			return
		}
	}
	lang, err := romanization.ParseLanguage(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	results, err := h.svc.RomanizeBatch(r.Context(), req.Texts, lang, batchWorkers)
	if err != nil {
		h.writeRomanizeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batchResponse{Data: results})
}

func (h *RomanizeHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		writeError(w, http.StatusNotFound, "cache is not enabled")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 25
	}

	rows, err := h.repo.ListRecentRomanizations(r.Context(), int32(limit))
	if err != nil {
		h.log.ErrorContext(r.Context(), "listing romanizations", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	data := make([]romanizationResponse, 0, len(rows))
	for _, row := range rows {
		data = append(data, romanizationResponse{
			ID:         row.ID,
			Input:      row.Input,
			Output:     row.Output,
			Language:   row.Language,
			Dictionary: row.Dictionary,
			Hits:       row.Hits,
			CreatedAt:  row.CreatedAt.Format(time.RFC3339),
			LastUsedAt: row.LastUsedAt.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, listResponse{Data: data})
}

func (h *RomanizeHandler) writeRomanizeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, romanize.ErrLookup) || errors.Is(err, romanize.ErrMalformedToken) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.log.ErrorContext(r.Context(), "romanizing", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func validateText(text string) string {
	switch {
	case strings.TrimSpace(text) == "":
		return "text is required"
	case len(text) > MaxTextLength:
		return "text is too long (max " + strconv.Itoa(MaxTextLength) + " bytes)"
	default:
		return ""
	}
}
