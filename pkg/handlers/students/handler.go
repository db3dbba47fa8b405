package students

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/de-tools/rankboard/pkg/adapters"
	"github.com/de-tools/rankboard/pkg/models/api"
	"github.com/de-tools/rankboard/pkg/models/domain"
	"github.com/de-tools/rankboard/pkg/runtime/terminal/export"
	"github.com/de-tools/rankboard/pkg/services/institute"
	"github.com/de-tools/rankboard/pkg/store/artifact"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const formatText = "text"

type Handler struct {
	explorer institute.Explorer
	page     export.PageConfig
	now      func() time.Time
}

func NewHandler(explorer institute.Explorer, page export.PageConfig) *Handler {
	return &Handler{
		explorer: explorer,
		page:     page,
		now:      time.Now,
	}
}

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inst := chi.URLParam(r, "institute")

	summaries, err := h.explorer.ListStudents(ctx, inst)
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.StudentSummary, 0, len(summaries))
	for _, s := range summaries {
		response = append(response, adapters.MapStudentSummaryDomainToApi(s))
	}
	writeJSON(w, r, response)
}

func (h *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inst := chi.URLParam(r, "institute")
	student := chi.URLParam(r, "student")

	result, err := h.explorer.GetStudentAnalytics(ctx, inst, student)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, adapters.MapStudentAnalyticsDomainToApi(result))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	inst := chi.URLParam(r, "institute")
	student := chi.URLParam(r, "student")
	format := r.URL.Query().Get("format")

	if format != "" && format != formatText {
		http.Error(w, fmt.Sprintf("unsupported format %q. Expected: text", format), http.StatusBadRequest)
		return
	}

	doc, err := h.explorer.GetStudentReport(ctx, inst, student, h.now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	if format != formatText {
		writeJSON(w, r, adapters.MapReportDocumentDomainToApi(doc))
		return
	}

	var buf bytes.Buffer
	if err := export.NewReporter(&buf, h.page).Handle(&doc); err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.TextContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", artifact.FileName(doc.Title, export.TextExtension)))
	if _, err := w.Write(buf.Bytes()); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to write report")
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrStudentNotFound), errors.Is(err, domain.ErrInstituteNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrUnsupportedSource):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
