package api

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/spigell/jobmate/internal/assistant"
	"github.com/spigell/jobmate/internal/career"
	"github.com/spigell/jobmate/internal/docparse"
	"github.com/spigell/jobmate/internal/logger"
	"github.com/spigell/jobmate/internal/matcher"
	"github.com/spigell/jobmate/internal/report"
)

const uploadField = "file"

// ExplainMatchResponse is a match result with the caller's identifiers and a
// readable summary.
type ExplainMatchResponse struct {
	*matcher.Result
	UserID         string  `json:"userId,omitempty"`
	JobID          string  `json:"jobId,omitempty"`
	ConversationID *string `json:"conversationId"`
	Summary        string  `json:"summary"`
}

// ResumeExtractResponse is the text and profile data pulled from an upload.
type ResumeExtractResponse struct {
	Filename        string   `json:"filename"`
	Format          string   `json:"format"`
	Text            string   `json:"text"`
	Skills          []string `json:"skills"`
	ExperienceYears float64  `json:"experienceYears"`
	WordCount       int      `json:"wordCount"`
}

// handleRoot godoc
// @Summary Service banner
// @Tags service
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: map[string]string{
		"service": serviceName,
		"status":  "running",
		"engine":  engineName,
	}})
}

// handleHealth godoc
// @Summary Health check
// @Tags service
// @Produce json
// @Success 200 {object} Envelope
// @Router /api/ml/health [get]
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.ok(w, map[string]any{
		"status":        "healthy",
		"models_loaded": s.matcher != nil && s.predictor != nil,
		"environment":   s.cfg.Environment,
	})
}

// handleExplainMatch godoc
// @Summary Score a resume against a job and explain the result
// @Tags matching
// @Accept json
// @Produce json
// @Param request body ExplainMatchRequest true "Resume and job"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 401 {object} Envelope
// @Failure 500 {object} Envelope
// @Router /api/ml/explain-match [post]
func (s *Server) handleExplainMatch(w http.ResponseWriter, r *http.Request) {
	var req ExplainMatchRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Debug("explain match requested", append(
		logger.RequestFields(middleware.GetReqID(r.Context()), r.URL.Path),
		zap.String("job_title", req.JobTitle),
		zap.String("resume_preview", logger.TruncateForLog(req.ResumeText, s.cfg.MaxLogLength)),
	)...)

	res, err := s.matcher.Match(matcher.Input{
		ResumeText:         req.ResumeText,
		JobDescription:     req.JobDescription,
		JobSkills:          req.JobSkills,
		RequiredExperience: req.RequiredExperience,
		JobTitle:           req.JobTitle,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var conversationID *string
	if id := strings.TrimSpace(req.ConversationID); id != "" {
		conversationID = &id
	}

	s.ok(w, ExplainMatchResponse{
		Result:         res,
		UserID:         req.UserID,
		JobID:          req.JobID,
		ConversationID: conversationID,
		Summary:        report.MatchReply(res),
	})
}

// handleATSScore godoc
// @Summary Score how well automated screening can parse a resume
// @Tags matching
// @Accept json
// @Produce json
// @Param request body ATSScoreRequest true "Resume and job skills"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/ml/ats-score [post]
func (s *Server) handleATSScore(w http.ResponseWriter, r *http.Request) {
	var req ATSScoreRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, map[string]float64{"atsScore": matcher.ATSScore(req.ResumeText, req.JobSkills)})
}

// handleCareerPath godoc
// @Summary Predict next roles, learning path, salary growth and timeline
// @Tags career
// @Accept json
// @Produce json
// @Param request body CareerPathRequest true "Current profile"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/ml/career-path [post]
func (s *Server) handleCareerPath(w http.ResponseWriter, r *http.Request) {
	var req CareerPathRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, s.predictor.Predict(career.Request{
		CurrentRole:     req.CurrentRole,
		Skills:          req.Skills,
		ExperienceYears: req.ExperienceYears,
		Education:       req.Education,
		Certifications:  req.Certifications,
	}))
}

// handleChat godoc
// @Summary Answer a chat message about a match, a career or anything else
// @Tags assistant
// @Accept json
// @Produce json
// @Param request body ChatRequest true "Message and optional context"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Router /api/ml/chat [post]
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := decode(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	reply, err := s.assistant.Reply(r.Context(), assistant.Request{
		UserID:             req.UserID,
		Message:            req.Message,
		ConversationID:     req.ConversationID,
		ResumeText:         req.ResumeText,
		JobDescription:     req.JobDescription,
		JobSkills:          req.JobSkills,
		RequiredExperience: req.RequiredExperience,
		JobTitle:           req.JobTitle,
		CurrentRole:        req.CurrentRole,
		Skills:             req.Skills,
		ExperienceYears:    req.ExperienceYears,
		Education:          req.Education,
		Certifications:     req.Certifications,
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.ok(w, reply)
}

// handleResumeExtract godoc
// @Summary Extract text, skills and experience from an uploaded resume
// @Tags matching
// @Accept mpfd
// @Produce json
// @Param file formData file true "PDF, DOCX or TXT resume"
// @Success 200 {object} Envelope
// @Failure 400 {object} Envelope
// @Failure 413 {object} Envelope
// @Router /api/ml/resume/extract [post]
func (s *Server) handleResumeExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, &statusError{status: http.StatusRequestEntityTooLarge, message: "uploaded file too large"})
			return
		}
		s.fail(w, r, invalid(uploadField, "multipart file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	kind, err := docparse.DetectKind(header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		s.fail(w, r, invalid(uploadField, "only pdf, docx and txt files are supported"))
		return
	}

	text, err := docparse.Extract(kind, data)
	if err != nil {
		s.fail(w, r, invalid(uploadField, err.Error()))
		return
	}

	s.ok(w, ResumeExtractResponse{
		Filename:        header.Filename,
		Format:          string(kind),
		Text:            text,
		Skills:          s.matcher.Skills(text),
		ExperienceYears: s.matcher.ExperienceYears(text),
		WordCount:       len(strings.Fields(text)),
	})
}
