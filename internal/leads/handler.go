package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/togetherfinance/lead-intake/internal/notify"
	"github.com/togetherfinance/lead-intake/internal/observability/metrics"
	"github.com/togetherfinance/lead-intake/pkg/logging"
)

// Envelope is the normalized response body for the contact endpoint.
type Envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Submission outcomes, also used as metric labels.
const (
	outcomeSent          = "sent"
	outcomeConfigError   = "config_error"
	outcomeParseError    = "parse_error"
	outcomeMissingFields = "missing_fields"
	outcomeDeliveryError = "delivery_error"
	outcomePanic         = "panic"
)

// HandlerConfig wires the contact handler's collaborators.
type HandlerConfig struct {
	Sender      notify.EmailSender
	MailTo      string // single destination address
	MailToName  string
	SiteURL     string
	SendTimeout time.Duration
	Metrics     *metrics.LeadMetrics
	Logger      *logging.Logger
}

// Handler turns contact-form submissions into exactly one notification email
// each. It holds no mutable state and is safe for concurrent use.
type Handler struct {
	sender      notify.EmailSender
	mailTo      string
	mailToName  string
	siteURL     string
	sendTimeout time.Duration
	metrics     *metrics.LeadMetrics
	logger      *logging.Logger
	now         func() time.Time
}

// NewHandler creates a new contact-form handler.
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	return &Handler{
		sender:      cfg.Sender,
		mailTo:      cfg.MailTo,
		mailToName:  cfg.MailToName,
		siteURL:     cfg.SiteURL,
		sendTimeout: cfg.SendTimeout,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
		now:         time.Now,
	}
}

// Submit handles POST /api/contact requests.
//
// The order of the checks is contractual: delivery configuration first (before
// the body is even read), then body parsing, then required fields. Only a
// fully validated submission reaches the delivery call, and it reaches it
// exactly once.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("contact submission panicked", "panic", rec)
			h.metrics.ObserveSubmission(outcomePanic)
			writeEnvelope(w, http.StatusInternalServerError, Envelope{OK: false, Error: "Unexpected error"})
		}
	}()

	if h.sender == nil || h.mailTo == "" {
		h.logger.Error("contact submission rejected: delivery not configured")
		h.metrics.ObserveSubmission(outcomeConfigError)
		writeEnvelope(w, http.StatusInternalServerError, Envelope{OK: false, Error: "Missing env vars"})
		return
	}

	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode contact submission", "error", err)
		h.metrics.ObserveSubmission(outcomeParseError)
		writeEnvelope(w, http.StatusInternalServerError, Envelope{OK: false, Error: "Unexpected error"})
		return
	}

	if err := req.Validate(); err != nil {
		h.logger.Info("contact submission missing required fields", "error", err)
		h.metrics.ObserveSubmission(outcomeMissingFields)
		writeEnvelope(w, http.StatusBadRequest, Envelope{OK: false, Error: "Missing fields"})
		return
	}

	meta := EnquiryMeta{
		UserAgent:   r.UserAgent(),
		SubmittedAt: h.now(),
		SiteURL:     h.siteURL,
	}
	subject, text, htmlBody, err := ComposeEnquiryEmail(&req, meta)
	if err != nil {
		h.logger.Error("failed to compose enquiry email", "error", err)
		h.metrics.ObserveSubmission(outcomeDeliveryError)
		writeEnvelope(w, http.StatusInternalServerError, Envelope{OK: false, Error: "Unexpected error"})
		return
	}

	msg := notify.EmailMessage{
		To:          h.mailTo,
		ToName:      h.mailToName,
		ReplyTo:     req.Email,
		ReplyToName: req.Name,
		Subject:     subject,
		Body:        text,
		HTML:        htmlBody,
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.sendTimeout)
	defer cancel()

	start := h.now()
	err = h.sender.Send(ctx, msg)
	h.metrics.ObserveDeliveryLatency(time.Since(start).Seconds())
	if err != nil {
		// Provider detail stays in the logs; the client only sees a generic
		// message.
		h.logger.Error("failed to deliver enquiry email", "error", err, "reply_to", req.Email)
		h.metrics.ObserveSubmission(outcomeDeliveryError)
		writeEnvelope(w, http.StatusInternalServerError, Envelope{OK: false, Error: "Failed to send email"})
		return
	}

	h.logger.Info("enquiry delivered", "name", req.Name, "type", req.FinanceType(), "page", req.Page)
	h.metrics.ObserveSubmission(outcomeSent)
	writeEnvelope(w, http.StatusOK, Envelope{OK: true})
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
