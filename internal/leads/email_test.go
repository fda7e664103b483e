package leads

import (
	"math"
	"strings"
	"testing"
	"time"
)

func float(v float64) *float64 { return &v }

func TestFormatAmount(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	tests := []struct {
		name   string
		amount *float64
		want   string
	}{
		{"zero", float(0), "$0"},
		{"negative", float(-5), "$-5"},
		{"absent", nil, "-"},
		{"nan", &nan, "-"},
		{"infinity", &inf, "-"},
		{"typical", float(50000), "$50,000"},
		{"large", float(150000), "$150,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatAmount(tt.amount); got != tt.want {
				t.Fatalf("FormatAmount() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestComposeEnquiryEmail_Contents(t *testing.T) {
	req := &SubmitRequest{
		Name:   "Jane Doe",
		Phone:  "0400 000 000",
		Email:  "jane@example.com",
		Type:   "Car Finance",
		Amount: float(42000),
		Page:   "https://togetherfinance.com.au/#lead",
	}
	meta := EnquiryMeta{
		UserAgent:   "Mozilla/5.0",
		SubmittedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	subject, text, html, err := ComposeEnquiryEmail(req, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if subject != "New enquiry from Jane Doe" {
		t.Errorf("unexpected subject: %q", subject)
	}
	for _, want := range []string{"Jane Doe", "0400 000 000", "jane@example.com", "Car Finance", "$42,000", "https://togetherfinance.com.au/#lead", "Mozilla/5.0", "14 March 2025 09:30 UTC"} {
		if !strings.Contains(text, want) {
			t.Errorf("text body missing %q:\n%s", want, text)
		}
		if !strings.Contains(html, want) {
			t.Errorf("html body missing %q:\n%s", want, html)
		}
	}
}

func TestComposeEnquiryEmail_OptionalFieldsOmitted(t *testing.T) {
	req := &SubmitRequest{
		Name:  "Jane Doe",
		Phone: "0400 000 000",
		Email: "jane@example.com",
	}

	_, text, html, err := ComposeEnquiryEmail(req, EnquiryMeta{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, out := range []string{text, html} {
		if strings.Contains(out, "Page:") {
			t.Error("page line should be omitted when no page was captured")
		}
		if strings.Contains(out, "Browser:") {
			t.Error("browser line should be omitted when no user agent was captured")
		}
		if strings.Contains(out, "Submitted:") {
			t.Error("timestamp line should be omitted for a zero time")
		}
	}
	// Absent type and amount render as the placeholder dash.
	if !strings.Contains(text, "Finance type: -") {
		t.Errorf("expected placeholder finance type, got:\n%s", text)
	}
	if !strings.Contains(text, "Amount requested: -") {
		t.Errorf("expected placeholder amount, got:\n%s", text)
	}
}

func TestComposeEnquiryEmail_Idempotent(t *testing.T) {
	req := &SubmitRequest{
		Name:   "Jane Doe",
		Phone:  "0400 000 000",
		Email:  "jane@example.com",
		Type:   "Business Finance",
		Amount: float(58000),
	}
	meta := EnquiryMeta{SubmittedAt: time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)}

	s1, t1, h1, err := ComposeEnquiryEmail(req, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s2, t2, h2, err := ComposeEnquiryEmail(req, meta)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s1 != s2 || t1 != t2 || h1 != h2 {
		t.Fatal("composing the same submission twice must yield identical output")
	}
}

func TestComposeEnquiryEmail_EscapesEverything(t *testing.T) {
	req := &SubmitRequest{
		Name:  `<b onmouseover="alert('x')">Jane & Co</b>`,
		Phone: `0400 '000' 000`,
		Email: `"jane"@example.com`,
		Type:  `<Car>`,
		Page:  `https://example.com/?q=<img src=x>`,
	}

	_, _, html, err := ComposeEnquiryEmail(req, EnquiryMeta{UserAgent: `agent "quoted" <tag>`})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, raw := range []string{"<b ", "<Car>", "<img", `"jane"`, `"quoted"`, "'x'", "'000'"} {
		if strings.Contains(html, raw) {
			t.Errorf("raw metacharacter sequence %q leaked into HTML:\n%s", raw, html)
		}
	}
	for _, escaped := range []string{"&lt;", "&gt;", "&amp;", "&#34;", "&#39;"} {
		if !strings.Contains(html, escaped) {
			t.Errorf("expected escaped form %q in HTML:\n%s", escaped, html)
		}
	}
}
