package leads

import (
	"fmt"
	html "html/template"
	"math"
	"strings"
	texttmpl "text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// amountPlaceholder is rendered when no usable amount was submitted.
const amountPlaceholder = "-"

var currencyPrinter = message.NewPrinter(language.MustParse("en-AU"))

// FormatAmount renders a requested amount as a localized currency string.
// Absent or non-finite values come back as a placeholder dash rather than an
// error; the enquiry is still worth delivering without an amount.
func FormatAmount(amount *float64) string {
	if amount == nil || math.IsNaN(*amount) || math.IsInf(*amount, 0) {
		return amountPlaceholder
	}
	return currencyPrinter.Sprintf("$%v", number.Decimal(*amount, number.MaxFractionDigits(0)))
}

// emailView is the data handed to the notification templates. All fields are
// plain strings; the HTML template escapes them on interpolation.
type emailView struct {
	Name      string
	Phone     string
	Email     string
	Type      string
	Amount    string
	Page      string
	UserAgent string
	Submitted string
	SiteURL   string
}

var htmlBody = html.Must(html.New("lead-email").Parse(`<div style="font-family: Arial, sans-serif; color: #111; line-height: 1.5;">
  <h2>New enquiry from the {{.SiteURL}} website</h2>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Finance type:</strong> {{.Type}}</p>
  <p><strong>Amount requested:</strong> {{.Amount}}</p>
{{- if .Page}}
  <p><strong>Page:</strong> {{.Page}}</p>
{{- end}}
{{- if .UserAgent}}
  <p><strong>Browser:</strong> {{.UserAgent}}</p>
{{- end}}
{{- if .Submitted}}
  <p><strong>Submitted:</strong> {{.Submitted}}</p>
{{- end}}
  <hr />
  <p style="font-size: 12px; color: #777;">
    This message was sent from the enquiry form on {{.SiteURL}}
  </p>
</div>
`))

var textBody = texttmpl.Must(texttmpl.New("lead-email-text").Parse(`New enquiry from the {{.SiteURL}} website

Name: {{.Name}}
Phone: {{.Phone}}
Email: {{.Email}}
Finance type: {{.Type}}
Amount requested: {{.Amount}}
{{- if .Page}}
Page: {{.Page}}
{{- end}}
{{- if .UserAgent}}
Browser: {{.UserAgent}}
{{- end}}
{{- if .Submitted}}
Submitted: {{.Submitted}}
{{- end}}

Sent from the enquiry form on {{.SiteURL}}
`))

// EnquiryMeta is request context the handler passes in explicitly so the
// composition stays testable without a live request.
type EnquiryMeta struct {
	UserAgent   string
	SubmittedAt time.Time
	SiteURL     string
}

// ComposeEnquiryEmail renders the subject, plain-text body and HTML body for a
// validated submission. Rendering the same submission with the same metadata
// yields byte-identical output.
func ComposeEnquiryEmail(req *SubmitRequest, meta EnquiryMeta) (subject, text, htmlOut string, err error) {
	siteURL := meta.SiteURL
	if siteURL == "" {
		siteURL = "togetherfinance.com.au"
	}

	view := emailView{
		Name:      strings.TrimSpace(req.Name),
		Phone:     strings.TrimSpace(req.Phone),
		Email:     strings.TrimSpace(req.Email),
		Type:      req.FinanceType(),
		Amount:    FormatAmount(req.Amount),
		Page:      strings.TrimSpace(req.Page),
		UserAgent: strings.TrimSpace(meta.UserAgent),
		SiteURL:   siteURL,
	}
	if !meta.SubmittedAt.IsZero() {
		view.Submitted = meta.SubmittedAt.UTC().Format("2 January 2006 15:04 MST")
	}

	subject = fmt.Sprintf("New enquiry from %s", view.Name)

	var textBuf, htmlBuf strings.Builder
	if err = textBody.Execute(&textBuf, view); err != nil {
		return "", "", "", fmt.Errorf("leads: render text body: %w", err)
	}
	if err = htmlBody.Execute(&htmlBuf, view); err != nil {
		return "", "", "", fmt.Errorf("leads: render html body: %w", err)
	}
	return subject, textBuf.String(), htmlBuf.String(), nil
}
