package notify

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// Email subjects per contact type.
const (
	standardEmailSubject   = "New Contact Message."
	consultingEmailSubject = "New Consulting Contact Message!"
)

// emailTemplate renders the notification email. It is an html/template, so
// every user-supplied field is escaped on interpolation; raw string
// concatenation of user content into HTML is not allowed anywhere in this
// package.
var emailTemplate = template.Must(template.New("email").Parse(`<html>
<head>
<style>
    body { font-family: Arial, sans-serif; margin: 0; padding: 0; background-color: #f4f4f4; }
    .container { width: 100%; padding: 20px; background-color: #ffffff; box-shadow: 0 0 10px rgba(0, 0, 0, 0.1); margin: auto; max-width: 600px; }
    .header { background-color: #0073e6; color: white; padding: 10px 0; text-align: center; }
    .content { padding: 20px; }
    .content p { margin: 10px 0; }
    .footer { text-align: center; padding: 10px 0; color: #777; font-size: 12px; }
</style>
</head>
<body>
<div class="container">
    <div class="header">
        <h1>{{if .Consulting}}New Consulting Contact Message!{{else}}New Contact Message!{{end}}</h1>
    </div>
    <div class="content">
        <p><strong>Name:</strong> {{.ContactName}}</p>
        <p><strong>Email:</strong> {{.ContactEmail}}</p>
{{- if .Consulting}}
        <p><strong>Company:</strong> {{.CompanyName}}</p>
        <p><strong>Industry:</strong> {{.Industry}}</p>
{{- end}}
        <p><strong>Message:</strong> {{.ContactMessage}}</p>
        <hr>
        <p><strong>User Agent:</strong> {{.UserAgent}}</p>
        <p><strong>Source IP:</strong> {{.IPAddress}}</p>
    </div>
    <div class="footer">
        <p>{{if .Consulting}}John Has Been Consulted!{{else}}John Has Been Contacted.{{end}}</p>
    </div>
</div>
</body>
</html>`))

// emailData is the template input. Missing optional fields render as the
// placeholders the original notifier used.
type emailData struct {
	Consulting     bool
	ContactName    string
	ContactEmail   string
	ContactMessage string
	CompanyName    string
	Industry       string
	UserAgent      string
	IPAddress      string
}

func newEmailData(sub *model.Submission) emailData {
	return emailData{
		Consulting:     sub.ContactType == model.ContactTypeConsulting,
		ContactName:    orDefault(sub.ContactName, "Unknown"),
		ContactEmail:   orDefault(sub.ContactEmail, "Unknown"),
		ContactMessage: sub.ContactMessage,
		CompanyName:    orDefault(sub.CompanyName, "N/A"),
		Industry:       orDefault(sub.Industry, "N/A"),
		UserAgent:      orDefault(sub.UserAgent, "Unknown"),
		IPAddress:      orDefault(sub.IPAddress, "Unknown"),
	}
}

// renderEmail produces the subject and escaped HTML body for a submission.
func renderEmail(sub *model.Submission) (subject, body string, err error) {
	data := newEmailData(sub)
	var buf strings.Builder
	if err := emailTemplate.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render email: %w", err)
	}
	subject = standardEmailSubject
	if data.Consulting {
		subject = consultingEmailSubject
	}
	return subject, buf.String(), nil
}

// renderDiscord produces the bold-field markdown message for a submission.
// Discord content is plain text, not HTML, so no markup escaping applies.
func renderDiscord(sub *model.Submission) string {
	data := newEmailData(sub)

	var b strings.Builder
	if data.Consulting {
		b.WriteString("**New Consulting Contact Message!**\n\n")
	} else {
		b.WriteString("**New Contact Message!**\n\n")
	}
	fmt.Fprintf(&b, "**Name:** %s\n", data.ContactName)
	fmt.Fprintf(&b, "**Email:** %s\n", data.ContactEmail)
	if data.Consulting {
		fmt.Fprintf(&b, "**Company:** %s\n", data.CompanyName)
		fmt.Fprintf(&b, "**Industry:** %s\n", data.Industry)
	}
	fmt.Fprintf(&b, "**Message:**\n%s\n\n", data.ContactMessage)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "**User Agent:** %s\n", data.UserAgent)
	fmt.Fprintf(&b, "**Source IP:** %s\n\n", data.IPAddress)
	if data.Consulting {
		b.WriteString("John Has Been Consulted!")
	} else {
		b.WriteString("John Has Been Contacted.")
	}
	return b.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
