// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// LinkEmailData holds data for link-style email templates (registration,
// password reset).
type LinkEmailData struct {
	SiteName  string
	Link      string
	ExpiresIn string // e.g., "30 minutes"
}

// BuildRegistrationEmail creates the registration-link email with both
// HTML and text bodies.
func BuildRegistrationEmail(data LinkEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Complete your %s registration", data.SiteName),
		TextBody: buildRegistrationText(data),
		HTMLBody: buildLinkHTML("Complete registration", "Click the button below to finish creating your account.", data),
	}
}

// BuildPasswordResetEmail creates the password-reset email with both HTML
// and text bodies.
func BuildPasswordResetEmail(data LinkEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("Reset your %s password", data.SiteName),
		TextBody: buildPasswordResetText(data),
		HTMLBody: buildLinkHTML("Reset password", "Click the button below to choose a new password.", data),
	}
}

func buildRegistrationText(data LinkEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Welcome to %s!\n\n", data.SiteName))
	buf.WriteString("Open this link to finish creating your account:\n")
	buf.WriteString(data.Link + "\n\n")
	buf.WriteString(fmt.Sprintf("This link expires in %s.\n\n", data.ExpiresIn))
	buf.WriteString("If you did not sign up, you can safely ignore this email.\n")
	return buf.String()
}

func buildPasswordResetText(data LinkEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("A password reset was requested for your %s account.\n\n", data.SiteName))
	buf.WriteString("Open this link to choose a new password:\n")
	buf.WriteString(data.Link + "\n\n")
	buf.WriteString(fmt.Sprintf("This link expires in %s.\n\n", data.ExpiresIn))
	buf.WriteString("If you did not request a reset, you can safely ignore this email.\n")
	return buf.String()
}

type linkHTMLData struct {
	LinkEmailData
	Title  string
	Lede   string
	Button string
}

func buildLinkHTML(button, lede string, data LinkEmailData) string {
	tmpl := template.Must(template.New("link").Parse(linkHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, linkHTMLData{
		LinkEmailData: data,
		Title:         data.SiteName,
		Lede:          lede,
		Button:        button,
	})
	return buf.String()
}

const linkHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px; text-align: center;">
              <p style="margin: 0 0 24px; font-size: 15px; color: #374151;">{{.Lede}}</p>
              <a href="{{.Link}}" style="display: inline-block; padding: 12px 32px; background-color: #4f46e5; color: #ffffff; font-size: 15px; font-weight: 600; text-decoration: none; border-radius: 6px;">{{.Button}}</a>
              <p style="margin: 24px 0 0; font-size: 13px; color: #6b7280;">This link expires in {{.ExpiresIn}}. If you did not request it, you can safely ignore this email.</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
