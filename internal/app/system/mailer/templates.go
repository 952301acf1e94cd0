// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// WelcomeEmailData holds data for the new-account welcome email.
type WelcomeEmailData struct {
	SiteName  string
	FirstName string
	Email     string
	Password  string // the generated initial password, sent once
}

// BuildWelcomeEmail creates the welcome email with both HTML and text bodies.
func BuildWelcomeEmail(data WelcomeEmailData) Email {
	return Email{
		To:       data.Email,
		Subject:  fmt.Sprintf("Welcome to %s - Your Account Details", data.SiteName),
		TextBody: buildWelcomeText(data),
		HTMLBody: buildWelcomeHTML(data),
	}
}

func buildWelcomeText(data WelcomeEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Welcome to %s, %s!\n\n", data.SiteName, data.FirstName))
	buf.WriteString("Your account has been created successfully.\n\n")
	buf.WriteString("Here are your login credentials:\n")
	buf.WriteString(fmt.Sprintf("Email: %s\n", data.Email))
	buf.WriteString(fmt.Sprintf("Password: %s\n\n", data.Password))
	buf.WriteString("Please change your password after your first sign-in.\n")
	return buf.String()
}

func buildWelcomeHTML(data WelcomeEmailData) string {
	tmpl := template.Must(template.New("welcome").Parse(welcomeHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const welcomeHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Helvetica Neue', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <!-- Header -->
          <tr>
            <td style="padding: 32px 32px 24px; text-align: center; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 24px; font-weight: 600; color: #4f46e5;">{{.SiteName}}</h1>
            </td>
          </tr>

          <!-- Content -->
          <tr>
            <td style="padding: 32px;">
              <p style="margin: 0 0 24px; font-size: 16px; color: #374151; line-height: 1.5;">
                Welcome, {{.FirstName}}! Your account has been created successfully.
              </p>

              <p style="margin: 0 0 8px; font-size: 14px; color: #6b7280;">
                Here are your login credentials:
              </p>

              <!-- Credentials Box -->
              <div style="background-color: #f3f4f6; border-radius: 8px; padding: 24px; margin-bottom: 24px;">
                <p style="margin: 0 0 8px; font-size: 14px; color: #1f2937;"><strong>Email:</strong> {{.Email}}</p>
                <p style="margin: 0; font-size: 14px; color: #1f2937;"><strong>Password:</strong> <span style="font-family: 'Courier New', monospace;">{{.Password}}</span></p>
              </div>

              <p style="margin: 0; font-size: 13px; color: #9ca3af;">
                Please change your password after your first sign-in.
              </p>
            </td>
          </tr>

          <!-- Footer -->
          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
                If you did not expect this email, contact your administrator.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
