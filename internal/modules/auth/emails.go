package auth

import (
	"bytes"
	"html/template"
	"strings"

	"curtaincrm/internal/domain"
	"curtaincrm/internal/pkg/mailer"
)

var (
	welcomeTemplate = template.Must(template.New("welcome").Parse(`<h2>Welcome, {{.FirstName}}!</h2>
<p>Your account has been created with the email <strong>{{.Email}}</strong>.</p>
<p>You can now sign in and start managing your curtain and wallpaper projects.</p>`))

	resetTemplate = template.Must(template.New("reset").Parse(`<h2>Password reset</h2>
<p>Hello {{.FirstName}},</p>
<p>We received a request to reset your password. Follow the link below to choose a new one:</p>
<p><a href="{{.URL}}">Reset my password</a></p>
<p>This link expires in {{.Expires}}. If you did not ask for a reset, ignore this email.</p>`))
)

func welcomeEmail(u *domain.User) (mailer.Message, error) {
	var body bytes.Buffer
	if err := welcomeTemplate.Execute(&body, u); err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		To:      u.Email,
		Subject: "Welcome to Curtain CRM",
		HTML:    body.String(),
		Text:    "Welcome, " + u.FirstName + "! Your account has been created.",
	}, nil
}

func resetEmail(u *domain.User, url, expires string) (mailer.Message, error) {
	var body bytes.Buffer
	err := resetTemplate.Execute(&body, struct {
		FirstName string
		URL       string
		Expires   string
	}{u.FirstName, url, expires})
	if err != nil {
		return mailer.Message{}, err
	}
	return mailer.Message{
		To:      u.Email,
		Subject: "Reset your password",
		HTML:    body.String(),
		Text:    "Reset your password: " + url,
	}, nil
}

func resetURL(frontendURL, token string) string {
	return strings.TrimRight(frontendURL, "/") + "/reset-password?token=" + token
}
