package service

import (
	"bytes"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/Z3ron7/server/models"
)

var mailTemplates = template.Must(template.New("mail").Parse(`
{{define "verify"}}<p>Hello {{.Name}},</p>
<p>Open the link below to verify your Smart Exam Hub account.</p>
<p><a href="{{.Link}}">Verify my account</a></p>
<p>Your verification code is <b>{{.Code}}</b>.</p>{{end}}
{{define "accepted"}}<p>Hello {{.Name}},</p>
<p>Your Smart Exam Hub account was approved. You can now log in.</p>{{end}}
{{define "registered"}}<p>A new {{.Status}} has registered and requires verification.</p>
<p>Name: {{.Name}}<br>Username: {{.Username}}<br>School ID: {{.SchoolID}}</p>{{end}}
{{define "reset"}}<p>Hello {{.Name}},</p>
<p>Use the link below to choose a new password. If you did not ask for it, ignore this mail.</p>
<p><a href="{{.Link}}">Reset my password</a></p>{{end}}
`))

func renderMail(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := mailTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// verificationLink points at the public verify route.
func verificationLink(publicURL string, userID int64, code string) string {
	return strings.TrimRight(publicURL, "/") + "/verify/" + strconv.FormatInt(userID, 10) + "/" + url.PathEscape(code)
}

func resetLink(publicURL, token string) string {
	return strings.TrimRight(publicURL, "/") + "/reset-password?token=" + url.QueryEscape(token)
}

func verificationMail(publicURL string, user models.User, code string) (models.MailMessage, error) {
	body, err := renderMail("verify", struct {
		Name, Link, Code string
	}{user.Name, verificationLink(publicURL, user.UserID, code), code})
	if err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{To: user.Username, Subject: "Verify your Smart Exam Hub account", Body: body}, nil
}

func acceptedMail(user models.User) (models.MailMessage, error) {
	body, err := renderMail("accepted", user)
	if err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{To: user.Username, Subject: "Your account was approved", Body: body}, nil
}

func registrationMail(adminEmail string, user models.User) (models.MailMessage, error) {
	body, err := renderMail("registered", user)
	if err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{To: adminEmail, Subject: "New Exam-taker Registration", Body: body}, nil
}

func resetMail(publicURL string, user models.User, token string) (models.MailMessage, error) {
	body, err := renderMail("reset", struct {
		Name, Link string
	}{user.Name, resetLink(publicURL, token)})
	if err != nil {
		return models.MailMessage{}, err
	}

	return models.MailMessage{To: user.Username, Subject: "Reset your password", Body: body}, nil
}
