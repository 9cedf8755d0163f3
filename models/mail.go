package models

// MailMessage describes one outgoing email. The mailer fills From with its
// configured sender when it is left empty.
type MailMessage struct {
	From    string
	To      string
	Subject string
	Body    string
}
