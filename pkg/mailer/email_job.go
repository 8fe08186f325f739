package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Template currently supports "welcome"; Subject/Text are used as-is when no
// template is given.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}
