package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

var welcomeSubject = "Welcome to Mindstack"

var welcomeText = texttemplate.Must(texttemplate.New("welcome").Parse(
	`Hi {{.name}},

Welcome to Mindstack. Your account is ready: capture thoughts, track todos
and build habits from one place.

— The Mindstack team
`))

var welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome").Parse(
	`<p>Hi {{.name}},</p>
<p>Welcome to <strong>Mindstack</strong>. Your account is ready: capture
thoughts, track todos and build habits from one place.</p>
<p>— The Mindstack team</p>
`))

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var tb, hb bytes.Buffer
		if err = welcomeText.Execute(&tb, data); err != nil {
			return
		}
		if err = welcomeHTML.Execute(&hb, data); err != nil {
			return
		}
		return welcomeSubject, tb.String(), hb.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
