package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

const TemplateWelcome = "welcome"

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif; color: #222;">
    <h2>Welcome to Fitness Tracker{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Your account is ready. Set your first goal and log a workout to get started.</p>
    <p style="color: #888; font-size: 12px;">If you did not sign up, you can ignore this email.</p>
  </body>
</html>
`))

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, welcomeData(data)); err != nil {
			return "", "", "", err
		}
		return "Welcome to Fitness Tracker",
			"Welcome to Fitness Tracker! Your account is ready.",
			buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}

type welcomeVars struct {
	Name string
}

func welcomeData(data map[string]any) welcomeVars {
	v := welcomeVars{}
	if data != nil {
		if n, ok := data["name"].(string); ok {
			v.Name = n
		}
	}
	return v
}
