package mailer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	subject, text, html, err := Render("welcome", map[string]any{"name": "Ada"})
	require.NoError(t, err)
	require.Equal(t, "Welcome to Mindstack", subject)
	require.Contains(t, text, "Hi Ada,")
	require.Contains(t, html, "Hi Ada,")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, _, html, err := Render("welcome", map[string]any{"name": "<script>alert(1)</script>"})
	require.NoError(t, err)
	require.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, _, err := Render("nonexistent", nil)
	require.Error(t, err)
}
