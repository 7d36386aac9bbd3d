package mail

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/MenuQR-api/internal/application/ports"
	"github.com/jhoicas/MenuQR-api/pkg/config"
)

func TestBuildMessage_TextAndHTML(t *testing.T) {
	gm := buildMessage("no-reply@menuqr.app", ports.Email{
		To: "ana@example.com", Subject: "Hola", TextBody: "texto plano", HTMLBody: "<p>html</p>",
	})
	var buf bytes.Buffer
	_, err := gm.WriteTo(&buf)
	require.NoError(t, err)

	raw := buf.String()
	assert.Contains(t, raw, "To: ana@example.com")
	assert.Contains(t, raw, "Subject: Hola")
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
}

func TestNew_FallsBackToLogMailer(t *testing.T) {
	m := New(config.SMTPConfig{}, zerolog.Nop())
	_, ok := m.(*LogMailer)
	require.True(t, ok)
	assert.NoError(t, m.Send(context.Background(), ports.Email{To: "x@y.z"}))
	assert.Equal(t, "disabled", Describe(config.SMTPConfig{}))

	_, ok = New(config.SMTPConfig{Host: "smtp.test", Port: 587}, zerolog.Nop()).(*SMTPMailer)
	assert.True(t, ok)
}
