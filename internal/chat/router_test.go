package chat_test

import (
	"context"
	"testing"

	"github.com/muhandis-app/assistant-api/internal/chat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name       string
	configured bool
	resp       *chat.Response
}

func (p *stubProvider) Name() string              { return p.name }
func (p *stubProvider) AvailableModels() []string { return []string{"stub-1"} }
func (p *stubProvider) DefaultModel() string      { return "stub-1" }
func (p *stubProvider) IsConfigured() bool        { return p.configured }

func (p *stubProvider) Complete(ctx context.Context, req chat.Request, model string) (*chat.Response, error) {
	resp := *p.resp
	resp.Model = model
	return &resp, nil
}

func TestRouterGetProvider(t *testing.T) {
	r := chat.NewRouter("alpha")
	r.RegisterProvider(&stubProvider{name: "alpha", configured: true, resp: &chat.Response{Text: "a"}})
	r.RegisterProvider(&stubProvider{name: "beta", configured: false})

	p, err := r.GetProvider("alpha")
	require.NoError(t, err)
	assert.Equal(t, "alpha", p.Name())

	// Empty name falls back to the default provider.
	p, err = r.GetProvider("")
	require.NoError(t, err)
	assert.Equal(t, "alpha", p.Name())

	_, err = r.GetProvider("missing")
	assert.Error(t, err)

	_, err = r.GetProvider("beta")
	assert.Error(t, err)
}

func TestRouterComplete(t *testing.T) {
	r := chat.NewRouter("alpha")
	r.RegisterProvider(&stubProvider{name: "alpha", configured: true, resp: &chat.Response{Text: "hello"}})

	resp, err := r.Complete(context.Background(), chat.Request{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)
	assert.Equal(t, "stub-1", resp.Model)
}

func TestRouterCompleteNoProviders(t *testing.T) {
	r := chat.NewRouter("alpha")

	_, err := r.Complete(context.Background(), chat.Request{Message: "hi"})
	assert.Error(t, err)
}

func TestListProvidersSkipsUnconfigured(t *testing.T) {
	r := chat.NewRouter("alpha")
	r.RegisterProvider(&stubProvider{name: "alpha", configured: true, resp: &chat.Response{}})
	r.RegisterProvider(&stubProvider{name: "beta", configured: false})

	names := r.ListProviders()
	assert.Equal(t, []string{"alpha"}, names)
}
