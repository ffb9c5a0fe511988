// Azure OpenAI plugin for Firebase Genkit Go
// Provides integration with Azure-hosted OpenAI deployments through the
// OpenAI-compatible API surface.

package aoai

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

const provider = "aoai"

// AzureOpenAI is a plugin that provides integration with Azure OpenAI
// chat deployments.
type AzureOpenAI struct {
	// Endpoint is the Azure resource endpoint, e.g. https://myresource.openai.azure.com.
	// If empty, the environment variable "AZURE_OPENAI_ENDPOINT" is consulted.
	Endpoint string
	// APIKey is the API key for the resource. If empty, the environment
	// variable "AZURE_OPENAI_API_KEY" is consulted.
	APIKey string
	// APIVersion selects the service API version. Defaults to 2024-05-01-preview.
	APIVersion string
	// Deployment is the chat deployment name to expose as a model.
	Deployment string

	openAICompatible *compat_oai.OpenAICompatible
}

// Name implements genkit.Plugin.
func (a *AzureOpenAI) Name() string {
	return provider
}

// Init implements genkit.Plugin.
func (a *AzureOpenAI) Init(ctx context.Context) []api.Action {
	endpoint := a.Endpoint
	apiKey := a.APIKey
	apiVersion := a.APIVersion

	if endpoint == "" {
		endpoint = os.Getenv("AZURE_OPENAI_ENDPOINT")
	}
	if apiKey == "" {
		apiKey = os.Getenv("AZURE_OPENAI_API_KEY")
	}
	if apiVersion == "" {
		apiVersion = "2024-05-01-preview"
	}

	if endpoint == "" || apiKey == "" {
		panic("aoai plugin initialization failed: endpoint and apiKey are required (set AZURE_OPENAI_ENDPOINT and AZURE_OPENAI_API_KEY or pass them)")
	}

	if a.openAICompatible == nil {
		a.openAICompatible = &compat_oai.OpenAICompatible{}
	}

	a.openAICompatible.Opts = []option.RequestOption{
		azure.WithEndpoint(endpoint, apiVersion),
		azure.WithAPIKey(apiKey),
	}

	a.openAICompatible.Provider = provider
	compatActions := a.openAICompatible.Init(ctx)

	var actions []api.Action
	actions = append(actions, compatActions...)

	// Azure models are addressed by deployment name, so only the
	// configured deployment is defined up front.
	deployment := a.Deployment
	if deployment == "" {
		deployment = "gpt-35-turbo"
	}
	actions = append(actions, a.DefineModel(deployment, ai.ModelOptions{
		Label:    "Azure OpenAI " + deployment,
		Supports: &compat_oai.Multimodal,
		Versions: []string{deployment},
	}).(api.Action))

	return actions
}

// Model returns a model by deployment name.
func (a *AzureOpenAI) Model(g *genkit.Genkit, name string) ai.Model {
	return a.openAICompatible.Model(g, api.NewName(provider, name))
}

// DefineModel defines a model with the given deployment name and options.
func (a *AzureOpenAI) DefineModel(id string, opts ai.ModelOptions) ai.Model {
	return a.openAICompatible.DefineModel(provider, id, opts)
}

// DefineEmbedder defines an embedder with the given deployment name and options.
func (a *AzureOpenAI) DefineEmbedder(id string, opts *ai.EmbedderOptions) ai.Embedder {
	return a.openAICompatible.DefineEmbedder(provider, id, opts)
}

// Embedder returns an embedder by name.
func (a *AzureOpenAI) Embedder(g *genkit.Genkit, name string) ai.Embedder {
	return a.openAICompatible.Embedder(g, api.NewName(provider, name))
}

// ListActions returns a list of actions provided by this plugin.
func (a *AzureOpenAI) ListActions(ctx context.Context) []api.ActionDesc {
	return a.openAICompatible.ListActions(ctx)
}

// ResolveAction resolves an action by type and name.
func (a *AzureOpenAI) ResolveAction(atype api.ActionType, name string) api.Action {
	return a.openAICompatible.ResolveAction(atype, name)
}
