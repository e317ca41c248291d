// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package translator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"golang.org/x/time/rate"

	"github.com/olegiv/artadmin/internal/model"
)

// OpenAIOptions configures the OpenAI translator.
type OpenAIOptions struct {
	APIKey  string
	Model   string  // e.g. gpt-4o-mini
	RPS     float64 // requests per second across all callers
	BaseURL string  // optional, for compatible endpoints and tests
}

// OpenAI translates through the chat completions API.
type OpenAI struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAI creates an OpenAI translator.
func NewOpenAI(opts OpenAIOptions) *OpenAI {
	reqOpts := []option.RequestOption{option.WithAPIKey(opts.APIKey)}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL), option.WithMaxRetries(0))
	}
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	if opts.RPS <= 0 {
		opts.RPS = 1
	}
	burst := int(opts.RPS)
	if burst < 1 {
		burst = 1
	}

	return &OpenAI{
		client:  openai.NewClient(reqOpts...),
		model:   opts.Model,
		limiter: rate.NewLimiter(rate.Limit(opts.RPS), burst),
	}
}

// New returns an OpenAI translator when apiKey is set and Disabled otherwise.
func New(apiKey, modelName string, rps float64) Translator {
	if apiKey == "" {
		return Disabled{}
	}
	return NewOpenAI(OpenAIOptions{APIKey: apiKey, Model: modelName, RPS: rps})
}

// TranslateText implements Translator.
func (t *OpenAI) TranslateText(ctx context.Context, text string, source, target Language) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	out, err := t.complete(ctx, buildTextPrompt(source, target), text)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// TranslatePost implements Translator.
func (t *OpenAI) TranslatePost(ctx context.Context, fields model.PostFields, source, target Language) (model.PostFields, error) {
	payload, err := json.Marshal(fields)
	if err != nil {
		return model.PostFields{}, fmt.Errorf("encoding post fields: %w", err)
	}

	out, err := t.complete(ctx, buildPostPrompt(source, target), string(payload))
	if err != nil {
		return model.PostFields{}, err
	}

	translated, err := parsePostFields(out)
	if err != nil {
		return model.PostFields{}, err
	}

	translated.Content, err = restoreStructure(fields.Content, translated.Content)
	if err != nil {
		return model.PostFields{}, err
	}
	return translated, nil
}

func (t *OpenAI) complete(ctx context.Context, system, user string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", err
	}

	resp, err := t.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(t.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildTextPrompt(source, target Language) string {
	return fmt.Sprintf(`You are a professional translator for an art marketplace.
Translate the user's text from %s to %s.
Keep inline markdown, links and proper names unchanged.
Respond ONLY with the translated text, no quotes and no commentary.`, source, target)
}

func buildPostPrompt(source, target Language) string {
	return fmt.Sprintf(`You are a professional translator and SEO editor for an art marketplace.
The user sends a blog post as a JSON object. Translate every text value from %s to %s.

Rules:
- Respond ONLY with a JSON object of exactly the same shape (no markdown code fences, no extra text)
- Keep the "content" array in the same order with the same number of blocks
- Do not change "type", "level", "ordered" or "url" values
- Keep the same number of "items" in list blocks
- Translate "meta_keywords" and "list_tags" entry by entry
- Keep inline markdown and proper names (artists, collections) unchanged`, source, target)
}

// parsePostFields extracts the JSON object from a model response, tolerating
// code fences and surrounding prose.
func parsePostFields(response string) (model.PostFields, error) {
	var fields model.PostFields

	cleaned := strings.TrimSpace(response)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		start := strings.Index(response, "{")
		end := strings.LastIndex(response, "}")
		if start < 0 || end <= start {
			return model.PostFields{}, fmt.Errorf("no JSON found in response: %w", err)
		}
		if err2 := json.Unmarshal([]byte(response[start:end+1]), &fields); err2 != nil {
			return model.PostFields{}, fmt.Errorf("could not parse JSON from response: %w (original: %w)", err2, err)
		}
	}

	if fields.Title == "" {
		return model.PostFields{}, errors.New("incomplete translation: title is required")
	}
	return fields, nil
}
