// Package gemini implements product enhancement using Google Gemini.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pagelens/pagelens"
	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// maxPromptText bounds how much page text is sent with the prompt.
const maxPromptText = 8000

// Ensure Enhancer implements pagelens.Enhancer at compile time.
var _ pagelens.Enhancer = (*Enhancer)(nil)

// Enhancer fills gaps in heuristically extracted products using Gemini.
// It only ever adds to empty fields; values the strategies already
// extracted are left untouched.
type Enhancer struct {
	client *genai.Client
}

// NewEnhancer creates a new Enhancer.
func NewEnhancer(client *genai.Client) *Enhancer {
	return &Enhancer{client: client}
}

// patch is the response shape the model is asked to produce, one entry
// per input product, matched by index.
type patch struct {
	Index       int    `json:"index"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Brand       string `json:"brand,omitempty"`
}

// Enhance asks the model to fill missing descriptions, categories, and
// brands. The returned slice holds copies; the inputs are not mutated.
func (e *Enhancer) Enhance(ctx context.Context, pageText string, products []*pagelens.Product) ([]*pagelens.Product, error) {
	if len(products) == 0 {
		return nil, nil
	}

	prompt := BuildUserPrompt(pageText, products)
	config := BuildConfig()

	result, err := e.client.Models.GenerateContent(ctx, model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, pagelens.Errorf(pagelens.EINTERNAL, "gemini returned nil result")
	}

	var patches []patch
	if err := json.Unmarshal([]byte(result.Text()), &patches); err != nil {
		return nil, pagelens.Errorf(pagelens.EINTERNAL, "gemini returned unparseable patch list: %v", err)
	}

	out := make([]*pagelens.Product, len(products))
	for i, p := range products {
		cp := *p
		out[i] = &cp
	}
	for _, pt := range patches {
		if pt.Index < 0 || pt.Index >= len(out) {
			continue
		}
		p := out[pt.Index]
		if p.Description == "" && pt.Description != "" {
			p.Description = pt.Description
		}
		if p.Category == "" && pt.Category != "" {
			p.Category = pt.Category
		}
		if p.Brand == "" && pt.Brand != "" {
			p.Brand = pt.Brand
		}
	}
	return out, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You complete missing fields of products extracted from a web page. Respond with a JSON array of objects with keys index, description, category, brand. Only include fields you can infer from the page text; never invent prices or availability.",
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}

// BuildUserPrompt builds the user prompt containing the page text and the
// products needing enhancement.
func BuildUserPrompt(pageText string, products []*pagelens.Product) string {
	if len(pageText) > maxPromptText {
		pageText = pageText[:maxPromptText]
	}

	var sb strings.Builder
	sb.WriteString("<page>\n")
	sb.WriteString(pageText)
	sb.WriteString("\n</page>\n\n<products>\n")
	for i, p := range products {
		sb.WriteString("<product>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i)
		fmt.Fprintf(&sb, "<name>%s</name>\n", p.Name)
		fmt.Fprintf(&sb, "<description>%s</description>\n", p.Description)
		fmt.Fprintf(&sb, "<category>%s</category>\n", p.Category)
		fmt.Fprintf(&sb, "<brand>%s</brand>\n", p.Brand)
		sb.WriteString("</product>\n")
	}
	sb.WriteString("</products>\n\nFill the missing description, category, and brand fields.")
	return sb.String()
}
