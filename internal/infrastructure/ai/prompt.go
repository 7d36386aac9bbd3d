package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jhoicas/MenuQR-api/internal/application/dto"
)

const (
	maxDescriptionRunes = 280
	maxTags             = 5
)

const systemPromptES = `Eres redactor gastronómico para cartas digitales de restaurantes.
Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown) con esta estructura exacta:
{"description": "<máximo 280 caracteres, en español>", "tags": ["<etiqueta corta>", "..."]}
Reglas:
- Describe sabor, textura y origen sin inventar ingredientes que no se indiquen.
- tags: hasta 5 etiquetas en minúscula (ej. vegano, picante, sin gluten).`

const systemPromptEN = `You write dish descriptions for digital restaurant menus.
Return ONLY a valid JSON object (no markdown) with this exact shape:
{"description": "<at most 280 characters, in English>", "tags": ["<short tag>", "..."]}
Rules:
- Describe flavour, texture and origin without inventing ingredients that were not given.
- tags: up to 5 lowercase tags (e.g. vegan, spicy, gluten free).`

func systemPrompt(language string) string {
	if language == "en" {
		return systemPromptEN
	}
	return systemPromptES
}

func userPrompt(in dto.AIDescriptionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Producto: %s\n", in.ProductName)
	if in.Category != "" {
		fmt.Fprintf(&b, "Categoría: %s\n", in.Category)
	}
	if len(in.Ingredients) > 0 {
		fmt.Fprintf(&b, "Ingredientes: %s\n", strings.Join(in.Ingredients, ", "))
	}
	if in.Tone != "" {
		fmt.Fprintf(&b, "Tono: %s\n", in.Tone)
	}
	return b.String()
}

// descriptionPayload es el JSON que esperamos del modelo.
type descriptionPayload struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func decodeDescription(raw, provider string) (*dto.AIDescriptionResponse, error) {
	var p descriptionPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es JSON válido: %w", err)
	}
	desc := strings.TrimSpace(p.Description)
	if desc == "" {
		return nil, fmt.Errorf("AI: el modelo no devolvió descripción")
	}
	if r := []rune(desc); len(r) > maxDescriptionRunes {
		desc = strings.TrimSpace(string(r[:maxDescriptionRunes]))
	}
	tags := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && len(tags) < maxTags {
			tags = append(tags, t)
		}
	}
	return &dto.AIDescriptionResponse{Description: desc, Tags: tags, Provider: provider}, nil
}
