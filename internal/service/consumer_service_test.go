package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResumeToPlainText(t *testing.T) {
	data := json.RawMessage(`{
		"experience": [
			{"company": "Acme", "role": "Engineer", "years": 3},
			{"company": "Globex", "role": "Senior Engineer"}
		],
		"summary": "Backend engineer.",
		"skills": ["Go", "Postgres", ""]
	}`)

	text := resumeToPlainText("My Resume", data)

	assert.Contains(t, text, "Resume Title: My Resume")
	assert.Contains(t, text, "Backend engineer.")
	assert.Contains(t, text, "Acme")
	assert.Contains(t, text, "Globex")
	assert.Contains(t, text, "Go")
	assert.Contains(t, text, "3")

	// Map iteration order must not leak into the output; the embedding
	// upsert dedupes on content equality.
	assert.Equal(t, text, resumeToPlainText("My Resume", data))
}

func TestResumeToPlainTextMalformedBody(t *testing.T) {
	text := resumeToPlainText("Broken", json.RawMessage(`{not json`))
	assert.Contains(t, text, "Resume Title: Broken")
}

func TestResumeToPlainTextEmptyBody(t *testing.T) {
	text := resumeToPlainText("Empty", nil)
	assert.Equal(t, "Resume Title: Empty\n\n", text)
}
