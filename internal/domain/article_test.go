package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestArticleJSON_Fields(t *testing.T) {
	a := Article{
		BaseModel: BaseModel{ID: 7},
		Title:     "Paging in Go",
		Author:    "ada",
		Body:      "iterators",
	}

	raw, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal article: %v", err)
	}

	body := string(raw)
	for _, want := range []string{`"id":7`, `"title":"Paging in Go"`, `"author":"ada"`, `"body":"iterators"`, `"created_at":`, `"updated_at":`} {
		if !strings.Contains(body, want) {
			t.Errorf("json should contain %s, got: %s", want, body)
		}
	}
}
