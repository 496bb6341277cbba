package schema

import (
	"errors"
	"testing"

	"github.com/terra-clan/academy-api/internal/models"
)

func fieldSet(t *testing.T, err error) map[string]bool {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	out := make(map[string]bool)
	for _, f := range verr.Fields {
		out[f.Field] = true
	}
	return out
}

func TestValidateCreate_User(t *testing.T) {
	body := []byte(`{"username":"ana","password":"secret1","email":"ana@x.pt","name":"Ana","isAdmin":true}`)
	in, err := ValidateCreate[models.UserInput](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *in.Username != "ana" || *in.Email != "ana@x.pt" {
		t.Errorf("unexpected decode: %+v", in)
	}
	if in.Role != nil {
		t.Errorf("expected role to be absent, got %q", *in.Role)
	}
}

func TestValidateCreate_ReportsEveryField(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		fields []string
	}{
		{
			name:   "missing required fields",
			body:   `{"username":"ana"}`,
			fields: []string{"password", "email", "name"},
		},
		{
			name:   "wrong primitive types",
			body:   `{"username":1,"password":"x","email":true,"name":"Ana"}`,
			fields: []string{"username", "email"},
		},
		{
			name:   "mixed type and presence errors",
			body:   `{"username":"ana","password":["x"]}`,
			fields: []string{"password", "email", "name"},
		},
		{
			name:   "role outside enum",
			body:   `{"username":"ana","password":"x","email":"a@x.pt","name":"Ana","role":"root"}`,
			fields: []string{"role"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateCreate[models.UserInput]([]byte(tt.body))
			got := fieldSet(t, err)
			if len(got) != len(tt.fields) {
				t.Errorf("expected %d field errors, got %v", len(tt.fields), got)
			}
			for _, f := range tt.fields {
				if !got[f] {
					t.Errorf("expected error for field %q, got %v", f, got)
				}
			}
		})
	}
}

func TestValidateCreate_NotAnObject(t *testing.T) {
	for _, body := range []string{``, `null`, `[1,2]`, `"x"`} {
		if _, err := ValidateCreate[models.ModuleInput]([]byte(body)); err == nil {
			t.Errorf("body %q: expected validation error", body)
		}
	}
}

func TestValidateCreate_Challenge(t *testing.T) {
	body := []byte(`{
		"title": "Classificação de Imagens",
		"description": "d",
		"difficulty": "Médio",
		"category": "Computer Vision",
		"tags": ["Python", "TensorFlow"],
		"endDate": "2026-10-20T00:00:00Z",
		"icon": "fa-code",
		"participants": 99
	}`)
	in, err := ValidateCreate[models.ChallengeInput](body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in.Tags) != 2 || in.EndDate == nil || in.StartDate != nil {
		t.Errorf("unexpected decode: %+v", in)
	}

	_, err = ValidateCreate[models.ChallengeInput]([]byte(`{"title":"t","description":"d","difficulty":"x","category":"c","icon":"i","endDate":"tomorrow"}`))
	if got := fieldSet(t, err); !got["endDate"] || len(got) != 1 {
		t.Errorf("expected only endDate error, got %v", got)
	}
}

func TestValidatePartialUpdate(t *testing.T) {
	in, err := ValidatePartialUpdate[models.LearningPathInput]([]byte(`{"title":"Novo título"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Title == nil || *in.Title != "Novo título" || in.Description != nil {
		t.Errorf("unexpected decode: %+v", in)
	}

	if _, err := ValidatePartialUpdate[models.LearningPathInput]([]byte(`{}`)); err == nil {
		t.Error("expected error for empty update")
	}
	if _, err := ValidatePartialUpdate[models.LearningPathInput]([]byte(`{"unknown":1}`)); err == nil {
		t.Error("expected error when no recognized field is present")
	}

	_, err = ValidatePartialUpdate[models.LearningPathInput]([]byte(`{"totalModules":"twelve","title":null}`))
	got := fieldSet(t, err)
	if !got["totalModules"] || !got["title"] {
		t.Errorf("expected totalModules and title errors, got %v", got)
	}
}

func TestValidationError_Message(t *testing.T) {
	_, err := ValidateCreate[models.LearningPathInput]([]byte(`{}`))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Message() != "Invalid learning path data" {
		t.Errorf("unexpected message: %s", verr.Message())
	}
	if len(verr.Fields) != 7 {
		t.Errorf("expected 7 missing fields, got %d: %v", len(verr.Fields), verr.Fields)
	}
}
