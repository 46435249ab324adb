package prompt

import (
	"strings"
	"testing"

	"github.com/ignite/letterdesk/internal/domain"
)

func sampleFields() *domain.LetterFields {
	return &domain.LetterFields{
		ApplicantName:          "Jane Doe",
		Relationship:           "Thesis advisor",
		DurationKnown:          "3 years",
		Institution:            "State University",
		TargetProgram:          "PhD in Computer Science",
		TargetInstitution:      "MIT",
		FieldDomain:            "Distributed Systems",
		ObservedQualities:      "Analytical rigor",
		Achievements:           "Published two papers",
		SoftTraits:             "Collaborative",
		ReferrerName:           "Prof. Alan Smith",
		ReferrerTitle:          "Professor of Computer Science",
		ReferrerEmail:          "prof@uni.edu",
		Tone:                   "formal",
		LORType:                "academic",
		RecommendationStrength: "very strong",
	}
}

func TestBuildIncludesAllFields(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}

	out, err := b.Build(sampleFields())
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, want := range []string{
		"Name: Jane Doe",
		"Target Program/Role: PhD in Computer Science",
		"Target Institution: MIT",
		"Field/Domain: Distributed Systems",
		"Referrer Name: Prof. Alan Smith",
		"Duration Known: 3 years",
		"Tone: formal",
		"Letter Type: academic",
		"Recommendation Strength: very strong",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildAnecdoteConditional(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}

	f := sampleFields()
	out, err := b.Build(f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if strings.Contains(out, "Notable Anecdote/Example:") {
		t.Error("anecdote line rendered without an anecdote")
	}

	anecdote := "She debugged a consensus bug overnight."
	f.Anecdote = &anecdote
	out, err = b.Build(f)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if !strings.Contains(out, "Notable Anecdote/Example: "+anecdote) {
		t.Error("anecdote line missing")
	}
}

func TestBuildDeterministic(t *testing.T) {
	b, err := NewBuilder()
	if err != nil {
		t.Fatalf("new builder: %v", err)
	}

	a, err := b.Build(sampleFields())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	c, err := b.Build(sampleFields())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if a != c {
		t.Error("identical fields produced different prompts")
	}
}
