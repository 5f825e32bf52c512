package ingest

import (
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/quizraft/quizraft-backend/internal/model"
)

func newTestBuilder() *Builder {
	return NewBuilder(zerolog.Nop())
}

func quizFile(name string, rows int) File {
	data := "question,answer\n"
	for i := 0; i < rows; i++ {
		data += fmt.Sprintf("\"q%d\",\"[{\"\"text\"\":\"\"a%d\"\",\"\"is_correct\"\":true}]\"\n", i, i)
	}
	return File{Name: name, Data: []byte(data)}
}

func TestBuild_MultiplierLength(t *testing.T) {
	files := []File{quizFile("a.csv", 3), quizFile("b.csv", 2)}
	cfg := model.QuizConfig{QuestionCountMultiplier: 3}

	set, err := newTestBuilder().Build(files, cfg)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(set) != 15 {
		t.Fatalf("expected 5 rows x3 = 15 questions, got %d", len(set))
	}
	// File order and intra-file order are preserved within each replica.
	wantFirst := []string{"q0", "q1", "q2", "q0", "q1"}
	for i, want := range wantFirst {
		if set[i].Text != want {
			t.Errorf("set[%d].Text = %q, want %q", i, set[i].Text, want)
		}
	}
	if set[5].Text != "q0" {
		t.Errorf("second replica should restart at q0, got %q", set[5].Text)
	}
}

func TestBuild_DropsUnusableRows(t *testing.T) {
	data := []byte(`question,answer
"good","[{""text"":""a"",""is_correct"":true}]"
"bad json","not json at all"
"no correct option","[{""text"":""a"",""is_correct"":false}]"
"empty after filter","[{""label"":""a""}]"
`)
	cfg := model.QuizConfig{QuestionCountMultiplier: 1}

	set, err := newTestBuilder().Build([]File{{Name: "mixed.csv", Data: data}}, cfg)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(set) != 1 {
		t.Fatalf("expected 1 surviving question, got %d", len(set))
	}
	if set[0].Text != "good" {
		t.Errorf("expected surviving question %q, got %q", "good", set[0].Text)
	}
}

func TestBuild_NoSurvivingRowsIsError(t *testing.T) {
	data := []byte(`question,answer
"only bad","[not decodable json]"
`)
	cfg := model.QuizConfig{QuestionCountMultiplier: 1}

	_, err := newTestBuilder().Build([]File{{Name: "allbad.csv", Data: data}}, cfg)
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("expected ErrNoQuestions, got %v", err)
	}
}

func TestBuild_FirstBadFileAbortsAll(t *testing.T) {
	files := []File{
		{Name: "bad.csv", Data: []byte("one,two,three\nx,y,z\n")},
		quizFile("good.csv", 2),
	}
	cfg := model.QuizConfig{QuestionCountMultiplier: 1}

	_, err := newTestBuilder().Build(files, cfg)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError from first file, got %v", err)
	}
	if fe.Filename != "bad.csv" {
		t.Errorf("expected offending filename bad.csv, got %q", fe.Filename)
	}
}

func TestBuild_ShufflePreservesContent(t *testing.T) {
	files := []File{quizFile("a.csv", 10)}
	cfg := model.QuizConfig{QuestionCountMultiplier: 2, RandomiseOrder: true}

	set, err := newTestBuilder().Build(files, cfg)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	if len(set) != 20 {
		t.Fatalf("expected 20 questions, got %d", len(set))
	}

	got := make([]string, len(set))
	for i, q := range set {
		got[i] = q.Text
	}
	sort.Strings(got)

	want := make([]string, 0, 20)
	for i := 0; i < 10; i++ {
		want = append(want, fmt.Sprintf("q%d", i), fmt.Sprintf("q%d", i))
	}
	sort.Strings(want)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("shuffle changed content: got %v, want %v", got, want)
		}
	}
}
