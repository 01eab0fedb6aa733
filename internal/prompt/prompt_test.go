package prompt

import (
	"reflect"
	"strings"
	"testing"

	"sitechat/internal/extract"
)

func TestBuildSummaryPrompt_Shape(t *testing.T) {
	pc := extract.PageContent{
		Title:           "Example",
		MetaDescription: "Desc",
		Keywords:        "a,b",
		MainText:        "Hello world",
	}
	msgs := BuildSummaryPrompt(pc)
	if len(msgs) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != RoleSystem || msgs[1].Role != RoleHuman {
		t.Errorf("unexpected role ordering: %v, %v", msgs[0].Role, msgs[1].Role)
	}
	human := msgs[1].Text
	for _, label := range []string{"Title: Example", "Meta Description: Desc", "Keywords: a,b", "Main Content: Hello world..."} {
		if !strings.Contains(human, label) {
			t.Errorf("human message missing %q:\n%s", label, human)
		}
	}
}

func TestBuildSummaryPrompt_TruncatesAtBound(t *testing.T) {
	long := strings.Repeat("a", SummaryContentLimit+500)
	msgs := BuildSummaryPrompt(extract.PageContent{MainText: long})
	human := msgs[1].Text

	want := "Main Content: " + long[:SummaryContentLimit] + "..."
	if !strings.HasSuffix(human, want) {
		t.Errorf("expected exactly the first %d characters plus marker", SummaryContentLimit)
	}
	if strings.Contains(human, strings.Repeat("a", SummaryContentLimit+1)) {
		t.Errorf("content beyond the bound leaked into the prompt")
	}
}

func TestBuildSummaryPrompt_EmptyContentSentinel(t *testing.T) {
	msgs := BuildSummaryPrompt(extract.Empty())
	human := msgs[1].Text
	if !strings.Contains(human, "Main Content: "+NoContent+"...") {
		t.Errorf("empty main text should become %q, got:\n%s", NoContent, human)
	}
	if !strings.Contains(human, "Title: "+extract.NoTitle) {
		t.Errorf("expected sentinel title in prompt:\n%s", human)
	}
}

func TestBuildQuestionPrompt_TruncatesAtBound(t *testing.T) {
	long := strings.Repeat("b", QuestionContentLimit+1000)
	msgs := BuildQuestionPrompt("What is this?", long)
	human := msgs[1].Text
	if !strings.Contains(human, long[:QuestionContentLimit]) {
		t.Errorf("expected the first %d characters of content", QuestionContentLimit)
	}
	if strings.Contains(human, strings.Repeat("b", QuestionContentLimit+1)) {
		t.Errorf("content beyond the bound leaked into the prompt")
	}
	if !strings.Contains(human, "Question: What is this?") {
		t.Errorf("question must appear verbatim:\n%s", human)
	}
}

func TestBuildQuestionPrompt_EmptyContent(t *testing.T) {
	msgs := BuildQuestionPrompt("What is this page about?", "")
	if len(msgs) != 2 {
		t.Fatalf("expected exactly 2 messages, got %d", len(msgs))
	}
	if msgs[0].Text != QuestionSystem {
		t.Errorf("system instruction must be present verbatim")
	}
	if !strings.Contains(msgs[0].Text, "Politely refuse general conversation") {
		t.Errorf("anti-chitchat policy missing from system message")
	}
}

func TestPromptBuilders_Pure(t *testing.T) {
	pc := extract.PageContent{Title: "T", MetaDescription: "D", Keywords: "K", MainText: strings.Repeat("x", 3000)}
	if !reflect.DeepEqual(BuildSummaryPrompt(pc), BuildSummaryPrompt(pc)) {
		t.Errorf("BuildSummaryPrompt is not deterministic")
	}
	q, c := "why?", strings.Repeat("y", 6000)
	if !reflect.DeepEqual(BuildQuestionPrompt(q, c), BuildQuestionPrompt(q, c)) {
		t.Errorf("BuildQuestionPrompt is not deterministic")
	}
}

func TestTruncate_MultiByteSafe(t *testing.T) {
	s := strings.Repeat("é", SummaryContentLimit+10)
	msgs := BuildSummaryPrompt(extract.PageContent{MainText: s})
	human := msgs[1].Text
	if strings.Contains(human, "\uFFFD") {
		t.Errorf("truncation split a multi-byte character")
	}
}
