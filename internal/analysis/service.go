package analysis

import (
	"context"
	"errors"
	"log"

	"sitechat/internal/extract"
	"sitechat/internal/fetch"
	"sitechat/internal/llm"
	"sitechat/internal/prompt"
)

// Fallback is the one string the UI ever sees for a failed model call.
// Failures are logged with their real cause; the user still gets text.
const Fallback = "Analysis could not be retrieved."

// Fetcher retrieves the raw bytes of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Result is what both operations hand back to the front ends. Text is
// always non-empty.
type Result struct {
	Text string `json:"text"`
}

// ErrNoContent is returned by Content when a page yields no usable text.
var ErrNoContent = errors.New("no content could be extracted from the URL")

// Service runs the stateless URL -> summary and question -> answer
// pipelines. All collaborators are injected; the service holds no
// cross-request state.
type Service struct {
	fetcher    Fetcher
	summarizer llm.Invoker
	answerer   llm.Invoker
}

// NewService wires the pipeline. summarizer and answerer may be the same
// client; the chat UI traditionally uses a larger model for answering.
func NewService(fetcher Fetcher, summarizer, answerer llm.Invoker) *Service {
	return &Service{
		fetcher:    fetcher,
		summarizer: summarizer,
		answerer:   answerer,
	}
}

// Summarize fetches the page once, derives all four fields from a single
// parse, and asks the model for a short summary. A failed fetch degrades
// to an all-sentinel prompt rather than an error: the model still answers
// and the caller still gets a Result. The extracted content is returned
// alongside so front ends can cache MainText for follow-up questions.
func (s *Service) Summarize(ctx context.Context, url string) (Result, extract.PageContent) {
	var pc extract.PageContent
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		var fe *fetch.Error
		if errors.As(err, &fe) {
			log.Printf("[Analysis] fetch failed for %s (%s): %v", url, fe.Kind, err)
		} else {
			log.Printf("[Analysis] fetch failed for %s: %v", url, err)
		}
		pc = extract.Empty()
	} else {
		pc = extract.Extract(body)
	}

	messages := prompt.BuildSummaryPrompt(pc)
	text, err := s.summarizer.Invoke(ctx, messages)
	if err != nil {
		log.Printf("[Analysis] summary invocation failed for %s: %v", url, err)
		text = Fallback
	}
	return Result{Text: text}, pc
}

// Answer responds to a free-form question against already-extracted
// content. No fetch happens here; the caller owns the content.
func (s *Service) Answer(ctx context.Context, question, content string) Result {
	messages := prompt.BuildQuestionPrompt(question, content)
	text, err := s.answerer.Invoke(ctx, messages)
	if err != nil {
		log.Printf("[Analysis] answer invocation failed: %v", err)
		text = Fallback
	}
	return Result{Text: text}
}

// Content fetches and extracts a page's main text for the stateless /ask
// path, which supplies a URL instead of cached content.
func (s *Service) Content(ctx context.Context, url string) (string, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	pc := extract.Extract(body)
	if pc.MainText == "" {
		return "", ErrNoContent
	}
	return pc.MainText, nil
}
