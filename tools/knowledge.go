// Package tools provides the assistant's built-in tools: the static
// parenting book knowledge base and the DuckDuckGo web search client.
package tools

import (
	"context"
	"fmt"
	"os"
	"strings"

	parentassist "github.com/kristiyanbstoychev/Parent-Assistant-AI-Agent"
)

// BookKnowledgeName is the name the model uses to call the book tool.
const BookKnowledgeName = "book_knowledge"

// bookKnowledgeDescription steers the model to consult the book
// before searching the web.
const bookKnowledgeDescription = "Use this tool FIRST for parenting questions. " +
	"Contains expert advice from 'How to Talk So Little Kids Will Listen' " +
	"covering: handling emotions, cooperation, conflict resolution, lying, " +
	"tantrums, cleanup, shyness, safety, and general parent-child " +
	"communication. This should be your primary source."

// BookKnowledge serves a static knowledge document. The document is
// small enough that every call returns it whole, wrapped in framing
// text, and lets the model pick out the relevant parts. There is no
// retrieval step to get wrong.
type BookKnowledge struct {
	content string
}

// LoadBookKnowledge reads the knowledge document from path. A missing
// or empty document is a startup error: the assistant must not run
// with a silently absent primary source.
func LoadBookKnowledge(path string) (*BookKnowledge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load book knowledge from %q: %w", path, err)
	}
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, fmt.Errorf("load book knowledge from %q: document is empty", path)
	}
	return &BookKnowledge{content: content}, nil
}

// NewBookKnowledge creates the tool from in-memory content. Intended
// for tests; production loading goes through LoadBookKnowledge.
func NewBookKnowledge(content string) *BookKnowledge {
	return &BookKnowledge{content: strings.TrimSpace(content)}
}

// Name implements Tool.
func (b *BookKnowledge) Name() string { return BookKnowledgeName }

// Description implements Tool.
func (b *BookKnowledge) Description() string { return bookKnowledgeDescription }

// Call returns the entire document regardless of the input query.
// Empty content produces an explicit observation rather than empty
// text, so the model knows the source was unavailable.
func (b *BookKnowledge) Call(_ context.Context, _ string) (string, error) {
	if b.content == "" {
		return "Book summary not loaded. Cannot provide guidance.", nil
	}
	return fmt.Sprintf(
		"Parenting Guidance from \"How to Talk So Little Kids Will Listen\":\n\n"+
			"%s\n\n"+
			"This guidance addresses common parenting situations using "+
			"research-backed communication techniques. Apply these principles "+
			"to your specific situation.",
		b.content,
	), nil
}

var _ parentassist.Tool = (*BookKnowledge)(nil)
