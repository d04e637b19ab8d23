package client

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/atinyakov/notekeeper/internal/models"
)

// Prompter reads field values line by line, echoing a label to out before
// each read.
type Prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewPrompter returns a Prompter reading from in and writing labels to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return NewScannerPrompter(bufio.NewScanner(in), out)
}

// NewScannerPrompter returns a Prompter that shares an existing scanner.
func NewScannerPrompter(s *bufio.Scanner, out io.Writer) *Prompter {
	return &Prompter{scanner: s, out: out}
}

// Ask prints label and returns the next trimmed line.
func (p *Prompter) Ask(label string) string {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(p.scanner.Text())
}

// askOptional returns nil for an empty answer, so a patch leaves the field
// unchanged.
func (p *Prompter) askOptional(label string) *string {
	v := p.Ask(label + " (empty to keep)")
	if v == "" {
		return nil
	}
	return &v
}

func (p *Prompter) Register() models.RegisterInput {
	return models.RegisterInput{Name: p.Ask("Name"), Email: p.Ask("Email"), Password: p.Ask("Password")}
}

func (p *Prompter) Login() models.LoginInput {
	return models.LoginInput{Email: p.Ask("Email"), Password: p.Ask("Password")}
}

func (p *Prompter) Note() models.NoteInput {
	return models.NoteInput{Title: p.Ask("Title"), Description: p.Ask("Description"), Tag: p.Ask("Tag")}
}

func (p *Prompter) NotePatch() models.NotePatch {
	return models.NotePatch{
		Title:       p.askOptional("Title"),
		Description: p.askOptional("Description"),
		Tag:         p.askOptional("Tag"),
	}
}

func (p *Prompter) Todo() models.TodoInput {
	return models.TodoInput{Title: p.Ask("Title"), Description: p.Ask("Description")}
}

func (p *Prompter) TodoPatch() models.TodoPatch {
	patch := models.TodoPatch{Title: p.askOptional("Title"), Description: p.askOptional("Description")}
	if done := p.askOptional("Completed (y/n)"); done != nil {
		v := strings.EqualFold(*done, "y") || strings.EqualFold(*done, "yes")
		patch.IsCompleted = &v
	}
	return patch
}

func (p *Prompter) WebSearch() models.WebSearchInput {
	return models.WebSearchInput{Title: p.Ask("Title"), Content: p.Ask("Content"), ReferenceLink: p.Ask("Link")}
}

func (p *Prompter) WebSearchExtract() models.WebSearchExtractInput {
	return models.WebSearchExtractInput{Title: p.Ask("Title"), URL: p.Ask("URL")}
}

func (p *Prompter) WebSearchPatch() models.WebSearchPatch {
	return models.WebSearchPatch{
		Title:         p.askOptional("Title"),
		Content:       p.askOptional("Content"),
		ReferenceLink: p.askOptional("Link"),
	}
}
