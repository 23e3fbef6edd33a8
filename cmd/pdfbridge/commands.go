package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/JaimeStill/pdfbridge/internal/search"
	"github.com/JaimeStill/pdfbridge/internal/viewer"
)

// Command is one inspection or mutation the CLI can run against an open document.
type Command interface {
	Name() string
	Description() string
	// NeedsDocument reports whether a document must be opened before Run.
	NeedsDocument() bool
	Run(ctx context.Context, v *viewer.View, opts options) (any, error)
}

type options struct {
	query    string
	page     int
	rotation int
}

var commands = map[string]Command{}

func registerCommand(c Command) {
	commands[c.Name()] = c
}

func getCommand(name string) (Command, bool) {
	c, ok := commands[name]
	return c, ok
}

func listCommands() []Command {
	result := make([]Command, 0, len(commands))
	for _, c := range commands {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}

func init() {
	registerCommand(infoCommand{})
	registerCommand(annotationsCommand{})
	registerCommand(widgetsCommand{})
	registerCommand(searchCommand{})
	registerCommand(rotateCommand{})
	registerCommand(configCommand{})
}

type infoCommand struct{}

func (infoCommand) Name() string        { return "info" }
func (infoCommand) Description() string { return "Print document metadata" }
func (infoCommand) NeedsDocument() bool { return true }

func (infoCommand) Run(ctx context.Context, v *viewer.View, opts options) (any, error) {
	doc := v.Document()

	name, err := doc.FileName(ctx)
	if err != nil {
		return nil, err
	}
	path, err := doc.DocumentPath(ctx)
	if err != nil {
		return nil, err
	}
	count, err := doc.PageCount(ctx)
	if err != nil {
		return nil, err
	}

	rotations := make([]int, 0, count)
	for i := 0; i < count; i++ {
		r, err := doc.Page(i).Rotation(ctx)
		if err != nil {
			return nil, err
		}
		rotations = append(rotations, r)
	}

	return map[string]any{
		"fileName":  name,
		"path":      path,
		"pageCount": count,
		"encrypted": doc.IsEncrypted(ctx),
		"hasChange": doc.HasChange(ctx),
		"rotations": rotations,
	}, nil
}

type annotationsCommand struct{}

func (annotationsCommand) Name() string        { return "annotations" }
func (annotationsCommand) Description() string { return "List annotations on -page" }
func (annotationsCommand) NeedsDocument() bool { return true }

func (annotationsCommand) Run(ctx context.Context, v *viewer.View, opts options) (any, error) {
	return v.Document().Page(opts.page).Annotations(ctx)
}

type widgetsCommand struct{}

func (widgetsCommand) Name() string        { return "widgets" }
func (widgetsCommand) Description() string { return "List form fields on -page" }
func (widgetsCommand) NeedsDocument() bool { return true }

func (widgetsCommand) Run(ctx context.Context, v *viewer.View, opts options) (any, error) {
	return v.Document().Page(opts.page).Widgets(ctx)
}

type searchCommand struct{}

func (searchCommand) Name() string        { return "search" }
func (searchCommand) Description() string { return "Search the document for -query" }
func (searchCommand) NeedsDocument() bool { return true }

func (searchCommand) Run(ctx context.Context, v *viewer.View, opts options) (any, error) {
	if opts.query == "" {
		return nil, fmt.Errorf("-query required")
	}
	return v.Searcher().SearchText(ctx, opts.query, search.Options{}), nil
}

type rotateCommand struct{}

func (rotateCommand) Name() string        { return "rotate" }
func (rotateCommand) Description() string { return "Rotate -page to -rotation degrees and save" }
func (rotateCommand) NeedsDocument() bool { return true }

func (rotateCommand) Run(ctx context.Context, v *viewer.View, opts options) (any, error) {
	page := v.Document().Page(opts.page)
	if err := page.SetRotation(ctx, opts.rotation); err != nil {
		return nil, err
	}
	if err := v.Save(ctx); err != nil {
		return nil, err
	}

	r, err := page.Rotation(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]int{"page": opts.page, "rotation": r}, nil
}

type configCommand struct{}

func (configCommand) Name() string        { return "config" }
func (configCommand) Description() string { return "Print the default reader configuration" }
func (configCommand) NeedsDocument() bool { return false }

func (configCommand) Run(ctx context.Context, v *viewer.View, opts options) (any, error) {
	return viewer.DefaultConfiguration(), nil
}
