// Package tui is an operator playground for the prompt engine: generate
// against a running server, inspect the segment breakdown, and submit
// feedback to watch token scores move.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// represents the current state of the TUI
type AppState int

const (
	StateInput AppState = iota
	StateLoading
	StateResult
)

// main TUI application model
type Model struct {
	state    AppState
	width    int
	height   int
	err      error
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	ready    bool

	client      *APIClient
	exploreMode bool
	templateID  string
	templates   []string
	templateIdx int

	generation *GenerationView
	lastAction string
}

// GenerationView is the slice of the API response the playground renders
type GenerationView struct {
	ID             string   `json:"id"`
	TemplateID     string   `json:"template_id"`
	MainPrompt     string   `json:"main_prompt"`
	NegativePrompt string   `json:"negative_prompt"`
	ExploreMode    bool     `json:"explore_mode"`
	ImageURL       string   `json:"image_url"`
	Segments       Segments `json:"segments"`
}

type Segments struct {
	Core        []string `json:"core"`
	Learned     []string `json:"learned"`
	Exploratory []string `json:"exploratory"`
	User        []string `json:"user"`
}

// sent when a generate request completes
type GenerateResponseMsg struct {
	generation *GenerationView
}

// sent when a feedback submission completes
type FeedbackSentMsg struct {
	feedbackType string
	deltas       int
}

// sent when the template list loads
type TemplatesLoadedMsg struct {
	ids []string
}

// sent when an API call fails
type APIErrorMsg struct {
	err error
}
