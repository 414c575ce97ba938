package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alkime/blogsmith/internal/session"
	"github.com/alkime/blogsmith/internal/tui/style"
	"github.com/alkime/blogsmith/pkg/uictl"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	copiedNotice = "✓ Content copied to clipboard!"
	// rows taken by the header, notices and help around the viewport
	resultChromeHeight = 12
)

// SaveLocator reports the path a download of filename is saved to.
type SaveLocator func(filename string) (string, error)

// resultPhase shows the finished post and its actions.
type resultPhase struct {
	ctrl     Controller
	locate   SaveLocator
	keys     resultKeyMap
	viewport viewport.Model
	progress progress.Model
	artifact *session.Artifact
	notice   string
	width    int
	height   int
}

// NewResult creates the result view. locate may be nil, in which case
// downloads are reported by filename only.
func NewResult(ctrl Controller, locate SaveLocator) tea.Model {
	return &resultPhase{
		ctrl:   ctrl,
		locate: locate,
		keys: defaultResultKeyMap(),
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(30),
			progress.WithoutPercentage(),
		),
		width:  80,
		height: 24,
	}
}

func (p *resultPhase) Init() tea.Cmd {
	p.notice = ""
	p.refresh()

	if p.ctrl.CopiedLamp().Lit() {
		return copyTickCmd()
	}
	return nil
}

func (p *resultPhase) refresh() {
	p.artifact = p.ctrl.Snapshot().Artifact
	p.layout()
}

func (p *resultPhase) layout() {
	w := max(p.width-4, 20)
	h := max(p.height-resultChromeHeight, 5)

	p.viewport = viewport.New(w, h)
	if p.artifact != nil {
		p.viewport.SetContent(wrapText(p.artifact.Content, w))
	}
}

func (p *resultPhase) Update(teaMsg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := teaMsg.(type) {
	case tea.WindowSizeMsg:
		p.width, p.height = msg.Width, msg.Height
		p.layout()
		return p, nil

	case SessionEventMsg:
		if msg.Event.Kind == session.EventGenerationCompleted {
			p.notice = ""
			p.refresh()
		}
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Copy):
			return p, p.copy()
		case key.Matches(msg, p.keys.Download):
			return p, p.downloadCmd()
		case key.Matches(msg, p.keys.Regenerate):
			if p.artifact != nil {
				if err := p.ctrl.RequestGeneration(p.artifact.Topic, p.artifact.Tone); err != nil {
					p.notice = style.Error.Render(err.Error())
				}
			}
			return p, nil
		case key.Matches(msg, p.keys.New):
			p.ctrl.Reset()
			return p, nil
		case key.Matches(msg, p.keys.Quit):
			return p, tea.Quit
		}

	case copyTickMsg:
		if p.ctrl.CopiedLamp().Lit() {
			return p, copyTickCmd()
		}
		return p, nil

	case downloadDoneMsg:
		switch {
		case msg.err != nil:
			p.notice = style.Error.Render("Download failed: " + msg.err.Error())
		case msg.path != "":
			p.notice = style.Success.Render("Saved to " + msg.path)
		default:
			p.notice = style.Success.Render("Downloaded " + msg.download.Filename)
		}
		return p, nil
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(teaMsg)

	return p, cmd
}

func (p *resultPhase) copy() tea.Cmd {
	if err := p.ctrl.CopyToClipboard(); err != nil {
		if errors.Is(err, session.ErrNotReady) {
			return nil
		}
		p.notice = style.Error.Render(err.Error())
		return nil
	}

	return copyTickCmd()
}

func (p *resultPhase) downloadCmd() tea.Cmd {
	return func() tea.Msg {
		d, err := p.ctrl.DownloadAsFile()
		if err != nil || p.locate == nil {
			return downloadDoneMsg{download: d, err: err}
		}

		path, err := p.locate(d.Filename)
		return downloadDoneMsg{download: d, path: path, err: err}
	}
}

func (p *resultPhase) View() string {
	if p.artifact == nil {
		return style.Subtitle.Render("No post yet.")
	}

	var sb strings.Builder

	sb.WriteString(style.Title.Render("Your Blog Post"))
	sb.WriteString("\n")
	sb.WriteString(style.Label.Render("Topic: "))
	sb.WriteString(p.artifact.Topic)
	sb.WriteString("\n")
	sb.WriteString(style.Badge.Render(p.artifact.Tone.Label() + " Tone"))
	sb.WriteString(" ")
	sb.WriteString(style.Muted.Render(fmt.Sprintf("%d words", p.artifact.WordCount)))
	sb.WriteString("\n\n")

	sb.WriteString(style.Viewport.Render(p.viewport.View()))
	sb.WriteString("\n")

	if p.ctrl.CopiedLamp().Lit() {
		sb.WriteString(style.Success.Render(copiedNotice))
		sb.WriteString(" ")
		sb.WriteString(p.progress.ViewAs(uictl.Fraction(p.ctrl.ClipboardCountdown())))
		sb.WriteString("\n")
	}
	if p.notice != "" {
		sb.WriteString(p.notice)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	sb.WriteString(renderKeyHelp(p.keys.Copy, " "))
	sb.WriteString(renderKeyHelp(p.keys.Download, " "))
	sb.WriteString(renderKeyHelp(p.keys.Regenerate, " "))
	sb.WriteString(renderKeyHelp(p.keys.New, " "))
	sb.WriteString(renderKeyHelp(p.keys.Quit, "\n"))
	sb.WriteString(renderGlobalKeyHelp())

	return sb.String()
}
