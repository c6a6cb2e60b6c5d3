package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"yechat/internal/config"
	"yechat/internal/session"
	"yechat/pkg/chattypes"
)

var transcriptCopy bool

// transcriptCmd represents the transcript command
var transcriptCmd = &cobra.Command{
	Use:   "transcript <session-token>",
	Short: "Render a session's conversation to the terminal",
	Long: `Load the conversation persisted for the given session token and render it
as markdown. A session that never persisted anything renders as the greeting
alone. The token is the value of the browser's yechat_session cookie.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscript,
}

func init() {
	transcriptCmd.Flags().BoolVar(&transcriptCopy, "copy", false, "Copy the plain transcript to the system clipboard instead of printing it")
}

func runTranscript(_ *cobra.Command, args []string) error {
	settings := config.Load()

	id, err := session.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}

	p, err := loadPersona(settings)
	if err != nil {
		return fmt.Errorf("failed to load persona: %w", err)
	}

	store := buildStore(settings, p.Greeting)
	conv := store.Load(id)

	markdown := transcriptMarkdown(p, conv)

	if transcriptCopy {
		if !clipboardAvailable {
			return fmt.Errorf("clipboard not supported on this platform")
		}
		if err := initClipboard(); err != nil {
			return fmt.Errorf("failed to initialize clipboard: %w", err)
		}
		if err := writeToClipboard(markdown); err != nil {
			return fmt.Errorf("failed to copy transcript: %w", err)
		}
		fmt.Println("Transcript copied to clipboard")
		return nil
	}

	rendered, err := renderTranscript(markdown)
	if err != nil {
		return err
	}
	fmt.Print(rendered)
	return nil
}

// transcriptMarkdown renders the conversation as a markdown document: the
// persona title as heading, then one bold-speaker paragraph per turn.
func transcriptMarkdown(p chattypes.Persona, conv chattypes.Log) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)

	for _, turn := range conv {
		speaker := "You"
		if turn.Role == chattypes.RoleAssistant {
			speaker = p.Name
		}
		fmt.Fprintf(&b, "**%s:** %s\n\n", speaker, turn.Content)
	}

	return b.String()
}

// renderTranscript converts the markdown to terminal output. On dumb
// terminals and pipes the ANSI styling is stripped so the output stays
// greppable.
func renderTranscript(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render transcript: %w", err)
	}

	if lipgloss.ColorProfile() == termenv.Ascii {
		rendered = ansi.Strip(rendered)
	}

	return rendered, nil
}
