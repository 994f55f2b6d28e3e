// ABOUTME: export subcommand: renders a conversation transcript to an HTML file
// ABOUTME: Builds a markdown transcript and converts it with goldmark

package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/nexushealth/nexus-chat/internal/config"
	"github.com/nexushealth/nexus-chat/internal/store"
)

const exportPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #444; }
</style>
</head>
<body>
%s
</body>
</html>
`

func runExport(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: nexus-chat export <n> [file]")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return fmt.Errorf("invalid conversation number %q", args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(setupLogger(cfg.Logging))

	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	conversations := st.ListConversations(ctx)
	if n > len(conversations) {
		return fmt.Errorf("no conversation %d; there are %d", n, len(conversations))
	}
	conv := conversations[n-1]

	out := "conversation.html"
	if len(args) > 1 {
		out = args[1]
	}

	var htmlBuf bytes.Buffer
	if err := goldmark.Convert([]byte(transcriptMarkdown(conv)), &htmlBuf); err != nil {
		return fmt.Errorf("rendering transcript: %w", err)
	}

	page := fmt.Sprintf(exportPage, conv.Title, htmlBuf.String())
	if err := os.WriteFile(out, []byte(page), 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}

	fmt.Printf("Exported %q to %s\n", conv.Title, out)
	return nil
}

// transcriptMarkdown renders a conversation as a markdown document, one
// blockquote paragraph per message.
func transcriptMarkdown(conv store.Conversation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", conv.Title)
	fmt.Fprintf(&b, "Started %s\n\n", conv.CreatedAt.Format("2 Jan 2006 15:04"))

	for _, msg := range conv.Messages {
		who := "Nexus"
		if msg.Sender == store.SenderUser {
			who = "You"
		}
		fmt.Fprintf(&b, "**%s** · %s\n\n", who, msg.Timestamp.Format("15:04"))
		fmt.Fprintf(&b, "> %s\n\n", strings.ReplaceAll(msg.Text, "\n", "\n> "))
	}

	return b.String()
}
