// ABOUTME: Interactive chat loop: reads input, routes slash commands and chat turns
// ABOUTME: Also renders the conversation sidebar and replays history on open

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"

	"github.com/nexushealth/nexus-chat/internal/api"
	"github.com/nexushealth/nexus-chat/internal/chat"
	"github.com/nexushealth/nexus-chat/internal/config"
	"github.com/nexushealth/nexus-chat/internal/profile"
	"github.com/nexushealth/nexus-chat/internal/render"
	"github.com/nexushealth/nexus-chat/internal/store"
)

// cli bundles everything the interactive loop touches.
type cli struct {
	store      store.Store
	controller *chat.Controller
	session    *chat.Session
	renderer   *render.Renderer
	prompter   chat.Prompter
	logger     *slog.Logger

	// dirty is set by the store's change notifications and consumed by
	// the loop to reprint the sidebar after a turn completes.
	dirty atomic.Bool
}

// newCLI wires the loop state, subscribing to store change
// notifications so the sidebar refreshes after mutations.
func newCLI(st store.Store, controller *chat.Controller, session *chat.Session, renderer *render.Renderer, prompter chat.Prompter, logger *slog.Logger) *cli {
	c := &cli{
		store:      st,
		controller: controller,
		session:    session,
		renderer:   renderer,
		prompter:   prompter,
		logger:     logger,
	}
	st.OnChange(func() { c.dirty.Store(true) })
	return c
}

// refreshIfDirty reprints the sidebar when a store mutation happened
// since the last refresh.
func (c *cli) refreshIfDirty(ctx context.Context, w io.Writer) {
	if c.dirty.Swap(false) {
		printSidebar(ctx, c.store, w)
	}
}

func runChat(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	dir, err := config.Dir()
	if err != nil {
		return err
	}
	prof, err := profile.Load(dir)
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	sink := render.NewTerminalSink(os.Stdout)
	renderer := render.NewRenderer(sink, logger)
	if !cfg.RevealEnabled() {
		renderer.SetDelay(func() time.Duration { return 0 })
	}

	stdin := bufio.NewReader(os.Stdin)
	session := chat.NewSession(st, nil)
	prompter := chat.NewStdioPrompter(stdin, os.Stdout)

	controller := chat.New(chat.Options{
		Store:    st,
		Client:   api.New(cfg.API.BaseURL, prof.UserID, logger),
		Renderer: renderer,
		Sink:     sink,
		Session:  session,
		Locator: chat.FixedLocator{Pos: chat.Position{
			Latitude:  cfg.Location.Latitude,
			Longitude: cfg.Location.Longitude,
		}},
		Prompter: prompter,

		UserName:        prof.Name,
		UserPhone:       prof.Phone,
		LocationTimeout: cfg.Location.Timeout,

		Logger: logger,
	})
	defer controller.Close()

	color.Cyan(banner)
	fmt.Printf("nexus-chat %s connected to %s\n", version, cfg.API.BaseURL)
	fmt.Println("Type a message and press Enter. /help for commands. Ctrl+C to quit.")
	fmt.Println()

	c := newCLI(st, controller, session, renderer, prompter, logger)
	if err := c.loop(ctx, stdin); err != nil {
		return err
	}

	fmt.Println("\nGoodbye!")
	return nil
}

func (c *cli) loop(ctx context.Context, stdin *bufio.Reader) error {
	for {
		fmt.Print(color.HiBlackString("❯ "))

		inputCh := make(chan string, 1)
		errCh := make(chan error, 1)

		go func() {
			line, err := stdin.ReadString('\n')
			if err != nil {
				errCh <- err
				return
			}
			inputCh <- line
		}()

		var input string
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		case input = <-inputCh:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" || input == "/q" {
			return nil
		}

		c.handle(ctx, input)
		c.refreshIfDirty(ctx, os.Stdout)
	}
}

// handle routes one line of input. A panic in any flow is logged and
// the loop keeps going; a stuck conversation is worse than a logged
// stack trace.
func (c *cli) handle(ctx context.Context, input string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("recovered from panic", "panic", r)
		}
	}()

	cmd, args, _ := strings.Cut(input, " ")
	args = strings.TrimSpace(args)

	switch cmd {
	case "/help":
		printChatHelp()
	case "/new":
		c.store.CreateConversation(ctx)
		fmt.Println("Started a new conversation.")
		fmt.Println()
	case "/history":
		printSidebar(ctx, c.store, os.Stdout)
	case "/open":
		c.open(ctx, args)
	case "/delete":
		c.delete(ctx, args)
	case "/voice":
		if c.session.VoiceActive() {
			c.session.DeactivateVoice()
			fmt.Println("Voice mode off.")
		} else {
			c.session.ActivateVoice()
			fmt.Println("Voice mode on.")
		}
		fmt.Println()
	case "/upload":
		if args == "" {
			fmt.Println("Usage: /upload <file>")
			fmt.Println()
			return
		}
		c.controller.UploadPrescription(ctx, args)
	case "/buy":
		if args == "" {
			fmt.Println("Usage: /buy <medicine>")
			fmt.Println()
			return
		}
		c.controller.BuyMedicine(ctx, args)
	case "/hospitals":
		c.controller.FindHospitals(ctx)
	case "/book":
		c.controller.BookAppointment(ctx, args)
	case "/emergency":
		c.controller.TriggerEmergency(ctx)
	default:
		c.controller.Send(ctx, input)
	}
}

// conversationAt resolves a 1-based sidebar index to a conversation.
func conversationAt(ctx context.Context, st store.Store, arg string) (*store.Conversation, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		fmt.Println("Give the conversation number from /history.")
		fmt.Println()
		return nil, false
	}
	conversations := st.ListConversations(ctx)
	if n > len(conversations) {
		fmt.Printf("No conversation %d; there are %d.\n\n", n, len(conversations))
		return nil, false
	}
	return &conversations[n-1], true
}

func (c *cli) open(ctx context.Context, args string) {
	conv, ok := conversationAt(ctx, c.store, args)
	if !ok {
		return
	}
	if err := c.session.SwitchConversation(ctx, conv.ID); err != nil {
		c.logger.Error("open failed", "id", conv.ID, "error", err)
		return
	}

	fmt.Printf("── %s ──\n\n", conv.Title)
	for _, msg := range conv.Messages {
		c.renderer.Render(msg, true)
	}
}

func (c *cli) delete(ctx context.Context, args string) {
	conv, ok := conversationAt(ctx, c.store, args)
	if !ok {
		return
	}
	if !c.prompter.Confirm("Are you sure you want to delete this conversation?") {
		return
	}
	c.store.DeleteConversation(ctx, conv.ID)
	fmt.Printf("Deleted %q.\n\n", conv.Title)
}

// printSidebar lists conversations newest-first with the active one
// marked. Position reflects creation order, matching the store.
func printSidebar(ctx context.Context, st store.Store, w io.Writer) {
	conversations := st.ListConversations(ctx)
	if len(conversations) == 0 {
		fmt.Fprintln(w, "No conversations yet.")
		fmt.Fprintln(w)
		return
	}

	active := st.ActiveConversationID(ctx)
	for i, conv := range conversations {
		marker := "  "
		if conv.ID == active {
			marker = color.GreenString("▸ ")
		}
		fmt.Fprintf(w, "%s%2d. %-34s %s%s\n",
			marker, i+1, conv.Title,
			color.HiBlackString(timeAgo(conv.LastUpdated)),
			color.HiBlackString(fmt.Sprintf("  (%d messages)", len(conv.Messages))),
		)
	}
	fmt.Fprintln(w)
}

func timeAgo(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

func printChatHelp() {
	fmt.Println("Commands:")
	fmt.Println("  /new             Start a new conversation")
	fmt.Println("  /history         List saved conversations")
	fmt.Println("  /open <n>        Open conversation n and replay it")
	fmt.Println("  /delete <n>      Delete conversation n")
	fmt.Println("  /voice           Toggle voice mode")
	fmt.Println("  /upload <file>   Analyze a prescription image")
	fmt.Println("  /buy <medicine>  Add a medicine to your cart")
	fmt.Println("  /hospitals       Find hospitals near you")
	fmt.Println("  /book [name]     Book a doctor appointment")
	fmt.Println("  /emergency       Call emergency services")
	fmt.Println("  /help            Show this help")
	fmt.Println("  /quit            Exit")
	fmt.Println()
	fmt.Println("Anything else is sent as a chat message.")
	fmt.Println()
}
