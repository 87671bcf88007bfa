package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zhouzirui/wealth-desk/client/internal/model/chat"
)

const replHelp = `Commands:
  /new     start a new conversation
  /history print the conversation log
  /quit    leave
Anything else is sent as a question.`

func newAskCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a portfolio question, or start an interactive session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(args) > 0 {
				reply, err := a.convo.Ask(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				printMessage(out, reply)
				return nil
			}
			return a.repl(cmd, out)
		},
	}
}

func (a *app) repl(cmd *cobra.Command, out io.Writer) error {
	fmt.Fprintln(out, replHelp)
	scanner := bufio.NewScanner(cmd.InOrStdin())

	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit", "/exit":
			return nil
		case "/help":
			fmt.Fprintln(out, replHelp)
			continue
		case "/new":
			if err := a.convo.NewConversation(); err != nil {
				fmt.Fprintf(out, "cannot start a new conversation: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "Started a new conversation")
			continue
		case "/history":
			for _, msg := range a.convo.Messages() {
				printMessage(out, msg)
			}
			continue
		}

		reply, err := a.convo.Ask(cmd.Context(), line)
		if err != nil {
			fmt.Fprintf(out, "not sent: %v\n", err)
			continue
		}
		printMessage(out, reply)
		if id := a.convo.ConversationID(); id != "" {
			fmt.Fprintf(out, "(conversation %s)\n", id)
		}
	}
}

func printMessage(out io.Writer, msg chat.Message) {
	speaker := "you"
	if msg.Role == chat.RoleAssistant {
		speaker = "assistant"
	}
	fmt.Fprintf(out, "[%s %s] %s\n", msg.CreatedAt.Local().Format("15:04"), speaker, msg.Content)
	if chat.IsEmptyChart(msg.Chart) {
		return
	}
	chart, err := chat.DecodeChart(msg.Chart)
	if err != nil {
		fmt.Fprintln(out, "  (chart attached in a format this terminal cannot draw)")
		return
	}
	printChart(out, *chart)
}

// printChart lists chart values as sent by the server.
func printChart(out io.Writer, chart chat.ChartPayload) {
	title := chart.Title
	if title == "" {
		title = chart.Type + " chart"
	}
	fmt.Fprintf(out, "  %s\n", title)
	for _, ds := range chart.Data.Datasets {
		if ds.Label != "" {
			fmt.Fprintf(out, "  %s\n", ds.Label)
		}
		for i, value := range ds.Data {
			label := fmt.Sprintf("#%d", i+1)
			if i < len(chart.Data.Labels) {
				label = chart.Data.Labels[i]
			}
			fmt.Fprintf(out, "    %-24s %10.1f\n", label, value)
		}
	}
}
