package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	chatcore "github.com/kmcneely/bloodlink/pkg/core/chat"
	"github.com/kmcneely/bloodlink/pkg/core/model"
	"github.com/kmcneely/bloodlink/pkg/store"
)

// ChatCmd creates the chat command: an interactive conversation loop with
// a donor, with /replies for smart reply suggestions
func ChatCmd(app *AppContext) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "chat <other_user_id>",
		Short: "Open a chat session with another user",
		Long: `Open (or resume) a chat session with another user and exchange messages.

Type a message and press enter to send it. The counterpart sends a canned
auto-reply a moment later. Special inputs:
  /replies   generate smart reply suggestions
  /history   reprint the conversation
  /exit      leave the chat`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				userID = store.SeedRequesterUserID
			}

			currentUser, err := app.Store.Users.Get(userID)
			if err != nil {
				return fmt.Errorf("unknown user %q: %w", userID, err)
			}
			otherUser, err := app.Store.Users.Get(args[0])
			if err != nil {
				return fmt.Errorf("unknown user %q: %w", args[0], err)
			}

			session := app.Chat.OpenSession(currentUser, otherUser)
			fmt.Printf("\n💬 Chat with %s (session %s)\n", otherUser.Name, session.ID)
			printMessages(session.Messages, currentUser.ID, otherUser.Name)

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("you> ")
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())

				switch line {
				case "":
					continue
				case "/exit":
					return nil
				case "/history":
					current, err := app.Store.Sessions.Get(session.ID)
					if err != nil {
						return err
					}
					printMessages(current.Messages, currentUser.ID, otherUser.Name)
					continue
				case "/replies":
					requesterName, donorName := currentUser.Name, otherUser.Name
					if currentUser.Role != model.RoleRequester {
						requesterName, donorName = otherUser.Name, currentUser.Name
					}
					replies, err := app.Chat.GenerateSmartReplies(app.Ctx, session.ID, requesterName, donorName)
					if err != nil {
						fmt.Printf("⚠️  %v\n", err)
						continue
					}
					fmt.Println("Suggested replies:")
					for i, r := range replies {
						fmt.Printf("  %d. %s\n", i+1, r)
					}
					continue
				}

				if _, err := app.Chat.SendMessage(session.ID, currentUser.ID, line); err != nil {
					fmt.Printf("⚠️  %v\n", err)
					continue
				}

				// Give the simulated counterpart time to auto-reply, then
				// show anything new.
				time.Sleep(app.Cfg.AutoReplyDelay() + 100*time.Millisecond)
				current, err := app.Store.Sessions.Get(session.ID)
				if err != nil {
					return err
				}
				last := current.Messages[len(current.Messages)-1]
				if last.SenderID != currentUser.ID && last.Text == chatcore.AutoReplyText {
					fmt.Printf("%s> %s\n", otherUser.Name, last.Text)
				}
			}

			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&userID, "as", "", "Act as this user id (defaults to the demo requester)")

	return cmd
}

// printMessages reprints the conversation, labeling the current user's
// messages as "you"
func printMessages(messages []model.ChatMessage, currentUserID, otherName string) {
	for _, msg := range messages {
		speaker := otherName
		if msg.SenderID == currentUserID {
			speaker = "you"
		}
		fmt.Printf("[%s] %s> %s\n", msg.Timestamp.Format("15:04"), speaker, msg.Text)
	}
}
