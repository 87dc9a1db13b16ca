package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marketfoods/storefront/internal/contact"
)

var (
	contactName    string
	contactEmail   string
	contactMessage string
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the marketplace team",
}

var contactSendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a contact form message",
	Long: `Send a message through the contact form. Name and email default
to the logged-in user's details when omitted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		err := app.contact.Submit(cmd.Context(), contact.Input{
			Name:    contactName,
			Email:   contactEmail,
			Message: contactMessage,
		})
		if err != nil {
			return err
		}
		fmt.Println("Message sent.")
		return nil
	},
}

var contactMessagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List submitted contact messages (administrators only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		messages, err := app.contact.Messages(cmd.Context())
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			fmt.Println("No messages.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tFROM\tEMAIL\tMESSAGE")
		for _, m := range messages {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				m.ID, m.CreatedAt.Format("2006-01-02"), m.Name, m.Email, m.Message)
		}
		w.Flush()
		return nil
	},
}

func init() {
	contactSendCmd.Flags().StringVar(&contactName, "name", "", "your name")
	contactSendCmd.Flags().StringVar(&contactEmail, "email", "", "your email address")
	contactSendCmd.Flags().StringVar(&contactMessage, "message", "", "message text")
	contactCmd.AddCommand(contactSendCmd, contactMessagesCmd)
	rootCmd.AddCommand(contactCmd)
}
