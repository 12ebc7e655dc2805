package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/marcelsud/waha-dashboard/config"
	"github.com/marcelsud/waha-dashboard/waha"
	"github.com/marcelsud/waha-dashboard/webhook/signature"
	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"
)

/* cli talks to WAHA directly, with the same configuration as the api
 * Handy for pairing a session from a terminal without the dashboard
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd(cfg).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "waha",
		Short:        "Inspect and drive WAHA sessions from the terminal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfg.WahaAPIURL, "url", cfg.WahaAPIURL, "WAHA base URL")
	root.PersistentFlags().StringVar(&cfg.WahaAPIKey, "key", cfg.WahaAPIKey, "WAHA API key")

	client := func() *waha.Client {
		return waha.New(cfg.WahaAPIURL, cfg.WahaAPIKey)
	}

	root.AddCommand(
		sessionsCmd(client),
		qrCmd(client),
		chatsCmd(client),
		sendCmd(client),
		hmacKeyCmd(),
	)
	return root
}

func sessionsCmd(client func() *waha.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := client().ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			var sessions []struct {
				Name   string `json:"name"`
				Status string `json:"status"`
			}
			if err := json.Unmarshal(raw, &sessions); err != nil {
				return fmt.Errorf("decoding sessions: %w", err)
			}
			for _, s := range sessions {
				fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", s.Name, s.Status)
			}
			return nil
		},
	}
}

func qrCmd(client func() *waha.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "qr <session>",
		Short: "Print the pairing QR code of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := client().QRValue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if value == "" {
				return fmt.Errorf("session %s has no QR code to scan", args[0])
			}
			qrterminal.GenerateHalfBlock(value, qrterminal.L, cmd.OutOrStdout())
			return nil
		},
	}
}

func chatsCmd(client func() *waha.Client) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "chats <session>",
		Short: "List the most recent chats of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := client().ChatsOverview(cmd.Context(), args[0], waha.ClampLimit(limit))
			if err != nil {
				return err
			}
			for _, item := range waha.Items(raw, waha.ChatListKeys...) {
				var chat struct {
					ID   json.RawMessage `json:"id"`
					Name string          `json:"name"`
				}
				if err := json.Unmarshal(item, &chat); err != nil {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-32s %s\n", strings.Trim(string(chat.ID), `"`), chat.Name)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", waha.DefaultChatLimit, "number of chats")
	return cmd
}

func sendCmd(client func() *waha.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "send <session> <chatId> <text>",
		Short: "Send a text message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			_, err := client().SendText(ctx, waha.SendTextRequest{
				Session: args[0],
				ChatID:  waha.FormatChatID(args[1]),
				Text:    args[2],
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Message sent successfully")
			return nil
		},
	}
}

func hmacKeyCmd() *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "hmac-key",
		Short: "Generate a key for WEBHOOK_HMAC_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := signature.GenerateSecret(size)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), secret.String())
			return nil
		},
	}
	cmd.Flags().IntVar(&size, "bytes", 32, "random bytes in the key")
	return cmd
}
