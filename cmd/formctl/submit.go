package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"originform/internal/form/models"
	"originform/internal/form/submit"
	"originform/internal/platform/logger"
)

var (
	flagAttach []string
	flagYes    bool
)

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Validate, confirm, and post the form to the ingestion gateway",
	Long: `Submit posts the current form as a multipart payload.

Attachments are given as --attach <index>:<certificate|invoice>:<path> and
are read at submit time; they are never part of saved progress. On success
the saved progress is cleared; on failure it is retained for retry.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		sess, store, err := loadSession(ctx)
		if err != nil {
			return err
		}

		for _, arg := range flagAttach {
			index, slot, att, err := parseAttachment(arg)
			if err != nil {
				return err
			}
			if err := sess.AttachFile(index, slot, att); err != nil {
				return err
			}
		}

		client := submit.NewClient(flagEndpoint,
			submit.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}))
		flow := submit.NewFlow(sess, client, logger.New())

		ack, err := flow.Submit(ctx, confirmOnTerminal)
		if err != nil {
			return err
		}

		store.Clear(ctx)
		fmt.Printf("%s (submission %s)\n", ack.Message, ack.SubmissionID)
		return nil
	},
}

func init() {
	submitCmd.Flags().StringArrayVar(&flagAttach, "attach", nil,
		"attachment as <index>:<certificate|invoice>:<path> (repeatable)")
	submitCmd.Flags().BoolVar(&flagYes, "yes", false, "skip the confirmation prompt")
}

func confirmOnTerminal() bool {
	if flagYes {
		return true
	}
	fmt.Fprint(os.Stderr, "Submit this application? Saved progress will be cleared on success. [y/N] ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseAttachment(arg string) (int, models.AttachmentSlot, *models.Attachment, error) {
	parts := strings.SplitN(arg, ":", 3)
	if len(parts) != 3 {
		return 0, "", nil, fmt.Errorf("invalid --attach %q, want <index>:<slot>:<path>", arg)
	}
	index, err := parseIndex(parts[0])
	if err != nil {
		return 0, "", nil, err
	}
	slot := models.AttachmentSlot(parts[1])
	if !slot.Valid() {
		return 0, "", nil, fmt.Errorf("invalid attachment slot %q", parts[1])
	}
	content, err := os.ReadFile(parts[2])
	if err != nil {
		return 0, "", nil, err
	}
	return index, slot, &models.Attachment{
		Filename:  filepath.Base(parts[2]),
		MediaType: mediaTypeFor(parts[2]),
		Content:   content,
	}, nil
}

func mediaTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return "application/pdf"
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "application/octet-stream"
	}
}
