// Package notify posts a roster-generation summary to Slack once a run
// completes, via an incoming webhook URL rather than a bot token: the
// scheduler is a one-shot CLI, not a long-lived service holding a client
// connection.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	goslack "github.com/slack-go/slack"

	"github.com/reinka/oncall-scheduler/pkg/roster"
)

// Notifier posts roster-generation summaries to a Slack incoming webhook.
type Notifier struct {
	webhookURL string
	logger     *slog.Logger
}

// NewNotifier creates a Notifier. If webhookURL is empty, the notifier is a
// noop (logging only); IsEnabled reports false.
func NewNotifier(webhookURL string, logger *slog.Logger) *Notifier {
	return &Notifier{webhookURL: webhookURL, logger: logger}
}

// IsEnabled reports whether a webhook URL was configured.
func (n *Notifier) IsEnabled() bool {
	return n.webhookURL != ""
}

// PostGenerated sends a summary of a successful generate run: the number of
// shifts produced and the block/week span they cover.
func (n *Notifier) PostGenerated(ctx context.Context, shifts []roster.Shift, numBlocks, weeksPerBlock int) error {
	if !n.IsEnabled() {
		n.logger.Debug("slack notifier disabled, skipping generate summary", "shifts", len(shifts))
		return nil
	}

	header := goslack.NewHeaderBlock(
		goslack.NewTextBlockObject(goslack.PlainTextType, "✅ Roster generated", true, false),
	)
	fields := []*goslack.TextBlockObject{
		goslack.NewTextBlockObject(goslack.MarkdownType, fmt.Sprintf("*Shifts:* %d", len(shifts)), false, false),
		goslack.NewTextBlockObject(goslack.MarkdownType, fmt.Sprintf("*Blocks:* %d", numBlocks), false, false),
		goslack.NewTextBlockObject(goslack.MarkdownType, fmt.Sprintf("*Weeks per block:* %d", weeksPerBlock), false, false),
	}
	section := goslack.NewSectionBlock(nil, fields, nil)

	msg := &goslack.WebhookMessage{
		Text:   fmt.Sprintf("Roster generated: %d shifts across %d block(s)", len(shifts), numBlocks),
		Blocks: &goslack.Blocks{BlockSet: []goslack.Block{header, section}},
	}

	if err := goslack.PostWebhookContext(ctx, n.webhookURL, msg); err != nil {
		return fmt.Errorf("posting generate summary to slack: %w", err)
	}
	n.logger.Info("posted generate summary to slack", "shifts", len(shifts))
	return nil
}

// PostFailed sends a brief failure notice naming the error kind.
func (n *Notifier) PostFailed(ctx context.Context, kind roster.Kind, err error) error {
	if !n.IsEnabled() {
		n.logger.Debug("slack notifier disabled, skipping failure notice", "kind", kind.String())
		return nil
	}

	msg := &goslack.WebhookMessage{
		Text: fmt.Sprintf("❌ Roster generation failed (%s): %v", kind, err),
	}
	if werr := goslack.PostWebhookContext(ctx, n.webhookURL, msg); werr != nil {
		return fmt.Errorf("posting failure notice to slack: %w", werr)
	}
	n.logger.Info("posted failure notice to slack", "kind", kind.String())
	return nil
}
