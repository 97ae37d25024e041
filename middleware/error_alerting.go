package middleware

import (
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/slack-go/slack"
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

// ErrorAlertMiddleware recovers handler panics and forwards deduplicated
// error alerts to a Slack webhook. The same error is alerted at most once
// per cooldown window.
type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute,
	}
}

// HTTPMiddleware wraps HTTP handlers so no panic escapes a request
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				errorMsg := fmt.Sprintf("HTTP %s %s: PANIC - %v", r.Method, r.URL.Path, rec)
				log.Printf("❌ %s", errorMsg)
				m.alert(errorMsg, fmt.Sprintf("HTTP %s %s (PANIC)", r.Method, r.URL.Path))
				w.WriteHeader(http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WrapBackgroundTask guards a background task the same way
func (m *ErrorAlertMiddleware) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() error {
		defer func() {
			if rec := recover(); rec != nil {
				errorMsg := fmt.Sprintf("Background task %s: PANIC - %v", taskName, rec)
				log.Printf("❌ %s", errorMsg)
				m.alert(errorMsg, fmt.Sprintf("Background task: %s (PANIC)", taskName))
			}
		}()

		if err := task(); err != nil {
			m.AlertOnError(err, fmt.Sprintf("Background task: %s", taskName))
			return err
		}
		return nil
	}
}

// AlertOnError reports a handled error through the deduplication window
func (m *ErrorAlertMiddleware) AlertOnError(err error, context string) {
	m.alert(fmt.Sprintf("%s: %v", context, err), context)
}

func (m *ErrorAlertMiddleware) alert(errorMsg, context string) {
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	if lastAlert, exists := m.alertedErrors[hash]; exists && time.Since(lastAlert) < m.alertCooldown {
		m.mutex.Unlock()
		return
	}
	m.alertedErrors[hash] = time.Now()
	m.mutex.Unlock()

	go m.sendSlackAlert(errorMsg, context)
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, context string) {
	if m.config.WebhookURL == "" {
		return // alerts disabled
	}

	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	blocks := []slack.Block{
		slack.NewHeaderBlock(slack.NewTextBlockObject(
			slack.PlainTextType,
			fmt.Sprintf("🚨 %s%s Error Alert", envPrefix, m.config.AppName),
			true, false,
		)),
		slack.NewSectionBlock(nil, []*slack.TextBlockObject{
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
			slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", context), false, false),
		}, nil),
		slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType,
			fmt.Sprintf("*Error:*\n```%s```", errorMsg),
			false, false,
		), nil, nil),
	}
	if m.config.LogsURL != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject(
			slack.MarkdownType,
			fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL),
			false, false,
		), nil, nil))
	}

	msg := &slack.WebhookMessage{Blocks: &slack.Blocks{BlockSet: blocks}}
	if err := slack.PostWebhook(m.config.WebhookURL, msg); err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}
