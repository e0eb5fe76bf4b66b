package email

import (
	"fmt"
	"log/slog"

	"github.com/ivannizarr/chill-app-adv-be/internal/domain"
	"github.com/ivannizarr/chill-app-adv-be/pkg/auth"
)

// Mailer composes the application's transactional emails and hands them to
// the dispatcher.
type Mailer struct {
	dispatcher   *Dispatcher
	tokenManager auth.TokenManager
	baseURL      string
	logger       *slog.Logger
}

func NewMailer(dispatcher *Dispatcher, tokenManager auth.TokenManager, baseURL string, logger *slog.Logger) *Mailer {
	return &Mailer{
		dispatcher:   dispatcher,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       logger,
	}
}

// SendWelcome queues the post-registration welcome message.
func (m *Mailer) SendWelcome(user *domain.User) {
	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <div style="background: #2563eb; padding: 30px; text-align: center;">
          <h1 style="color: white; margin: 0;">Chill Movie App</h1>
        </div>
        <div style="background: #f9f9f9; padding: 30px;">
          <h2>Welcome, %s!</h2>
          <p>Your account is ready. You can now browse the catalog, keep a
          list of favorites and get personal recommendations.</p>
          <div style="text-align: center; margin: 30px 0;">
            <a href="%s/api/auth/login" style="background: #2563eb; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
              Start Watching
            </a>
          </div>
        </div>
      </div>`, user.Fullname, m.baseURL)

	m.dispatcher.Enqueue(&Message{
		To:       user.Email,
		Subject:  "Welcome to Chill Movie App",
		HTMLBody: body,
	})
}

// SendVerification queues an email-verification message containing a
// time-limited verification link.
func (m *Mailer) SendVerification(user *domain.User) {
	token, err := m.tokenManager.Generate(user.ID, user.Email, user.Role, auth.PurposeEmailVerification)
	if err != nil {
		m.logger.Error("Failed to generate verification token",
			slog.Int64("userID", user.ID),
			slog.String("error", err.Error()))
		return
	}
	verificationURL := fmt.Sprintf("%s/api/auth/verify-email?token=%s", m.baseURL, token)

	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <div style="background: #2563eb; padding: 30px; text-align: center;">
          <h1 style="color: white; margin: 0;">Chill Movie App</h1>
        </div>
        <div style="background: #f9f9f9; padding: 30px;">
          <h2>Hi %s!</h2>
          <p>Thanks for signing up. Click the button below to verify your email:</p>
          <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background: #2563eb; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
              Verify Email
            </a>
          </div>
          <p>Or copy this link into your browser:</p>
          <p style="background: #f0f0f0; padding: 10px; word-break: break-all;">%s</p>
          <p>The link is valid for 24 hours.</p>
        </div>
      </div>`, user.Fullname, verificationURL, verificationURL)

	m.dispatcher.Enqueue(&Message{
		To:       user.Email,
		Subject:  "Verify your email - Chill Movie App",
		HTMLBody: body,
	})
}

// SendPasswordReset queues a password-reset message containing a
// time-limited reset link.
func (m *Mailer) SendPasswordReset(user *domain.User) {
	token, err := m.tokenManager.Generate(user.ID, user.Email, user.Role, auth.PurposePasswordReset)
	if err != nil {
		m.logger.Error("Failed to generate reset token",
			slog.Int64("userID", user.ID),
			slog.String("error", err.Error()))
		return
	}
	resetURL := fmt.Sprintf("%s/api/auth/reset-password?token=%s", m.baseURL, token)

	body := fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <div style="background: #2563eb; padding: 30px; text-align: center;">
          <h1 style="color: white; margin: 0;">Chill Movie App</h1>
        </div>
        <div style="background: #f9f9f9; padding: 30px;">
          <h2>Reset Password</h2>
          <p>Hi %s, a password reset was requested for your account. Click
          the button below if that was you:</p>
          <div style="text-align: center; margin: 30px 0;">
            <a href="%s" style="background: #2563eb; color: white; padding: 12px 30px; text-decoration: none; border-radius: 5px; display: inline-block;">
              Reset Password
            </a>
          </div>
          <p>The link is valid for 1 hour. If you did not request this,
          ignore this email.</p>
        </div>
      </div>`, user.Fullname, resetURL)

	m.dispatcher.Enqueue(&Message{
		To:       user.Email,
		Subject:  "Reset Password - Chill Movie App",
		HTMLBody: body,
	})
}
