package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"
	"vulpax/internal/utils"
)

const defaultResendBaseURL = "https://api.resend.com"

// MailService sends transactional email through the Resend HTTP API.
// Contact form delivery is synchronous because the endpoint reports the
// provider message id back to the caller; everything else is fire-and-forget.
type MailService struct {
	BaseURL   string
	APIKey    string
	From      string
	ContactTo string // fixed recipient of contact form messages
	Enabled   bool

	client *http.Client
}

// sendRequest is the Resend /emails payload.
type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// sendResponse is the Resend /emails response body.
type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"` // error text on non-2xx
}

func NewMailService() *MailService {
	baseURL := os.Getenv("RESEND_BASE_URL")
	if baseURL == "" {
		baseURL = defaultResendBaseURL
	}
	apiKey := os.Getenv("RESEND_API_KEY")
	from := os.Getenv("RESEND_FROM")
	contactTo := os.Getenv("CONTACT_EMAIL")

	enabled := apiKey != "" && from != ""
	if !enabled {
		log.Println("⚠️ MailService disabled: Missing RESEND_API_KEY / RESEND_FROM environment variables.")
	}

	return &MailService{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		From:      from,
		ContactTo: contactTo,
		Enabled:   enabled,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

// send performs one synchronous API call and returns the provider message id.
func (s *MailService) send(to, replyTo, subject, body string) (string, error) {
	if !s.Enabled {
		return "", fmt.Errorf("mail service is not configured")
	}

	payload, err := json.Marshal(sendRequest{
		From:    s.From,
		To:      []string{to},
		ReplyTo: replyTo,
		Subject: subject,
		HTML:    body,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode mail payload: %w", err)
	}

	req, err := http.NewRequest("POST", s.BaseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail request failed: %w", err)
	}
	defer resp.Body.Close()

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode mail response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if result.Message != "" {
			return "", fmt.Errorf("mail provider rejected the message: %s", result.Message)
		}
		return "", fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	return result.ID, nil
}

// sendAsync delivers in the background and only logs the outcome.
func (s *MailService) sendAsync(to, replyTo, subject, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		if _, err := s.send(to, replyTo, subject, body); err != nil {
			log.Printf("❌ Failed to send email to %s: %v", to, err)
		} else {
			log.Printf("✅ Email sent to %s: %s", to, subject)
		}
	}()
}

func (s *MailService) parseTemplate(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute mail template %s: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// SendContactEmail delivers a contact form submission to the fixed contact
// address, with the visitor's address as reply-to. Returns the message id.
// The submitted fields are free text from an unauthenticated form, so they
// are stripped of markup before landing in the email body.
func (s *MailService) SendContactEmail(name, email, phone, message string) (string, error) {
	body, err := s.parseTemplate(contactTemplate, map[string]string{
		"Name":    utils.SanitizeHTML(name),
		"Email":   utils.SanitizeHTML(email),
		"Phone":   utils.SanitizeHTML(phone),
		"Message": utils.SanitizeHTML(message),
	})
	if err != nil {
		return "", err
	}

	to := s.ContactTo
	if to == "" {
		to = s.From
	}
	return s.send(to, email, "New contact form message from "+name, body)
}

func (s *MailService) SendWelcomeEmail(email, code string) {
	body, err := s.parseTemplate(welcomeTemplate, map[string]string{
		"Code": code,
	})
	if err != nil {
		log.Printf("Error rendering welcome email: %v", err)
		return
	}
	s.sendAsync(email, "", "Welcome to Vulpax, please verify your email", body)
}

func (s *MailService) SendPasswordResetEmail(email, code string) {
	body, err := s.parseTemplate(resetTemplate, map[string]string{
		"Code": code,
	})
	if err != nil {
		log.Printf("Error rendering reset email: %v", err)
		return
	}
	s.sendAsync(email, "", "[Vulpax] Your password reset code", body)
}

func (s *MailService) SendCommentReplyNotification(email, activeUser, appTitle, replyContent, originalContent, appLink string) {
	body, err := s.parseTemplate(replyTemplate, map[string]string{
		"ActiveUser":      activeUser,
		"AppTitle":        appTitle,
		"ReplyContent":    replyContent,
		"OriginalContent": originalContent,
		"AppLink":         appLink,
	})
	if err != nil {
		log.Printf("Error rendering reply notification email: %v", err)
		return
	}
	s.sendAsync(email, "", "💬 "+activeUser+" replied to your comment on "+appTitle, body)
}

// Mail bodies are small enough to keep inline instead of shipping template
// files next to the binary.
var (
	contactTemplate = template.Must(template.New("contact").Parse(`
<h2>New contact form message</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Message:</strong></p>
<blockquote>{{.Message}}</blockquote>
`))

	welcomeTemplate = template.Must(template.New("welcome").Parse(`
<h2>Welcome to Vulpax</h2>
<p>Your activation code is:</p>
<p style="font-size:24px;letter-spacing:4px;"><strong>{{.Code}}</strong></p>
<p>Enter it on the activation page to unlock your account.</p>
`))

	resetTemplate = template.Must(template.New("reset").Parse(`
<h2>Password reset requested</h2>
<p>Your reset code is:</p>
<p style="font-size:24px;letter-spacing:4px;"><strong>{{.Code}}</strong></p>
<p>If you did not request this, you can ignore this email.</p>
`))

	replyTemplate = template.Must(template.New("reply").Parse(`
<p><strong>{{.ActiveUser}}</strong> replied to your comment on <strong>{{.AppTitle}}</strong>:</p>
<blockquote>{{.ReplyContent}}</blockquote>
<p>Your comment:</p>
<blockquote>{{.OriginalContent}}</blockquote>
<p><a href="{{.AppLink}}">View the conversation</a></p>
`))
)
