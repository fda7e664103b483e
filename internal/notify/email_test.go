package notify

import (
	"context"
	"testing"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "noreply@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "noreply@example.com",
		FromName:  "",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Together Finance" {
		t.Errorf("expected default from name 'Together Finance', got %q", sender.fromName)
	}
}

func TestNewSendGridSender_CustomFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "noreply@example.com",
		FromName:  "TF Enquiries",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "TF Enquiries" {
		t.Errorf("expected from name 'TF Enquiries', got %q", sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{
		client: nil,
	}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "enquiries@example.com",
		Subject: "Test",
		Body:    "Test body",
	})

	if err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestNewPostmarkSender_NilWithoutToken(t *testing.T) {
	sender := NewPostmarkSender(PostmarkConfig{
		ServerToken: "",
		FromEmail:   "noreply@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when server token is empty")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "enquiries@example.com",
		ReplyTo: "jane@example.com",
		Subject: "Test Subject",
		Body:    "Test body",
	})

	if err != nil {
		t.Errorf("stub sender should not return error, got: %v", err)
	}
}

func TestEmailMessage_Fields(t *testing.T) {
	msg := EmailMessage{
		To:          "enquiries@example.com",
		ToName:      "Together Finance",
		ReplyTo:     "jane@example.com",
		ReplyToName: "Jane Doe",
		Subject:     "Test Subject",
		Body:        "Plain text body",
		HTML:        "<p>HTML body</p>",
	}

	if msg.To != "enquiries@example.com" {
		t.Errorf("unexpected To: %s", msg.To)
	}
	if msg.ReplyTo != "jane@example.com" {
		t.Errorf("unexpected ReplyTo: %s", msg.ReplyTo)
	}
	if msg.ReplyToName != "Jane Doe" {
		t.Errorf("unexpected ReplyToName: %s", msg.ReplyToName)
	}
	if msg.Body != "Plain text body" {
		t.Errorf("unexpected Body: %s", msg.Body)
	}
	if msg.HTML != "<p>HTML body</p>" {
		t.Errorf("unexpected HTML: %s", msg.HTML)
	}
}
