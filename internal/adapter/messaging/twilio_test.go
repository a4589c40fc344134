package messaging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSend_Unconfigured(t *testing.T) {
	m := NewTwilioMessenger("", "", "")
	if err := m.Send(context.Background(), "+15550001", "hi"); err == nil {
		t.Error("expected an error without credentials")
	}
}

func TestSend_PostsFormWithWhatsAppPrefix(t *testing.T) {
	var gotForm map[string]string
	var gotAuthUser string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseForm()
		gotForm = map[string]string{
			"From": r.PostFormValue("From"),
			"To":   r.PostFormValue("To"),
			"Body": r.PostFormValue("Body"),
		}
		gotAuthUser, _, _ = r.BasicAuth()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := NewTwilioMessenger("AC123", "secret", "whatsapp:+14155238886")
	m.apiBase = srv.URL

	if err := m.Send(context.Background(), "+15550001", "stock updated"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	if gotForm["To"] != "whatsapp:+15550001" {
		t.Errorf("expected the whatsapp prefix, got %q", gotForm["To"])
	}
	if gotForm["From"] != "whatsapp:+14155238886" || gotForm["Body"] != "stock updated" {
		t.Errorf("unexpected form: %+v", gotForm)
	}
	if gotAuthUser != "AC123" {
		t.Errorf("expected basic auth with the account sid, got %q", gotAuthUser)
	}
}

func TestSend_ErrorStatusSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "invalid to number"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	m := NewTwilioMessenger("AC123", "secret", "whatsapp:+14155238886")
	m.apiBase = srv.URL

	err := m.Send(context.Background(), "whatsapp:+bogus", "hi")
	if err == nil {
		t.Fatal("expected an error on 400")
	}
}
