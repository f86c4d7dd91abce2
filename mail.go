// Copyright 2025 The IntelliShop Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// smtpRelay forwards contact-form submissions to the support mailbox. It
// holds no queue; a submission either relays now or fails back to the form.
type smtpRelay struct {
	host      string
	port      string
	username  string
	password  string
	recipient string

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func smtpRelayFromEnv(log logrus.FieldLogger) *smtpRelay {
	relay := &smtpRelay{
		host:      os.Getenv("SMTP_HOST"),
		port:      os.Getenv("SMTP_PORT"),
		username:  os.Getenv("SMTP_USERNAME"),
		password:  os.Getenv("SMTP_PASSWORD"),
		recipient: os.Getenv("CONTACT_RECIPIENT"),
		sendMail:  smtp.SendMail,
	}
	if relay.port == "" {
		relay.port = "587"
	}
	if relay.host == "" {
		log.Warn("SMTP_HOST not set; contact form submissions will be rejected")
	}
	return relay
}

func (m *smtpRelay) configured() bool {
	return m.host != "" && m.recipient != ""
}

// send relays one contact message. The visitor's address goes into
// Reply-To so support can answer directly; the authenticated account stays
// the envelope sender.
func (m *smtpRelay) send(ctx context.Context, name, title, email, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.configured() {
		return errors.New("contact relay not configured")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.username)
	fmt.Fprintf(&b, "To: %s\r\n", m.recipient)
	fmt.Fprintf(&b, "Reply-To: %s\r\n", email)
	fmt.Fprintf(&b, "Subject: [Contact] %s\r\n", sanitizeHeader(title))
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n\n%s\n", name, email, message)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}
	if err := m.sendMail(m.host+":"+m.port, auth, m.username, []string{m.recipient}, []byte(b.String())); err != nil {
		return errors.Wrap(err, "relay contact message")
	}
	return nil
}

// sanitizeHeader strips CR/LF so form input cannot inject extra headers.
func sanitizeHeader(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
