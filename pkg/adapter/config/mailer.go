// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package config

import (
	"fmt"

	"github.com/momeni/car-rental/pkg/adapter/mail"
	"github.com/momeni/car-rental/pkg/adapter/mail/logmail"
	"github.com/momeni/car-rental/pkg/adapter/mail/sgmail"
	"github.com/momeni/car-rental/pkg/adapter/mail/smtpmail"
	"github.com/momeni/car-rental/pkg/core/notify"
)

// Mailer contains the confirmation emails sink settings. The Kind
// chooses between the log (default), smtp, and sendgrid sinks.
type Mailer struct {
	Kind      *string
	FromName  string `yaml:"from-name,omitempty"`
	FromEmail string `yaml:"from-email,omitempty"`
	SMTP      SMTPMailer
	SendGrid  SendGridMailer
}

// DefaultSMTPPort is the submission port which is used when no SMTP
// port is configured.
const DefaultSMTPPort = 587

// SMTPMailer contains the SMTP server address and credentials.
// The password is kept in a separate file.
type SMTPMailer struct {
	Host         string
	Port         int
	Username     string
	PasswordFile string `yaml:"password-file,omitempty"`
}

// SendGridMailer contains the SendGrid settings. The API key is kept
// in a separate file. Host may be empty to use the SendGrid servers.
type SendGridMailer struct {
	KeyFile string `yaml:"key-file"`
	Host    string `yaml:"host,omitempty"`
}

// ValidateAndNormalize validates the mailer settings.
func (m *Mailer) ValidateAndNormalize() error {
	err := verifyKind(&m.Kind, "log", "log", "smtp", "sendgrid")
	if err != nil {
		return err
	}
	switch *m.Kind {
	case "smtp":
		if m.SMTP.Host == "" {
			return fmt.Errorf("smtp.host is required")
		}
		if m.SMTP.Port == 0 {
			m.SMTP.Port = DefaultSMTPPort
		}
	case "sendgrid":
		if m.SendGrid.KeyFile == "" {
			return fmt.Errorf("sendgrid.key-file is required")
		}
	}
	return nil
}

func (m Mailer) sender() mail.Sender {
	if m.FromEmail == "" {
		return mail.DefaultSender
	}
	return mail.Sender{Name: m.FromName, Email: m.FromEmail}
}

// NewMailer instantiates the configured confirmation emails sink.
func (m Mailer) NewMailer() (notify.Mailer, error) {
	switch *m.Kind {
	case "smtp":
		c := smtpmail.Config{
			Host:     m.SMTP.Host,
			Port:     m.SMTP.Port,
			Username: m.SMTP.Username,
			From:     m.sender(),
		}
		if m.SMTP.PasswordFile != "" {
			pass, err := readSecret(m.SMTP.PasswordFile)
			if err != nil {
				return nil, err
			}
			c.Password = pass
		}
		return smtpmail.New(c)
	case "sendgrid":
		key, err := readSecret(m.SendGrid.KeyFile)
		if err != nil {
			return nil, err
		}
		return sgmail.New(key, m.SendGrid.Host, m.sender())
	default:
		return logmail.New(), nil
	}
}
